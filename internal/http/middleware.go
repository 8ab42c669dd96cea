package http

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// LoggingMiddleware logs one line per request and puts the request logger on
// the request context.
func LoggingMiddleware(logger zerolog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		reqLogger := logger.With().Str("method", r.Method).Str("path", r.URL.Path).Logger()
		rw := &loggingResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(rw, r.WithContext(reqLogger.WithContext(r.Context())))

		event := reqLogger.Info()
		if rw.statusCode >= http.StatusInternalServerError {
			event = reqLogger.Error()
		}
		event.Int("status", rw.statusCode).Dur("duration", time.Since(start)).Msg("request")
	})
}

// loggingResponseWriter captures the status code.  It forwards Flush so
// event streams keep working behind the middleware.
type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *loggingResponseWriter) WriteHeader(statusCode int) {
	rw.statusCode = statusCode
	rw.ResponseWriter.WriteHeader(statusCode)
}

func (rw *loggingResponseWriter) Flush() {
	if flusher, ok := rw.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}
