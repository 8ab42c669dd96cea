// Package logging configures the process-wide zerolog logger.
package logging

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init sets up the global logger.  Development gets a console writer; every
// other environment logs JSON with caller information.  An unknown level
// falls back to info.
func Init(service, env, level string) zerolog.Logger {
	return InitWriter(os.Stdout, service, env, level)
}

// InitWriter is Init with an explicit output.
func InitWriter(out io.Writer, service, env, level string) zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	if env == "development" {
		log.Logger = zerolog.New(zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
		}).With().
			Timestamp().
			Str("service", service).
			Logger().
			Level(lvl)
	} else {
		log.Logger = zerolog.New(out).
			With().
			Timestamp().
			Caller().
			Str("service", service).
			Logger().
			Level(lvl)
	}
	return log.Logger
}

// FromContext returns the logger stored in ctx, or the global logger when
// there is none.
func FromContext(ctx context.Context) *zerolog.Logger {
	l := zerolog.Ctx(ctx)
	if l.GetLevel() == zerolog.Disabled {
		return &log.Logger
	}
	return l
}
