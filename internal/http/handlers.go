package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"medsimplify/internal/core"
	"medsimplify/internal/db"
	"medsimplify/internal/logging"
	"medsimplify/internal/report"
	"medsimplify/pkg"
)

// HistoryReader is the read side of the history store.
type HistoryReader interface {
	Get(ctx context.Context, id uuid.UUID) (*pkg.HistoryEntry, error)
	List(ctx context.Context, limit, offset int) ([]pkg.HistoryEntry, error)
	Count(ctx context.Context) (int, error)
	SummaryByStrategy(ctx context.Context) ([]pkg.MethodSummary, error)
}

// Listener delivers the IDs of newly stored history entries.
type Listener interface {
	Listen(ctx context.Context) (<-chan string, error)
}

// Defaults are applied to requests that leave a field out.
type Defaults struct {
	Model       string
	Temperature float64
	PageSize    int
	// Models lists the choices offered by /api/options.
	Models []string
}

// Server bundles together the dependencies required by HTTP handlers.  It
// implements http.Handler so it can be passed to http.Server.
type Server struct {
	Simplifier *core.Simplifier
	History    HistoryReader
	// Listener is optional; without it the event stream answers 503.
	Listener Listener
	Defaults Defaults
	Logger   zerolog.Logger

	validate *validator.Validate
	handler  http.Handler
}

// NewServer constructs a Server.
func NewServer(simplifier *core.Simplifier, history HistoryReader, listener Listener, defaults Defaults, logger zerolog.Logger) *Server {
	if defaults.PageSize <= 0 {
		defaults.PageSize = 50
	}
	if defaults.Model != "" && !lo.Contains(defaults.Models, defaults.Model) {
		defaults.Models = append([]string{defaults.Model}, defaults.Models...)
	}
	s := &Server{
		Simplifier: simplifier,
		History:    history,
		Listener:   listener,
		Defaults:   defaults,
		Logger:     logger,
		validate:   validator.New(),
	}
	s.handler = LoggingMiddleware(logger, http.HandlerFunc(s.route))
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// route dispatches incoming requests based on the URL path.
func (s *Server) route(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path
	switch {
	case path == "/api/simplify" && r.Method == http.MethodPost:
		s.handleSimplify(w, r)
	case path == "/api/compare" && r.Method == http.MethodPost:
		s.handleCompare(w, r)
	case path == "/api/options" && r.Method == http.MethodGet:
		s.handleOptions(w, r)
	case path == "/api/samples" && r.Method == http.MethodGet:
		writeJSON(w, http.StatusOK, core.Samples())
	case path == "/api/history" && r.Method == http.MethodGet:
		s.handleHistory(w, r)
	case path == "/api/history/summary" && r.Method == http.MethodGet:
		s.handleSummary(w, r)
	case path == "/api/history/export.csv" && r.Method == http.MethodGet:
		s.handleExport(w, r)
	case path == "/api/history/stream" && r.Method == http.MethodGet:
		s.handleStream(w, r)
	// GET /api/history/{id}
	case strings.HasPrefix(path, "/api/history/") && r.Method == http.MethodGet:
		s.handleHistoryEntry(w, r, strings.TrimPrefix(path, "/api/history/"))
	default:
		http.NotFound(w, r)
	}
}

type simplifyBody struct {
	Note        string   `json:"note" validate:"required"`
	Audience    string   `json:"audience"`
	Strategy    string   `json:"strategy"`
	Model       string   `json:"model" validate:"omitempty,max=100"`
	Temperature *float64 `json:"temperature" validate:"omitempty,gte=0,lte=2"`
}

type compareBody struct {
	simplifyBody
	Strategies []string `json:"strategies"`
}

// request turns a decoded body into a validated SimplifyRequest.  An empty
// audience or strategy selects general / zero-shot.
func (s *Server) request(body simplifyBody) (pkg.SimplifyRequest, error) {
	if err := s.validate.Struct(body); err != nil {
		return pkg.SimplifyRequest{}, err
	}
	req := pkg.SimplifyRequest{
		Note:        body.Note,
		Audience:    pkg.AudienceGeneral,
		Strategy:    pkg.StrategyZeroShot,
		Model:       lo.Ternary(body.Model != "", body.Model, s.Defaults.Model),
		Temperature: s.Defaults.Temperature,
	}
	if body.Temperature != nil {
		req.Temperature = *body.Temperature
	}
	if body.Audience != "" {
		a, err := pkg.ParseAudience(body.Audience)
		if err != nil {
			return pkg.SimplifyRequest{}, err
		}
		req.Audience = a
	}
	if body.Strategy != "" {
		st, err := pkg.ParseStrategy(body.Strategy)
		if err != nil {
			return pkg.SimplifyRequest{}, err
		}
		req.Strategy = st
	}
	if err := s.validate.Struct(req); err != nil {
		return pkg.SimplifyRequest{}, err
	}
	return req, nil
}

func (s *Server) handleSimplify(w http.ResponseWriter, r *http.Request) {
	var body simplifyBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	req, err := s.request(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	outcome, err := s.Simplifier.Simplify(r.Context(), req)
	if err != nil {
		s.writeSimplifyError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, outcome)
}

type comparisonResult struct {
	Strategy pkg.Strategy `json:"strategy"`
	Label    string       `json:"label"`
	Outcome  *pkg.Outcome `json:"outcome,omitempty"`
	Error    string       `json:"error,omitempty"`
}

// handleCompare runs every requested strategy on the same note.  Individual
// failures are reported per strategy and do not fail the request.  The
// single strategy field is rejected; strategies lists them instead.
func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	var body compareBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if body.Strategy != "" {
		writeError(w, http.StatusBadRequest, `"strategy" is not accepted here; use "strategies"`)
		return
	}
	req, err := s.request(body.simplifyBody)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	strategies := make([]pkg.Strategy, 0, len(body.Strategies))
	for _, raw := range body.Strategies {
		st, err := pkg.ParseStrategy(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		strategies = append(strategies, st)
	}
	comparisons := s.Simplifier.Compare(r.Context(), req.Note, req.Audience, req.Model, req.Temperature, lo.Uniq(strategies)...)
	writeJSON(w, http.StatusOK, lo.Map(comparisons, func(c core.Comparison, _ int) comparisonResult {
		res := comparisonResult{Strategy: c.Strategy, Label: c.Strategy.Label(), Outcome: c.Outcome}
		if c.Err != nil {
			res.Error = c.Err.Error()
		}
		return res
	}))
}

func (s *Server) writeSimplifyError(w http.ResponseWriter, r *http.Request, err error) {
	logging.FromContext(r.Context()).Warn().Err(err).Msg("simplify failed")
	if errors.Is(err, core.ErrGenerationFailed) {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeError(w, http.StatusInternalServerError, err.Error())
}

type option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"audiences": lo.Map(pkg.Audiences(), func(a pkg.Audience, _ int) option {
			return option{Value: string(a), Label: a.Label()}
		}),
		"strategies": lo.Map(pkg.Strategies(), func(st pkg.Strategy, _ int) option {
			return option{Value: string(st), Label: st.Label()}
		}),
		"models":              s.Defaults.Models,
		"default_model":       s.Defaults.Model,
		"default_temperature": s.Defaults.Temperature,
		"samples": lo.Map(core.Samples(), func(n pkg.SampleNote, _ int) string {
			return n.Title
		}),
	})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", s.Defaults.PageSize)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	offset, err := queryInt(r, "offset", 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if limit <= 0 {
		limit = s.Defaults.PageSize
	}
	ctx := r.Context()
	entries, err := s.History.List(ctx, limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	total, err := s.History.Count(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if entries == nil {
		entries = []pkg.HistoryEntry{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"entries": entries,
		"total":   total,
		"limit":   limit,
		"offset":  offset,
	})
}

func (s *Server) handleHistoryEntry(w http.ResponseWriter, r *http.Request, rawID string) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid history id")
		return
	}
	entry, err := s.History.Get(r.Context(), id)
	if errors.Is(err, db.ErrNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.History.SummaryByStrategy(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if summary == nil {
		summary = []pkg.MethodSummary{}
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	entries, err := s.History.List(r.Context(), 0, 0)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="simplification_history.csv"`)
	if err := report.WriteCSV(w, entries); err != nil {
		logging.FromContext(r.Context()).Error().Err(err).Msg("failed to write csv export")
	}
}

// handleStream emits a simplification_created event for every entry stored
// while the client stays connected.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	if s.Listener == nil {
		writeError(w, http.StatusServiceUnavailable, "event stream not configured")
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}
	ctx := r.Context()
	log := logging.FromContext(ctx)
	ids, err := s.Listener.Listen(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-ctx.Done():
			return
		case rawID, ok := <-ids:
			if !ok {
				return
			}
			if err := s.sendCreatedEvent(ctx, w, rawID); err != nil {
				log.Warn().Err(err).Str("id", rawID).Msg("failed to send simplification event")
				continue
			}
			flusher.Flush()
		}
	}
}

// sendCreatedEvent writes one SSE event carrying the stored entry as JSON
// after the "data:" prefix.
func (s *Server) sendCreatedEvent(ctx context.Context, w http.ResponseWriter, rawID string) error {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return err
	}
	entry, err := s.History.Get(ctx, id)
	if err != nil {
		return err
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "event: simplification_created\ndata: %s\n\n", data)
	return err
}

func queryInt(r *http.Request, key string, fallback int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("invalid %s %q", key, raw)
	}
	return v, nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
