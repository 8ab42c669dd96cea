package core

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"medsimplify/internal/llm"
	"medsimplify/internal/prompt"
	"medsimplify/pkg"
)

//go:generate go run go.uber.org/mock/mockgen -source=simplify.go -destination=../../mocks/mock_core.go -package=mocks

// Evaluator scores an (original, simplified) pair.
type Evaluator interface {
	Evaluate(original, simplified string) pkg.Metrics
}

// HistoryStore receives every successful outcome.  It is append-only.
type HistoryStore interface {
	Append(ctx context.Context, entry *pkg.HistoryEntry) error
}

// Simplifier coordinates one simplification: build the prompt, make one call
// to the generation service and score the result.  It keeps no state between
// calls and is safe for concurrent use.
type Simplifier struct {
	LLM       llm.Client
	Evaluator Evaluator
	// History is optional.  A failed append is logged and does not fail the
	// simplification.
	History HistoryStore
	Logger  zerolog.Logger

	now func() time.Time
}

// NewSimplifier constructs a simplifier.  history may be nil.
func NewSimplifier(client llm.Client, evaluator Evaluator, history HistoryStore, logger zerolog.Logger) *Simplifier {
	return &Simplifier{
		LLM:       client,
		Evaluator: evaluator,
		History:   history,
		Logger:    logger,
		now:       time.Now,
	}
}

// Simplify rewrites req.Note for req.Audience using req.Strategy.  When the
// generation service fails, the returned error is a *GenerationFailure and no
// metrics are computed.  An unknown audience or strategy is replaced by the
// general / zero-shot fallback the prompt builder uses, and the outcome
// records the replacement.
func (s *Simplifier) Simplify(ctx context.Context, req pkg.SimplifyRequest) (*pkg.Outcome, error) {
	if !req.Audience.Valid() {
		req.Audience = pkg.AudienceGeneral
	}
	if !req.Strategy.Valid() {
		req.Strategy = pkg.StrategyZeroShot
	}
	p := prompt.Build(req.Note, req.Audience, req.Strategy)
	log := s.Logger.With().
		Str("strategy", string(req.Strategy)).
		Str("audience", string(req.Audience)).
		Str("model", req.Model).
		Logger()

	start := s.timeNow()
	text, err := s.LLM.Generate(ctx, llm.Request{
		System:      p.System,
		User:        p.User,
		Model:       req.Model,
		Temperature: req.Temperature,
		MaxTokens:   prompt.MaxTokens(req.Strategy),
	})
	elapsed := s.timeNow().Sub(start)
	if err != nil {
		log.Warn().Err(err).Dur("elapsed", elapsed).Msg("generation failed")
		return nil, &GenerationFailure{Strategy: req.Strategy, Audience: req.Audience, Model: req.Model, Err: err}
	}

	m := s.Evaluator.Evaluate(req.Note, text)
	m.ProcessingTime = elapsed.Seconds()

	outcome := &pkg.Outcome{
		ID:          uuid.New(),
		Audience:    req.Audience,
		Strategy:    req.Strategy,
		Model:       req.Model,
		Temperature: req.Temperature,
		Original:    req.Note,
		Simplified:  text,
		Metrics:     m,
		Suggestion:  Suggest(m),
		CreatedAt:   s.timeNow().UTC(),
	}
	log.Info().
		Str("id", outcome.ID.String()).
		Float64("readability", m.ReadabilityScore).
		Float64("term_density", m.TermDensity).
		Float64("length_ratio", m.LengthRatio).
		Float64("processing_time", m.ProcessingTime).
		Msg("note simplified")

	if s.History != nil {
		if err := s.History.Append(ctx, pkg.EntryFromOutcome(outcome)); err != nil {
			log.Error().Err(err).Str("id", outcome.ID.String()).Msg("failed to record history")
		}
	}
	return outcome, nil
}

func (s *Simplifier) timeNow() time.Time {
	if s.now == nil {
		return time.Now()
	}
	return s.now()
}
