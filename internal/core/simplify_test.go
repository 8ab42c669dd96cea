package core

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"medsimplify/internal/llm"
	"medsimplify/internal/metrics"
	"medsimplify/internal/prompt"
	"medsimplify/mocks"
	"medsimplify/pkg"
)

func words(n int, w string) string {
	return strings.TrimSpace(strings.Repeat(w+" ", n))
}

func fixedClock(step time.Duration) func() time.Time {
	t := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	return func() time.Time {
		now := t
		t = t.Add(step)
		return now
	}
}

func TestSimplifier_Simplify(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("should compute metrics for a successful generation", func(t *testing.T) {
		req := require.New(t)
		client := mocks.NewMockClient(ctrl)
		history := mocks.NewMockHistoryStore(ctrl)
		s := NewSimplifier(client, metrics.NewEvaluator(nil), history, zerolog.Nop())
		s.now = fixedClock(2 * time.Second)

		note := words(40, "hypertension")
		reply := words(20, "pressure") + "."
		expected := prompt.Build(note, pkg.AudienceElderly, pkg.StrategyChainOfThought)

		client.EXPECT().
			Generate(gomock.Any(), llm.Request{
				System:      expected.System,
				User:        expected.User,
				Model:       "gpt-4-turbo",
				Temperature: 0.3,
				MaxTokens:   prompt.LongOutputTokens,
			}).
			Return(reply, nil).
			Times(1)
		var recorded *pkg.HistoryEntry
		history.EXPECT().
			Append(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, e *pkg.HistoryEntry) error {
				recorded = e
				return nil
			}).
			Times(1)

		outcome, err := s.Simplify(context.Background(), pkg.SimplifyRequest{
			Note:        note,
			Audience:    pkg.AudienceElderly,
			Strategy:    pkg.StrategyChainOfThought,
			Model:       "gpt-4-turbo",
			Temperature: 0.3,
		})

		req.NoError(err)
		req.Equal(reply, outcome.Simplified)
		req.InDelta(0.5, outcome.Metrics.LengthRatio, 1e-9)
		req.InDelta(100.0, outcome.Metrics.OriginalTermDensity, 1e-9)
		req.Equal(0.0, outcome.Metrics.TermDensity)
		req.InDelta(2.0, outcome.Metrics.ProcessingTime, 1e-9)
		req.Equal(SuggestReadability, outcome.Suggestion)
		req.NotNil(recorded)
		req.Equal(outcome.ID, recorded.ID)
		req.Equal(pkg.StrategyChainOfThought, recorded.Strategy)
		req.Equal(note, recorded.OriginalNote)
	})

	t.Run("should use the short budget for few-shot", func(t *testing.T) {
		req := require.New(t)
		client := mocks.NewMockClient(ctrl)
		s := NewSimplifier(client, metrics.NewEvaluator(nil), nil, zerolog.Nop())

		client.EXPECT().
			Generate(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, r llm.Request) (string, error) {
				req.Equal(prompt.ShortOutputTokens, r.MaxTokens)
				req.Contains(r.User, prompt.ExampleBank(pkg.AudienceESL))
				return "You have high blood pressure.", nil
			})

		outcome, err := s.Simplify(context.Background(), pkg.SimplifyRequest{
			Note: "Hypertension.", Audience: pkg.AudienceESL, Strategy: pkg.StrategyFewShot, Model: "m",
		})
		req.NoError(err)
		req.Equal(pkg.StrategyFewShot, outcome.Strategy)
	})

	t.Run("should record the fallback for unknown audience and strategy", func(t *testing.T) {
		req := require.New(t)
		client := mocks.NewMockClient(ctrl)
		history := mocks.NewMockHistoryStore(ctrl)
		s := NewSimplifier(client, metrics.NewEvaluator(nil), history, zerolog.Nop())
		expected := prompt.Build("Hypertension.", pkg.AudienceGeneral, pkg.StrategyZeroShot)

		client.EXPECT().
			Generate(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, r llm.Request) (string, error) {
				req.Equal(expected.User, r.User)
				req.Equal(prompt.ShortOutputTokens, r.MaxTokens)
				return "High blood pressure.", nil
			})
		var recorded *pkg.HistoryEntry
		history.EXPECT().
			Append(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, e *pkg.HistoryEntry) error {
				recorded = e
				return nil
			})

		outcome, err := s.Simplify(context.Background(), pkg.SimplifyRequest{
			Note: "Hypertension.", Audience: pkg.Audience("pediatric"), Strategy: pkg.Strategy("self_consistency"), Model: "m",
		})

		req.NoError(err)
		req.Equal(pkg.AudienceGeneral, outcome.Audience)
		req.Equal(pkg.StrategyZeroShot, outcome.Strategy)
		req.Equal(metrics.DefaultLexiconVersion, outcome.Metrics.LexiconVersion)
		req.NotNil(recorded)
		req.Equal(pkg.AudienceGeneral, recorded.Audience)
		req.Equal(pkg.StrategyZeroShot, recorded.Strategy)
	})

	t.Run("should surface generation failures without evaluating", func(t *testing.T) {
		req := require.New(t)
		client := mocks.NewMockClient(ctrl)
		evaluator := mocks.NewMockEvaluator(ctrl)
		history := mocks.NewMockHistoryStore(ctrl)
		s := NewSimplifier(client, evaluator, history, zerolog.Nop())

		cause := &llm.GenerationError{Kind: llm.KindAuthentication, StatusCode: 401, Message: "invalid api key"}
		client.EXPECT().Generate(gomock.Any(), gomock.Any()).Return("", cause).Times(1)
		evaluator.EXPECT().Evaluate(gomock.Any(), gomock.Any()).Times(0)
		history.EXPECT().Append(gomock.Any(), gomock.Any()).Times(0)

		outcome, err := s.Simplify(context.Background(), pkg.SimplifyRequest{
			Note: "note", Audience: pkg.AudienceGeneral, Strategy: pkg.StrategyZeroShot, Model: "m",
		})

		req.Nil(outcome)
		req.ErrorIs(err, ErrGenerationFailed)
		var failure *GenerationFailure
		req.ErrorAs(err, &failure)
		req.Equal(pkg.StrategyZeroShot, failure.Strategy)
		var genErr *llm.GenerationError
		req.ErrorAs(err, &genErr)
		req.Equal(llm.KindAuthentication, genErr.Kind)
		req.Contains(err.Error(), "invalid api key")
	})

	t.Run("should still return the outcome when history fails", func(t *testing.T) {
		req := require.New(t)
		client := mocks.NewMockClient(ctrl)
		history := mocks.NewMockHistoryStore(ctrl)
		s := NewSimplifier(client, metrics.NewEvaluator(nil), history, zerolog.Nop())

		client.EXPECT().Generate(gomock.Any(), gomock.Any()).Return("Simple text.", nil)
		history.EXPECT().Append(gomock.Any(), gomock.Any()).Return(errors.New("db down"))

		outcome, err := s.Simplify(context.Background(), pkg.SimplifyRequest{
			Note: "note", Audience: pkg.AudienceGeneral, Strategy: pkg.StrategyZeroShot, Model: "m",
		})
		req.NoError(err)
		req.NotNil(outcome)
	})
}

func TestSimplifier_Compare(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("should run every strategy independently", func(t *testing.T) {
		req := require.New(t)
		client := mocks.NewMockClient(ctrl)
		s := NewSimplifier(client, metrics.NewEvaluator(nil), nil, zerolog.Nop())

		gomock.InOrder(
			client.EXPECT().Generate(gomock.Any(), gomock.Any()).Return("One.", nil),
			client.EXPECT().Generate(gomock.Any(), gomock.Any()).Return("", errors.New("boom")),
			client.EXPECT().Generate(gomock.Any(), gomock.Any()).Return("Three.", nil),
			client.EXPECT().Generate(gomock.Any(), gomock.Any()).Return("Four.", nil),
		)

		results := s.Compare(context.Background(), "note", pkg.AudienceGeneral, "m", 0.3)

		req.Len(results, 4)
		for i, strategy := range pkg.Strategies() {
			req.Equal(strategy, results[i].Strategy)
		}
		req.NotNil(results[0].Outcome)
		req.ErrorIs(results[1].Err, ErrGenerationFailed)
		req.Nil(results[1].Outcome)
		req.Equal("Four.", results[3].Outcome.Simplified)
	})

	t.Run("should skip calls once the context is done", func(t *testing.T) {
		req := require.New(t)
		client := mocks.NewMockClient(ctrl)
		s := NewSimplifier(client, metrics.NewEvaluator(nil), nil, zerolog.Nop())
		client.EXPECT().Generate(gomock.Any(), gomock.Any()).Times(0)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		results := s.Compare(ctx, "note", pkg.AudienceGeneral, "m", 0.3, pkg.StrategyFewShot)

		req.Len(results, 1)
		req.ErrorIs(results[0].Err, context.Canceled)
	})
}

func TestSuggest(t *testing.T) {
	req := require.New(t)
	req.Equal(SuggestReadability, Suggest(pkg.Metrics{ReadabilityScore: 59.9, TermDensity: 0}))
	req.Equal(SuggestTermDensity, Suggest(pkg.Metrics{ReadabilityScore: 70, TermDensity: 5.1}))
	req.Equal(SuggestGood, Suggest(pkg.Metrics{ReadabilityScore: 60, TermDensity: 5}))
}

func TestSamples(t *testing.T) {
	req := require.New(t)
	all := Samples()
	req.Len(all, 3)
	req.Equal(DefaultNote, all[0].Note)

	all[0].Note = "changed"
	req.Equal(DefaultNote, Samples()[0].Note)

	s, ok := SampleByIndex(3)
	req.True(ok)
	req.Contains(s.Note, "COPD")
	_, ok = SampleByIndex(0)
	req.False(ok)
}
