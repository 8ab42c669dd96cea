package core

import (
	"context"

	"medsimplify/pkg"
)

// Comparison is the result of one strategy in a Compare run.  Exactly one of
// Outcome and Err is set.
type Comparison struct {
	Strategy pkg.Strategy
	Outcome  *pkg.Outcome
	Err      error
}

// Compare simplifies the same note once per strategy, in order.  Every run is
// independent: a failure for one strategy does not stop the others.  With no
// strategies given, all of them are used.
func (s *Simplifier) Compare(ctx context.Context, note string, audience pkg.Audience, model string, temperature float64, strategies ...pkg.Strategy) []Comparison {
	if len(strategies) == 0 {
		strategies = pkg.Strategies()
	}
	results := make([]Comparison, 0, len(strategies))
	for _, strategy := range strategies {
		if err := ctx.Err(); err != nil {
			results = append(results, Comparison{Strategy: strategy, Err: err})
			continue
		}
		outcome, err := s.Simplify(ctx, pkg.SimplifyRequest{
			Note:        note,
			Audience:    audience,
			Strategy:    strategy,
			Model:       model,
			Temperature: temperature,
		})
		results = append(results, Comparison{Strategy: strategy, Outcome: outcome, Err: err})
	}
	return results
}
