// Package report aggregates simplification history and renders it as CSV or
// terminal tables.
package report

import (
	"sort"

	"github.com/samber/lo"

	"medsimplify/pkg"
)

// Summarize averages entries per strategy.  Results are ordered by strategy
// value so they line up with the database summary.
func Summarize(entries []pkg.HistoryEntry) []pkg.MethodSummary {
	groups := lo.GroupBy(entries, func(e pkg.HistoryEntry) pkg.Strategy {
		return e.Strategy
	})
	strategies := lo.Keys(groups)
	sort.Slice(strategies, func(i, j int) bool { return strategies[i] < strategies[j] })

	return lo.Map(strategies, func(strategy pkg.Strategy, _ int) pkg.MethodSummary {
		group := groups[strategy]
		n := float64(len(group))
		return pkg.MethodSummary{
			Strategy: strategy,
			Count:    len(group),
			AvgReadability: lo.SumBy(group, func(e pkg.HistoryEntry) float64 {
				return e.Metrics.ReadabilityScore
			}) / n,
			AvgTermDensity: lo.SumBy(group, func(e pkg.HistoryEntry) float64 {
				return e.Metrics.TermDensity
			}) / n,
			AvgProcessingTime: lo.SumBy(group, func(e pkg.HistoryEntry) float64 {
				return e.Metrics.ProcessingTime
			}) / n,
		}
	})
}
