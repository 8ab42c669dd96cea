package core

import "medsimplify/pkg"

// Thresholds used when judging a simplification.
const (
	TargetReadability = 60.0
	TargetTermDensity = 5.0
)

const (
	SuggestReadability = "The simplified note could be more readable. Consider using shorter sentences and simpler vocabulary."
	SuggestTermDensity = "The medical term density is still high. Further simplification of technical terms might be helpful."
	SuggestGood        = "The simplification looks good! The readability is improved, and medical terminology is well-simplified."
)

// Suggest returns one improvement hint for m.  Readability is checked first.
func Suggest(m pkg.Metrics) string {
	switch {
	case m.ReadabilityScore < TargetReadability:
		return SuggestReadability
	case m.TermDensity > TargetTermDensity:
		return SuggestTermDensity
	default:
		return SuggestGood
	}
}
