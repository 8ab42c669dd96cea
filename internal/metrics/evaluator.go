package metrics

import "medsimplify/pkg"

// Evaluator scores an (original, simplified) pair.  It holds only an
// immutable lexicon and is safe for concurrent use.
type Evaluator struct {
	Lexicon *Lexicon
}

// NewEvaluator returns an evaluator using lexicon, or the default lexicon
// when lexicon is nil.
func NewEvaluator(lexicon *Lexicon) *Evaluator {
	if lexicon == nil {
		lexicon = defaultLexicon
	}
	return &Evaluator{Lexicon: lexicon}
}

// Evaluate computes every metric except ProcessingTime, which belongs to the
// caller that timed the generation call.
func (e *Evaluator) Evaluate(original, simplified string) pkg.Metrics {
	originalWords := CountWords(original)
	simplifiedWords := CountWords(simplified)
	ratio := 0.0
	if originalWords > 0 {
		ratio = float64(simplifiedWords) / float64(originalWords)
	}
	return pkg.Metrics{
		ReadabilityScore:    Readability(simplified),
		OriginalReadability: Readability(original),
		TermDensity:         e.Lexicon.Density(simplified),
		OriginalTermDensity: e.Lexicon.Density(original),
		LengthRatio:         ratio,
		OriginalWordCount:   originalWords,
		SimplifiedWordCount: simplifiedWords,
		LexiconVersion:      e.Lexicon.Version(),
	}
}
