package pkg

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrUnknownAudience = errors.New("unknown audience")
	ErrUnknownStrategy = errors.New("unknown strategy")
)

// Audience identifies the patient group a simplified note is written for.
// The set is closed; values outside it are rejected by ParseAudience.
type Audience string

const (
	AudienceGeneral     Audience = "general"
	AudienceElderly     Audience = "elderly"
	AudienceLowLiteracy Audience = "low_literacy"
	AudienceESL         Audience = "esl"
)

// Audiences returns every supported audience in display order.
func Audiences() []Audience {
	return []Audience{AudienceGeneral, AudienceElderly, AudienceLowLiteracy, AudienceESL}
}

// Label returns the human-readable name shown in option lists and reports.
func (a Audience) Label() string {
	switch a {
	case AudienceElderly:
		return "Elderly"
	case AudienceLowLiteracy:
		return "Low Literacy"
	case AudienceESL:
		return "ESL (English as Second Language)"
	default:
		return "General"
	}
}

// Valid reports whether a is one of the closed set of audiences.
func (a Audience) Valid() bool {
	switch a {
	case AudienceGeneral, AudienceElderly, AudienceLowLiteracy, AudienceESL:
		return true
	}
	return false
}

// ParseAudience accepts either the canonical value or the display label,
// case-insensitively.
func ParseAudience(s string) (Audience, error) {
	key := normalizeKey(s)
	for _, a := range Audiences() {
		if key == string(a) || key == normalizeKey(a.Label()) {
			return a, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAudience, s)
}

// Strategy identifies how the prompt sent to the model is constructed.
type Strategy string

const (
	StrategyZeroShot       Strategy = "zero_shot"
	StrategyFewShot        Strategy = "few_shot"
	StrategyChainOfThought Strategy = "chain_of_thought"
	StrategyTreeOfThoughts Strategy = "tree_of_thoughts"
)

// Strategies returns every supported strategy in display order.
func Strategies() []Strategy {
	return []Strategy{StrategyZeroShot, StrategyFewShot, StrategyChainOfThought, StrategyTreeOfThoughts}
}

func (s Strategy) Label() string {
	switch s {
	case StrategyFewShot:
		return "Few-Shot (In-Context Learning)"
	case StrategyChainOfThought:
		return "Chain of Thought"
	case StrategyTreeOfThoughts:
		return "Tree of Thoughts"
	default:
		return "Zero-Shot"
	}
}

func (s Strategy) Valid() bool {
	switch s {
	case StrategyZeroShot, StrategyFewShot, StrategyChainOfThought, StrategyTreeOfThoughts:
		return true
	}
	return false
}

// ParseStrategy accepts the canonical value, the display label, or the short
// hyphenated form ("few-shot", "tree-of-thoughts").
func ParseStrategy(s string) (Strategy, error) {
	key := normalizeKey(s)
	for _, st := range Strategies() {
		if key == string(st) || key == normalizeKey(st.Label()) {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
}

// normalizeKey lowercases s and folds spaces, hyphens and parentheses into
// single underscores so "Few-Shot (In-Context Learning)" and "few_shot" can
// be compared.
func normalizeKey(s string) string {
	var b strings.Builder
	lastUnderscore := true
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}

// SimplifyRequest carries everything needed for one simplification.  It is
// created per invocation and never persisted.
type SimplifyRequest struct {
	Note        string   `json:"note" validate:"required"`
	Audience    Audience `json:"audience"`
	Strategy    Strategy `json:"strategy"`
	Model       string   `json:"model" validate:"required,max=100"`
	Temperature float64  `json:"temperature" validate:"gte=0,lte=2"`
}

// Metrics holds the scores computed for one (original, simplified) pair.
// Readability values are in [0, 100]; densities are percentages.
type Metrics struct {
	ReadabilityScore    float64 `json:"readability_score"`
	OriginalReadability float64 `json:"original_readability"`
	TermDensity         float64 `json:"term_density"`
	OriginalTermDensity float64 `json:"original_term_density"`
	LengthRatio         float64 `json:"length_ratio"`
	OriginalWordCount   int     `json:"original_word_count"`
	SimplifiedWordCount int     `json:"simplified_word_count"`
	// ProcessingTime is the wall-clock duration of the generation call, in seconds.
	ProcessingTime float64 `json:"processing_time"`
	// LexiconVersion names the term list TermDensity was computed with.
	LexiconVersion string `json:"lexicon_version"`
}

// ReadabilityDelta is the readability improvement over the original note.
func (m Metrics) ReadabilityDelta() float64 {
	return m.ReadabilityScore - m.OriginalReadability
}

// TermDensityReduction is how many percentage points of medical terms were removed.
func (m Metrics) TermDensityReduction() float64 {
	return m.OriginalTermDensity - m.TermDensity
}

// Outcome is the result of a successful simplification.
type Outcome struct {
	ID          uuid.UUID `json:"id"`
	Audience    Audience  `json:"audience"`
	Strategy    Strategy  `json:"strategy"`
	Model       string    `json:"model"`
	Temperature float64   `json:"temperature"`
	Original    string    `json:"original_note"`
	Simplified  string    `json:"simplified_note"`
	Metrics     Metrics   `json:"metrics"`
	Suggestion  string    `json:"suggestion"`
	CreatedAt   time.Time `json:"created_at"`
}

// HistoryEntry is what the history store keeps for every outcome.
type HistoryEntry struct {
	ID             uuid.UUID `json:"id"`
	CreatedAt      time.Time `json:"timestamp"`
	Strategy       Strategy  `json:"method"`
	Audience       Audience  `json:"target_group"`
	Model          string    `json:"model"`
	Temperature    float64   `json:"temperature"`
	OriginalNote   string    `json:"original_note"`
	SimplifiedNote string    `json:"simplified_note"`
	Metrics        Metrics   `json:"metrics"`
}

// EntryFromOutcome converts an outcome into the record appended to history.
func EntryFromOutcome(o *Outcome) *HistoryEntry {
	return &HistoryEntry{
		ID:             o.ID,
		CreatedAt:      o.CreatedAt,
		Strategy:       o.Strategy,
		Audience:       o.Audience,
		Model:          o.Model,
		Temperature:    o.Temperature,
		OriginalNote:   o.Original,
		SimplifiedNote: o.Simplified,
		Metrics:        o.Metrics,
	}
}

// MethodSummary aggregates history entries for one strategy.
type MethodSummary struct {
	Strategy          Strategy `json:"method"`
	Count             int      `json:"count"`
	AvgReadability    float64  `json:"avg_readability"`
	AvgTermDensity    float64  `json:"avg_term_density"`
	AvgProcessingTime float64  `json:"avg_processing_time"`
}

// SampleNote is one of the bundled synthetic notes.
type SampleNote struct {
	Title string `json:"title"`
	Note  string `json:"note"`
}
