package metrics

import "strings"

// DefaultLexiconVersion identifies the bundled term list.  Bump it whenever
// membership changes so stored scores can be traced back to a list.
const DefaultLexiconVersion = "illustrative-v1"

// defaultTerms is a small illustrative list of conditions, drugs and lab
// abbreviations.  It is not a clinical terminology resource.
var defaultTerms = []string{
	"hypertension", "diabetes", "mellitus", "dyspnea", "orthopnea", "edema",
	"hyperlipidemia", "myocardial", "infarction", "stroke", "arrhythmia",
	"tachycardia", "bradycardia", "fibrillation", "cholesterol", "triglycerides",
	"glucose", "insulin", "hyperglycemia", "hypoglycemia", "neuropathy",
	"retinopathy", "nephropathy", "cardiomyopathy", "angina", "stent",
	"bypass", "angioplasty", "catheterization", "echocardiogram", "electrocardiogram",
	"coronary", "atherosclerosis", "atrial", "congestive", "creatinine",
	"hemoglobin", "ldl", "troponin", "bnp", "copd", "gerd", "prn", "bid",
	"chronic", "obstructive", "pulmonary", "gastroesophageal", "reflux",
	"albuterol", "fluticasone", "salmeterol", "omeprazole", "sertraline",
	"metoprolol", "warfarin", "furosemide", "lisinopril", "atorvastatin",
	"metformin", "spo2", "fev1", "fvc",
}

var defaultLexicon = NewLexicon(DefaultLexiconVersion, defaultTerms...)

// Lexicon is an immutable set of lower-cased domain terms.
type Lexicon struct {
	version string
	terms   map[string]struct{}
}

// NewLexicon builds a lexicon from terms.  Terms are lower-cased and blank
// entries are ignored.
func NewLexicon(version string, terms ...string) *Lexicon {
	set := make(map[string]struct{}, len(terms))
	for _, t := range terms {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		set[t] = struct{}{}
	}
	return &Lexicon{version: version, terms: set}
}

// DefaultLexicon returns the bundled lexicon.
func DefaultLexicon() *Lexicon { return defaultLexicon }

// Version is recorded on every Metrics value computed with l.
func (l *Lexicon) Version() string { return l.version }

func (l *Lexicon) Len() int { return len(l.terms) }

// Contains reports whether token, lower-cased, is a lexicon term.
func (l *Lexicon) Contains(token string) bool {
	_, ok := l.terms[strings.ToLower(token)]
	return ok
}

// Density returns the percentage of word tokens in text that are lexicon
// terms, or 0 when text has no words.
func (l *Lexicon) Density(text string) float64 {
	words := Words(text)
	if len(words) == 0 {
		return 0
	}
	matches := 0
	for _, w := range words {
		if l.Contains(w) {
			matches++
		}
	}
	return float64(matches) / float64(len(words)) * 100
}

// TermDensity scores text against the default lexicon.
func TermDensity(text string) float64 {
	return defaultLexicon.Density(text)
}
