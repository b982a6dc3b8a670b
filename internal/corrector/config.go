package corrector

type CorrectorConfig struct {
	MaxEditDistance int
	PrefixLength    int
	CountThreshold  int64
	CorpusSize      int64
	DecomposeScript bool

	TopKSuggestions  int
	FilterShortWords bool
	// CustomWordCount is the frequency given to user-added words so they
	// outrank dictionary terms.
	CustomWordCount int64
	// CountMargin is the count ratio the best candidate needs over the
	// runner-up to be applied automatically.
	CountMargin float64

	TransposeCost   float64
	NeighborInsDel  float64
	KeyboardNearSub float64
}

// DefaultConfig mirrors the engine defaults.
func DefaultConfig() CorrectorConfig {
	return CorrectorConfig{
		MaxEditDistance:  2,
		PrefixLength:     7,
		CountThreshold:   1,
		DecomposeScript:  true,
		TopKSuggestions:  8,
		FilterShortWords: true,
		CustomWordCount:  1_000_000_000,
		CountMargin:      2.0,
		TransposeCost:    0.6,
		NeighborInsDel:   0.9,
		KeyboardNearSub:  0.6,
	}
}

type Candidate struct {
	Term     string
	Distance int
	Count    int64
	Cost     float64
}

type SuggestionInfo struct {
	Token       string   `json:"token"`
	Suggestions []string `json:"suggestions"`
	Decision    string   `json:"decision"`
}

type ScoredSuggestion struct {
	Text  string  `json:"text"`
	Score float64 `json:"score"`
}

type CorrectionResult struct {
	Original     string                 `json:"original"`
	Corrected    string                 `json:"corrected"`
	Alternatives []ScoredSuggestion     `json:"alternatives,omitempty"`
	Suggestions  map[int]SuggestionInfo `json:"suggestions"`
}
