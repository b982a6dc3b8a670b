package symspell

import (
	"errors"
	"fmt"
	"math"

	"kosymspell/pkg/options"
	"kosymspell/pkg/verbosity"
)

// defaultCorpusSize is the word-probability denominator used when neither a
// corpus size is configured nor any counts have been loaded.
const defaultCorpusSize int64 = 1024908267229

var (
	// ErrEditDistanceTooLarge is returned when a query asks for a larger
	// distance than the index was built for.
	ErrEditDistanceTooLarge = errors.New("edit distance exceeds dictionary edit distance")
	// ErrInvalidOption reports an unusable engine configuration.
	ErrInvalidOption = errors.New("invalid symspell option")
	// ErrMalformedRow marks a dictionary row that is skipped during loading.
	ErrMalformedRow = errors.New("malformed dictionary row")
)

// Corrector is the query surface of a spelling correction engine.
type Corrector interface {
	Lookup(phrase string, v verbosity.Verbosity, opts ...Option) (Suggestions, error)
	LookupCompound(phrase string, maxEditDistance int, opts ...Option) (Suggestions, error)
	WordSegmentation(phrase string, opts ...Option) (Composition, error)
}

// SymSpell holds the dictionary, the bigram table and the deletion index.
type SymSpell struct {
	maxDictionaryEditDistance int
	prefixLength              int
	countThreshold            int64
	corpusSize                int64

	// words maps each retained term to its count.
	words map[string]int64
	// belowThresholdWords collects terms whose running count has not yet
	// reached countThreshold.
	belowThresholdWords map[string]int64
	// deletes maps a deletion key to every term that produces it.
	deletes map[string][]string

	bigrams map[string]int64
	// belowThresholdBigrams is the bigram counterpart of belowThresholdWords.
	belowThresholdBigrams map[string]int64
	bigramCountMin        int64

	// maxLength is the rune length of the longest term.
	maxLength  int
	totalCount int64
}

var _ Corrector = (*SymSpell)(nil)

// New creates an empty engine. Options default to options.DefaultOptions.
func New(opts ...options.Options) (*SymSpell, error) {
	conf := options.Build(opts...)
	if conf.MaxDictionaryEditDistance < 0 {
		return nil, fmt.Errorf("%w: max dictionary edit distance %d < 0", ErrInvalidOption, conf.MaxDictionaryEditDistance)
	}
	if conf.PrefixLength < 1 || conf.PrefixLength <= conf.MaxDictionaryEditDistance {
		return nil, fmt.Errorf("%w: prefix length %d must be > 0 and > max dictionary edit distance", ErrInvalidOption, conf.PrefixLength)
	}
	if conf.CountThreshold < 0 {
		return nil, fmt.Errorf("%w: count threshold %d < 0", ErrInvalidOption, conf.CountThreshold)
	}
	if conf.CorpusSize < 0 {
		return nil, fmt.Errorf("%w: corpus size %d < 0", ErrInvalidOption, conf.CorpusSize)
	}
	return &SymSpell{
		maxDictionaryEditDistance: conf.MaxDictionaryEditDistance,
		prefixLength:              conf.PrefixLength,
		countThreshold:            conf.CountThreshold,
		corpusSize:                conf.CorpusSize,
		words:                     make(map[string]int64),
		belowThresholdWords:       make(map[string]int64),
		deletes:                   make(map[string][]string),
		bigrams:                   make(map[string]int64),
		belowThresholdBigrams:     make(map[string]int64),
		bigramCountMin:            math.MaxInt64,
	}, nil
}

// MaxDictionaryEditDistance is the distance the index was built for.
func (s *SymSpell) MaxDictionaryEditDistance() int { return s.maxDictionaryEditDistance }

// PrefixLength is the number of leading runes that take part in deletions.
func (s *SymSpell) PrefixLength() int { return s.prefixLength }

// MaxLength is the rune length of the longest dictionary term.
func (s *SymSpell) MaxLength() int { return s.maxLength }

// WordCount is the number of retained dictionary terms.
func (s *SymSpell) WordCount() int { return len(s.words) }

// EntryCount is the number of deletion keys in the index.
func (s *SymSpell) EntryCount() int { return len(s.deletes) }

// BigramCount is the number of retained bigrams.
func (s *SymSpell) BigramCount() int { return len(s.bigrams) }

// Count returns the frequency of term, if it is in the dictionary.
func (s *SymSpell) Count(term string) (int64, bool) {
	c, ok := s.words[term]
	return c, ok
}

// BigramFrequency returns the count stored for the pair (term1, term2).
func (s *SymSpell) BigramFrequency(term1, term2 string) (int64, bool) {
	c, ok := s.bigrams[term1+" "+term2]
	return c, ok
}

// N is the corpus size used to turn counts into probabilities.
func (s *SymSpell) N() float64 {
	switch {
	case s.corpusSize > 0:
		return float64(s.corpusSize)
	case s.totalCount > 0:
		return float64(s.totalCount)
	}
	return float64(defaultCorpusSize)
}

func addSaturating(a, b int64) int64 {
	if math.MaxInt64-a > b {
		return a + b
	}
	return math.MaxInt64
}
