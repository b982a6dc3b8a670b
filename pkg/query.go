package symspell

import "fmt"

// Option adjusts a single Lookup, LookupCompound or WordSegmentation call.
// Options that do not apply to an operation are ignored by it.
type Option func(*query)

type query struct {
	maxEditDistance    int
	hasMaxEditDistance bool
	includeUnknown     bool
	ignoreToken        func(string) bool
	transferCasing     bool

	ignoreNonWords        bool
	splitBySpace          bool
	ignoreTermsWithDigits bool
	tokenizer             func(string) []string

	maxSegmentationWordLength int
	termLength                func(string) int
}

// MaxEditDistance caps the distance of returned suggestions. It defaults to
// the dictionary edit distance.
func MaxEditDistance(n int) Option {
	return func(q *query) {
		q.maxEditDistance = n
		q.hasMaxEditDistance = true
	}
}

// IncludeUnknown makes Lookup return the phrase itself, at one more than the
// maximum distance, when nothing is found.
func IncludeUnknown() Option {
	return func(q *query) { q.includeUnknown = true }
}

// IgnoreToken leaves phrases matching pred unchanged.
func IgnoreToken(pred func(string) bool) Option {
	return func(q *query) { q.ignoreToken = pred }
}

// TransferCasing searches case-insensitively and carries the casing of the
// input over to the results.
func TransferCasing() Option {
	return func(q *query) { q.transferCasing = true }
}

// IgnoreNonWords passes integers and acronyms through compound correction.
func IgnoreNonWords() Option {
	return func(q *query) { q.ignoreNonWords = true }
}

// SplitBySpace tokenizes compound input on whitespace only.
func SplitBySpace() Option {
	return func(q *query) { q.splitBySpace = true }
}

// IgnoreTermsWithDigits passes any token containing a digit through compound
// correction.
func IgnoreTermsWithDigits() Option {
	return func(q *query) { q.ignoreTermsWithDigits = true }
}

// Tokenizer replaces the word tokenizer of compound correction.
func Tokenizer(fn func(string) []string) Option {
	return func(q *query) { q.tokenizer = fn }
}

// MaxSegmentationWordLength bounds the part length considered by word
// segmentation. It defaults to the longest dictionary term.
func MaxSegmentationWordLength(n int) Option {
	return func(q *query) { q.maxSegmentationWordLength = n }
}

// TermLength replaces the rune count word segmentation uses to recognize
// a two-rune apostrophe suffix such as "'s" that attaches to the previous
// word.
func TermLength(fn func(string) int) Option {
	return func(q *query) { q.termLength = fn }
}

func (s *SymSpell) newQuery(opts []Option) (*query, error) {
	q := &query{maxEditDistance: s.maxDictionaryEditDistance}
	for _, opt := range opts {
		if opt != nil {
			opt(q)
		}
	}
	if q.maxEditDistance < 0 {
		return nil, fmt.Errorf("%w: max edit distance %d < 0", ErrInvalidOption, q.maxEditDistance)
	}
	if q.maxEditDistance > s.maxDictionaryEditDistance {
		return nil, fmt.Errorf("%w: %d > %d", ErrEditDistanceTooLarge, q.maxEditDistance, s.maxDictionaryEditDistance)
	}
	return q, nil
}
