package symspell

import (
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"kosymspell/pkg/verbosity"
)

// WordSegmentation splits phrase into the most probable sequence of
// corrected words, inserting missing spaces. Existing spaces are kept as
// candidates. The input is NFKC-normalized and hyphens are removed first.
func (s *SymSpell) WordSegmentation(phrase string, opts ...Option) (Composition, error) {
	return s.Segment(NormalizeSegmentationInput(phrase), opts...)
}

// NormalizeSegmentationInput folds compatibility characters such as
// ligatures and removes hyphens.
func NormalizeSegmentationInput(phrase string) string {
	return strings.ReplaceAll(norm.NFKC.String(phrase), "-", "")
}

// Segment runs word segmentation on an already normalized phrase.
func (s *SymSpell) Segment(phrase string, opts ...Option) (Composition, error) {
	q, err := s.newQuery(opts)
	if err != nil {
		return Composition{}, err
	}
	c, _ := s.segment([]rune(phrase), q)
	return c, nil
}

// segment fills a circular buffer of compositions, one slot per possible
// part end, in a single pass over the phrase. It also returns the number of
// parts evaluated.
func (s *SymSpell) segment(phrase []rune, q *query) (Composition, int) {
	maxSegLen := q.maxSegmentationWordLength
	if maxSegLen <= 0 {
		maxSegLen = max(s.maxLength, 1)
	}
	size := min(maxSegLen, len(phrase))
	if size == 0 {
		return Composition{}, 0
	}
	compositions := make([]Composition, size)
	partQuery := &query{maxEditDistance: q.maxEditDistance, ignoreToken: q.ignoreToken}
	n := s.N()
	evaluated := 0
	idx := -1

	for j := range phrase {
		imax := min(len(phrase)-j, maxSegLen)
		for i := 1; i <= imax; i++ {
			evaluated++
			part := phrase[j : j+i]
			separatorLen := 0
			topEd := 0
			if unicode.IsSpace(part[0]) {
				part = part[1:]
			} else {
				// a space had to be inserted
				separatorLen = 1
			}
			// spaces inside the part count as edits
			stripped := removeSpaces(part)
			topEd += len(part) - len(stripped)
			part = stripped

			var topResult string
			var topLogProb float64
			var results Suggestions
			if len(part) > 0 {
				results = s.lookup(strings.ToLower(string(part)), verbosity.Top, partQuery)
			}
			if len(results) > 0 {
				topResult = results[0].Term
				if unicode.IsUpper(part[0]) {
					topResult = capitalize(topResult)
				}
				topEd += results[0].Distance
				topLogProb = math.Log10(float64(results[0].Count) / n)
			} else {
				topResult = string(part)
				// unknown parts cost their length so that spaces win
				topEd += len(part)
				topLogProb = math.Log10(10.0 / n / math.Pow(10.0, float64(len(part))))
			}

			dest := (i + idx) % size
			if j == 0 {
				compositions[dest] = Composition{
					SegmentedString: string(part),
					CorrectedString: topResult,
					DistanceSum:     topEd,
					LogProbSum:      topLogProb,
				}
				continue
			}
			from, to := compositions[idx], compositions[dest]
			if i == maxSegLen ||
				((from.DistanceSum+topEd == to.DistanceSum ||
					from.DistanceSum+separatorLen+topEd == to.DistanceSum) &&
					to.LogProbSum < from.LogProbSum+topLogProb) ||
				from.DistanceSum+separatorLen+topEd < to.DistanceSum {
				if isGluedPunctuation(topResult, q.termLength) {
					compositions[dest] = Composition{
						SegmentedString: from.SegmentedString + string(part),
						CorrectedString: from.CorrectedString + topResult,
						DistanceSum:     from.DistanceSum + topEd,
						LogProbSum:      from.LogProbSum + topLogProb,
					}
				} else {
					compositions[dest] = Composition{
						SegmentedString: from.SegmentedString + " " + string(part),
						CorrectedString: from.CorrectedString + " " + topResult,
						DistanceSum:     from.DistanceSum + separatorLen + topEd,
						LogProbSum:      from.LogProbSum + topLogProb,
					}
				}
			}
		}
		idx = (idx + 1) % size
	}
	return compositions[idx], evaluated
}

const asciiPunctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// isGluedPunctuation reports results that attach to the preceding word: a
// single ASCII punctuation rune, or two runes starting with an apostrophe.
// length measures term when not nil.
func isGluedPunctuation(term string, length func(string) int) bool {
	n := utf8.RuneCountInString(term)
	if length != nil {
		n = length(term)
	}
	first, _ := utf8.DecodeRuneInString(term)
	switch n {
	case 1:
		return strings.ContainsRune(asciiPunctuation, first)
	case 2:
		return first == '\''
	}
	return false
}

func removeSpaces(runes []rune) []rune {
	out := make([]rune, 0, len(runes))
	for _, r := range runes {
		if r != ' ' {
			out = append(out, r)
		}
	}
	return out
}
