package symspell

import "sort"

// SuggestItem is a spelling suggestion: a dictionary term, its edit distance
// from the query and its frequency count.
type SuggestItem struct {
	Term     string `json:"term"`
	Distance int    `json:"distance"`
	Count    int64  `json:"count"`
}

// Suggestions is ordered by ascending distance, then descending count.
type Suggestions []SuggestItem

func (s Suggestions) Len() int      { return len(s) }
func (s Suggestions) Swap(i, j int) { s[i], s[j] = s[j], s[i] }
func (s Suggestions) Less(i, j int) bool {
	return s[i].less(s[j])
}

func (si SuggestItem) less(other SuggestItem) bool {
	if si.Distance != other.Distance {
		return si.Distance < other.Distance
	}
	if si.Count != other.Count {
		return si.Count > other.Count
	}
	return si.Term < other.Term
}

// Terms returns the suggested terms in order.
func (s Suggestions) Terms() []string {
	terms := make([]string, len(s))
	for i, si := range s {
		terms[i] = si.Term
	}
	return terms
}

// sortUnique sorts s and drops repeated terms, keeping the best-ranked one.
func (s Suggestions) sortUnique() Suggestions {
	if len(s) < 2 {
		return s
	}
	sort.Sort(s)
	seen := make(map[string]struct{}, len(s))
	out := s[:0]
	for _, si := range s {
		if _, dup := seen[si.Term]; dup {
			continue
		}
		seen[si.Term] = struct{}{}
		out = append(out, si)
	}
	return out
}

// Composition is one explanation of a (prefix of a) phrase produced by word
// segmentation.
type Composition struct {
	SegmentedString string  `json:"segmented"`
	CorrectedString string  `json:"corrected"`
	DistanceSum     int     `json:"distance_sum"`
	LogProbSum      float64 `json:"log_prob_sum"`
}
