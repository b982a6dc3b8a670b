package symspell

import (
	"strings"

	mapset "github.com/deckarep/golang-set/v2"

	"kosymspell/pkg/verbosity"
)

// Lookup returns dictionary terms within the maximum edit distance of phrase,
// ordered by distance, then count. The verbosity controls how many are kept.
func (s *SymSpell) Lookup(phrase string, v verbosity.Verbosity, opts ...Option) (Suggestions, error) {
	q, err := s.newQuery(opts)
	if err != nil {
		return nil, err
	}
	return s.lookup(phrase, v, q), nil
}

func (s *SymSpell) lookup(phrase string, v verbosity.Verbosity, q *query) Suggestions {
	if q.ignoreToken != nil && q.ignoreToken(phrase) {
		return Suggestions{{Term: phrase, Distance: 0, Count: 1}}
	}
	original := phrase
	if q.transferCasing {
		phrase = strings.ToLower(phrase)
	}
	suggestions := s.search(phrase, v, q.maxEditDistance)
	if q.transferCasing {
		for i := range suggestions {
			suggestions[i].Term = transferCasingSimilar(original, suggestions[i].Term)
		}
	}
	if q.includeUnknown && len(suggestions) == 0 {
		suggestions = append(suggestions, SuggestItem{Term: original, Distance: q.maxEditDistance + 1})
	}
	return suggestions
}

// search runs the symmetric-delete candidate walk for phrase.
func (s *SymSpell) search(phrase string, v verbosity.Verbosity, maxEditDistance int) Suggestions {
	var suggestions Suggestions
	input := []rune(phrase)
	inputLen := len(input)

	// too long to match anything
	if inputLen-maxEditDistance > s.maxLength {
		return suggestions
	}
	if count, ok := s.words[phrase]; ok {
		suggestions = append(suggestions, SuggestItem{Term: phrase, Count: count})
		if v != verbosity.All {
			return suggestions
		}
	}
	if maxEditDistance == 0 {
		return suggestions
	}

	consideredDeletes := mapset.NewThreadUnsafeSet[string]()
	consideredSuggestions := mapset.NewThreadUnsafeSet[string](phrase)
	maxEditDistance2 := maxEditDistance

	inputPrefixLen := min(inputLen, s.prefixLength)
	candidates := [][]rune{input[:inputPrefixLen]}

	for pointer := 0; pointer < len(candidates); pointer++ {
		candidate := candidates[pointer]
		candidateLen := len(candidate)
		lenDiff := inputPrefixLen - candidateLen

		// candidates are visited in order of deletion count
		if lenDiff > maxEditDistance2 {
			if v == verbosity.All {
				continue
			}
			break
		}

		for _, suggestion := range s.deletes[string(candidate)] {
			if suggestion == phrase {
				continue
			}
			sugg := []rune(suggestion)
			suggLen := len(sugg)
			if abs(suggLen-inputLen) > maxEditDistance2 ||
				suggLen < candidateLen ||
				(suggLen == candidateLen && suggestion != string(candidate)) {
				continue
			}
			suggPrefixLen := min(suggLen, s.prefixLength)
			if suggPrefixLen > inputPrefixLen && suggPrefixLen-candidateLen > maxEditDistance2 {
				continue
			}
			if consideredSuggestions.Contains(suggestion) {
				continue
			}

			var distance int
			switch {
			case candidateLen == 0:
				// every rune of both strings was deleted
				distance = max(inputLen, suggLen)
				if distance > maxEditDistance2 {
					continue
				}
			case suggLen == 1:
				distance = inputLen
				if containsRune(input, sugg[0]) {
					distance = inputLen - 1
				}
				if distance > maxEditDistance2 {
					continue
				}
			default:
				if s.prefixLength-maxEditDistance == candidateLen &&
					s.suffixesDiffer(input, sugg, maxEditDistance) {
					continue
				}
				if v != verbosity.All && !s.deleteInSuggestionPrefix(candidate, sugg) {
					continue
				}
				distance = distanceBounded(input, sugg, maxEditDistance2)
				if distance < 0 {
					consideredSuggestions.Add(suggestion)
					continue
				}
			}
			consideredSuggestions.Add(suggestion)

			si := SuggestItem{Term: suggestion, Distance: distance, Count: s.words[suggestion]}
			if len(suggestions) > 0 {
				switch v {
				case verbosity.Closest:
					// a strictly closer hit invalidates everything found so far
					if distance < maxEditDistance2 {
						suggestions = suggestions[:0]
					}
				case verbosity.Top:
					if si.less(suggestions[0]) {
						maxEditDistance2 = distance
						suggestions[0] = si
					}
					continue
				}
			}
			if v != verbosity.All {
				maxEditDistance2 = distance
			}
			suggestions = append(suggestions, si)
		}

		// deeper deletions of the candidate
		if lenDiff < maxEditDistance && candidateLen <= s.prefixLength {
			if v != verbosity.All && lenDiff >= maxEditDistance2 {
				continue
			}
			for i := range candidate {
				del := deleteAt(candidate, i)
				if consideredDeletes.Add(string(del)) {
					candidates = append(candidates, del)
				}
			}
		}
	}
	return suggestions.sortUnique()
}

// suffixesDiffer reports whether the runes after the prefix rule out a match
// within maxEditDistance.
func (s *SymSpell) suffixesDiffer(input, sugg []rune, maxEditDistance int) bool {
	inputLen, suggLen := len(input), len(sugg)
	minDistance := min(inputLen, suggLen) - s.prefixLength
	if minDistance > 1 &&
		string(input[inputLen+1-minDistance:]) != string(sugg[suggLen+1-minDistance:]) {
		return true
	}
	if minDistance > 0 &&
		input[inputLen-minDistance] != sugg[suggLen-minDistance] &&
		(input[inputLen-minDistance-1] != sugg[suggLen-minDistance] ||
			input[inputLen-minDistance] != sugg[suggLen-minDistance-1]) {
		return true
	}
	return false
}

// deleteInSuggestionPrefix checks that del is a subsequence of the prefix of
// sugg.
func (s *SymSpell) deleteInSuggestionPrefix(del, sugg []rune) bool {
	if len(del) == 0 {
		return true
	}
	prefix := sugg[:min(len(sugg), s.prefixLength)]
	j := 0
	for _, r := range del {
		for j < len(prefix) && prefix[j] != r {
			j++
		}
		if j == len(prefix) {
			return false
		}
		j++
	}
	return true
}

func containsRune(runes []rune, r rune) bool {
	for _, c := range runes {
		if c == r {
			return true
		}
	}
	return false
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
