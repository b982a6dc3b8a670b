package symspell

import (
	"math"
	"strings"
	"unicode/utf8"

	"kosymspell/pkg/verbosity"
)

// LookupCompound corrects a multi-word phrase, repairing words that were
// wrongly split or joined. The result is a single item for the whole line,
// its distance measured against the input phrase.
func (s *SymSpell) LookupCompound(phrase string, maxEditDistance int, opts ...Option) (Suggestions, error) {
	q, err := s.compoundQuery(maxEditDistance, opts)
	if err != nil {
		return nil, err
	}
	parts := s.compoundParts(phrase, q)
	return Suggestions{s.joinParts(phrase, parts, q.transferCasing)}, nil
}

// LookupCompoundParts runs compound correction and returns the corrected
// item of every input token, in input order.
func (s *SymSpell) LookupCompoundParts(phrase string, maxEditDistance int, opts ...Option) (Suggestions, error) {
	q, err := s.compoundQuery(maxEditDistance, opts)
	if err != nil {
		return nil, err
	}
	return s.compoundParts(phrase, q), nil
}

func (s *SymSpell) compoundQuery(maxEditDistance int, opts []Option) (*query, error) {
	all := make([]Option, 0, len(opts)+1)
	all = append(all, opts...)
	return s.newQuery(append(all, MaxEditDistance(maxEditDistance)))
}

func (s *SymSpell) compoundParts(phrase string, q *query) Suggestions {
	maxEditDistance := q.maxEditDistance
	tokens := s.tokenize(phrase, q)
	n := s.N()

	parts := make(Suggestions, 0, len(tokens))
	lastCombi, lastPassthrough := false, false
	for i, token := range tokens {
		term := strings.ToLower(token)

		if q.ignoreNonWords && isInteger(term) {
			parts = append(parts, SuggestItem{Term: term, Count: int64(n)})
			lastPassthrough = true
			continue
		}
		if (q.ignoreNonWords && isAcronym(token)) || (q.ignoreTermsWithDigits && hasDigit(token)) {
			parts = append(parts, SuggestItem{Term: token, Count: int64(n)})
			lastPassthrough = true
			continue
		}

		suggestions := s.search(term, verbosity.Top, maxEditDistance)

		// merge with the previous token, always before a split
		if i > 0 && !lastCombi && !lastPassthrough {
			prev := strings.ToLower(tokens[i-1])
			combi := s.search(prev+term, verbosity.Top, maxEditDistance)
			if len(combi) > 0 {
				best1 := parts[len(parts)-1]
				best2 := unknownItem(term, maxEditDistance)
				if len(suggestions) > 0 {
					best2 = suggestions[0]
				}
				distance := best1.Distance + best2.Distance
				if combi[0].Distance+1 < distance ||
					(combi[0].Distance+1 == distance &&
						float64(combi[0].Count) > float64(best1.Count)/n*float64(best2.Count)) {
					merged := combi[0]
					merged.Distance++
					parts[len(parts)-1] = merged
					lastCombi = true
					continue
				}
			}
		}
		lastCombi, lastPassthrough = false, false

		// never split a correct word or a single rune
		if len(suggestions) > 0 && (suggestions[0].Distance == 0 || utf8.RuneCountInString(term) == 1) {
			parts = append(parts, suggestions[0])
			continue
		}
		if best, ok := s.bestSplit(term, suggestions, maxEditDistance); ok {
			parts = append(parts, best)
			continue
		}
		parts = append(parts, unknownItem(term, maxEditDistance))
	}
	return parts
}

// bestSplit tries every split point of term and returns the most frequent
// pair of corrections, or the single-word correction when no split beats it.
func (s *SymSpell) bestSplit(term string, suggestions Suggestions, maxEditDistance int) (SuggestItem, bool) {
	runes := []rune(term)
	var best *SuggestItem
	if len(suggestions) > 0 {
		best = &suggestions[0]
	}
	n := s.N()
	for j := 1; j < len(runes); j++ {
		part1, part2 := string(runes[:j]), string(runes[j:])
		suggestions1 := s.search(part1, verbosity.Top, maxEditDistance)
		if len(suggestions1) == 0 {
			continue
		}
		suggestions2 := s.search(part2, verbosity.Top, maxEditDistance)
		if len(suggestions2) == 0 {
			continue
		}
		s1, s2 := suggestions1[0], suggestions2[0]

		splitTerm := s1.Term + " " + s2.Term
		distance := distanceBounded(runes, []rune(splitTerm), maxEditDistance)
		if distance < 0 {
			distance = maxEditDistance + 1
		}
		if best != nil {
			if distance > best.Distance {
				continue
			}
			if distance < best.Distance {
				best = nil
			}
		}

		var count int64
		if bigram, ok := s.bigrams[splitTerm]; ok {
			count = bigram
			joined := s1.Term + s2.Term
			switch {
			case len(suggestions) > 0 && joined == term:
				// outrank the single-word correction
				count = max(count, suggestions[0].Count+2)
			case len(suggestions) > 0 && (s1.Term == suggestions[0].Term || s2.Term == suggestions[0].Term):
				count = max(count, suggestions[0].Count+1)
			case len(suggestions) == 0 && joined == term:
				count = max(count, max(s1.Count, s2.Count)+2)
			}
		} else {
			// naive Bayes estimate of the pair frequency
			count = min(s.bigramCountMin, int64(float64(s1.Count)/n*float64(s2.Count)))
		}

		split := SuggestItem{Term: splitTerm, Distance: distance, Count: count}
		if best == nil || split.Count > best.Count {
			best = &split
		}
	}
	if best == nil {
		return SuggestItem{}, false
	}
	return *best, true
}

func (s *SymSpell) joinParts(phrase string, parts Suggestions, transferCasing bool) SuggestItem {
	n := s.N()
	count := n
	terms := make([]string, len(parts))
	for i, si := range parts {
		terms[i] = si.Term
		count *= float64(si.Count) / n
	}
	joined := strings.Join(terms, " ")
	if transferCasing {
		joined = transferCasingSimilar(phrase, joined)
	}
	return SuggestItem{
		Term:     joined,
		Distance: phraseDistance(phrase, joined),
		Count:    int64(count),
	}
}

func (s *SymSpell) tokenize(phrase string, q *query) []string {
	switch {
	case q.splitBySpace:
		return strings.Fields(phrase)
	case q.tokenizer != nil:
		return q.tokenizer(phrase)
	}
	return ParseWords(phrase)
}

// unknownItem stands in for a token without any correction. Its count
// shrinks tenfold with every rune.
func unknownItem(term string, maxEditDistance int) SuggestItem {
	return SuggestItem{
		Term:     term,
		Distance: maxEditDistance + 1,
		Count:    int64(10 / math.Pow(10, float64(utf8.RuneCountInString(term)))),
	}
}
