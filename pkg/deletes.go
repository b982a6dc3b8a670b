package symspell

import (
	mapset "github.com/deckarep/golang-set/v2"
)

// editsPrefix returns every deletion of term's prefix up to the dictionary
// edit distance, the prefix itself included. The empty string is included
// when the whole term could be deleted.
func (s *SymSpell) editsPrefix(term string) mapset.Set[string] {
	edits := mapset.NewThreadUnsafeSet[string]()
	runes := []rune(term)
	if len(runes) <= s.maxDictionaryEditDistance {
		edits.Add("")
	}
	if len(runes) > s.prefixLength {
		runes = runes[:s.prefixLength]
	}
	edits.Add(string(runes))
	s.edits(runes, 0, edits)
	return edits
}

// edits adds single-rune deletions of word and recurses until the dictionary
// edit distance is reached. A deletion key of length L is always reached at
// distance len(word)-L, so a key that is already present never needs to be
// expanded again.
func (s *SymSpell) edits(word []rune, editDistance int, deleteWords mapset.Set[string]) {
	editDistance++
	if len(word) <= 1 {
		return
	}
	for i := range word {
		del := deleteAt(word, i)
		if deleteWords.Add(string(del)) && editDistance < s.maxDictionaryEditDistance {
			s.edits(del, editDistance, deleteWords)
		}
	}
}

func deleteAt(word []rune, i int) []rune {
	del := make([]rune, 0, len(word)-1)
	del = append(del, word[:i]...)
	return append(del, word[i+1:]...)
}
