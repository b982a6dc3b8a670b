package corrector

import (
	"math"

	"kosymspell/pkg/hangul"
)

// Dubeolsik layout; shifted jamo share the key of their base letter.
var keyboardRows = []string{
	"ㅂㅈㄷㄱㅅㅛㅕㅑㅐㅔ",
	"ㅁㄴㅇㄹㅎㅗㅓㅏㅣ",
	"ㅋㅌㅊㅍㅠㅜㅡ",
}

var shifted = map[rune]rune{'ㅃ': 'ㅂ', 'ㅉ': 'ㅈ', 'ㄸ': 'ㄷ', 'ㄲ': 'ㄱ', 'ㅆ': 'ㅅ', 'ㅒ': 'ㅐ', 'ㅖ': 'ㅔ'}

var keyPos = func() map[rune][2]int {
	m := make(map[rune][2]int)
	for r, row := range keyboardRows {
		for c, ch := range []rune(row) {
			m[ch] = [2]int{r, c}
		}
	}
	for s, base := range shifted {
		m[s] = m[base]
	}
	return m
}()

func keyDistance(a, b rune) float64 {
	pa, oka := keyPos[a]
	pb, okb := keyPos[b]
	if !oka || !okb {
		return 2.5
	}
	dr := float64(pa[0] - pb[0])
	dc := float64(pa[1] - pb[1])
	return math.Sqrt(dr*dr + dc*dc)
}

func (sc *SpellCorrector) substitutionCost(a, b rune) float64 {
	// same key, shift slipped
	if shifted[a] == b || shifted[b] == a {
		return 0.2
	}
	d := keyDistance(a, b)
	if d <= 1.0 {
		return sc.config.KeyboardNearSub
	} else if d <= 1.5 {
		return 0.8
	} else if d <= 2.2 {
		return 1.2
	}
	return 1.8
}

// typingCost is a weighted Damerau-Levenshtein distance between the jamo of
// typed and intended: substitutions are priced by key distance, insertions
// and deletions by NeighborInsDel, swaps by TransposeCost. Lower is more
// likely.
func (sc *SpellCorrector) typingCost(typed, intended string) float64 {
	ra := []rune(hangul.Decompose(typed))
	rb := []rune(hangul.Decompose(intended))
	// fast path for a swap
	if isOneAdjacentSwap(ra, rb) {
		return sc.config.TransposeCost
	}
	insDel := sc.config.NeighborInsDel
	la, lb := len(ra), len(rb)
	if la == 0 {
		return float64(lb) * insDel
	}
	if lb == 0 {
		return float64(la) * insDel
	}
	// three rolling rows; the oldest one serves transpositions
	prev2 := make([]float64, lb+1)
	prev := make([]float64, lb+1)
	curr := make([]float64, lb+1)
	for j := 1; j <= lb; j++ {
		prev[j] = float64(j) * insDel
	}
	for i := 1; i <= la; i++ {
		curr[0] = float64(i) * insDel
		for j := 1; j <= lb; j++ {
			sub := 0.0
			if ra[i-1] != rb[j-1] {
				sub = sc.substitutionCost(ra[i-1], rb[j-1])
			}
			best := min(prev[j]+insDel, curr[j-1]+insDel, prev[j-1]+sub)
			if i > 1 && j > 1 && ra[i-1] == rb[j-2] && ra[i-2] == rb[j-1] {
				best = min(best, prev2[j-2]+sc.config.TransposeCost)
			}
			curr[j] = best
		}
		prev2, prev, curr = prev, curr, prev2
	}
	return prev[lb]
}

// isOneAdjacentSwap reports whether b is a with exactly one pair of
// neighbouring runes swapped.
func isOneAdjacentSwap(ra, rb []rune) bool {
	if len(ra) != len(rb) || len(ra) < 2 {
		return false
	}
	diff := -1
	for i := 0; i < len(ra); i++ {
		if ra[i] != rb[i] {
			diff = i
			break
		}
	}
	if diff == -1 || diff+1 >= len(ra) {
		return false
	}
	if ra[diff] == rb[diff+1] && ra[diff+1] == rb[diff] {
		for j := diff + 2; j < len(ra); j++ {
			if ra[j] != rb[j] {
				return false
			}
		}
		return true
	}
	return false
}
