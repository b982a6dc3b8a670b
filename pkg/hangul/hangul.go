/*
Package hangul converts between precomposed Hangul syllables and their
compatibility jamo.

Spelling correction over decomposed text measures errors below the syllable:
"뇽" and "녕" differ in one vowel, so after Decompose they are one edit apart
instead of one whole-syllable substitution.

	hangul.Decompose("안녕") // "ㅇㅏㄴㄴㅕㅇ"
	hangul.Compose("ㅇㅏㄴㄴㅕㅇ") // "안녕"

A syllable decomposes into two runes (lead, vowel) or three (lead, vowel,
tail). Compound tails such as ㄳ and compound vowels such as ㅘ stay a single
rune. Characters that are not precomposed syllables pass through unchanged.
*/
package hangul

import "strings"

const (
	syllableBase  = 0xAC00
	syllableLast  = 0xD7A3
	vowelCount    = 21
	tailCount     = 28
	leadBlockSize = vowelCount * tailCount
)

var (
	leads  = []rune{'ㄱ', 'ㄲ', 'ㄴ', 'ㄷ', 'ㄸ', 'ㄹ', 'ㅁ', 'ㅂ', 'ㅃ', 'ㅅ', 'ㅆ', 'ㅇ', 'ㅈ', 'ㅉ', 'ㅊ', 'ㅋ', 'ㅌ', 'ㅍ', 'ㅎ'}
	vowels = []rune{'ㅏ', 'ㅐ', 'ㅑ', 'ㅒ', 'ㅓ', 'ㅔ', 'ㅕ', 'ㅖ', 'ㅗ', 'ㅘ', 'ㅙ', 'ㅚ', 'ㅛ', 'ㅜ', 'ㅝ', 'ㅞ', 'ㅟ', 'ㅠ', 'ㅡ', 'ㅢ', 'ㅣ'}
	tails  = []rune{0, 'ㄱ', 'ㄲ', 'ㄳ', 'ㄴ', 'ㄵ', 'ㄶ', 'ㄷ', 'ㄹ', 'ㄺ', 'ㄻ', 'ㄼ', 'ㄽ', 'ㄾ', 'ㄿ', 'ㅀ', 'ㅁ', 'ㅂ', 'ㅄ', 'ㅅ', 'ㅆ', 'ㅇ', 'ㅈ', 'ㅊ', 'ㅋ', 'ㅌ', 'ㅍ', 'ㅎ'}
)

var (
	leadIndex  = buildIndex(leads)
	vowelIndex = buildIndex(vowels)
	tailIndex  = buildIndex(tails)
)

func buildIndex(table []rune) map[rune]int {
	m := make(map[rune]int, len(table))
	for i, r := range table {
		if r != 0 {
			m[r] = i
		}
	}
	return m
}

// IsSyllable reports whether r is a precomposed Hangul syllable.
func IsSyllable(r rune) bool {
	return r >= syllableBase && r <= syllableLast
}

// IsVowel reports whether r is a compatibility jamo vowel.
func IsVowel(r rune) bool {
	_, ok := vowelIndex[r]
	return ok
}

// Split returns the compatibility jamo of syllable r. tail is 0 when the
// syllable has none; ok is false when r is not a syllable.
func Split(r rune) (lead, vowel, tail rune, ok bool) {
	if !IsSyllable(r) {
		return 0, 0, 0, false
	}
	idx := int(r - syllableBase)
	return leads[idx/leadBlockSize], vowels[(idx%leadBlockSize)/tailCount], tails[idx%tailCount], true
}

// Join assembles a syllable from compatibility jamo. tail may be 0.
func Join(lead, vowel, tail rune) (rune, bool) {
	li, ok := leadIndex[lead]
	if !ok {
		return 0, false
	}
	vi, ok := vowelIndex[vowel]
	if !ok {
		return 0, false
	}
	ti := 0
	if tail != 0 {
		if ti, ok = tailIndex[tail]; !ok {
			return 0, false
		}
	}
	return rune(syllableBase + li*leadBlockSize + vi*tailCount + ti), true
}

// Decompose replaces every Hangul syllable in s by its jamo sequence.
func Decompose(s string) string {
	if s == "" {
		return s
	}
	var sb strings.Builder
	sb.Grow(len(s) * 2)
	for _, r := range s {
		lead, vowel, tail, ok := Split(r)
		if !ok {
			sb.WriteRune(r)
			continue
		}
		sb.WriteRune(lead)
		sb.WriteRune(vowel)
		if tail != 0 {
			sb.WriteRune(tail)
		}
	}
	return sb.String()
}

// Compose reassembles jamo sequences into syllables, greedily from the left.
// A consonant after a vowel becomes the tail unless a vowel follows it, in
// which case it leads the next syllable.
func Compose(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	n := len(runes)
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < n; {
		if i+1 < n {
			if _, ok := leadIndex[runes[i]]; ok && IsVowel(runes[i+1]) {
				var tail rune
				if i+2 < n {
					if _, ok := tailIndex[runes[i+2]]; ok && (i+3 >= n || !IsVowel(runes[i+3])) {
						tail = runes[i+2]
					}
				}
				syllable, _ := Join(runes[i], runes[i+1], tail)
				sb.WriteRune(syllable)
				i += 2
				if tail != 0 {
					i++
				}
				continue
			}
		}
		sb.WriteRune(runes[i])
		i++
	}
	return sb.String()
}
