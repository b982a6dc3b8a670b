package symspell

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pmezard/go-difflib/difflib"
)

// wordPattern matches letter/digit runs, keeping apostrophes inside words.
var wordPattern = regexp.MustCompile(`[\p{L}\p{N}\p{M}]+['’]*[\p{L}\p{N}\p{M}]*`)

// ParseWords is the default tokenizer of compound correction.
func ParseWords(text string) []string {
	return wordPattern.FindAllString(text, -1)
}

func isInteger(token string) bool {
	_, err := strconv.ParseInt(token, 10, 64)
	return err == nil
}

// isAcronym reports tokens of at least two runes made of upper-case letters
// and digits only.
func isAcronym(token string) bool {
	if utf8.RuneCountInString(token) < 2 {
		return false
	}
	for _, r := range token {
		if !unicode.IsUpper(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func hasDigit(token string) bool {
	return strings.IndexFunc(token, unicode.IsDigit) >= 0
}

// capitalize upper-cases the first rune and lower-cases the rest.
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

func startsUpper(s string) bool {
	r, size := utf8.DecodeRuneInString(s)
	return size > 0 && unicode.IsUpper(r)
}

// transferCasingSimilar applies the casing of withCasing to the similar,
// lower-case text withoutCasing. The two are aligned by an opcode diff.
func transferCasingSimilar(withCasing, withoutCasing string) string {
	if withoutCasing == "" || withCasing == "" {
		return withoutCasing
	}
	w := splitRunes(withCasing)
	wo := splitRunes(withoutCasing)
	lower := make([]string, len(w))
	for i, r := range []rune(withCasing) {
		lower[i] = string(unicode.ToLower(r))
	}
	matcher := difflib.NewMatcher(lower, wo)

	var b strings.Builder
	for _, op := range matcher.GetOpCodes() {
		switch op.Tag {
		case 'i':
			ins := strings.Join(wo[op.J1:op.J2], "")
			switch {
			case op.I1 == 0 || w[op.I1-1] == " ":
				if op.I1 < len(w) && startsUpper(w[op.I1]) {
					b.WriteString(capitalize(ins))
				} else {
					b.WriteString(strings.ToLower(ins))
				}
			case startsUpper(w[op.I1-1]):
				b.WriteString(strings.ToUpper(ins))
			default:
				b.WriteString(strings.ToLower(ins))
			}
		case 'r':
			upper := false
			for k := op.J1; k < op.J2; k++ {
				if i := op.I1 + k - op.J1; i < op.I2 {
					upper = startsUpper(w[i])
				}
				if upper {
					b.WriteString(strings.ToUpper(wo[k]))
				} else {
					b.WriteString(strings.ToLower(wo[k]))
				}
			}
		case 'e':
			b.WriteString(strings.Join(w[op.I1:op.I2], ""))
		}
	}
	return b.String()
}

func splitRunes(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}
