package symspell

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseWords(t *testing.T) {
	assert.Equal(t, []string{"Don't", "stop", "123", "go"}, ParseWords("Don't stop, 123 go!"))
	assert.Equal(t, []string{"안녕하세요", "세계"}, ParseWords("안녕하세요, 세계."))
	assert.Empty(t, ParseWords(" ,.! "))
}

func TestIsAcronym(t *testing.T) {
	tests := []struct {
		token string
		want  bool
	}{
		{"NASA", true},
		{"B2B", true},
		{"A", false},
		{"Nasa", false},
		{"nasa", false},
	}
	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			assert.Equal(t, tt.want, isAcronym(tt.token))
		})
	}
}

func TestTransferCasingSimilar(t *testing.T) {
	tests := []struct {
		name, withCasing, withoutCasing, want string
	}{
		{"equal", "Hello World", "hello world", "Hello World"},
		{"insertion", "Helo", "hello", "Hello"},
		{"deletion", "HELLO", "helo", "HELO"},
		{"replacement", "ThE", "tha", "ThA"},
		{"empty target", "Hello", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, transferCasingSimilar(tt.withCasing, tt.withoutCasing))
		})
	}
}

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "Hello", capitalize("hELLO"))
	assert.Equal(t, "", capitalize(""))
	assert.Equal(t, "안녕", capitalize("안녕"))
}
