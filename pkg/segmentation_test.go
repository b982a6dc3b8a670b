package symspell

import (
	"errors"
	"math"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWordSegmentationWithoutCorrection(t *testing.T) {
	s := newTestEngine(t)
	got, err := s.WordSegmentation("thequickbrownfox", MaxEditDistance(0))
	require.NoError(t, err)
	assert.Equal(t, "the quick brown fox", got.SegmentedString)
	assert.Equal(t, "the quick brown fox", got.CorrectedString)
	assert.Equal(t, 3, got.DistanceSum)

	n := s.N()
	want := math.Log10(300/n) + math.Log10(50/n) + math.Log10(40/n) + math.Log10(30/n)
	assert.InDelta(t, want, got.LogProbSum, 1e-9)
}

func TestWordSegmentationKeepsExistingSpaces(t *testing.T) {
	s := newTestEngine(t)
	// the part " quick" spans six runes
	got, err := s.WordSegmentation("the quick", MaxEditDistance(0), MaxSegmentationWordLength(6))
	require.NoError(t, err)
	assert.Equal(t, "the quick", got.SegmentedString)
	assert.Equal(t, "the quick", got.CorrectedString)
	assert.Equal(t, 0, got.DistanceSum)
}

func TestWordSegmentationPunctuation(t *testing.T) {
	s := newTestEngine(t)
	got, err := s.WordSegmentation("the,fox", MaxEditDistance(0))
	require.NoError(t, err)
	assert.Equal(t, "the, fox", got.CorrectedString)
	assert.Equal(t, "the, fox", got.SegmentedString)
}

func TestWordSegmentationCapitalization(t *testing.T) {
	s := newTestEngine(t)
	got, err := s.WordSegmentation("Thequick", MaxEditDistance(0))
	require.NoError(t, err)
	assert.Equal(t, "The quick", got.CorrectedString)
	assert.Equal(t, "The quick", got.SegmentedString)
}

func TestWordSegmentationNormalizesInput(t *testing.T) {
	assert.Equal(t, "thequick", NormalizeSegmentationInput("the-quick"))
	assert.Equal(t, "fine", NormalizeSegmentationInput("ﬁne"))

	s := newTestEngine(t)
	got, err := s.WordSegmentation("the-quick", MaxEditDistance(0))
	require.NoError(t, err)
	assert.Equal(t, "the quick", got.CorrectedString)
}

func TestWordSegmentationEmpty(t *testing.T) {
	s := newTestEngine(t)
	got, err := s.WordSegmentation("")
	require.NoError(t, err)
	assert.Equal(t, Composition{}, got)
}

func TestWordSegmentationEmptyDictionary(t *testing.T) {
	s, err := New()
	require.NoError(t, err)
	got, err := s.WordSegmentation("abc")
	require.NoError(t, err)
	assert.Equal(t, "a b c", got.CorrectedString)
	assert.Equal(t, 5, got.DistanceSum)
}

func TestWordSegmentationRejectsLargeDistance(t *testing.T) {
	s := newTestEngine(t)
	_, err := s.WordSegmentation("thefox", MaxEditDistance(5))
	assert.True(t, errors.Is(err, ErrEditDistanceTooLarge))
}

func TestSegmentIsLinear(t *testing.T) {
	s := newTestEngine(t)
	phrase := []rune("thequickbr")
	tests := []struct {
		maxSegLen int
		want      int
	}{
		{1, 10},
		{3, 3*8 + 2 + 1},
		{5, 5*6 + 4 + 3 + 2 + 1},
		{20, 55},
	}
	for _, tt := range tests {
		q, err := s.newQuery([]Option{MaxSegmentationWordLength(tt.maxSegLen)})
		require.NoError(t, err)
		_, evaluated := s.segment(phrase, q)
		assert.Equal(t, tt.want, evaluated, "max length %d", tt.maxSegLen)
	}
}

func TestIsGluedPunctuation(t *testing.T) {
	assert.True(t, isGluedPunctuation(",", nil))
	assert.True(t, isGluedPunctuation("$", nil))
	assert.True(t, isGluedPunctuation("'s", nil))
	assert.False(t, isGluedPunctuation("a", nil))
	assert.False(t, isGluedPunctuation("。", nil))
	assert.False(t, isGluedPunctuation("'ss", nil))
	assert.False(t, isGluedPunctuation("", nil))

	pairs := func(s string) int { return (utf8.RuneCountInString(s) + 1) / 2 }
	assert.True(t, isGluedPunctuation("'ss", pairs))
	assert.False(t, isGluedPunctuation("'ssss", pairs))
}
