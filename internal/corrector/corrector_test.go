package corrector

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	symspell "kosymspell/pkg"
	"kosymspell/pkg/verbosity"

	"kosymspell/internal/dictsource"
)

type nopRowReader struct{ *symspell.SliceRowReader }

func (nopRowReader) Close() error { return nil }

type sliceSource struct{ entries []symspell.Entry }

func (s sliceSource) Unigrams(context.Context) (dictsource.RowReadCloser, error) {
	return nopRowReader{symspell.NewSliceRowReader(s.entries)}, nil
}

func (s sliceSource) Bigrams(context.Context) (dictsource.BigramReadCloser, error) {
	return nil, nil
}

type memStore struct{ words map[string]bool }

func (m *memStore) Add(_ context.Context, w string) error    { m.words[w] = true; return nil }
func (m *memStore) Remove(_ context.Context, w string) error { delete(m.words, w); return nil }
func (m *memStore) All(context.Context) ([]string, error) {
	var out []string
	for w := range m.words {
		out = append(out, w)
	}
	sort.Strings(out)
	return out, nil
}

func newTestCorrector(t *testing.T, entries []symspell.Entry, store WordStore) *SpellCorrector {
	t.Helper()
	sc, err := NewSpellCorrector(context.Background(), DefaultConfig(), sliceSource{entries}, store)
	require.NoError(t, err)
	return sc
}

var koEntries = []symspell.Entry{
	{Term: "안녕하세요", Count: 1000},
	{Term: "감사합니다", Count: 800},
	{Term: "학교", Count: 200},
	{Term: "가다", Count: 100},
	{Term: "hello", Count: 50},
}

func TestCorrectText(t *testing.T) {
	sc := newTestCorrector(t, koEntries, nil)

	res := sc.CorrectText("안뇽하세요, 세계!")
	assert.Equal(t, "안뇽하세요, 세계!", res.Original)
	assert.Equal(t, "안녕하세요, 세계!", res.Corrected)
	assert.Equal(t, map[int]SuggestionInfo{
		0: {Token: "안뇽하세요", Suggestions: []string{"안녕하세요"}, Decision: "auto_replace"},
	}, res.Suggestions)
	assert.Empty(t, res.Alternatives)
}

func TestCorrectTextKeepsCasing(t *testing.T) {
	sc := newTestCorrector(t, koEntries, nil)
	assert.Equal(t, "Hello world", sc.CorrectText("Helo world").Corrected)
	assert.Equal(t, "HELLO", sc.CorrectText("HELO").Corrected)
}

func TestCorrectTextHintOnly(t *testing.T) {
	sc := newTestCorrector(t, []symspell.Entry{{Term: "cat", Count: 10}, {Term: "car", Count: 10}}, nil)
	res := sc.CorrectText("caz")
	assert.Equal(t, "caz", res.Corrected)
	assert.Equal(t, SuggestionInfo{Token: "caz", Suggestions: []string{"car", "cat"}, Decision: "hint_only"}, res.Suggestions[0])
}

func TestCorrectTextAlternatives(t *testing.T) {
	sc := newTestCorrector(t, []symspell.Entry{{Term: "cat", Count: 100}, {Term: "car", Count: 10}}, nil)
	res := sc.CorrectText("a caz")
	assert.Equal(t, "a cat", res.Corrected)
	require.Len(t, res.Alternatives, 1)
	assert.Equal(t, "a car", res.Alternatives[0].Text)
	assert.InDelta(t, -1.0, res.Alternatives[0].Score, 1e-9)
}

func TestCustomWords(t *testing.T) {
	ctx := context.Background()
	store := &memStore{words: map[string]bool{"쿠버네티스": true}}
	sc := newTestCorrector(t, koEntries, store)
	assert.Equal(t, []string{"쿠버네티스"}, sc.CustomWords())

	before := sc.Speller()
	require.NoError(t, sc.AddCustomWord(ctx, " 깃허브 "))
	assert.True(t, store.words["깃허브"])
	assert.NotSame(t, before, sc.Speller())

	got, err := sc.Speller().Lookup("깃허부", verbosity.Top)
	require.NoError(t, err)
	assert.Equal(t, symspell.Suggestions{{Term: "깃허브", Distance: 1, Count: 1_000_000_000}}, got)

	got, err = before.Lookup("깃허부", verbosity.Top)
	require.NoError(t, err)
	assert.Empty(t, got)

	res := sc.CorrectText("깃허브")
	assert.Equal(t, "깃허브", res.Corrected)
	assert.Empty(t, res.Suggestions)

	require.NoError(t, sc.RemoveCustomWord(ctx, "깃허브"))
	assert.False(t, store.words["깃허브"])
	got, err = sc.Speller().Lookup("깃허브", verbosity.Top)
	require.NoError(t, err)
	assert.Empty(t, got)

	assert.ErrorIs(t, sc.AddCustomWord(ctx, "  "), ErrEmptyWord)
}

func TestWithoutSource(t *testing.T) {
	sc, err := NewSpellCorrector(context.Background(), DefaultConfig(), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "아무말", sc.CorrectText("아무말").Corrected)
}

func TestTypingCostMixedEdits(t *testing.T) {
	sc := &SpellCorrector{config: DefaultConfig()}
	for _, tc := range []struct {
		typed, intended string
		want            float64
	}{
		{"갑", "가", 0.9},
		{"가", "갑", 0.9},
		{"갑", "카", 2.7},
		{"갑", "닾", 2.4},
		{"갑자", "카자", 2.7},
		{"abcx", "bacy", 2.4},
		{"", "가", 1.8},
		{"가", "", 1.8},
	} {
		assert.InDelta(t, tc.want, sc.typingCost(tc.typed, tc.intended), 1e-9, "%s -> %s", tc.typed, tc.intended)
	}
	assert.Less(t, sc.typingCost("갑", "가"), sc.typingCost("갑", "카"))
}

func TestCorrectTextRanksByTypingCost(t *testing.T) {
	// Both are two jamo edits away; 카자 needs a deletion and a far
	// substitution, 닾자 two substitutions, one of them on a neighbouring key.
	sc := newTestCorrector(t, []symspell.Entry{{Term: "카자", Count: 100}, {Term: "닾자", Count: 10}}, nil)
	res := sc.CorrectText("갑자")
	assert.Equal(t, "닾자", res.Corrected)
	assert.Equal(t, SuggestionInfo{Token: "갑자", Suggestions: []string{"닾자", "카자"}, Decision: "auto_replace"}, res.Suggestions[0])
	require.Len(t, res.Alternatives, 1)
	assert.Equal(t, "카자", res.Alternatives[0].Text)
}

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"안녕", ",", " ", "world", " ", "42", "!"}, tokenize("안녕, world 42!"))
}

func TestKeyboard(t *testing.T) {
	sc := &SpellCorrector{config: DefaultConfig()}
	assert.Equal(t, 1.0, keyDistance('ㅂ', 'ㅈ'))
	assert.Equal(t, 1.0, keyDistance('ㅂ', 'ㅁ'))
	assert.Equal(t, 0.0, keyDistance('ㅃ', 'ㅂ'))
	assert.Equal(t, 2.5, keyDistance('ㅘ', 'ㅂ'))
	assert.Equal(t, 0.2, sc.substitutionCost('ㅃ', 'ㅂ'))
	assert.Equal(t, 0.6, sc.typingCost("안뇽", "안녕"))
	assert.Equal(t, 0.6, sc.typingCost("ab", "ba"))
	assert.Equal(t, 0.9, sc.typingCost("안녀", "안녕"))
	assert.Equal(t, 0.0, sc.typingCost("학교", "학교"))
	assert.True(t, isOneAdjacentSwap([]rune("abc"), []rune("bac")))
	assert.False(t, isOneAdjacentSwap([]rune("abc"), []rune("cba")))
}
