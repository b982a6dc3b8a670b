package symspell

import (
	"errors"
	"regexp"
	"testing"

	"github.com/hbollon/go-edlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kosymspell/pkg/verbosity"
)

func TestDistanceBounded(t *testing.T) {
	tests := []struct {
		a, b string
		max  int
		want int
	}{
		{"abcdef", "abcdef", 2, 0},
		{"ab", "ba", 1, 1},
		{"ca", "abc", 3, 3},
		{"kitten", "sitting", 3, 3},
		{"kitten", "sitting", 2, -1},
		{"", "abc", 3, 3},
		{"", "abc", 2, -1},
		{"안녕", "안냥", 1, 1},
		{"ㅇㅏㄴㄴㅕㅇ", "ㅇㅏㄴㄴㅛㅇ", 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.a+"/"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.want, Distance(tt.a, tt.b, tt.max))
			assert.Equal(t, tt.want, Distance(tt.b, tt.a, tt.max))
		})
	}
}

func TestDistanceMatchesUnbounded(t *testing.T) {
	words := []string{"", "a", "ab", "ba", "abc", "acb", "hello", "hlelo", "world", "wrold", "kosymspell", "symspell"}
	for _, a := range words {
		for _, b := range words {
			assert.Equal(t, edlib.OSADamerauLevenshteinDistance(a, b), Distance(a, b, 100), "%q %q", a, b)
		}
	}
}

func TestLookupExactMatch(t *testing.T) {
	s := newTestEngine(t)
	got, err := s.Lookup("hello", verbosity.Top)
	require.NoError(t, err)
	assert.Equal(t, Suggestions{{Term: "hello", Distance: 0, Count: 80}}, got)
}

func TestLookupVerbosity(t *testing.T) {
	s := newTestEngine(t)

	top, err := s.Lookup("helo", verbosity.Top)
	require.NoError(t, err)
	assert.Equal(t, Suggestions{{Term: "hello", Distance: 1, Count: 80}}, top)

	closest, err := s.Lookup("helo", verbosity.Closest)
	require.NoError(t, err)
	assert.Equal(t, []string{"hello", "help", "hell"}, closest.Terms())

	all, err := s.Lookup("helo", verbosity.All)
	require.NoError(t, err)
	for _, term := range closest.Terms() {
		assert.Contains(t, all.Terms(), term)
	}
	for _, si := range all {
		assert.LessOrEqual(t, si.Distance, 2)
	}
}

func TestLookupProperties(t *testing.T) {
	s := newTestEngine(t)
	inputs := []string{"teh", "quikc", "brwn", "fx", "jmups", "ovr", "lazzy", "dgo", "wrold", "hepl", "x", ""}
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			top, err := s.Lookup(input, verbosity.Top)
			require.NoError(t, err)
			closest, err := s.Lookup(input, verbosity.Closest)
			require.NoError(t, err)
			all, err := s.Lookup(input, verbosity.All)
			require.NoError(t, err)

			assert.LessOrEqual(t, len(top), 1)
			if len(top) == 1 {
				require.NotEmpty(t, closest)
				assert.Equal(t, top[0], closest[0])
			}
			for _, term := range closest.Terms() {
				assert.Contains(t, all.Terms(), term)
			}
			for _, list := range []Suggestions{top, closest, all} {
				for i, si := range list {
					assert.LessOrEqual(t, si.Distance, 2)
					assert.Equal(t, Distance(input, si.Term, 2), si.Distance)
					if i > 0 {
						assert.False(t, si.less(list[i-1]), "%v before %v", list[i-1], si)
					}
				}
			}

			again, err := s.Lookup(input, verbosity.All)
			require.NoError(t, err)
			assert.Equal(t, all, again)
		})
	}
}

func TestLookupTopTieBreak(t *testing.T) {
	for _, entries := range [][]Entry{
		{{"cat", 10}, {"car", 10}},
		{{"car", 10}, {"cat", 10}},
	} {
		s, err := New()
		require.NoError(t, err)
		_, err = s.LoadDictionary(NewSliceRowReader(entries))
		require.NoError(t, err)
		got, err := s.Lookup("caz", verbosity.Top)
		require.NoError(t, err)
		assert.Equal(t, []string{"car"}, got.Terms())
	}
}

func TestLookupMaxEditDistance(t *testing.T) {
	s := newTestEngine(t)

	_, err := s.Lookup("helo", verbosity.Top, MaxEditDistance(3))
	assert.True(t, errors.Is(err, ErrEditDistanceTooLarge))
	_, err = s.Lookup("helo", verbosity.Top, MaxEditDistance(-1))
	assert.True(t, errors.Is(err, ErrInvalidOption))

	got, err := s.Lookup("helo", verbosity.All, MaxEditDistance(0))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLookupIncludeUnknown(t *testing.T) {
	s := newTestEngine(t)
	got, err := s.Lookup("xyzzyq", verbosity.Closest, IncludeUnknown())
	require.NoError(t, err)
	assert.Equal(t, Suggestions{{Term: "xyzzyq", Distance: 3, Count: 0}}, got)

	got, err = s.Lookup("helo", verbosity.Top, IncludeUnknown())
	require.NoError(t, err)
	assert.Equal(t, "hello", got[0].Term)
}

func TestLookupIgnoreToken(t *testing.T) {
	s := newTestEngine(t)
	digits := regexp.MustCompile(`^\d+$`)
	for _, v := range []verbosity.Verbosity{verbosity.Top, verbosity.Closest, verbosity.All} {
		got, err := s.Lookup("12345", v, IgnoreToken(digits.MatchString))
		require.NoError(t, err)
		assert.Equal(t, Suggestions{{Term: "12345", Distance: 0, Count: 1}}, got)
	}
}

func TestLookupTransferCasing(t *testing.T) {
	s := newTestEngine(t)
	got, err := s.Lookup("Helo", verbosity.Top, TransferCasing())
	require.NoError(t, err)
	assert.Equal(t, "Hello", got[0].Term)

	got, err = s.Lookup("HELLO", verbosity.Top, TransferCasing())
	require.NoError(t, err)
	assert.Equal(t, Suggestions{{Term: "HELLO", Distance: 0, Count: 80}}, got)
}

func TestLookupEmptyDictionary(t *testing.T) {
	s, err := New()
	require.NoError(t, err)
	got, err := s.Lookup("abc", verbosity.All)
	require.NoError(t, err)
	assert.Empty(t, got)
}
