// Package kosymspell adapts the symspell engine to Korean text.
//
// Dictionaries and queries are decomposed into Hangul jamo before they reach
// the engine and results are recomposed into syllables, so a typo inside a
// syllable costs one edit instead of a whole-syllable substitution.
package kosymspell

import (
	"fmt"
	"unicode/utf8"

	symspell "kosymspell/pkg"
	"kosymspell/pkg/hangul"
	"kosymspell/pkg/options"
	"kosymspell/pkg/verbosity"
)

// Backend is the engine surface the wrapper needs.
type Backend interface {
	symspell.Corrector
	LookupCompoundParts(phrase string, maxEditDistance int, opts ...symspell.Option) (symspell.Suggestions, error)
	Segment(phrase string, opts ...symspell.Option) (symspell.Composition, error)
	LoadDictionary(r symspell.RowReader) (int, error)
	LoadBigramDictionary(r symspell.BigramReader) (int, error)
}

// KoSymSpell decorates a Backend with the Hangul jamo pass.
type KoSymSpell struct {
	engine    Backend
	decompose bool
}

var _ symspell.Corrector = (*KoSymSpell)(nil)

// New creates an engine from opts and wraps it. Decomposition follows
// options.WithDecomposeScript.
func New(opts ...options.Options) (*KoSymSpell, error) {
	engine, err := symspell.New(opts...)
	if err != nil {
		return nil, err
	}
	return Wrap(engine, options.Build(opts...).DecomposeScript), nil
}

// Wrap decorates an existing engine. Its dictionary must have been built
// with the same decomposition setting.
func Wrap(engine Backend, decompose bool) *KoSymSpell {
	return &KoSymSpell{engine: engine, decompose: decompose}
}

// Engine returns the wrapped engine.
func (k *KoSymSpell) Engine() Backend { return k.engine }

// Decomposes reports whether text is decomposed into jamo.
func (k *KoSymSpell) Decomposes() bool { return k.decompose }

// LoadKoreanDictionary loads unigram rows and, when bigrams is not nil,
// bigram rows. Terms are decomposed on the fly when decomposition is on, so
// the readers may serve either syllable or already decomposed text.
func (k *KoSymSpell) LoadKoreanDictionary(unigrams symspell.RowReader, bigrams symspell.BigramReader) (int, int, error) {
	if k.decompose {
		unigrams = NewDecomposingRowReader(unigrams)
	}
	words, err := k.engine.LoadDictionary(unigrams)
	if err != nil {
		return words, 0, fmt.Errorf("load korean dictionary: %w", err)
	}
	if bigrams == nil {
		return words, 0, nil
	}
	if k.decompose {
		bigrams = NewDecomposingBigramReader(bigrams)
	}
	pairs, err := k.engine.LoadBigramDictionary(bigrams)
	if err != nil {
		return words, pairs, fmt.Errorf("load korean bigrams: %w", err)
	}
	return words, pairs, nil
}

func (k *KoSymSpell) Lookup(phrase string, v verbosity.Verbosity, opts ...symspell.Option) (symspell.Suggestions, error) {
	suggestions, err := k.engine.Lookup(k.normalize(phrase), v, opts...)
	if err != nil {
		return nil, err
	}
	return k.composeAll(suggestions), nil
}

func (k *KoSymSpell) LookupCompound(phrase string, maxEditDistance int, opts ...symspell.Option) (symspell.Suggestions, error) {
	suggestions, err := k.engine.LookupCompound(k.normalize(phrase), maxEditDistance, opts...)
	if err != nil {
		return nil, err
	}
	return k.composeAll(suggestions), nil
}

// LookupCompoundParts returns the corrected item of every token.
func (k *KoSymSpell) LookupCompoundParts(phrase string, maxEditDistance int, opts ...symspell.Option) (symspell.Suggestions, error) {
	parts, err := k.engine.LookupCompoundParts(k.normalize(phrase), maxEditDistance, opts...)
	if err != nil {
		return nil, err
	}
	return k.composeAll(parts), nil
}

// WordSegmentation normalizes phrase before decomposing it; NFKC would
// otherwise fold compatibility jamo into conjoining jamo.
func (k *KoSymSpell) WordSegmentation(phrase string, opts ...symspell.Option) (symspell.Composition, error) {
	phrase = k.normalize(symspell.NormalizeSegmentationInput(phrase))
	if k.decompose {
		opts = append(opts[:len(opts):len(opts)], symspell.TermLength(composedLength))
	}
	c, err := k.engine.Segment(phrase, opts...)
	if err != nil {
		return symspell.Composition{}, err
	}
	if k.decompose {
		c.SegmentedString = hangul.Compose(c.SegmentedString)
		c.CorrectedString = hangul.Compose(c.CorrectedString)
	}
	return c, nil
}

// composedLength counts the runes of s as syllables.
func composedLength(s string) int {
	return utf8.RuneCountInString(hangul.Compose(s))
}

func (k *KoSymSpell) normalize(s string) string {
	if k.decompose {
		return hangul.Decompose(s)
	}
	return s
}

func (k *KoSymSpell) composeAll(suggestions symspell.Suggestions) symspell.Suggestions {
	if !k.decompose {
		return suggestions
	}
	for i := range suggestions {
		suggestions[i].Term = hangul.Compose(suggestions[i].Term)
	}
	return suggestions
}
