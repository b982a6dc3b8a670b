package kosymspell

import (
	symspell "kosymspell/pkg"
	"kosymspell/pkg/hangul"
)

// DecomposingRowReader decomposes the terms served by another reader.
type DecomposingRowReader struct {
	r symspell.RowReader
}

func NewDecomposingRowReader(r symspell.RowReader) *DecomposingRowReader {
	return &DecomposingRowReader{r: r}
}

func (d *DecomposingRowReader) Next() (string, int64, error) {
	term, count, err := d.r.Next()
	if err != nil {
		return term, count, err
	}
	return hangul.Decompose(term), count, nil
}

// DecomposingBigramReader decomposes both terms of every bigram row.
type DecomposingBigramReader struct {
	r symspell.BigramReader
}

func NewDecomposingBigramReader(r symspell.BigramReader) *DecomposingBigramReader {
	return &DecomposingBigramReader{r: r}
}

func (d *DecomposingBigramReader) Next() (string, string, int64, error) {
	term1, term2, count, err := d.r.Next()
	if err != nil {
		return term1, term2, count, err
	}
	return hangul.Decompose(term1), hangul.Decompose(term2), count, nil
}
