// Package dictsource opens the dictionary rows an engine is built from:
// memory-mapped text files or PostgreSQL tables.
package dictsource

import (
	"context"
	"io"

	symspell "kosymspell/pkg"
)

// RowReadCloser is a unigram reader holding an underlying resource.
type RowReadCloser interface {
	symspell.RowReader
	io.Closer
}

// BigramReadCloser is a bigram reader holding an underlying resource.
type BigramReadCloser interface {
	symspell.BigramReader
	io.Closer
}

// Source opens fresh readers for every engine build.
type Source interface {
	Unigrams(ctx context.Context) (RowReadCloser, error)
	// Bigrams returns nil, nil when the source has no bigram table.
	Bigrams(ctx context.Context) (BigramReadCloser, error)
}
