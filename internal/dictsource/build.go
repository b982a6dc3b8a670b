package dictsource

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/gofrs/flock"

	symspell "kosymspell/pkg"
	"kosymspell/pkg/kosymspell"
)

// BuildDecomposedDictionary rewrites the "term count" file src into dst with
// every term decomposed into Hangul jamo. It returns the number of rows
// written. dst is replaced atomically while holding an exclusive lock on
// dst+".lock".
func BuildDecomposedDictionary(ctx context.Context, src, dst string) (int, error) {
	in, err := NewFileSource(src, "").Unigrams(ctx)
	if err != nil {
		return 0, err
	}
	defer in.Close()
	r := kosymspell.NewDecomposingRowReader(in)

	return writeLocked(dst, func(w *bufio.Writer) (int, error) {
		rows := 0
		for {
			term, count, err := r.Next()
			if err == io.EOF {
				return rows, nil
			}
			if errors.Is(err, symspell.ErrMalformedRow) {
				continue
			}
			if err != nil {
				return rows, err
			}
			if _, err := fmt.Fprintf(w, "%s %s\n", term, strconv.FormatInt(count, 10)); err != nil {
				return rows, err
			}
			rows++
		}
	})
}

// BuildDecomposedBigramDictionary is BuildDecomposedDictionary for
// "term1 term2 count" files.
func BuildDecomposedBigramDictionary(ctx context.Context, src, dst string) (int, error) {
	in, err := NewFileSource("", src).Bigrams(ctx)
	if err != nil {
		return 0, err
	}
	defer in.Close()
	r := kosymspell.NewDecomposingBigramReader(in)

	return writeLocked(dst, func(w *bufio.Writer) (int, error) {
		rows := 0
		for {
			term1, term2, count, err := r.Next()
			if err == io.EOF {
				return rows, nil
			}
			if errors.Is(err, symspell.ErrMalformedRow) {
				continue
			}
			if err != nil {
				return rows, err
			}
			if _, err := fmt.Fprintf(w, "%s %s %s\n", term1, term2, strconv.FormatInt(count, 10)); err != nil {
				return rows, err
			}
			rows++
		}
	})
}

func writeLocked(dst string, write func(w *bufio.Writer) (int, error)) (int, error) {
	lock := flock.New(dst + ".lock")
	if err := lock.Lock(); err != nil {
		return 0, fmt.Errorf("lock %s: %w", dst, err)
	}
	defer lock.Unlock()

	tmp := dst + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return 0, fmt.Errorf("create %s: %w", tmp, err)
	}
	w := bufio.NewWriter(f)
	rows, err := write(w)
	if err == nil {
		err = w.Flush()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tmp)
		return rows, fmt.Errorf("write %s: %w", dst, err)
	}
	if err := os.Rename(tmp, dst); err != nil {
		return rows, fmt.Errorf("replace %s: %w", dst, err)
	}
	return rows, nil
}
