package dictsource

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/edsrzf/mmap-go"

	symspell "kosymspell/pkg"
)

// FileSource reads "term count" and "term1 term2 count" text files.
type FileSource struct {
	UnigramPath string
	// BigramPath is optional.
	BigramPath string

	TermIndex        int
	CountIndex       int
	BigramTermIndex  int
	BigramCountIndex int
	// Separator splits fields; empty means runs of whitespace.
	Separator string
}

// NewFileSource uses the column layout of the usual frequency lists.
func NewFileSource(unigramPath, bigramPath string) *FileSource {
	return &FileSource{
		UnigramPath:      unigramPath,
		BigramPath:       bigramPath,
		CountIndex:       1,
		BigramCountIndex: 2,
	}
}

var _ Source = (*FileSource)(nil)

func (fs *FileSource) Unigrams(_ context.Context) (RowReadCloser, error) {
	m, err := openMapped(fs.UnigramPath)
	if err != nil {
		return nil, err
	}
	return &mappedRowReader{
		TextRowReader: symspell.NewTextRowReader(bytes.NewReader(m.data), fs.TermIndex, fs.CountIndex, fs.Separator),
		mapped:        m,
	}, nil
}

func (fs *FileSource) Bigrams(_ context.Context) (BigramReadCloser, error) {
	if fs.BigramPath == "" {
		return nil, nil
	}
	m, err := openMapped(fs.BigramPath)
	if err != nil {
		return nil, err
	}
	return &mappedBigramReader{
		TextBigramReader: symspell.NewTextBigramReader(bytes.NewReader(m.data), fs.BigramTermIndex, fs.BigramCountIndex, fs.Separator),
		mapped:           m,
	}, nil
}

// mappedFile is a read-only memory map of a whole file.
type mappedFile struct {
	file *os.File
	data mmap.MMap
}

func openMapped(path string) (*mappedFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dictionary: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat dictionary: %w", err)
	}
	// empty files cannot be mapped
	if info.Size() == 0 {
		return &mappedFile{file: f}, nil
	}
	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("mmap dictionary %s: %w", path, err)
	}
	return &mappedFile{file: f, data: data}, nil
}

func (m *mappedFile) Close() error {
	var errs []error
	if m.data != nil {
		errs = append(errs, m.data.Unmap())
		m.data = nil
	}
	errs = append(errs, m.file.Close())
	return errors.Join(errs...)
}

type mappedRowReader struct {
	*symspell.TextRowReader
	mapped *mappedFile
}

func (r *mappedRowReader) Close() error { return r.mapped.Close() }

type mappedBigramReader struct {
	*symspell.TextBigramReader
	mapped *mappedFile
}

func (r *mappedBigramReader) Close() error { return r.mapped.Close() }
