package symspell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// RowReader yields dictionary rows one by one.
// It returns io.EOF when the stream is exhausted. Errors wrapping
// ErrMalformedRow skip the row; any other error aborts the load.
type RowReader interface {
	Next() (term string, count int64, err error)
}

// BigramReader yields bigram rows one by one, with the same error contract
// as RowReader.
type BigramReader interface {
	Next() (term1, term2 string, count int64, err error)
}

// LoadDictionary ingests every row of r and returns the number of rows read
// (including rows that were dropped by the count threshold).
func (s *SymSpell) LoadDictionary(r RowReader) (int, error) {
	rows, skipped := 0, 0
	for {
		term, count, err := r.Next()
		if err == io.EOF {
			break
		}
		if errors.Is(err, ErrMalformedRow) {
			tracer().Debugf("skipping dictionary row: %v", err)
			skipped++
			continue
		}
		if err != nil {
			tracer().Errorf("dictionary load aborted after %d rows: %v", rows, err)
			return rows, fmt.Errorf("load dictionary: %w", err)
		}
		if term == "" {
			skipped++
			continue
		}
		rows++
		s.createDictionaryEntry(term, count)
	}
	tracer().Infof("dictionary loaded: rows=%d skipped=%d words=%d deletes=%d",
		rows, skipped, len(s.words), len(s.deletes))
	return rows, nil
}

// LoadBigramDictionary ingests every row of r into the bigram table.
func (s *SymSpell) LoadBigramDictionary(r BigramReader) (int, error) {
	rows, skipped := 0, 0
	defer s.updateBigramCountMin()
	for {
		term1, term2, count, err := r.Next()
		if err == io.EOF {
			break
		}
		if errors.Is(err, ErrMalformedRow) {
			tracer().Debugf("skipping bigram row: %v", err)
			skipped++
			continue
		}
		if err != nil {
			tracer().Errorf("bigram load aborted after %d rows: %v", rows, err)
			return rows, fmt.Errorf("load bigram dictionary: %w", err)
		}
		if term1 == "" || term2 == "" {
			skipped++
			continue
		}
		rows++
		s.createBigramEntry(term1+" "+term2, count)
	}
	tracer().Infof("bigrams loaded: rows=%d skipped=%d bigrams=%d", rows, skipped, len(s.bigrams))
	return rows, nil
}

// createBigramEntry adds count to key, holding it back until its running
// total reaches the count threshold.
func (s *SymSpell) createBigramEntry(key string, count int64) {
	if count <= 0 {
		return
	}
	if prev, ok := s.bigrams[key]; ok {
		s.bigrams[key] = addSaturating(prev, count)
		return
	}
	count = addSaturating(s.belowThresholdBigrams[key], count)
	if count < s.countThreshold {
		s.belowThresholdBigrams[key] = count
		return
	}
	delete(s.belowThresholdBigrams, key)
	s.bigrams[key] = count
}

func (s *SymSpell) updateBigramCountMin() {
	s.bigramCountMin = math.MaxInt64
	for _, c := range s.bigrams {
		if c < s.bigramCountMin {
			s.bigramCountMin = c
		}
	}
}

// createDictionaryEntry adds count to term. Terms below the count threshold
// accumulate separately until their total reaches it. Deletes are generated
// once, when a term first becomes a dictionary word.
func (s *SymSpell) createDictionaryEntry(term string, count int64) bool {
	if count <= 0 {
		return false
	}

	if prev, ok := s.belowThresholdWords[term]; s.countThreshold > 1 && ok {
		count = addSaturating(prev, count)
		if count < s.countThreshold {
			s.belowThresholdWords[term] = count
			return false
		}
		delete(s.belowThresholdWords, term)
	} else if prev, ok := s.words[term]; ok {
		s.words[term] = addSaturating(prev, count)
		s.totalCount = addSaturating(s.totalCount, count)
		return false
	} else if count < s.countThreshold {
		s.belowThresholdWords[term] = count
		return false
	}

	s.words[term] = count
	s.totalCount = addSaturating(s.totalCount, count)
	if n := utf8.RuneCountInString(term); n > s.maxLength {
		s.maxLength = n
	}
	for _, del := range s.editsPrefix(term).ToSlice() {
		s.deletes[del] = append(s.deletes[del], term)
	}
	return true
}

// TextRowReader reads "term count" lines.
type TextRowReader struct {
	scanner    *bufio.Scanner
	termIndex  int
	countIndex int
	separator  string
	line       int
}

var _ RowReader = (*TextRowReader)(nil)

// NewTextRowReader reads rows from r. Fields are split on separator, or on
// runs of whitespace when separator is empty.
func NewTextRowReader(r io.Reader, termIndex, countIndex int, separator string) *TextRowReader {
	return &TextRowReader{
		scanner:    newLineScanner(r),
		termIndex:  termIndex,
		countIndex: countIndex,
		separator:  separator,
	}
}

func (t *TextRowReader) Next() (string, int64, error) {
	for t.scanner.Scan() {
		t.line++
		parts, ok := splitLine(t.scanner.Text(), t.separator)
		if !ok {
			continue
		}
		if len(parts) <= max(t.termIndex, t.countIndex) {
			return "", 0, fmt.Errorf("%w: line %d has %d fields", ErrMalformedRow, t.line, len(parts))
		}
		count, err := strconv.ParseInt(parts[t.countIndex], 10, 64)
		if err != nil {
			return "", 0, fmt.Errorf("%w: line %d: %v", ErrMalformedRow, t.line, err)
		}
		return parts[t.termIndex], count, nil
	}
	if err := t.scanner.Err(); err != nil {
		return "", 0, err
	}
	return "", 0, io.EOF
}

// TextBigramReader reads "term1 term2 count" lines. term2 is the field after
// term1.
type TextBigramReader struct {
	scanner    *bufio.Scanner
	termIndex  int
	countIndex int
	separator  string
	line       int
}

var _ BigramReader = (*TextBigramReader)(nil)

func NewTextBigramReader(r io.Reader, termIndex, countIndex int, separator string) *TextBigramReader {
	return &TextBigramReader{
		scanner:    newLineScanner(r),
		termIndex:  termIndex,
		countIndex: countIndex,
		separator:  separator,
	}
}

func (t *TextBigramReader) Next() (string, string, int64, error) {
	for t.scanner.Scan() {
		t.line++
		parts, ok := splitLine(t.scanner.Text(), t.separator)
		if !ok {
			continue
		}
		if len(parts) <= max(t.termIndex+1, t.countIndex) {
			return "", "", 0, fmt.Errorf("%w: line %d has %d fields", ErrMalformedRow, t.line, len(parts))
		}
		count, err := strconv.ParseInt(parts[t.countIndex], 10, 64)
		if err != nil {
			return "", "", 0, fmt.Errorf("%w: line %d: %v", ErrMalformedRow, t.line, err)
		}
		return parts[t.termIndex], parts[t.termIndex+1], count, nil
	}
	if err := t.scanner.Err(); err != nil {
		return "", "", 0, err
	}
	return "", "", 0, io.EOF
}

func newLineScanner(r io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return scanner
}

func splitLine(line, separator string) ([]string, bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil, false
	}
	if separator == "" {
		return strings.Fields(line), true
	}
	return strings.Split(line, separator), true
}

// Entry is an in-memory dictionary row.
type Entry struct {
	Term  string
	Count int64
}

// SliceRowReader serves rows from a slice.
type SliceRowReader struct {
	entries []Entry
	index   int
}

func NewSliceRowReader(entries []Entry) *SliceRowReader {
	return &SliceRowReader{entries: entries}
}

func (r *SliceRowReader) Next() (string, int64, error) {
	if r.index >= len(r.entries) {
		return "", 0, io.EOF
	}
	e := r.entries[r.index]
	r.index++
	return e.Term, e.Count, nil
}

// BigramEntry is an in-memory bigram row.
type BigramEntry struct {
	Term1, Term2 string
	Count        int64
}

// SliceBigramReader serves bigram rows from a slice.
type SliceBigramReader struct {
	entries []BigramEntry
	index   int
}

func NewSliceBigramReader(entries []BigramEntry) *SliceBigramReader {
	return &SliceBigramReader{entries: entries}
}

func (r *SliceBigramReader) Next() (string, string, int64, error) {
	if r.index >= len(r.entries) {
		return "", "", 0, io.EOF
	}
	e := r.entries[r.index]
	r.index++
	return e.Term1, e.Term2, e.Count, nil
}
