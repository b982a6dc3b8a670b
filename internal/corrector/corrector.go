package corrector

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"regexp"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"unicode"

	symspell "kosymspell/pkg"
	"kosymspell/pkg/kosymspell"
	"kosymspell/pkg/options"
	"kosymspell/pkg/verbosity"

	"kosymspell/internal/customdict"
	"kosymspell/internal/dictsource"
)

// ErrEmptyWord is returned for blank custom words.
var ErrEmptyWord = errors.New("empty word")

// WordStore persists user-added words.
type WordStore interface {
	Add(ctx context.Context, word string) error
	Remove(ctx context.Context, word string) error
	All(ctx context.Context) ([]string, error)
}

// =====================

// SpellCorrector serves lookups from an immutable engine snapshot. Changes
// to the vocabulary build a new snapshot and swap it in; requests already
// running keep the old one.
type SpellCorrector struct {
	config CorrectorConfig
	source dictsource.Source
	dict   WordStore

	mu          sync.Mutex // serializes rebuilds and guards customWords
	customWords map[string]bool
	current     atomic.Pointer[snapshot]
}

type snapshot struct {
	speller *kosymspell.KoSymSpell
	custom  map[string]bool
}

// =====================
// Initialization
// =====================

// NewSpellCorrector builds the first snapshot. source and dict may be nil.
func NewSpellCorrector(ctx context.Context, cfg CorrectorConfig, source dictsource.Source, dict WordStore) (*SpellCorrector, error) {
	sc := &SpellCorrector{config: cfg, source: source, dict: dict, customWords: make(map[string]bool)}
	sc.loadCustomWords(ctx)
	if err := sc.Reload(ctx); err != nil {
		return nil, err
	}
	return sc, nil
}

// Speller returns the current engine snapshot.
func (sc *SpellCorrector) Speller() *kosymspell.KoSymSpell {
	return sc.current.Load().speller
}

// Config returns the configuration the corrector was created with.
func (sc *SpellCorrector) Config() CorrectorConfig { return sc.config }

// Reload rebuilds the engine from the dictionary source and custom words.
func (sc *SpellCorrector) Reload(ctx context.Context) error {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.rebuild(ctx)
}

func (sc *SpellCorrector) rebuild(ctx context.Context) error {
	speller, err := kosymspell.New(
		options.WithMaxDictionaryEditDistance(sc.config.MaxEditDistance),
		options.WithPrefixLength(sc.config.PrefixLength),
		options.WithCountThreshold(sc.config.CountThreshold),
		options.WithCorpusSize(sc.config.CorpusSize),
		options.WithDecomposeScript(sc.config.DecomposeScript),
	)
	if err != nil {
		return fmt.Errorf("create engine: %w", err)
	}
	if sc.source != nil {
		if err := loadSource(ctx, speller, sc.source); err != nil {
			return err
		}
	}
	words := make([]string, 0, len(sc.customWords))
	custom := make(map[string]bool, len(sc.customWords))
	for w := range sc.customWords {
		words = append(words, w)
		custom[w] = true
	}
	if _, _, err := speller.LoadKoreanDictionary(customdict.Rows(words, sc.config.CustomWordCount), nil); err != nil {
		return fmt.Errorf("load custom words: %w", err)
	}
	sc.current.Store(&snapshot{speller: speller, custom: custom})
	log.Printf("engine ready: %d custom words", len(words))
	return nil
}

func loadSource(ctx context.Context, speller *kosymspell.KoSymSpell, source dictsource.Source) error {
	unigrams, err := source.Unigrams(ctx)
	if err != nil {
		return fmt.Errorf("open dictionary: %w", err)
	}
	defer unigrams.Close()

	var bigrams symspell.BigramReader
	br, err := source.Bigrams(ctx)
	if err != nil {
		return fmt.Errorf("open bigrams: %w", err)
	}
	if br != nil {
		defer br.Close()
		bigrams = br
	}
	words, pairs, err := speller.LoadKoreanDictionary(unigrams, bigrams)
	if err != nil {
		return err
	}
	log.Printf("dictionary loaded: %d rows, %d bigram rows", words, pairs)
	return nil
}

func (sc *SpellCorrector) loadCustomWords(ctx context.Context) {
	if sc.dict == nil {
		return
	}
	words, err := sc.dict.All(ctx)
	if err != nil {
		log.Printf("warning: could not load custom words: %v", err)
		return
	}
	for _, w := range words {
		if lw := normalizeWord(w); lw != "" {
			sc.customWords[lw] = true
		}
	}
}

// AddCustomWord stores word and rebuilds the engine with it.
func (sc *SpellCorrector) AddCustomWord(ctx context.Context, word string) error {
	lw := normalizeWord(word)
	if lw == "" {
		return ErrEmptyWord
	}
	sc.mu.Lock()
	defer sc.mu.Unlock()
	if sc.dict != nil {
		if err := sc.dict.Add(ctx, lw); err != nil {
			return err
		}
	}
	sc.customWords[lw] = true
	return sc.rebuild(ctx)
}

// RemoveCustomWord deletes word and rebuilds the engine without it.
func (sc *SpellCorrector) RemoveCustomWord(ctx context.Context, word string) error {
	lw := normalizeWord(word)
	if lw == "" {
		return ErrEmptyWord
	}
	sc.mu.Lock()
	defer sc.mu.Unlock()
	if sc.dict != nil {
		if err := sc.dict.Remove(ctx, lw); err != nil {
			return err
		}
	}
	delete(sc.customWords, lw)
	return sc.rebuild(ctx)
}

// CustomWords lists the user-added words in order.
func (sc *SpellCorrector) CustomWords() []string {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	words := make([]string, 0, len(sc.customWords))
	for w := range sc.customWords {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}

func normalizeWord(w string) string {
	return strings.ToLower(strings.TrimSpace(w))
}

// =====================
// Tokenization
// =====================

var tokenRe = regexp.MustCompile(`\p{L}+|\d+|\s+|[^\s\p{L}\d]`)

func tokenize(text string) []string { return tokenRe.FindAllString(text, -1) }

func isWord(tok string) bool {
	if tok == "" {
		return false
	}
	for _, r := range tok {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

func isTitle(s string) bool {
	r := []rune(s)
	if len(r) < 2 || !unicode.IsUpper(r[0]) {
		return false
	}
	return strings.ToLower(string(r[1:])) == string(r[1:])
}

func isUpper(s string) bool {
	return strings.ToUpper(s) == s && strings.ToLower(s) != s
}

func title(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	return strings.ToUpper(string(r[0])) + strings.ToLower(string(r[1:]))
}

func restoreCase(original, term string) string {
	switch {
	case isTitle(original):
		return title(term)
	case isUpper(original):
		return strings.ToUpper(term)
	}
	return term
}

// =====================
// Candidates
// =====================

// candidates returns the closest dictionary terms for token, most likely
// typing slip first.
func (sc *SpellCorrector) candidates(speller *kosymspell.KoSymSpell, token string) ([]Candidate, error) {
	suggs, err := speller.Lookup(token, verbosity.Closest, symspell.MaxEditDistance(sc.config.MaxEditDistance))
	if err != nil {
		return nil, err
	}
	out := make([]Candidate, 0, len(suggs))
	for _, s := range suggs {
		out = append(out, Candidate{
			Term:     s.Term,
			Distance: s.Distance,
			Count:    s.Count,
			Cost:     sc.typingCost(token, s.Term),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Cost != out[j].Cost {
			return out[i].Cost < out[j].Cost
		}
		return out[i].Count > out[j].Count
	})
	return out, nil
}

// =====================
// Correction
// =====================

// CorrectText corrects every word of text in place, keeping punctuation,
// whitespace and casing. Words with several plausible corrections are only
// reported, not replaced.
func (sc *SpellCorrector) CorrectText(text string) CorrectionResult {
	snap := sc.current.Load()
	tokens := tokenize(text)
	out := make([]string, len(tokens))
	copy(out, tokens)
	sugByPos := make(map[int]SuggestionInfo)

	type altChoice struct {
		idx    int
		term   string
		chosen int64
		count  int64
	}
	var altChoices []altChoice

	for idx, x := range tokens {
		if !isWord(x) {
			continue
		}
		xl := strings.ToLower(x)
		if sc.config.FilterShortWords && len([]rune(xl)) < 2 {
			continue
		}
		if snap.custom[xl] {
			continue
		}
		scored, err := sc.candidates(snap.speller, xl)
		if err != nil {
			log.Printf("lookup %q: %v", xl, err)
			continue
		}
		if len(scored) == 0 || scored[0].Distance == 0 {
			continue
		}

		best := scored[0]
		decision := "hint_only"
		if len(scored) == 1 || best.Cost < scored[1].Cost ||
			float64(best.Count) >= sc.config.CountMargin*float64(scored[1].Count) {
			decision = "auto_replace"
		}

		var list []string
		for _, c := range scored {
			if len(list) >= sc.config.TopKSuggestions {
				break
			}
			list = append(list, restoreCase(x, c.Term))
		}
		sugByPos[idx] = SuggestionInfo{Token: x, Suggestions: list, Decision: decision}

		if decision != "auto_replace" {
			continue
		}
		out[idx] = restoreCase(x, best.Term)
		if len(scored) > 1 {
			altChoices = append(altChoices, altChoice{idx: idx, term: scored[1].Term, chosen: best.Count, count: scored[1].Count})
		}
	}

	var alternatives []ScoredSuggestion
	for _, ch := range altChoices {
		altOut := append([]string(nil), out...)
		altOut[ch.idx] = restoreCase(tokens[ch.idx], ch.term)
		alternatives = append(alternatives, ScoredSuggestion{
			Text:  strings.Join(altOut, ""),
			Score: math.Log10(float64(ch.count) / float64(ch.chosen)),
		})
	}
	sort.SliceStable(alternatives, func(i, j int) bool { return alternatives[i].Score > alternatives[j].Score })

	return CorrectionResult{
		Original:     text,
		Corrected:    strings.Join(out, ""),
		Alternatives: alternatives,
		Suggestions:  sugByPos,
	}
}
