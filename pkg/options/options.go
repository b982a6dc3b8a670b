package options

var DefaultOptions = SymspellOptions{
	MaxDictionaryEditDistance: 2,
	PrefixLength:              7,
	CountThreshold:            1,
	DecomposeScript:           true,
}

type SymspellOptions struct {
	MaxDictionaryEditDistance int
	PrefixLength              int
	CountThreshold            int64
	// CorpusSize overrides the word-probability denominator. Zero derives it
	// from the loaded counts.
	CorpusSize      int64
	DecomposeScript bool
}

type Options interface {
	Apply(options *SymspellOptions)
}

type FuncConfig struct {
	ops func(options *SymspellOptions)
}

func (w FuncConfig) Apply(conf *SymspellOptions) {
	w.ops(conf)
}

func NewFuncOption(f func(options *SymspellOptions)) *FuncConfig {
	return &FuncConfig{ops: f}
}

// Build applies opts on top of DefaultOptions.
func Build(opts ...Options) SymspellOptions {
	conf := DefaultOptions
	for _, o := range opts {
		if o != nil {
			o.Apply(&conf)
		}
	}
	return conf
}

func WithMaxDictionaryEditDistance(maxDictionaryEditDistance int) Options {
	return NewFuncOption(func(options *SymspellOptions) {
		options.MaxDictionaryEditDistance = maxDictionaryEditDistance
	})
}

func WithPrefixLength(prefixLength int) Options {
	return NewFuncOption(func(options *SymspellOptions) {
		options.PrefixLength = prefixLength
	})
}

func WithCountThreshold(countThreshold int64) Options {
	return NewFuncOption(func(options *SymspellOptions) {
		options.CountThreshold = countThreshold
	})
}

func WithCorpusSize(n int64) Options {
	return NewFuncOption(func(options *SymspellOptions) {
		options.CorpusSize = n
	})
}

// WithDecomposeScript toggles the Hangul jamo pass of the Korean wrapper.
func WithDecomposeScript(enabled bool) Options {
	return NewFuncOption(func(options *SymspellOptions) {
		options.DecomposeScript = enabled
	})
}
