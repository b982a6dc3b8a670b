package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	symspell "kosymspell/pkg"
	"kosymspell/pkg/kosymspell"
	"kosymspell/pkg/options"
	"kosymspell/pkg/verbosity"

	"kosymspell/internal/config"
	"kosymspell/internal/dictsource"
	"kosymspell/internal/server"
)

// engineFlags are shared by the query subcommands.
type engineFlags struct {
	dictionary      string
	bigrams         string
	maxEditDistance int
	prefixLength    int
	countThreshold  int64
	decompose       bool
}

func (f *engineFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.dictionary, "dictionary", "ko_50k.txt", "Unigram dictionary file (term count)")
	cmd.Flags().StringVar(&f.bigrams, "bigrams", "", "Bigram dictionary file (term1 term2 count)")
	cmd.Flags().IntVar(&f.maxEditDistance, "max-edit-distance", 2, "Maximum edit distance")
	cmd.Flags().IntVar(&f.prefixLength, "prefix-length", 7, "Prefix length of the deletion index")
	cmd.Flags().Int64Var(&f.countThreshold, "count-threshold", 1, "Minimum count for a term to be suggested")
	cmd.Flags().BoolVar(&f.decompose, "decompose", true, "Decompose Hangul syllables into jamo")
}

func (f *engineFlags) open(ctx context.Context) (*kosymspell.KoSymSpell, error) {
	speller, err := kosymspell.New(
		options.WithMaxDictionaryEditDistance(f.maxEditDistance),
		options.WithPrefixLength(f.prefixLength),
		options.WithCountThreshold(f.countThreshold),
		options.WithDecomposeScript(f.decompose),
	)
	if err != nil {
		return nil, err
	}
	source := dictsource.NewFileSource(f.dictionary, f.bigrams)
	unigrams, err := source.Unigrams(ctx)
	if err != nil {
		return nil, err
	}
	defer unigrams.Close()

	var bigrams symspell.BigramReader
	br, err := source.Bigrams(ctx)
	if err != nil {
		return nil, err
	}
	if br != nil {
		defer br.Close()
		bigrams = br
	}
	start := time.Now()
	words, pairs, err := speller.LoadKoreanDictionary(unigrams, bigrams)
	if err != nil {
		return nil, err
	}
	log.Printf("loaded %d words, %d bigrams in %s", words, pairs, time.Since(start))
	return speller, nil
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "kosymspell",
		Short: "Korean SymSpell spelling correction",
		Long:  `Spelling correction, compound correction and word segmentation for Korean text over a jamo-decomposed SymSpell index`,
	}

	rootCmd.AddCommand(createLookupCmd())
	rootCmd.AddCommand(createCompoundCmd())
	rootCmd.AddCommand(createSegmentCmd())
	rootCmd.AddCommand(createBuildCmd())
	rootCmd.AddCommand(createServeCmd())

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func createLookupCmd() *cobra.Command {
	var (
		ef             engineFlags
		verbosityName  string
		includeUnknown bool
		transferCasing bool
	)
	cmd := &cobra.Command{
		Use:   "lookup [word...]",
		Short: "Suggest corrections for single words",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := verbosity.Parse(verbosityName)
			if err != nil {
				return err
			}
			speller, err := ef.open(cmd.Context())
			if err != nil {
				return err
			}
			var opts []symspell.Option
			if includeUnknown {
				opts = append(opts, symspell.IncludeUnknown())
			}
			if transferCasing {
				opts = append(opts, symspell.TransferCasing())
			}
			for _, word := range args {
				suggestions, err := speller.Lookup(word, v, opts...)
				if err != nil {
					return err
				}
				fmt.Printf("%s:\n", word)
				printSuggestions(suggestions)
			}
			return nil
		},
	}
	ef.register(cmd)
	cmd.Flags().StringVar(&verbosityName, "verbosity", "top", "Suggestions to return: top, closest or all")
	cmd.Flags().BoolVar(&includeUnknown, "include-unknown", false, "Return the input when nothing is found")
	cmd.Flags().BoolVar(&transferCasing, "transfer-casing", false, "Keep the casing of the input")
	return cmd
}

func createCompoundCmd() *cobra.Command {
	var ef engineFlags
	cmd := &cobra.Command{
		Use:   "compound [text]",
		Short: "Correct a multi-word text",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			speller, err := ef.open(cmd.Context())
			if err != nil {
				return err
			}
			suggestions, err := speller.LookupCompound(strings.Join(args, " "), ef.maxEditDistance)
			if err != nil {
				return err
			}
			printSuggestions(suggestions)
			return nil
		},
	}
	ef.register(cmd)
	return cmd
}

func createSegmentCmd() *cobra.Command {
	var (
		ef          engineFlags
		maxWordLen  int
		maxEditDist int
	)
	cmd := &cobra.Command{
		Use:   "segment [text]",
		Short: "Insert missing spaces and correct the words",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			speller, err := ef.open(cmd.Context())
			if err != nil {
				return err
			}
			opts := []symspell.Option{symspell.MaxEditDistance(maxEditDist)}
			if maxWordLen > 0 {
				opts = append(opts, symspell.MaxSegmentationWordLength(maxWordLen))
			}
			c, err := speller.WordSegmentation(strings.Join(args, " "), opts...)
			if err != nil {
				return err
			}
			fmt.Printf("segmented: %s\ncorrected: %s\ndistance:  %d\nlog prob:  %.4f\n",
				c.SegmentedString, c.CorrectedString, c.DistanceSum, c.LogProbSum)
			return nil
		},
	}
	ef.register(cmd)
	cmd.Flags().IntVar(&maxEditDist, "segment-edit-distance", 0, "Edit distance allowed per segmented word")
	cmd.Flags().IntVar(&maxWordLen, "max-word-length", 0, "Longest word to try; 0 uses the longest dictionary term")
	return cmd
}

func createBuildCmd() *cobra.Command {
	var bigram bool
	cmd := &cobra.Command{
		Use:   "build [source] [destination]",
		Short: "Write a dictionary file with decomposed terms",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			build := dictsource.BuildDecomposedDictionary
			if bigram {
				build = dictsource.BuildDecomposedBigramDictionary
			}
			n, err := build(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			log.Printf("wrote %d rows to %s", n, args[1])
			return nil
		},
	}
	cmd.Flags().BoolVar(&bigram, "bigram", false, "Source is a bigram dictionary")
	return cmd
}

func createServeCmd() *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "YAML configuration file")
	return cmd
}

func serve(ctx context.Context, cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	sc, cleanup, err := server.Bootstrap(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	srv := server.NewServer(cfg.Server, sc)
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	log.Printf("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func printSuggestions(suggestions symspell.Suggestions) {
	if len(suggestions) == 0 {
		fmt.Println("  (no suggestions)")
		return
	}
	for _, s := range suggestions {
		fmt.Printf("  %s\t%d\t%d\n", s.Term, s.Distance, s.Count)
	}
}
