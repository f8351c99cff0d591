package main

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sharifbpe/bpe"
)

func newLearnCmd() *cobra.Command {
	var (
		inputPath string
		wordsPath string
		vocabSize int
		outPath   string
		threads   int
	)

	cmd := &cobra.Command{
		Use:   "learn",
		Short: "Train a merge-rule model from a corpus file or word list",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			if vocabSize == 0 {
				vocabSize = cfg.VocabSize
			}
			if threads == 0 {
				threads = cfg.ReaderThreads
			}

			if inputPath == "" && wordsPath == "" {
				return fmt.Errorf("learn: one of --input or --words is required")
			}

			var mdl *bpe.Model
			var err error
			switch {
			case inputPath != "":
				mdl, err = bpe.Learn(context.Background(), vocabSize, inputPath, threads)
			default:
				var words map[string]int
				words, err = readWordList(wordsPath)
				if err == nil {
					mdl, err = bpe.LearnWords(vocabSize, words)
				}
			}
			if err != nil {
				return fmt.Errorf("learn: %w", err)
			}

			if err := mdl.Save(outPath); err != nil {
				return fmt.Errorf("learn: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "trained %d merge rules (vocab size %d) -> %s\n",
				mdl.NumRules(), mdl.VocabSize(), outPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&inputPath, "input", "", "path to a raw text corpus file")
	cmd.Flags().StringVar(&wordsPath, "words", "", "path to a newline-delimited pre-tokenized word list")
	cmd.Flags().IntVar(&vocabSize, "vocab-size", 0, "target vocabulary size (>= 256)")
	cmd.Flags().StringVar(&outPath, "out", "model.txt", "output model file path")
	cmd.Flags().IntVar(&threads, "threads", 0, "corpus reader thread count (0 = runtime default)")

	return cmd
}

// readWordList reads one pre-tokenized word per line and tallies repeats
// into the bag-of-words shape the trainer consumes.
func readWordList(path string) (map[string]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	counts := make(map[string]int)
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := sc.Text()
		if line == "" {
			continue
		}
		counts[line]++
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return counts, nil
}
