package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sharifbpe/bpe"
)

func newEncodeCmd() *cobra.Command {
	var (
		modelPath string
		text      string
		inPath    string
		outPath   string
		stream    bool
	)

	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Encode text against a trained model",
		RunE: func(cmd *cobra.Command, args []string) error {
			if modelPath == "" {
				return fmt.Errorf("encode: --model is required")
			}

			mdl, err := bpe.LoadModel(modelPath)
			if err != nil {
				return fmt.Errorf("encode: %w", err)
			}

			switch {
			case text != "":
				tokens, err := mdl.Encode(text)
				if err != nil {
					return fmt.Errorf("encode: %w", err)
				}
				for _, id := range tokens {
					fmt.Fprintf(cmd.OutOrStdout(), "%d ", id)
				}
				fmt.Fprintln(cmd.OutOrStdout())
				return nil

			case inPath != "" && outPath != "":
				if stream {
					return encodeFileStreaming(mdl, inPath, outPath)
				}
				if err := mdl.EncodeFile(inPath, outPath); err != nil {
					return fmt.Errorf("encode: %w", err)
				}
				return nil

			default:
				return fmt.Errorf("encode: either --text or both --in and --out are required")
			}
		},
	}

	cmd.Flags().StringVar(&modelPath, "model", "", "path to a trained model file")
	cmd.Flags().StringVar(&text, "text", "", "literal text to encode")
	cmd.Flags().StringVar(&inPath, "in", "", "input text file to encode")
	cmd.Flags().StringVar(&outPath, "out", "", "output token file")
	cmd.Flags().BoolVar(&stream, "stream", false, "encode --in as a byte stream via the incremental streaming encoder")

	return cmd
}

// encodeFileStreaming exercises bpe.Model.NewStream instead of the
// whole-file Encode path, feeding the input in fixed-size chunks.
func encodeFileStreaming(mdl *bpe.Model, inPath, outPath string) error {
	in, err := os.Open(inPath)
	if err != nil {
		return fmt.Errorf("encode: open %s: %w", inPath, err)
	}
	defer in.Close()

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("encode: create %s: %w", outPath, err)
	}
	defer out.Close()

	w := bufio.NewWriter(out)
	s := mdl.NewStream()

	const chunkSize = 4096
	buf := make([]byte, chunkSize)
	r := bufio.NewReader(in)
	for {
		n, readErr := r.Read(buf)
		if n > 0 {
			for _, id := range s.Push(buf[:n]) {
				if _, err := fmt.Fprintf(w, "%d\n", id); err != nil {
					return fmt.Errorf("encode: write %s: %w", outPath, err)
				}
			}
		}
		if readErr != nil {
			break
		}
	}
	for _, id := range s.Flush() {
		if _, err := fmt.Fprintf(w, "%d\n", id); err != nil {
			return fmt.Errorf("encode: write %s: %w", outPath, err)
		}
	}
	return w.Flush()
}
