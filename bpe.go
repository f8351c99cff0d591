// Package bpe is the public facade over the training and encoding engine:
// train a model from a corpus or word list, load a previously trained
// model, and encode text against it. It replaces the non-functional
// forward-declared Tokenizer stub the teacher repo shipped, with a real
// implementation wired to internal/bpe/{trainer,encoder,model} and
// internal/corpus.
package bpe

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/sharifbpe/bpe/internal/bpe/encoder"
	"github.com/sharifbpe/bpe/internal/bpe/model"
	"github.com/sharifbpe/bpe/internal/bpe/trainer"
	"github.com/sharifbpe/bpe/internal/corpus"
	"github.com/sharifbpe/bpe/internal/pretokenize"
)

// Model is a trained (or loaded) BPE model ready to encode text.
type Model struct {
	m   *model.Model
	enc *encoder.Encoder
	pre *pretokenize.Tokenizer
}

func wrap(m *model.Model) (*Model, error) {
	pre, err := pretokenize.New()
	if err != nil {
		return nil, err
	}
	return &Model{m: m, enc: encoder.New(m), pre: pre}, nil
}

// Learn trains a model with a target vocabulary of vocabSize tokens (at most
// vocabSize-256 merge rules) from the corpus file at
// inputPath, pre-tokenizing it with threads worker goroutines (<=0 means
// runtime default).
func Learn(ctx context.Context, vocabSize int, inputPath string, threads int) (*Model, error) {
	words, err := corpus.ReadWordCounts(ctx, inputPath, threads)
	if err != nil {
		return nil, fmt.Errorf("bpe: learn: %w", err)
	}
	return LearnWords(vocabSize, words)
}

// LearnWords trains a model with a target vocabulary of vocabSize tokens
// (at most vocabSize-256 merge rules) from an already-tallied bag of
// pre-tokenized words.
func LearnWords(vocabSize int, words map[string]int) (*Model, error) {
	tr := trainer.New()
	rules, err := tr.Train(words, vocabSize)
	if err != nil {
		return nil, fmt.Errorf("bpe: learn: %w", err)
	}
	return wrap(model.New(rules))
}

// LoadModel reads a merge-rule model file from disk.
func LoadModel(path string) (*Model, error) {
	m, err := model.Load(path)
	if err != nil {
		return nil, fmt.Errorf("bpe: load: %w", err)
	}
	return wrap(m)
}

// Save writes the model's merge rules to path in the standard model file
// format.
func (mdl *Model) Save(path string) error {
	if err := model.Save(path, mdl.m.Rules); err != nil {
		return fmt.Errorf("bpe: save: %w", err)
	}
	return nil
}

// NumRules reports how many merge rules the model holds.
func (mdl *Model) NumRules() int { return mdl.m.NumRules() }

// VocabSize reports the model's total vocabulary size (byte alphabet plus
// merge rules).
func (mdl *Model) VocabSize() int { return mdl.m.VocabSize() }

// Encode pre-tokenizes text and encodes every resulting word, concatenating
// the token IDs in order.
func (mdl *Model) Encode(text string) ([]int32, error) {
	words, err := mdl.pre.Split(text)
	if err != nil {
		return nil, fmt.Errorf("bpe: encode: %w", err)
	}

	var out []int32
	for _, w := range words {
		out = append(out, mdl.enc.Encode(w)...)
	}
	return out, nil
}

// NewStream returns a StreamingEncoder that encodes raw bytes incrementally
// without pre-tokenization, for callers feeding an already word-segmented
// byte stream (e.g. one word per Push).
func (mdl *Model) NewStream() *encoder.StreamingEncoder {
	return mdl.enc.NewStream()
}

// EncodeFile reads text from in, encodes it, and writes one
// "<token_string> <token_id>" line per token to out, matching
// BPETokenizer.cpp's EncodeFile output format.
func (mdl *Model) EncodeFile(in, out string) error {
	text, err := os.ReadFile(in)
	if err != nil {
		return fmt.Errorf("bpe: encode file: read %s: %w", in, err)
	}

	tokens, err := mdl.Encode(string(text))
	if err != nil {
		return fmt.Errorf("bpe: encode file: %w", err)
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("bpe: encode file: create %s: %w", out, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := mdl.writeTokenLines(w, tokens); err != nil {
		return fmt.Errorf("bpe: encode file: write %s: %w", out, err)
	}
	return w.Flush()
}

func (mdl *Model) writeTokenLines(w io.Writer, tokens []int32) error {
	for _, id := range tokens {
		if _, err := fmt.Fprintf(w, "%s %d\n", mdl.m.TokenBytes(id), id); err != nil {
			return err
		}
	}
	return nil
}
