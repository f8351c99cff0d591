// Package pretokenize splits raw text into the word-like chunks BPE
// training and encoding operate on, using the GPT-2 pre-tokenizer pattern.
// That pattern needs a negative lookahead and possessive quantifiers that
// Go's RE2-based regexp cannot express, so this package is built on
// github.com/dlclark/regexp2, a backtracking engine, instead — the same
// choice the rest of the Go BPE ecosystem makes for this exact pattern.
package pretokenize

import "github.com/dlclark/regexp2"

// Pattern is the GPT-2 pre-tokenizer regular expression: contractions,
// then a leading-space-optional run of letters, digits, or other
// characters, then trailing or isolated whitespace.
//
// regexp2 does not support the `++` possessive-quantifier syntax directly;
// the equivalent atomic group (?>...) is used instead, which backtracks the
// same way (the engine commits to the match and never explores shorter
// alternatives), matching CPython's own GPT-2 tokenizer pattern semantics.
const Pattern = `'(?:[sdmt]|ll|ve|re)| ?(?>\p{L}+)| ?(?>\p{N}+)| ?(?>[^\s\p{L}\p{N}]+)|\s+$|\s+(?!\S)|\s`

// Tokenizer splits text into pre-tokens with the GPT-2 pattern.
type Tokenizer struct {
	re *regexp2.Regexp
}

// New compiles the pre-tokenizer pattern.
func New() (*Tokenizer, error) {
	re, err := regexp2.Compile(Pattern, regexp2.None)
	if err != nil {
		return nil, err
	}
	return &Tokenizer{re: re}, nil
}

// Split returns every pre-token substring of text, in order.
func (t *Tokenizer) Split(text string) ([]string, error) {
	var out []string

	m, err := t.re.FindStringMatch(text)
	for m != nil {
		if err != nil {
			return nil, err
		}
		out = append(out, m.String())
		m, err = t.re.FindNextMatch(m)
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CountWords splits text and tallies how many times each distinct
// pre-token occurs, the bag-of-words shape the trainer consumes directly.
func (t *Tokenizer) CountWords(text string) (map[string]int, error) {
	words, err := t.Split(text)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for _, w := range words {
		counts[w]++
	}
	return counts, nil
}
