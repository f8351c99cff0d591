// Package model implements the merge-rule model file format: one "<left>
// <right>" pair of decimal token IDs per line, in merge order, with rank i
// (the line's zero-based index) producing token ID 256+i. It is grounded on
// BPETokenizer.cpp's ReadModel/Save pair, generalized from file-only to also
// build in-memory from a trainer's rule list.
package model

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sharifbpe/bpe/internal/bpe/bpeerr"
	"github.com/sharifbpe/bpe/internal/bpe/pairqueue"
)

// byteAlphabetSize mirrors trainer.byteAlphabetSize; duplicated here rather
// than imported to keep model independent of trainer (model only needs to
// know where merge IDs start, not how they were produced).
const byteAlphabetSize = 256

// Model is an ordered list of merge rules plus the rank and merged-ID
// lookup tables the encoder needs, built once at load/construction time.
type Model struct {
	Rules    []pairqueue.Pair
	rank     map[pairqueue.Pair]int
	mergedID map[pairqueue.Pair]int32
	bytes    map[int32][]byte
	vocab    map[string]int32
	maxLen   int
}

// New builds a Model from an ordered merge-rule list, such as the one
// returned by trainer.Trainer.Train.
func New(rules []pairqueue.Pair) *Model {
	m := &Model{
		Rules:    rules,
		rank:     make(map[pairqueue.Pair]int, len(rules)),
		mergedID: make(map[pairqueue.Pair]int32, len(rules)),
		bytes:    make(map[int32][]byte, byteAlphabetSize+len(rules)),
		vocab:    make(map[string]int32, len(rules)),
	}
	m.maxLen = 1

	for i, p := range rules {
		m.rank[p] = i
		id := int32(byteAlphabetSize + i)
		m.mergedID[p] = id

		expansion := append(append([]byte{}, m.tokenBytes(p.Left)...), m.tokenBytes(p.Right)...)
		m.bytes[id] = expansion
		m.vocab[string(expansion)] = id
		if len(expansion) > m.maxLen {
			m.maxLen = len(expansion)
		}
	}
	return m
}

// tokenBytes returns the raw byte sequence id expands to: the single byte
// itself for a raw byte ID, or the recorded expansion for a merged ID built
// up while New walked the rules in order.
func (m *Model) tokenBytes(id int32) []byte {
	if id < byteAlphabetSize {
		return []byte{byte(id)}
	}
	if b, ok := m.bytes[id]; ok {
		return b
	}
	return nil
}

// TokenBytes returns the raw byte sequence id expands to. Safe to call with
// any token ID the model has ever produced; unknown IDs return nil.
func (m *Model) TokenBytes(id int32) []byte {
	out := m.tokenBytes(id)
	if out == nil {
		return nil
	}
	cp := make([]byte, len(out))
	copy(cp, out)
	return cp
}

// MaxTokenByteLen returns the maximum number of raw input bytes any single
// token in the model can expand to, computed by walking the merge rules in
// order and summing each rule's constituent lengths. Used by the streaming
// encoder to decide how many trailing bytes must be withheld before a merge
// decision is safe to commit.
func (m *Model) MaxTokenByteLen() int { return m.maxLen }

// Rank returns the merge rank of pair (lower merges first) and whether a
// rule exists for it at all.
func (m *Model) Rank(p pairqueue.Pair) (int, bool) {
	r, ok := m.rank[p]
	return r, ok
}

// MergedID returns the token ID pair merges into, and whether a rule exists
// for it.
func (m *Model) MergedID(p pairqueue.Pair) (int32, bool) {
	id, ok := m.mergedID[p]
	return id, ok
}

// WholeWordID returns the token ID that word collapses to as a whole, and
// whether the model has a merge rule whose byte expansion exactly equals
// word. This is the encoder's first check (BPETokenizer.cpp's mVocabulary
// lookup in encodeWord), consulted before any iterative merge scan: the
// corpus-wide training process that produced the rule may have collapsed
// word through a merge path the greedy lowest-rank-first scan cannot
// reconstruct on its own.
func (m *Model) WholeWordID(word string) (int32, bool) {
	id, ok := m.vocab[word]
	return id, ok
}

// NumRules returns how many merge rules the model holds.
func (m *Model) NumRules() int { return len(m.Rules) }

// VocabSize returns the total vocabulary size implied by the model: the
// byte alphabet plus one merged token per rule.
func (m *Model) VocabSize() int { return byteAlphabetSize + len(m.Rules) }

// Load reads a merge-rule model file and builds a Model from it.
func Load(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("model: open %s: %w", path, err)
	}
	defer f.Close()

	rules, err := parseRules(f)
	if err != nil {
		return nil, fmt.Errorf("model: %s: %w", path, err)
	}
	return New(rules), nil
}

func parseRules(r io.Reader) ([]pairqueue.Pair, error) {
	var rules []pairqueue.Pair

	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("line %d: %w", lineNo, bpeerr.ErrMalformedModel)
		}

		left, err1 := strconv.ParseInt(fields[0], 10, 32)
		right, err2 := strconv.ParseInt(fields[1], 10, 32)
		if err1 != nil || err2 != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, bpeerr.ErrMalformedModel)
		}

		rules = append(rules, pairqueue.Pair{Left: int32(left), Right: int32(right)})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return rules, nil
}

// Save writes rules to path, one "<left> <right>\n" line per rule in merge
// order.
func Save(path string, rules []pairqueue.Pair) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("model: create %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, p := range rules {
		if _, err := fmt.Fprintf(w, "%d %d\n", p.Left, p.Right); err != nil {
			return fmt.Errorf("model: write %s: %w", path, err)
		}
	}
	return w.Flush()
}
