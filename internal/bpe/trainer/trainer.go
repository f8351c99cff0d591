// Package trainer drives the incremental BPE merge loop: repeatedly extract
// the highest-priority pair from the priority queue, rewrite every word that
// may contain it, and push the resulting neighbor-count deltas back into the
// queue and the inverted index. It is grounded directly on
// BPELearner.cpp's prepare/internalLearn/replacePairInWord/updateCount.
package trainer

import (
	"fmt"

	"github.com/sharifbpe/bpe/internal/bpe/bpeerr"
	"github.com/sharifbpe/bpe/internal/bpe/pairindex"
	"github.com/sharifbpe/bpe/internal/bpe/pairqueue"
	"github.com/sharifbpe/bpe/internal/bpe/wordstore"
)

// byteAlphabetSize is the number of token IDs reserved for the raw byte
// alphabet (0..255); the first merge rule is always assigned ID 256.
const byteAlphabetSize = 256

// Trainer owns the queue, inverted index, and word store for a single
// training run. It is a plain constructible value with no shared or global
// state, so independent trainers never interfere with each other.
type Trainer struct {
	queue *pairqueue.Queue
	index *pairindex.Index
	store *wordstore.Store
}

// New returns a Trainer ready to train.
func New() *Trainer {
	return &Trainer{
		queue: pairqueue.New(),
		index: pairindex.New(),
		store: wordstore.New(),
	}
}

// Train runs the merge loop over words (a bag of pre-tokenized word strings
// mapped to their multiplicity in the corpus) until vocabSize is reached or
// no mergeable pair remains, and returns the ordered list of merge rules.
// Rule i corresponds to token ID byteAlphabetSize+i.
func (tr *Trainer) Train(words map[string]int, vocabSize int) ([]pairqueue.Pair, error) {
	if vocabSize < byteAlphabetSize {
		return nil, fmt.Errorf("trainer: vocab size %d: %w", vocabSize, bpeerr.ErrVocabTooSmall)
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("trainer: %w", bpeerr.ErrEmptyCorpus)
	}

	tr.prepare(words)

	target := vocabSize - byteAlphabetSize
	rules := make([]pairqueue.Pair, 0, target)
	nextID := int32(byteAlphabetSize)

	for len(rules) < target {
		pair, _, ok := tr.queue.ExtractTop()
		if !ok {
			break
		}

		newID := nextID
		nextID++
		rules = append(rules, pair)

		wordIdxs := tr.index.Words(pair)
		tr.index.Erase(pair)

		for _, w := range wordIdxs {
			tr.applyMerge(w, pair, newID)
		}
	}

	return rules, nil
}

// prepare splits every word into its initial byte-token sequence, adds it to
// the word store, and seeds the queue and inverted index with the counts of
// every adjacent pair in every word, weighted by word frequency.
func (tr *Trainer) prepare(words map[string]int) {
	for word, freq := range words {
		tokens := make([]int32, len(word))
		for i := 0; i < len(word); i++ {
			tokens[i] = int32(word[i])
		}

		wordIdx := tr.store.Add(tokens, int32(freq))
		tr.countPairsInWord(wordIdx, tokens, int64(freq))
	}
}

func (tr *Trainer) countPairsInWord(wordIdx int, tokens []int32, freq int64) {
	for i := 0; i+1 < len(tokens); i++ {
		pair := pairqueue.Pair{Left: tokens[i], Right: tokens[i+1]}
		tr.queue.Upsert(pair, freq)
		tr.index.Insert(pair, wordIdx)
	}
}

// applyMerge rewrites word w's token sequence to collapse every occurrence
// of pair into newID, and applies the four neighbor-count delta updates per
// occurrence: the old (prev,pair.Left) and (pair.Right,next) pairs lose
// freq(w) occurrences, and the new (prev,newID) and (newID,next) pairs gain
// freq(w) occurrences. prev and next come from wordstore.MergePair's
// per-occurrence capture, taken at the instant each occurrence is merged —
// reading them from the fully rewritten sequence instead would, for a word
// with two or more non-overlapping occurrences of pair, let a later
// occurrence's merged output leak into an earlier occurrence's "next",
// double-counting a delta that replacePairInWord's left-to-right iterator
// never produces.
func (tr *Trainer) applyMerge(w int, pair pairqueue.Pair, newID int32) {
	freq := int64(tr.store.Freq(w))
	occurrences := tr.store.MergePair(w, pair.Left, pair.Right, newID)

	for _, occ := range occurrences {
		if occ.HasPrev {
			prev := occ.Prev
			tr.queue.Upsert(pairqueue.Pair{Left: prev, Right: pair.Left}, -freq)

			newPair := pairqueue.Pair{Left: prev, Right: newID}
			tr.queue.Upsert(newPair, freq)
			tr.index.Insert(newPair, w)
		}
		if occ.HasNext {
			next := occ.Next
			tr.queue.Upsert(pairqueue.Pair{Left: pair.Right, Right: next}, -freq)

			newPair := pairqueue.Pair{Left: newID, Right: next}
			tr.queue.Upsert(newPair, freq)
			tr.index.Insert(newPair, w)
		}
	}
}
