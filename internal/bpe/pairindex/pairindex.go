// Package pairindex implements the inverted index from a token pair to the
// set of word-store indices whose current token sequence contains that pair
// at least once. It is grounded on the original trainer's mWhereToUpdate:
// a map from pair to the set of words that must be revisited when that pair
// is next merged.
//
// The index is allowed to over-approximate: a word index recorded for a
// pair may no longer actually contain that pair (earlier merges can remove
// occurrences without the index being told). Consumers must re-scan the
// word's current tokens rather than trust the index blindly; see
// internal/bpe/trainer.
package pairindex

import "github.com/sharifbpe/bpe/internal/bpe/pairqueue"

// Index maps a pair to the set of word indices that (possibly) contain it.
type Index struct {
	entries map[pairqueue.Pair]map[int]struct{}
}

// New returns an empty index.
func New() *Index {
	return &Index{entries: make(map[pairqueue.Pair]map[int]struct{})}
}

// Insert records that word wordIdx may contain pair.
func (idx *Index) Insert(pair pairqueue.Pair, wordIdx int) {
	set, ok := idx.entries[pair]
	if !ok {
		set = make(map[int]struct{})
		idx.entries[pair] = set
	}
	set[wordIdx] = struct{}{}
}

// Words returns the word indices currently recorded for pair, in no
// particular order. The returned slice is a snapshot; mutating it does not
// affect the index.
func (idx *Index) Words(pair pairqueue.Pair) []int {
	set, ok := idx.entries[pair]
	if !ok {
		return nil
	}
	out := make([]int, 0, len(set))
	for w := range set {
		out = append(out, w)
	}
	return out
}

// Erase removes the entire entry for pair, discarding every recorded word
// index. The trainer calls it when a pair is merged, right after taking the
// pair's word list and before rewriting every occurrence of it away.
func (idx *Index) Erase(pair pairqueue.Pair) {
	delete(idx.entries, pair)
}

// Len reports how many distinct pairs currently have an index entry.
func (idx *Index) Len() int { return len(idx.entries) }
