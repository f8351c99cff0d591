// Package encoder applies a trained merge-rule model to pre-tokenized
// words. The primary algorithm is a direct port of BPETokenizer.cpp's
// encodeWord: repeatedly scan the current token sequence for the
// minimum-rank adjacent pair and merge every non-overlapping occurrence of
// it, in place, until no mergeable pair remains. This is deliberately
// O(length^2) per word and is not replaced with a global priority-queue
// merge: the reference behavior is defined in terms of this exact scan, not
// an equivalent-looking but differently tie-broken algorithm.
package encoder

import (
	"github.com/sharifbpe/bpe/internal/bpe/model"
	"github.com/sharifbpe/bpe/internal/bpe/pairqueue"
)

// Encoder applies a Model's merge rules to token sequences.
type Encoder struct {
	model *model.Model
	cache map[string][]int32
}

// New returns an Encoder bound to m.
func New(m *model.Model) *Encoder {
	return &Encoder{model: m, cache: make(map[string][]int32)}
}

// Encode maps a single pre-tokenized word (its raw bytes) to token IDs.
// Repeated words are served from a whole-word cache, matching the
// reference's per-word memoization. Before running the iterative scan, it
// checks the model's whole-word vocabulary (BPETokenizer.cpp's mVocabulary):
// if word's full byte string is exactly some rule's expansion, that rule's
// token ID is emitted directly, since the greedy lowest-rank-first scan is
// not guaranteed to reconstruct the same composite token that training's
// corpus-wide merge process produced for this exact word.
func (e *Encoder) Encode(word string) []int32 {
	if cached, ok := e.cache[word]; ok {
		return cloneInt32(cached)
	}

	if id, ok := e.model.WholeWordID(word); ok {
		result := []int32{id}
		e.cache[word] = cloneInt32(result)
		return result
	}

	toks := make([]int32, len(word))
	for i := 0; i < len(word); i++ {
		toks[i] = int32(word[i])
	}

	toks = e.mergeToFixedPoint(toks)

	e.cache[word] = cloneInt32(toks)
	return toks
}

// mergeToFixedPoint repeatedly finds the lowest-rank adjacent pair in toks
// and merges every non-overlapping occurrence of it, left to right, until
// no adjacent pair in the sequence has a rule.
func (e *Encoder) mergeToFixedPoint(toks []int32) []int32 {
	for {
		bestRank := -1
		var bestPair struct {
			left, right int32
			id          int32
		}

		for i := 0; i+1 < len(toks); i++ {
			rank, ok := e.model.Rank(pairAt(toks, i))
			if !ok {
				continue
			}
			if bestRank == -1 || rank < bestRank {
				bestRank = rank
				id, _ := e.model.MergedID(pairAt(toks, i))
				bestPair.left, bestPair.right, bestPair.id = toks[i], toks[i+1], id
			}
		}

		if bestRank == -1 {
			return toks
		}

		toks = mergeAll(toks, bestPair.left, bestPair.right, bestPair.id)
	}
}

func pairAt(toks []int32, i int) pairqueue.Pair {
	return pairqueue.Pair{Left: toks[i], Right: toks[i+1]}
}

// mergeAll rewrites toks in place (two-pointer read/write), replacing every
// non-overlapping left-to-right occurrence of (left,right) with id.
func mergeAll(toks []int32, left, right, id int32) []int32 {
	n := len(toks)
	read, write := 0, 0
	for read < n {
		if read+1 < n && toks[read] == left && toks[read+1] == right {
			toks[write] = id
			write++
			read += 2
			continue
		}
		toks[write] = toks[read]
		write++
		read++
	}
	return toks[:write]
}

func cloneInt32(s []int32) []int32 {
	out := make([]int32, len(s))
	copy(out, s)
	return out
}
