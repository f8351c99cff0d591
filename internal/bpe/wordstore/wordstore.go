// Package wordstore holds the corpus as parallel slices of token-ID
// sequences and per-word frequencies, and implements the in-place
// two-pointer rewrite used to apply a merge to a word's token sequence
// without allocating a new slice.
package wordstore

// Store is a collection of words, each an independent token-ID sequence
// with an immutable occurrence frequency.
type Store struct {
	tokens [][]int32
	freqs  []int32
}

// New returns an empty store.
func New() *Store {
	return &Store{}
}

// Add appends a word with the given initial token sequence and frequency,
// returning its index. tokens is taken by reference; callers must not reuse
// the backing array afterward.
func (s *Store) Add(tokens []int32, freq int32) int {
	s.tokens = append(s.tokens, tokens)
	s.freqs = append(s.freqs, freq)
	return len(s.tokens) - 1
}

// Len returns the number of words in the store.
func (s *Store) Len() int { return len(s.tokens) }

// Tokens returns the current token sequence for word i. The returned slice
// aliases the store's internal storage and is only valid until the next
// MergePair call on the same index.
func (s *Store) Tokens(i int) []int32 { return s.tokens[i] }

// Freq returns the occurrence frequency of word i.
func (s *Store) Freq(i int) int32 { return s.freqs[i] }

// MergeOccurrence describes one occurrence of a merged pair, with the
// neighbor tokens as they stood at the moment that occurrence was merged:
// Prev is read from the already-rewritten prefix (so it reflects any
// earlier occurrence merged earlier in the same pass), and Next is read
// from the not-yet-visited original suffix (so it is never an artifact of
// a later occurrence in the same pass). This matches
// BPELearner.cpp::replacePairInWord's iterator-based before/after reads,
// which a single after-the-fact scan of the fully rewritten sequence cannot
// reproduce when a word contains two or more non-overlapping occurrences of
// the same pair.
type MergeOccurrence struct {
	Pos     int
	HasPrev bool
	Prev    int32
	HasNext bool
	Next    int32
}

// MergePair rewrites word i in place, replacing every non-overlapping
// left-to-right occurrence of the adjacent pair (left, right) with newID,
// using a read-head/write-head two-pointer scan so no allocation is needed.
// It returns the neighbor context of every occurrence merged, captured at
// the instant of that occurrence (see MergeOccurrence).
func (s *Store) MergePair(i int, left, right, newID int32) []MergeOccurrence {
	toks := s.tokens[i]
	n := len(toks)
	if n < 2 {
		return nil
	}

	var occurrences []MergeOccurrence
	read, write := 0, 0
	for read < n {
		if read+1 < n && toks[read] == left && toks[read+1] == right {
			var occ MergeOccurrence
			if write > 0 {
				occ.HasPrev = true
				occ.Prev = toks[write-1]
			}
			if read+2 < n {
				occ.HasNext = true
				occ.Next = toks[read+2]
			}

			toks[write] = newID
			occ.Pos = write
			occurrences = append(occurrences, occ)

			write++
			read += 2
			continue
		}
		toks[write] = toks[read]
		write++
		read++
	}

	s.tokens[i] = toks[:write]
	return occurrences
}
