package wordstore

import "testing"

func int32sEqual(a, b []int32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestAddAndLen(t *testing.T) {
	s := New()
	i := s.Add([]int32{104, 101, 108, 108, 111}, 3)
	if i != 0 {
		t.Fatalf("want index 0, got %d", i)
	}
	if s.Len() != 1 {
		t.Fatalf("want len 1, got %d", s.Len())
	}
	if s.Freq(0) != 3 {
		t.Fatalf("want freq 3, got %d", s.Freq(0))
	}
}

func TestMergePairNonOverlapping(t *testing.T) {
	s := New()
	// "aaaa" -> tokens [97,97,97,97]; merging (97,97)->256 should produce
	// [256,256], not [256,97,97] (left-to-right, non-overlapping).
	idx := s.Add([]int32{97, 97, 97, 97}, 1)

	occurrences := s.MergePair(idx, 97, 97, 256)
	want := []int32{256, 256}
	if !int32sEqual(s.Tokens(idx), want) {
		t.Fatalf("want %v, got %v", want, s.Tokens(idx))
	}
	if len(occurrences) != 2 || occurrences[0].Pos != 0 || occurrences[1].Pos != 1 {
		t.Fatalf("want positions [0 1], got %+v", occurrences)
	}
	// First occurrence: no prev (start of word), next is the still-original
	// second "a" pair's left token (97), not the later merge's output.
	if occurrences[0].HasPrev {
		t.Fatalf("want no prev for first occurrence, got %+v", occurrences[0])
	}
	if !occurrences[0].HasNext || occurrences[0].Next != 97 {
		t.Fatalf("want next=97 for first occurrence, got %+v", occurrences[0])
	}
	// Second occurrence: prev is the already-rewritten first merge's output
	// (256), and no next (end of word).
	if !occurrences[1].HasPrev || occurrences[1].Prev != 256 {
		t.Fatalf("want prev=256 for second occurrence, got %+v", occurrences[1])
	}
	if occurrences[1].HasNext {
		t.Fatalf("want no next for second occurrence, got %+v", occurrences[1])
	}
}

func TestMergePairPreservesUnmatchedTokens(t *testing.T) {
	s := New()
	// "help": h=104 e=101 l=108 p=112 -> merge (101,108)="el" into 256.
	idx := s.Add([]int32{104, 101, 108, 112}, 1)

	occurrences := s.MergePair(idx, 101, 108, 256)
	want := []int32{104, 256, 112}
	if !int32sEqual(s.Tokens(idx), want) {
		t.Fatalf("want %v, got %v", want, s.Tokens(idx))
	}
	if len(occurrences) != 1 || occurrences[0].Pos != 1 {
		t.Fatalf("want positions [1], got %+v", occurrences)
	}
	occ := occurrences[0]
	if !occ.HasPrev || occ.Prev != 104 || !occ.HasNext || occ.Next != 112 {
		t.Fatalf("unexpected neighbor context: %+v", occ)
	}
}

func TestMergePairNoMatch(t *testing.T) {
	s := New()
	idx := s.Add([]int32{1, 2, 3}, 1)
	occurrences := s.MergePair(idx, 9, 9, 99)
	if occurrences != nil {
		t.Fatalf("want no occurrences, got %+v", occurrences)
	}
	if !int32sEqual(s.Tokens(idx), []int32{1, 2, 3}) {
		t.Fatalf("expected tokens unchanged, got %v", s.Tokens(idx))
	}
}

func TestMergePairSingleTokenWordIsNoop(t *testing.T) {
	s := New()
	idx := s.Add([]int32{42}, 5)
	occurrences := s.MergePair(idx, 42, 42, 7)
	if occurrences != nil {
		t.Fatalf("want nil occurrences on single-token word, got %+v", occurrences)
	}
}
