package pairindex

import (
	"sort"
	"testing"

	"github.com/sharifbpe/bpe/internal/bpe/pairqueue"
)

func TestInsertAndWords(t *testing.T) {
	idx := New()
	p := pairqueue.Pair{Left: 1, Right: 2}

	idx.Insert(p, 3)
	idx.Insert(p, 7)
	idx.Insert(p, 3) // duplicate insert is idempotent

	got := idx.Words(p)
	sort.Ints(got)
	want := []int{3, 7}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("want %v, got %v", want, got)
	}
}

func TestWordsOnUnknownPair(t *testing.T) {
	idx := New()
	if got := idx.Words(pairqueue.Pair{Left: 9, Right: 9}); got != nil {
		t.Fatalf("want nil for unknown pair, got %v", got)
	}
}

func TestErase(t *testing.T) {
	idx := New()
	p := pairqueue.Pair{Left: 1, Right: 1}
	idx.Insert(p, 0)
	idx.Erase(p)

	if got := idx.Words(p); got != nil {
		t.Fatalf("want nil after erase, got %v", got)
	}
	if idx.Len() != 0 {
		t.Fatalf("want empty index after erase, got len %d", idx.Len())
	}
}

func TestLenCountsDistinctPairs(t *testing.T) {
	idx := New()
	idx.Insert(pairqueue.Pair{Left: 0, Right: 1}, 0)
	idx.Insert(pairqueue.Pair{Left: 0, Right: 1}, 1)
	idx.Insert(pairqueue.Pair{Left: 2, Right: 3}, 0)

	if idx.Len() != 2 {
		t.Fatalf("want 2 distinct pairs, got %d", idx.Len())
	}
}
