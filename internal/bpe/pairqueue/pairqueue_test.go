package pairqueue

import "testing"

func TestUpsertInsertAndExtract(t *testing.T) {
	q := New()

	if isNew := q.Upsert(Pair{1, 2}, 5); !isNew {
		t.Fatalf("expected insert of new pair to report true")
	}
	if !q.Contains(Pair{1, 2}) {
		t.Fatalf("expected queue to contain inserted pair")
	}
	if q.Len() != 1 {
		t.Fatalf("want len 1, got %d", q.Len())
	}

	pair, count, ok := q.ExtractTop()
	if !ok || pair != (Pair{1, 2}) || count != 5 {
		t.Fatalf("want (1,2)=5, got %v=%d ok=%v", pair, count, ok)
	}
	if !q.IsEmpty() {
		t.Fatalf("expected queue empty after extracting only entry")
	}
}

func TestExtractTopIsGlobalMaximum(t *testing.T) {
	q := New()
	q.Upsert(Pair{0, 1}, 3)
	q.Upsert(Pair{2, 3}, 9)
	q.Upsert(Pair{4, 5}, 1)
	q.Upsert(Pair{6, 7}, 9) // tie on count with (2,3); (2,3) must win lexicographically

	pair, count, ok := q.ExtractTop()
	if !ok || pair != (Pair{2, 3}) || count != 9 {
		t.Fatalf("want (2,3)=9 first, got %v=%d", pair, count)
	}

	pair, count, ok = q.ExtractTop()
	if !ok || pair != (Pair{6, 7}) || count != 9 {
		t.Fatalf("want (6,7)=9 second, got %v=%d", pair, count)
	}

	pair, count, ok = q.ExtractTop()
	if !ok || pair != (Pair{0, 1}) || count != 3 {
		t.Fatalf("want (0,1)=3 third, got %v=%d", pair, count)
	}
}

func TestUpsertAccumulatesDelta(t *testing.T) {
	q := New()
	q.Upsert(Pair{1, 1}, 2)
	isNew := q.Upsert(Pair{1, 1}, 3)
	if isNew {
		t.Fatalf("expected second upsert on existing pair to report false")
	}

	_, count, ok := q.ExtractTop()
	if !ok || count != 5 {
		t.Fatalf("want accumulated count 5, got %d ok=%v", count, ok)
	}
}

func TestUpsertNegativeDeltaOnAbsentPairIsNoop(t *testing.T) {
	q := New()
	if isNew := q.Upsert(Pair{9, 9}, -4); isNew {
		t.Fatalf("expected no-op on absent pair with non-positive delta")
	}
	if q.Contains(Pair{9, 9}) {
		t.Fatalf("expected absent pair to remain absent")
	}
	if !q.IsEmpty() {
		t.Fatalf("expected queue to remain empty")
	}
}

func TestNonPositiveEntriesAreFilteredAtExtraction(t *testing.T) {
	q := New()
	q.Upsert(Pair{1, 1}, 4)
	q.Upsert(Pair{1, 1}, -4) // decays to zero, stays resident
	q.Upsert(Pair{2, 2}, 7)

	if q.Len() != 2 {
		t.Fatalf("want both entries still resident, len=%d", q.Len())
	}

	pair, count, ok := q.ExtractTop()
	if !ok || pair != (Pair{2, 2}) || count != 7 {
		t.Fatalf("want (2,2)=7 skipping the decayed entry, got %v=%d ok=%v", pair, count, ok)
	}

	// the decayed (1,1) entry should have been discarded during the scan above.
	if _, _, ok := q.ExtractTop(); ok {
		t.Fatalf("expected no further positive entries")
	}
}

func TestExtractTopOnEmptyQueue(t *testing.T) {
	q := New()
	if _, _, ok := q.ExtractTop(); ok {
		t.Fatalf("expected ok=false on empty queue")
	}
}

func TestHeapInvariantUnderManyUpserts(t *testing.T) {
	q := New()
	pairs := []Pair{{0, 0}, {0, 1}, {1, 0}, {1, 1}, {2, 2}, {3, 3}, {4, 4}, {5, 5}}
	deltas := []int64{10, -3, 7, 2, 15, 1, 9, 9}

	for i, p := range pairs {
		q.Upsert(p, deltas[i])
	}

	var last int64 = 1 << 62
	var lastPair Pair
	first := true
	for {
		pair, count, ok := q.ExtractTop()
		if !ok {
			break
		}
		if count > last {
			t.Fatalf("count increased across extractions: %v=%d after %v=%d", pair, count, lastPair, last)
		}
		if count == last && !first && pair.Less(lastPair) {
			t.Fatalf("equal-count pairs extracted out of lexicographic order: %v after %v", pair, lastPair)
		}
		last = count
		lastPair = pair
		first = false
	}
}
