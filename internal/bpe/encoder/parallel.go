package encoder

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// EncodeAll encodes every word in words concurrently, partitioning the
// slice into contiguous ranges (one per worker) so each goroutine writes
// only into its own pre-sized slot of the result slice and no locking is
// needed. Grounded on BPETokenizer.cpp's Encode(vector<string_view>&, ...)
// thread-per-range partitioning.
//
// threads <= 0 defaults to runtime.GOMAXPROCS(0). Encode's per-word cache is
// not shared across workers (the Encoder itself is not safe for concurrent
// use), so EncodeAll builds one Encoder per worker sharing the same
// underlying model.
func (e *Encoder) EncodeAll(ctx context.Context, words []string, threads int) ([][]int32, error) {
	if threads <= 0 {
		threads = runtime.GOMAXPROCS(0)
	}
	if threads > len(words) {
		threads = len(words)
	}
	if threads <= 1 {
		out := make([][]int32, len(words))
		for i, w := range words {
			out[i] = e.Encode(w)
		}
		return out, nil
	}

	out := make([][]int32, len(words))
	g, _ := errgroup.WithContext(ctx)

	chunk := (len(words) + threads - 1) / threads
	for start := 0; start < len(words); start += chunk {
		end := start + chunk
		if end > len(words) {
			end = len(words)
		}

		start, end := start, end
		g.Go(func() error {
			worker := New(e.model)
			for i := start; i < end; i++ {
				out[i] = worker.Encode(words[i])
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
