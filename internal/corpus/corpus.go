// Package corpus reads a training corpus file into a word-count multiset.
// It memory-maps the file and splits it into contiguous byte ranges, one
// per worker, each extended to the next line boundary so no line is ever
// split across two workers; each worker pre-tokenizes and counts its own
// range independently, and the per-worker counts are merged once every
// worker has joined. Grounded on MultiThreadFileReader.cpp/MMFile.h's
// mmap-and-partition design, reimplemented against
// github.com/edsrzf/mmap-go and golang.org/x/sync/errgroup since Go has no
// portable mmap in its standard library.
package corpus

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/edsrzf/mmap-go"
	"golang.org/x/sync/errgroup"

	"github.com/sharifbpe/bpe/internal/bpe/bpeerr"
	"github.com/sharifbpe/bpe/internal/pretokenize"
)

// ReadWordCounts memory-maps path and returns the bag-of-words multiset
// produced by running a fresh pre-tokenizer over it, split into threads
// contiguous ranges extended to the next newline. threads <= 0 defaults to
// runtime.GOMAXPROCS(0).
func ReadWordCounts(ctx context.Context, path string, threads int) (map[string]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("corpus: open %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("corpus: stat %s: %w", path, err)
	}
	if info.Size() == 0 {
		return nil, fmt.Errorf("corpus: %s: %w", path, bpeerr.ErrEmptyCorpus)
	}

	mapped, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("corpus: mmap %s: %w", path, err)
	}
	defer mapped.Unmap()

	if threads <= 0 {
		threads = runtime.GOMAXPROCS(0)
	}

	ranges := partition([]byte(mapped), threads)

	counts := make([]map[string]int, len(ranges))
	g, _ := errgroup.WithContext(ctx)
	for i, r := range ranges {
		i, r := i, r
		g.Go(func() error {
			tok, err := pretokenize.New()
			if err != nil {
				return err
			}
			c, err := tok.CountWords(string(mapped[r.start:r.end]))
			if err != nil {
				return err
			}
			counts[i] = c
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("corpus: %s: %w", path, err)
	}

	merged := make(map[string]int)
	for _, c := range counts {
		for word, n := range c {
			merged[word] += n
		}
	}
	if len(merged) == 0 {
		return nil, fmt.Errorf("corpus: %s: %w", path, bpeerr.ErrEmptyCorpus)
	}
	return merged, nil
}

type byteRange struct{ start, end int }

// partition splits data into up to n contiguous byte ranges, each extended
// forward to the next '\n' (or end of data) so every range ends on a line
// boundary and no line is ever split between two ranges. Grounded on
// MultiThreadFileReader.cpp's goToLineEnd.
func partition(data []byte, n int) []byteRange {
	if n < 1 {
		n = 1
	}
	size := len(data)
	if n > size {
		n = size
	}
	if n <= 1 {
		return []byteRange{{0, size}}
	}

	chunk := size / n
	var ranges []byteRange
	start := 0
	for i := 0; i < n; i++ {
		end := start + chunk
		if i == n-1 || end >= size {
			end = size
		} else {
			end = nextLineEnd(data, end)
		}
		if end > size {
			end = size
		}
		if end > start {
			ranges = append(ranges, byteRange{start, end})
		}
		start = end
		if start >= size {
			break
		}
	}
	return ranges
}

// nextLineEnd returns the index just after the next '\n' at or after pos,
// or len(data) if none remains.
func nextLineEnd(data []byte, pos int) int {
	if pos >= len(data) {
		return len(data)
	}
	idx := bytes.IndexByte(data[pos:], '\n')
	if idx < 0 {
		return len(data)
	}
	return pos + idx + 1
}
