// Supplemental streaming encoder. BPETokenizer.cpp only ever encodes a
// whole word or a whole file in one pass; the teacher's own tokenizer
// independently built a chunked variant (EncoderState/StreamingEncoderV2)
// for encoding byte streams of unbounded length without buffering the
// entire input. This adapts that idea to the rank/merged-ID model used
// here: re-run the fixed-point merge over the buffered tail on every Push,
// and only emit tokens once enough trailing bytes have accumulated that no
// future append could still reach back and change them.
package encoder

import "github.com/sharifbpe/bpe/internal/bpe/model"

// StreamingEncoder incrementally encodes a byte stream, chunk by chunk,
// producing output identical to encoding the whole stream in one call to
// Encode regardless of how it is chunked.
type StreamingEncoder struct {
	model    *model.Model
	buf      []byte
	holdback int
}

// NewStream returns a StreamingEncoder sharing e's model.
func (e *Encoder) NewStream() *StreamingEncoder {
	holdback := e.model.MaxTokenByteLen() - 1
	if holdback < 0 {
		holdback = 0
	}
	return &StreamingEncoder{model: e.model, holdback: holdback}
}

// Push feeds the next chunk of raw bytes and returns the tokens that are
// now safe to emit: tokens whose underlying byte span cannot be reached by
// any merge triggered by bytes appended after this call.
func (s *StreamingEncoder) Push(chunk []byte) []int32 {
	s.buf = append(s.buf, chunk...)

	toks, lens := mergeWithLengths(s.model, s.buf)

	safeByteLimit := len(s.buf) - s.holdback
	if safeByteLimit <= 0 {
		return nil
	}

	var committed []int32
	covered := 0
	i := 0
	for i < len(toks) && covered+lens[i] <= safeByteLimit {
		committed = append(committed, toks[i])
		covered += lens[i]
		i++
	}

	s.buf = s.buf[covered:]
	return committed
}

// Flush encodes and returns every remaining buffered byte, and resets the
// encoder so it can be reused for a new stream.
func (s *StreamingEncoder) Flush() []int32 {
	toks, _ := mergeWithLengths(s.model, s.buf)
	s.buf = nil
	return toks
}

// mergeWithLengths runs the same minimum-rank fixed-point merge as
// Encoder.mergeToFixedPoint, but additionally tracks, in parallel, how many
// raw input bytes each output token spans — needed to know which prefix of
// output tokens is immune to merges with not-yet-seen bytes.
func mergeWithLengths(m *model.Model, buf []byte) ([]int32, []int) {
	toks := make([]int32, len(buf))
	lens := make([]int, len(buf))
	for i, b := range buf {
		toks[i] = int32(b)
		lens[i] = 1
	}

	for {
		bestRank := -1
		var left, right, id int32

		for i := 0; i+1 < len(toks); i++ {
			rank, ok := m.Rank(pairAt(toks, i))
			if !ok {
				continue
			}
			if bestRank == -1 || rank < bestRank {
				bestRank = rank
				mergedID, _ := m.MergedID(pairAt(toks, i))
				left, right, id = toks[i], toks[i+1], mergedID
			}
		}

		if bestRank == -1 {
			return toks, lens
		}

		toks, lens = mergeAllWithLengths(toks, lens, left, right, id)
	}
}

func mergeAllWithLengths(toks []int32, lens []int, left, right, id int32) ([]int32, []int) {
	n := len(toks)
	read, write := 0, 0
	for read < n {
		if read+1 < n && toks[read] == left && toks[read+1] == right {
			toks[write] = id
			lens[write] = lens[read] + lens[read+1]
			write++
			read += 2
			continue
		}
		toks[write] = toks[read]
		lens[write] = lens[read]
		write++
		read++
	}
	return toks[:write], lens[:write]
}
