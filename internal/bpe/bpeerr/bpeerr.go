// Package bpeerr collects the sentinel errors the BPE engine can return, so
// callers can check error kinds with errors.Is instead of string matching.
package bpeerr

import "errors"

var (
	// ErrVocabTooSmall is returned when a requested vocabulary size is
	// below the 256-symbol byte alphabet.
	ErrVocabTooSmall = errors.New("vocab size must be >= 256")

	// ErrMalformedModel is returned when a merge-rule model file line does
	// not hold exactly two non-negative decimal integers.
	ErrMalformedModel = errors.New("malformed merge-rule line")

	// ErrEmptyCorpus is returned when a training input yields no words at
	// all (empty file, empty word list).
	ErrEmptyCorpus = errors.New("empty corpus")

	// ErrQueueEmpty names the empty-queue condition. pairqueue's ExtractTop
	// does not return it: it reports an empty queue with ok == false, which
	// the trainer's loop treats as "stop early".
	ErrQueueEmpty = errors.New("priority queue is empty")
)
