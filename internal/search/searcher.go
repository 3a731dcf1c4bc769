package search

import (
	"context"

	"github.com/agbru/hashrace/internal/target"
)

// Result identifies the matching candidate and the worker that found it.
type Result struct {
	// Candidate is the integer whose digest equals the target digest.
	Candidate uint64
	// Worker is the index of the lane that reported the match (0 for Sequential).
	Worker int
}

// Searcher is the common interface of every search strategy.
type Searcher interface {
	// Name returns a short identifier such as "sequential" or "parallel-8".
	Name() string
	// Workers returns the number of concurrent workers the searcher runs.
	Workers() int
	// Search scans candidates until one matches the target digest, the
	// context is done, or the candidate space is exhausted. progress may be
	// nil; when provided it must have been created with NewProgress(Workers()).
	Search(ctx context.Context, t *target.Holder, progress *Progress) (Result, error)
}
