package search

import (
	"context"
	"sync/atomic"

	apperrors "github.com/agbru/hashrace/internal/errors"
	"github.com/agbru/hashrace/internal/target"
)

// Sequential is the single-goroutine baseline: it tests 0, 1, 2, ... in
// order and returns the first candidate whose digest matches.
type Sequential struct{}

// NewSequential returns the baseline searcher.
func NewSequential() *Sequential {
	return &Sequential{}
}

// Name returns "sequential".
func (*Sequential) Name() string { return "sequential" }

// Workers returns 1.
func (*Sequential) Workers() int { return 1 }

// Search scans from zero on the calling goroutine. Cancellation of ctx is
// observed between two candidates.
func (s *Sequential) Search(ctx context.Context, t *target.Holder, progress *Progress) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, apperrors.SearchError{Searcher: s.Name(), Cause: err}
	}
	want := t.Digest()
	progress = ensureProgress(progress, 1)

	var stop atomic.Bool
	release := context.AfterFunc(ctx, func() { stop.Store(true) })
	defer release()

	c, found, err := scanLane(Lane{Index: 0, Start: 0, Stride: 1}, want, &stop, progress.slot(0))
	switch {
	case found:
		return Result{Candidate: c, Worker: 0}, nil
	case err != nil:
		return Result{}, apperrors.SearchError{Searcher: s.Name(), Cause: err}
	default:
		return Result{}, apperrors.SearchError{Searcher: s.Name(), Cause: context.Cause(ctx)}
	}
}
