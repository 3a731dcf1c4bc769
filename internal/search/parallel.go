package search

import (
	"context"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	apperrors "github.com/agbru/hashrace/internal/errors"
	"github.com/agbru/hashrace/internal/target"
)

// Parallel races one goroutine per interleaved lane and returns as soon as
// any of them finds the matching candidate.
type Parallel struct {
	workers   int
	partition func(int) ([]Lane, error)
}

// NewParallel returns a coordinator that runs workers lanes. A non-positive
// worker count is reported by Search as a ValidationError.
func NewParallel(workers int) *Parallel {
	return &Parallel{workers: workers, partition: Partition}
}

// Name returns "parallel-N".
func (p *Parallel) Name() string { return fmt.Sprintf("parallel-%d", p.workers) }

// Workers returns the number of lanes.
func (p *Parallel) Workers() int { return p.workers }

// Search launches one worker per lane under an errgroup and waits for the
// first match. On the first match, on cancellation of ctx, or on a worker
// failure, the shared stop flag is raised; Search then joins every worker
// before returning.
//
// Returns:
//   - Result: The matching candidate and the index of the lane that found it.
//   - error: A SearchError wrapping a ValidationError (bad worker count), a
//     context error, ErrCandidateSpaceExhausted, or ErrNoResult.
func (p *Parallel) Search(ctx context.Context, t *target.Holder, progress *Progress) (Result, error) {
	lanes, err := p.partition(p.workers)
	if err != nil {
		return Result{}, apperrors.SearchError{Searcher: p.Name(), Cause: err}
	}
	if err := ctx.Err(); err != nil {
		return Result{}, apperrors.SearchError{Searcher: p.Name(), Cause: err}
	}
	want := t.Digest()
	progress = ensureProgress(progress, len(lanes))

	g, gctx := errgroup.WithContext(ctx)
	var stop atomic.Bool
	release := context.AfterFunc(gctx, func() { stop.Store(true) })
	defer release()

	race := NewRace[Result]()
	for _, lane := range lanes {
		g.Go(func() error {
			c, found, err := scanLane(lane, want, &stop, progress.slot(lane.Index))
			if err != nil {
				return apperrors.WrapError(err, "lane %d", lane.Index)
			}
			if found {
				race.Resolve(Result{Candidate: c, Worker: lane.Index})
			}
			return nil
		})
	}

	joined := make(chan error, 1)
	go func() { joined <- g.Wait() }()

	var werr error
	select {
	case <-race.Done():
		stop.Store(true)
		werr = <-joined
	case werr = <-joined:
	}

	if res, ok := race.Result(); ok {
		return res, nil
	}
	switch {
	case werr != nil:
		return Result{}, apperrors.SearchError{Searcher: p.Name(), Cause: werr}
	case ctx.Err() != nil:
		return Result{}, apperrors.SearchError{Searcher: p.Name(), Cause: context.Cause(ctx)}
	default:
		return Result{}, apperrors.SearchError{Searcher: p.Name(), Cause: apperrors.ErrNoResult}
	}
}
