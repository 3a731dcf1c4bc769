package search

import (
	"context"
	"sync"
)

// Race is a single-assignment result shared by competing workers. The first
// call to Resolve wins; every later call is ignored and reports false.
// Readers observe the winning value after Done is closed.
type Race[T any] struct {
	once  sync.Once
	done  chan struct{}
	value T
}

// NewRace returns an unresolved Race.
func NewRace[T any]() *Race[T] {
	return &Race[T]{done: make(chan struct{})}
}

// Resolve records v if the race is still open and reports whether this call
// won the race.
func (r *Race[T]) Resolve(v T) bool {
	won := false
	r.once.Do(func() {
		r.value = v
		won = true
		close(r.done)
	})
	return won
}

// Done returns a channel that is closed once the race has been resolved.
func (r *Race[T]) Done() <-chan struct{} {
	return r.done
}

// Result returns the winning value without blocking. ok is false while the
// race is still open.
func (r *Race[T]) Result() (v T, ok bool) {
	select {
	case <-r.done:
		return r.value, true
	default:
		return v, false
	}
}

// Wait blocks until the race is resolved or ctx is done.
func (r *Race[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-r.done:
		return r.value, nil
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
