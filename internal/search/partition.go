package search

import (
	"fmt"

	apperrors "github.com/agbru/hashrace/internal/errors"
)

// Lane is the arithmetic progression of candidates owned by one worker:
// Start, Start+Stride, Start+2*Stride, ...
type Lane struct {
	Index  int
	Start  uint64
	Stride uint64
}

// Partition splits the non-negative integers into workers interleaved lanes.
// Lane w starts at w and advances by workers, so every candidate c belongs to
// exactly one lane: the one with Index == c mod workers.
//
// Returns:
//   - []Lane: One lane per worker, ordered by index.
//   - error: A ValidationError if workers is not positive.
func Partition(workers int) ([]Lane, error) {
	if workers <= 0 {
		return nil, apperrors.ValidationError{
			Field:   "workers",
			Message: fmt.Sprintf("must be greater than zero, got %d", workers),
		}
	}
	lanes := make([]Lane, workers)
	for w := range lanes {
		lanes[w] = Lane{Index: w, Start: uint64(w), Stride: uint64(workers)}
	}
	return lanes, nil
}

// Owns reports whether c is one of the lane's candidates.
func (l Lane) Owns(c uint64) bool {
	return c >= l.Start && (c-l.Start)%l.Stride == 0
}

// Next returns the candidate following c in the lane. ok is false when the
// addition would overflow uint64.
func (l Lane) Next(c uint64) (next uint64, ok bool) {
	next = c + l.Stride
	return next, next > c
}
