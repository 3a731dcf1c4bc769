package search

import (
	"sync/atomic"

	"github.com/agbru/hashrace/internal/digest"
	apperrors "github.com/agbru/hashrace/internal/errors"
)

// scanLane digests the lane's candidates in order until one matches want,
// stop is raised, or the lane runs past the end of uint64. The number of
// digested candidates is published to scanned every FlushInterval steps and
// once more on exit.
func scanLane(lane Lane, want digest.Digest, stop *atomic.Bool, scanned *atomic.Uint64) (uint64, bool, error) {
	buf := make([]byte, 0, 20)
	var (
		d       digest.Digest
		pending uint64
	)
	flush := func() {
		scanned.Add(pending)
		pending = 0
	}
	defer flush()

	c := lane.Start
	for {
		if stop.Load() {
			return 0, false, nil
		}
		d, buf = digest.Sum(buf, c)
		pending++
		if d == want {
			return c, true, nil
		}
		if pending == FlushInterval {
			flush()
		}
		next, ok := lane.Next(c)
		if !ok {
			return 0, false, apperrors.ErrCandidateSpaceExhausted
		}
		c = next
	}
}
