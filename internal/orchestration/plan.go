package orchestration

import (
	"fmt"

	"github.com/agbru/hashrace/internal/search"
)

// NaiveLabel titles the single-threaded baseline run.
const NaiveLabel = "Naive hashing with single thread:"

// Run is one entry of the suite: a searcher and the title its timing line
// carries.
type Run struct {
	Label    string
	Searcher search.Searcher
}

// ParallelLabel titles a parallel run with n workers.
func ParallelLabel(n int) string {
	return fmt.Sprintf("Parallel hashing with %d threads:", n)
}

// DefaultPlan builds the suite: the sequential baseline (unless naive is
// false) followed by one parallel run per worker count, in the given order.
// Worker counts are assumed validated.
func DefaultPlan(workers []int, naive bool) []Run {
	runs := make([]Run, 0, len(workers)+1)
	if naive {
		runs = append(runs, Run{Label: NaiveLabel, Searcher: search.NewSequential()})
	}
	for _, n := range workers {
		runs = append(runs, Run{Label: ParallelLabel(n), Searcher: search.NewParallel(n)})
	}
	return runs
}
