package orchestration

import (
	"io"
	"sync"
	"time"
)

// RunResult is the outcome of a single search run. It is the shared domain
// type between orchestration and presentation layers.
type RunResult struct {
	// Label is the human-readable run title, e.g. "Parallel hashing with 8 threads:".
	Label string
	// Name is the searcher identifier, e.g. "parallel-8".
	Name string
	// Workers is the number of concurrent workers of the run.
	Workers int
	// Candidate is the matching candidate. Meaningless when Err is set.
	Candidate uint64
	// Worker is the index of the worker that found Candidate.
	Worker int
	// Scanned is the number of candidates digested by all workers.
	Scanned uint64
	// Duration is the wall-clock time of the run.
	Duration time.Duration
	// Err is set when the run produced no result.
	Err error
}

// Rate returns the scan throughput in candidates per second.
func (r RunResult) Rate() float64 {
	if r.Duration <= 0 {
		return 0
	}
	return float64(r.Scanned) / r.Duration.Seconds()
}

// PresentationOptions configures how results are presented to the user.
type PresentationOptions struct {
	// Target is the value whose digest the suite searched for.
	Target uint64
	// Verbose prints the winning worker and scan counts.
	Verbose bool
	// Details prints the comparison table.
	Details bool
}

// ProgressUpdate is a periodic sample of the run in progress.
type ProgressUpdate struct {
	// RunIndex is the position of the run in the suite.
	RunIndex int
	// Label is the run title.
	Label string
	// Workers is the run's worker count.
	Workers int
	// Scanned is the number of candidates digested so far.
	Scanned uint64
	// Expected is the number of candidates a full scan up to the target
	// covers. It drives progress fractions and ETAs only.
	Expected uint64
	// Elapsed is the time since the run started.
	Elapsed time.Duration
}

// Fraction returns Scanned/Expected clamped to [0, 1].
func (u ProgressUpdate) Fraction() float64 {
	if u.Expected == 0 {
		return 0
	}
	return min(float64(u.Scanned)/float64(u.Expected), 1)
}

// ProgressReporter displays the samples of one run.
//
// DisplayProgress is started in its own goroutine before the run and must
// call wg.Done once progressChan is closed and its display is torn down.
type ProgressReporter interface {
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate)
}

// ProgressReporterFunc is a function adapter that implements ProgressReporter.
type ProgressReporterFunc func(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate)

// DisplayProgress calls the underlying function.
func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate) {
	f(wg, progressChan)
}

// NullProgressReporter drains the progress channel without displaying anything.
type NullProgressReporter struct{}

// DisplayProgress drains the channel without output.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate) {
	defer wg.Done()
	DrainChannel(progressChan)
}

// DrainChannel reads all updates until the channel is closed.
func DrainChannel(progressChan <-chan ProgressUpdate) {
	for range progressChan {
	}
}

// RunObserver is notified around every run. Calls happen on the goroutine
// executing the suite, in run order.
type RunObserver interface {
	RunStarted(index int, run Run)
	RunFinished(index int, result RunResult)
}

// ResultPresenter renders the suite's outcome.
type ResultPresenter interface {
	// PresentComparisonTable displays all runs, fastest first.
	PresentComparisonTable(results []RunResult, baseline time.Duration, out io.Writer)
	// PresentResult displays the agreed match.
	PresentResult(result RunResult, opts PresentationOptions, out io.Writer)
	// HandleError reports a failed run and returns its exit code.
	HandleError(err error, duration time.Duration, out io.Writer) int
}
