package orchestration

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"slices"
	"strconv"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/agbru/hashrace/internal/errors"
	"github.com/agbru/hashrace/internal/search"
	"github.com/agbru/hashrace/internal/target"
	"github.com/agbru/hashrace/internal/timing"
)

const tracerName = "github.com/agbru/hashrace/internal/orchestration"

// ExecuteRuns executes the runs strictly one after another, so that no two
// timings overlap, and returns one RunResult per run in plan order.
//
// Each run is measured by the timing harness, which writes its
// "<label> took <seconds> seconds" line to out once the run's progress
// display has been torn down. Runs that have not started when ctx is done
// are not executed: their result carries the context's cause and no timing
// line is written for them.
//
// Parameters:
//   - ctx: Cancels the suite. Cancellation interrupts the current run.
//   - runs: The plan, see DefaultPlan.
//   - holder: The target shared by every run.
//   - progressReporter: Displays samples of the current run (NullProgressReporter for none).
//   - observer: Notified around every run; may be nil.
//   - out: Receives the timing lines.
//
// Returns:
//   - []RunResult: The outcome of each run.
func ExecuteRuns(ctx context.Context, runs []Run, holder *target.Holder, progressReporter ProgressReporter, observer RunObserver, out io.Writer) []RunResult {
	if observer == nil {
		observer = NullObserver{}
	}
	if progressReporter == nil {
		progressReporter = NullProgressReporter{}
	}
	tracer := otel.Tracer(tracerName)
	ctx, suiteSpan := tracer.Start(ctx, "suite", trace.WithAttributes(
		attribute.Int("suite.runs", len(runs)),
		attribute.String("target.digest", holder.Digest().String()),
	))
	defer suiteSpan.End()

	lines := timing.LineReporter{Out: out}
	results := make([]RunResult, len(runs))
	for i, run := range runs {
		results[i] = executeRun(ctx, tracer, i, run, holder, progressReporter, observer, lines)
	}
	return results
}

func executeRun(ctx context.Context, tracer trace.Tracer, index int, run Run, holder *target.Holder, progressReporter ProgressReporter, observer RunObserver, lines timing.Reporter) RunResult {
	s := run.Searcher
	res := RunResult{Label: run.Label, Name: s.Name(), Workers: s.Workers()}

	if err := context.Cause(ctx); err != nil {
		res.Err = apperrors.SearchError{Searcher: s.Name(), Cause: err}
		observer.RunFinished(index, res)
		return res
	}

	ctx, span := tracer.Start(ctx, "search", trace.WithAttributes(
		attribute.String("search.label", run.Label),
		attribute.String("search.name", s.Name()),
		attribute.Int("search.workers", s.Workers()),
	))
	defer span.End()

	observer.RunStarted(index, run)

	progress := search.NewProgress(s.Workers())
	progressChan := make(chan ProgressUpdate, progressBuffer)
	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go progressReporter.DisplayProgress(&displayWg, progressChan)

	smp := startSampler(ProgressUpdate{
		RunIndex: index,
		Label:    run.Label,
		Workers:  s.Workers(),
		Expected: expectedScan(holder.Value()),
	}, progress, progressChan, sampleInterval)

	// The display goes away before the timing line is written so the two
	// never interleave on a terminal.
	reporter := timing.ReporterFunc(func(label string, elapsed time.Duration, err error) {
		smp.Stop()
		close(progressChan)
		displayWg.Wait()
		res.Duration = elapsed
		lines.Report(label, elapsed, err)
	})

	found, err := timing.TimeIt(reporter, run.Label, func() (search.Result, error) {
		return s.Search(ctx, holder, progress)
	})
	res.Scanned = progress.Total()
	if err != nil {
		res.Err = err
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		res.Candidate, res.Worker = found.Candidate, found.Worker
		span.SetAttributes(
			attribute.Int("search.worker", found.Worker),
			attribute.String("search.candidate", strconv.FormatUint(found.Candidate, 10)),
		)
	}
	span.SetAttributes(attribute.String("search.scanned", strconv.FormatUint(res.Scanned, 10)))

	observer.RunFinished(index, res)
	return res
}

// expectedScan is the number of candidates 0..value.
func expectedScan(value uint64) uint64 {
	if value == ^uint64(0) {
		return value
	}
	return value + 1
}

// AnalyzeResults checks the suite's results and presents them.
//
// All successful runs must agree on the candidate; a disagreement is
// reported as ExitErrorMismatch. With opts.Details the comparison table is
// printed, fastest first, with speed-ups relative to the naive baseline when
// it ran. When some run failed, the first failure (in plan order) decides
// the exit code.
//
// Parameters:
//   - results: The results returned by ExecuteRuns.
//   - opts: Presentation options.
//   - presenter: The result presenter for display formatting.
//   - out: The io.Writer for the summary.
//
// Returns:
//   - int: An exit code indicating success (0) or the type of failure.
func AnalyzeResults(results []RunResult, opts PresentationOptions, presenter ResultPresenter, out io.Writer) int {
	var (
		firstValid *RunResult
		firstError *RunResult
		baseline   time.Duration
	)
	for i := range results {
		r := &results[i]
		if r.Err != nil {
			if firstError == nil {
				firstError = r
			}
			continue
		}
		if firstValid == nil {
			firstValid = r
		}
		if r.Label == NaiveLabel {
			baseline = r.Duration
		}
	}

	if opts.Details && len(results) > 0 {
		sorted := slices.Clone(results)
		slices.SortStableFunc(sorted, func(a, b RunResult) int {
			if (a.Err == nil) != (b.Err == nil) {
				if a.Err == nil {
					return -1
				}
				return 1
			}
			return cmp.Compare(a.Duration, b.Duration)
		})
		presenter.PresentComparisonTable(sorted, baseline, out)
	}

	if firstValid == nil {
		if firstError == nil {
			return apperrors.ExitSuccess
		}
		if opts.Details {
			fmt.Fprintf(out, "\nGlobal Status: Failure. No run found the target.\n")
		}
		return presenter.HandleError(firstError.Err, firstError.Duration, out)
	}

	for _, r := range results {
		if r.Err == nil && r.Candidate != firstValid.Candidate {
			fmt.Fprintf(out, "\nGlobal Status: CRITICAL ERROR! %s found %d but %s found %d.\n",
				firstValid.Name, firstValid.Candidate, r.Name, r.Candidate)
			return apperrors.ExitErrorMismatch
		}
	}

	if opts.Details || opts.Verbose {
		presenter.PresentResult(*firstValid, opts, out)
	}
	if firstError != nil {
		return presenter.HandleError(firstError.Err, firstError.Duration, out)
	}
	if opts.Details {
		fmt.Fprintf(out, "\nGlobal Status: Success. All runs agree.\n")
	}
	return apperrors.ExitSuccess
}
