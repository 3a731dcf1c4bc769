package orchestration

import (
	"errors"

	apperrors "github.com/agbru/hashrace/internal/errors"
	"github.com/agbru/hashrace/internal/logging"
	"github.com/agbru/hashrace/internal/metrics"
)

// NullObserver ignores every notification.
type NullObserver struct{}

// RunStarted does nothing.
func (NullObserver) RunStarted(int, Run) {}

// RunFinished does nothing.
func (NullObserver) RunFinished(int, RunResult) {}

// ObserverFuncs adapts optional callbacks to RunObserver.
type ObserverFuncs struct {
	Started  func(index int, run Run)
	Finished func(index int, result RunResult)
}

// RunStarted calls Started when set.
func (o ObserverFuncs) RunStarted(index int, run Run) {
	if o.Started != nil {
		o.Started(index, run)
	}
}

// RunFinished calls Finished when set.
func (o ObserverFuncs) RunFinished(index int, result RunResult) {
	if o.Finished != nil {
		o.Finished(index, result)
	}
}

// MultiObserver fans notifications out in order. Nil entries are skipped.
type MultiObserver []RunObserver

// RunStarted notifies every observer.
func (m MultiObserver) RunStarted(index int, run Run) {
	for _, o := range m {
		if o != nil {
			o.RunStarted(index, run)
		}
	}
}

// RunFinished notifies every observer.
func (m MultiObserver) RunFinished(index int, result RunResult) {
	for _, o := range m {
		if o != nil {
			o.RunFinished(index, result)
		}
	}
}

// MetricsObserver records every run in the Prometheus collectors.
type MetricsObserver struct {
	Metrics *metrics.SuiteMetrics
}

// RunStarted sets the active worker gauge.
func (o MetricsObserver) RunStarted(_ int, run Run) {
	o.Metrics.RunStarted(run.Searcher.Workers())
}

// RunFinished records the run's outcome.
func (o MetricsObserver) RunFinished(_ int, r RunResult) {
	o.Metrics.RunFinished(r.Name, r.Workers, r.Scanned, r.Duration, runStatus(r.Err))
}

func runStatus(err error) string {
	switch {
	case err == nil:
		return metrics.StatusFound
	case apperrors.IsContextError(err):
		return metrics.StatusCanceled
	default:
		return metrics.StatusFailed
	}
}

// LoggingObserver writes one structured entry per run boundary.
type LoggingObserver struct {
	Logger logging.Logger
}

// RunStarted logs at debug level.
func (o LoggingObserver) RunStarted(index int, run Run) {
	o.Logger.Debug("run started",
		logging.Int("index", index),
		logging.String("searcher", run.Searcher.Name()),
		logging.Int("workers", run.Searcher.Workers()),
	)
}

// RunFinished logs successes at info level and failures at error level.
// Runs skipped because the suite was already canceled are logged at debug.
func (o LoggingObserver) RunFinished(index int, r RunResult) {
	fields := []logging.Field{
		logging.Int("index", index),
		logging.String("searcher", r.Name),
		logging.Uint64("scanned", r.Scanned),
		logging.Duration("elapsed", r.Duration),
	}
	var searchErr apperrors.SearchError
	switch {
	case r.Err == nil:
		o.Logger.Info("run finished", append(fields,
			logging.Uint64("candidate", r.Candidate),
			logging.Int("worker", r.Worker),
		)...)
	case r.Duration == 0 && errors.As(r.Err, &searchErr) && apperrors.IsContextError(r.Err):
		o.Logger.Debug("run skipped", append(fields, logging.Err(r.Err))...)
	default:
		o.Logger.Error("run failed", r.Err, fields...)
	}
}
