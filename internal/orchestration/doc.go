// Package orchestration runs the benchmark suite: an ordered list of search
// runs against one target, each timed, traced and observed, followed by a
// consistency analysis of their results. It decouples the suite from
// presentation via the ProgressReporter, RunObserver and ResultPresenter
// interfaces.
package orchestration
