// Package timing wraps a unit of work with a wall-clock measurement.
package timing

import (
	"fmt"
	"io"
	"strconv"
	"time"
)

// Reporter receives the elapsed time of a measured operation.
type Reporter interface {
	// Report is called once per measured operation, after it returned.
	// err is the operation's own error, passed through for context only.
	Report(label string, elapsed time.Duration, err error)
}

// ReporterFunc adapts a function to the Reporter interface.
type ReporterFunc func(label string, elapsed time.Duration, err error)

// Report calls f.
func (f ReporterFunc) Report(label string, elapsed time.Duration, err error) {
	f(label, elapsed, err)
}

// Measure runs op synchronously and returns its result, the elapsed
// wall-clock time, and its error. The result and error are forwarded
// unchanged; the duration is read from the monotonic clock and is never
// negative.
func Measure[T any](op func() (T, error)) (T, time.Duration, error) {
	start := time.Now()
	result, err := op()
	elapsed := time.Since(start)
	if elapsed < 0 {
		elapsed = 0
	}
	return result, elapsed, err
}

// TimeIt measures op, reports the elapsed time to r under label, and
// returns op's result and error unchanged.
func TimeIt[T any](r Reporter, label string, op func() (T, error)) (T, error) {
	result, elapsed, err := Measure(op)
	if r != nil {
		r.Report(label, elapsed, err)
	}
	return result, err
}

// Seconds formats d as fractional seconds with the shortest exact
// representation (e.g. "1.5", "0.000123").
func Seconds(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'f', -1, 64)
}

// LineReporter writes one "<label> took <seconds> seconds" line per report.
type LineReporter struct {
	Out io.Writer
}

// Report writes the timing line. Failed operations are still timed.
func (r LineReporter) Report(label string, elapsed time.Duration, _ error) {
	fmt.Fprintf(r.Out, "%s took %s seconds\n", label, Seconds(elapsed))
}
