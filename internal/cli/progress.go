package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/agbru/hashrace/internal/format"
	"github.com/agbru/hashrace/internal/orchestration"
	"github.com/agbru/hashrace/internal/ui"
)

// CLIProgressReporter shows a spinner with a progress bar, ETA and hash rate
// for the run in progress. The spinner only animates on a terminal.
type CLIProgressReporter struct {
	// Out is the spinner's destination, normally stderr.
	Out io.Writer
}

var _ orchestration.ProgressReporter = CLIProgressReporter{}

// DisplayProgress implements orchestration.ProgressReporter.
func (r CLIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan orchestration.ProgressUpdate) {
	DisplayProgress(wg, progressChan, r.Out)
}

// DisplayProgress renders samples until progressChan is closed, then stops
// the spinner and calls wg.Done.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan orchestration.ProgressUpdate, out io.Writer) {
	defer wg.Done()

	s := newSpinner(out)
	s.Start()
	defer s.Stop()

	var eta *format.ETAEstimator
	for update := range progressChan {
		if eta == nil {
			eta = format.NewETAEstimator(time.Now().Add(-update.Elapsed))
		}
		remaining := eta.Update(update.Fraction(), time.Now())
		s.UpdateSuffix(" " + FormatProgressLine(update, remaining))
	}
}

// FormatProgressLine renders one spinner suffix:
// "<label> [bar]  42.0% ETA: 3s  12.35 M/s".
func FormatProgressLine(u orchestration.ProgressUpdate, eta time.Duration) string {
	rate := 0.0
	if secs := u.Elapsed.Seconds(); secs > 0 {
		rate = float64(u.Scanned) / secs
	}
	return fmt.Sprintf("%s%s%s %s  %s",
		ui.ColorBold(), u.Label, ui.ColorReset(),
		format.FormatProgressBarWithETA(u.Fraction(), eta, ProgressBarWidth),
		format.FormatRate(rate))
}
