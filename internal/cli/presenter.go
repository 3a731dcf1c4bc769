package cli

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/agbru/hashrace/internal/digest"
	apperrors "github.com/agbru/hashrace/internal/errors"
	"github.com/agbru/hashrace/internal/format"
	"github.com/agbru/hashrace/internal/orchestration"
	"github.com/agbru/hashrace/internal/ui"
)

// CLIColorProvider supplies theme colors to apperrors.HandleSearchError.
type CLIColorProvider struct{}

var _ apperrors.ColorProvider = CLIColorProvider{}

func (CLIColorProvider) Red() string    { return ui.ColorRed() }
func (CLIColorProvider) Yellow() string { return ui.ColorYellow() }
func (CLIColorProvider) Reset() string  { return ui.ColorReset() }

// CLIResultPresenter implements orchestration.ResultPresenter for terminals.
type CLIResultPresenter struct{}

var _ orchestration.ResultPresenter = CLIResultPresenter{}

// tableColumns are the comparison table headers, in order.
var tableColumns = []string{"Run", "Workers", "Duration", "Scanned", "Rate", "Speed-up", "Status"}

// PresentComparisonTable prints one row per run. Widths are computed on the
// plain text so ANSI colors do not break alignment.
func (CLIResultPresenter) PresentComparisonTable(results []orchestration.RunResult, baseline time.Duration, out io.Writer) {
	fmt.Fprintf(out, "\n--- Comparison Summary ---\n")

	rows := make([][]string, len(results))
	widths := make([]int, len(tableColumns))
	for i, h := range tableColumns {
		widths[i] = len(h)
	}
	for i, r := range results {
		rows[i] = FormatTableRow(r, baseline)
		for j, cell := range rows[i] {
			widths[j] = max(widths[j], len([]rune(cell)))
		}
	}

	for i, h := range tableColumns {
		fmt.Fprintf(out, "%s%s%s%s", ui.ColorUnderline(), h, ui.ColorReset(), padRight("", widths[i]-len(h)+3))
	}
	fmt.Fprintln(out)

	for i, row := range rows {
		color := ui.ColorGreen()
		if results[i].Err != nil {
			color = ui.ColorRed()
		}
		for j, cell := range row {
			pad := padRight("", widths[j]-len([]rune(cell))+3)
			switch j {
			case 0:
				fmt.Fprintf(out, "%s%s%s%s", ui.ColorBlue(), cell, ui.ColorReset(), pad)
			case len(row) - 1:
				fmt.Fprintf(out, "%s%s%s", color, cell, ui.ColorReset())
			default:
				fmt.Fprintf(out, "%s%s", cell, pad)
			}
		}
		fmt.Fprintln(out)
	}
}

// FormatTableRow returns the plain cells of a table row.
func FormatTableRow(r orchestration.RunResult, baseline time.Duration) []string {
	duration := format.FormatExecutionDuration(r.Duration)
	if r.Duration == 0 {
		duration = "-"
	}
	speedup := 0.0
	if baseline > 0 && r.Duration > 0 && r.Err == nil {
		speedup = baseline.Seconds() / r.Duration.Seconds()
	}
	status := "OK"
	if r.Err != nil {
		status = "FAILED: " + r.Err.Error()
	}
	return []string{
		r.Name,
		strconv.Itoa(r.Workers),
		duration,
		format.FormatCount(r.Scanned),
		format.FormatRate(r.Rate()),
		format.FormatSpeedup(speedup),
		status,
	}
}

func padRight(s string, length int) string {
	if length <= 0 {
		return s
	}
	return s + fmt.Sprintf("%*s", length, "")
}

// PresentResult prints the candidate every successful run agreed on.
func (CLIResultPresenter) PresentResult(r orchestration.RunResult, opts orchestration.PresentationOptions, out io.Writer) {
	fmt.Fprintf(out, "\nMatch: %s%d%s  md5 %s%s%s\n",
		ui.ColorGreen(), r.Candidate, ui.ColorReset(),
		ui.ColorMagenta(), digest.Of(r.Candidate), ui.ColorReset())
	if opts.Verbose {
		fmt.Fprintf(out, "First found by worker %d of %s in %s.\n",
			r.Worker, r.Name, format.FormatExecutionDuration(r.Duration))
	}
}

// HandleError reports a failed run and returns its exit code.
func (CLIResultPresenter) HandleError(err error, duration time.Duration, out io.Writer) int {
	return apperrors.HandleSearchError(err, duration, out, CLIColorProvider{})
}

// RunDetailsObserver prints a line about each finished run, for --verbose.
type RunDetailsObserver struct {
	Out io.Writer
}

var _ orchestration.RunObserver = RunDetailsObserver{}

// RunStarted does nothing.
func (RunDetailsObserver) RunStarted(int, orchestration.Run) {}

// RunFinished prints the run's winner and scan statistics.
func (o RunDetailsObserver) RunFinished(_ int, r orchestration.RunResult) {
	fmt.Fprintln(o.Out, FormatRunDetails(r))
}

// FormatRunDetails renders the --verbose line of a run.
func FormatRunDetails(r orchestration.RunResult) string {
	if r.Err != nil {
		return fmt.Sprintf("  %s: %sno result%s (%v)", r.Name, ui.ColorYellow(), ui.ColorReset(), r.Err)
	}
	return fmt.Sprintf("  %s: candidate %d found by worker %d/%d, %s candidates scanned at %s",
		r.Name, r.Candidate, r.Worker, r.Workers, format.FormatCount(r.Scanned), format.FormatRate(r.Rate()))
}
