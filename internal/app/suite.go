package app

import (
	"context"
	"fmt"
	"io"

	"github.com/agbru/hashrace/internal/cli"
	apperrors "github.com/agbru/hashrace/internal/errors"
	"github.com/agbru/hashrace/internal/logging"
	"github.com/agbru/hashrace/internal/metrics"
	"github.com/agbru/hashrace/internal/orchestration"
	"github.com/agbru/hashrace/internal/sysmon"
	"github.com/agbru/hashrace/internal/ui"
)

// runSuite runs the plan in line-oriented mode. out receives the timing
// lines and, with --details, the banner, comparison table and memory
// statistics. Progress and --verbose output go to ErrWriter.
func (a *Application) runSuite(ctx context.Context, runs []orchestration.Run, obs *observability, logger logging.Logger, out io.Writer) int {
	host := sysmon.DescribeHost()
	memory := metrics.NewMemoryCollector()
	before := memory.Snapshot()

	if a.Config.Details {
		cli.PrintExecutionConfig(a.Config, host, a.Target, out)
	}

	observer := orchestration.MultiObserver{obs.Observer()}
	if a.Config.Verbose {
		observer = append(observer, cli.RunDetailsObserver{Out: a.ErrWriter})
	}

	results := orchestration.ExecuteRuns(ctx, runs, a.Target,
		cli.CLIProgressReporter{Out: a.ErrWriter}, observer, out)

	resultOut := a.ErrWriter
	if a.Config.Details {
		resultOut = out
	}
	opts := orchestration.PresentationOptions{
		Target:  a.Target.Value(),
		Verbose: a.Config.Verbose,
		Details: a.Config.Details,
	}
	exitCode := orchestration.AnalyzeResults(results, opts, cli.CLIResultPresenter{}, resultOut)

	after := memory.Snapshot()
	delta := after.Since(before)
	if a.Config.Details {
		cli.DisplayMemoryStats(after, delta, out)
	}

	if a.Config.OutputFile != "" {
		rep := cli.BuildReport(a.runID, Version, a.Config, host, a.Target, results, &delta)
		if err := cli.WriteReportToFile(a.Config.OutputFile, rep); err != nil {
			logger.Error("report not written", err, logging.String("path", a.Config.OutputFile))
			fmt.Fprintf(a.ErrWriter, "%sError saving report: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
			if exitCode == apperrors.ExitSuccess {
				exitCode = apperrors.ExitErrorGeneric
			}
		} else {
			fmt.Fprintf(a.ErrWriter, "Report saved to: %s%s%s\n", ui.ColorCyan(), a.Config.OutputFile, ui.ColorReset())
		}
	}

	logger.Info("suite finished", logging.Int("runs", len(results)), logging.Int("exit_code", exitCode))
	return exitCode
}
