package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/agbru/hashrace/internal/cli"
	"github.com/agbru/hashrace/internal/config"
	apperrors "github.com/agbru/hashrace/internal/errors"
	"github.com/agbru/hashrace/internal/logging"
	"github.com/agbru/hashrace/internal/orchestration"
	"github.com/agbru/hashrace/internal/target"
	"github.com/agbru/hashrace/internal/tui"
	"github.com/agbru/hashrace/internal/ui"
)

// Application represents a hashrace invocation.
type Application struct {
	Config    config.AppConfig
	Target    *target.Holder
	ErrWriter io.Writer

	programName string
	runID       string
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithTarget replaces the demonstration target. Tests use it to keep suites short.
func WithTarget(h *target.Holder) AppOption {
	return func(a *Application) { a.Target = h }
}

// New creates an Application by parsing command-line arguments. args[0] is
// the program name.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter, programName: "hashrace"}
	for _, opt := range opts {
		opt(app)
	}
	if app.Target == nil {
		app.Target = target.Demo()
	}

	var cmdArgs []string
	if len(args) > 0 {
		app.programName = filepath.Base(args[0])
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(app.programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}
	app.Config = cfg
	return app, nil
}

// Run executes the application based on the configured mode and returns the
// process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}

	ui.InitTheme(a.Config.NoColor)

	a.runID = cli.NewRunID()
	logger := logging.NewLeveledLogger(a.ErrWriter, "hashrace", a.Config.LogLevel).
		With(logging.String("run_id", a.runID))
	logger.Debug("configuration parsed", logging.String("config", a.Config.String()))

	ctx, cancel := a.setupLifecycle(ctx)
	defer cancel()

	obs, err := a.startObservability(logger)
	if err != nil {
		logger.Error("metrics server failed to start", err, logging.String("addr", a.Config.MetricsAddr))
		fmt.Fprintf(a.ErrWriter, "Error: cannot serve metrics on %s: %v\n", a.Config.MetricsAddr, err)
		return apperrors.ExitErrorConfig
	}
	defer obs.Close(ctx)

	runs := orchestration.DefaultPlan(a.Config.Workers, !a.Config.SkipNaive)
	if a.Config.TUI {
		return a.runTUI(ctx, runs, obs, out)
	}
	return a.runSuite(ctx, runs, obs, logger, out)
}

// setupLifecycle bounds ctx by the configured timeout and cancels it on
// SIGINT or SIGTERM.
func (a *Application) setupLifecycle(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	return ctx, func() {
		stopSignals()
		cancelTimeout()
	}
}

// runCompletion prints a shell completion script.
func (a *Application) runCompletion(out io.Writer) int {
	if err := cli.GenerateCompletion(out, a.Config.Completion, a.programName); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// runTUI launches the interactive dashboard.
func (a *Application) runTUI(ctx context.Context, runs []orchestration.Run, obs *observability, out io.Writer) int {
	suite := tui.Suite{Runs: runs, Holder: a.Target, Observer: obs.Observer()}
	return tui.Run(ctx, suite, a.Config, Version, out)
}

// IsHelpError reports whether err comes from -h/--help.
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
