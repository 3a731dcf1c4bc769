// Package config defines the command-line surface of the suite: flag parsing,
// HASHRACE_* environment overrides and validation.
package config

import (
	"flag"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/agbru/hashrace/internal/errors"
)

// EnvPrefix is prepended to every environment variable the suite reads.
const EnvPrefix = "HASHRACE_"

// Defaults.
const (
	DefaultTimeout  = 30 * time.Minute
	DefaultLogLevel = "warn"
	// MaxWorkers bounds a single parallel run to keep goroutine counts sane.
	MaxWorkers = 4096
)

// DefaultWorkerCounts is the canonical parallel plan.
var DefaultWorkerCounts = []int{1, 4, 8, 10, 25, 50, 100}

// supportedShells lists the --completion targets.
var supportedShells = []string{"bash", "zsh", "fish"}

// AppConfig aggregates every option of a suite invocation.
type AppConfig struct {
	// Workers lists the worker counts of the parallel runs, in execution order.
	Workers []int
	// SkipNaive omits the single-threaded baseline.
	SkipNaive bool
	// Timeout bounds the whole suite.
	Timeout time.Duration
	// Verbose prints per-run detail (winning worker, scanned candidates) on stderr.
	Verbose bool
	// Details prints the banner, comparison table and memory statistics.
	Details bool
	// TUI switches to the interactive dashboard.
	TUI bool
	// OutputFile, when set, receives a YAML report.
	OutputFile string
	// MetricsAddr, when set, serves /metrics and /healthz on that address.
	MetricsAddr string
	// LogLevel is the zerolog level name for stderr diagnostics.
	LogLevel string
	// NoColor disables ANSI colors.
	NoColor bool
	// Completion names a shell to print a completion script for.
	Completion string

	workersArg string
}

// WorkersArg returns the --workers value as given, before expansion.
func (c AppConfig) WorkersArg() string { return c.workersArg }

// Validate checks cross-field constraints.
func (c AppConfig) Validate() error {
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("--timeout must be positive, got %s", c.Timeout)
	}
	if c.Completion != "" && !slices.Contains(supportedShells, c.Completion) {
		return apperrors.NewConfigError("unsupported shell %q for --completion (want one of %s)",
			c.Completion, strings.Join(supportedShells, ", "))
	}
	if len(c.Workers) == 0 && c.SkipNaive {
		return apperrors.NewConfigError("nothing to run: --skip-naive with an empty --workers list")
	}
	for _, w := range c.Workers {
		if w <= 0 || w > MaxWorkers {
			return apperrors.NewConfigError("worker count %d out of range [1, %d]", w, MaxWorkers)
		}
	}
	return nil
}

// ParseConfig parses the command-line arguments, applies environment
// overrides for flags not given explicitly, expands the worker plan and
// validates the result.
//
// Parameters:
//   - programName: The name shown in usage output.
//   - args: The arguments, without the program name.
//   - errorOutput: Destination for usage and parse errors.
//
// Returns:
//   - AppConfig: The resolved configuration.
//   - error: flag.ErrHelp for -h/--help, or a ConfigError.
func ParseConfig(programName string, args []string, errorOutput io.Writer) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorOutput)

	config := AppConfig{}
	fs.StringVar(&config.workersArg, "workers", joinInts(DefaultWorkerCounts), "Comma-separated worker counts for the parallel runs, or 'auto'.")
	fs.BoolVar(&config.SkipNaive, "skip-naive", false, "Skip the single-threaded baseline run.")
	fs.DurationVar(&config.Timeout, "timeout", DefaultTimeout, "Maximum duration of the whole suite.")
	fs.BoolVar(&config.Verbose, "v", false, "Shorthand for --verbose.")
	fs.BoolVar(&config.Verbose, "verbose", false, "Print the winning worker and scanned candidates of each run.")
	fs.BoolVar(&config.Details, "d", false, "Shorthand for --details.")
	fs.BoolVar(&config.Details, "details", false, "Print a comparison table and memory statistics after the suite.")
	fs.BoolVar(&config.TUI, "tui", false, "Run the interactive dashboard.")
	fs.StringVar(&config.OutputFile, "o", "", "Shorthand for --output.")
	fs.StringVar(&config.OutputFile, "output", "", "Write a YAML report to this file.")
	fs.StringVar(&config.MetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9090).")
	fs.StringVar(&config.LogLevel, "log-level", DefaultLogLevel, "Diagnostic log level (debug, info, warn, error, disabled).")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output.")
	fs.StringVar(&config.Completion, "completion", "", "Print a completion script for the given shell (bash, zsh, fish).")
	// Handled before parsing by the caller; registered so usage lists them.
	fs.Bool("V", false, "Shorthand for --version.")
	fs.Bool("version", false, "Print version information and exit.")

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}
	if fs.NArg() > 0 {
		return AppConfig{}, apperrors.NewConfigError("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	applyEnvOverrides(&config, fs)

	workers, err := ParseWorkerList(config.workersArg)
	if err != nil {
		return AppConfig{}, err
	}
	config.Workers = workers

	if err := config.Validate(); err != nil {
		return AppConfig{}, err
	}
	return config, nil
}

// ParseWorkerList expands a --workers value. "auto" yields EstimateWorkerCounts;
// an empty string yields no parallel runs. Duplicates are kept: each entry is
// one run.
func ParseWorkerList(list string) ([]int, error) {
	list = strings.TrimSpace(list)
	switch list {
	case "":
		return nil, nil
	case "auto":
		return EstimateWorkerCounts(), nil
	}
	parts := strings.Split(list, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, apperrors.NewConfigError("invalid worker count %q in --workers", strings.TrimSpace(p))
		}
		if n <= 0 || n > MaxWorkers {
			return nil, apperrors.NewConfigError("worker count %d out of range [1, %d]", n, MaxWorkers)
		}
		out = append(out, n)
	}
	return out, nil
}

func joinInts(xs []int) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = strconv.Itoa(x)
	}
	return strings.Join(parts, ",")
}

// String renders the configuration for the execution banner.
func (c AppConfig) String() string {
	naive := "yes"
	if c.SkipNaive {
		naive = "no"
	}
	return fmt.Sprintf("workers=%s naive=%s timeout=%s", joinInts(c.Workers), naive, c.Timeout)
}
