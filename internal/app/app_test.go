package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/agbru/hashrace/internal/cli"
	apperrors "github.com/agbru/hashrace/internal/errors"
	"github.com/agbru/hashrace/internal/target"
)

// smallTarget keeps every suite in these tests to a few thousand digests.
const smallTarget = 2_500

func newTestApp(t *testing.T, args ...string) (*Application, *bytes.Buffer) {
	t.Helper()
	var errBuf bytes.Buffer
	full := append([]string{"hashrace", "--no-color", "--log-level", "disabled"}, args...)
	a, err := New(full, &errBuf, WithTarget(target.New(smallTarget)))
	if err != nil {
		t.Fatalf("New(%v) error: %v", full, err)
	}
	return a, &errBuf
}

func TestNewDefaults(t *testing.T) {
	t.Parallel()
	a, err := New([]string{"/usr/local/bin/hashrace"}, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if a.Target.Value() != target.DemoValue {
		t.Errorf("target = %d, want %d", a.Target.Value(), target.DemoValue)
	}
	if a.programName != "hashrace" {
		t.Errorf("programName = %q", a.programName)
	}
	if len(a.Config.Workers) != 7 || a.Config.SkipNaive {
		t.Errorf("unexpected default plan: %s", a.Config)
	}
}

func TestNewErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		args   []string
		isHelp bool
	}{
		{"help", []string{"hashrace", "--help"}, true},
		{"unknown flag", []string{"hashrace", "--algo", "x"}, false},
		{"bad workers", []string{"hashrace", "--workers", "a,b"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := New(tt.args, &bytes.Buffer{})
			if err == nil {
				t.Fatal("New() succeeded")
			}
			if IsHelpError(err) != tt.isHelp {
				t.Errorf("IsHelpError(%v) = %v, want %v", err, !tt.isHelp, tt.isHelp)
			}
		})
	}
}

func TestRunPrintsOneLinePerRun(t *testing.T) {
	t.Parallel()
	a, errBuf := newTestApp(t, "--workers", "1,4,8")

	var out bytes.Buffer
	if code := a.Run(context.Background(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("Run() = %d\nstderr:\n%s", code, errBuf)
	}

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	want := []string{
		"Naive hashing with single thread: took ",
		"Parallel hashing with 1 threads: took ",
		"Parallel hashing with 4 threads: took ",
		"Parallel hashing with 8 threads: took ",
	}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d:\n%s", len(lines), len(want), out.String())
	}
	for i := range want {
		if !strings.HasPrefix(lines[i], want[i]) || !strings.HasSuffix(lines[i], " seconds") {
			t.Errorf("line %d = %q", i, lines[i])
		}
	}
}

func TestRunDetailsAndVerbose(t *testing.T) {
	t.Parallel()
	a, errBuf := newTestApp(t, "--workers", "2", "--details", "--verbose")

	var out bytes.Buffer
	if code := a.Run(context.Background(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("Run() = %d\nstderr:\n%s", code, errBuf)
	}
	for _, want := range []string{
		"--- Execution Configuration ---",
		"--- Comparison Summary ---",
		"Match: 2500",
		"Global Status: Success",
		"Memory Stats:",
	} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("stdout missing %q:\n%s", want, out.String())
		}
	}
	if !strings.Contains(errBuf.String(), "parallel-2: candidate 2500 found by worker") {
		t.Errorf("stderr missing run details:\n%s", errBuf)
	}
}

func TestRunWritesReport(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "out", "report.yaml")
	a, errBuf := newTestApp(t, "--workers", "4", "--skip-naive", "-o", path)

	var out bytes.Buffer
	if code := a.Run(context.Background(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("Run() = %d\nstderr:\n%s", code, errBuf)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("report not written: %v", err)
	}
	var rep cli.Report
	if err := yaml.Unmarshal(data, &rep); err != nil {
		t.Fatalf("report is not YAML: %v", err)
	}
	if rep.RunID != a.runID {
		t.Errorf("report run_id = %q, want %q", rep.RunID, a.runID)
	}
	if len(rep.Runs) != 1 || rep.Runs[0].Candidate == nil || *rep.Runs[0].Candidate != smallTarget {
		t.Errorf("unexpected runs: %+v", rep.Runs)
	}
	if !strings.Contains(errBuf.String(), "Report saved to: "+path) {
		t.Errorf("stderr missing confirmation:\n%s", errBuf)
	}
}

func TestRunReportFailure(t *testing.T) {
	t.Parallel()
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, nil, 0o600); err != nil {
		t.Fatal(err)
	}
	a, _ := newTestApp(t, "--workers", "2", "--skip-naive", "-o", filepath.Join(blocker, "r.yaml"))

	if code := a.Run(context.Background(), &bytes.Buffer{}); code != apperrors.ExitErrorGeneric {
		t.Errorf("Run() = %d, want %d", code, apperrors.ExitErrorGeneric)
	}
}

func TestRunCanceledContext(t *testing.T) {
	t.Parallel()
	a, errBuf := newTestApp(t, "--workers", "2")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	if code := a.Run(ctx, &out); code != apperrors.ExitErrorCanceled {
		t.Errorf("Run() = %d, want %d", code, apperrors.ExitErrorCanceled)
	}
	if out.Len() != 0 {
		t.Errorf("skipped runs printed timing lines:\n%s", out.String())
	}
	if !strings.Contains(errBuf.String(), "Status: Canceled.") {
		t.Errorf("stderr missing cancellation status:\n%s", errBuf)
	}
}

func TestRunWithMetricsServer(t *testing.T) {
	t.Parallel()
	a, errBuf := newTestApp(t, "--workers", "2", "--metrics-addr", "127.0.0.1:0")
	if code := a.Run(context.Background(), &bytes.Buffer{}); code != apperrors.ExitSuccess {
		t.Fatalf("Run() = %d\nstderr:\n%s", code, errBuf)
	}
}

func TestRunMetricsAddressInvalid(t *testing.T) {
	t.Parallel()
	a, errBuf := newTestApp(t, "--workers", "2", "--metrics-addr", "256.0.0.1:bad")
	if code := a.Run(context.Background(), &bytes.Buffer{}); code != apperrors.ExitErrorConfig {
		t.Errorf("Run() = %d, want %d", code, apperrors.ExitErrorConfig)
	}
	if !strings.Contains(errBuf.String(), "cannot serve metrics") {
		t.Errorf("stderr missing diagnostic:\n%s", errBuf)
	}
}

func TestRunCompletion(t *testing.T) {
	t.Parallel()
	a, _ := newTestApp(t, "--completion", "zsh")
	var out bytes.Buffer
	if code := a.Run(context.Background(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("Run() = %d", code)
	}
	if !strings.HasPrefix(out.String(), "#compdef hashrace") {
		t.Errorf("unexpected completion output:\n%s", out.String())
	}
}
