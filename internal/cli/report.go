package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/agbru/hashrace/internal/config"
	"github.com/agbru/hashrace/internal/metrics"
	"github.com/agbru/hashrace/internal/orchestration"
	"github.com/agbru/hashrace/internal/sysmon"
	"github.com/agbru/hashrace/internal/target"
	"github.com/agbru/hashrace/internal/timing"
)

// Report is the document written by --output.
type Report struct {
	RunID     string               `yaml:"run_id"`
	Version   string               `yaml:"version"`
	Generated time.Time            `yaml:"generated"`
	Target    ReportTarget         `yaml:"target"`
	Plan      ReportPlan           `yaml:"plan"`
	Host      sysmon.Host          `yaml:"host"`
	Runs      []ReportRun          `yaml:"runs"`
	Memory    *metrics.MemoryDelta `yaml:"memory,omitempty"`
}

// ReportTarget identifies what was searched for.
type ReportTarget struct {
	Value  uint64 `yaml:"value"`
	Digest string `yaml:"md5"`
}

// ReportPlan records the suite configuration.
type ReportPlan struct {
	Workers []int  `yaml:"workers"`
	Naive   bool   `yaml:"naive"`
	Timeout string `yaml:"timeout"`
}

// ReportRun is one run of the suite.
type ReportRun struct {
	Label     string  `yaml:"label"`
	Searcher  string  `yaml:"searcher"`
	Workers   int     `yaml:"workers"`
	Seconds   string  `yaml:"seconds"`
	Scanned   uint64  `yaml:"scanned"`
	Rate      float64 `yaml:"rate_per_second"`
	Candidate *uint64 `yaml:"candidate,omitempty"`
	Worker    *int    `yaml:"worker,omitempty"`
	Error     string  `yaml:"error,omitempty"`
}

// NewRunID returns a fresh identifier for a suite invocation.
func NewRunID() string {
	return uuid.NewString()
}

// BuildReport assembles the report document. mem may be nil.
func BuildReport(runID, version string, cfg config.AppConfig, host sysmon.Host, holder *target.Holder, results []orchestration.RunResult, mem *metrics.MemoryDelta) Report {
	rep := Report{
		RunID:     runID,
		Version:   version,
		Generated: time.Now().UTC().Truncate(time.Second),
		Target:    ReportTarget{Value: holder.Value(), Digest: holder.Digest().String()},
		Plan:      ReportPlan{Workers: cfg.Workers, Naive: !cfg.SkipNaive, Timeout: cfg.Timeout.String()},
		Host:      host,
		Runs:      make([]ReportRun, len(results)),
		Memory:    mem,
	}
	for i, r := range results {
		run := ReportRun{
			Label:    r.Label,
			Searcher: r.Name,
			Workers:  r.Workers,
			Seconds:  timing.Seconds(r.Duration),
			Scanned:  r.Scanned,
			Rate:     r.Rate(),
		}
		if r.Err != nil {
			run.Error = r.Err.Error()
		} else {
			candidate, worker := r.Candidate, r.Worker
			run.Candidate, run.Worker = &candidate, &worker
		}
		rep.Runs[i] = run
	}
	return rep
}

// WriteReportToFile writes rep as YAML to path, creating parent directories.
func WriteReportToFile(path string, rep Report) (err error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("failed to close report file: %w", cerr)
		}
	}()

	enc := yaml.NewEncoder(file)
	enc.SetIndent(2)
	if err := enc.Encode(rep); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return enc.Close()
}
