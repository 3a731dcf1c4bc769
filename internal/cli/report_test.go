package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/agbru/hashrace/internal/config"
	"github.com/agbru/hashrace/internal/metrics"
	"github.com/agbru/hashrace/internal/sysmon"
	"github.com/agbru/hashrace/internal/target"
)

func testHost() sysmon.Host {
	return sysmon.Host{CPUBrand: "Test CPU", PhysicalCores: 4, LogicalCores: 8, UsableCPUs: 8, GOOS: "linux", GOARCH: "amd64"}
}

func TestNewRunID(t *testing.T) {
	t.Parallel()

	a, b := NewRunID(), NewRunID()
	_, err := uuid.Parse(a)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestBuildReport(t *testing.T) {
	t.Parallel()

	cfg := config.AppConfig{Workers: []int{4, 8}, Timeout: time.Minute}
	mem := &metrics.MemoryDelta{Allocated: 1024, GCCycles: 2}
	rep := BuildReport("id-1", "v1.2.3", cfg, testHost(), target.Demo(), sampleResults(), mem)

	assert.Equal(t, "id-1", rep.RunID)
	assert.Equal(t, "v1.2.3", rep.Version)
	assert.Equal(t, uint64(100_000_000), rep.Target.Value)
	assert.Equal(t, "4999644a5eb7bd56311478a71d156106", rep.Target.Digest)
	assert.Equal(t, ReportPlan{Workers: []int{4, 8}, Naive: true, Timeout: "1m0s"}, rep.Plan)
	assert.Same(t, mem, rep.Memory)
	require.Len(t, rep.Runs, 3)

	ok := rep.Runs[1]
	assert.Equal(t, "parallel-4", ok.Searcher)
	assert.Equal(t, "1", ok.Seconds)
	require.NotNil(t, ok.Candidate)
	assert.Equal(t, uint64(100_000_000), *ok.Candidate)
	require.NotNil(t, ok.Worker)
	assert.Equal(t, 2, *ok.Worker)
	assert.Empty(t, ok.Error)

	failed := rep.Runs[2]
	assert.Nil(t, failed.Candidate)
	assert.Nil(t, failed.Worker)
	assert.NotEmpty(t, failed.Error)
}

func TestWriteReportToFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "dir", "report.yaml")
	rep := BuildReport(NewRunID(), "dev", config.AppConfig{Workers: []int{1}, Timeout: time.Second}, testHost(), target.Demo(), sampleResults(), nil)

	require.NoError(t, WriteReportToFile(path, rep))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got Report
	require.NoError(t, yaml.Unmarshal(data, &got))
	assert.Equal(t, rep.RunID, got.RunID)
	assert.Equal(t, rep.Target, got.Target)
	assert.Equal(t, rep.Host, got.Host)
	assert.Equal(t, rep.Runs, got.Runs)
	assert.True(t, rep.Generated.Equal(got.Generated))
	assert.Nil(t, got.Memory)
	assert.NotContains(t, string(data), "memory:")
}

func TestWriteReportToFileError(t *testing.T) {
	t.Parallel()

	// A regular file cannot be used as a parent directory.
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o600))

	err := WriteReportToFile(filepath.Join(blocker, "report.yaml"), Report{})
	assert.Error(t, err)
}
