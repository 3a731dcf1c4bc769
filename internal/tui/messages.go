package tui

import (
	"time"

	"github.com/agbru/hashrace/internal/orchestration"
)

// RunStartedMsg announces that run Index began.
type RunStartedMsg struct {
	Index   int
	Label   string
	Workers int
}

// ProgressMsg carries a progress sample of the current run.
type ProgressMsg struct {
	Update orchestration.ProgressUpdate
}

// RunFinishedMsg carries the outcome of run Index.
type RunFinishedMsg struct {
	Index  int
	Result orchestration.RunResult
}

// LineMsg is one timing line written by the suite.
type LineMsg string

// MatchMsg reports the candidate every successful run agreed on.
type MatchMsg struct {
	Result orchestration.RunResult
}

// ErrorMsg reports a failed run.
type ErrorMsg struct {
	Err      error
	Duration time.Duration
}

// SuiteCompleteMsg is sent when the suite has been analyzed.
type SuiteCompleteMsg struct {
	ExitCode   int
	Generation uint64
}

// ContextCancelledMsg is sent when the suite context is done.
type ContextCancelledMsg struct {
	Err        error
	Generation uint64
}

// TickMsg drives the periodic resource sampling.
type TickMsg time.Time

// MemStatsMsg carries Go runtime memory statistics.
type MemStatsMsg struct {
	HeapAlloc    uint64
	NumGC        uint32
	PauseTotalNs uint64
	NumGoroutine int
}

// SysStatsMsg carries system-wide CPU and memory usage in percent.
type SysStatsMsg struct {
	CPUPercent float64
	MemPercent float64
}
