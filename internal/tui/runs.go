package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/hashrace/internal/format"
	"github.com/agbru/hashrace/internal/orchestration"
)

// RunStatus is the lifecycle state of a row in the runs panel.
type RunStatus int

const (
	StatusPending RunStatus = iota
	StatusRunning
	StatusDone
	StatusFailed
)

// String returns the label of the status column.
func (s RunStatus) String() string {
	switch s {
	case StatusRunning:
		return "RUN"
	case StatusDone:
		return "OK"
	case StatusFailed:
		return "ERR"
	default:
		return "WAIT"
	}
}

type runRow struct {
	label    string
	workers  int
	status   RunStatus
	fraction float64
	scanned  uint64
	elapsed  time.Duration
	err      error
}

func (r runRow) rate() float64 {
	if r.elapsed <= 0 {
		return 0
	}
	return float64(r.scanned) / r.elapsed.Seconds()
}

const progressBarWidth = 20

// RunsModel lists every planned run with its live progress.
type RunsModel struct {
	rows    []runRow
	spinner spinner.Model
	width   int
}

// NewRunsModel creates a pending row for each run of the plan.
func NewRunsModel(plan []orchestration.Run) RunsModel {
	rows := make([]runRow, len(plan))
	for i, r := range plan {
		rows[i] = runRow{label: r.Label, workers: r.Searcher.Workers()}
	}
	return RunsModel{
		rows:    rows,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(accentStyle)),
	}
}

// Tick starts the spinner animation.
func (m RunsModel) Tick() tea.Cmd {
	return m.spinner.Tick
}

// UpdateSpinner advances the spinner animation.
func (m *RunsModel) UpdateSpinner(msg spinner.TickMsg) tea.Cmd {
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return cmd
}

// SetWidth updates the available width.
func (m *RunsModel) SetWidth(w int) {
	m.width = w
}

// Height returns the rendered height, borders included.
func (m RunsModel) Height() int {
	return len(m.rows) + 3
}

func (m *RunsModel) row(i int) *runRow {
	if i < 0 || i >= len(m.rows) {
		return nil
	}
	return &m.rows[i]
}

// Start marks run i as running.
func (m *RunsModel) Start(i int) {
	if r := m.row(i); r != nil {
		r.status = StatusRunning
	}
}

// Progress records a sample of the running run.
func (m *RunsModel) Progress(u orchestration.ProgressUpdate) {
	if r := m.row(u.RunIndex); r != nil && r.status == StatusRunning {
		r.fraction = u.Fraction()
		r.scanned = u.Scanned
		r.elapsed = u.Elapsed
	}
}

// Finish records the outcome of run i.
func (m *RunsModel) Finish(i int, res orchestration.RunResult) {
	r := m.row(i)
	if r == nil {
		return
	}
	r.scanned, r.elapsed, r.err = res.Scanned, res.Duration, res.Err
	if res.Err != nil {
		r.status = StatusFailed
		return
	}
	r.status, r.fraction = StatusDone, 1
}

// Reset returns every row to pending.
func (m *RunsModel) Reset() {
	for i := range m.rows {
		m.rows[i] = runRow{label: m.rows[i].label, workers: m.rows[i].workers}
	}
}

// View renders the runs panel.
func (m RunsModel) View() string {
	labelWidth := 0
	for _, r := range m.rows {
		labelWidth = max(labelWidth, len(r.label))
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("RUNS"))
	for _, r := range m.rows {
		b.WriteString("\n")
		b.WriteString(m.renderRow(r, labelWidth))
	}
	return panelStyle.Width(max(m.width-2, 0)).Render(b.String())
}

func (m RunsModel) renderRow(r runRow, labelWidth int) string {
	marker := " "
	labelStyle := runLabelStyle
	statusStyle := dimStyle
	switch r.status {
	case StatusRunning:
		marker = m.spinner.View()
		labelStyle = runActiveStyle
		statusStyle = accentStyle
	case StatusDone:
		statusStyle = successStyle
	case StatusFailed:
		statusStyle = errorStyle
	}

	duration := "-"
	if r.status != StatusPending {
		duration = format.FormatExecutionDuration(r.elapsed)
	}
	return fmt.Sprintf("%s %s [%s] %5.1f%% %12s %10s %s",
		marker,
		labelStyle.Render(fmt.Sprintf("%-*s", labelWidth, r.label)),
		format.ProgressBar(r.fraction, progressBarWidth),
		r.fraction*100,
		format.FormatRate(r.rate()),
		duration,
		statusStyle.Render(r.status.String()))
}
