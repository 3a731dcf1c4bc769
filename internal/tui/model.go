package tui

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/hashrace/internal/config"
	apperrors "github.com/agbru/hashrace/internal/errors"
	"github.com/agbru/hashrace/internal/metrics"
	"github.com/agbru/hashrace/internal/orchestration"
	"github.com/agbru/hashrace/internal/sysmon"
	"github.com/agbru/hashrace/internal/target"
)

// Layout constants for the dashboard.
const (
	headerHeight          = 1
	footerHeight          = 1
	minBodyHeight         = 6
	LogsPanelWidthPercent = 60
	tickInterval          = 500 * time.Millisecond
)

// Suite is what the dashboard runs.
type Suite struct {
	Runs   []orchestration.Run
	Holder *target.Holder
	// Observer, if set, is notified alongside the dashboard.
	Observer orchestration.RunObserver
}

// ExecutionState holds the execution-related fields of a session.
type ExecutionState struct {
	ctx        context.Context
	cancel     context.CancelFunc
	generation uint64
	lines      *lineWriter
	done       bool
	exitCode   int
}

// LayoutManager holds terminal dimensions and provides layout calculations.
type LayoutManager struct {
	width  int
	height int
}

func (l LayoutManager) logsWidth() int {
	return l.width * LogsPanelWidthPercent / 100
}

func (l LayoutManager) metricsWidth() int {
	return l.width - l.logsWidth()
}

// Model is the root bubbletea model of the dashboard.
type Model struct {
	header  HeaderModel
	runs    RunsModel
	logs    LogsModel
	metrics MetricsModel
	footer  FooterModel
	keymap  KeyMap

	ExecutionState
	LayoutManager

	parentCtx context.Context
	suite     Suite
	config    config.AppConfig
	ref       *programRef
	memory    *metrics.MemoryCollector
	paused    bool
}

// NewModel creates a dashboard for suite.
func NewModel(parentCtx context.Context, suite Suite, cfg config.AppConfig, version string) Model {
	keymap := DefaultKeyMap()
	ref := &programRef{}
	ctx, cancel := context.WithCancel(parentCtx)

	logs := NewLogsModel()
	logs.AddInfo(fmt.Sprintf("Plan: %s", cfg))

	return Model{
		header:  NewHeaderModel(version, suite.Holder.Digest()),
		runs:    NewRunsModel(suite.Runs),
		logs:    logs,
		metrics: NewMetricsModel(),
		footer:  NewFooterModel(keymap),
		keymap:  keymap,
		ExecutionState: ExecutionState{
			ctx:      ctx,
			cancel:   cancel,
			lines:    &lineWriter{ref: generationSender{ref: ref}},
			exitCode: apperrors.ExitSuccess,
		},
		parentCtx: parentCtx,
		suite:     suite,
		config:    cfg,
		ref:       ref,
		memory:    metrics.NewMemoryCollector(),
	}
}

// Init returns the initial commands.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		m.runs.Tick(),
		startSuiteCmd(m.ref, m.ctx, m.suite, m.config, m.lines, m.generation),
		watchContextCmd(m.ctx, m.generation),
	)
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layoutPanels()
		return m, nil

	case stampedMsg:
		if msg.Generation != m.generation {
			return m, nil // stale message from a restarted suite
		}
		return m.handleSuiteMsg(msg.Msg)

	case spinner.TickMsg:
		return m, m.runs.UpdateSpinner(msg)

	case TickMsg:
		if m.done {
			return m, nil
		}
		if m.paused {
			return m, tickCmd()
		}
		return m, tea.Batch(sampleMemStatsCmd(m.memory), sampleSysStatsCmd(), tickCmd())

	case MemStatsMsg:
		m.metrics.UpdateMemStats(msg)
		return m, nil

	case SysStatsMsg:
		m.metrics.UpdateSysStats(msg)
		return m, nil

	case SuiteCompleteMsg:
		if msg.Generation != m.generation {
			return m, nil
		}
		m.done = true
		m.exitCode = msg.ExitCode
		m.header.SetDone()
		m.footer.SetDone(true)
		return m, nil

	case ContextCancelledMsg:
		if msg.Generation != m.generation || m.done {
			return m, nil
		}
		// The parent context ended (signal or timeout): leave the dashboard.
		m.done = true
		m.exitCode = apperrors.ExitCodeFor(msg.Err)
		m.header.SetDone()
		m.footer.SetDone(true)
		return m, tea.Quit
	}

	return m, nil
}

// handleSuiteMsg applies a message sent by the running suite.
func (m Model) handleSuiteMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case RunStartedMsg:
		m.runs.Start(msg.Index)
	case ProgressMsg:
		if !m.paused {
			m.runs.Progress(msg.Update)
			if secs := msg.Update.Elapsed.Seconds(); secs > 0 {
				m.metrics.UpdateRate(float64(msg.Update.Scanned) / secs)
			}
		}
	case RunFinishedMsg:
		m.runs.Finish(msg.Index, msg.Result)
		if msg.Result.Err == nil {
			m.metrics.UpdateRate(msg.Result.Rate())
		}
	case LineMsg:
		m.logs.AddLine(string(msg))
	case MatchMsg:
		m.logs.AddMatch(msg)
	case ErrorMsg:
		m.logs.AddError(msg)
		m.footer.SetError(true)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		if !m.done {
			m.exitCode = apperrors.ExitErrorCanceled
		}
		m.cancel()
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Pause):
		m.paused = !m.paused
		m.footer.SetPaused(m.paused)
		return m, nil

	case key.Matches(msg, m.keymap.Reset):
		m.cancel()

		m.generation++
		m.ctx, m.cancel = context.WithCancel(m.parentCtx)
		m.lines = &lineWriter{ref: generationSender{ref: m.ref, gen: m.generation}}

		m.header.Reset()
		m.runs.Reset()
		m.logs.Reset()
		m.logs.AddInfo("Suite restarted.")
		m.metrics.Reset()
		m.footer.SetDone(false)
		m.footer.SetError(false)
		m.footer.SetPaused(false)
		m.done, m.paused = false, false
		m.exitCode = apperrors.ExitSuccess

		return m, tea.Batch(
			tickCmd(),
			startSuiteCmd(m.ref, m.ctx, m.suite, m.config, m.lines, m.generation),
			watchContextCmd(m.ctx, m.generation),
		)

	case key.Matches(msg, m.keymap.Up), key.Matches(msg, m.keymap.Down),
		key.Matches(msg, m.keymap.PageUp), key.Matches(msg, m.keymap.PageDown):
		return m, m.logs.Update(msg)
	}
	return m, nil
}

func (m *Model) layoutPanels() {
	m.header.SetWidth(m.width)
	m.footer.SetWidth(m.width)
	m.runs.SetWidth(m.width)
	body := max(m.height-headerHeight-footerHeight-m.runs.Height(), minBodyHeight)
	m.logs.SetSize(m.logsWidth(), body)
	m.metrics.SetSize(m.metricsWidth(), body)
}

// View renders the dashboard.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}
	bottom := lipgloss.JoinHorizontal(lipgloss.Top, m.logs.View(), m.metrics.View())
	return lipgloss.JoinVertical(lipgloss.Left,
		m.header.View(),
		m.runs.View(),
		bottom,
		m.footer.View(),
	)
}

// Run shows the dashboard until the user quits or ctx ends, then writes the
// suite's timing lines to out and returns the exit code.
func Run(ctx context.Context, suite Suite, cfg config.AppConfig, version string, out io.Writer) int {
	// Rebuild styles from the theme chosen by the application.
	initTUIStyles()

	model := NewModel(ctx, suite, cfg, version)
	defer model.cancel()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	model.ref.SetProgram(p)

	finalModel, err := p.Run()
	final, ok := finalModel.(Model)
	if !ok {
		final = model
	}
	final.cancel()
	for _, l := range final.lines.Lines() {
		fmt.Fprintln(out, l)
	}

	switch {
	case ok && (final.done || final.exitCode != apperrors.ExitSuccess):
		return final.exitCode
	case ctx.Err() != nil:
		return apperrors.ExitCodeFor(context.Cause(ctx))
	case err != nil:
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// startSuiteCmd runs the suite and reports its outcome.
func startSuiteCmd(ref *programRef, ctx context.Context, suite Suite, cfg config.AppConfig, lines *lineWriter, gen uint64) tea.Cmd {
	return func() tea.Msg {
		send := generationSender{ref: ref, gen: gen}
		var observer orchestration.RunObserver = &TUIObserver{ref: send}
		if suite.Observer != nil {
			observer = orchestration.MultiObserver{observer, suite.Observer}
		}

		results := orchestration.ExecuteRuns(ctx, suite.Runs, suite.Holder, &TUIProgressReporter{ref: send}, observer, lines)
		opts := orchestration.PresentationOptions{
			Target:  suite.Holder.Value(),
			Verbose: true,
			Details: cfg.Details,
		}
		exitCode := orchestration.AnalyzeResults(results, opts, &TUIResultPresenter{ref: send}, io.Discard)
		return SuiteCompleteMsg{ExitCode: exitCode, Generation: gen}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func sampleMemStatsCmd(mc *metrics.MemoryCollector) tea.Cmd {
	return func() tea.Msg {
		s := mc.Snapshot()
		return MemStatsMsg{
			HeapAlloc:    s.HeapAlloc,
			NumGC:        s.NumGC,
			PauseTotalNs: s.PauseTotalNs,
			NumGoroutine: runtime.NumGoroutine(),
		}
	}
}

func sampleSysStatsCmd() tea.Cmd {
	return func() tea.Msg {
		s := sysmon.Sample()
		return SysStatsMsg{CPUPercent: s.CPUPercent, MemPercent: s.MemPercent}
	}
}

// watchContextCmd waits for the suite context to end. Only the parent
// context ending makes this message matter: restarts bump the generation.
func watchContextCmd(ctx context.Context, gen uint64) tea.Cmd {
	return func() tea.Msg {
		<-ctx.Done()
		return ContextCancelledMsg{Err: context.Cause(ctx), Generation: gen}
	}
}
