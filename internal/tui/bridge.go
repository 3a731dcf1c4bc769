package tui

import (
	"bytes"
	"io"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	apperrors "github.com/agbru/hashrace/internal/errors"
	"github.com/agbru/hashrace/internal/orchestration"
)

// sender is the part of *tea.Program the bridge needs.
type sender interface {
	Send(msg tea.Msg)
}

// programRef is a shared reference to the tea.Program.
// Because bubbletea copies the model on every Update, we need a pointer
// that survives copies so the bridge goroutines can send messages.
type programRef struct {
	mu      sync.RWMutex
	program sender
}

// SetProgram sets the program reference (thread-safe).
func (r *programRef) SetProgram(p sender) {
	r.mu.Lock()
	r.program = p
	r.mu.Unlock()
}

// Send sends a message to the program, if one is set.
func (r *programRef) Send(msg tea.Msg) {
	r.mu.RLock()
	p := r.program
	r.mu.RUnlock()
	if p != nil {
		p.Send(msg)
	}
}

// stampedMsg tags a bridge message with the suite generation that sent it,
// so messages from a restarted suite's predecessor can be dropped.
type stampedMsg struct {
	Generation uint64
	Msg        tea.Msg
}

// generationSender wraps every message it sends in a stampedMsg.
type generationSender struct {
	ref sender
	gen uint64
}

func (g generationSender) Send(msg tea.Msg) {
	g.ref.Send(stampedMsg{Generation: g.gen, Msg: msg})
}

// TUIProgressReporter forwards progress samples as ProgressMsg.
type TUIProgressReporter struct {
	ref sender
}

var _ orchestration.ProgressReporter = (*TUIProgressReporter)(nil)

// DisplayProgress implements orchestration.ProgressReporter.
func (t *TUIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan orchestration.ProgressUpdate) {
	defer wg.Done()
	for update := range progressChan {
		t.ref.Send(ProgressMsg{Update: update})
	}
}

// TUIObserver forwards run boundaries as RunStartedMsg and RunFinishedMsg.
type TUIObserver struct {
	ref sender
}

var _ orchestration.RunObserver = (*TUIObserver)(nil)

// RunStarted implements orchestration.RunObserver.
func (t *TUIObserver) RunStarted(index int, run orchestration.Run) {
	t.ref.Send(RunStartedMsg{Index: index, Label: run.Label, Workers: run.Searcher.Workers()})
}

// RunFinished implements orchestration.RunObserver.
func (t *TUIObserver) RunFinished(index int, result orchestration.RunResult) {
	t.ref.Send(RunFinishedMsg{Index: index, Result: result})
}

// TUIResultPresenter sends the suite outcome to the dashboard instead of
// writing it.
type TUIResultPresenter struct {
	ref sender
}

var _ orchestration.ResultPresenter = (*TUIResultPresenter)(nil)

// PresentComparisonTable does nothing: the runs panel already shows every run.
func (t *TUIResultPresenter) PresentComparisonTable([]orchestration.RunResult, time.Duration, io.Writer) {}

// PresentResult sends a MatchMsg.
func (t *TUIResultPresenter) PresentResult(result orchestration.RunResult, _ orchestration.PresentationOptions, _ io.Writer) {
	t.ref.Send(MatchMsg{Result: result})
}

// HandleError sends an ErrorMsg and returns the exit code for err.
func (t *TUIResultPresenter) HandleError(err error, duration time.Duration, _ io.Writer) int {
	t.ref.Send(ErrorMsg{Err: err, Duration: duration})
	return apperrors.ExitCodeFor(err)
}

// lineWriter splits the suite output into LineMsg and keeps a copy of every
// complete line for replay once the dashboard exits.
type lineWriter struct {
	ref sender

	mu      sync.Mutex
	pending []byte
	lines   []string
}

func (w *lineWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	w.pending = append(w.pending, p...)
	var complete []string
	for {
		i := bytes.IndexByte(w.pending, '\n')
		if i < 0 {
			break
		}
		complete = append(complete, string(w.pending[:i]))
		w.pending = w.pending[i+1:]
	}
	w.lines = append(w.lines, complete...)
	w.mu.Unlock()

	for _, l := range complete {
		w.ref.Send(LineMsg(l))
	}
	return len(p), nil
}

// Lines returns the complete lines written so far.
func (w *lineWriter) Lines() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]string(nil), w.lines...)
}
