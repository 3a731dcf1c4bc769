package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/hashrace/internal/digest"
	"github.com/agbru/hashrace/internal/format"
)

// LogsModel is a scrollable panel of timing lines and outcome messages.
type LogsModel struct {
	entries []string
	view    viewport.Model
	width   int
	height  int
}

// NewLogsModel creates an empty log panel.
func NewLogsModel() LogsModel {
	return LogsModel{view: viewport.New(0, 0)}
}

// SetSize updates dimensions and keeps the newest entries visible.
func (m *LogsModel) SetSize(w, h int) {
	m.width, m.height = w, h
	m.view.Width = max(w-4, 0)
	m.view.Height = max(h-3, 1)
	m.refresh()
}

func (m *LogsModel) add(line string) {
	m.entries = append(m.entries, line)
	m.refresh()
}

func (m *LogsModel) refresh() {
	atBottom := m.view.AtBottom()
	m.view.SetContent(strings.Join(m.entries, "\n"))
	if atBottom {
		m.view.GotoBottom()
	}
}

// AddLine appends a timing line.
func (m *LogsModel) AddLine(line string) {
	m.add(line)
}

// AddMatch appends the agreed candidate.
func (m *LogsModel) AddMatch(msg MatchMsg) {
	r := msg.Result
	m.add(successStyle.Render(fmt.Sprintf("Match: %d  md5 %s", r.Candidate, digest.Of(r.Candidate))))
}

// AddError appends a failure.
func (m *LogsModel) AddError(msg ErrorMsg) {
	text := fmt.Sprintf("Error: %v", msg.Err)
	if msg.Duration > 0 {
		text += " after " + format.FormatExecutionDuration(msg.Duration)
	}
	m.add(errorStyle.Render(text))
}

// AddInfo appends a dimmed informational entry.
func (m *LogsModel) AddInfo(text string) {
	m.add(dimStyle.Render(text))
}

// Reset clears the panel.
func (m *LogsModel) Reset() {
	m.entries = nil
	m.refresh()
}

// Update forwards scroll keys to the viewport.
func (m *LogsModel) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.view, cmd = m.view.Update(msg)
	return cmd
}

// Entries returns the number of entries.
func (m LogsModel) Entries() int {
	return len(m.entries)
}

// View renders the panel.
func (m LogsModel) View() string {
	body := titleStyle.Render("OUTPUT") + "\n" + m.view.View()
	return panelStyle.
		Width(max(m.width-2, 0)).
		Height(max(m.height-2, 0)).
		Render(body)
}
