package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// FooterModel renders the key hints and the suite status.
type FooterModel struct {
	keys   []key.Binding
	paused bool
	done   bool
	hasErr bool
	width  int
}

// NewFooterModel creates a footer showing the hints of keys.
func NewFooterModel(keys KeyMap) FooterModel {
	return FooterModel{keys: keys.ShortHelp()}
}

func (f *FooterModel) SetWidth(w int)   { f.width = w }
func (f *FooterModel) SetPaused(p bool) { f.paused = p }
func (f *FooterModel) SetDone(d bool)   { f.done = d }
func (f *FooterModel) SetError(e bool)  { f.hasErr = e }

// Status returns the status label.
func (f FooterModel) Status() string {
	switch {
	case f.hasErr:
		return "ERROR"
	case f.done:
		return "DONE"
	case f.paused:
		return "PAUSED"
	default:
		return "RUNNING"
	}
}

// View renders the footer.
func (f FooterModel) View() string {
	hints := make([]string, 0, len(f.keys))
	for _, k := range f.keys {
		h := k.Help()
		hints = append(hints, footerKeyStyle.Render(h.Key)+" "+footerDescStyle.Render(h.Desc))
	}

	var status string
	switch f.Status() {
	case "ERROR":
		status = statusErrorStyle.Render("ERROR")
	case "DONE":
		status = statusDoneStyle.Render("DONE")
	case "PAUSED":
		status = statusPausedStyle.Render("PAUSED")
	default:
		status = statusRunningStyle.Render("RUNNING")
	}
	return lipgloss.NewStyle().Width(f.width).MaxHeight(1).
		Render(" " + strings.Join(hints, "  ") + "  " + status)
}
