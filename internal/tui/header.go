package tui

import (
	"fmt"
	"time"

	"github.com/agbru/hashrace/internal/digest"
	"github.com/agbru/hashrace/internal/format"
)

// HeaderModel renders the top bar: title, target digest and elapsed time.
type HeaderModel struct {
	startTime time.Time
	endTime   time.Time
	version   string
	target    digest.Digest
	width     int
}

// NewHeaderModel creates a header for a suite searching target.
func NewHeaderModel(version string, target digest.Digest) HeaderModel {
	return HeaderModel{
		startTime: time.Now(),
		version:   version,
		target:    target,
	}
}

// SetDone freezes the elapsed timer.
func (h *HeaderModel) SetDone() {
	if h.endTime.IsZero() {
		h.endTime = time.Now()
	}
}

// Reset restarts the elapsed timer.
func (h *HeaderModel) Reset() {
	h.startTime = time.Now()
	h.endTime = time.Time{}
}

// SetWidth updates the available width.
func (h *HeaderModel) SetWidth(w int) {
	h.width = w
}

// Elapsed returns the time since the suite started, frozen once done.
func (h HeaderModel) Elapsed() time.Duration {
	if !h.endTime.IsZero() {
		return h.endTime.Sub(h.startTime)
	}
	return time.Since(h.startTime)
}

// View renders the header.
func (h HeaderModel) View() string {
	title := "hashrace"
	if h.version != "" && h.version != "dev" {
		title += " " + h.version
	}
	pipe := dimStyle.Render(" | ")
	row := titleStyle.Render(title) + pipe +
		dimStyle.Render("md5 ") + digestStyle.Render(h.target.String()) + pipe +
		accentStyle.Render(fmt.Sprintf("Elapsed: %s", format.FormatExecutionDuration(h.Elapsed())))
	return headerStyle.Width(h.width).MaxHeight(1).Render(row)
}
