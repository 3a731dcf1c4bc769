package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/hashrace/internal/format"
)

// sparklineHistory is the number of resource samples kept for the sparklines.
const sparklineHistory = 120

// MetricsModel shows the hash rate of the current run next to Go runtime and
// host resource usage.
type MetricsModel struct {
	heapAlloc    uint64
	numGC        uint32
	pauseTotalNs uint64
	numGoroutine int
	rate         float64
	best         float64
	cpu          *RingBuffer
	mem          *RingBuffer
	width        int
	height       int
}

// NewMetricsModel creates an empty metrics panel.
func NewMetricsModel() MetricsModel {
	return MetricsModel{
		cpu: NewRingBuffer(sparklineHistory),
		mem: NewRingBuffer(sparklineHistory),
	}
}

// SetSize updates dimensions.
func (m *MetricsModel) SetSize(w, h int) {
	m.width, m.height = w, h
}

// UpdateMemStats records runtime memory statistics.
func (m *MetricsModel) UpdateMemStats(msg MemStatsMsg) {
	m.heapAlloc = msg.HeapAlloc
	m.numGC = msg.NumGC
	m.pauseTotalNs = msg.PauseTotalNs
	m.numGoroutine = msg.NumGoroutine
}

// UpdateSysStats appends a host usage sample.
func (m *MetricsModel) UpdateSysStats(msg SysStatsMsg) {
	m.cpu.Push(msg.CPUPercent)
	m.mem.Push(msg.MemPercent)
}

// UpdateRate records the throughput of the run in progress.
func (m *MetricsModel) UpdateRate(perSecond float64) {
	m.rate = perSecond
	m.best = max(m.best, perSecond)
}

// Reset clears rates and histories.
func (m *MetricsModel) Reset() {
	m.rate, m.best = 0, 0
	m.cpu.Reset()
	m.mem.Reset()
}

// View renders the metrics panel.
func (m MetricsModel) View() string {
	inner := max(m.width-4, 10)
	lines := []string{
		metricLine("Rate:", format.FormatRate(m.rate)) + metricLine("Best:", format.FormatRate(m.best)),
		metricLine("Heap:", format.FormatBytes(m.heapAlloc)) +
			metricLine("GC:", fmt.Sprintf("%d (%.1fms)", m.numGC, float64(m.pauseTotalNs)/1e6)),
		metricLine("Goroutines:", fmt.Sprintf("%d", m.numGoroutine)),
	}

	sparkWidth := max(inner-16, 1)
	lines = append(lines,
		fmt.Sprintf("%s %s %s", metricLabelStyle.Render("CPU"),
			cpuSparklineStyle.Render(RenderSparkline(m.cpu.Slice(), sparkWidth)),
			metricValueStyle.Render(fmt.Sprintf("%5.1f%%", m.cpu.Last()))),
		fmt.Sprintf("%s %s %s", metricLabelStyle.Render("MEM"),
			memSparklineStyle.Render(RenderSparkline(m.mem.Slice(), sparkWidth)),
			metricValueStyle.Render(fmt.Sprintf("%5.1f%%", m.mem.Last()))),
	)

	return panelStyle.
		Width(max(m.width-2, 0)).
		Height(max(m.height-2, 0)).
		Render(strings.Join(lines, "\n"))
}

// metricLine renders a label and value padded to a fixed column.
func metricLine(label, value string) string {
	cell := fmt.Sprintf(" %s %s", metricLabelStyle.Render(fmt.Sprintf("%-11s", label)), metricValueStyle.Render(value))
	if w := lipgloss.Width(cell); w < 26 {
		cell += strings.Repeat(" ", 26-w)
	}
	return cell
}
