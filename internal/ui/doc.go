// Package ui holds the color themes shared by the CLI and the TUI dashboard:
// ANSI escape codes for line output and lipgloss colors for the dashboard.
// Colors are disabled by --no-color or the NO_COLOR environment variable.
package ui
