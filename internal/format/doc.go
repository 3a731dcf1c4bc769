// Package format holds the pure presentation helpers shared by the CLI and
// the TUI: durations, large counts, scan rates, progress bars and ETAs.
// Nothing here touches an io.Writer or a terminal.
package format
