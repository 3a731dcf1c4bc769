// Package tui implements the interactive dashboard started by --tui.
//
// The dashboard runs the same suite as the line-oriented CLI. Orchestration
// events reach the bubbletea program through the bridge types in bridge.go,
// which turn reporter and observer callbacks into tea messages. The timing
// lines are collected while the dashboard is shown and written to the
// caller's output once it exits.
package tui
