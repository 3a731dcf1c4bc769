// Package logging provides the structured logger shared by the search suite.
// It abstracts the underlying logging implementation behind a small Logger
// interface, with a zerolog backend for normal use and a standard library
// backend for embedding in hosts that already own a *log.Logger.
package logging
