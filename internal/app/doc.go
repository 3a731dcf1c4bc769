// Package app wires configuration, observability and presentation around the
// search suite. cmd/hashrace is a thin wrapper over New and Run.
package app
