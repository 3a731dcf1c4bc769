// Package metrics exposes the suite's runtime measurements: Go heap
// snapshots for the details view and Prometheus collectors fed by every run.
package metrics
