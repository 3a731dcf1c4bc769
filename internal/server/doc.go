// Package server exposes the suite's Prometheus metrics and a health probe
// over HTTP while a benchmark runs. It is opt-in (--metrics-addr) and
// read-only: every route answers GET only.
package server
