package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Namespace prefixes every metric the suite exports.
const Namespace = "hashrace"

// Run outcomes used as the "status" label.
const (
	StatusFound    = "found"
	StatusCanceled = "canceled"
	StatusFailed   = "failed"
)

// SuiteMetrics holds the Prometheus collectors of a suite invocation. Each
// instance owns its registry, so several suites (or tests) never collide on
// registration.
type SuiteMetrics struct {
	registry *prometheus.Registry

	runsTotal     *prometheus.CounterVec
	scannedTotal  *prometheus.CounterVec
	runDuration   *prometheus.HistogramVec
	hashRate      *prometheus.GaugeVec
	activeWorkers prometheus.Gauge
}

// NewSuiteMetrics creates the collectors and registers them, together with
// the Go runtime and process collectors, on a fresh registry.
func NewSuiteMetrics() *SuiteMetrics {
	m := &SuiteMetrics{
		registry: prometheus.NewRegistry(),
		runsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "runs_total",
			Help:      "Completed search runs by searcher and outcome.",
		}, []string{"searcher", "status"}),
		scannedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "candidates_scanned_total",
			Help:      "Candidates hashed, by searcher.",
		}, []string{"searcher"}),
		runDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall-clock duration of a search run.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 14),
		}, []string{"searcher"}),
		hashRate: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "hash_rate",
			Help:      "Candidates per second of the last run, by worker count.",
		}, []string{"workers"}),
		activeWorkers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "active_workers",
			Help:      "Workers of the run currently in progress.",
		}),
	}
	m.registry.MustRegister(
		m.runsTotal, m.scannedTotal, m.runDuration, m.hashRate, m.activeWorkers,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry returns the registry the collectors live in.
func (m *SuiteMetrics) Registry() *prometheus.Registry { return m.registry }

// RunStarted records that a run with the given worker count began.
func (m *SuiteMetrics) RunStarted(workers int) {
	m.activeWorkers.Set(float64(workers))
}

// RunFinished records the outcome of a run.
func (m *SuiteMetrics) RunFinished(searcher string, workers int, scanned uint64, elapsed time.Duration, status string) {
	m.activeWorkers.Set(0)
	m.runsTotal.WithLabelValues(searcher, status).Inc()
	m.scannedTotal.WithLabelValues(searcher).Add(float64(scanned))
	m.runDuration.WithLabelValues(searcher).Observe(elapsed.Seconds())
	if secs := elapsed.Seconds(); secs > 0 {
		m.hashRate.WithLabelValues(strconv.Itoa(workers)).Set(float64(scanned) / secs)
	}
}
