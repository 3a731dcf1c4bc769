package app

import (
	"context"

	"github.com/agbru/hashrace/internal/logging"
	"github.com/agbru/hashrace/internal/metrics"
	"github.com/agbru/hashrace/internal/orchestration"
	"github.com/agbru/hashrace/internal/server"
)

// observability bundles the per-invocation metrics registry, the optional
// metrics server and the run observers feeding them.
type observability struct {
	metrics *metrics.SuiteMetrics
	server  *server.Server
	logger  logging.Logger
}

// startObservability creates the metrics and, when --metrics-addr is set,
// starts serving them.
func (a *Application) startObservability(logger logging.Logger) (*observability, error) {
	o := &observability{metrics: metrics.NewSuiteMetrics(), logger: logger}
	if a.Config.MetricsAddr == "" {
		return o, nil
	}
	o.server = server.New(a.Config.MetricsAddr, o.metrics.Registry(), logger)
	if _, err := o.server.Start(); err != nil {
		return nil, err
	}
	return o, nil
}

// Observer returns the observers every mode notifies.
func (o *observability) Observer() orchestration.RunObserver {
	observers := orchestration.MultiObserver{
		orchestration.LoggingObserver{Logger: o.logger},
		orchestration.MetricsObserver{Metrics: o.metrics},
	}
	if o.server != nil {
		observers = append(observers, orchestration.ObserverFuncs{
			Started:  func(_ int, run orchestration.Run) { o.server.SetPhase(run.Searcher.Name()) },
			Finished: func(int, orchestration.RunResult) { o.server.SetPhase("idle") },
		})
	}
	return observers
}

// Close stops the metrics server, if any.
func (o *observability) Close(ctx context.Context) {
	if o.server == nil {
		return
	}
	o.server.SetPhase("done")
	if err := o.server.Shutdown(ctx); err != nil {
		o.logger.Warn("metrics server shutdown", logging.Err(err))
	}
}
