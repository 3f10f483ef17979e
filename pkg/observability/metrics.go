// Package observability provides Prometheus instrumentation for workflow
// runs, wired into the graph engine through lifecycle hooks.
package observability

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/courierflow/courier/pkg/graph"
)

// Metrics holds the run-level collectors. Register it once per process and
// attach Hooks() to the compiled graph.
type Metrics struct {
	runsTotal   *prometheus.CounterVec
	nodeVisits  *prometheus.CounterVec
	runDuration prometheus.Histogram
}

// NewMetrics creates and registers the collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		runsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "courier_runs_total",
				Help: "Total number of workflow runs by outcome",
			},
			[]string{"outcome"},
		),
		nodeVisits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "courier_node_visits_total",
				Help: "Total number of node visits",
			},
			[]string{"node"},
		),
		runDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "courier_run_duration_seconds",
				Help:    "Duration of workflow runs",
				Buckets: prometheus.DefBuckets,
			},
		),
	}
	reg.MustRegister(m.runsTotal, m.nodeVisits, m.runDuration)
	return m
}

// Hooks returns graph lifecycle hooks that count node visits.
func (m *Metrics) Hooks() graph.Hooks {
	return graph.Hooks{
		OnNodeEnter: func(_ context.Context, e *graph.NodeEvent) {
			m.nodeVisits.WithLabelValues(e.Node).Inc()
		},
	}
}

// ObserveRun records the terminal outcome and duration of one run.
func (m *Metrics) ObserveRun(outcome string, d time.Duration) {
	m.runsTotal.WithLabelValues(outcome).Inc()
	m.runDuration.Observe(d.Seconds())
}
