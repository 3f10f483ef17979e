package courier

import (
	"log/slog"

	"github.com/courierflow/courier/pkg/graph"
	"github.com/courierflow/courier/pkg/observability"
	"github.com/courierflow/courier/pkg/ports"
	"github.com/courierflow/courier/pkg/triage"
)

// Option defines a functional option for configuring the Service.
type Option func(*Service)

// WithLogger sets the structured logger used by the service and its
// workflow nodes.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithStore configures the outcome archive. Without a store, outcomes are
// returned to the caller only.
func WithStore(store ports.ResultStore) Option {
	return func(s *Service) {
		s.store = store
	}
}

// WithMetrics attaches Prometheus instrumentation to runs and node visits.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithUnflaggedFallback makes an unreachable Classifier degrade to
// "not flagged" instead of failing the run.
func WithUnflaggedFallback() Option {
	return func(s *Service) {
		s.workflowOpts = append(s.workflowOpts, triage.WithUnflaggedFallback())
	}
}

// WithGraphOptions forwards engine options (hooks, step limits) to the
// compiled workflow graph.
func WithGraphOptions(opts ...graph.Option) Option {
	return func(s *Service) {
		s.workflowOpts = append(s.workflowOpts, triage.WithGraphOptions(opts...))
	}
}
