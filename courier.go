package courier

import (
	"context"
	"log/slog"
	"time"

	"github.com/courierflow/courier/pkg/graph"
	"github.com/courierflow/courier/pkg/mail"
	"github.com/courierflow/courier/pkg/observability"
	"github.com/courierflow/courier/pkg/ports"
	"github.com/courierflow/courier/pkg/triage"
)

// Version of the courier module.
const Version = "0.3.0"

// Outcome labels reported to metrics.
const (
	outcomeFlagged    = "flagged"
	outcomeLegitimate = "legitimate"
	outcomeFailed     = "failed"
)

// Service is the high-level entry point: it owns one compiled triage
// workflow and processes records against it. A Service is safe for
// concurrent use; each Process call is an isolated run.
type Service struct {
	workflow *triage.Workflow
	store    ports.ResultStore
	logger   *slog.Logger
	metrics  *observability.Metrics

	workflowOpts []triage.Option
}

// New constructs a Service around the given collaborators and compiles the
// triage workflow once.
func New(deps triage.Collaborators, opts ...Option) (*Service, error) {
	svc := &Service{
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(svc)
	}

	wfOpts := append([]triage.Option{triage.WithLogger(svc.logger)}, svc.workflowOpts...)
	if svc.metrics != nil {
		wfOpts = append(wfOpts, triage.WithGraphOptions(graph.WithHooks(svc.metrics.Hooks())))
	}

	wf, err := triage.New(deps, wfOpts...)
	if err != nil {
		return nil, err
	}
	svc.workflow = wf
	return svc, nil
}

// Workflow exposes the compiled workflow, for introspection and rendering.
func (s *Service) Workflow() *triage.Workflow {
	return s.workflow
}

// Process runs the triage workflow for one record. It always returns a
// tagged Outcome: on failure the outcome carries the error and the partial
// execution path alongside the non-nil error.
func (s *Service) Process(ctx context.Context, email mail.Email) (*ports.Outcome, error) {
	started := time.Now()

	result, err := s.workflow.Run(ctx, triage.NewState(email))
	if err != nil {
		outcome := triage.FailureOutcome(email, err)
		s.observe(outcomeFailed, started)
		s.archive(ctx, outcome)
		s.logger.Error("run failed",
			"run_id", outcome.RunID,
			"sender", email.Sender,
			"path", outcome.Path,
			"err", err)
		return outcome, err
	}

	outcome := triage.Outcome(result)
	label := outcomeLegitimate
	if result.State.Flagged() {
		label = outcomeFlagged
	}
	s.observe(label, started)
	s.archive(ctx, outcome)
	s.logger.Info("run completed",
		"run_id", outcome.RunID,
		"sender", email.Sender,
		"outcome", label,
		"path", outcome.Path,
		"duration", result.Duration)
	return outcome, nil
}

// observe records run metrics when a collector is configured.
func (s *Service) observe(label string, started time.Time) {
	if s.metrics != nil {
		s.metrics.ObserveRun(label, time.Since(started))
	}
}

// archive saves the outcome when a store is configured. Archive failures
// are logged, never propagated: the run itself already finished.
func (s *Service) archive(ctx context.Context, outcome *ports.Outcome) {
	if s.store == nil || outcome.RunID == "" {
		return
	}
	if err := s.store.Save(ctx, outcome); err != nil {
		s.logger.Warn("failed to archive outcome", "run_id", outcome.RunID, "err", err)
	}
}
