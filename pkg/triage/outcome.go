package triage

import (
	"errors"
	"time"

	"github.com/courierflow/courier/pkg/graph"
	"github.com/courierflow/courier/pkg/mail"
	"github.com/courierflow/courier/pkg/ports"
)

// Outcome flattens the result of a completed run into the archival form
// stores and transports consume.
func Outcome(result *graph.Result[State]) *ports.Outcome {
	s := result.State
	out := &ports.Outcome{
		RunID:       result.RunID,
		Email:       s.Email,
		IsFlagged:   s.IsFlagged,
		Trace:       s.Trace,
		Path:        result.Path,
		CompletedAt: time.Now().UTC(),
	}
	if s.FlagReason != nil {
		out.FlagReason = *s.FlagReason
	}
	if s.Category != nil {
		out.Category = *s.Category
	}
	if s.Draft != nil {
		out.Draft = *s.Draft
	}
	return out
}

// FailureOutcome tags a failed run. When err is a *graph.RunError the
// partial execution path and run ID are preserved for diagnosis.
func FailureOutcome(email mail.Email, err error) *ports.Outcome {
	out := &ports.Outcome{
		Email:       email,
		Failed:      true,
		Error:       err.Error(),
		CompletedAt: time.Now().UTC(),
	}
	var runErr *graph.RunError
	if errors.As(err, &runErr) {
		out.RunID = runErr.RunID
		out.Path = runErr.Path
	}
	return out
}
