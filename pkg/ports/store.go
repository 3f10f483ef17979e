package ports

import (
	"context"
	"errors"
	"time"

	"github.com/courierflow/courier/pkg/mail"
)

// ErrRunNotFound is returned when a run ID has no archived outcome.
var ErrRunNotFound = errors.New("run not found")

// Outcome is the archival record of one completed run, successful or
// failed. It flattens the final state so stores need no knowledge of the
// workflow's state type.
type Outcome struct {
	RunID       string          `json:"run_id"`
	Email       mail.Email      `json:"email"`
	IsFlagged   *bool           `json:"is_flagged,omitempty"`
	FlagReason  string          `json:"flag_reason,omitempty"`
	Category    string          `json:"category,omitempty"`
	Draft       string          `json:"draft,omitempty"`
	Trace       []mail.Exchange `json:"trace,omitempty"`
	Path        []string        `json:"path"`
	CompletedAt time.Time       `json:"completed_at"`

	// Failed marks a run that did not reach the terminal marker. Error
	// holds the failure description; Path is the partial walk.
	Failed bool   `json:"failed,omitempty"`
	Error  string `json:"error,omitempty"`
}

// ResultStore archives completed run outcomes. This is an audit archive,
// not durable mid-run state: only finished (or failed) runs are saved.
type ResultStore interface {
	// Save persists the outcome under its run ID.
	Save(ctx context.Context, outcome *Outcome) error

	// Load retrieves an outcome by run ID.
	// Returns ErrRunNotFound if the run was never archived.
	Load(ctx context.Context, runID string) (*Outcome, error)

	// List returns all archived run IDs in deterministic order.
	List(ctx context.Context) ([]string, error)
}
