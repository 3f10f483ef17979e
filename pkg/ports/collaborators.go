package ports

import (
	"context"
	"errors"

	"github.com/courierflow/courier/pkg/mail"
)

// Collaborator sentinels. Adapters wrap their transport failures with these
// so nodes can distinguish "service unreachable" from a malformed answer.
var (
	// ErrClassifierUnavailable indicates the classifier service could not be reached.
	ErrClassifierUnavailable = errors.New("classifier unavailable")

	// ErrResponderUnavailable indicates the responder service could not be reached.
	ErrResponderUnavailable = errors.New("responder unavailable")
)

// Judgment is the structured result of classifying a record.
type Judgment struct {
	// IsFlagged marks the record as unsolicited/unsafe.
	IsFlagged bool `json:"is_flagged"`

	// Reason explains the flag. Empty when IsFlagged is false.
	Reason string `json:"reason,omitempty"`

	// Category classifies a legitimate record (inquiry, complaint, ...).
	// Empty when IsFlagged is true.
	Category string `json:"category,omitempty"`

	// Exchange is the conversation with the underlying service that
	// produced this judgment, for the run's audit trace.
	Exchange []mail.Exchange `json:"exchange,omitempty"`
}

// Draft is the structured result of drafting a reply.
type Draft struct {
	Text     string          `json:"text"`
	Exchange []mail.Exchange `json:"exchange,omitempty"`
}

// Classifier judges incoming records. Implementations own their timeout and
// retry policy; the workflow treats one Classify call as a single step.
type Classifier interface {
	Classify(ctx context.Context, email mail.Email) (Judgment, error)
}

// Responder drafts replies for legitimate records.
type Responder interface {
	Draft(ctx context.Context, email mail.Email, category string) (Draft, error)
}

// Notifier delivers the prepared draft to its recipient. Delivery is a
// best-effort terminal step: the workflow logs a failure but does not roll
// back prior state.
type Notifier interface {
	Deliver(ctx context.Context, email mail.Email, category, draftText string) error
}
