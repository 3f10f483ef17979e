package triage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/courierflow/courier/pkg/graph"
	"github.com/courierflow/courier/pkg/mail"
	"github.com/courierflow/courier/pkg/ports"
)

// Node names, in topology order. These are the values recorded in a run's
// execution path.
const (
	NodeRead          = "Read"
	NodeClassify      = "Classify"
	NodeHandleFlagged = "HandleFlagged"
	NodeRespond       = "Respond"
	NodeNotify        = "Notify"
)

// DefaultCategory is used when the Classifier cleared a record without
// assigning a category.
const DefaultCategory = "general"

// readNode normalizes the incoming record: surrounding whitespace is
// trimmed from every field. A record without a sender is rejected, since
// nothing downstream can answer it.
func (w *Workflow) readNode() graph.NodeFunc[State] {
	return func(ctx context.Context, s State) (graph.Delta[State], error) {
		email := mail.Email{
			Sender:  strings.TrimSpace(s.Email.Sender),
			Subject: strings.TrimSpace(s.Email.Subject),
			Body:    strings.TrimSpace(s.Email.Body),
		}
		if email.Sender == "" {
			return nil, fmt.Errorf("read: record has no sender")
		}
		return SetEmail(email), nil
	}
}

// classifyNode asks the Classifier for a judgment and records it together
// with the exchange log.
//
// Fallback policy: by default an unreachable Classifier fails the run. With
// WithUnflaggedFallback the node instead treats ErrClassifierUnavailable as
// "not flagged, no category", logs the degradation, and lets the run
// proceed down the legitimate path.
func (w *Workflow) classifyNode() graph.NodeFunc[State] {
	return func(ctx context.Context, s State) (graph.Delta[State], error) {
		judgment, err := w.classifier.Classify(ctx, s.Email)
		if err != nil {
			if w.unflaggedFallback && errors.Is(err, ports.ErrClassifierUnavailable) {
				w.logger.Warn("classifier unavailable, treating record as not flagged",
					"sender", s.Email.Sender,
					"err", err)
				return SetFlagged(false, ""), nil
			}
			return nil, fmt.Errorf("classify: %w", err)
		}

		delta := graph.Compose(
			SetFlagged(judgment.IsFlagged, judgment.Reason),
			AppendTrace(judgment.Exchange...),
		)
		if !judgment.IsFlagged {
			delta = graph.Compose(delta, SetCategory(judgment.Category))
		}
		return delta, nil
	}
}

// handleFlaggedNode sets a flagged record aside. The note is logged; the
// run terminates after this node.
func (w *Workflow) handleFlaggedNode() graph.NodeFunc[State] {
	return func(ctx context.Context, s State) (graph.Delta[State], error) {
		reason := "unspecified"
		if s.FlagReason != nil {
			reason = *s.FlagReason
		}
		w.logger.InfoContext(ctx, "record flagged and set aside",
			"sender", s.Email.Sender,
			"subject", s.Email.Subject,
			"reason", reason)
		return nil, nil
	}
}

// respondNode asks the Responder for a preliminary reply draft.
func (w *Workflow) respondNode() graph.NodeFunc[State] {
	return func(ctx context.Context, s State) (graph.Delta[State], error) {
		draft, err := w.responder.Draft(ctx, s.Email, s.CategoryOr(DefaultCategory))
		if err != nil {
			return nil, fmt.Errorf("respond: %w", err)
		}
		if draft.Text == "" {
			return nil, fmt.Errorf("respond: responder returned an empty draft")
		}
		return graph.Compose(
			SetDraft(draft.Text),
			AppendTrace(draft.Exchange...),
		), nil
	}
}

// notifyNode delivers the notification with the prepared draft. Delivery
// is best effort: a failure is logged, not propagated, and does not roll
// back prior merges.
func (w *Workflow) notifyNode() graph.NodeFunc[State] {
	return func(ctx context.Context, s State) (graph.Delta[State], error) {
		draftText := ""
		if s.Draft != nil {
			draftText = *s.Draft
		}
		if err := w.notifier.Deliver(ctx, s.Email, s.CategoryOr(DefaultCategory), draftText); err != nil {
			w.logger.Warn("notification delivery failed",
				"sender", s.Email.Sender,
				"err", err)
		}
		return nil, nil
	}
}
