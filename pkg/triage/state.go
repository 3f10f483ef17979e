package triage

import (
	"github.com/courierflow/courier/pkg/graph"
	"github.com/courierflow/courier/pkg/mail"
)

// State is the container threaded through one triage run. Optional fields
// are pointers: nil means "not yet set by any node". One State exists per
// run; it is never shared across runs.
type State struct {
	// Email is the record being processed, seeded at run start.
	Email mail.Email

	// IsFlagged is set exactly once, by the Classify node, before any
	// routing decision that depends on it.
	IsFlagged *bool

	// FlagReason explains a positive flag.
	FlagReason *string

	// Category classifies a legitimate record.
	Category *string

	// Draft is set if and only if the run reaches the Respond node.
	Draft *string

	// Trace is the append-only log of collaborator exchanges. Nodes add
	// entries through AppendTrace; nothing removes them.
	Trace []mail.Exchange
}

// NewState seeds a container for one run: the record set, every optional
// field unset.
func NewState(email mail.Email) State {
	return State{Email: email}
}

// Flagged reports whether classification ran and flagged the record.
func (s State) Flagged() bool {
	return s.IsFlagged != nil && *s.IsFlagged
}

// CategoryOr returns the category, or fallback when none was assigned.
func (s State) CategoryOr(fallback string) string {
	if s.Category == nil || *s.Category == "" {
		return fallback
	}
	return *s.Category
}

// Typed partial updates. Each delta writes only the fields it names, so
// deltas over disjoint fields commute; AppendTrace is additive and
// order-preserving.

// SetEmail replaces the record under triage.
func SetEmail(email mail.Email) graph.Delta[State] {
	return func(s *State) {
		s.Email = email
	}
}

// SetFlagged records the classification verdict. An empty reason clears
// FlagReason.
func SetFlagged(flagged bool, reason string) graph.Delta[State] {
	return func(s *State) {
		s.IsFlagged = &flagged
		if reason != "" {
			s.FlagReason = &reason
		} else {
			s.FlagReason = nil
		}
	}
}

// SetCategory records the category of a legitimate record.
func SetCategory(category string) graph.Delta[State] {
	return func(s *State) {
		if category != "" {
			s.Category = &category
		}
	}
}

// SetDraft records the reply drafted by the Responder.
func SetDraft(text string) graph.Delta[State] {
	return func(s *State) {
		s.Draft = &text
	}
}

// AppendTrace adds collaborator exchanges to the audit trace. The caller
// supplies only the new entries; existing history is preserved.
func AppendTrace(entries ...mail.Exchange) graph.Delta[State] {
	return func(s *State) {
		s.Trace = append(s.Trace, entries...)
	}
}
