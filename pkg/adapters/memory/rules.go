package memory

import (
	"context"
	"fmt"
	"strings"

	"github.com/courierflow/courier/pkg/mail"
	"github.com/courierflow/courier/pkg/ports"
)

// FlagRule flags a record when any of its keywords appears in the subject
// or body.
type FlagRule struct {
	Keywords []string `json:"keywords" yaml:"keywords"`
	Reason   string   `json:"reason" yaml:"reason"`
}

// CategoryRule assigns a category when any of its keywords matches.
type CategoryRule struct {
	Keywords []string `json:"keywords" yaml:"keywords"`
	Category string   `json:"category" yaml:"category"`
}

// Classifier is a deterministic, rule-driven ports.Classifier. Flag rules
// are evaluated first, in order; the first match wins. Legitimate records
// are then categorized by the first matching category rule. Rules are
// explicit caller-supplied data, so the judgment is reproducible: the same
// record always yields the same Judgment.
type Classifier struct {
	flags      []FlagRule
	categories []CategoryRule
}

// NewClassifier creates a rule classifier. Nil slices are valid: with no
// flag rules nothing is flagged, with no category rules no category is
// assigned.
func NewClassifier(flags []FlagRule, categories []CategoryRule) *Classifier {
	return &Classifier{flags: flags, categories: categories}
}

// DefaultClassifier returns a classifier with a small built-in rule set
// covering common unsolicited-mail markers and the usual correspondence
// categories.
func DefaultClassifier() *Classifier {
	return NewClassifier(
		[]FlagRule{
			{Keywords: []string{"you have won", "lottery", "prize", "claim your"}, Reason: "unsolicited prize claim"},
			{Keywords: []string{"bank details", "processing fee", "wire transfer"}, Reason: "payment detail solicitation"},
		},
		[]CategoryRule{
			{Keywords: []string{"question", "interested in", "learning more", "schedule a call"}, Category: "inquiry"},
			{Keywords: []string{"disappointed", "unacceptable", "refund"}, Category: "complaint"},
			{Keywords: []string{"thank you", "grateful", "appreciate"}, Category: "thank you"},
		},
	)
}

// Classify judges the record against the configured rules.
func (c *Classifier) Classify(_ context.Context, email mail.Email) (ports.Judgment, error) {
	haystack := strings.ToLower(email.Subject + "\n" + email.Body)

	prompt := fmt.Sprintf("Judge this record.\nFrom: %s\nSubject: %s\nBody: %s",
		email.Sender, email.Subject, email.Body)

	for _, rule := range c.flags {
		if matchAny(haystack, rule.Keywords) {
			return ports.Judgment{
				IsFlagged: true,
				Reason:    rule.Reason,
				Exchange: []mail.Exchange{
					{Role: mail.RoleUser, Content: prompt},
					{Role: mail.RoleAssistant, Content: "flagged: " + rule.Reason},
				},
			}, nil
		}
	}

	judgment := ports.Judgment{
		Exchange: []mail.Exchange{
			{Role: mail.RoleUser, Content: prompt},
		},
	}
	for _, rule := range c.categories {
		if matchAny(haystack, rule.Keywords) {
			judgment.Category = rule.Category
			break
		}
	}
	verdict := "legitimate"
	if judgment.Category != "" {
		verdict += ", category: " + judgment.Category
	}
	judgment.Exchange = append(judgment.Exchange, mail.Exchange{
		Role:    mail.RoleAssistant,
		Content: verdict,
	})
	return judgment, nil
}

func matchAny(haystack string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(haystack, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// Responder is a deterministic ports.Responder producing a templated
// preliminary reply.
type Responder struct {
	// Signature closes the drafted reply. Defaults to "The Courier Desk".
	Signature string
}

// NewResponder creates a template responder.
func NewResponder() *Responder {
	return &Responder{Signature: "The Courier Desk"}
}

// Draft produces a brief reply acknowledging the record's category.
func (r *Responder) Draft(_ context.Context, email mail.Email, category string) (ports.Draft, error) {
	prompt := fmt.Sprintf("Draft a reply to %s regarding %q (category: %s).",
		email.Sender, email.Subject, category)

	text := fmt.Sprintf(
		"Dear %s,\n\nThank you for your %s regarding %q. "+
			"We have received your message and will follow up with a full reply shortly.\n\nKind regards,\n%s\n",
		email.Sender, category, email.Subject, r.Signature)

	return ports.Draft{
		Text: text,
		Exchange: []mail.Exchange{
			{Role: mail.RoleUser, Content: prompt},
			{Role: mail.RoleAssistant, Content: text},
		},
	}, nil
}
