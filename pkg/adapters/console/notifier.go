// Package console provides a Notifier that prints the notification to a
// terminal or plain writer.
package console

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/courierflow/courier/pkg/mail"
)

// Notifier implements ports.Notifier by writing a human-readable
// notification, with the draft rendered as markdown when the output is a
// terminal.
type Notifier struct {
	out      io.Writer
	renderer func(string) (string, error)
	profile  termenv.Profile
}

// Option configures a Notifier.
type Option func(*Notifier)

// WithWriter redirects the notification output (default os.Stdout).
func WithWriter(w io.Writer) Option {
	return func(n *Notifier) {
		n.out = w
	}
}

// WithPlainOutput disables markdown rendering and color.
func WithPlainOutput() Option {
	return func(n *Notifier) {
		n.renderer = nil
		n.profile = termenv.Ascii
	}
}

// New creates a console notifier. When stdout is a terminal the draft is
// rendered with glamour at the terminal's width; otherwise output is plain.
func New(opts ...Option) *Notifier {
	n := &Notifier{
		out:     os.Stdout,
		profile: termenv.ColorProfile(),
	}

	width := 80
	if fd := int(os.Stdout.Fd()); term.IsTerminal(fd) {
		if w, _, err := term.GetSize(fd); err == nil && w > 0 {
			width = w
		}
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(), // detect light/dark background
			glamour.WithWordWrap(width),
		)
		if err == nil {
			n.renderer = r.Render
		}
	}

	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Deliver prints the notification and the prepared draft.
func (n *Notifier) Deliver(_ context.Context, email mail.Email, category, draftText string) error {
	var sb strings.Builder

	rule := strings.Repeat("=", 50)
	header := fmt.Sprintf("You've received an email from %s.", email.Sender)
	if n.profile != termenv.Ascii {
		header = termenv.String(header).Bold().String()
	}

	sb.WriteString("\n" + rule + "\n")
	sb.WriteString(header + "\n")
	sb.WriteString("Subject: " + email.Subject + "\n")
	sb.WriteString("Category: " + category + "\n")
	sb.WriteString("\nA draft response has been prepared for review:\n")
	sb.WriteString(strings.Repeat("-", 50) + "\n")

	body := draftText
	if n.renderer != nil {
		if rendered, err := n.renderer(draftText); err == nil {
			body = rendered
		}
	}
	sb.WriteString(body)
	if !strings.HasSuffix(body, "\n") {
		sb.WriteString("\n")
	}
	sb.WriteString(rule + "\n")

	_, err := io.WriteString(n.out, sb.String())
	return err
}
