package triage_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courierflow/courier/internal/logging"
	"github.com/courierflow/courier/pkg/graph"
	"github.com/courierflow/courier/pkg/mail"
	"github.com/courierflow/courier/pkg/ports"
	"github.com/courierflow/courier/pkg/triage"
)

// Scripted collaborators return fixed results, so runs are deterministic.

type scriptedClassifier struct {
	judgment ports.Judgment
	err      error
}

func (c *scriptedClassifier) Classify(_ context.Context, _ mail.Email) (ports.Judgment, error) {
	return c.judgment, c.err
}

type scriptedResponder struct {
	draft ports.Draft
	err   error
}

func (r *scriptedResponder) Draft(_ context.Context, _ mail.Email, _ string) (ports.Draft, error) {
	return r.draft, r.err
}

type recordingNotifier struct {
	mu         sync.Mutex
	deliveries []string
	err        error
}

func (n *recordingNotifier) Deliver(_ context.Context, email mail.Email, _, _ string) error {
	n.mu.Lock()
	n.deliveries = append(n.deliveries, email.Sender)
	n.mu.Unlock()
	return n.err
}

var (
	flaggedEmail = mail.Email{
		Sender:  "winner@lottery-intl.com",
		Subject: "YOU HAVE WON $5,000,000!!!",
		Body:    "To claim your prize, please send us your bank details and a processing fee.",
	}
	legitimateEmail = mail.Email{
		Sender:  "john.smith@example.com",
		Subject: "Question about your services",
		Body:    "Could we schedule a call next week?",
	}
)

func newWorkflow(t *testing.T, deps triage.Collaborators, opts ...triage.Option) *triage.Workflow {
	t.Helper()
	opts = append([]triage.Option{triage.WithLogger(logging.NewNop())}, opts...)
	w, err := triage.New(deps, opts...)
	require.NoError(t, err)
	return w
}

func TestWorkflow_FlaggedPath(t *testing.T) {
	notifier := &recordingNotifier{}
	w := newWorkflow(t, triage.Collaborators{
		Classifier: &scriptedClassifier{judgment: ports.Judgment{
			IsFlagged: true,
			Reason:    "unsolicited prize claim",
			Exchange: []mail.Exchange{
				{Role: mail.RoleUser, Content: "judge this"},
				{Role: mail.RoleAssistant, Content: "flagged"},
			},
		}},
		Responder: &scriptedResponder{},
		Notifier:  notifier,
	})

	result, err := w.Run(context.Background(), triage.NewState(flaggedEmail))
	require.NoError(t, err)

	assert.Equal(t, []string{triage.NodeRead, triage.NodeClassify, triage.NodeHandleFlagged}, result.Path)

	s := result.State
	require.NotNil(t, s.IsFlagged)
	assert.True(t, *s.IsFlagged)
	require.NotNil(t, s.FlagReason)
	assert.Equal(t, "unsolicited prize claim", *s.FlagReason)
	assert.Nil(t, s.Draft, "draft must stay unset on the flagged path")
	assert.Nil(t, s.Category)
	assert.Len(t, s.Trace, 2)
	assert.Empty(t, notifier.deliveries, "flagged records are never delivered")
}

func TestWorkflow_LegitimatePath(t *testing.T) {
	notifier := &recordingNotifier{}
	w := newWorkflow(t, triage.Collaborators{
		Classifier: &scriptedClassifier{judgment: ports.Judgment{
			Category: "inquiry",
			Exchange: []mail.Exchange{{Role: mail.RoleUser, Content: "judge this"}},
		}},
		Responder: &scriptedResponder{draft: ports.Draft{
			Text:     "Dear John, thank you for reaching out.",
			Exchange: []mail.Exchange{{Role: mail.RoleAssistant, Content: "drafted"}},
		}},
		Notifier: notifier,
	})

	result, err := w.Run(context.Background(), triage.NewState(legitimateEmail))
	require.NoError(t, err)

	assert.Equal(t, []string{triage.NodeRead, triage.NodeClassify, triage.NodeRespond, triage.NodeNotify}, result.Path)

	s := result.State
	require.NotNil(t, s.IsFlagged)
	assert.False(t, *s.IsFlagged)
	require.NotNil(t, s.Category)
	assert.Equal(t, "inquiry", *s.Category)
	require.NotNil(t, s.Draft)
	assert.NotEmpty(t, *s.Draft)
	// Exchanges from classify and respond, in order.
	require.Len(t, s.Trace, 2)
	assert.Equal(t, "judge this", s.Trace[0].Content)
	assert.Equal(t, "drafted", s.Trace[1].Content)
	assert.Equal(t, []string{legitimateEmail.Sender}, notifier.deliveries)
}

func TestWorkflow_ClassifierFailureFailsRun(t *testing.T) {
	w := newWorkflow(t, triage.Collaborators{
		Classifier: &scriptedClassifier{err: ports.ErrClassifierUnavailable},
		Responder:  &scriptedResponder{},
		Notifier:   &recordingNotifier{},
	})

	_, err := w.Run(context.Background(), triage.NewState(legitimateEmail))
	var runErr *graph.RunError
	require.ErrorAs(t, err, &runErr)
	assert.ErrorIs(t, err, ports.ErrClassifierUnavailable)
	assert.Equal(t, triage.NodeClassify, runErr.Node)
	assert.Equal(t, []string{triage.NodeRead, triage.NodeClassify}, runErr.Path)
}

func TestWorkflow_UnflaggedFallback(t *testing.T) {
	notifier := &recordingNotifier{}
	w := newWorkflow(t, triage.Collaborators{
		Classifier: &scriptedClassifier{err: ports.ErrClassifierUnavailable},
		Responder:  &scriptedResponder{draft: ports.Draft{Text: "draft"}},
		Notifier:   notifier,
	}, triage.WithUnflaggedFallback())

	result, err := w.Run(context.Background(), triage.NewState(legitimateEmail))
	require.NoError(t, err)

	s := result.State
	require.NotNil(t, s.IsFlagged)
	assert.False(t, *s.IsFlagged)
	assert.Nil(t, s.Category, "fallback assigns no category")
	assert.Equal(t, []string{triage.NodeRead, triage.NodeClassify, triage.NodeRespond, triage.NodeNotify}, result.Path)
}

func TestWorkflow_FallbackOnlyCoversUnavailability(t *testing.T) {
	// Other classifier errors still fail the run even with the fallback.
	w := newWorkflow(t, triage.Collaborators{
		Classifier: &scriptedClassifier{err: errors.New("malformed answer")},
		Responder:  &scriptedResponder{},
		Notifier:   &recordingNotifier{},
	}, triage.WithUnflaggedFallback())

	_, err := w.Run(context.Background(), triage.NewState(legitimateEmail))
	assert.Error(t, err)
}

func TestWorkflow_ResponderFailureFailsRun(t *testing.T) {
	w := newWorkflow(t, triage.Collaborators{
		Classifier: &scriptedClassifier{judgment: ports.Judgment{Category: "inquiry"}},
		Responder:  &scriptedResponder{err: ports.ErrResponderUnavailable},
		Notifier:   &recordingNotifier{},
	})

	_, err := w.Run(context.Background(), triage.NewState(legitimateEmail))
	var runErr *graph.RunError
	require.ErrorAs(t, err, &runErr)
	assert.Equal(t, triage.NodeRespond, runErr.Node)
}

func TestWorkflow_EmptyDraftRejected(t *testing.T) {
	w := newWorkflow(t, triage.Collaborators{
		Classifier: &scriptedClassifier{judgment: ports.Judgment{Category: "inquiry"}},
		Responder:  &scriptedResponder{draft: ports.Draft{Text: ""}},
		Notifier:   &recordingNotifier{},
	})

	_, err := w.Run(context.Background(), triage.NewState(legitimateEmail))
	assert.Error(t, err)
}

func TestWorkflow_NotifierFailureIsBestEffort(t *testing.T) {
	notifier := &recordingNotifier{err: errors.New("delivery down")}
	w := newWorkflow(t, triage.Collaborators{
		Classifier: &scriptedClassifier{judgment: ports.Judgment{Category: "inquiry"}},
		Responder:  &scriptedResponder{draft: ports.Draft{Text: "draft"}},
		Notifier:   notifier,
	})

	result, err := w.Run(context.Background(), triage.NewState(legitimateEmail))
	require.NoError(t, err, "notifier failure must not fail the run")
	require.NotNil(t, result.State.Draft)
	assert.Equal(t, "draft", *result.State.Draft)
}

func TestWorkflow_ReadRejectsEmptySender(t *testing.T) {
	w := newWorkflow(t, triage.Collaborators{
		Classifier: &scriptedClassifier{},
		Responder:  &scriptedResponder{},
		Notifier:   &recordingNotifier{},
	})

	_, err := w.Run(context.Background(), triage.NewState(mail.Email{Subject: "no sender"}))
	var runErr *graph.RunError
	require.ErrorAs(t, err, &runErr)
	assert.Equal(t, triage.NodeRead, runErr.Node)
}

func TestWorkflow_ConcurrentRunsAreIsolated(t *testing.T) {
	w := newWorkflow(t, triage.Collaborators{
		Classifier: &scriptedClassifier{judgment: ports.Judgment{Category: "inquiry"}},
		Responder:  &scriptedResponder{draft: ports.Draft{Text: "draft"}},
		Notifier:   &recordingNotifier{},
	})

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := w.Run(context.Background(), triage.NewState(legitimateEmail))
			assert.NoError(t, err)
			assert.Len(t, result.State.Trace, 0)
			assert.Equal(t, []string{triage.NodeRead, triage.NodeClassify, triage.NodeRespond, triage.NodeNotify}, result.Path)
		}()
	}
	wg.Wait()
}

func TestNew_RequiresCollaborators(t *testing.T) {
	_, err := triage.New(triage.Collaborators{})
	assert.Error(t, err)
}
