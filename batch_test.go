package courier_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courierflow/courier/pkg/mail"
	"github.com/courierflow/courier/pkg/ports"
)

func batchEmails(n int) []mail.Email {
	emails := make([]mail.Email, n)
	for i := range emails {
		sender := fmt.Sprintf("customer-%02d@example.com", i)
		if i%2 == 0 {
			sender = fmt.Sprintf("winner-%02d@lottery-intl.com", i)
		}
		emails[i] = mail.Email{Sender: sender, Subject: "hello", Body: "body"}
	}
	return emails
}

func TestProcessBatch_PreservesInputOrder(t *testing.T) {
	deps := defaultDeps(nil)
	deps.Classifier = funcClassifier(func(email mail.Email) (ports.Judgment, error) {
		if strings.HasPrefix(email.Sender, "winner") {
			return ports.Judgment{IsFlagged: true, Reason: "prize claim"}, nil
		}
		return ports.Judgment{Category: "inquiry"}, nil
	})
	svc := newService(t, deps)

	emails := batchEmails(9)
	outcomes, err := svc.ProcessBatch(context.Background(), emails, 3)
	require.NoError(t, err)
	require.Len(t, outcomes, len(emails))

	for i, outcome := range outcomes {
		require.NotNil(t, outcome, "outcome %d", i)
		assert.Equal(t, emails[i].Sender, outcome.Email.Sender, "outcome %d out of order", i)
		require.NotNil(t, outcome.IsFlagged)
		assert.Equal(t, i%2 == 0, *outcome.IsFlagged)
	}
}

func TestProcessBatch_FailuresAreIsolated(t *testing.T) {
	poison := "customer-03@example.com"
	deps := defaultDeps(nil)
	deps.Classifier = funcClassifier(func(email mail.Email) (ports.Judgment, error) {
		if email.Sender == poison {
			return ports.Judgment{}, errors.New("classifier crashed")
		}
		return ports.Judgment{Category: "inquiry"}, nil
	})
	svc := newService(t, deps)

	emails := batchEmails(6)
	outcomes, err := svc.ProcessBatch(context.Background(), emails, 2)
	require.NoError(t, err, "per-run failures must not abort the batch")
	require.Len(t, outcomes, len(emails))

	for i, outcome := range outcomes {
		require.NotNil(t, outcome)
		if emails[i].Sender == poison {
			assert.True(t, outcome.Failed)
			assert.Contains(t, outcome.Error, "classifier crashed")
			continue
		}
		assert.False(t, outcome.Failed, "outcome %d", i)
	}
}

func TestProcessBatch_DefaultConcurrency(t *testing.T) {
	svc := newService(t, defaultDeps(nil))

	outcomes, err := svc.ProcessBatch(context.Background(), batchEmails(3), 0)
	require.NoError(t, err)
	assert.Len(t, outcomes, 3)
}

func TestProcessBatch_Cancellation(t *testing.T) {
	svc := newService(t, defaultDeps(nil))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.ProcessBatch(ctx, batchEmails(4), 2)
	require.ErrorIs(t, err, context.Canceled)
}
