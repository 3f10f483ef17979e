// Package tests provides reusable contract suites adapters run against
// their ports implementations.
package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/courierflow/courier/pkg/mail"
	"github.com/courierflow/courier/pkg/ports"
)

// RunResultStoreContract verifies an adapter complies with ports.ResultStore.
func RunResultStoreContract(t *testing.T, store ports.ResultStore) {
	t.Helper()
	ctx := context.Background()

	flagged := true
	outcome := &ports.Outcome{
		RunID: "run-contract-1",
		Email: mail.Email{
			Sender:  "winner@lottery-intl.com",
			Subject: "YOU HAVE WON $5,000,000!!!",
			Body:    "send bank details",
		},
		IsFlagged:   &flagged,
		FlagReason:  "unsolicited prize claim",
		Path:        []string{"Read", "Classify", "HandleFlagged"},
		CompletedAt: time.Now().UTC().Truncate(time.Second),
	}

	t.Run("Save_Load", func(t *testing.T) {
		if err := store.Save(ctx, outcome); err != nil {
			t.Fatalf("unexpected error saving outcome: %v", err)
		}

		loaded, err := store.Load(ctx, outcome.RunID)
		if err != nil {
			t.Fatalf("unexpected error loading outcome: %v", err)
		}
		if loaded.RunID != outcome.RunID {
			t.Errorf("run ID mismatch. got %q, want %q", loaded.RunID, outcome.RunID)
		}
		if loaded.Email != outcome.Email {
			t.Errorf("email mismatch. got %+v, want %+v", loaded.Email, outcome.Email)
		}
		if loaded.IsFlagged == nil || !*loaded.IsFlagged {
			t.Error("expected IsFlagged to round-trip as true")
		}
		if len(loaded.Path) != len(outcome.Path) {
			t.Errorf("path mismatch. got %v, want %v", loaded.Path, outcome.Path)
		}
	})

	t.Run("Load_NotFound", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-run")
		if !errors.Is(err, ports.ErrRunNotFound) {
			t.Errorf("expected ErrRunNotFound, got %v", err)
		}
	})

	t.Run("List", func(t *testing.T) {
		second := &ports.Outcome{RunID: "run-contract-2", Failed: true, Error: "unroutable branch"}
		if err := store.Save(ctx, second); err != nil {
			t.Fatalf("unexpected error saving second outcome: %v", err)
		}

		ids, err := store.List(ctx)
		if err != nil {
			t.Fatalf("unexpected error listing runs: %v", err)
		}

		lookup := make(map[string]bool)
		for _, id := range ids {
			lookup[id] = true
		}
		for _, want := range []string{"run-contract-1", "run-contract-2"} {
			if !lookup[want] {
				t.Errorf("run %s missing from list %v", want, ids)
			}
		}
	})
}
