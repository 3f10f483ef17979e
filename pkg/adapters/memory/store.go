// Package memory provides in-process adapters: a ResultStore backed by a
// map and deterministic rule-based collaborators for demos and tests.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/courierflow/courier/pkg/ports"
)

// Store implements ports.ResultStore with an in-memory map. Safe for
// concurrent use.
type Store struct {
	mu       sync.RWMutex
	outcomes map[string]*ports.Outcome
}

// NewStore creates an empty in-memory result store.
func NewStore() *Store {
	return &Store{
		outcomes: make(map[string]*ports.Outcome),
	}
}

// Save persists the outcome under its run ID. A second save for the same
// run overwrites the first.
func (s *Store) Save(_ context.Context, outcome *ports.Outcome) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *outcome
	s.outcomes[outcome.RunID] = &cp
	return nil
}

// Load retrieves an outcome by run ID.
func (s *Store) Load(_ context.Context, runID string) (*ports.Outcome, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	outcome, ok := s.outcomes[runID]
	if !ok {
		return nil, ports.ErrRunNotFound
	}
	cp := *outcome
	return &cp, nil
}

// List returns all archived run IDs in sorted order.
func (s *Store) List(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.outcomes))
	for id := range s.outcomes {
		ids = append(ids, id)
	}
	sort.Strings(ids) // Deterministic order
	return ids, nil
}
