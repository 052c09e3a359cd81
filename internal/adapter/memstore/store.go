// Package memstore provides an in-memory assessment store for demo mode and
// tests. All state lives in the injected Store value; nothing is held in
// package globals.
package memstore

import (
	"context"
	"sync"

	"github.com/monsoonworks/rainharvest-service/internal/domain"
)

// Store keeps assessments grouped by neighborhood, newest first.
type Store struct {
	mu             sync.RWMutex
	byNeighborhood map[string][]domain.Assessment
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{byNeighborhood: make(map[string][]domain.Assessment)}
}

// Save records an assessment. Records are append-only; a re-submission is a
// new record, never an in-place update.
func (s *Store) Save(_ context.Context, a domain.Assessment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	// Prepend so reads come back most-recent-first, matching the SQL store's
	// ORDER BY created_at DESC.
	s.byNeighborhood[a.NeighborhoodID] = append([]domain.Assessment{a}, s.byNeighborhood[a.NeighborhoodID]...)
	return nil
}

// FindByNeighborhood returns a copy of the neighborhood's assessments,
// most recent first. An unknown neighborhood yields an empty slice.
func (s *Store) FindByNeighborhood(_ context.Context, neighborhoodID string) ([]domain.Assessment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := s.byNeighborhood[neighborhoodID]
	out := make([]domain.Assessment, len(records))
	copy(out, records)
	return out, nil
}
