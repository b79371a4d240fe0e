package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"waitlist/internal/subscription/models"
	"waitlist/pkg/platform/sentinel"
	"waitlist/pkg/requestcontext"
)

// InMemory keeps both record sets in process. It is used when no database is
// configured and by unit tests. The check-and-insert runs under one lock so
// the uniqueness guarantee matches the Postgres constraint.
type InMemory struct {
	mu      sync.RWMutex
	records map[models.Target]map[string]*models.Record
}

// NewInMemory constructs an empty in-memory subscription store.
func NewInMemory() *InMemory {
	records := make(map[models.Target]map[string]*models.Record, len(models.Targets))
	for _, target := range models.Targets {
		records[target] = make(map[string]*models.Record)
	}
	return &InMemory{records: records}
}

func (s *InMemory) Insert(ctx context.Context, target models.Target, record *models.Record) (*models.Record, error) {
	if record == nil {
		return nil, fmt.Errorf("subscription record is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	set, ok := s.records[target]
	if !ok {
		return nil, fmt.Errorf("unknown record set %q", target)
	}
	if _, exists := set[record.Email]; exists {
		return nil, fmt.Errorf("insert into %s: %w", target, sentinel.ErrConflict)
	}

	stored := *record
	stored.ID = uuid.New()
	stored.CreatedAt = requestcontext.Now(ctx)
	set[stored.Email] = &stored

	out := stored
	return &out, nil
}

func (s *InMemory) Probe(_ context.Context, target models.Target) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.records[target]; !ok {
		return fmt.Errorf("unknown record set %q", target)
	}
	return nil
}

// FindByEmail returns the stored record for email in target.
func (s *InMemory) FindByEmail(_ context.Context, target models.Target, email string) (*models.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[target][email]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	out := *record
	return &out, nil
}

// Count returns the number of records in target.
func (s *InMemory) Count(target models.Target) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records[target])
}
