package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/acronyms/internal/core/domain"
	"github.com/custodia-labs/acronyms/internal/core/ports/driven"
)

// Ensure AggregateStore implements the interface.
var _ driven.AggregateStore = (*AggregateStore)(nil)

// AggregateStore is an in-memory implementation of driven.AggregateStore.
type AggregateStore struct {
	mu      sync.Mutex
	entries map[string]*domain.AggregateEntry
}

// NewAggregateStore creates a new in-memory aggregate store.
func NewAggregateStore() *AggregateStore {
	return &AggregateStore{
		entries: make(map[string]*domain.AggregateEntry),
	}
}

// Record adjusts one vote count under the store lock.
func (s *AggregateStore) Record(_ context.Context, shortForm, longForm string, delta int) error {
	if shortForm == "" || longForm == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entry(shortForm).LongFormCounts[longForm] += delta
	return nil
}

// RecordBatch applies all deltas under a single lock acquisition.
func (s *AggregateStore) RecordBatch(_ context.Context, deltas []domain.VoteDelta) error {
	for _, d := range deltas {
		if d.ShortForm == "" || d.LongForm == "" {
			return domain.ErrInvalidInput
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range deltas {
		s.entry(d.ShortForm).LongFormCounts[d.LongForm] += d.Delta
	}
	return nil
}

// Entries returns copies of the entries for the given short forms.
func (s *AggregateStore) Entries(_ context.Context, shortForms []string) (map[string]domain.AggregateEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]domain.AggregateEntry, len(shortForms))
	for _, sf := range shortForms {
		if e, ok := s.entries[sf]; ok {
			out[sf] = cloneEntry(e)
		}
	}
	return out, nil
}

// Get returns a copy of one entry.
func (s *AggregateStore) Get(_ context.Context, shortForm string) (*domain.AggregateEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[shortForm]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := cloneEntry(e)
	return &out, nil
}

// SetVerified sets the override of a short form.
func (s *AggregateStore) SetVerified(_ context.Context, shortForm, longForm string) error {
	if shortForm == "" || longForm == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entry(shortForm).Verified = longForm
	return nil
}

// entry returns the entry for shortForm, creating it (caller holds lock).
func (s *AggregateStore) entry(shortForm string) *domain.AggregateEntry {
	e, ok := s.entries[shortForm]
	if !ok {
		e = &domain.AggregateEntry{
			ShortForm:      shortForm,
			LongFormCounts: make(map[string]int),
		}
		s.entries[shortForm] = e
	}
	return e
}

func cloneEntry(e *domain.AggregateEntry) domain.AggregateEntry {
	counts := make(map[string]int, len(e.LongFormCounts))
	for k, v := range e.LongFormCounts {
		counts[k] = v
	}
	return domain.AggregateEntry{
		ShortForm:      e.ShortForm,
		Verified:       e.Verified,
		LongFormCounts: counts,
	}
}
