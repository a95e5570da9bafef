package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/acronyms/internal/core/domain"
	"github.com/custodia-labs/acronyms/internal/core/ports/driven"
)

// Ensure ResultStore implements the interface.
var _ driven.ResultStore = (*ResultStore)(nil)

// ResultStore is an in-memory implementation of driven.ResultStore.
// Results are copied on the way in and out.
type ResultStore struct {
	mu      sync.RWMutex
	results map[string]domain.AcronymResult
}

// NewResultStore creates a new in-memory result store.
func NewResultStore() *ResultStore {
	return &ResultStore{
		results: make(map[string]domain.AcronymResult),
	}
}

// Get returns the stored result, or nil if there is none.
func (s *ResultStore) Get(_ context.Context, documentID string) (*domain.AcronymResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result, ok := s.results[documentID]
	if !ok {
		return nil, nil
	}
	out := cloneResult(result)
	return &out, nil
}

// Put replaces the stored result.
func (s *ResultStore) Put(_ context.Context, documentID string, result *domain.AcronymResult) error {
	if result == nil {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results[documentID] = cloneResult(*result)
	return nil
}

// Delete removes the stored result.
func (s *ResultStore) Delete(_ context.Context, documentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.results, documentID)
	return nil
}

// ListStale returns document IDs whose result version is below version.
func (s *ResultStore) ListStale(_ context.Context, version float64) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var ids []string
	for id, result := range s.results {
		if result.Version < version {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func cloneResult(r domain.AcronymResult) domain.AcronymResult {
	matches := make(map[string]string, len(r.Matches))
	for k, v := range r.Matches {
		matches[k] = v
	}
	shortForms := make([]string, len(r.ShortForms))
	copy(shortForms, r.ShortForms)
	r.Matches = matches
	r.ShortForms = shortForms
	return r
}
