package tui

import (
	"context"

	"github.com/custodia-labs/acronyms/internal/core/domain"
	"github.com/custodia-labs/acronyms/internal/core/ports/driving"
)

// MockDocumentService implements driving.DocumentService for testing.
type MockDocumentService struct {
	Docs []domain.Document
	Err  error
}

func (m *MockDocumentService) Add(_ context.Context, title, uri, mimeType string) (*domain.Document, error) {
	return &domain.Document{ID: "doc-new", Title: title, URI: uri, MIMEType: mimeType}, m.Err
}

func (m *MockDocumentService) Get(_ context.Context, id string) (*domain.Document, error) {
	for i := range m.Docs {
		if m.Docs[i].ID == id {
			return &m.Docs[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *MockDocumentService) List(_ context.Context) ([]domain.Document, error) {
	return m.Docs, m.Err
}

func (m *MockDocumentService) Remove(_ context.Context, _ string) error {
	return m.Err
}

// MockAcronymService implements driving.AcronymService for testing.
type MockAcronymService struct {
	Err error
}

func (m *MockAcronymService) Resolve(_ context.Context, id string, force bool) (*driving.Resolution, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	state := domain.ResolveStateCached
	if force {
		state = domain.ResolveStateUpdated
	}
	return &driving.Resolution{
		DocumentID: id,
		Acronyms:   map[string]string{"SVM": "Support Vector Machine"},
		ShortForms: []string{"GPU", "SVM"},
		State:      state,
		Version:    domain.EngineVersion,
	}, nil
}

func (m *MockAcronymService) SetVerified(_ context.Context, _, _ string) error { return m.Err }

func (m *MockAcronymService) Lookup(_ context.Context, short string) (*domain.AggregateEntry, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return &domain.AggregateEntry{ShortForm: short, LongFormCounts: map[string]int{"Support Vector Machine": 2}}, nil
}

func (m *MockAcronymService) RefreshStale(_ context.Context) (*domain.RefreshReport, error) {
	return &domain.RefreshReport{}, m.Err
}
