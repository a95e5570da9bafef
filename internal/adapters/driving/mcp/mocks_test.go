package mcp

import (
	"context"

	"github.com/custodia-labs/acronyms/internal/core/domain"
	"github.com/custodia-labs/acronyms/internal/core/ports/driving"
)

// mockAcronymService is a mock implementation of driving.AcronymService.
type mockAcronymService struct {
	resolution *driving.Resolution
	entry      *domain.AggregateEntry
	err        error

	resolvedID    string
	resolvedForce bool
	verified      [2]string
}

func (m *mockAcronymService) Resolve(_ context.Context, documentID string, force bool) (*driving.Resolution, error) {
	m.resolvedID = documentID
	m.resolvedForce = force
	return m.resolution, m.err
}

func (m *mockAcronymService) SetVerified(_ context.Context, shortForm, longForm string) error {
	m.verified = [2]string{shortForm, longForm}
	return m.err
}

func (m *mockAcronymService) Lookup(_ context.Context, _ string) (*domain.AggregateEntry, error) {
	return m.entry, m.err
}

func (m *mockAcronymService) RefreshStale(_ context.Context) (*domain.RefreshReport, error) {
	return &domain.RefreshReport{}, m.err
}

// mockDocumentService is a mock implementation of driving.DocumentService.
type mockDocumentService struct {
	documents []domain.Document
	err       error
}

func (m *mockDocumentService) Add(_ context.Context, title, uri, mimeType string) (*domain.Document, error) {
	return &domain.Document{ID: "doc-new", Title: title, URI: uri, MIMEType: mimeType}, m.err
}

func (m *mockDocumentService) Get(_ context.Context, _ string) (*domain.Document, error) {
	if len(m.documents) == 0 {
		return nil, domain.ErrNotFound
	}
	return &m.documents[0], m.err
}

func (m *mockDocumentService) List(_ context.Context) ([]domain.Document, error) {
	return m.documents, m.err
}

func (m *mockDocumentService) Remove(_ context.Context, _ string) error {
	return m.err
}
