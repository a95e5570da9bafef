package driven

import (
	"context"

	"github.com/custodia-labs/acronyms/internal/core/domain"
)

// DocumentStore persists the registry of documents.
// Backed by SQLite for metadata storage.
type DocumentStore interface {
	// SaveDocument stores or updates a document.
	SaveDocument(ctx context.Context, doc *domain.Document) error

	// GetDocument retrieves a document by ID.
	// Returns domain.ErrNotFound if it does not exist.
	GetDocument(ctx context.Context, id string) (*domain.Document, error)

	// DeleteDocument removes a document.
	DeleteDocument(ctx context.Context, id string) error

	// ListDocuments returns all registered documents.
	ListDocuments(ctx context.Context) ([]domain.Document, error)
}
