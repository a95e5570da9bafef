package driving

import (
	"context"

	"github.com/custodia-labs/acronyms/internal/core/domain"
)

// DocumentService manages the registry of documents.
type DocumentService interface {
	// Add registers a document and returns it with its assigned ID.
	Add(ctx context.Context, title, uri, mimeType string) (*domain.Document, error)

	// Get retrieves a document by ID.
	Get(ctx context.Context, documentID string) (*domain.Document, error)

	// List returns all registered documents.
	List(ctx context.Context) ([]domain.Document, error)

	// Remove unregisters a document and withdraws its votes.
	Remove(ctx context.Context, documentID string) error
}
