package driven

import (
	"context"

	"github.com/custodia-labs/acronyms/internal/core/domain"
)

// ResultStore persists the acronym result of each document.
type ResultStore interface {
	// Get returns the stored result for a document.
	// Returns (nil, nil) when the document has no result yet.
	Get(ctx context.Context, documentID string) (*domain.AcronymResult, error)

	// Put replaces the stored result of a document wholesale.
	Put(ctx context.Context, documentID string, result *domain.AcronymResult) error

	// Delete removes the stored result of a document.
	Delete(ctx context.Context, documentID string) error

	// ListStale returns the IDs of documents whose stored result was
	// produced by an engine older than version.
	ListStale(ctx context.Context, version float64) ([]string, error)
}
