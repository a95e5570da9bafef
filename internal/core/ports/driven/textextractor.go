package driven

import (
	"context"

	"github.com/custodia-labs/acronyms/internal/core/domain"
)

// TextExtractor produces the plain text of a registered document.
// Failures are reported wrapping domain.ErrExtractionUnavailable.
type TextExtractor interface {
	GetText(ctx context.Context, documentID string) (string, error)
}

// Converter turns raw document bytes of specific MIME types into text.
type Converter interface {
	// SupportedMIMETypes returns the MIME types this converter handles.
	SupportedMIMETypes() []string

	// Convert extracts the text content.
	Convert(ctx context.Context, doc *domain.Document, content []byte) (string, error)
}

// Fetcher retrieves the raw bytes behind a document URI.
type Fetcher interface {
	Fetch(ctx context.Context, uri string) ([]byte, error)
}
