package normalisers

import (
	"context"
	"fmt"
	"mime"
	"sort"
	"strings"
	"sync"

	"github.com/custodia-labs/acronyms/internal/core/domain"
	"github.com/custodia-labs/acronyms/internal/core/ports/driven"
	"github.com/custodia-labs/acronyms/internal/logger"
)

// Ensure Extractor implements the interface.
var _ driven.TextExtractor = (*Extractor)(nil)

// Extractor produces document text by fetching and converting.
type Extractor struct {
	docs   driven.DocumentStore
	local  driven.Fetcher
	remote driven.Fetcher

	mu         sync.RWMutex
	converters map[string]driven.Converter
}

// NewExtractor creates an extractor. Either fetcher may be nil, in which
// case documents at that kind of location are unsupported.
func NewExtractor(docs driven.DocumentStore, local, remote driven.Fetcher) *Extractor {
	return &Extractor{
		docs:       docs,
		local:      local,
		remote:     remote,
		converters: make(map[string]driven.Converter),
	}
}

// Register adds a converter for each MIME type it supports.
// Later registrations replace earlier ones.
func (e *Extractor) Register(c driven.Converter) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, t := range c.SupportedMIMETypes() {
		e.converters[t] = c
	}
}

// SupportedMIMETypes returns the registered MIME types in sorted order.
func (e *Extractor) SupportedMIMETypes() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	types := make([]string, 0, len(e.converters))
	for t := range e.converters {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// GetText fetches and converts the document. Every failure wraps
// domain.ErrExtractionUnavailable.
func (e *Extractor) GetText(ctx context.Context, documentID string) (string, error) {
	text, err := e.getText(ctx, documentID)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", domain.ErrExtractionUnavailable, documentID, err)
	}
	return text, nil
}

func (e *Extractor) getText(ctx context.Context, documentID string) (string, error) {
	if e.docs == nil {
		return "", domain.ErrNotImplemented
	}

	doc, err := e.docs.GetDocument(ctx, documentID)
	if err != nil {
		return "", err
	}

	converter, err := e.converterFor(doc.MIMEType)
	if err != nil {
		return "", err
	}
	fetcher, err := e.fetcherFor(doc.URI)
	if err != nil {
		return "", err
	}

	done := logger.Timed("extract %s (%s)", doc.ID, doc.URI)
	defer done()

	content, err := fetcher.Fetch(ctx, doc.URI)
	if err != nil {
		return "", err
	}
	return converter.Convert(ctx, doc, content)
}

func (e *Extractor) converterFor(mimeType string) (driven.Converter, error) {
	base := mimeType
	if parsed, _, err := mime.ParseMediaType(mimeType); err == nil {
		base = parsed
	}

	e.mu.RLock()
	defer e.mu.RUnlock()
	if c, ok := e.converters[base]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedType, mimeType)
}

func (e *Extractor) fetcherFor(uri string) (driven.Fetcher, error) {
	var f driven.Fetcher
	if isRemote(uri) {
		f = e.remote
	} else {
		f = e.local
	}
	if f == nil {
		return nil, fmt.Errorf("%w: no fetcher for %s", domain.ErrUnsupportedType, uri)
	}
	return f, nil
}

func isRemote(uri string) bool {
	lower := strings.ToLower(uri)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
