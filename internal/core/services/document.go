package services

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/acronyms/internal/core/domain"
	"github.com/custodia-labs/acronyms/internal/core/ports/driven"
	"github.com/custodia-labs/acronyms/internal/core/ports/driving"
	"github.com/custodia-labs/acronyms/internal/logger"
)

// Ensure DocumentService implements the interface.
var _ driving.DocumentService = (*DocumentService)(nil)

// ResultWithdrawer drops a document's stored result and its votes.
type ResultWithdrawer interface {
	Withdraw(ctx context.Context, documentID string) error
}

// DocumentService manages the document registry.
type DocumentService struct {
	docStore driven.DocumentStore
	results  ResultWithdrawer
}

// NewDocumentService creates a new document service.
// results is optional; without it Remove only unregisters the document.
func NewDocumentService(docStore driven.DocumentStore, results ResultWithdrawer) *DocumentService {
	return &DocumentService{
		docStore: docStore,
		results:  results,
	}
}

// Add registers a document. An empty MIME type is inferred from the URI,
// and an empty title defaults to the URI's base name.
func (s *DocumentService) Add(ctx context.Context, title, uri, mimeType string) (*domain.Document, error) {
	if s.docStore == nil {
		return nil, domain.ErrNotImplemented
	}
	uri = strings.TrimSpace(uri)
	if uri == "" {
		return nil, fmt.Errorf("%w: document uri is required", domain.ErrInvalidInput)
	}
	if mimeType == "" {
		mimeType = InferMIMEType(uri)
	}
	if title == "" {
		title = path.Base(uri)
	}

	doc := &domain.Document{
		ID:        uuid.New().String(),
		Title:     title,
		URI:       uri,
		MIMEType:  mimeType,
		CreatedAt: time.Now(),
	}
	if err := s.docStore.SaveDocument(ctx, doc); err != nil {
		return nil, fmt.Errorf("save document: %w", err)
	}
	logger.Info("registered document %s (%s)", doc.ID, doc.URI)
	return doc, nil
}

// Get retrieves a document by ID.
func (s *DocumentService) Get(ctx context.Context, documentID string) (*domain.Document, error) {
	if s.docStore == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.docStore.GetDocument(ctx, documentID)
}

// List returns all registered documents.
func (s *DocumentService) List(ctx context.Context) ([]domain.Document, error) {
	if s.docStore == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.docStore.ListDocuments(ctx)
}

// Remove unregisters a document, then drops its stored result and withdraws
// its votes. Once the document is gone no new result can be computed for it.
// Removing an unknown document still clears a result left by an earlier
// failed removal, and reports ErrNotFound.
func (s *DocumentService) Remove(ctx context.Context, documentID string) error {
	if s.docStore == nil {
		return domain.ErrNotImplemented
	}
	if _, err := s.docStore.GetDocument(ctx, documentID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			if werr := s.withdraw(ctx, documentID); werr != nil {
				logger.Warn("%v", werr)
			}
		}
		return err
	}

	if err := s.docStore.DeleteDocument(ctx, documentID); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	if err := s.withdraw(ctx, documentID); err != nil {
		return err
	}
	logger.Info("removed document %s", documentID)
	return nil
}

func (s *DocumentService) withdraw(ctx context.Context, documentID string) error {
	if s.results == nil || documentID == "" {
		return nil
	}
	if err := s.results.Withdraw(ctx, documentID); err != nil {
		return fmt.Errorf("withdraw result of %s: %w", documentID, err)
	}
	return nil
}

// InferMIMEType guesses the MIME type of a document from its URI.
func InferMIMEType(uri string) string {
	u := strings.ToLower(uri)
	if i := strings.IndexAny(u, "?#"); i >= 0 {
		u = u[:i]
	}
	if strings.Contains(u, "arxiv.org/pdf/") {
		return domain.MIMETypePDF
	}
	if t := domain.MIMETypeForExtension(path.Ext(u)); t != "" {
		return t
	}
	return domain.MIMETypePlainText
}
