package normalisers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/acronyms/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/acronyms/internal/core/domain"
	"github.com/custodia-labs/acronyms/internal/core/ports/driven"
	"github.com/custodia-labs/acronyms/internal/normalisers/plaintext"
)

type mockFetcher struct {
	content []byte
	err     error
	uris    []string
}

func (m *mockFetcher) Fetch(_ context.Context, uri string) ([]byte, error) {
	m.uris = append(m.uris, uri)
	return m.content, m.err
}

type mockConverter struct {
	types []string
	text  string
	err   error
}

func (m *mockConverter) SupportedMIMETypes() []string { return m.types }

func (m *mockConverter) Convert(_ context.Context, _ *domain.Document, _ []byte) (string, error) {
	return m.text, m.err
}

func setup(t *testing.T, docs ...*domain.Document) (*memory.DocumentStore, *mockFetcher, *mockFetcher) {
	t.Helper()
	store := memory.NewDocumentStore()
	for _, d := range docs {
		require.NoError(t, store.SaveDocument(context.Background(), d))
	}
	return store, &mockFetcher{}, &mockFetcher{}
}

func TestExtractor_InterfaceCompliance(t *testing.T) {
	var _ driven.TextExtractor = (*Extractor)(nil)
}

func TestExtractor_GetText_Local(t *testing.T) {
	doc := &domain.Document{ID: "doc-1", URI: "/papers/a.txt", MIMEType: "text/plain"}
	store, local, remote := setup(t, doc)
	local.content = []byte("Recurrent Neural Network (RNN)")

	e := NewExtractor(store, local, remote)
	e.Register(plaintext.New())

	text, err := e.GetText(context.Background(), "doc-1")

	require.NoError(t, err)
	assert.Equal(t, "Recurrent Neural Network (RNN)", text)
	assert.Equal(t, []string{"/papers/a.txt"}, local.uris)
	assert.Empty(t, remote.uris)
}

func TestExtractor_GetText_Remote(t *testing.T) {
	doc := &domain.Document{ID: "doc-1", URI: "HTTPS://arxiv.org/pdf/1234", MIMEType: domain.MIMETypePDF}
	store, local, remote := setup(t, doc)
	remote.content = []byte("%PDF")

	e := NewExtractor(store, local, remote)
	e.Register(&mockConverter{types: []string{domain.MIMETypePDF}, text: "pdf text"})

	text, err := e.GetText(context.Background(), "doc-1")

	require.NoError(t, err)
	assert.Equal(t, "pdf text", text)
	assert.Len(t, remote.uris, 1)
	assert.Empty(t, local.uris)
}

func TestExtractor_GetText_MIMEParameters(t *testing.T) {
	doc := &domain.Document{ID: "doc-1", URI: "/a.txt", MIMEType: "text/plain; charset=utf-8"}
	store, local, remote := setup(t, doc)
	local.content = []byte("hello")

	e := NewExtractor(store, local, remote)
	e.Register(plaintext.New())

	text, err := e.GetText(context.Background(), "doc-1")
	require.NoError(t, err)
	assert.Equal(t, "hello", text)
}

func TestExtractor_GetText_Errors(t *testing.T) {
	tests := []struct {
		name  string
		doc   *domain.Document
		id    string
		setup func(e *Extractor, local *mockFetcher)
		cause error
	}{
		{
			name:  "unknown document",
			id:    "missing",
			setup: func(_ *Extractor, _ *mockFetcher) {},
			cause: domain.ErrNotFound,
		},
		{
			name:  "unsupported mime type",
			doc:   &domain.Document{ID: "doc-1", URI: "/a.docx", MIMEType: "application/msword"},
			id:    "doc-1",
			setup: func(_ *Extractor, _ *mockFetcher) {},
			cause: domain.ErrUnsupportedType,
		},
		{
			name: "fetch failure",
			doc:  &domain.Document{ID: "doc-1", URI: "/a.txt", MIMEType: "text/plain"},
			id:   "doc-1",
			setup: func(_ *Extractor, local *mockFetcher) {
				local.err = domain.ErrNotFound
			},
			cause: domain.ErrNotFound,
		},
		{
			name: "convert failure",
			doc:  &domain.Document{ID: "doc-1", URI: "/a.txt", MIMEType: "text/x-broken"},
			id:   "doc-1",
			setup: func(e *Extractor, _ *mockFetcher) {
				e.Register(&mockConverter{types: []string{"text/x-broken"}, err: domain.ErrInvalidInput})
			},
			cause: domain.ErrInvalidInput,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var docs []*domain.Document
			if tc.doc != nil {
				docs = append(docs, tc.doc)
			}
			store, local, remote := setup(t, docs...)
			e := NewExtractor(store, local, remote)
			e.Register(plaintext.New())
			tc.setup(e, local)

			_, err := e.GetText(context.Background(), tc.id)

			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrExtractionUnavailable)
			assert.ErrorIs(t, err, tc.cause)
		})
	}
}

func TestExtractor_GetText_NoRemoteFetcher(t *testing.T) {
	doc := &domain.Document{ID: "doc-1", URI: "http://example.com/a.txt", MIMEType: "text/plain"}
	store, local, _ := setup(t, doc)

	e := NewExtractor(store, local, nil)
	e.Register(plaintext.New())

	_, err := e.GetText(context.Background(), "doc-1")

	assert.ErrorIs(t, err, domain.ErrExtractionUnavailable)
	assert.ErrorIs(t, err, domain.ErrUnsupportedType)
}

func TestExtractor_GetText_NotConfigured(t *testing.T) {
	_, err := NewExtractor(nil, nil, nil).GetText(context.Background(), "doc-1")
	assert.ErrorIs(t, err, domain.ErrExtractionUnavailable)
	assert.ErrorIs(t, err, domain.ErrNotImplemented)
}

func TestExtractor_Register(t *testing.T) {
	e := NewExtractor(nil, nil, nil)
	assert.Empty(t, e.SupportedMIMETypes())

	e.Register(plaintext.New())
	e.Register(&mockConverter{types: []string{domain.MIMETypePDF}})

	assert.Equal(t, []string{"application/pdf", "text/plain"}, e.SupportedMIMETypes())
}

func TestExtractor_Register_Replaces(t *testing.T) {
	doc := &domain.Document{ID: "doc-1", URI: "/a.txt", MIMEType: "text/plain"}
	store, local, remote := setup(t, doc)

	e := NewExtractor(store, local, remote)
	e.Register(plaintext.New())
	e.Register(&mockConverter{types: []string{"text/plain"}, text: "override"})

	text, err := e.GetText(context.Background(), "doc-1")
	require.NoError(t, err)
	assert.Equal(t, "override", text)
}
