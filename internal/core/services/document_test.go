package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/acronyms/internal/acronyms"
	"github.com/custodia-labs/acronyms/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/acronyms/internal/core/domain"
)

func TestNewDocumentService(t *testing.T) {
	svc := NewDocumentService(memory.NewDocumentStore(), nil)
	require.NotNil(t, svc)
}

func TestDocumentService_Add(t *testing.T) {
	svc := NewDocumentService(memory.NewDocumentStore(), nil)
	ctx := context.Background()

	doc, err := svc.Add(ctx, "", "https://arxiv.org/pdf/1706.03762", "")

	require.NoError(t, err)
	_, err = uuid.Parse(doc.ID)
	assert.NoError(t, err)
	assert.Equal(t, "1706.03762", doc.Title)
	assert.Equal(t, domain.MIMETypePDF, doc.MIMEType)
	assert.False(t, doc.CreatedAt.IsZero())

	got, err := svc.Get(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, doc.URI, got.URI)
}

func TestDocumentService_Add_ExplicitFields(t *testing.T) {
	svc := NewDocumentService(memory.NewDocumentStore(), nil)

	doc, err := svc.Add(context.Background(), "Notes", "/tmp/notes.pdf", domain.MIMETypePlainText)

	require.NoError(t, err)
	assert.Equal(t, "Notes", doc.Title)
	assert.Equal(t, domain.MIMETypePlainText, doc.MIMEType)
}

func TestDocumentService_Add_RequiresURI(t *testing.T) {
	svc := NewDocumentService(memory.NewDocumentStore(), nil)

	_, err := svc.Add(context.Background(), "title", "  ", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDocumentService_List(t *testing.T) {
	svc := NewDocumentService(memory.NewDocumentStore(), nil)
	ctx := context.Background()

	_, err := svc.Add(ctx, "a", "/a.txt", "")
	require.NoError(t, err)
	_, err = svc.Add(ctx, "b", "/b.txt", "")
	require.NoError(t, err)

	docs, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, docs, 2)
}

func TestDocumentService_Remove_WithdrawsVotes(t *testing.T) {
	docs := memory.NewDocumentStore()
	f := newAcronymFixture(nil)
	svc := NewDocumentService(docs, f.svc)
	ctx := context.Background()

	doc, err := svc.Add(ctx, "svm", "/svm.txt", "")
	require.NoError(t, err)
	require.NoError(t, f.results.Put(ctx, doc.ID, &domain.AcronymResult{
		Matches:    map[string]string{"SVM": "Support Vector Machine"},
		ShortForms: []string{"SVM"},
		Version:    domain.EngineVersion,
	}))
	require.NoError(t, f.aggregates.Record(ctx, "SVM", "Support Vector Machine", 2))

	require.NoError(t, svc.Remove(ctx, doc.ID))

	_, err = svc.Get(ctx, doc.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	stored, err := f.results.Get(ctx, doc.ID)
	require.NoError(t, err)
	assert.Nil(t, stored)
	assert.Equal(t, 1, f.count(t, "SVM", "Support Vector Machine"))
}

func TestDocumentService_Remove_WaitsForInFlightResolve(t *testing.T) {
	docs := memory.NewDocumentStore()
	gate := &gatedExtractor{
		text:    svmText,
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	results := memory.NewResultStore()
	aggregates := memory.NewAggregateStore()
	acronymSvc := NewAcronymService(results, aggregates, gate,
		acronyms.NewBuilder(domain.DefaultEngineSettings()), 0)
	svc := NewDocumentService(docs, acronymSvc)
	ctx := context.Background()

	doc, err := svc.Add(ctx, "svm", "/svm.txt", "")
	require.NoError(t, err)

	resolved := make(chan error, 1)
	go func() {
		_, err := acronymSvc.Resolve(ctx, doc.ID, false)
		resolved <- err
	}()
	<-gate.started

	removed := make(chan error, 1)
	go func() { removed <- svc.Remove(ctx, doc.ID) }()

	select {
	case <-removed:
		t.Fatal("Remove returned while a resolve held the document")
	case <-time.After(50 * time.Millisecond):
	}

	close(gate.release)
	require.NoError(t, <-resolved)
	require.NoError(t, <-removed)

	stored, err := results.Get(ctx, doc.ID)
	require.NoError(t, err)
	assert.Nil(t, stored)

	entry, err := aggregates.Get(ctx, "SVM")
	if err == nil {
		assert.Zero(t, entry.LongFormCounts["Support Vector Machine"])
	} else {
		assert.ErrorIs(t, err, domain.ErrNotFound)
	}
}

func TestDocumentService_Remove_KeepsVotesWhenResultDeleteFails(t *testing.T) {
	docs := memory.NewDocumentStore()
	results := &failingResults{ResultStore: memory.NewResultStore(), deleteErr: errors.New("locked")}
	aggregates := memory.NewAggregateStore()
	acronymSvc := NewAcronymService(results, aggregates, &mockExtractor{},
		acronyms.NewBuilder(domain.DefaultEngineSettings()), 0)
	svc := NewDocumentService(docs, acronymSvc)
	ctx := context.Background()

	doc, err := svc.Add(ctx, "svm", "/svm.txt", "")
	require.NoError(t, err)
	require.NoError(t, results.Put(ctx, doc.ID, &domain.AcronymResult{
		Matches:    map[string]string{"SVM": "Support Vector Machine"},
		ShortForms: []string{"SVM"},
		Version:    domain.EngineVersion,
	}))
	require.NoError(t, aggregates.Record(ctx, "SVM", "Support Vector Machine", 1))

	err = svc.Remove(ctx, doc.ID)
	require.Error(t, err)

	entry, err := aggregates.Get(ctx, "SVM")
	require.NoError(t, err)
	assert.Equal(t, 1, entry.LongFormCounts["Support Vector Machine"])

	// Retrying clears the leftover result exactly once.
	results.deleteErr = nil
	assert.ErrorIs(t, svc.Remove(ctx, doc.ID), domain.ErrNotFound)
	assert.ErrorIs(t, svc.Remove(ctx, doc.ID), domain.ErrNotFound)

	stored, err := results.Get(ctx, doc.ID)
	require.NoError(t, err)
	assert.Nil(t, stored)
	entry, err = aggregates.Get(ctx, "SVM")
	require.NoError(t, err)
	assert.Zero(t, entry.LongFormCounts["Support Vector Machine"])
}

func TestDocumentService_Remove_NotFound(t *testing.T) {
	f := newAcronymFixture(nil)
	svc := NewDocumentService(memory.NewDocumentStore(), f.svc)

	err := svc.Remove(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumentService_NilStore(t *testing.T) {
	svc := NewDocumentService(nil, nil)
	ctx := context.Background()

	_, err := svc.Add(ctx, "", "/a.txt", "")
	assert.ErrorIs(t, err, domain.ErrNotImplemented)
	_, err = svc.Get(ctx, "x")
	assert.ErrorIs(t, err, domain.ErrNotImplemented)
	_, err = svc.List(ctx)
	assert.ErrorIs(t, err, domain.ErrNotImplemented)
	assert.ErrorIs(t, svc.Remove(ctx, "x"), domain.ErrNotImplemented)
}

func TestInferMIMEType(t *testing.T) {
	tests := []struct {
		uri  string
		want string
	}{
		{"/papers/svm.pdf", domain.MIMETypePDF},
		{"file:///papers/SVM.PDF", domain.MIMETypePDF},
		{"https://example.org/paper.pdf?download=1", domain.MIMETypePDF},
		{"https://arxiv.org/pdf/1706.03762", domain.MIMETypePDF},
		{"/notes/readme.txt", domain.MIMETypePlainText},
		{"/notes/README.md", domain.MIMETypeMarkdown},
		{"https://example.org/index.html", domain.MIMETypeHTML},
		{"/notes/data.bin", domain.MIMETypePlainText},
		{"https://example.org/abstract", domain.MIMETypePlainText},
	}
	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			assert.Equal(t, tt.want, InferMIMEType(tt.uri))
		})
	}
}
