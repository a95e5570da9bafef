package mcp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/acronyms/internal/core/domain"
	"github.com/custodia-labs/acronyms/internal/core/ports/driving"
)

func newTestServer(t *testing.T, acronyms *mockAcronymService) *Server {
	t.Helper()
	server, err := NewServer(&Ports{Acronyms: acronyms})
	require.NoError(t, err)
	return server
}

func TestServer_handleResolve(t *testing.T) {
	ctx := context.Background()

	t.Run("returns enriched acronyms", func(t *testing.T) {
		svc := &mockAcronymService{
			resolution: &driving.Resolution{
				DocumentID: "doc-1",
				Acronyms:   map[string]string{"SVM": "Support Vector Machine"},
				ShortForms: []string{"CNN", "SVM"},
				State:      domain.ResolveStateNew,
				Version:    domain.EngineVersion,
			},
		}
		server := newTestServer(t, svc)

		_, output, err := server.handleResolve(ctx, nil, ResolveInput{DocumentID: " doc-1 ", ForceRefresh: true})

		require.NoError(t, err)
		assert.Equal(t, "doc-1", svc.resolvedID)
		assert.True(t, svc.resolvedForce)
		assert.Equal(t, "doc-1", output.DocumentID)
		assert.Equal(t, map[string]string{"SVM": "Support Vector Machine"}, output.Acronyms)
		assert.Equal(t, []string{"CNN"}, output.Unresolved)
		assert.Equal(t, "new", output.State)
		assert.Equal(t, domain.EngineVersion, output.Version)
	})

	t.Run("nil acronyms become empty map", func(t *testing.T) {
		server := newTestServer(t, &mockAcronymService{
			resolution: &driving.Resolution{DocumentID: "doc-1", State: domain.ResolveStateCached},
		})

		_, output, err := server.handleResolve(ctx, nil, ResolveInput{DocumentID: "doc-1"})

		require.NoError(t, err)
		assert.NotNil(t, output.Acronyms)
		assert.Empty(t, output.Unresolved)
	})

	t.Run("propagates extraction errors", func(t *testing.T) {
		server := newTestServer(t, &mockAcronymService{err: domain.ErrExtractionUnavailable})

		_, _, err := server.handleResolve(ctx, nil, ResolveInput{DocumentID: "doc-1"})
		assert.ErrorIs(t, err, domain.ErrExtractionUnavailable)
	})
}

func TestServer_handleSetVerified(t *testing.T) {
	ctx := context.Background()

	t.Run("records override", func(t *testing.T) {
		svc := &mockAcronymService{}
		server := newTestServer(t, svc)

		_, output, err := server.handleSetVerified(ctx, nil, VerifyInput{
			ShortForm: " SVM ",
			LongForm:  "Support Vector Machine",
		})

		require.NoError(t, err)
		assert.Equal(t, [2]string{"SVM", "Support Vector Machine"}, svc.verified)
		assert.Equal(t, "SVM", output.ShortForm)
	})

	t.Run("rejects empty values", func(t *testing.T) {
		svc := &mockAcronymService{}
		server := newTestServer(t, svc)

		_, _, err := server.handleSetVerified(ctx, nil, VerifyInput{ShortForm: "SVM", LongForm: "  "})

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		assert.Empty(t, svc.verified[0])
	})
}

func TestServer_handleLookup(t *testing.T) {
	ctx := context.Background()

	t.Run("orders votes by count", func(t *testing.T) {
		server := newTestServer(t, &mockAcronymService{
			entry: &domain.AggregateEntry{
				ShortForm: "CNN",
				Verified:  "Convolutional Neural Network",
				LongFormCounts: map[string]int{
					"Cable News Network":           1,
					"Convolutional Neural Network": 3,
					"Condensed Nearest Neighbour":  1,
				},
			},
		})

		_, output, err := server.handleLookup(ctx, nil, LookupInput{ShortForm: "CNN"})

		require.NoError(t, err)
		assert.Equal(t, "Convolutional Neural Network", output.Verified)
		assert.Equal(t, "Convolutional Neural Network", output.Majority)
		require.Len(t, output.Votes, 3)
		assert.Equal(t, VoteOutput{LongForm: "Convolutional Neural Network", Count: 3}, output.Votes[0])
		assert.Equal(t, "Cable News Network", output.Votes[1].LongForm)
		assert.Equal(t, "Condensed Nearest Neighbour", output.Votes[2].LongForm)
	})

	t.Run("not found", func(t *testing.T) {
		server := newTestServer(t, &mockAcronymService{err: domain.ErrNotFound})

		_, _, err := server.handleLookup(ctx, nil, LookupInput{ShortForm: "XYZ"})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
