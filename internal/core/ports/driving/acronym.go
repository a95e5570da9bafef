package driving

import (
	"context"

	"github.com/custodia-labs/acronyms/internal/core/domain"
)

// AcronymService resolves the acronyms of documents and curates the
// cross-document vote aggregate.
type AcronymService interface {
	// Resolve returns the resolved short forms of a document. The stored
	// result is recomputed when missing, stale, or when force is set.
	Resolve(ctx context.Context, documentID string, force bool) (*Resolution, error)

	// SetVerified records an administrator override for a short form.
	SetVerified(ctx context.Context, shortForm, longForm string) error

	// Lookup returns the aggregate entry of one short form.
	Lookup(ctx context.Context, shortForm string) (*domain.AggregateEntry, error)

	// RefreshStale recomputes every stored result older than the engine.
	RefreshStale(ctx context.Context) (*domain.RefreshReport, error)
}

// Resolution is the outcome of resolving one document.
type Resolution struct {
	// DocumentID identifies the document.
	DocumentID string

	// Acronyms maps each resolved short form to its long form after
	// enrichment with overrides and votes.
	Acronyms map[string]string

	// ShortForms lists every detected short form, resolved or not.
	ShortForms []string

	// State tells whether the result was cached, new or recomputed.
	State domain.ResolveState

	// Version is the engine version of the underlying result.
	Version float64
}

// Unresolved returns the detected short forms without a long form.
func (r *Resolution) Unresolved() []string {
	var out []string
	for _, sf := range r.ShortForms {
		if _, ok := r.Acronyms[sf]; !ok {
			out = append(out, sf)
		}
	}
	return out
}
