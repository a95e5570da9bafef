package driven

import (
	"context"

	"github.com/custodia-labs/acronyms/internal/core/domain"
)

// AggregateStore keeps long form vote counts per short form together with
// administrator overrides. Entries are created lazily and never removed.
type AggregateStore interface {
	// Record adjusts the vote count of one pair by delta, creating the
	// entry if needed. Implementations must apply it as an atomic
	// increment, never as read-modify-write.
	Record(ctx context.Context, shortForm, longForm string, delta int) error

	// RecordBatch applies several deltas atomically, in order.
	RecordBatch(ctx context.Context, deltas []domain.VoteDelta) error

	// Entries returns the entries for the given short forms.
	// Short forms without an entry are absent from the map.
	Entries(ctx context.Context, shortForms []string) (map[string]domain.AggregateEntry, error)

	// Get returns the entry for one short form.
	// Returns domain.ErrNotFound if no vote or override exists.
	Get(ctx context.Context, shortForm string) (*domain.AggregateEntry, error)

	// SetVerified sets the administrator override. Counts are untouched.
	SetVerified(ctx context.Context, shortForm, longForm string) error
}
