package driving

import (
	"context"

	"github.com/custodia-labs/acronyms/internal/core/domain"
)

// Scheduler runs background refresh of stale acronym results.
type Scheduler interface {
	// Start begins running scheduled refreshes.
	// Blocks until context is cancelled or Stop is called.
	Start(ctx context.Context) error

	// Stop gracefully stops the loop and waits for a running refresh.
	Stop() error

	// RunOnce performs a single refresh and records it.
	RunOnce(ctx context.Context) (*domain.RefreshReport, error)
}

// RefreshHistory exposes recorded refresh runs.
type RefreshHistory interface {
	// History returns recent runs, most recent first.
	History(ctx context.Context, limit int) ([]domain.RefreshReport, error)
}
