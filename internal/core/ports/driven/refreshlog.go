package driven

import (
	"context"

	"github.com/custodia-labs/acronyms/internal/core/domain"
)

// RefreshLog records the history of stale-result refresh runs.
type RefreshLog interface {
	// Record appends a finished run.
	Record(ctx context.Context, report *domain.RefreshReport) error

	// History returns recent runs, most recent first.
	History(ctx context.Context, limit int) ([]domain.RefreshReport, error)

	// Prune keeps only the most recent keep runs.
	Prune(ctx context.Context, keep int) error
}
