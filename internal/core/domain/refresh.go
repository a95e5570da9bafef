package domain

import "time"

// DefaultRefreshHistory is how many refresh runs are kept.
const DefaultRefreshHistory = 100

// RefreshReport summarises one run recomputing stale results.
type RefreshReport struct {
	// Refreshed is the number of documents recomputed.
	Refreshed int

	// Failed maps document IDs to the error that stopped their refresh.
	Failed map[string]string

	// StartedAt is when the run started.
	StartedAt time.Time

	// EndedAt is when the run finished.
	EndedAt time.Time
}

// Duration returns how long the run took.
func (r *RefreshReport) Duration() time.Duration {
	if r.EndedAt.Before(r.StartedAt) {
		return 0
	}
	return r.EndedAt.Sub(r.StartedAt)
}

// Success reports whether every stale document was refreshed.
func (r *RefreshReport) Success() bool {
	return len(r.Failed) == 0
}
