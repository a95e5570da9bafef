package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/custodia-labs/acronyms/internal/core/domain"
	"github.com/custodia-labs/acronyms/internal/core/ports/driven"
)

// refreshLog implements driven.RefreshLog.
type refreshLog struct {
	store *Store
}

var _ driven.RefreshLog = (*refreshLog)(nil)

// Record appends a finished refresh run.
func (s *refreshLog) Record(ctx context.Context, report *domain.RefreshReport) error {
	if report == nil {
		return domain.ErrInvalidInput
	}

	failed := report.Failed
	if failed == nil {
		failed = map[string]string{}
	}
	failedJSON, err := json.Marshal(failed)
	if err != nil {
		return fmt.Errorf("marshalling failures: %w", err)
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO refresh_runs (started_at, ended_at, refreshed, failed)
		VALUES (?, ?, ?, ?)
	`, formatTime(report.StartedAt), formatTime(report.EndedAt), report.Refreshed, string(failedJSON))
	if err != nil {
		return fmt.Errorf("recording refresh run: %w", err)
	}
	return nil
}

// History returns recent runs, most recent first.
func (s *refreshLog) History(ctx context.Context, limit int) ([]domain.RefreshReport, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT started_at, ended_at, refreshed, failed
		FROM refresh_runs
		ORDER BY started_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying refresh history: %w", err)
	}
	defer rows.Close()

	var reports []domain.RefreshReport //nolint:prealloc // size unknown from query
	for rows.Next() {
		var report domain.RefreshReport
		var startedAt, endedAt sql.NullString
		var failedJSON string
		if err := rows.Scan(&startedAt, &endedAt, &report.Refreshed, &failedJSON); err != nil {
			return nil, fmt.Errorf("scanning refresh run: %w", err)
		}
		report.StartedAt = parseNullableTime(startedAt)
		report.EndedAt = parseNullableTime(endedAt)
		if err := json.Unmarshal([]byte(failedJSON), &report.Failed); err != nil {
			return nil, fmt.Errorf("unmarshalling failures: %w", err)
		}
		reports = append(reports, report)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating refresh history: %w", err)
	}

	return reports, nil
}

// Prune removes runs beyond the most recent keep.
func (s *refreshLog) Prune(ctx context.Context, keep int) error {
	_, err := s.store.db.ExecContext(ctx, `
		DELETE FROM refresh_runs
		WHERE id NOT IN (
			SELECT id FROM refresh_runs
			ORDER BY started_at DESC, id DESC
			LIMIT ?
		)
	`, keep)
	if err != nil {
		return fmt.Errorf("pruning refresh history: %w", err)
	}
	return nil
}
