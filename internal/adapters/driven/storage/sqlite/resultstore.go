package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/custodia-labs/acronyms/internal/core/domain"
	"github.com/custodia-labs/acronyms/internal/core/ports/driven"
)

// resultStore implements driven.ResultStore.
type resultStore struct {
	store *Store
}

var _ driven.ResultStore = (*resultStore)(nil)

// Get returns the stored result, or nil if the document has none.
func (s *resultStore) Get(ctx context.Context, documentID string) (*domain.AcronymResult, error) {
	var matchesJSON, shortFormsJSON string
	var updatedAt sql.NullString
	var result domain.AcronymResult

	err := s.store.db.QueryRowContext(ctx, `
		SELECT matches, short_forms, version, updated_at
		FROM acronym_results WHERE document_id = ?
	`, documentID).Scan(&matchesJSON, &shortFormsJSON, &result.Version, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying result: %w", err)
	}

	if err := json.Unmarshal([]byte(matchesJSON), &result.Matches); err != nil {
		return nil, fmt.Errorf("unmarshalling matches: %w", err)
	}
	if err := json.Unmarshal([]byte(shortFormsJSON), &result.ShortForms); err != nil {
		return nil, fmt.Errorf("unmarshalling short forms: %w", err)
	}
	if result.Matches == nil {
		result.Matches = map[string]string{}
	}
	if result.ShortForms == nil {
		result.ShortForms = []string{}
	}
	result.UpdatedAt = parseNullableTime(updatedAt)

	return &result, nil
}

// Put replaces the stored result of a document.
func (s *resultStore) Put(ctx context.Context, documentID string, result *domain.AcronymResult) error {
	if result == nil || documentID == "" {
		return domain.ErrInvalidInput
	}

	matches := result.Matches
	if matches == nil {
		matches = map[string]string{}
	}
	shortForms := result.ShortForms
	if shortForms == nil {
		shortForms = []string{}
	}

	matchesJSON, err := json.Marshal(matches)
	if err != nil {
		return fmt.Errorf("marshalling matches: %w", err)
	}
	shortFormsJSON, err := json.Marshal(shortForms)
	if err != nil {
		return fmt.Errorf("marshalling short forms: %w", err)
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO acronym_results (document_id, matches, short_forms, version, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(document_id) DO UPDATE SET
			matches = excluded.matches,
			short_forms = excluded.short_forms,
			version = excluded.version,
			updated_at = excluded.updated_at
	`, documentID, string(matchesJSON), string(shortFormsJSON), result.Version, formatTime(result.UpdatedAt))
	if err != nil {
		return fmt.Errorf("saving result: %w", err)
	}
	return nil
}

// Delete removes the stored result of a document.
func (s *resultStore) Delete(ctx context.Context, documentID string) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM acronym_results WHERE document_id = ?", documentID)
	if err != nil {
		return fmt.Errorf("deleting result: %w", err)
	}
	return nil
}

// ListStale returns the IDs of documents whose result version is below version.
func (s *resultStore) ListStale(ctx context.Context, version float64) ([]string, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT document_id FROM acronym_results
		WHERE version < ?
		ORDER BY document_id
	`, version)
	if err != nil {
		return nil, fmt.Errorf("querying stale results: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning stale result: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating stale results: %w", err)
	}

	return ids, nil
}
