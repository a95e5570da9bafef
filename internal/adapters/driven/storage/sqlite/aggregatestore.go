package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/custodia-labs/acronyms/internal/core/domain"
	"github.com/custodia-labs/acronyms/internal/core/ports/driven"
)

// upsertVoteSQL increments a vote count in place. Concurrent writers never
// lose updates because the addition happens inside the statement.
const upsertVoteSQL = `
	INSERT INTO acronym_votes (short_form, long_form, votes)
	VALUES (?, ?, ?)
	ON CONFLICT(short_form, long_form) DO UPDATE SET
		votes = votes + excluded.votes
`

// aggregateStore implements driven.AggregateStore.
type aggregateStore struct {
	store *Store
}

var _ driven.AggregateStore = (*aggregateStore)(nil)

// Record adjusts one vote count.
func (s *aggregateStore) Record(ctx context.Context, shortForm, longForm string, delta int) error {
	if shortForm == "" || longForm == "" {
		return domain.ErrInvalidInput
	}
	if _, err := s.store.db.ExecContext(ctx, upsertVoteSQL, shortForm, longForm, delta); err != nil {
		return fmt.Errorf("recording vote: %w", err)
	}
	return nil
}

// RecordBatch applies all deltas in one transaction.
func (s *aggregateStore) RecordBatch(ctx context.Context, deltas []domain.VoteDelta) error {
	for _, d := range deltas {
		if d.ShortForm == "" || d.LongForm == "" {
			return domain.ErrInvalidInput
		}
	}
	if len(deltas) == 0 {
		return nil
	}

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx, upsertVoteSQL)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for _, d := range deltas {
		if _, err := stmt.ExecContext(ctx, d.ShortForm, d.LongForm, d.Delta); err != nil {
			return fmt.Errorf("recording vote for %s: %w", d.ShortForm, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Entries loads the entries for the given short forms.
func (s *aggregateStore) Entries(ctx context.Context, shortForms []string) (map[string]domain.AggregateEntry, error) {
	entries := make(map[string]domain.AggregateEntry, len(shortForms))
	if len(shortForms) == 0 {
		return entries, nil
	}

	args := make([]any, len(shortForms))
	for i, sf := range shortForms {
		args[i] = sf
	}
	in := placeholders(len(shortForms))

	entry := func(sf string) domain.AggregateEntry {
		e, ok := entries[sf]
		if !ok {
			e = domain.AggregateEntry{ShortForm: sf, LongFormCounts: map[string]int{}}
		}
		return e
	}

	rows, err := s.store.db.QueryContext(ctx,
		"SELECT short_form, long_form, votes FROM acronym_votes WHERE short_form IN ("+in+")", args...)
	if err != nil {
		return nil, fmt.Errorf("querying votes: %w", err)
	}
	for rows.Next() {
		var sf, lf string
		var votes int
		if err := rows.Scan(&sf, &lf, &votes); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning vote: %w", err)
		}
		e := entry(sf)
		e.LongFormCounts[lf] = votes
		entries[sf] = e
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterating votes: %w", err)
	}
	rows.Close()

	rows, err = s.store.db.QueryContext(ctx,
		"SELECT short_form, long_form FROM acronym_verified WHERE short_form IN ("+in+")", args...)
	if err != nil {
		return nil, fmt.Errorf("querying verified forms: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var sf, lf string
		if err := rows.Scan(&sf, &lf); err != nil {
			return nil, fmt.Errorf("scanning verified form: %w", err)
		}
		e := entry(sf)
		e.Verified = lf
		entries[sf] = e
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating verified forms: %w", err)
	}

	return entries, nil
}

// Get returns the entry of one short form.
func (s *aggregateStore) Get(ctx context.Context, shortForm string) (*domain.AggregateEntry, error) {
	entries, err := s.Entries(ctx, []string{shortForm})
	if err != nil {
		return nil, err
	}
	e, ok := entries[shortForm]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &e, nil
}

// SetVerified sets the override of a short form. Vote counts are untouched.
func (s *aggregateStore) SetVerified(ctx context.Context, shortForm, longForm string) error {
	if shortForm == "" || longForm == "" {
		return domain.ErrInvalidInput
	}
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO acronym_verified (short_form, long_form, verified_at)
		VALUES (?, ?, ?)
		ON CONFLICT(short_form) DO UPDATE SET
			long_form = excluded.long_form,
			verified_at = excluded.verified_at
	`, shortForm, longForm, formatTime(time.Now()))
	if err != nil {
		return fmt.Errorf("saving verified form: %w", err)
	}
	return nil
}
