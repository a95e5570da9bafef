package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/custodia-labs/acronyms/internal/core/domain"
	"github.com/custodia-labs/acronyms/internal/core/ports/driven"
	"github.com/custodia-labs/acronyms/internal/core/ports/driving"
	"github.com/custodia-labs/acronyms/internal/logger"
)

// Ensure AcronymService implements the interface.
var _ driving.AcronymService = (*AcronymService)(nil)

// ResultBuilder computes the acronym result of a document's text.
type ResultBuilder interface {
	Build(text string) *domain.AcronymResult
}

// AcronymService serves per-document acronym results, recomputing them when
// they are missing or were produced by an older engine, and keeps the
// cross-document vote aggregate in step with the stored results.
type AcronymService struct {
	results    driven.ResultStore
	aggregates driven.AggregateStore
	extractor  driven.TextExtractor
	builder    ResultBuilder
	timeout    time.Duration

	locks *keyedMutex
}

// NewAcronymService creates a new acronym service.
// A zero timeout leaves extraction bounded only by the caller's context.
func NewAcronymService(
	results driven.ResultStore,
	aggregates driven.AggregateStore,
	extractor driven.TextExtractor,
	builder ResultBuilder,
	timeout time.Duration,
) *AcronymService {
	return &AcronymService{
		results:    results,
		aggregates: aggregates,
		extractor:  extractor,
		builder:    builder,
		timeout:    timeout,
		locks:      newKeyedMutex(),
	}
}

// Resolve returns the enriched acronyms of a document.
func (s *AcronymService) Resolve(ctx context.Context, documentID string, force bool) (*driving.Resolution, error) {
	if documentID == "" {
		return nil, fmt.Errorf("%w: empty document id", domain.ErrInvalidInput)
	}
	if s.results == nil || s.extractor == nil || s.builder == nil {
		return nil, domain.ErrNotImplemented
	}

	unlock := s.locks.Lock(documentID)
	defer unlock()

	stored, err := s.results.Get(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("get result: %w", err)
	}

	state := domain.ResolveStateCached
	result := stored
	if stored == nil || stored.IsStale() || force {
		result, err = s.recompute(ctx, documentID, stored)
		if err != nil {
			return nil, err
		}
		state = domain.ResolveStateNew
		if stored != nil {
			state = domain.ResolveStateUpdated
		}
	}

	logger.Debug("document %s: %s result v%.1f with %d short forms",
		documentID, state, result.Version, len(result.ShortForms))

	return &driving.Resolution{
		DocumentID: documentID,
		Acronyms:   s.enrich(ctx, result),
		ShortForms: result.ShortForms,
		State:      state,
		Version:    result.Version,
	}, nil
}

// recompute extracts, builds, votes and persists a fresh result.
// On extraction failure the stored result is left untouched.
func (s *AcronymService) recompute(
	ctx context.Context,
	documentID string,
	stored *domain.AcronymResult,
) (*domain.AcronymResult, error) {
	done := logger.Timed("recompute %s", documentID)
	defer done()

	text, err := s.extract(ctx, documentID)
	if err != nil {
		return nil, err
	}

	result := s.builder.Build(text)

	// The stored result records the votes cast, so it lands before they do.
	if err := s.results.Put(ctx, documentID, result); err != nil {
		return nil, fmt.Errorf("put result: %w", err)
	}

	var deltas []domain.VoteDelta
	for _, p := range stored.Pairs() {
		deltas = append(deltas, domain.VoteDelta{ShortForm: p.ShortForm, LongForm: p.LongForm, Delta: -1})
	}
	for _, p := range result.Pairs() {
		deltas = append(deltas, domain.VoteDelta{ShortForm: p.ShortForm, LongForm: p.LongForm, Delta: 1})
	}
	s.vote(ctx, documentID, deltas)

	return result, nil
}

// Withdraw drops the stored result of a document and takes back its votes.
// It waits for any in-flight Resolve of the same document.
func (s *AcronymService) Withdraw(ctx context.Context, documentID string) error {
	if documentID == "" {
		return fmt.Errorf("%w: empty document id", domain.ErrInvalidInput)
	}
	if s.results == nil {
		return nil
	}

	unlock := s.locks.Lock(documentID)
	defer unlock()

	stored, err := s.results.Get(ctx, documentID)
	if err != nil {
		return fmt.Errorf("get result: %w", err)
	}
	if stored == nil {
		return nil
	}
	if err := s.results.Delete(ctx, documentID); err != nil {
		return fmt.Errorf("delete result: %w", err)
	}

	deltas := stored.Pairs()
	for i := range deltas {
		deltas[i].Delta = -1
	}
	s.vote(ctx, documentID, deltas)
	return nil
}

func (s *AcronymService) extract(ctx context.Context, documentID string) (string, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	text, err := s.extractor.GetText(ctx, documentID)
	if err != nil {
		if errors.Is(err, domain.ErrExtractionUnavailable) {
			return "", err
		}
		return "", fmt.Errorf("%w: %s: %w", domain.ErrExtractionUnavailable, documentID, err)
	}
	return text, nil
}

// vote applies aggregate deltas. Failures are logged and never fail the
// caller, whose result is still returned.
func (s *AcronymService) vote(ctx context.Context, documentID string, deltas []domain.VoteDelta) {
	if s.aggregates == nil || len(deltas) == 0 {
		return
	}
	if err := s.aggregates.RecordBatch(ctx, deltas); err != nil {
		err = fmt.Errorf("%w: document %s: %w", domain.ErrAggregationWrite, documentID, err)
		logger.Warn("%v", err)
	}
}

func (s *AcronymService) enrich(ctx context.Context, result *domain.AcronymResult) map[string]string {
	var entries map[string]domain.AggregateEntry
	if s.aggregates != nil && len(result.ShortForms) > 0 {
		var err error
		entries, err = s.aggregates.Entries(ctx, result.ShortForms)
		if err != nil {
			logger.Warn("load aggregate entries: %v", err)
			entries = nil
		}
	}
	return domain.Enrich(result.Matches, result.ShortForms, entries)
}

// SetVerified records an administrator override.
func (s *AcronymService) SetVerified(ctx context.Context, shortForm, longForm string) error {
	shortForm = strings.TrimSpace(shortForm)
	longForm = strings.TrimSpace(longForm)
	if shortForm == "" || longForm == "" {
		return fmt.Errorf("%w: short form and long form are required", domain.ErrInvalidInput)
	}
	if s.aggregates == nil {
		return domain.ErrNotImplemented
	}
	if err := s.aggregates.SetVerified(ctx, shortForm, longForm); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrAggregationWrite, err)
	}
	logger.Info("verified %s = %q", shortForm, longForm)
	return nil
}

// Lookup returns the aggregate entry of a short form.
func (s *AcronymService) Lookup(ctx context.Context, shortForm string) (*domain.AggregateEntry, error) {
	if shortForm == "" {
		return nil, fmt.Errorf("%w: empty short form", domain.ErrInvalidInput)
	}
	if s.aggregates == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.aggregates.Get(ctx, shortForm)
}

// RefreshStale recomputes every stored result older than the engine.
// Failures are collected per document and do not stop the run.
func (s *AcronymService) RefreshStale(ctx context.Context) (*domain.RefreshReport, error) {
	if s.results == nil {
		return nil, domain.ErrNotImplemented
	}

	report := &domain.RefreshReport{
		Failed:    make(map[string]string),
		StartedAt: time.Now(),
	}

	ids, err := s.results.ListStale(ctx, domain.EngineVersion)
	if err != nil {
		return nil, fmt.Errorf("list stale results: %w", err)
	}
	logger.Info("refreshing %d stale results", len(ids))

	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			report.EndedAt = time.Now()
			return report, err
		}
		if _, err := s.Resolve(ctx, id, false); err != nil {
			logger.Warn("refresh %s: %v", id, err)
			report.Failed[id] = err.Error()
			continue
		}
		report.Refreshed++
	}

	report.EndedAt = time.Now()
	return report, nil
}
