package services

import (
	"context"
	"sync"
	"time"

	"github.com/custodia-labs/acronyms/internal/core/domain"
	"github.com/custodia-labs/acronyms/internal/core/ports/driven"
	"github.com/custodia-labs/acronyms/internal/core/ports/driving"
	"github.com/custodia-labs/acronyms/internal/logger"
)

// Ensure Refresher implements the interface.
var _ driving.Scheduler = (*Refresher)(nil)

// Refresher periodically recomputes results produced by an older engine.
// Runs never overlap; a tick arriving while a run is in progress is skipped.
type Refresher struct {
	acronyms driving.AcronymService
	history  driven.RefreshLog
	interval time.Duration

	mu      sync.Mutex
	running bool
	busy    bool
	stopCh  chan struct{}
	wg      sync.WaitGroup
}

// NewRefresher creates a refresher. history is optional.
func NewRefresher(acronyms driving.AcronymService, history driven.RefreshLog, interval time.Duration) *Refresher {
	return &Refresher{
		acronyms: acronyms,
		history:  history,
		interval: interval,
	}
}

// Start runs a refresh immediately and then on every interval.
// It blocks until ctx is cancelled or Stop is called.
func (r *Refresher) Start(ctx context.Context) error {
	if r.interval <= 0 {
		return domain.ErrInvalidInput
	}

	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return nil
	}
	r.running = true
	r.stopCh = make(chan struct{})
	stopCh := r.stopCh
	r.mu.Unlock()

	r.trigger(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.wg.Wait()
			return ctx.Err()
		case <-stopCh:
			return nil
		case <-ticker.C:
			r.trigger(ctx)
		}
	}
}

// Stop shuts the loop down and waits for a running refresh to finish.
func (r *Refresher) Stop() error {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return nil
	}
	r.running = false
	close(r.stopCh)
	r.mu.Unlock()

	r.wg.Wait()
	return nil
}

// trigger starts a run in the background unless one is in progress.
func (r *Refresher) trigger(ctx context.Context) {
	r.mu.Lock()
	if r.busy {
		r.mu.Unlock()
		logger.Debug("refresh still running, skipping tick")
		return
	}
	r.busy = true
	r.wg.Add(1)
	r.mu.Unlock()

	go func() {
		defer r.wg.Done()
		defer func() {
			r.mu.Lock()
			r.busy = false
			r.mu.Unlock()
		}()
		_, _ = r.RunOnce(ctx)
	}()
}

// RunOnce refreshes stale results and records the run.
func (r *Refresher) RunOnce(ctx context.Context) (*domain.RefreshReport, error) {
	if r.acronyms == nil {
		return nil, domain.ErrNotImplemented
	}

	report, err := r.acronyms.RefreshStale(ctx)
	if err != nil {
		logger.Warn("refresh failed: %v", err)
	}
	if report == nil {
		return nil, err
	}
	logger.Info("refreshed %d stale results (%d failed) in %s",
		report.Refreshed, len(report.Failed), report.Duration())

	if r.history != nil {
		// Recording must survive cancellation of the run itself.
		recordCtx := context.WithoutCancel(ctx)
		if recErr := r.history.Record(recordCtx, report); recErr != nil {
			logger.Warn("failed to record refresh run: %v", recErr)
		}
		if pruneErr := r.history.Prune(recordCtx, domain.DefaultRefreshHistory); pruneErr != nil {
			logger.Warn("failed to prune refresh history: %v", pruneErr)
		}
	}
	return report, err
}
