// Package web fetches remote documents over HTTP(S).
package web

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/acronyms/internal/core/domain"
	"github.com/custodia-labs/acronyms/internal/core/ports/driven"
	"github.com/custodia-labs/acronyms/internal/logger"
)

// DefaultMaxBodySize is the largest response body read (100 MiB).
const DefaultMaxBodySize = 100 << 20

// userAgent identifies the fetcher to document hosts.
const userAgent = "acronyms/1.0 (+https://github.com/custodia-labs/acronyms)"

// ErrRateLimited indicates the host answered 429 Too Many Requests.
var ErrRateLimited = errors.New("rate limited by remote host")

// Ensure Fetcher implements the interface.
var _ driven.Fetcher = (*Fetcher)(nil)

// Fetcher downloads documents over HTTP(S) under a shared rate limit.
type Fetcher struct {
	client  *http.Client
	limiter *RateLimiter
	maxSize int64
}

// NewFetcher creates a fetcher. A nil client uses a client with a 2 minute
// timeout.
func NewFetcher(client *http.Client, limiter *RateLimiter) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: 2 * time.Minute}
	}
	if limiter == nil {
		limiter = NewRateLimiter(0)
	}
	return &Fetcher{
		client:  client,
		limiter: limiter,
		maxSize: DefaultMaxBodySize,
	}
}

// Fetch downloads the body behind an http(s) URI.
func (f *Fetcher) Fetch(ctx context.Context, uri string) ([]byte, error) {
	if !strings.HasPrefix(uri, "http://") && !strings.HasPrefix(uri, "https://") {
		return nil, fmt.Errorf("%w: not an http uri: %s", domain.ErrUnsupportedType, uri)
	}

	if err := f.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}
	req.Header.Set("User-Agent", userAgent)

	logger.Debug("GET %s", uri)
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", uri, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		f.limiter.RecordRateLimit(parseRetryAfter(resp.Header.Get("Retry-After")))
		return nil, fmt.Errorf("download %s: %w", uri, ErrRateLimited)
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("download %s: %w", uri, domain.ErrNotFound)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("download %s: unexpected status %d", uri, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", uri, err)
	}
	if int64(len(body)) > f.maxSize {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", domain.ErrInvalidInput, uri, f.maxSize)
	}
	return body, nil
}

// parseRetryAfter reads a Retry-After header in seconds or HTTP-date form.
func parseRetryAfter(v string) time.Duration {
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(v); err == nil {
		return time.Until(t)
	}
	return 0
}
