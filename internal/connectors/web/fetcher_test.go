package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/acronyms/internal/core/domain"
)

func TestFetcher_Fetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, userAgent, r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte("Gated Recurrent Unit (GRU)"))
	}))
	defer server.Close()

	body, err := NewFetcher(server.Client(), nil).Fetch(context.Background(), server.URL+"/paper.txt")

	require.NoError(t, err)
	assert.Equal(t, "Gated Recurrent Unit (GRU)", string(body))
}

func TestFetcher_Fetch_StatusErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		check  func(t *testing.T, err error)
	}{
		{"not found", http.StatusNotFound, func(t *testing.T, err error) {
			assert.ErrorIs(t, err, domain.ErrNotFound)
		}},
		{"server error", http.StatusInternalServerError, func(t *testing.T, err error) {
			assert.Contains(t, err.Error(), "unexpected status 500")
		}},
		{"rate limited", http.StatusTooManyRequests, func(t *testing.T, err error) {
			assert.ErrorIs(t, err, ErrRateLimited)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Retry-After", "1")
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			_, err := NewFetcher(server.Client(), nil).Fetch(context.Background(), server.URL)
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestFetcher_Fetch_RateLimitedSetsBackoff(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Retry-After", "120")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	limiter := NewRateLimiter(0)
	_, err := NewFetcher(server.Client(), limiter).Fetch(context.Background(), server.URL)
	require.ErrorIs(t, err, ErrRateLimited)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, limiter.Wait(ctx), context.DeadlineExceeded)
}

func TestFetcher_Fetch_UnsupportedScheme(t *testing.T) {
	_, err := NewFetcher(nil, nil).Fetch(context.Background(), "/local/file.pdf")
	assert.ErrorIs(t, err, domain.ErrUnsupportedType)
}

func TestFetcher_Fetch_TooLarge(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(make([]byte, 64))
	}))
	defer server.Close()

	f := NewFetcher(server.Client(), nil)
	f.maxSize = 16

	_, err := f.Fetch(context.Background(), server.URL)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestFetcher_Fetch_Throttled(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte("ok"))
	}))
	defer server.Close()

	f := NewFetcher(server.Client(), NewRateLimiter(1))
	_, err := f.Fetch(context.Background(), server.URL)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = f.Fetch(ctx, server.URL)

	assert.Error(t, err)
	assert.Equal(t, int32(1), hits.Load())
}

func TestParseRetryAfter(t *testing.T) {
	assert.Equal(t, 30*time.Second, parseRetryAfter("30"))
	assert.Zero(t, parseRetryAfter(""))
	assert.Zero(t, parseRetryAfter("soon"))

	future := time.Now().Add(time.Hour).UTC().Format(http.TimeFormat)
	assert.InDelta(t, time.Hour.Seconds(), parseRetryAfter(future).Seconds(), 5)
}

func TestRateLimiter_Wait(t *testing.T) {
	r := NewRateLimiter(0)
	require.NoError(t, r.Wait(context.Background()))

	r.RecordRateLimit(0)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, r.Wait(ctx), context.DeadlineExceeded)
}
