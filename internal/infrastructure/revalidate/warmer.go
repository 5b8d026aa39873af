package revalidate

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

// Warmer re-renders ISR pages after invalidation by fetching them until the
// renderer answers 2xx. Any non-success response is treated the same,
// whatever the cause. Warming is best-effort: the caller's request succeeds
// even when every attempt fails.
type Warmer struct {
	baseURL    string
	httpClient *http.Client
	ringLog    *RingLog

	maxAttempts int
	backoff     time.Duration // linear: attempt n waits n*backoff
}

func NewWarmer(baseURL string, ringLog *RingLog) *Warmer {
	return &Warmer{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		ringLog:     ringLog,
		maxAttempts: 3,
		backoff:     2 * time.Second,
	}
}

// Warm fetches path until a 2xx or attempts run out. The outcome lands in the
// ring log either way; the returned error exists for callers that want to
// log it, not to fail their request.
func (w *Warmer) Warm(ctx context.Context, path string) error {
	var lastErr error

	for attempt := 1; attempt <= w.maxAttempts; attempt++ {
		lastErr = w.fetch(ctx, path)
		if lastErr == nil {
			w.ringLog.Add(Entry{
				Time:     time.Now().UTC(),
				Path:     path,
				Attempts: attempt,
				Success:  true,
			})
			return nil
		}

		if attempt < w.maxAttempts {
			select {
			case <-time.After(time.Duration(attempt) * w.backoff):
			case <-ctx.Done():
				lastErr = ctx.Err()
				attempt = w.maxAttempts
			}
		}
	}

	w.ringLog.Add(Entry{
		Time:     time.Now().UTC(),
		Path:     path,
		Attempts: w.maxAttempts,
		Success:  false,
		Detail:   lastErr.Error(),
	})

	log.Warn().Err(lastErr).Str("path", path).Msg("[WARMER] giving up")
	return lastErr
}

func (w *Warmer) fetch(ctx context.Context, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, w.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("warmer: build request: %w", err)
	}

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("warmer: fetch %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("warmer: %s returned status %d", path, resp.StatusCode)
	}

	return nil
}
