// Package hostclient implements the Source Fetcher (spec.md §4.1): a
// client for a GitHub-style repository host API, grounded on the
// teacher's internal/fetch/fetch.go retry/timeout/concurrency-gate
// shape, generalized from an HTML-fetching GET into a JSON REST client
// and switched from a channel-based limiter to
// golang.org/x/sync/semaphore.Weighted per the pack's concurrency idiom.
package hostclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"time"

	"golang.org/x/sync/semaphore"
)

// Client wraps http.Client with bounded concurrency and retry-with-backoff
// for transient failures, matching spec.md §5's
// "base 500ms, factor 2, jitter ±20%" retry policy.
type Client struct {
	HTTPClient *http.Client
	BaseURL    string // e.g. "https://api.github.com"
	Token      string
	UserAgent  string

	// MaxAttempts includes the initial attempt. Minimum 1.
	MaxAttempts int
	// PerRequestTimeout bounds each individual HTTP round trip.
	PerRequestTimeout time.Duration
	// BaseBackoff and BackoffFactor parameterize the retry delay schedule.
	BaseBackoff   time.Duration
	BackoffFactor float64

	sem     *semaphore.Weighted
	semOnce bool
	maxConc int64
}

// New builds a Client with the spec's default retry schedule and a
// concurrency gate sized to maxConcurrent (spec.md §4.1 default 10).
func New(baseURL, token string, maxConcurrent int64) *Client {
	if maxConcurrent <= 0 {
		maxConcurrent = 10
	}
	return &Client{
		HTTPClient:        &http.Client{Timeout: 30 * time.Second},
		BaseURL:           baseURL,
		Token:             token,
		UserAgent:         "repointel-pipeline/1.0",
		MaxAttempts:       4,
		PerRequestTimeout: 15 * time.Second,
		BaseBackoff:       500 * time.Millisecond,
		BackoffFactor:     2.0,
		sem:               semaphore.NewWeighted(maxConcurrent),
		maxConc:           maxConcurrent,
	}
}

// ErrNotFound is returned when the host API responds 404.
var ErrNotFound = errors.New("hostclient: resource not found")

// getJSON issues a GET against path (relative to BaseURL) and decodes the
// JSON response body into out, retrying transient errors per the
// base/factor/jitter schedule.
func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	body, err := c.getBody(ctx, path)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response from %s: %w", path, err)
	}
	return nil
}

func (c *Client) getBody(ctx context.Context, path string) ([]byte, error) {
	attempts := c.MaxAttempts
	if attempts <= 0 {
		attempts = 1
	}
	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		body, status, err := c.tryOnce(ctx, path)
		if err == nil {
			return body, nil
		}
		if status == http.StatusNotFound {
			return nil, ErrNotFound
		}
		if !isTransient(err, status) || attempt == attempts-1 {
			return nil, err
		}
		lastErr = err
		if err := sleepBackoff(ctx, c.BaseBackoff, c.BackoffFactor, attempt); err != nil {
			return nil, err
		}
	}
	if lastErr == nil {
		lastErr = errors.New("hostclient: exhausted retries")
	}
	return nil, lastErr
}

func (c *Client) tryOnce(ctx context.Context, path string) ([]byte, int, error) {
	if err := c.sem.Acquire(ctx, 1); err != nil {
		return nil, 0, err
	}
	defer c.sem.Release(1)

	reqCtx := ctx
	if c.PerRequestTimeout > 0 {
		var cancel context.CancelFunc
		reqCtx, cancel = context.WithTimeout(ctx, c.PerRequestTimeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, resp.StatusCode, ErrNotFound
	}
	if resp.StatusCode >= 500 {
		return nil, resp.StatusCode, fmt.Errorf("host API server error: %d", resp.StatusCode)
	}
	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, resp.StatusCode, fmt.Errorf("host API rate limited: %d", resp.StatusCode)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, resp.StatusCode, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, bytes.TrimSpace(b))
	}
	return b, resp.StatusCode, nil
}

func isTransient(err error, status int) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	return status >= 500 || status == http.StatusTooManyRequests
}

// sleepBackoff waits base*factor^attempt, jittered by ±20%, or returns
// ctx.Err() if the context is cancelled first.
func sleepBackoff(ctx context.Context, base time.Duration, factor float64, attempt int) error {
	delay := float64(base)
	for i := 0; i < attempt; i++ {
		delay *= factor
	}
	jitter := delay * (0.8 + 0.4*rand.Float64())
	timer := time.NewTimer(time.Duration(jitter))
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
