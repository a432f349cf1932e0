// ABOUTME: HTTP client bound to one Pleroma instance: fixed headers, retries and SSE streams
// ABOUTME: Rate limits and server errors are retried with capped doubling delays or the server's Retry-After

package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/mauromedda/pleroterm/internal/http/sse"
	"github.com/mauromedda/pleroterm/internal/log"
)

// DefaultTimeout bounds one API request, retries excluded.
const DefaultTimeout = 30 * time.Second

// retryPolicy decides how often and how long to wait between attempts.
type retryPolicy struct {
	attempts int           // total, first try included
	base     time.Duration // delay after the first failure
	ceiling  time.Duration // no delay is longer, Retry-After included
}

var defaultRetry = retryPolicy{attempts: 4, base: 250 * time.Millisecond, ceiling: 5 * time.Second}

// delay returns the wait after failed attempt n (0-based). A positive
// server hint replaces the doubling schedule.
func (p retryPolicy) delay(n int, hint time.Duration) time.Duration {
	d := hint
	if d <= 0 {
		d = p.base << min(n, 16)
	}
	return min(d, p.ceiling)
}

// Client sends requests to one instance with a fixed header set.
type Client struct {
	api     *http.Client
	stream  *http.Client
	baseURL string
	headers http.Header
	retry   retryPolicy
	wait    func(ctx context.Context, d time.Duration) error
}

// NewClient creates a client for baseURL. Trailing slashes are removed.
func NewClient(baseURL string, headers map[string]string) *Client {
	h := make(http.Header, len(headers))
	for k, v := range headers {
		h.Set(k, v)
	}
	return &Client{
		api:     SecureHTTPClient(DefaultTimeout),
		stream:  SecureHTTPClient(0),
		baseURL: strings.TrimRight(baseURL, "/"),
		headers: h,
		retry:   defaultRetry,
		wait:    sleep,
	}
}

// BaseURL returns the instance URL without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do sends one API request. Responses with status 429 or 5xx are retried
// until the policy runs out, after which the last response is returned
// as is. A body that implements io.Seeker is rewound for every retry;
// any other body is sent once.
func (c *Client) Do(ctx context.Context, method, path string, body io.Reader) (*http.Response, error) {
	seeker, _ := body.(io.Seeker)
	attempts := c.retry.attempts
	if body != nil && seeker == nil {
		attempts = 1
	}

	for n := 0; ; n++ {
		if n > 0 && seeker != nil {
			if _, err := seeker.Seek(0, io.SeekStart); err != nil {
				return nil, fmt.Errorf("rewinding request body: %w", err)
			}
		}

		req, err := c.newRequest(ctx, method, path, body)
		if err != nil {
			return nil, err
		}
		resp, err := c.api.Do(req)
		if err != nil {
			return nil, fmt.Errorf("%s %s: %w", method, path, err)
		}
		log.Debug("http: %s %s -> %d (attempt %d)", method, path, resp.StatusCode, n+1)

		if !retryable(resp.StatusCode) || n+1 >= attempts {
			return resp, nil
		}

		d := c.retry.delay(n, retryAfter(resp.Header, time.Now()))
		_, _ = io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		if err := c.wait(ctx, d); err != nil {
			return nil, fmt.Errorf("retrying %s %s: %w", method, path, err)
		}
	}
}

// Stream opens a long-lived GET on path and returns an SSE reader over
// its body together with the response, whose body the caller closes.
// Streams are never retried here; the caller reconnects.
func (c *Client) Stream(ctx context.Context, path string) (*sse.Reader, *http.Response, error) {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Accept", "text/event-stream")

	resp, err := c.stream.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("opening stream %s: %w", path, err)
	}
	log.Debug("http: stream %s -> %d", path, resp.StatusCode)
	return sse.NewReader(resp.Body), resp, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("creating request for %s %s: %w", method, path, err)
	}
	req.Header = c.headers.Clone()
	return req, nil
}

func retryable(status int) bool {
	return status == http.StatusTooManyRequests || status >= http.StatusInternalServerError
}

// retryAfter parses a Retry-After header given either in seconds or as
// an HTTP date. Missing or malformed values yield 0.
func retryAfter(h http.Header, now time.Time) time.Duration {
	v := strings.TrimSpace(h.Get("Retry-After"))
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(max(secs, 0)) * time.Second
	}
	if at, err := http.ParseTime(v); err == nil {
		return max(at.Sub(now), 0)
	}
	return 0
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
