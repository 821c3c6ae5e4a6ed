package amfi

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultTimeout = 20 * time.Second
	defaultRetries = 3
	retryDelay     = 2 * time.Second
)

// Client fetches the NAV feed with a bounded timeout and retry count.
// A fetch failure is soft: the caller is expected to skip the update and
// keep serving the previously persisted state.
type Client struct {
	hc      *http.Client
	limiter *rate.Limiter
	url     string
	retries int
}

// Option configures a Client.
type Option func(*Client)

// WithURL overrides the feed URL, mostly for tests.
func WithURL(url string) Option { return func(c *Client) { c.url = url } }

// WithRetries overrides the retry budget.
func WithRetries(n int) Option { return func(c *Client) { c.retries = n } }

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.hc.Timeout = d }
}

// NewClient returns a feed client. Requests are paced at one per retryDelay
// so a retry loop never hammers the AMFI servers.
func NewClient(opts ...Option) *Client {
	c := &Client{
		hc:      &http.Client{Timeout: defaultTimeout},
		limiter: rate.NewLimiter(rate.Every(retryDelay), 1),
		url:     FeedURL,
		retries: defaultRetries,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch downloads the full feed text, retrying transient failures up to the
// retry budget. A non-200 status counts as a failure.
func (c *Client) Fetch(ctx context.Context) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= c.retries; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", err
		}
		text, err := c.fetchOnce(ctx)
		if err == nil {
			return text, nil
		}
		lastErr = err
		log.Printf("amfi: fetch attempt %d/%d failed: %v", attempt, c.retries, err)
	}
	return "", fmt.Errorf("amfi: feed unavailable after %d attempts: %w", c.retries, lastErr)
}

func (c *Client) fetchOnce(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return "", err
	}
	resp, err := c.hc.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("cannot http GET %v: %v", req.URL.Host, resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(body), nil
}
