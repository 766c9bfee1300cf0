package request

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"countryname/pkg/tracker"
	"countryname/pkg/version"
)

var (
	defaultUserAgent = fmt.Sprintf("countryname/%s (https://github.com/countryname/countryname)", version.Version)
)

// StatusError is returned for non-retryable HTTP error responses.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("api error: status %d", e.Code)
	}
	return fmt.Sprintf("api error: status %d: %s", e.Code, e.Body)
}

// Options configures a Client. Zero values fall back to defaults.
type Options struct {
	Timeout   time.Duration
	Retries   int
	UserAgent string
	BaseDelay time.Duration
	MaxDelay  time.Duration
}

// Client performs synchronous HTTP requests with retry and per-provider tracking.
type Client struct {
	httpClient *http.Client
	tracker    *tracker.Tracker
	backoff    *Backoff
	retries    int
	userAgent  string
}

// New creates a new Client.
func New(t *tracker.Tracker, opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.UserAgent == "" {
		opts.UserAgent = defaultUserAgent
	}
	if opts.BaseDelay <= 0 {
		opts.BaseDelay = 500 * time.Millisecond
	}
	if opts.MaxDelay <= 0 {
		opts.MaxDelay = 10 * time.Second
	}
	if opts.Retries < 0 {
		opts.Retries = 0
	}
	if t == nil {
		t = tracker.New()
	}
	return &Client{
		httpClient: &http.Client{Timeout: opts.Timeout},
		tracker:    t,
		backoff:    NewBackoff(opts.BaseDelay, opts.MaxDelay),
		retries:    opts.Retries,
		userAgent:  opts.UserAgent,
	}
}

// Tracker returns the tracker requests are counted against.
func (c *Client) Tracker() *tracker.Tracker {
	return c.tracker
}

// GetWithHeaders performs a GET request with custom headers.
func (c *Client) GetWithHeaders(ctx context.Context, u string, headers map[string]string) ([]byte, error) {
	parsedURL, err := url.Parse(u)
	if err != nil {
		return nil, fmt.Errorf("invalid url: %w", err)
	}
	provider := NormalizeProvider(parsedURL.Host)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	// Apply User-Agent (Default if not provided)
	uaMatch := false
	for k, v := range headers {
		req.Header.Set(k, v)
		if http.CanonicalHeaderKey(k) == "User-Agent" {
			uaMatch = true
		}
	}
	if !uaMatch {
		req.Header.Set("User-Agent", c.userAgent)
	}

	body, err := c.executeWithBackoff(req)
	if err != nil {
		c.tracker.TrackAPIFailure(provider)
		return nil, err
	}
	return body, nil
}

// NormalizeProvider groups hosts of one service under a single provider name.
func NormalizeProvider(host string) string {
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	if strings.HasSuffix(host, ".wikidata.org") || host == "wikidata.org" {
		return "wikidata"
	}
	if strings.HasSuffix(host, ".wikipedia.org") || host == "wikipedia.org" {
		return "wikipedia"
	}
	return host
}

// executeWithBackoff attempts the request with exponential backoff on retryable errors.
func (c *Client) executeWithBackoff(req *http.Request) ([]byte, error) {
	maxAttempts := c.retries + 1
	var lastErr error

	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			if err := c.backoff.Sleep(req.Context(), attempt); err != nil {
				return nil, err
			}
		}

		// Verify context is still alive before dialing
		if req.Context().Err() != nil {
			return nil, req.Context().Err()
		}

		slog.Debug("Network Request", "host", req.URL.Host, "path", req.URL.Path, "attempt", attempt+1)
		resp, err := c.httpClient.Do(req)
		if err != nil {
			if req.Context().Err() != nil {
				return nil, req.Context().Err()
			}
			slog.Warn("Request failed", "host", req.URL.Host, "attempt", attempt+1, "error", err)
			lastErr = err
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests || (resp.StatusCode >= 500 && resp.StatusCode < 600) {
			resp.Body.Close()
			slog.Warn("API Backoff", "status", resp.StatusCode, "host", req.URL.Host, "attempt", attempt+1)
			lastErr = &StatusError{Code: resp.StatusCode}
			continue
		}

		if resp.StatusCode >= 400 {
			// Keep a short excerpt; SPARQL endpoints explain syntax errors in the body
			excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			resp.Body.Close()
			return nil, &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(excerpt))}
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("read error: %w", err)
		}
		return body, nil
	}

	if maxAttempts > 1 {
		return nil, fmt.Errorf("max retries exceeded: %w", lastErr)
	}
	return nil, lastErr
}
