package parser

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"
	"golang.org/x/time/rate"
)

const (
	defaultUserAgent = "Mozilla/5.0 (compatible; SustainabilityScanner/1.0)"
	defaultTimeout   = 25 * time.Second
	defaultMaxTries  = 3
	maxBodyBytes     = 5 << 20
)

// FetcherOptions tunes politeness and retries.
type FetcherOptions struct {
	Timeout      time.Duration
	MaxRetries   int
	HostInterval time.Duration
	UserAgent    string
	// InitialBackoff is the first retry delay; later delays grow exponentially.
	InitialBackoff time.Duration
}

// Fetcher downloads pages with a per-host rate limit and exponential backoff
// on transient failures. It is safe for concurrent use.
type Fetcher struct {
	client    *http.Client
	limiter   *hostLimiter
	userAgent string
	maxTries  uint
	initial   time.Duration
}

// NewFetcher wires an HTTP client; nil uses a client with opts.Timeout.
func NewFetcher(client *http.Client, opts FetcherOptions) *Fetcher {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = defaultMaxTries
	}
	if opts.UserAgent == "" {
		opts.UserAgent = defaultUserAgent
	}
	if opts.InitialBackoff <= 0 {
		opts.InitialBackoff = 2 * time.Second
	}
	return &Fetcher{
		client:    client,
		limiter:   newHostLimiter(opts.HostInterval),
		userAgent: opts.UserAgent,
		maxTries:  uint(opts.MaxRetries),
		initial:   opts.InitialBackoff,
	}
}

// Get returns the response body of rawURL.
func (f *Fetcher) Get(ctx context.Context, rawURL string) ([]byte, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return nil, fmt.Errorf("invalid url %q", rawURL)
	}

	op := func() ([]byte, error) {
		if err := f.limiter.wait(ctx, parsed.Host); err != nil {
			return nil, backoff.Permanent(err)
		}
		return f.fetchOnce(ctx, rawURL)
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = f.initial
	bo.Multiplier = 2

	body, err := backoff.Retry(ctx, op, backoff.WithBackOff(bo), backoff.WithMaxTries(f.maxTries))
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", rawURL, err)
	}
	return body, nil
}

func (f *Fetcher) fetchOnce(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := f.client.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, backoff.Permanent(err)
		}
		return nil, fmt.Errorf("request document: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError:
		return nil, fmt.Errorf("upstream returned %s", resp.Status)
	default:
		return nil, backoff.Permanent(fmt.Errorf("upstream returned %s", resp.Status))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}

// hostLimiter keeps one token bucket per host.
type hostLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	interval time.Duration
}

func newHostLimiter(interval time.Duration) *hostLimiter {
	return &hostLimiter{limiters: make(map[string]*rate.Limiter), interval: interval}
}

func (h *hostLimiter) wait(ctx context.Context, host string) error {
	if h.interval <= 0 {
		return ctx.Err()
	}
	return h.forHost(host).Wait(ctx)
}

func (h *hostLimiter) forHost(host string) *rate.Limiter {
	h.mu.Lock()
	defer h.mu.Unlock()

	limiter, ok := h.limiters[host]
	if !ok {
		limiter = rate.NewLimiter(rate.Every(h.interval), 1)
		h.limiters[host] = limiter
	}
	return limiter
}
