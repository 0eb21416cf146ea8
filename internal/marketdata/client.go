package marketdata

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/sahiljoster32/stock-monitor-backend/config"
	"github.com/sahiljoster32/stock-monitor-backend/internal/logger"
)

// ErrTransport marks a fetch that produced no usable body: connection failure,
// non-2xx status or a truncated read.
var ErrTransport = errors.New("market-data transport failure")

// FetchResult is the outcome of one symbol's request. Exactly one of Body or Err is set.
type FetchResult struct {
	Symbol string
	Body   []byte
	Err    error
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client built from config (tests use httptest servers).
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.http = h
	}
}

// Client calls the Alpha Vantage intraday time-series endpoint.
//
// Every call goes to the network; nothing is cached.
type Client struct {
	baseURL        string
	apiKey         string
	function       string
	maxConcurrency int
	http           *http.Client
}

// NewClient builds a Client. The outbound transport is created once here, with
// certificate verification disabled when cfg.InsecureSkipVerify is set.
func NewClient(cfg config.AlphaVantageConfig, opts ...Option) *Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.TLSClientConfig = &tls.Config{
		InsecureSkipVerify: cfg.InsecureSkipVerify, //nolint:gosec
	}

	c := &Client{
		baseURL:        cfg.BaseURL,
		apiKey:         cfg.APIKey,
		function:       cfg.Function,
		maxConcurrency: cfg.MaxConcurrency,
		http:           &http.Client{Transport: transport, Timeout: cfg.Timeout},
	}
	if c.function == "" {
		c.function = "TIME_SERIES_INTRADAY"
	}

	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchIntraday requests every symbol concurrently and waits for all of them.
//
// result[i] always corresponds to symbols[i]. A failed request is captured in its
// own slot and never cancels the others; deciding what a failure means for the
// batch is left to the caller.
func (c *Client) FetchIntraday(ctx context.Context, symbols []string, interval string) []FetchResult {
	results := make([]FetchResult, len(symbols))

	var g errgroup.Group
	if c.maxConcurrency > 0 {
		g.SetLimit(c.maxConcurrency)
	}

	start := time.Now()
	for i, symbol := range symbols {
		g.Go(func() error {
			body, err := c.fetchOne(ctx, symbol, interval)
			results[i] = FetchResult{Symbol: symbol, Body: body, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	logger.FromContext(ctx).Debug().
		Int("symbols", len(symbols)).
		Str("interval", interval).
		Dur("elapsed", time.Since(start)).
		Msg("market-data batch fetched")

	return results
}

func (c *Client) fetchOne(ctx context.Context, symbol, interval string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(symbol, interval), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request for %s: %v", ErrTransport, symbol, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrTransport, symbol, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: %s: unexpected status %d", ErrTransport, symbol, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: read body: %v", ErrTransport, symbol, err)
	}
	return body, nil
}

func (c *Client) endpoint(symbol, interval string) string {
	q := url.Values{}
	q.Set("function", c.function)
	q.Set("symbol", symbol)
	q.Set("interval", interval)
	q.Set("apikey", c.apiKey)
	return c.baseURL + "?" + q.Encode()
}
