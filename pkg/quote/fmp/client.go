// Package fmp implements a quote provider backed by the public
// financialmodelingprep.com quote endpoint.
package fmp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"scraper-api/pkg/quote"
	"scraper-api/pkg/quote/ratelimit"
)

const (
	defaultBaseURL     = "https://financialmodelingprep.com/api/v3"
	defaultHTTPTimeout = 10 * time.Second

	// Identifying headers so upstream can attribute (and not block) traffic.
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (compatible; QuantevoBot/1.0)"
	referer   = "https://quantevo.io/"

	sourceName = "financialmodelingprep"
)

// Client fetches quotes from the FMP REST API. It performs exactly one HTTP
// call per Quote invocation; retry and deadline policy belong to the caller.
// The embedded http.Client timeout is a hard floor independent of any
// deadline layered above it.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *ratelimit.MinInterval
}

// Option configures a new Client.
type Option func(*Client)

// WithHTTPClient injects a custom http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithBaseURL overrides the default API base URL.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = strings.TrimRight(u, "/")
		}
	}
}

// WithAPIKey sets the apikey query parameter on every request.
func WithAPIKey(key string) Option {
	return func(c *Client) {
		c.apiKey = key
	}
}

// WithLimiter spaces out consecutive upstream calls.
func WithLimiter(l *ratelimit.MinInterval) Option {
	return func(c *Client) {
		c.limiter = l
	}
}

// NewClient constructs an FMP API client.
func NewClient(opts ...Option) *Client {
	client := &Client{
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return client
}

// Name identifies the upstream source.
func (c *Client) Name() string { return sourceName }

// quotePayload mirrors the fields of interest in the FMP quote response.
type quotePayload struct {
	Symbol            string   `json:"symbol"`
	Price             *float64 `json:"price"`
	Change            float64  `json:"change"`
	ChangesPercentage float64  `json:"changesPercentage"`
}

// Quote fetches the latest quote for symbol. The symbol is expected to be
// validated and uppercased by the caller.
func (c *Client) Quote(ctx context.Context, symbol string) (*quote.Quote, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/quote/%s", c.baseURL, url.PathEscape(symbol))
	if c.apiKey != "" {
		endpoint += "?apikey=" + url.QueryEscape(c.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("fmp: build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Referer", referer)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("fmp: request %s: %w", symbol, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("fmp: read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{Symbol: symbol, Code: resp.StatusCode}
	}

	var payload []quotePayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, &PayloadError{Symbol: symbol, Reason: "malformed response body"}
	}
	if len(payload) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoData, symbol)
	}

	return normalize(symbol, payload[0])
}

// normalize validates the upstream payload and produces a fresh Quote with
// all monetary fields rounded to two decimal places.
func normalize(symbol string, p quotePayload) (*quote.Quote, error) {
	if p.Price == nil {
		return nil, &PayloadError{Symbol: symbol, Reason: "missing price"}
	}
	price := *p.Price
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return nil, &PayloadError{Symbol: symbol, Reason: "price is not a finite number"}
	}
	if price <= 0 {
		return nil, &PayloadError{Symbol: symbol, Reason: "price is not positive"}
	}
	if math.IsNaN(p.Change) || math.IsInf(p.Change, 0) {
		return nil, &PayloadError{Symbol: symbol, Reason: "change is not a finite number"}
	}

	return &quote.Quote{
		Symbol:        symbol,
		Price:         round2(price),
		Change:        round2(p.Change),
		ChangePercent: round2(p.ChangesPercentage),
		Timestamp:     time.Now(),
		Source:        sourceName,
	}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
