package fmp

import (
	"net/http"

	"scraper-api/pkg/quote"
	"scraper-api/pkg/quote/ratelimit"
)

func init() {
	quote.RegisterProvider("fmp", buildProvider)
}

func buildProvider(_ string, cfg *quote.ProviderConfig) (quote.Provider, error) {
	opts := []Option{}
	if cfg.BaseURL != "" {
		opts = append(opts, WithBaseURL(cfg.BaseURL))
	}
	if cfg.APIKey != "" {
		opts = append(opts, WithAPIKey(cfg.APIKey))
	}
	if cfg.HTTPTimeout > 0 {
		opts = append(opts, WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout}))
	}
	if cfg.RateLimitDelay > 0 {
		opts = append(opts, WithLimiter(ratelimit.NewMinInterval(cfg.RateLimitDelay)))
	}
	return NewClient(opts...), nil
}
