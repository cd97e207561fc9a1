package config

import (
	"time"

	"github.com/zeromicro/go-zero/core/conf"
	"github.com/zeromicro/go-zero/rest"

	"scraper-api/pkg/confkit"
	"scraper-api/pkg/quote"
	"scraper-api/pkg/scraper"
)

// ScraperConf exposes the scrape engine tunables in the main yaml. The
// defaults mirror scraper.DefaultSettings.
type ScraperConf struct {
	RateLimitDelayMs      int  `json:",default=500"`
	MaxConcurrentRequests int  `json:",default=5"`
	RequestTimeoutMs      int  `json:",default=10000"`
	MaxRetries            int  `json:",default=3"`
	RetryBaseDelayMs      int  `json:",default=1000"`
	RetryMaxDelayMs       int  `json:",default=30000"`
	CacheEnabled          bool `json:",default=true"`
	CacheTTLSeconds       int  `json:",default=300"`
	LoggingEnabled        bool `json:",default=true"`
	DebugMode             bool `json:",optional"`
	MaxEventHistory       int  `json:",default=10000"`
}

type Config struct {
	rest.RestConf
	// Env indicates the running environment: dev | prod. Error detail in
	// HTTP responses is suppressed outside dev.
	Env     string      `json:",default=dev"`
	Scraper ScraperConf `json:",optional"`

	// Provider points at the quote provider yaml (etc/provider.yaml).
	Provider confkit.Section[quote.Config] `json:",optional"`
}

// IsProdEnv reports whether detail-suppressing production mode is active.
func (c *Config) IsProdEnv() bool {
	return c.Env == "prod"
}

// Default returns a configuration equivalent to loading an empty file: the
// compiled-in scraper defaults and the default FMP provider.
func Default() *Config {
	return &Config{
		Env: "dev",
		Scraper: ScraperConf{
			RateLimitDelayMs:      500,
			MaxConcurrentRequests: 5,
			RequestTimeoutMs:      10000,
			MaxRetries:            3,
			RetryBaseDelayMs:      1000,
			RetryMaxDelayMs:       30000,
			CacheEnabled:          true,
			CacheTTLSeconds:       300,
			LoggingEnabled:        true,
			MaxEventHistory:       10000,
		},
	}
}

// Settings maps the file configuration onto the live settings defaults.
// Non-positive numeric values keep the compiled-in defaults.
func (c *Config) Settings() scraper.Settings {
	s := scraper.DefaultSettings()
	if c.Scraper.RateLimitDelayMs > 0 {
		s.RateLimitDelay = time.Duration(c.Scraper.RateLimitDelayMs) * time.Millisecond
	}
	if c.Scraper.MaxConcurrentRequests > 0 {
		s.MaxConcurrentRequests = c.Scraper.MaxConcurrentRequests
	}
	if c.Scraper.RequestTimeoutMs > 0 {
		s.RequestTimeout = time.Duration(c.Scraper.RequestTimeoutMs) * time.Millisecond
	}
	if c.Scraper.MaxRetries > 0 {
		s.MaxRetries = c.Scraper.MaxRetries
	}
	if c.Scraper.RetryBaseDelayMs > 0 {
		s.RetryBaseDelay = time.Duration(c.Scraper.RetryBaseDelayMs) * time.Millisecond
	}
	if c.Scraper.RetryMaxDelayMs > 0 {
		s.RetryMaxDelay = time.Duration(c.Scraper.RetryMaxDelayMs) * time.Millisecond
	}
	if c.Scraper.CacheTTLSeconds > 0 {
		s.CacheTTL = time.Duration(c.Scraper.CacheTTLSeconds) * time.Second
	}
	s.CacheEnabled = c.Scraper.CacheEnabled
	s.LoggingEnabled = c.Scraper.LoggingEnabled
	s.DebugMode = c.Scraper.DebugMode || !c.IsProdEnv()
	return s
}

// Load reads the main configuration and hydrates the provider section.
func Load(path string) (*Config, error) {
	confkit.LoadDotenvOnce()

	var cfg Config
	if err := conf.Load(path, &cfg, conf.UseEnv()); err != nil {
		return nil, err
	}
	if err := cfg.Provider.Hydrate(confkit.BaseDir(path), quote.LoadConfig); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// MustLoad reads the main configuration and panics on error.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}
	return cfg
}
