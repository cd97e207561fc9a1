package svc

import (
	"fmt"
	"log"

	"scraper-api/internal/config"
	"scraper-api/pkg/quote"
	"scraper-api/pkg/quote/fmp"
	"scraper-api/pkg/quote/ratelimit"
	"scraper-api/pkg/scraper"
)

type ServiceContext struct {
	Config   config.Config
	Settings *scraper.Store
	Events   *scraper.Recorder
	Provider quote.Provider
	Scraper  *scraper.Scraper
}

func NewServiceContext(c *config.Config) *ServiceContext {
	settings := scraper.NewStore(c.Settings())
	events := scraper.NewRecorder(
		scraper.WithCapacity(c.Scraper.MaxEventHistory),
		scraper.WithConsole(c.Scraper.LoggingEnabled),
	)

	provider, err := buildProvider(c)
	if err != nil {
		log.Fatalf("failed to build quote provider: %v", err)
	}

	return &ServiceContext{
		Config:   *c,
		Settings: settings,
		Events:   events,
		Provider: provider,
		Scraper:  scraper.New(provider, settings, events),
	}
}

// buildProvider resolves the configured quote provider, falling back to a
// default FMP client when no provider file is given.
func buildProvider(c *config.Config) (quote.Provider, error) {
	if c.Provider.Value == nil {
		limiter := ratelimit.NewMinInterval(c.Settings().RateLimitDelay)
		return fmp.NewClient(fmp.WithLimiter(limiter)), nil
	}

	providers, err := c.Provider.Value.BuildProviders()
	if err != nil {
		return nil, err
	}
	if c.Provider.Value.Default != "" {
		return providers[c.Provider.Value.Default], nil
	}
	if len(providers) == 1 {
		for _, p := range providers {
			return p, nil
		}
	}
	return nil, fmt.Errorf("provider config %s declares multiple providers but no default", c.Provider.File)
}
