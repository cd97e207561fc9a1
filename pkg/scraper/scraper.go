// Package scraper retrieves market quotes from an unreliable upstream:
// bounded exponential-backoff retries, per-attempt timeouts, a TTL cache to
// absorb repeat lookups, an event log for observability, and concurrent
// batch fan-out that tolerates per-symbol failure.
package scraper

import (
	"context"
	"regexp"
	"strings"
	"time"

	"scraper-api/pkg/quote"
)

// Canonical symbol rule: one to five uppercase letters after normalization.
var symbolPattern = regexp.MustCompile(`^[A-Z]{1,5}$`)

// ValidSymbol reports whether symbol is a well-formed ticker. Input is
// uppercased before matching, so "aapl" is acceptable; digits and symbols
// are not.
func ValidSymbol(symbol string) bool {
	return symbolPattern.MatchString(strings.ToUpper(symbol))
}

// Scraper is the fetch engine. It owns the quote cache and reads every
// tunable from the settings store at call time, so live settings updates
// affect in-flight callers that have not yet taken their snapshot.
type Scraper struct {
	provider quote.Provider
	settings *Store
	events   *Recorder
	cache    *Cache[quote.Quote]
}

// New builds a Scraper around the given provider. The settings store and
// recorder are shared handles; pass the same instances to every component
// that needs them.
func New(provider quote.Provider, settings *Store, events *Recorder) *Scraper {
	if settings == nil {
		settings = NewStore(DefaultSettings())
	}
	if events == nil {
		events = NewRecorder()
	}
	return &Scraper{
		provider: provider,
		settings: settings,
		events:   events,
		cache:    NewCache[quote.Quote](settings.Get().CacheTTL),
	}
}

// Settings exposes the live settings store.
func (s *Scraper) Settings() *Store { return s.settings }

// Events exposes the event recorder.
func (s *Scraper) Events() *Recorder { return s.events }

// CacheStats returns a diagnostic snapshot of the quote cache.
func (s *Scraper) CacheStats() CacheStats { return s.cache.Stats() }

// CacheCleanup evicts expired quotes and returns the number removed.
func (s *Scraper) CacheCleanup() int { return s.cache.Cleanup() }

const sourceStock = "stock-scraper"

// Quote fetches the latest quote for symbol. The symbol is validated and
// uppercased, the cache is consulted, and on a miss the upstream call runs
// as retry(timeout(provider)) with the policy from the current settings
// snapshot.
//
// Concurrent misses on the same symbol are not coalesced: each caller
// triggers its own upstream call and the last write wins in the cache.
func (s *Scraper) Quote(ctx context.Context, symbol string) (*quote.Quote, error) {
	sym := strings.ToUpper(strings.TrimSpace(symbol))
	if !ValidSymbol(sym) {
		err := &InvalidSymbolError{Symbol: symbol}
		s.events.Error(sourceStock, err, map[string]any{"symbol": symbol})
		return nil, err
	}

	st := s.settings.Get()
	md := map[string]any{"symbol": sym}
	started := time.Now()
	s.events.Start(sourceStock, md)

	if st.CacheEnabled {
		if cached, ok := s.cache.Get(sym); ok {
			s.events.CacheHit(sourceStock, md)
			cp := cached
			return &cp, nil
		}
		s.events.CacheMiss(sourceStock, md)
	}

	policy := Policy{
		MaxRetries: st.MaxRetries,
		BaseDelay:  st.RetryBaseDelay,
		MaxDelay:   st.RetryMaxDelay,
		OnRetry: func(attempt int, err error) {
			s.events.Retry(sourceStock, attempt, err, md)
		},
	}

	q, err := WithRetry(ctx, func(ctx context.Context) (*quote.Quote, error) {
		return WithTimeout(ctx, func(ctx context.Context) (*quote.Quote, error) {
			return s.provider.Quote(ctx, sym)
		}, st.RequestTimeout)
	}, policy)
	if err != nil {
		s.events.Error(sourceStock, err, md)
		return nil, err
	}

	if st.CacheEnabled {
		s.cache.SetTTL(sym, *q, st.CacheTTL)
	}
	s.events.Success(sourceStock, time.Since(started), md)
	return q, nil
}
