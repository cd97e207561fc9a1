package scraper

import (
	"sync"
	"sync/atomic"
	"time"
)

// APIKeys carries optional upstream credentials.
type APIKeys struct {
	Finnhub      string
	AlphaVantage string
	PolygonIO    string
}

// Settings are the live tunables shared by every scraping layer. Values are
// not validated; setting MaxRetries to zero or a negative timeout is
// undefined behavior, not a rejected write.
type Settings struct {
	RateLimitDelay        time.Duration
	MaxConcurrentRequests int
	RequestTimeout        time.Duration
	MaxRetries            int
	RetryBaseDelay        time.Duration
	RetryMaxDelay         time.Duration
	CacheEnabled          bool
	CacheTTL              time.Duration
	LoggingEnabled        bool
	DebugMode             bool
	APIKeys               APIKeys
}

// DefaultSettings returns the compiled-in defaults.
func DefaultSettings() Settings {
	return Settings{
		RateLimitDelay:        500 * time.Millisecond,
		MaxConcurrentRequests: 5,
		RequestTimeout:        10 * time.Second,
		MaxRetries:            3,
		RetryBaseDelay:        time.Second,
		RetryMaxDelay:         30 * time.Second,
		CacheEnabled:          true,
		CacheTTL:              5 * time.Minute,
		LoggingEnabled:        true,
	}
}

// Patch is a partial settings update; only non-nil fields are merged.
type Patch struct {
	RateLimitDelay        *time.Duration
	MaxConcurrentRequests *int
	RequestTimeout        *time.Duration
	MaxRetries            *int
	RetryBaseDelay        *time.Duration
	RetryMaxDelay         *time.Duration
	CacheEnabled          *bool
	CacheTTL              *time.Duration
	LoggingEnabled        *bool
	DebugMode             *bool
	APIKeys               *APIKeys
}

// Store holds the current settings snapshot. Reads never block; writers
// serialize through a mutex and publish via an atomic pointer swap, so
// in-flight readers observe either the old or the new snapshot, never a
// torn one. The store is passed by handle into each component rather than
// living as package state.
type Store struct {
	mu       sync.Mutex
	current  atomic.Pointer[Settings]
	defaults Settings
}

// NewStore creates a settings store seeded with the given defaults.
func NewStore(defaults Settings) *Store {
	s := &Store{defaults: defaults}
	snap := defaults
	s.current.Store(&snap)
	return s
}

// Get returns the current settings snapshot by value.
func (s *Store) Get() Settings {
	return *s.current.Load()
}

// Update merges the set fields of the patch into a new snapshot. Later reads
// see the merge; snapshots already taken are unaffected.
func (s *Store) Update(p Patch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := *s.current.Load()
	if p.RateLimitDelay != nil {
		next.RateLimitDelay = *p.RateLimitDelay
	}
	if p.MaxConcurrentRequests != nil {
		next.MaxConcurrentRequests = *p.MaxConcurrentRequests
	}
	if p.RequestTimeout != nil {
		next.RequestTimeout = *p.RequestTimeout
	}
	if p.MaxRetries != nil {
		next.MaxRetries = *p.MaxRetries
	}
	if p.RetryBaseDelay != nil {
		next.RetryBaseDelay = *p.RetryBaseDelay
	}
	if p.RetryMaxDelay != nil {
		next.RetryMaxDelay = *p.RetryMaxDelay
	}
	if p.CacheEnabled != nil {
		next.CacheEnabled = *p.CacheEnabled
	}
	if p.CacheTTL != nil {
		next.CacheTTL = *p.CacheTTL
	}
	if p.LoggingEnabled != nil {
		next.LoggingEnabled = *p.LoggingEnabled
	}
	if p.DebugMode != nil {
		next.DebugMode = *p.DebugMode
	}
	if p.APIKeys != nil {
		next.APIKeys = *p.APIKeys
	}
	s.current.Store(&next)
}

// Reset restores the defaults the store was created with.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := s.defaults
	s.current.Store(&snap)
}
