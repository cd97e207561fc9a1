// Package ratelimit spaces out calls to an upstream quote source so a burst
// of fetches does not trip the provider's rate limits.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// MinInterval enforces a minimum delay between consecutive acquisitions.
// A zero interval disables the gate entirely.
type MinInterval struct {
	interval time.Duration

	mu   sync.Mutex
	last time.Time
}

// NewMinInterval returns a limiter that admits one call per interval.
func NewMinInterval(interval time.Duration) *MinInterval {
	return &MinInterval{interval: interval}
}

// Wait blocks until at least the configured interval has elapsed since the
// previous admitted call, or until ctx is canceled.
func (m *MinInterval) Wait(ctx context.Context) error {
	if m == nil || m.interval <= 0 {
		return nil
	}

	m.mu.Lock()
	now := time.Now()
	next := m.last.Add(m.interval)
	if next.Before(now) {
		next = now
	}
	m.last = next
	m.mu.Unlock()

	wait := time.Until(next)
	if wait <= 0 {
		return nil
	}

	t := time.NewTimer(wait)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
