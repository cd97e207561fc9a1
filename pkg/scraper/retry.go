package scraper

import (
	"context"
	"math"
	"math/rand"
	"time"
)

const (
	defaultMaxRetries = 3
	defaultBaseDelay  = time.Second
	defaultMaxDelay   = 30 * time.Second
	defaultMultiplier = 2.0

	// Up to 10% uniform jitter keeps synchronized callers from retrying in
	// lockstep against a struggling upstream.
	jitterFraction = 0.1
)

// Policy configures WithRetry. It is immutable per call and keeps no state
// between calls.
type Policy struct {
	MaxRetries int
	BaseDelay  time.Duration
	MaxDelay   time.Duration
	Multiplier float64
	// OnRetry is invoked before each backoff sleep with the 1-based attempt
	// number that just failed and its error.
	OnRetry func(attempt int, err error)
}

func (p Policy) withDefaults() Policy {
	if p.MaxRetries <= 0 {
		p.MaxRetries = defaultMaxRetries
	}
	if p.BaseDelay <= 0 {
		p.BaseDelay = defaultBaseDelay
	}
	if p.MaxDelay <= 0 {
		p.MaxDelay = defaultMaxDelay
	}
	if p.Multiplier < 1 {
		p.Multiplier = defaultMultiplier
	}
	return p
}

// backoffDelay computes the sleep before attempt+1: exponential growth capped
// at MaxDelay, plus jitter.
func (p Policy) backoffDelay(attempt int) time.Duration {
	delay := math.Min(
		float64(p.BaseDelay)*math.Pow(p.Multiplier, float64(attempt)),
		float64(p.MaxDelay),
	)
	jitter := rand.Float64() * jitterFraction * delay
	return time.Duration(delay + jitter)
}

// WithRetry executes fn up to MaxRetries times with exponential backoff
// between attempts. Success on any attempt returns immediately; once the
// final attempt fails the last error is wrapped in an ExhaustedError.
//
// Every error is treated as retryable. There is no retryable/fatal
// classification, so callers must keep permanently-failing inputs (bad
// symbols, bad requests) out of the retry path themselves.
func WithRetry[T any](ctx context.Context, fn func(context.Context) (T, error), policy Policy) (T, error) {
	p := policy.withDefaults()

	var zero T
	var lastErr error

	for attempt := 0; attempt < p.MaxRetries; attempt++ {
		result, err := fn(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if attempt == p.MaxRetries-1 {
			break
		}

		if p.OnRetry != nil {
			p.OnRetry(attempt+1, err)
		}

		timer := time.NewTimer(p.backoffDelay(attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, ctx.Err()
		case <-timer.C:
		}
	}

	return zero, &ExhaustedError{Attempts: p.MaxRetries, Last: lastErr}
}
