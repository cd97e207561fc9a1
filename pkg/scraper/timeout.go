package scraper

import (
	"context"
	"time"
)

type outcome[T any] struct {
	result T
	err    error
}

// WithTimeout races fn against a deadline; whichever settles first decides
// the call. When the timer wins the guard stops waiting but does NOT cancel
// fn: the operation is detached and runs to completion in the background,
// possibly still mutating shared state (e.g. populating the cache) after its
// caller has moved on. This at-least-once semantics is deliberate; the
// buffered channel lets the detached goroutine finish and exit.
func WithTimeout[T any](ctx context.Context, fn func(context.Context) (T, error), timeout time.Duration) (T, error) {
	done := make(chan outcome[T], 1)
	go func() {
		result, err := fn(ctx)
		done <- outcome[T]{result: result, err: err}
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	var zero T
	select {
	case o := <-done:
		return o.result, o.err
	case <-ctx.Done():
		return zero, ctx.Err()
	case <-timer.C:
		return zero, &TimeoutError{Timeout: timeout}
	}
}
