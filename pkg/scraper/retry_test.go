package scraper

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWithRetrySuccess(t *testing.T) {
	t.Run("first attempt short-circuits", func(t *testing.T) {
		calls := 0
		result, err := WithRetry(context.Background(), func(context.Context) (string, error) {
			calls++
			return "ok", nil
		}, Policy{MaxRetries: 3, BaseDelay: 10 * time.Millisecond})

		require.NoError(t, err)
		require.Equal(t, "ok", result)
		require.Equal(t, 1, calls)
	})

	t.Run("fails twice then succeeds", func(t *testing.T) {
		const base = 40 * time.Millisecond
		var retries []int

		calls := 0
		started := time.Now()
		result, err := WithRetry(context.Background(), func(context.Context) (string, error) {
			calls++
			if calls <= 2 {
				return "", errors.New("transient")
			}
			return "ok", nil
		}, Policy{
			MaxRetries: 3,
			BaseDelay:  base,
			Multiplier: 2,
			OnRetry:    func(attempt int, _ error) { retries = append(retries, attempt) },
		})
		elapsed := time.Since(started)

		require.NoError(t, err)
		require.Equal(t, "ok", result)
		require.Equal(t, 3, calls)
		require.Equal(t, []int{1, 2}, retries)
		// Two backoff sleeps: base + base*multiplier.
		require.GreaterOrEqual(t, elapsed, base+2*base)
	})
}

func TestWithRetryExhausted(t *testing.T) {
	calls := 0
	_, err := WithRetry(context.Background(), func(context.Context) (int, error) {
		calls++
		return 0, errors.New("always broken")
	}, Policy{MaxRetries: 3, BaseDelay: 5 * time.Millisecond})

	require.Error(t, err)
	require.Equal(t, 3, calls)

	var exhausted *ExhaustedError
	require.ErrorAs(t, err, &exhausted)
	require.Equal(t, 3, exhausted.Attempts)
	require.Contains(t, err.Error(), "failed after 3 attempts")
	require.Contains(t, err.Error(), "always broken")
}

func TestWithRetryNoCallbackOnFinalFailure(t *testing.T) {
	retries := 0
	_, err := WithRetry(context.Background(), func(context.Context) (int, error) {
		return 0, errors.New("broken")
	}, Policy{
		MaxRetries: 2,
		BaseDelay:  5 * time.Millisecond,
		OnRetry:    func(int, error) { retries++ },
	})

	require.Error(t, err)
	// The final attempt fails terminally; no retry follows it.
	require.Equal(t, 1, retries)
}

func TestWithRetryContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()
	_, err := WithRetry(ctx, func(context.Context) (int, error) {
		calls++
		return 0, errors.New("broken")
	}, Policy{MaxRetries: 5, BaseDelay: time.Second})

	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, 1, calls)
}

func TestBackoffDelay(t *testing.T) {
	p := Policy{
		BaseDelay:  100 * time.Millisecond,
		MaxDelay:   300 * time.Millisecond,
		Multiplier: 2,
	}.withDefaults()

	t.Run("grows exponentially with jitter bound", func(t *testing.T) {
		for attempt, want := range []time.Duration{
			100 * time.Millisecond,
			200 * time.Millisecond,
		} {
			d := p.backoffDelay(attempt)
			require.GreaterOrEqual(t, d, want)
			require.Less(t, d, want+want/10+time.Millisecond)
		}
	})

	t.Run("caps at max delay", func(t *testing.T) {
		d := p.backoffDelay(10)
		require.GreaterOrEqual(t, d, 300*time.Millisecond)
		require.Less(t, d, 330*time.Millisecond+time.Millisecond)
	})
}

func TestPolicyDefaults(t *testing.T) {
	p := Policy{}.withDefaults()
	require.Equal(t, defaultMaxRetries, p.MaxRetries)
	require.Equal(t, defaultBaseDelay, p.BaseDelay)
	require.Equal(t, defaultMaxDelay, p.MaxDelay)
	require.Equal(t, defaultMultiplier, p.Multiplier)
}
