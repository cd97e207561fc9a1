package scraper

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func batchSettings() Settings {
	s := fastSettings()
	s.MaxRetries = 1
	return s
}

func TestBatchAllSucceed(t *testing.T) {
	p := newStubProvider()
	s := newTestScraper(p, batchSettings())

	result := s.Batch(context.Background(), []string{"AAPL", "msft", " googl "})
	require.Len(t, result.Succeeded, 3)
	require.Empty(t, result.Failed)

	// Input order survives the concurrent fan-out.
	require.Equal(t, "AAPL", result.Succeeded[0].Symbol)
	require.Equal(t, "MSFT", result.Succeeded[1].Symbol)
	require.Equal(t, "GOOGL", result.Succeeded[2].Symbol)
}

func TestBatchPartialFailure(t *testing.T) {
	p := newStubProvider()
	p.fail["MSFT"] = 100
	s := newTestScraper(p, batchSettings())

	result := s.Batch(context.Background(), []string{"AAPL", "MSFT", "GOOGL"})
	require.Len(t, result.Succeeded, 2)
	require.Equal(t, "AAPL", result.Succeeded[0].Symbol)
	require.Equal(t, "GOOGL", result.Succeeded[1].Symbol)
	require.Equal(t, []string{"MSFT"}, result.Failed)
}

func TestBatchAllFail(t *testing.T) {
	p := newStubProvider()
	p.fail["AAPL"] = 100
	p.fail["MSFT"] = 100
	s := newTestScraper(p, batchSettings())

	result := s.Batch(context.Background(), []string{"AAPL", "MSFT"})
	require.Empty(t, result.Succeeded)
	require.ElementsMatch(t, []string{"AAPL", "MSFT"}, result.Failed)
}

func TestBatchFiltersInvalidSymbols(t *testing.T) {
	p := newStubProvider()
	s := newTestScraper(p, batchSettings())

	result := s.Batch(context.Background(), []string{"AAPL", "ZZZZZZ", "BRK.B", ""})
	require.Len(t, result.Succeeded, 1)
	require.Equal(t, "AAPL", result.Succeeded[0].Symbol)
	require.Empty(t, result.Failed)

	// Invalid symbols never generate upstream traffic.
	require.Equal(t, 1, p.callCount("AAPL"))
	require.Zero(t, p.callCount("ZZZZZZ"))
}

func TestBatchAllInvalid(t *testing.T) {
	p := newStubProvider()
	s := newTestScraper(p, batchSettings())

	result := s.Batch(context.Background(), []string{"ZZZZZZ", "123"})
	require.Empty(t, result.Succeeded)
	require.Empty(t, result.Failed)
	require.Empty(t, p.calls)
	// Nothing valid to fetch means no batch events either.
	require.Empty(t, s.Events().EventsBySource("stocks-scraper"))
}

func TestBatchDeduplicatesFailed(t *testing.T) {
	p := newStubProvider()
	p.fail["MSFT"] = 100
	s := newTestScraper(p, batchSettings())

	result := s.Batch(context.Background(), []string{"MSFT", "MSFT"})
	require.Equal(t, []string{"MSFT"}, result.Failed)
}

func TestBatchBoundedConcurrency(t *testing.T) {
	p := newStubProvider()
	p.delay = 40 * time.Millisecond
	settings := batchSettings()
	settings.MaxConcurrentRequests = 2
	settings.CacheEnabled = false
	s := newTestScraper(p, settings)

	started := time.Now()
	result := s.Batch(context.Background(), []string{"AAPL", "MSFT", "GOOG", "AMZN"})
	elapsed := time.Since(started)

	require.Len(t, result.Succeeded, 4)
	// Four 40ms fetches across two workers take at least two rounds.
	require.GreaterOrEqual(t, elapsed, 80*time.Millisecond)
}

func TestBatchEvents(t *testing.T) {
	p := newStubProvider()
	s := newTestScraper(p, batchSettings())

	s.Batch(context.Background(), []string{"AAPL", "MSFT"})

	batch := s.Events().EventsBySource("stocks-scraper")
	require.Len(t, batch, 2)
	require.Equal(t, EventStart, batch[0].Type)
	require.Equal(t, EventSuccess, batch[1].Type)
	require.Equal(t, 2, batch[1].Metadata["count"])
}
