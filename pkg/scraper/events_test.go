package scraper

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestRecorder(opts ...RecorderOption) *Recorder {
	return NewRecorder(append([]RecorderOption{WithConsole(false)}, opts...)...)
}

func TestRecorderLog(t *testing.T) {
	r := newTestRecorder()
	r.Start("stock-scraper", map[string]any{"symbol": "AAPL"})
	r.Success("stock-scraper", 120*time.Millisecond, nil)

	events := r.Events()
	require.Len(t, events, 2)
	require.Equal(t, EventStart, events[0].Type)
	require.Equal(t, EventSuccess, events[1].Type)
	require.False(t, events[0].Timestamp.IsZero())
	require.Equal(t, "AAPL", events[0].Metadata["symbol"])
}

func TestRecorderRetryAttemptMetadata(t *testing.T) {
	r := newTestRecorder()
	r.Retry("stock-scraper", 2, errors.New("transient"), map[string]any{"symbol": "AAPL"})

	events := r.EventsByType(EventRetry)
	require.Len(t, events, 1)
	require.Equal(t, 2, events[0].Metadata["attempt"])
	require.Equal(t, "AAPL", events[0].Metadata["symbol"])
	require.Equal(t, "transient", events[0].Err)
}

func TestRecorderStats(t *testing.T) {
	r := newTestRecorder()
	r.Start("stock-scraper", nil)
	r.Success("stock-scraper", 100*time.Millisecond, nil)
	r.Success("stocks-scraper", 300*time.Millisecond, nil)
	r.Retry("stock-scraper", 1, errors.New("transient"), nil)
	r.Error("stock-scraper", errors.New("terminal"), nil)

	stats := r.Stats()
	require.Equal(t, 5, stats.TotalEvents)
	require.Equal(t, 2, stats.SuccessCount)
	require.Equal(t, 1, stats.ErrorCount)
	require.Equal(t, 1, stats.RetryCount)
	require.Equal(t, 200*time.Millisecond, stats.AverageDuration)
	require.ElementsMatch(t, []string{"stock-scraper", "stocks-scraper"}, stats.Sources)
}

func TestRecorderCapacityRotation(t *testing.T) {
	r := newTestRecorder(WithCapacity(3))
	for i := 0; i < 5; i++ {
		r.Log(Event{Type: EventStart, Source: "stock-scraper", Metadata: map[string]any{"seq": i}})
	}

	events := r.Events()
	require.Len(t, events, 3)
	require.Equal(t, 2, events[0].Metadata["seq"])
	require.Equal(t, 4, events[2].Metadata["seq"])
}

func TestRecorderFilters(t *testing.T) {
	r := newTestRecorder()
	r.Start("stock-scraper", nil)
	r.Start("stocks-scraper", nil)
	r.Error("stock-scraper", errors.New("boom"), nil)

	require.Len(t, r.EventsBySource("stock-scraper"), 2)
	require.Len(t, r.EventsBySource("stocks-scraper"), 1)
	require.Len(t, r.EventsByType(EventError), 1)
	require.Empty(t, r.EventsByType(EventCacheHit))
}

func TestRecorderClear(t *testing.T) {
	r := newTestRecorder()
	r.Start("stock-scraper", nil)
	r.Clear()

	require.Empty(t, r.Events())
	require.Equal(t, 0, r.Stats().TotalEvents)
}

func TestRecorderExport(t *testing.T) {
	r := newTestRecorder()
	r.Error("stock-scraper", errors.New("boom"), map[string]any{"symbol": "AAPL"})

	raw, err := r.Export()
	require.NoError(t, err)

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.Len(t, decoded, 1)
	require.Equal(t, "error", decoded[0]["type"])
	require.Equal(t, "boom", decoded[0]["error"])
}
