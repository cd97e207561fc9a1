package scraper

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/zeromicro/go-zero/core/logx"
)

// EventType classifies a scrape lifecycle event.
type EventType string

const (
	EventStart     EventType = "start"
	EventSuccess   EventType = "success"
	EventError     EventType = "error"
	EventRetry     EventType = "retry"
	EventCacheHit  EventType = "cache-hit"
	EventCacheMiss EventType = "cache-miss"
)

// Event is one append-only lifecycle record.
type Event struct {
	Type      EventType      `json:"type"`
	Source    string         `json:"source"`
	Timestamp time.Time      `json:"timestamp"`
	Duration  time.Duration  `json:"duration,omitempty"`
	Err       string         `json:"error,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// EventStats are the statistics derived from the recorded events.
type EventStats struct {
	TotalEvents     int           `json:"totalEvents"`
	SuccessCount    int           `json:"successCount"`
	ErrorCount      int           `json:"errorCount"`
	RetryCount      int           `json:"retryCount"`
	AverageDuration time.Duration `json:"averageDuration"`
	Sources         []string      `json:"sources"`
}

const defaultMaxEvents = 10000

// Recorder keeps an append-only, bounded record of scrape events. Once the
// cap is reached the oldest events are dropped; an unbounded list would grow
// without limit inside a long-running server. Events are only ever removed
// wholesale via Clear or by cap rotation.
type Recorder struct {
	mu        sync.Mutex
	events    []Event
	maxEvents int
	console   bool
}

// RecorderOption configures a Recorder.
type RecorderOption func(*Recorder)

// WithCapacity bounds the number of retained events.
func WithCapacity(n int) RecorderOption {
	return func(r *Recorder) {
		if n > 0 {
			r.maxEvents = n
		}
	}
}

// WithConsole controls whether events are mirrored to the process log.
func WithConsole(enabled bool) RecorderOption {
	return func(r *Recorder) {
		r.console = enabled
	}
}

// NewRecorder creates an event recorder. Console mirroring is on by default.
func NewRecorder(opts ...RecorderOption) *Recorder {
	r := &Recorder{maxEvents: defaultMaxEvents, console: true}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Log appends an event, rotating out the oldest once the cap is reached.
func (r *Recorder) Log(e Event) {
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}

	r.mu.Lock()
	if len(r.events) >= r.maxEvents {
		r.events = r.events[1:]
	}
	r.events = append(r.events, e)
	console := r.console
	r.mu.Unlock()

	if console {
		r.emit(e)
	}
}

func (r *Recorder) emit(e Event) {
	switch e.Type {
	case EventError:
		logx.Errorf("scrape %s: %s: %s", e.Type, e.Source, e.Err)
	case EventRetry:
		logx.Slowf("scrape %s: %s: %s", e.Type, e.Source, e.Err)
	case EventSuccess:
		logx.Infof("scrape %s: %s (%s)", e.Type, e.Source, e.Duration)
	default:
		logx.Infof("scrape %s: %s", e.Type, e.Source)
	}
}

// Start records the beginning of a scrape.
func (r *Recorder) Start(source string, metadata map[string]any) {
	r.Log(Event{Type: EventStart, Source: source, Metadata: metadata})
}

// Success records a completed scrape with its duration.
func (r *Recorder) Success(source string, duration time.Duration, metadata map[string]any) {
	r.Log(Event{Type: EventSuccess, Source: source, Duration: duration, Metadata: metadata})
}

// Error records a failed scrape.
func (r *Recorder) Error(source string, err error, metadata map[string]any) {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	r.Log(Event{Type: EventError, Source: source, Err: msg, Metadata: metadata})
}

// Retry records a retry attempt; the attempt number lands in the metadata.
func (r *Recorder) Retry(source string, attempt int, err error, metadata map[string]any) {
	md := make(map[string]any, len(metadata)+1)
	for k, v := range metadata {
		md[k] = v
	}
	md["attempt"] = attempt

	msg := ""
	if err != nil {
		msg = err.Error()
	}
	r.Log(Event{Type: EventRetry, Source: source, Err: msg, Metadata: md})
}

// CacheHit records a fetch served from cache.
func (r *Recorder) CacheHit(source string, metadata map[string]any) {
	r.Log(Event{Type: EventCacheHit, Source: source, Metadata: metadata})
}

// CacheMiss records a fetch that had to go upstream.
func (r *Recorder) CacheMiss(source string, metadata map[string]any) {
	r.Log(Event{Type: EventCacheMiss, Source: source, Metadata: metadata})
}

// Events returns a copy of all recorded events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// EventsByType returns the recorded events of one type.
func (r *Recorder) EventsByType(t EventType) []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Event
	for _, e := range r.events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

// EventsBySource returns the recorded events for one source.
func (r *Recorder) EventsBySource(source string) []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Event
	for _, e := range r.events {
		if e.Source == source {
			out = append(out, e)
		}
	}
	return out
}

// Stats derives aggregate statistics from the recorded events.
func (r *Recorder) Stats() EventStats {
	r.mu.Lock()
	defer r.mu.Unlock()

	stats := EventStats{TotalEvents: len(r.events)}
	var totalDuration time.Duration
	var timed int
	seen := make(map[string]struct{})

	for _, e := range r.events {
		switch e.Type {
		case EventSuccess:
			stats.SuccessCount++
			if e.Duration > 0 {
				totalDuration += e.Duration
				timed++
			}
		case EventError:
			stats.ErrorCount++
		case EventRetry:
			stats.RetryCount++
		}
		if _, ok := seen[e.Source]; !ok {
			seen[e.Source] = struct{}{}
			stats.Sources = append(stats.Sources, e.Source)
		}
	}
	if timed > 0 {
		stats.AverageDuration = totalDuration / time.Duration(timed)
	}
	return stats
}

// Clear drops all recorded events.
func (r *Recorder) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}

// Export serializes the recorded events as JSON.
func (r *Recorder) Export() ([]byte, error) {
	events := r.Events()
	return json.MarshalIndent(events, "", "  ")
}
