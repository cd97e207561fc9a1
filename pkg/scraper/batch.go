package scraper

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/zeromicro/go-zero/core/mr"

	"scraper-api/pkg/quote"
)

const sourceBatch = "stocks-scraper"

// BatchResult collects the outcome of a fan-out fetch. Succeeded preserves
// the input order of the requested symbols; Failed is the set of symbols
// whose pipelines failed terminally.
type BatchResult struct {
	Succeeded []*quote.Quote
	Failed    []string
}

type batchItem struct {
	idx int
	sym string
	q   *quote.Quote
	err error
}

// Batch fetches many symbols concurrently with settle-all semantics: one
// symbol's terminal failure lands in Failed and never aborts its siblings,
// and an all-failed batch yields an empty Succeeded without being an error
// at this layer. Invalid symbols are dropped up front, before any upstream
// traffic. Concurrency is bounded by MaxConcurrentRequests from the current
// settings snapshot; within one symbol, attempts stay strictly sequential.
func (s *Scraper) Batch(ctx context.Context, symbols []string) *BatchResult {
	valid := make([]string, 0, len(symbols))
	for _, raw := range symbols {
		sym := strings.ToUpper(strings.TrimSpace(raw))
		if ValidSymbol(sym) {
			valid = append(valid, sym)
		}
	}

	result := &BatchResult{}
	if len(valid) == 0 {
		return result
	}

	st := s.settings.Get()
	workers := st.MaxConcurrentRequests
	if workers < 1 {
		workers = 1
	}

	started := time.Now()
	s.events.Start(sourceBatch, map[string]any{"count": len(valid), "symbols": valid})

	collected, err := mr.MapReduce(func(source chan<- batchItem) {
		for i, sym := range valid {
			source <- batchItem{idx: i, sym: sym}
		}
	}, func(item batchItem, writer mr.Writer[batchItem], _ func(error)) {
		item.q, item.err = s.Quote(ctx, item.sym)
		writer.Write(item)
	}, func(pipe <-chan batchItem, writer mr.Writer[[]batchItem], _ func(error)) {
		items := make([]batchItem, 0, len(valid))
		for item := range pipe {
			items = append(items, item)
		}
		sort.Slice(items, func(i, j int) bool { return items[i].idx < items[j].idx })
		writer.Write(items)
	}, mr.WithWorkers(workers))
	if err != nil {
		s.events.Error(sourceBatch, err, map[string]any{"count": len(valid)})
		return result
	}

	failedSet := make(map[string]struct{})
	for _, item := range collected {
		if item.err != nil {
			if _, dup := failedSet[item.sym]; !dup {
				failedSet[item.sym] = struct{}{}
				result.Failed = append(result.Failed, item.sym)
			}
			continue
		}
		result.Succeeded = append(result.Succeeded, item.q)
	}

	s.events.Success(sourceBatch, time.Since(started), map[string]any{
		"count":     len(result.Succeeded),
		"requested": len(valid),
	})
	return result
}
