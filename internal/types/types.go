package types

import (
	"scraper-api/pkg/quote"
	"scraper-api/pkg/scraper"
)

// StockRequest is the query for a single-symbol fetch.
type StockRequest struct {
	Symbol string `form:"symbol,optional"`
}

// StockBatchRequest is the body for a multi-symbol fetch.
type StockBatchRequest struct {
	Symbols []string `json:"symbols,optional"`
}

// StockBatchResponse reports the settled batch. Failed lists the symbols
// whose pipelines failed terminally so callers are not left guessing from
// the count alone.
type StockBatchResponse struct {
	Data      []*quote.Quote `json:"data"`
	Count     int            `json:"count"`
	Failed    []string       `json:"failed"`
	Timestamp string         `json:"timestamp"`
}

// ErrorResponse is the JSON error body. Message carries detail only outside
// production mode; Duration is reported in milliseconds.
type ErrorResponse struct {
	Error    string `json:"error"`
	Message  string `json:"message,omitempty"`
	Duration int64  `json:"duration,omitempty"`
}

// StatsResponse is the observability snapshot.
type StatsResponse struct {
	Events scraper.EventStats `json:"events"`
	Cache  CacheStatsView     `json:"cache"`
}

// CacheStatsView renders cache diagnostics with ages in milliseconds.
type CacheStatsView struct {
	Size   int      `json:"size"`
	Keys   []string `json:"keys"`
	AgesMs []int64  `json:"agesMs"`
}
