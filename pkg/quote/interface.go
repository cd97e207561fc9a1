package quote

import (
	"context"
	"time"
)

// Quote is the normalized record produced by every successful fetch. It is
// created fresh per call and never mutated afterwards; the cache layer stores
// its own copy with its own timestamp.
type Quote struct {
	Symbol        string    `json:"symbol"`
	Price         float64   `json:"price"`
	Change        float64   `json:"change"`
	ChangePercent float64   `json:"changePercent"`
	Timestamp     time.Time `json:"timestamp"`
	Source        string    `json:"source"`
}

// Provider exposes a single upstream quote source.
type Provider interface {
	// Name identifies the upstream source, e.g. "financialmodelingprep".
	Name() string
	// Quote fetches the latest quote for an already-validated symbol.
	Quote(ctx context.Context, symbol string) (*Quote, error)
}
