package fmp

import (
	"errors"
	"fmt"
)

// ErrNoData indicates the upstream returned an empty result set for a symbol.
var ErrNoData = errors.New("fmp: no data for symbol")

// StatusError reports a non-2xx upstream HTTP status.
type StatusError struct {
	Symbol string
	Code   int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fmp: http status %d for %s", e.Code, e.Symbol)
}

// PayloadError reports an upstream response that decoded but failed shape
// validation. Under the coarse retry policy it is indistinguishable from a
// transient fault, so callers will retry it.
type PayloadError struct {
	Symbol string
	Reason string
}

func (e *PayloadError) Error() string {
	return fmt.Sprintf("fmp: invalid quote data for %s: %s", e.Symbol, e.Reason)
}
