package scraper

import (
	"fmt"
	"time"
)

// InvalidSymbolError reports input that failed symbol validation. It is never
// handed to the retry layer.
type InvalidSymbolError struct {
	Symbol string
}

func (e *InvalidSymbolError) Error() string {
	return fmt.Sprintf("invalid stock symbol format: %s", e.Symbol)
}

// TimeoutError reports an attempt that exceeded its deadline.
type TimeoutError struct {
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("operation timed out after %dms", e.Timeout.Milliseconds())
}

// ExhaustedError is terminal: every retry attempt was spent.
type ExhaustedError struct {
	Attempts int
	Last     error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("failed after %d attempts: last error: %v", e.Attempts, e.Last)
}

func (e *ExhaustedError) Unwrap() error { return e.Last }
