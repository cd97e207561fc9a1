package logic

import "errors"

// Request-validation failures surfaced as 400 bodies. The error text is the
// wire contract, so it keeps the API's sentence casing.
var (
	ErrSymbolRequired = errors.New("Symbol parameter required")
	ErrInvalidSymbol  = errors.New("Invalid stock symbol format (1-5 letters)")
	ErrEmptySymbols   = errors.New("Symbols must be a non-empty array")
	ErrTooManySymbols = errors.New("Maximum 50 symbols per request")
	ErrNoValidSymbols = errors.New("No valid stock symbols provided")
)

// IsBadRequest reports whether err maps to a 400 response.
func IsBadRequest(err error) bool {
	for _, sentinel := range []error{
		ErrSymbolRequired,
		ErrInvalidSymbol,
		ErrEmptySymbols,
		ErrTooManySymbols,
		ErrNoValidSymbols,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
