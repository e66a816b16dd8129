package ccpl

import "errors"

// ErrPriceUnavailable reports that the closing price for a (date, asset)
// pair could not be determined. Processing must halt on it: substituting
// zero or skipping the mutation would corrupt every later weighted average.
var ErrPriceUnavailable = errors.New("closing price unavailable")

// PriceOracle supplies the historical closing price of one unit of an asset
// in JPY. Lookups are deterministic for a given (day, asset) pair and may
// fail: a failed lookup wraps ErrPriceUnavailable.
//
// The core treats each lookup as a single synchronous attempt; retry or
// backoff policy belongs to the implementation.
type PriceOracle interface {
	ClosingPrice(day Date, asset string) (Money, error)
}

// PriceOracleFunc adapts a function to the PriceOracle interface.
type PriceOracleFunc func(day Date, asset string) (Money, error)

// ClosingPrice implements the PriceOracle interface.
func (f PriceOracleFunc) ClosingPrice(day Date, asset string) (Money, error) {
	return f(day, asset)
}
