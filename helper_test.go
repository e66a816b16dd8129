package ccpl

import "fmt"

// JPY is a helper for tests to create yen money from a constant.
func JPY(v float64) Money { return M(v, "JPY") }

// YEN is a helper for tests to create exact yen money from a decimal string.
func YEN(s string) Money { return M(s, "JPY") }

// fixedOracle serves closing prices from a static table keyed by
// "YYYY-MM-DD SYMBOL". Missing entries fail with ErrPriceUnavailable.
type fixedOracle map[string]float64

func (o fixedOracle) ClosingPrice(day Date, asset string) (Money, error) {
	if v, ok := o[day.String()+" "+asset]; ok {
		return JPY(v), nil
	}
	return Money{}, fmt.Errorf("no closing price for %s on %s: %w", asset, day, ErrPriceUnavailable)
}
