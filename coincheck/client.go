// Package coincheck adapts Coincheck's public data to the ccpl core: the
// closing-price endpoint behind the PriceOracle interface, and the five CSV
// account exports as canonical events.
package coincheck

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
	ccpl "github.com/yoheiMune/cc-pl"
)

// listURL is the public endpoint listing the daily closing prices of one
// calendar month for every asset Coincheck trades.
const listURL = "https://coincheck.com/exchange/closing_prices/list"

// Client fetches historical closing prices from Coincheck. It implements
// ccpl.PriceOracle. Responses are cached on disk: one HTTP round trip per
// requested month.
type Client struct {
	http *http.Client
	base string
}

// NewClient returns a Client against the public Coincheck endpoint.
func NewClient() *Client {
	return &Client{http: newCachingClient(), base: listURL}
}

// NewClientAt returns a Client against an alternative endpoint, without
// caching. Used by tests.
func NewClientAt(base string) *Client {
	return &Client{http: new(http.Client), base: base}
}

// ClosingPrice returns the JPY closing price of one unit of asset on the
// given day. A missing month, day or symbol wraps ccpl.ErrPriceUnavailable.
//
// The payload nests prices as closing_prices.<date>.<symbol>, each a
// [open, close] pair; the closing value is the second element.
func (c *Client) ClosingPrice(day ccpl.Date, asset string) (ccpl.Money, error) {
	addr := fmt.Sprintf("%s?month=%d&year=%d", c.base, int(day.Month()), day.Year())

	var jobj any
	if err := jwget(c.http, addr, &jobj); err != nil {
		return ccpl.Money{}, fmt.Errorf("cannot fetch closing prices for %d-%02d: %v: %w",
			day.Year(), int(day.Month()), err, ccpl.ErrPriceUnavailable)
	}

	path := fmt.Sprintf("$.closing_prices[%q][%q][1]", day.String(), strings.ToLower(asset))
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return ccpl.Money{}, fmt.Errorf("no closing price for %s on %s: %w", asset, day, ccpl.ErrPriceUnavailable)
	}
	// jsonpath is never clear about whether it returns a list of one answer
	// or a single answer; keep the first one if any.
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}

	price, err := toDecimal(jval)
	if err != nil {
		return ccpl.Money{}, fmt.Errorf("bad closing price for %s on %s: %v: %w", asset, day, err, ccpl.ErrPriceUnavailable)
	}
	return ccpl.M(price, "JPY"), nil
}

// toDecimal converts the JSON value of a price, which the endpoint has served
// both as a number and as a string over the years.
func toDecimal(jval any) (decimal.Decimal, error) {
	switch v := jval.(type) {
	case string:
		return decimal.NewFromString(v)
	case float64:
		return decimal.NewFromFloat(v), nil
	default:
		return decimal.Decimal{}, fmt.Errorf("unsupported price type %T", jval)
	}
}

var _ ccpl.PriceOracle = (*Client)(nil)
