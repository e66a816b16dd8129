package coincheck

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	ccpl "github.com/yoheiMune/cc-pl"
)

const closingPrices = `{
  "closing_prices": {
    "2017-09-05": {"btc": ["5150000.0", "5200000.0"], "xem": ["37.1", "38.5"]},
    "2017-09-06": {"btc": [5180000.0, 5230000.0]}
  }
}`

func newTestServer(t *testing.T) (*httptest.Server, *int) {
	t.Helper()
	hits := new(int)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*hits++
		if r.URL.Query().Get("year") != "2017" || r.URL.Query().Get("month") != "9" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, closingPrices)
	}))
	t.Cleanup(server.Close)
	return server, hits
}

func TestClient_ClosingPrice(t *testing.T) {
	server, _ := newTestServer(t)
	client := NewClientAt(server.URL)

	tests := []struct {
		day   ccpl.Date
		asset string
		want  ccpl.Money
	}{
		// string-encoded price
		{ccpl.NewDate(2017, time.September, 5), "BTC", ccpl.M(5200000, "JPY")},
		{ccpl.NewDate(2017, time.September, 5), "XEM", ccpl.M(38.5, "JPY")},
		// number-encoded price
		{ccpl.NewDate(2017, time.September, 6), "btc", ccpl.M(5230000, "JPY")},
	}
	for _, tc := range tests {
		got, err := client.ClosingPrice(tc.day, tc.asset)
		if err != nil {
			t.Errorf("ClosingPrice(%s, %s) error = %v", tc.day, tc.asset, err)
			continue
		}
		if !got.Equal(tc.want) {
			t.Errorf("ClosingPrice(%s, %s) = %s, want %s", tc.day, tc.asset, got, tc.want)
		}
	}
}

func TestClient_ClosingPriceMissingDay(t *testing.T) {
	server, _ := newTestServer(t)
	client := NewClientAt(server.URL)

	_, err := client.ClosingPrice(ccpl.NewDate(2017, time.September, 7), "BTC")
	if err == nil {
		t.Fatal("ClosingPrice() succeeded on a missing day")
	}
	if !errors.Is(err, ccpl.ErrPriceUnavailable) {
		t.Errorf("error = %v, want ErrPriceUnavailable", err)
	}
}

func TestClient_ClosingPriceMissingMonth(t *testing.T) {
	server, _ := newTestServer(t)
	client := NewClientAt(server.URL)

	_, err := client.ClosingPrice(ccpl.NewDate(2018, time.January, 1), "BTC")
	if err == nil {
		t.Fatal("ClosingPrice() succeeded on a missing month")
	}
	if !errors.Is(err, ccpl.ErrPriceUnavailable) {
		t.Errorf("error = %v, want ErrPriceUnavailable", err)
	}
}

func TestClient_OneRoundTripPerMonth(t *testing.T) {
	server, hits := newTestServer(t)
	client := NewClientAt(server.URL)
	client.http = newCachingClient()

	for range 3 {
		if _, err := client.ClosingPrice(ccpl.NewDate(2017, time.September, 5), "BTC"); err != nil {
			t.Fatalf("ClosingPrice() error = %v", err)
		}
	}
	if *hits != 1 {
		t.Errorf("server hits = %d, want 1 (disk cache)", *hits)
	}
}
