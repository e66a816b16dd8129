package ccpl

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestEncodeDecodeEvents_RoundTrip(t *testing.T) {
	events := []Event{
		NewTrade(NewDate(2017, time.August, 31), "BTC", Q("0.1"), JPY(5100000), JPY(510000)),
		NewBuy(NewDate(2017, time.September, 1), "XEM", Q(100), JPY(38), JPY(3800)),
		NewSell(NewDate(2017, time.September, 2), "BTC", Q("-0.05"), JPY(5200000), JPY(260000)),
		NewExchange(NewDate(2017, time.September, 10), "XEM", "BTC", Q(1000), Q("0.01"), KindBuy),
		NewSend(NewDate(2017, time.September, 20), "BTC", Q("-0.001"), Q("0.0001")),
		NewDeposit(NewDate(2017, time.September, 5), "BTC", Q("0.0003")),
	}

	var buf bytes.Buffer
	if err := EncodeEvents(&buf, events); err != nil {
		t.Fatalf("EncodeEvents() error = %v", err)
	}

	decoded, err := DecodeEvents(&buf)
	if err != nil {
		t.Fatalf("DecodeEvents() error = %v", err)
	}
	if len(decoded) != len(events) {
		t.Fatalf("decoded %d events, want %d", len(decoded), len(events))
	}
	for i, e := range decoded {
		if e.What() != events[i].What() {
			t.Errorf("event %d kind = %s, want %s", i, e.What(), events[i].What())
		}
		if e.When() != events[i].When() {
			t.Errorf("event %d date = %s, want %s", i, e.When(), events[i].When())
		}
		if e.Asset() != events[i].Asset() {
			t.Errorf("event %d asset = %s, want %s", i, e.Asset(), events[i].Asset())
		}
		if err := e.Validate(); err != nil {
			t.Errorf("event %d does not survive the round trip: %v", i, err)
		}
	}

	// Spot-check a leg-specific field.
	ex, ok := decoded[3].(Exchange)
	if !ok {
		t.Fatalf("event 3 = %T, want Exchange", decoded[3])
	}
	if ex.From != "BTC" || !ex.FromQuantity.Equal(Q("0.01")) || ex.Origin != KindBuy {
		t.Errorf("exchange legs lost: %+v", ex)
	}
}

func TestDecodeEvents_AdjustmentsFile(t *testing.T) {
	// The hand-written shape of a manual adjustments file.
	jsonl := `{"kind":"deposit","date":"2017-09-05","asset":"BTC","quantity":0.0003}

{"kind":"send","date":"2017-10-01","asset":"BTC","quantity":-0.01,"fee":0.0005}
`
	events, err := DecodeEvents(strings.NewReader(jsonl))
	if err != nil {
		t.Fatalf("DecodeEvents() error = %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("decoded %d events, want 2", len(events))
	}
	dep := events[0].(Deposit)
	if !dep.Quantity.Equal(Q("0.0003")) {
		t.Errorf("deposit quantity = %s, want 0.0003", dep.Quantity)
	}
}

func TestDecodeEvents_UnknownKind(t *testing.T) {
	_, err := DecodeEvents(strings.NewReader(`{"kind":"stake","date":"2017-09-05","asset":"BTC"}`))
	if err == nil {
		t.Fatal("DecodeEvents() succeeded on unknown kind")
	}
}
