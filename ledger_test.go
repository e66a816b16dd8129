package ccpl

import "testing"

func TestLedger_AccumulateSetsRateOnFirstBuy(t *testing.T) {
	l := NewLedger(DefaultPrecision)
	pos := l.Accumulate("BTC", Q("0.1"), JPY(5100000))

	if !pos.Quantity.Equal(Q("0.1")) {
		t.Errorf("quantity = %s, want 0.1", pos.Quantity)
	}
	// Weighted average with zero prior weight is exactly the incoming rate.
	if !pos.AverageCost.Equal(JPY(5100000)) {
		t.Errorf("average cost = %s, want 5100000", pos.AverageCost)
	}
}

func TestLedger_AccumulateWeightedAverage(t *testing.T) {
	l := NewLedger(DefaultPrecision)
	l.Accumulate("BTC", Q("0.1"), JPY(5100000))
	pos := l.Accumulate("BTC", Q("0.105"), JPY(4864800)) // 510804 JPY total

	if !pos.Quantity.Equal(Q("0.205")) {
		t.Errorf("quantity = %s, want 0.205", pos.Quantity)
	}
	// (5100000*0.1 + 4864800*0.105) / 0.205 = 1020804 / 0.205, rounded to 8
	// decimal digits.
	if want := YEN("4979531.70731707"); !pos.AverageCost.Equal(want) {
		t.Errorf("average cost = %s, want %s", pos.AverageCost, want)
	}
}

func TestLedger_AccumulateQuantitySum(t *testing.T) {
	l := NewLedger(DefaultPrecision)
	deltas := []string{"0.1", "2.5", "0.0003", "10"}
	var sum Quantity
	for _, d := range deltas {
		sum = sum.Add(Q(d))
		l.Accumulate("XEM", Q(d), JPY(38))
	}
	if pos := l.Position("XEM"); !pos.Quantity.Equal(sum) {
		t.Errorf("quantity = %s, want %s", pos.Quantity, sum)
	}
	// Identical rates: the weighted mean is the rate itself.
	if pos := l.Position("XEM"); !pos.AverageCost.Equal(JPY(38)) {
		t.Errorf("average cost = %s, want 38", pos.AverageCost)
	}
}

func TestLedger_AccumulateToZeroQuantityResetsAverage(t *testing.T) {
	l := NewLedger(DefaultPrecision)
	l.Accumulate("BTC", Q(1), JPY(5000000))
	pos := l.Accumulate("BTC", Q(-1), JPY(6000000))

	if !pos.Quantity.IsZero() {
		t.Fatalf("quantity = %s, want 0", pos.Quantity)
	}
	// Zero denominator resolves to a defined zero average, not a fault.
	if !pos.AverageCost.IsZero() {
		t.Errorf("average cost = %s, want 0", pos.AverageCost)
	}
}

func TestLedger_DisposeKeepsAverageCost(t *testing.T) {
	l := NewLedger(DefaultPrecision)
	l.Accumulate("BTC", Q("0.205"), YEN("4979531.70731707"))
	before := l.Position("BTC").AverageCost

	pos, profit := l.Dispose("BTC", Q("-0.095"), JPY(5377937))

	if !pos.Quantity.Equal(Q("0.11")) {
		t.Errorf("quantity = %s, want 0.11", pos.Quantity)
	}
	if !pos.AverageCost.Equal(before) {
		t.Errorf("average cost changed on disposal: %s != %s", pos.AverageCost, before)
	}
	// (5377937 - 4979531.70731707) * 0.095, exact multiplication.
	if want := YEN("37848.50280487835"); !profit.Equal(want) {
		t.Errorf("profit = %s, want %s", profit, want)
	}
}

func TestLedger_DisposeProfitSign(t *testing.T) {
	tests := []struct {
		name string
		rate Money
		want func(Money) bool
	}{
		{"rate above basis is a gain", JPY(120), Money.IsPositive},
		{"rate at basis is flat", JPY(100), Money.IsZero},
		{"rate below basis is a loss", JPY(80), Money.IsNegative},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			l := NewLedger(DefaultPrecision)
			l.Accumulate("XRP", Q(100), JPY(100))
			_, profit := l.Dispose("XRP", Q(-10), tc.rate)
			if !tc.want(profit) {
				t.Errorf("profit = %s has the wrong sign for rate %s", profit, tc.rate)
			}
		})
	}
}

func TestLedger_SendWithFee(t *testing.T) {
	l := NewLedger(DefaultPrecision)
	l.Accumulate("BTC", Q(1), JPY(5000000))

	pos, profit := l.SendWithFee("BTC", Q("-0.5"), Q("0.001"), JPY(6000000))

	// Both the sent amount and the fee reduce the held units.
	if want := Q("0.499"); !pos.Quantity.Equal(want) {
		t.Errorf("quantity = %s, want %s", pos.Quantity, want)
	}
	if !pos.AverageCost.Equal(JPY(5000000)) {
		t.Errorf("average cost changed on send: %s", pos.AverageCost)
	}
	// The fee is a forced disposal at the fetched rate, independent of the
	// average cost.
	if want := JPY(-6000); !profit.Equal(want) {
		t.Errorf("profit = %s, want %s", profit, want)
	}
}

func TestLedger_DepositAt(t *testing.T) {
	l := NewLedger(DefaultPrecision)
	l.Accumulate("BTC", Q("0.1"), JPY(5000000))

	pos, income := l.DepositAt("BTC", Q("0.0003"), JPY(5200000))

	if want := Q("0.1003"); !pos.Quantity.Equal(want) {
		t.Errorf("quantity = %s, want %s", pos.Quantity, want)
	}
	// (5000000*0.1 + 5200000*0.0003) / 0.1003 = 501560/0.1003
	if want := YEN("5000598.20538385"); !pos.AverageCost.Equal(want) {
		t.Errorf("average cost = %s, want %s", pos.AverageCost, want)
	}
	if want := JPY(1560); !income.Equal(want) {
		t.Errorf("income = %s, want %s", income, want)
	}
}

func TestLedger_ReplayIsNotIdempotent(t *testing.T) {
	// Replaying the same event twice must double-count: the engine is a
	// faithful accumulator, not a deduplicator.
	l := NewLedger(DefaultPrecision)
	l.Accumulate("BTC", Q("0.1"), JPY(5100000))
	pos := l.Accumulate("BTC", Q("0.1"), JPY(5100000))

	if want := Q("0.2"); !pos.Quantity.Equal(want) {
		t.Errorf("quantity = %s, want %s", pos.Quantity, want)
	}
}

func TestLedger_PositionsFirstTouchedOrder(t *testing.T) {
	l := NewLedger(DefaultPrecision)
	l.Accumulate("BTC", Q(1), JPY(100))
	l.Accumulate("XEM", Q(1), JPY(10))
	l.Accumulate("BTC", Q(1), JPY(100))
	l.Accumulate("XRP", Q(1), JPY(20))

	var got []string
	l.Positions(func(p Position) bool {
		got = append(got, p.Asset)
		return true
	})
	want := []string{"BTC", "XEM", "XRP"}
	if len(got) != len(want) {
		t.Fatalf("positions = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("positions = %v, want %v", got, want)
		}
	}
}

func TestLedger_UntouchedPositionIsZero(t *testing.T) {
	l := NewLedger(DefaultPrecision)
	pos := l.Position("DOGE")
	if !pos.Quantity.IsZero() || !pos.AverageCost.IsZero() {
		t.Errorf("untouched position = %+v, want zero", pos)
	}
}
