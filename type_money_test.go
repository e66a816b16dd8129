package ccpl

import "testing"

func TestMoney_JPYHasNoFraction(t *testing.T) {
	if got := JPY(5100000).String(); got != "¥5,100,000" {
		t.Errorf("String() = %q, want ¥5,100,000", got)
	}
}

func TestMoney_Truncate(t *testing.T) {
	m := YEN("4979531.70731707")
	if got, want := m.Truncate(), JPY(4979531); !got.Equal(want) {
		t.Errorf("Truncate() = %s, want %s", got, want)
	}
	// Truncation, not rounding.
	if got, want := YEN("37848.9").Truncate(), JPY(37848); !got.Equal(want) {
		t.Errorf("Truncate() = %s, want %s", got, want)
	}
}

func TestMoney_DivRoundPrecision(t *testing.T) {
	// 1020804 / 0.205 at 8 decimal digits.
	got := YEN("1020804").DivRound(Q("0.205"), 8)
	if want := YEN("4979531.70731707"); !got.Equal(want) {
		t.Errorf("DivRound() = %s, want %s", got, want)
	}
}

func TestMoney_SignedString(t *testing.T) {
	tests := []struct {
		in   Money
		want string
	}{
		{JPY(0), "-"},
		{JPY(5000), "+¥5,000"},
		{JPY(-265), "-¥265"},
	}
	for _, tc := range tests {
		if got := tc.in.SignedString(); got != tc.want {
			t.Errorf("SignedString(%s) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestMoney_WeakEmptyCurrency(t *testing.T) {
	sum := M(10, "").Add(JPY(5))
	if sum.Currency() != "JPY" {
		t.Errorf("currency = %q, want JPY", sum.Currency())
	}
}
