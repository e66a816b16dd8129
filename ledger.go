package ccpl

// DefaultPrecision is the number of decimal digits kept by ledger divisions.
// It matches the precision observed in Coincheck's own figures; additions
// and multiplications are always exact.
const DefaultPrecision = 8

// Position is the per-asset mutable state: the total units currently held
// and the weighted-average acquisition cost of one unit in JPY.
//
// A Position is created implicitly at zero on the first event touching its
// asset and is never deleted; it survives until the run ends, when it is
// read to produce the ending-balance report.
type Position struct {
	Asset       string
	Quantity    Quantity
	AverageCost Money // undefined when Quantity is zero; zero by convention
}

// Ledger maps every asset symbol to its current Position and applies one
// mutation per event kind. Disposals report the realized profit or loss
// against the average cost basis.
//
// The Ledger owns the mapping: callers never reach a Position except through
// a mutation or the Positions iteration.
type Ledger struct {
	positions map[string]*Position
	order     []string // assets in first-touched order, for the balance report
	prec      int32    // decimal digits kept by divisions
}

// NewLedger creates an empty ledger. prec is the number of decimal digits
// kept when dividing (weighted averages, derived rates); values below
// DefaultPrecision are raised to it.
func NewLedger(prec int32) *Ledger {
	if prec < DefaultPrecision {
		prec = DefaultPrecision
	}
	return &Ledger{
		positions: make(map[string]*Position),
		prec:      prec,
	}
}

// position returns the Position for the asset, creating a zero one on first
// reference.
func (l *Ledger) position(asset string) *Position {
	p, ok := l.positions[asset]
	if !ok {
		p = &Position{Asset: asset, AverageCost: M(0, "JPY")}
		l.positions[asset] = p
		l.order = append(l.order, asset)
	}
	return p
}

// Position returns a copy of the current Position for the asset, zero if the
// asset was never touched.
func (l *Ledger) Position(asset string) Position {
	if p, ok := l.positions[asset]; ok {
		return *p
	}
	return Position{Asset: asset, AverageCost: M(0, "JPY")}
}

// Positions yields every Position ever touched, in first-touched order.
func (l *Ledger) Positions(yield func(Position) bool) {
	for _, asset := range l.order {
		if !yield(*l.positions[asset]) {
			return
		}
	}
}

// Accumulate applies an acquisition of delta units at the given unit rate:
// the average cost becomes the quantity-weighted mean of the prior cost and
// the incoming rate, and the quantity grows by delta.
//
// When the resulting quantity is zero the average is undefined; it resolves
// to zero by convention, matching a freshly reset position. There is no
// error case.
func (l *Ledger) Accumulate(asset string, delta Quantity, rate Money) Position {
	p := l.position(asset)
	total := p.Quantity.Add(delta)
	if total.IsZero() {
		p.AverageCost = M(0, "JPY")
	} else {
		basis := p.AverageCost.Mul(p.Quantity).Add(rate.Mul(delta))
		p.AverageCost = basis.DivRound(total, l.prec)
	}
	p.Quantity = total
	return *p
}

// Dispose applies a disposal of |delta| units (delta is negative) at the
// given unit rate and returns the realized profit
// (rate - averageCost) * |delta|. Selling does not change the average cost
// basis of the remaining units.
func (l *Ledger) Dispose(asset string, delta Quantity, rate Money) (Position, Money) {
	p := l.position(asset)
	p.Quantity = p.Quantity.Add(delta)
	profit := rate.Sub(p.AverageCost).Mul(delta.Abs())
	return *p, profit
}

// SendWithFee applies an outbound transfer: both the sent units (delta is
// negative) and the fee reduce the held quantity. The fee is a forced
// disposal at the fetched closing rate, so the realized profit is
// -fee * rate. The average cost is unchanged.
func (l *Ledger) SendWithFee(asset string, delta, fee Quantity, rate Money) (Position, Money) {
	p := l.position(asset)
	p.Quantity = p.Quantity.Add(delta).Sub(fee)
	profit := rate.Mul(fee).Neg()
	return *p, profit
}

// DepositAt applies an inbound transfer valued at the fetched closing rate:
// the weighted average is recomputed exactly as in Accumulate, and the
// income rate * delta is reported alongside. The income is informational; it
// is not a disposal profit.
func (l *Ledger) DepositAt(asset string, delta Quantity, rate Money) (Position, Money) {
	income := rate.Mul(delta)
	return l.Accumulate(asset, delta, rate), income
}
