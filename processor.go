package ccpl

import "fmt"

// Actions of a report row, the "type" column.
const (
	ActionBuy     = "buy"
	ActionSell    = "sell"
	ActionSend    = "send"
	ActionDeposit = "deposit"
)

// Processor replays a chronologically ordered event stream through a
// Ledger, one event at a time. Each event's processing, including any
// closing-price lookup, completes before the next event is touched: later
// weighted averages depend on the position left by earlier events.
type Processor struct {
	Ledger *Ledger
	Oracle PriceOracle
	// End is an exclusive upper bound on event dates: events on or after it
	// are excluded from processing. The zero Date means no bound.
	End Date
}

// NewProcessor creates a Processor over a fresh ledger with the default
// division precision.
func NewProcessor(oracle PriceOracle) *Processor {
	return &Processor{Ledger: NewLedger(DefaultPrecision), Oracle: oracle}
}

// Process replays the events in order and returns the assembled report.
// Events must already be sorted (see SortEvents); the Processor does not
// reorder them.
//
// On the first failure (malformed event or unavailable price) processing
// halts and the error identifies the offending event. The returned report
// holds the rows emitted before the failure; the ledger state up to that
// point is sound.
func (p *Processor) Process(events []Event) (*Report, error) {
	report := newReport(p.Ledger)
	for _, e := range events {
		if !p.End.IsZero() && !e.When().Before(p.End) {
			continue
		}
		if err := e.Validate(); err != nil {
			return report, fmt.Errorf("invalid %s event on %s (%s): %w", e.What(), e.When(), e.Asset(), err)
		}
		if err := p.process(e, report); err != nil {
			return report, err
		}
	}
	return report, nil
}

// process dispatches one event to the ledger mutation matching its kind and
// appends the resulting row(s) to the report.
func (p *Processor) process(e Event, report *Report) error {
	switch v := e.(type) {
	case Trade:
		if v.Quantity.IsPositive() {
			pos := p.Ledger.Accumulate(v.Asset(), v.Quantity, v.Rate)
			report.append(accumulationRow("trade", ActionBuy, v.When(), pos))
		} else {
			pos, profit := p.Ledger.Dispose(v.Asset(), v.Quantity, v.Rate)
			report.append(disposalRow("trade", ActionSell, v.When(), pos, profit))
		}

	case Buy:
		pos := p.Ledger.Accumulate(v.Asset(), v.Quantity, v.Rate)
		report.append(accumulationRow("buy", ActionBuy, v.When(), pos))

	case Sell:
		pos, profit := p.Ledger.Dispose(v.Asset(), v.Quantity, v.Rate)
		report.append(disposalRow("sell", ActionSell, v.When(), pos, profit))

	case Exchange:
		// The disposed leg is a sell of the From asset at its closing price,
		// the acquired leg a buy of the asset at the JPY-equivalent value of
		// what was given up, divided by the units received.
		rate, err := p.fetch(v, v.From)
		if err != nil {
			return err
		}
		label := string(v.Origin) + "(exchange)"
		pos, profit := p.Ledger.Dispose(v.From, v.FromQuantity.Neg(), rate)
		report.append(disposalRow(label, ActionSell, v.When(), pos, profit))

		derived := rate.Mul(v.FromQuantity).DivRound(v.Quantity, p.Ledger.prec)
		pos = p.Ledger.Accumulate(v.Asset(), v.Quantity, derived)
		report.append(accumulationRow(label, ActionBuy, v.When(), pos))

	case Send:
		rate, err := p.fetch(v, v.Asset())
		if err != nil {
			return err
		}
		pos, profit := p.Ledger.SendWithFee(v.Asset(), v.Quantity, v.Fee, rate)
		report.append(disposalRow("send", ActionSend, v.When(), pos, profit))

	case Deposit:
		rate, err := p.fetch(v, v.Asset())
		if err != nil {
			return err
		}
		pos, income := p.Ledger.DepositAt(v.Asset(), v.Quantity, rate)
		report.append(disposalRow("deposit", ActionDeposit, v.When(), pos, income))

	default:
		return fmt.Errorf("unsupported event kind %q on %s", e.What(), e.When())
	}
	return nil
}

// fetch looks up the closing price required by the event, decorating a
// failure with the event identity.
func (p *Processor) fetch(e Event, asset string) (Money, error) {
	rate, err := p.Oracle.ClosingPrice(e.When(), asset)
	if err != nil {
		return Money{}, fmt.Errorf("cannot price %s event on %s (%s): %w", e.What(), e.When(), asset, err)
	}
	return rate, nil
}
