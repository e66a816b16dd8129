package ccpl

// Row is the report line emitted for one processed event. Exchange events
// emit two rows, one per leg, labeled with an "(exchange)" suffix.
//
// Quantity and AverageCost are the position values resulting from the event,
// not the event's own amounts; that is the shape of the reference report.
type Row struct {
	Label       string // the "order" column: trade, buy, sell(exchange), ...
	Asset       string
	Action      string // buy, sell, send or deposit
	Date        Date
	Quantity    Quantity // position quantity after the event
	AverageCost Money    // position average cost after the event
	// Profit is the realized profit or loss, nil for pure accumulation rows.
	// For deposit rows it holds the informational acquisition income.
	Profit *Money
}

// Balance is the ending state of one Position.
type Balance struct {
	Asset       string
	Quantity    Quantity
	AverageCost Money
}

// Report collects the ordered rows of a processing run plus the final
// per-asset balances. It performs no computation beyond aggregation.
type Report struct {
	Rows []Row

	ledger *Ledger
}

func newReport(ledger *Ledger) *Report {
	return &Report{ledger: ledger}
}

func (r *Report) append(row Row) {
	r.Rows = append(r.Rows, row)
}

// Balances returns the ending balance of every asset ever touched, in
// first-touched order.
func (r *Report) Balances() []Balance {
	var balances []Balance
	r.ledger.Positions(func(p Position) bool {
		balances = append(balances, Balance{
			Asset:       p.Asset,
			Quantity:    p.Quantity,
			AverageCost: p.AverageCost,
		})
		return true
	})
	return balances
}

func accumulationRow(label, action string, day Date, pos Position) Row {
	return Row{
		Label:       label,
		Asset:       pos.Asset,
		Action:      action,
		Date:        day,
		Quantity:    pos.Quantity,
		AverageCost: pos.AverageCost,
	}
}

func disposalRow(label, action string, day Date, pos Position, profit Money) Row {
	return Row{
		Label:       label,
		Asset:       pos.Asset,
		Action:      action,
		Date:        day,
		Quantity:    pos.Quantity,
		AverageCost: pos.AverageCost,
		Profit:      &profit,
	}
}
