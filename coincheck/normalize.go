package coincheck

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	ccpl "github.com/yoheiMune/cc-pl"
)

// This file normalizes the five CSV exports of a Coincheck account into
// canonical events. Normalization establishes the sign convention (positive
// quantity increases the held asset), derives unit rates where the export
// only carries totals, and classifies buys/sells settled in another crypto
// as exchanges.

// reportingCurrency is the fiat leg every rate and gross value is priced in.
const reportingCurrency = "JPY"

// table reads a whole CSV export and indexes its columns by header name.
type table struct {
	name    string
	headers map[string]int
	records [][]string
}

// readTable parses a CSV export. The first line is the header.
func readTable(name string, r io.Reader) (*table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("cannot parse %s export: %w", name, err)
	}
	if len(records) == 0 {
		return &table{name: name, headers: map[string]int{}}, nil
	}
	headers := make(map[string]int, len(records[0]))
	for i, h := range records[0] {
		headers[strings.TrimSpace(h)] = i
	}
	return &table{name: name, headers: headers, records: records[1:]}, nil
}

// field returns the named column of a record, failing with the row number
// when the export does not carry the column.
func (t *table) field(row int, record []string, name string) (string, error) {
	i, ok := t.headers[name]
	if !ok || i >= len(record) {
		return "", fmt.Errorf("%s export row %d: missing column %q", t.name, row+2, name)
	}
	return strings.TrimSpace(record[i]), nil
}

// quantity parses the named column as an exact decimal.
func (t *table) quantity(row int, record []string, name string) (ccpl.Quantity, error) {
	s, err := t.field(row, record, name)
	if err != nil {
		return ccpl.Quantity{}, err
	}
	q, err := ccpl.ParseQuantity(s)
	if err != nil {
		return ccpl.Quantity{}, fmt.Errorf("%s export row %d: column %q is not a number: %w", t.name, row+2, name, err)
	}
	return q, nil
}

// date parses the named column as a day, dropping any time of day.
func (t *table) date(row int, record []string, name string) (ccpl.Date, error) {
	s, err := t.field(row, record, name)
	if err != nil {
		return ccpl.Date{}, err
	}
	day, err := ccpl.ParseDate(s)
	if err != nil {
		return ccpl.Date{}, fmt.Errorf("%s export row %d: %w", t.name, row+2, err)
	}
	return day, nil
}

// ReadOrders normalizes the complete trade history export (btc_jpy pair).
// Columns: Date, Type, BTC, Rate, JPY. The BTC column is signed in the
// export; the Type column is authoritative for the side.
func ReadOrders(r io.Reader) ([]ccpl.Event, error) {
	t, err := readTable("orders", r)
	if err != nil {
		return nil, err
	}
	var events []ccpl.Event
	for row, record := range t.records {
		day, err := t.date(row, record, "Date")
		if err != nil {
			return nil, err
		}
		side, err := t.field(row, record, "Type")
		if err != nil {
			return nil, err
		}
		quantity, err := t.quantity(row, record, "BTC")
		if err != nil {
			return nil, err
		}
		rate, err := t.quantity(row, record, "Rate")
		if err != nil {
			return nil, err
		}
		gross, err := t.quantity(row, record, "JPY")
		if err != nil {
			return nil, err
		}
		if side == "sell" && quantity.IsPositive() {
			quantity = quantity.Neg()
		}
		events = append(events, ccpl.NewTrade(day, "BTC", quantity,
			ccpl.M(rate.Decimal(), reportingCurrency),
			ccpl.M(gross.Abs().Decimal(), reportingCurrency)))
	}
	return events, nil
}

// ReadBuys normalizes the purchase history export. Columns: Time, Amount,
// Price, Trading Currency, Original Currency, Progress. Rows whose progress
// is not "completed" are skipped. A purchase settled in JPY is a Buy; one
// settled in another crypto is an Exchange disposing of the original
// currency.
func ReadBuys(r io.Reader) ([]ccpl.Event, error) {
	t, err := readTable("buys", r)
	if err != nil {
		return nil, err
	}
	var events []ccpl.Event
	for row, record := range t.records {
		progress, err := t.field(row, record, "Progress")
		if err != nil {
			return nil, err
		}
		if progress != "completed" {
			continue
		}
		day, err := t.date(row, record, "Time")
		if err != nil {
			return nil, err
		}
		amount, err := t.quantity(row, record, "Amount")
		if err != nil {
			return nil, err
		}
		price, err := t.quantity(row, record, "Price")
		if err != nil {
			return nil, err
		}
		asset, err := t.field(row, record, "Trading Currency")
		if err != nil {
			return nil, err
		}
		original, err := t.field(row, record, "Original Currency")
		if err != nil {
			return nil, err
		}

		if original == reportingCurrency {
			gross := ccpl.M(price.Decimal(), reportingCurrency)
			rate := gross.DivRound(amount, ccpl.DefaultPrecision)
			events = append(events, ccpl.NewBuy(day, asset, amount, rate, gross))
		} else {
			events = append(events, ccpl.NewExchange(day, asset, original, amount, price, ccpl.KindBuy))
		}
	}
	return events, nil
}

// ReadSells normalizes the sale history export. Columns are the same as the
// buys export; the Amount is positive there and becomes a negative quantity.
// A sale settled in JPY is a Sell; one settled in another crypto is an
// Exchange acquiring the original currency. The classification reads the
// row's own original-currency field.
func ReadSells(r io.Reader) ([]ccpl.Event, error) {
	t, err := readTable("sells", r)
	if err != nil {
		return nil, err
	}
	var events []ccpl.Event
	for row, record := range t.records {
		progress, err := t.field(row, record, "Progress")
		if err != nil {
			return nil, err
		}
		if progress != "completed" {
			continue
		}
		day, err := t.date(row, record, "Time")
		if err != nil {
			return nil, err
		}
		amount, err := t.quantity(row, record, "Amount")
		if err != nil {
			return nil, err
		}
		price, err := t.quantity(row, record, "Price")
		if err != nil {
			return nil, err
		}
		asset, err := t.field(row, record, "Trading Currency")
		if err != nil {
			return nil, err
		}
		original, err := t.field(row, record, "Original Currency")
		if err != nil {
			return nil, err
		}

		if original == reportingCurrency {
			gross := ccpl.M(price.Decimal(), reportingCurrency)
			rate := gross.DivRound(amount, ccpl.DefaultPrecision)
			events = append(events, ccpl.NewSell(day, asset, amount.Neg(), rate, gross))
		} else {
			// Disposes the sold asset, acquires the settlement crypto.
			events = append(events, ccpl.NewExchange(day, original, asset, price, amount, ccpl.KindSell))
		}
	}
	return events, nil
}

// ReadSends normalizes the outbound transfer export. Columns: Date, Amount,
// Fee, Currency, Status. Rows whose status is not "confirmed" are skipped.
func ReadSends(r io.Reader) ([]ccpl.Event, error) {
	t, err := readTable("sends", r)
	if err != nil {
		return nil, err
	}
	var events []ccpl.Event
	for row, record := range t.records {
		status, err := t.field(row, record, "Status")
		if err != nil {
			return nil, err
		}
		if status != "confirmed" {
			continue
		}
		day, err := t.date(row, record, "Date")
		if err != nil {
			return nil, err
		}
		amount, err := t.quantity(row, record, "Amount")
		if err != nil {
			return nil, err
		}
		fee, err := t.quantity(row, record, "Fee")
		if err != nil {
			return nil, err
		}
		asset, err := t.field(row, record, "Currency")
		if err != nil {
			return nil, err
		}
		events = append(events, ccpl.NewSend(day, asset, amount.Neg(), fee))
	}
	return events, nil
}

// ReadDeposits normalizes the inbound transfer export. Columns: Date,
// Amount, Currency, Status. Rows whose status is not "confirmed" are
// skipped.
func ReadDeposits(r io.Reader) ([]ccpl.Event, error) {
	t, err := readTable("deposits", r)
	if err != nil {
		return nil, err
	}
	var events []ccpl.Event
	for row, record := range t.records {
		status, err := t.field(row, record, "Status")
		if err != nil {
			return nil, err
		}
		if status != "confirmed" {
			continue
		}
		day, err := t.date(row, record, "Date")
		if err != nil {
			return nil, err
		}
		amount, err := t.quantity(row, record, "Amount")
		if err != nil {
			return nil, err
		}
		asset, err := t.field(row, record, "Currency")
		if err != nil {
			return nil, err
		}
		events = append(events, ccpl.NewDeposit(day, asset, amount))
	}
	return events, nil
}
