// Package renderer formats a processing run as markdown. It is a pure
// presentation layer: all figures are computed by the ccpl core.
package renderer

import (
	"fmt"
	"strings"

	ccpl "github.com/yoheiMune/cc-pl"
)

// ReportMarkdown renders the full run: one row per processed event followed
// by the ending balances.
func ReportMarkdown(report *ccpl.Report) string {
	r := &reportRenderer{Builder: &strings.Builder{}}
	r.renderRows(report.Rows)
	r.Printf("\n")
	r.renderBalances(report.Balances())
	return r.String()
}

// BalancesMarkdown renders only the ending balances.
func BalancesMarkdown(report *ccpl.Report) string {
	r := &reportRenderer{Builder: &strings.Builder{}}
	r.renderBalances(report.Balances())
	return r.String()
}

// reportRenderer formats the output into a markdown string.
type reportRenderer struct {
	*strings.Builder
}

// Printf formats according to a format specifier and writes to the renderer's buffer.
func (r *reportRenderer) Printf(format string, args ...any) {
	fmt.Fprintf(r, format, args...)
}

func (r *reportRenderer) renderRows(rows []ccpl.Row) {
	r.Printf("## Transactions\n\n")
	r.Printf("| order | currency | type | date | amount | price | profit |\n")
	r.Printf("|:---|:---|:---|:---|---:|---:|---:|\n")
	for _, row := range rows {
		r.Printf("| %s | %s | %s | %s | %s | %s | %s |\n",
			row.Label, row.Asset, row.Action, row.Date,
			row.Quantity, price(row.AverageCost), profit(row))
	}
}

func (r *reportRenderer) renderBalances(balances []ccpl.Balance) {
	r.Printf("## Ending Balances\n\n")
	r.Printf("| currency | amount | price |\n")
	r.Printf("|:---|---:|---:|\n")
	for _, b := range balances {
		// balances keep the full stored precision
		r.Printf("| %s | %s | %s |\n", b.Asset, b.Quantity, b.AverageCost.Decimal())
	}
}

// price truncates the average cost to whole yen; stored state keeps the full
// digits, only the display is truncated.
func price(m ccpl.Money) string {
	return m.Truncate().Decimal().String()
}

// profit renders the profit column: empty for pure accumulation rows,
// truncated to whole yen for disposals, full precision for the
// informational deposit income.
func profit(row ccpl.Row) string {
	if row.Profit == nil {
		return ""
	}
	if row.Action == ccpl.ActionDeposit {
		return row.Profit.Decimal().String()
	}
	return row.Profit.Truncate().Decimal().String()
}
