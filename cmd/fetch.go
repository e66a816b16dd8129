package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
	ccpl "github.com/yoheiMune/cc-pl"
	"github.com/yoheiMune/cc-pl/coincheck"
)

type fetchCmd struct {
	date     string
	currency string
}

func (*fetchCmd) Name() string     { return "fetch" }
func (*fetchCmd) Synopsis() string { return "fetch a closing price from Coincheck" }
func (*fetchCmd) Usage() string {
	return `cc-pl fetch -date <date> -currency <symbol>

Fetches the Coincheck closing price used to value exchanges, sends and
deposits on that day. Responses are cached on disk, so repeating a fetch
does not hit the exchange again.

Usage Examples:
$ cc-pl fetch -date 2017-09-05 -currency BTC

`
}

func (c *fetchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "date", ccpl.Today().String(), "Day of the closing price (YYYY-MM-DD).")
	f.StringVar(&c.currency, "currency", "BTC", "Currency symbol to price.")
}

func (c *fetchCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	day, err := ccpl.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid -date %q: %v\n", c.date, err)
		return subcommands.ExitUsageError
	}

	price, err := coincheck.NewClient().ClosingPrice(day, c.currency)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("%s %s = %s\n", day, strings.ToUpper(c.currency), price)
	return subcommands.ExitSuccess
}
