package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/yoheiMune/cc-pl/renderer"
)

type balancesCmd struct{}

func (*balancesCmd) Name() string     { return "balances" }
func (*balancesCmd) Synopsis() string { return "show the ending balance of every currency" }
func (*balancesCmd) Usage() string {
	return `cc-pl balances [-end <date>]

Replays every event and prints the ending position of each currency: the
quantity held and its weighted average acquisition cost.
`
}

func (c *balancesCmd) SetFlags(f *flag.FlagSet) {}

func (c *balancesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	events, err := LoadEvents()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not load events: %v\n", err)
		return subcommands.ExitFailure
	}

	p, err := NewProcessor()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitUsageError
	}

	report, err := p.Process(events)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: processing stopped: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.BalancesMarkdown(report))
	return subcommands.ExitSuccess
}
