package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/yoheiMune/cc-pl/renderer"
)

type reportCmd struct{}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "compute the profit and loss report" }
func (*reportCmd) Usage() string {
	return `cc-pl report [-end <date>]

Replays every event read from the Coincheck exports (and the adjustments
file, if any) and prints one row per transaction with the realized profit,
followed by the ending balances.

Usage Examples:
# Profit and loss of 2017.
$ cc-pl report -end 2018-01-01

`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {}

func (c *reportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
		// The report still holds every row processed before the failure,
		// which locates the problem.
		printMarkdown(renderer.ReportMarkdown(report))
		fmt.Fprintf(os.Stderr, "Error: processing stopped: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.ReportMarkdown(report))
	return subcommands.ExitSuccess
}
