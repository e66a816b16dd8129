package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/subcommands"
	ccpl "github.com/yoheiMune/cc-pl"
)

type exportCmd struct {
	outputFile string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export all events in the canonical JSONL format" }
func (*exportCmd) Usage() string {
	return `cc-pl export [-o <file>]

Reads the Coincheck exports and the adjustments file, normalizes everything
into the canonical event format, and writes it as JSONL, one event per
line, sorted by date. The output is suitable as an adjustments file.

Usage Examples:
# Archive the full history, independent of the CSV exports.
$ cc-pl export -o 2017.jsonl

`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.outputFile, "o", "", "Write to this file instead of stdout.")
}

func (c *exportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	events, err := LoadEvents()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not load events: %v\n", err)
		return subcommands.ExitFailure
	}

	var w io.Writer = os.Stdout
	if c.outputFile != "" {
		file, err := os.Create(c.outputFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: could not create %q: %v\n", c.outputFile, err)
			return subcommands.ExitFailure
		}
		defer file.Close()
		w = file
	}

	if err := ccpl.EncodeEvents(w, events); err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not write events: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.outputFile != "" {
		fmt.Printf("Successfully exported %d events to %s\n", len(events), c.outputFile)
	}
	return subcommands.ExitSuccess
}
