// Package cmd implements the CLI application computing the profit and loss
// of a Coincheck account.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/subcommands"
	ccpl "github.com/yoheiMune/cc-pl"
	"github.com/yoheiMune/cc-pl/coincheck"
)

// Commands is the list of every subcommand. A main package registers them
// on a subcommands.Commander and executes the user-selected one.
var Commands = []subcommands.Command{
	&reportCmd{},
	&balancesCmd{},
	&exportCmd{},
	&fetchCmd{},
	&topicCmd{},
	&assistCmd{},
}

// As a CLI application it has a very short lived lifecycle, so it is ok to
// use global variables for the shared flags.

var (
	ordersFile      = flag.String("orders", downloads("orders.csv"), "Path to the complete trade history export")
	buysFile        = flag.String("buys", downloads("buys.csv"), "Path to the buy history export")
	sellsFile       = flag.String("sells", downloads("sells.csv"), "Path to the sell history export")
	sendsFile       = flag.String("sends", downloads("sends.csv"), "Path to the send history export")
	depositsFile    = flag.String("deposits", downloads("deposits.csv"), "Path to the deposit history export")
	adjustmentsFile = flag.String("adjustments", "", "Path to a JSONL file of manual adjustment events")
	endFlag         = flag.String("end", "", "Ignore events on or after this date (YYYY-MM-DD)")
)

// downloads returns the default location of a Coincheck export, the
// browser's download folder.
func downloads(name string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return name
	}
	return filepath.Join(home, "Downloads", name)
}

// LoadEvents reads every export whose file exists, merges the manual
// adjustments, and returns the events sorted chronologically. A missing
// export file is skipped; a missing adjustments file is an error since it
// was named explicitly.
func LoadEvents() ([]ccpl.Event, error) {
	readers := []struct {
		path string
		read func(io.Reader) ([]ccpl.Event, error)
	}{
		{*ordersFile, coincheck.ReadOrders},
		{*buysFile, coincheck.ReadBuys},
		{*sellsFile, coincheck.ReadSells},
		{*sendsFile, coincheck.ReadSends},
		{*depositsFile, coincheck.ReadDeposits},
	}

	var events []ccpl.Event
	for _, r := range readers {
		f, err := os.Open(r.path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}
		evs, err := r.read(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", r.path, err)
		}
		events = append(events, evs...)
	}

	if *adjustmentsFile != "" {
		f, err := os.Open(*adjustmentsFile)
		if err != nil {
			return nil, fmt.Errorf("cannot open adjustments file: %w", err)
		}
		evs, err := ccpl.DecodeEvents(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", *adjustmentsFile, err)
		}
		events = append(events, evs...)
	}

	ccpl.SortEvents(events)
	return events, nil
}

// NewProcessor builds a processor on the Coincheck price oracle, with the
// -end cutoff applied.
func NewProcessor() (*ccpl.Processor, error) {
	p := ccpl.NewProcessor(coincheck.NewClient())
	if *endFlag != "" {
		end, err := ccpl.ParseDate(*endFlag)
		if err != nil {
			return nil, fmt.Errorf("invalid -end date %q: %w", *endFlag, err)
		}
		p.End = end
	}
	return p, nil
}
