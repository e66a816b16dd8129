// Command cc-pl computes the profit and loss of a Coincheck account.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
	"github.com/yoheiMune/cc-pl/cmd"
)

func main() {
	// Shell completion: this exits early when invoked by the shell's
	// completion machinery, and is a no-op otherwise.
	completion().Complete("cc-pl")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))

	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	for _, c := range cmd.Commands {
		commander.Register(c, "")
	}

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

func completion() *complete.Command {
	csvFiles := map[string]complete.Predictor{
		"orders":      predict.Files("*.csv"),
		"buys":        predict.Files("*.csv"),
		"sells":       predict.Files("*.csv"),
		"sends":       predict.Files("*.csv"),
		"deposits":    predict.Files("*.csv"),
		"adjustments": predict.Files("*.jsonl"),
		"end":         predict.Something,
	}
	return &complete.Command{
		Sub: map[string]*complete.Command{
			"report":   {Flags: csvFiles},
			"balances": {Flags: csvFiles},
			"export":   {Flags: csvFiles},
			"fetch": {Flags: map[string]complete.Predictor{
				"date":     predict.Something,
				"currency": predict.Set{"BTC", "ETH", "XEM", "XRP", "LTC", "BCH"},
			}},
			"topic":  {Args: predict.Set{"readme", "report", "exports", "prices", "adjustments"}},
			"assist": {},
		},
	}
}
