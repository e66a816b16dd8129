package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
	ccpl "github.com/yoheiMune/cc-pl"
	"github.com/yoheiMune/cc-pl/agent"
	"github.com/yoheiMune/cc-pl/renderer"
	"google.golang.org/genai"
)

type assistCmd struct{}

func (*assistCmd) Name() string { return "assist" }
func (*assistCmd) Synopsis() string {
	return "start an interactive session with the AI assistant"
}
func (*assistCmd) Usage() string {
	return `cc-pl assist [question]

Start an interactive session with the AI assistant. It answers questions
about the computed profit and loss, using the same figures as the report
command. Requires Gemini credentials in the environment.
`
}

func (*assistCmd) SetFlags(_ *flag.FlagSet) {}

func (c *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	initialPrompt := ""
	if f.NArg() > 0 {
		initialPrompt = strings.Join(f.Args(), " ")
	}

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}

	accountant := agent.NewAccountant(
		func() (string, error) { return render(renderer.ReportMarkdown) },
		func() (string, error) { return render(renderer.BalancesMarkdown) },
	)
	a := agent.New(os.Stdout, os.Stdin, accountant)

	if err := a.Run(ctx, client, initialPrompt); err != nil {
		fmt.Fprintln(os.Stderr, "Agent failed:", err)
		return subcommands.ExitFailure
	}

	return subcommands.ExitSuccess
}

// render recomputes the report for the assistant's tools, so every answer
// reflects the current exports.
func render(markdown func(*ccpl.Report) string) (string, error) {
	events, err := LoadEvents()
	if err != nil {
		return "", fmt.Errorf("could not load events: %w", err)
	}
	p, err := NewProcessor()
	if err != nil {
		return "", err
	}
	report, err := p.Process(events)
	if err != nil {
		return "", err
	}
	return markdown(report), nil
}
