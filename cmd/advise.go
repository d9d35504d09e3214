package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/finvest"
	"github.com/google/subcommands"
)

type adviseCmd struct{}

func (*adviseCmd) Name() string     { return "advise" }
func (*adviseCmd) Synopsis() string { return "ask the AI advisor for a portfolio analysis" }
func (*adviseCmd) Usage() string {
	return `fv advise

  Send the portfolio to the AI advisor and print its written analysis.
  Requires GEMINI_API_KEY to be set.
`
}

func (*adviseCmd) SetFlags(_ *flag.FlagSet) {}

func (c *adviseCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	studio, _, err := newStudio()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	assets := newStore().Assets()
	printMarkdown(studio.Advise(ctx, assets, finvest.NewSummary(assets)))

	return subcommands.ExitSuccess
}
