package cmd

import (
	"context"
	"flag"
	"strings"

	"github.com/etnz/finvest"
	"github.com/etnz/finvest/renderer"
	"github.com/google/subcommands"
)

type summaryCmd struct{}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "print the portfolio summary and allocation" }
func (*summaryCmd) Usage() string {
	return `fv summary

  Print the portfolio summary, the allocation by asset type, and the
  per-asset figures of the example portfolio.
`
}

func (*summaryCmd) SetFlags(_ *flag.FlagSet) {}

func (c *summaryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	assets := newStore().Assets()

	doc := strings.Join([]string{
		renderer.SummaryMarkdown(finvest.NewSummary(assets)),
		renderer.AllocationMarkdown(finvest.Allocation(assets)),
		renderer.AssetsMarkdown(assets),
	}, "\n")
	printMarkdown(doc)

	return subcommands.ExitSuccess
}
