package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/alphafund/alphafund/renderer"
)

type historyCmd struct{}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "display the daily valuation history" }
func (*historyCmd) Usage() string {
	return `afv history

  Displays the portfolio's daily valuation table: one column per asset,
  one for cash, the total, and the cumulative return, one row per
  calendar day.
`
}

func (*historyCmd) SetFlags(*flag.FlagSet) {}

func (c *historyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	p, err := LoadPortfolio()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading portfolio: %v\n", err)
		return subcommands.ExitFailure
	}

	table, err := p.Valuation(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error valuing portfolio: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.RenderHistory(
		renderer.NewHistory(*bookFile, table, p.InitialCash().Currency())))
	return subcommands.ExitSuccess
}
