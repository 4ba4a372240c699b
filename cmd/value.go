package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/alphafund/alphafund/renderer"
)

type valueCmd struct{}

func (*valueCmd) Name() string     { return "value" }
func (*valueCmd) Synopsis() string { return "display the portfolio's current value" }
func (*valueCmd) Usage() string {
	return `afv value

  Displays the portfolio's most recent settled total value, its return
  since the first trade, and its liquidation value.
`
}

func (*valueCmd) SetFlags(*flag.FlagSet) {}

func (c *valueCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	liquidation, err := p.Liquidate(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing liquidation value: %v\n", err)
		return subcommands.ExitFailure
	}
	positions, err := p.Positions(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading positions: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.RenderSummary(
		renderer.NewSummary(*bookFile, table, p.InitialCash(), liquidation, positions)))
	return subcommands.ExitSuccess
}
