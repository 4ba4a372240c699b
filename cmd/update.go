package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type updateCmd struct{}

func (*updateCmd) Name() string     { return "update" }
func (*updateCmd) Synopsis() string { return "refresh market data for every trade" }
func (*updateCmd) Usage() string {
	return `afv update

  Fetches market data for every trade in the book, warming the local
  daily cache and reporting tickers whose feed lags behind.
`
}

func (*updateCmd) SetFlags(*flag.FlagSet) {}

func (c *updateCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	p, err := LoadPortfolio()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading portfolio: %v\n", err)
		return subcommands.ExitFailure
	}

	positions, err := p.Positions(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching market data: %v\n", err)
		return subcommands.ExitFailure
	}

	lagging := 0
	for _, pos := range positions {
		if pos.Truncated() {
			lagging++
			last, _ := pos.Valuation().Latest()
			fmt.Printf("%s: data up to %s (lagging)\n", pos.Ticker(), last)
		}
	}
	fmt.Printf("Updated %d tickers, %d lagging\n", len(positions), lagging)
	return subcommands.ExitSuccess
}
