package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"

	"github.com/alphafund/alphafund"
)

type addCmd struct {
	ticker    string
	quantity  string
	asset     string
	purchased string
	sold      string
	leverage  float64
	short     bool
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "append a trade to the trade book" }
func (*addCmd) Usage() string {
	return `afv add -t <ticker> -q <quantity> -p <purchased> [-a <asset>] [-s <sold>] [-l <leverage>] [-short]

  Validates a trade and appends it to the trade book.

Usage Examples:
# Buy 10 Apple shares on March 4th.
$ afv add -t AAPL.US -q 10 -p 2024-03-04

# A closed, 2x leveraged short on NVIDIA.
$ afv add -t NVDA.US -q 5 -p 2024-03-04 -s 2024-03-20 -l 2 -short
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ticker, "t", "", "market data ticker, e.g. AAPL.US")
	f.StringVar(&c.quantity, "q", "", "quantity of units purchased")
	f.StringVar(&c.asset, "a", "equity", "asset type: equity, forex or crypto")
	f.StringVar(&c.purchased, "p", "", "purchase date (YYYY-MM-DD)")
	f.StringVar(&c.sold, "s", "", "sale date (YYYY-MM-DD), empty for a still open position")
	f.Float64Var(&c.leverage, "l", 1, "leverage multiplier")
	f.BoolVar(&c.short, "short", false, "short position")
}

func (c *addCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, err := asOf()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitUsageError
	}

	quantity, err := decimal.NewFromString(c.quantity)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid quantity %q: %v\n", c.quantity, err)
		return subcommands.ExitUsageError
	}
	asset, err := alphafund.ParseAssetType(c.asset)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitUsageError
	}

	t, err := alphafund.NewTrade(c.ticker, quantity, asset, c.purchased, c.sold, c.leverage, c.short, on)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitUsageError
	}

	if err := AppendTrade(t); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Appended %s trade to %s\n", t.Ticker, *bookFile)
	return subcommands.ExitSuccess
}
