package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/alphafund/alphafund/eodhd"
)

type quoteCmd struct{}

func (*quoteCmd) Name() string     { return "quote" }
func (*quoteCmd) Synopsis() string { return "show the latest intraday price of a ticker" }
func (*quoteCmd) Usage() string {
	return `afv quote <ticker>...

  Shows the most recent intraday price for each given ticker. This is a
  monitoring convenience; valuations only ever use daily closes.
`
}

func (*quoteCmd) SetFlags(*flag.FlagSet) {}

func (c *quoteCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "at least one ticker is required")
		return subcommands.ExitUsageError
	}

	// The book tells the asset type of each ticker, so a bare "BTC"
	// resolves to the same symbol the valuation uses.
	trades, err := DecodeTradeBook()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading trade book: %v\n", err)
		return subcommands.ExitFailure
	}
	client := dataClient()
	source := eodhd.NewSource(client, trades)

	status := subcommands.ExitSuccess
	for _, ticker := range f.Args() {
		quote, err := client.Quote(ctx, source.Symbol(ticker))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error quoting %s: %v\n", ticker, err)
			status = subcommands.ExitFailure
			continue
		}
		fmt.Printf("%s\t%.4f\n", ticker, quote)
	}
	return status
}
