package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/subcommands"

	"github.com/alphafund/alphafund"
)

type importCmd struct {
	file string
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "import trades from a CSV spreadsheet export" }
func (*importCmd) Usage() string {
	return `afv import [-f <file>]

  Imports trade rows from a CSV spreadsheet export and appends them to
  the trade book. Reads stdin when no file is given.

  Expected header: Ticker,Quantity,Asset,Purchased,Sold,Leverage,Short
  (Asset, Sold, Leverage and Short are optional; a BUY/SELL column is
  accepted as an alias for Short.)
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "f", "", "CSV file to import, stdin when empty")
}

func (c *importCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, err := asOf()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitUsageError
	}

	var r io.Reader = os.Stdin
	if c.file != "" {
		file, err := os.Open(c.file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening %q: %v\n", c.file, err)
			return subcommands.ExitFailure
		}
		defer file.Close()
		r = file
	}

	trades, err := alphafund.ImportTrades(r, on)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error importing trades:", err)
		return subcommands.ExitFailure
	}

	for _, t := range trades {
		if err := AppendTrade(t); err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return subcommands.ExitFailure
		}
	}
	fmt.Printf("Imported %d trades into %s\n", len(trades), *bookFile)
	return subcommands.ExitSuccess
}
