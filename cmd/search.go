package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
)

type searchCmd struct {
	mic string
}

func (*searchCmd) Name() string     { return "search" }
func (*searchCmd) Synopsis() string { return "search securities on EODHD" }
func (*searchCmd) Usage() string {
	return `afv search [-mic MIC] <query>

  Searches securities by free text (a company name or an ISIN) via the
  EODHD API and prints a ready-to-use 'afv add' command for each match.
  With -mic the results are restricted to the exchange operating under
  that MIC.
`
}

func (c *searchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.mic, "mic", "", "Restrict results to the exchange operating under this MIC (e.g. XNAS)")
}

func (c *searchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "a search term is required")
		return subcommands.ExitUsageError
	}
	query := strings.Join(f.Args(), " ")

	client := dataClient()
	results, err := client.Search(ctx, query)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error searching securities: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.mic != "" {
		// EODHD uses its own exchange codes, so the MIC must be
		// translated before it can be matched against the results.
		codes, err := client.MicToExchangeCode(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error listing exchanges: %v\n", err)
			return subcommands.ExitFailure
		}
		code, ok := codes[strings.ToUpper(c.mic)]
		if !ok {
			fmt.Fprintf(os.Stderr, "Error: unknown MIC %q\n", c.mic)
			return subcommands.ExitFailure
		}
		kept := results[:0]
		for _, r := range results {
			if r.Exchange == code {
				kept = append(kept, r)
			}
		}
		results = kept
	}

	if len(results) == 0 {
		fmt.Printf("No results for %q.\n", query)
		return subcommands.ExitSuccess
	}

	fmt.Printf("Found %d results for %q:\n\n", len(results), query)
	for _, r := range results {
		fmt.Printf("%s.%s\t%s (%s, %s)\n", r.Code, r.Exchange, r.Name, r.Type, r.Currency)
		if r.ISIN != "" {
			fmt.Printf("    ISIN: %s\n", r.ISIN)
		}
		fmt.Printf("    $ afv add -t %s.%s -a %s -q <quantity> -p <date>\n\n",
			r.Code, r.Exchange, assetFlag(r.Type))
	}
	return subcommands.ExitSuccess
}

// assetFlag maps an EODHD security type to the add command's -a value.
func assetFlag(securityType string) string {
	switch {
	case strings.Contains(securityType, "Currency"):
		return "fx"
	case strings.Contains(securityType, "Crypto"):
		return "crypto"
	default:
		return "equity"
	}
}
