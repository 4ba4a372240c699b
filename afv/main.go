// Command afv values a trade book: it reconstructs the daily valuation
// of a portfolio of leveraged long/short positions from market data.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/joho/godotenv"
	"github.com/posener/complete/v2"

	"github.com/alphafund/alphafund/cmd"
)

// completion describes the command tree for shell completion. It must
// stay in sync with cmd.Register.
var completion = &complete.Command{
	Sub: map[string]*complete.Command{
		"value":      {},
		"history":    {},
		"allocation": {},
		"add":        {},
		"import":     {},
		"update":     {},
		"quote":      {},
		"search":     {Flags: map[string]complete.Predictor{"mic": nil}},
		"topic":      {},
		"assist":     {},
	},
	Flags: map[string]complete.Predictor{
		"book":     nil,
		"cash":     nil,
		"currency": nil,
		"as-of":    nil,
		"v":        nil,
	},
}

func main() {
	// Shell completion: a no-op unless invoked by the completion hooks.
	completion.Complete("afv")

	// Local .env holds the EODHD_API_KEY and Gemini credentials.
	godotenv.Load()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "help")
	commander.Register(commander.FlagsCommand(), "help")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
