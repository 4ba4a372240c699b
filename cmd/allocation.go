package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/alphafund/alphafund/renderer"
)

type allocationCmd struct{}

func (*allocationCmd) Name() string     { return "allocation" }
func (*allocationCmd) Synopsis() string { return "display the allocation breakdown" }
func (*allocationCmd) Usage() string {
	return `afv allocation

  Displays how the portfolio's most recent settled value splits across
  assets and cash, with weights.
`
}

func (*allocationCmd) SetFlags(*flag.FlagSet) {}

func (c *allocationCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	p, err := LoadPortfolio()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading portfolio: %v\n", err)
		return subcommands.ExitFailure
	}

	a, err := p.Allocation(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing allocation: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.RenderAllocation(renderer.NewAllocation(*bookFile, a)))
	return subcommands.ExitSuccess
}
