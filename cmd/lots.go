package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/taxlot/renderer"
	"github.com/google/subcommands"
)

// lotsCmd holds the flags for the 'lots' subcommand.
type lotsCmd struct {
	priceFlags
	all bool
}

func (*lotsCmd) Name() string     { return "lots" }
func (*lotsCmd) Synopsis() string { return "display the acquisition lots from the lots file" }
func (*lotsCmd) Usage() string {
	return `tlt lots [-price <price> | -quote <file>] [-all]

  Displays the lots with remaining quantity from the lots file. A reference
  price adds their market value and unrealized gain. With -all, fully
  consumed lots are shown too.
`
}

func (c *lotsCmd) SetFlags(f *flag.FlagSet) {
	c.priceFlags.SetFlags(f)
	f.BoolVar(&c.all, "all", false, "Show fully consumed lots as well")
}

func (c *lotsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := DecodeLots()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	price, err := c.Resolve()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	lots := ledger.RemainingLots()
	if c.all {
		lots = ledger.Lots()
	}
	printMarkdown(renderer.LotsMarkdown(lots, price))

	return subcommands.ExitSuccess
}
