package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/taxlot"
	"github.com/etnz/taxlot/renderer"
	"github.com/google/subcommands"
)

// reportCmd holds the flags for the 'report' subcommand.
type reportCmd struct {
	periodFlags
	priceFlags
	showLots      bool
	showFragments bool
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "tax report for a year, realized and unrealized gains" }
func (*reportCmd) Usage() string {
	return `tlt report [-year <year>] [-strategy <strategy>] [-price <price> | -quote <file>] [-lots] [-fragments]

  Processes the tax year and displays the realized gains, split between
  short-term and long-term. A reference price adds the unrealized gain of
  the remaining lots.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	c.periodFlags.SetFlags(f)
	c.priceFlags.SetFlags(f)
	f.BoolVar(&c.showLots, "lots", false, "Include the remaining lots in the report")
	f.BoolVar(&c.showFragments, "fragments", false, "Include the lot fragments consumed by each disposal")
}

func (c *reportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := c.Config()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	cfg.Display = taxlot.Display{ShowLots: c.showLots, ShowFragments: c.showFragments}

	price, err := c.Resolve()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	journal, err := DecodeJournal()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	calc := taxlot.NewCalculator(cfg)
	result := calc.ProcessTransactions(journal.Transactions())
	if !result.IsValid {
		printMarkdown(renderer.ResultMarkdown(result))
	}

	report := calc.Report(price)
	printMarkdown(renderer.ReportMarkdown(&report))

	return subcommands.ExitSuccess
}
