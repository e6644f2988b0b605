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

type simulateCmd struct {
	periodFlags
	date     string
	quantity float64
	price    float64
	currency string
}

func (*simulateCmd) Name() string     { return "simulate" }
func (*simulateCmd) Synopsis() string { return "compute what a disposal would realize, without recording it" }
func (*simulateCmd) Usage() string {
	return `tlt simulate -q <quantity> -p <price> [-d <date>] [-year <year>] [-strategy <strategy>]

  Processes the tax year, then consumes a hypothetical disposal on a copy of
  the resulting lots: which lots it would take, the cost basis, the gain and
  its holding period. Nothing is recorded.
`
}

func (c *simulateCmd) SetFlags(f *flag.FlagSet) {
	c.periodFlags.SetFlags(f)
	f.StringVar(&c.date, "d", taxlot.Today().String(), "Sale date of the simulated disposal (YYYY-MM-DD)")
	f.Float64Var(&c.quantity, "q", 0, "Quantity to dispose of")
	f.Float64Var(&c.price, "p", 0, "Unit sale price")
	f.StringVar(&c.currency, "c", "USD", "Currency of the sale price")
}

func (c *simulateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.quantity <= 0 || c.price <= 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	day, err := taxlot.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	cfg, err := c.Config()
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
	if result := calc.ProcessTransactions(journal.Transactions()); !result.IsValid {
		printMarkdown(renderer.ResultMarkdown(result))
		return subcommands.ExitFailure
	}

	disposal, err := calc.SimulateDisposal(taxlot.Q(c.quantity), taxlot.M(c.price, c.currency), day)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.DisposalMarkdown("Simulated Disposal", disposal, true))

	return subcommands.ExitSuccess
}
