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

type optimizeCmd struct {
	periodFlags
	priceFlags
}

func (*optimizeCmd) Name() string     { return "optimize" }
func (*optimizeCmd) Synopsis() string { return "heuristic suggestions to lower the tax bill" }
func (*optimizeCmd) Usage() string {
	return `tlt optimize (-price <price> | -quote <file>) [-year <year>] [-strategy <strategy>]

  Processes the tax year and suggests optimizations over the remaining lots
  at the given reference price: tax-loss harvesting candidates, lots close
  to long-term treatment, and strategy alternatives. Suggestions are
  heuristics, not tax advice.
`
}

func (c *optimizeCmd) SetFlags(f *flag.FlagSet) {
	c.periodFlags.SetFlags(f)
	c.priceFlags.SetFlags(f)
}

func (c *optimizeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	price, err := c.Resolve()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	if price.IsZero() {
		fmt.Fprintln(os.Stderr, "Error: a reference price is required, give -price or -quote.")
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

	printMarkdown(renderer.SuggestionsMarkdown(calc.SuggestOptimizations(price)))

	return subcommands.ExitSuccess
}
