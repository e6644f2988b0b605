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

type processCmd struct {
	periodFlags
	save bool
}

func (*processCmd) Name() string { return "process" }
func (*processCmd) Synopsis() string {
	return "replay the journal and the disposal requests over a tax year"
}
func (*processCmd) Usage() string {
	return `tlt process [-year <year>] [-strategy <strategy>] [-threshold <days>] [-save]

  Builds the acquisition lots from the journal transactions of the tax year,
  replays the recorded disposal requests against them, and reports every
  error and warning collected on the way. With -save, the resulting lots
  replace the lots file.
`
}

func (p *processCmd) SetFlags(f *flag.FlagSet) {
	p.periodFlags.SetFlags(f)
	f.BoolVar(&p.save, "save", false, "Write the resulting lots to the lots file")
}

func (p *processCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := p.Config()
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

	printMarkdown(renderer.ResultMarkdown(result))

	if p.save {
		if err := EncodeLots(calc.Ledger()); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		fmt.Printf("Successfully saved lots to %s\n", *lotsFile)
	}

	if !result.IsValid {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
