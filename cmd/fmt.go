package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/etnz/taxlot"
	"github.com/google/subcommands"
)

type fmtCmd struct {
	outputFile string
}

func (*fmtCmd) Name() string { return "fmt" }
func (*fmtCmd) Synopsis() string {
	return "validates and formats the journal file into a canonical form"
}
func (*fmtCmd) Usage() string {
	return `tlt fmt [-o <file>]

  Validates and formats the journal file. This command reads all
  transactions, validates them, applies available quick fixes (like deriving
  a missing amount from the price), sorts them by date, and writes them back
  in a canonical JSONL format. By default it rewrites the journal in place;
  use -o to write elsewhere, or "-o -" for stdout.
`
}

func (p *fmtCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.outputFile, "o", "", "Output file. Defaults to the journal file itself, \"-\" means stdout.")
}

func (p *fmtCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	journal, err := DecodeJournal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error decoding journal: %v\n", err)
		return subcommands.ExitFailure
	}

	formatted, err := journal.Fmt()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting journal: %v\n", err)
		return subcommands.ExitFailure
	}

	var w io.Writer
	switch p.outputFile {
	case "-":
		w = os.Stdout
	case "":
		p.outputFile = *journalFile
		fallthrough
	default:
		out, err := os.OpenFile(p.outputFile, os.O_WRONLY|os.O_TRUNC|os.O_CREATE, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening %q for writing: %v\n", p.outputFile, err)
			return subcommands.ExitFailure
		}
		defer out.Close()
		w = out
	}

	if err := taxlot.EncodeJournal(w, formatted); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding journal: %v\n", err)
		return subcommands.ExitFailure
	}

	if p.outputFile != "-" {
		fmt.Printf("Journal file %q has been formatted.\n", p.outputFile)
	}
	return subcommands.ExitSuccess
}
