package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/taxlot/renderer"
	"github.com/google/subcommands"
)

type checkCmd struct{}

func (*checkCmd) Name() string     { return "check" }
func (*checkCmd) Synopsis() string { return "check the lots file for inconsistencies" }
func (*checkCmd) Usage() string {
	return `tlt check

  Checks every lot in the lots file: negative remaining quantities,
  remainders above the original quantity, non-positive cost basis, missing
  purchase dates. Hand-edited files earn their mistakes a diagnostic here
  rather than a wrong tax report later.
`
}

func (*checkCmd) SetFlags(f *flag.FlagSet) {}

func (c *checkCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := DecodeLots()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	issues := ledger.Validate()
	printMarkdown(renderer.IssuesMarkdown(issues))

	if len(issues) > 0 {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
