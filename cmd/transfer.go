package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/taxlot"
	"github.com/google/subcommands"
)

type transferCmd struct {
	date        string
	id          string
	quantity    float64
	destination string
	memo        string
}

func (*transferCmd) Name() string { return "transfer" }
func (*transferCmd) Synopsis() string {
	return "record a custody movement to one of your own wallets"
}
func (*transferCmd) Usage() string {
	return `tlt transfer -q <quantity> [-d <date>] [-dest <wallet>] [-id <id>] [-m <memo>]

  Records a withdrawal to self-custody in the journal. Moving assets between
  your own wallets is not a taxable event: processing skips it with a warning
  and no lot is consumed.
`
}

func (c *transferCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", taxlot.Today().String(), "Transfer date (YYYY-MM-DD)")
	f.StringVar(&c.id, "id", "", "Transaction identifier")
	f.Float64Var(&c.quantity, "q", 0, "Quantity moved")
	f.StringVar(&c.destination, "dest", "", "Destination wallet")
	f.StringVar(&c.memo, "m", "", "An optional rationale or note for the transaction")
}

func (c *transferCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.quantity <= 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	day, err := taxlot.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	tx := taxlot.Transaction{
		Type:        taxlot.TxWithdrawal,
		On:          day,
		ID:          c.id,
		Quantity:    taxlot.Q(c.quantity),
		SelfCustody: true,
		Destination: c.destination,
		Notes:       c.memo,
	}

	tx, err = tx.Validate()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	return EncodeTransaction(tx)
}
