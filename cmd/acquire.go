package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/taxlot"
	"github.com/google/subcommands"
)

type acquireCmd struct {
	date     string
	id       string
	venue    string
	quantity float64
	price    float64
	amount   float64
	currency string
	memo     string
}

func (*acquireCmd) Name() string     { return "acquire" }
func (*acquireCmd) Synopsis() string { return "record an asset acquisition in the journal" }
func (*acquireCmd) Usage() string {
	return `tlt acquire -q <quantity> [-a <amount> | -p <price>] [-d <date>] [-id <id>] [-venue <venue>] [-m <memo>]

  Records an acquisition in the journal. Processing the journal later turns
  it into a new acquisition lot with a cost basis of the amount paid.
`
}

func (c *acquireCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", taxlot.Today().String(), "Acquisition date (YYYY-MM-DD)")
	f.StringVar(&c.id, "id", "", "Transaction identifier")
	f.StringVar(&c.venue, "venue", "", "Exchange or venue of the acquisition")
	f.Float64Var(&c.quantity, "q", 0, "Quantity acquired")
	f.Float64Var(&c.price, "p", 0, "Unit price paid")
	f.Float64Var(&c.amount, "a", 0, "Total amount paid, overrides -p when both are given")
	f.StringVar(&c.currency, "c", "USD", "Settlement currency of the amount and price")
	f.StringVar(&c.memo, "m", "", "An optional rationale or note for the transaction")
}

func (c *acquireCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.quantity <= 0 || (c.amount <= 0 && c.price <= 0) {
		f.Usage()
		return subcommands.ExitUsageError
	}
	day, err := taxlot.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	tx := taxlot.Transaction{
		Type:     "Buy",
		On:       day,
		ID:       c.id,
		Venue:    c.venue,
		Quantity: taxlot.Q(c.quantity),
		Notes:    c.memo,
	}
	if c.amount > 0 {
		tx.Amount = taxlot.M(c.amount, c.currency)
	}
	if c.price > 0 {
		tx.Price = taxlot.M(c.price, c.currency)
	}

	tx, err = tx.Validate()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	return EncodeTransaction(tx)
}
