package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/taxlot"
	"github.com/google/subcommands"
)

type disposeCmd struct {
	date     string
	quantity float64
	price    float64
	proceeds float64
	fee      float64
	currency string
	venue    string
	lots     string
	memo     string
}

func (*disposeCmd) Name() string     { return "dispose" }
func (*disposeCmd) Synopsis() string { return "record a disposal request" }
func (*disposeCmd) Usage() string {
	return `tlt dispose -q <quantity> [-p <price> | -proceeds <amount>] [-fee <fee>] [-d <date>] [-venue <venue>] [-lots <id,id>] [-m <notes>]

  Records a disposal request. The request file is replayed against the lots
  when the tax period is processed; which lots it consumes depends on the
  strategy configured there, except with -lots which names them explicitly
  for the specific-id strategy.
`
}

func (c *disposeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", taxlot.Today().String(), "Disposal date (YYYY-MM-DD)")
	f.Float64Var(&c.quantity, "q", 0, "Quantity disposed of")
	f.Float64Var(&c.price, "p", 0, "Unit sale price")
	f.Float64Var(&c.proceeds, "proceeds", 0, "Total proceeds, overrides -p when both are given")
	f.Float64Var(&c.fee, "fee", 0, "Transaction fee, deducted from the gain")
	f.StringVar(&c.currency, "c", "USD", "Settlement currency")
	f.StringVar(&c.venue, "venue", "", "Exchange or venue of the disposal")
	f.StringVar(&c.lots, "lots", "", "Comma-separated lot ids to consume, in order (specific-id strategy)")
	f.StringVar(&c.memo, "m", "", "Optional notes for the disposal")
}

func (c *disposeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.quantity <= 0 || (c.price <= 0 && c.proceeds <= 0) {
		f.Usage()
		return subcommands.ExitUsageError
	}
	day, err := taxlot.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	req := taxlot.DisposalRequest{
		On:       day,
		Quantity: taxlot.Q(c.quantity),
		Venue:    c.venue,
		Notes:    c.memo,
	}
	if c.price > 0 {
		req.Price = taxlot.M(c.price, c.currency)
	}
	if c.proceeds > 0 {
		req.Proceeds = taxlot.M(c.proceeds, c.currency)
	}
	if c.fee > 0 {
		req.Fee = taxlot.M(c.fee, c.currency)
	}
	if c.lots != "" {
		for _, id := range strings.Split(c.lots, ",") {
			id = strings.TrimSpace(id)
			if id != "" {
				req.LotIDs = append(req.LotIDs, id)
			}
		}
	}

	return EncodeDisposal(req)
}
