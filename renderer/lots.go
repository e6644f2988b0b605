package renderer

import (
	"fmt"
	"io"
	"strings"

	"github.com/etnz/taxlot"
)

// LotsMarkdown renders the given lots as a markdown table. A non-zero
// reference price adds market value and unrealized gain columns.
func LotsMarkdown(lots []taxlot.Lot, price taxlot.Money) string {
	var b strings.Builder
	fmt.Fprint(&b, "# Lots\n\n")
	if len(lots) == 0 {
		fmt.Fprint(&b, "The ledger holds no lots.\n")
		return b.String()
	}
	lotsTable(&b, lots, price)
	return b.String()
}

func lotsTable(w io.Writer, lots []taxlot.Lot, price taxlot.Money) {
	priced := !price.IsZero()

	if priced {
		fmt.Fprintln(w, "| Lot | Purchased | Original | Remaining | Cost Basis | Remaining Basis | Market Value | Unrealized |")
		fmt.Fprintln(w, "|:---|:---|---:|---:|---:|---:|---:|---:|")
	} else {
		fmt.Fprintln(w, "| Lot | Purchased | Original | Remaining | Cost Basis | Remaining Basis |")
		fmt.Fprintln(w, "|:---|:---|---:|---:|---:|---:|")
	}

	quantity := taxlot.Q(0)
	basis := taxlot.M(0, "")
	for _, lot := range lots {
		quantity = quantity.Add(lot.Remaining)
		basis = basis.Add(lot.RemainingCost())
		if priced {
			value := price.Mul(lot.Remaining)
			fmt.Fprintf(w, "| %s | %s | %s | %s | %s | %s | %s | %s |\n",
				lot.ID, lot.PurchaseDate, lot.Original, lot.Remaining,
				lot.Cost, lot.RemainingCost(), value, value.Sub(lot.RemainingCost()).SignedString())
		} else {
			fmt.Fprintf(w, "| %s | %s | %s | %s | %s | %s |\n",
				lot.ID, lot.PurchaseDate, lot.Original, lot.Remaining,
				lot.Cost, lot.RemainingCost())
		}
	}

	if priced {
		value := price.Mul(quantity)
		fmt.Fprintf(w, "| **Total** | | | **%s** | | **%s** | **%s** | **%s** |\n",
			quantity, basis, value, value.Sub(basis).SignedString())
	} else {
		fmt.Fprintf(w, "| **Total** | | | **%s** | | **%s** |\n", quantity, basis)
	}
	fmt.Fprintln(w)
}
