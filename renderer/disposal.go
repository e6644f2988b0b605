package renderer

import (
	"fmt"
	"io"
	"strings"

	"github.com/etnz/taxlot"
)

// DisposalMarkdown renders a single disposal event, as produced by a real
// disposal or a simulation.
func DisposalMarkdown(title string, d taxlot.Disposal, showFragments bool) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "Disposed %s on %s.\n\n", d.Quantity, d.On)
	fmt.Fprintln(&b, "| Proceeds | Cost Basis | Fee | Gain | Holding |")
	fmt.Fprintln(&b, "|---:|---:|---:|---:|:---|")
	fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n\n",
		d.Proceeds, d.Cost, d.Fee.SignedString(), d.Gain.SignedString(), d.Holding)

	if showFragments {
		fmt.Fprint(&b, "## Lots Consumed\n\n")
		fragmentsTable(&b, d.Fragments)
	}
	return b.String()
}

func fragmentsTable(w io.Writer, fragments []taxlot.Fragment) {
	fmt.Fprintln(w, "| Lot | Quantity | Cost Basis | Purchased | Holding |")
	fmt.Fprintln(w, "|:---|---:|---:|:---|:---|")
	for _, f := range fragments {
		fmt.Fprintf(w, "| %s | %s | %s | %s | %s |\n",
			f.LotID, f.Quantity, f.Cost, f.PurchaseDate, f.Holding)
	}
	fmt.Fprintln(w)
}
