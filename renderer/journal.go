package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/taxlot"
)

// JournalMarkdown renders the given transactions as a markdown table, in the
// order given.
func JournalMarkdown(txs []taxlot.Transaction) string {
	var b strings.Builder
	fmt.Fprint(&b, "# Transactions\n\n")
	if len(txs) == 0 {
		fmt.Fprint(&b, "The journal holds no transactions.\n")
		return b.String()
	}

	fmt.Fprintln(&b, "| Date | Type | Id | Quantity | Price | Amount | Venue | Notes |")
	fmt.Fprintln(&b, "|:---|:---|:---|---:|---:|---:|:---|:---|")
	for _, tx := range txs {
		notes := tx.Notes
		if tx.IsCustodyMovement() && tx.Destination != "" {
			notes = strings.TrimSpace("to " + tx.Destination + " " + notes)
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s | %s |\n",
			tx.On, tx.Type, tx.ID, tx.Quantity, money(tx.Price), money(tx.Amount), tx.Venue, notes)
	}
	fmt.Fprintln(&b)
	return b.String()
}

// money formats an optional amount, blank when unset.
func money(m taxlot.Money) string {
	if m.IsZero() {
		return ""
	}
	return m.String()
}
