package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/taxlot"
)

// IssuesMarkdown renders the outcome of a ledger consistency check.
func IssuesMarkdown(issues []taxlot.Issue) string {
	var b strings.Builder
	if len(issues) == 0 {
		fmt.Fprint(&b, "# Ledger Check Passed\n\nThe lots are consistent.\n")
		return b.String()
	}

	fmt.Fprintf(&b, "# Ledger Check Found %d Issue(s)\n\n", len(issues))
	for _, issue := range issues {
		fmt.Fprintf(&b, "- %s\n", issue)
	}
	fmt.Fprintln(&b)
	return b.String()
}
