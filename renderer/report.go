package renderer

import (
	"fmt"
	"io"
	"strings"

	"github.com/etnz/taxlot"
)

// ReportMarkdown renders a full tax period report to a markdown string.
func ReportMarkdown(report *taxlot.TaxReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Tax Report %d\n\n", report.Year)
	fmt.Fprintf(&b, "Period: %s to %s\n\n", report.PeriodStart, report.PeriodEnd)
	fmt.Fprintf(&b, "Strategy: %s, long-term after %d days\n\n", report.Strategy, report.ThresholdDays)
	if !report.Complete {
		fmt.Fprint(&b, "**Incomplete**: the last processing run collected errors, figures below may be partial.\n\n")
	}

	s := report.Summary
	fmt.Fprint(&b, "## Summary\n\n")
	fmt.Fprintln(&b, "| Metric | Value |")
	fmt.Fprintln(&b, "|:---|---:|")
	fmt.Fprintf(&b, "| Acquisitions processed | %d |\n", report.Processed)
	fmt.Fprintf(&b, "| Custody movements skipped | %d |\n", report.Skipped)
	fmt.Fprintf(&b, "| Total proceeds | %s |\n", s.Proceeds)
	fmt.Fprintf(&b, "| Net realized gain | %s |\n", s.NetGain.SignedString())
	fmt.Fprintf(&b, "| Short-term gain (%d disposals) | %s |\n", s.ShortTermCount, s.ShortTermGain.SignedString())
	fmt.Fprintf(&b, "| Long-term gain (%d disposals) | %s |\n", s.LongTermCount, s.LongTermGain.SignedString())
	fmt.Fprintf(&b, "| Remaining quantity | %s |\n", s.RemainingQuantity)
	fmt.Fprintf(&b, "| Remaining cost basis | %s |\n", s.RemainingCost)
	if !s.ReferencePrice.IsZero() {
		fmt.Fprintf(&b, "| Reference price | %s |\n", s.ReferencePrice)
		fmt.Fprintf(&b, "| Unrealized gain | %s |\n", s.UnrealizedGain.SignedString())
	}
	fmt.Fprintln(&b)

	ConditionalBlock(&b, func(w io.Writer) bool {
		fmt.Fprint(w, "## Disposals\n\n")
		fmt.Fprintln(w, "| Date | Quantity | Proceeds | Cost Basis | Fee | Gain | Holding |")
		fmt.Fprintln(w, "|:---|---:|---:|---:|---:|---:|:---|")
		for _, d := range report.Disposals {
			fmt.Fprintf(w, "| %s | %s | %s | %s | %s | %s | %s |\n",
				d.On, d.Quantity, d.Proceeds, d.Cost, d.Fee.SignedString(), d.Gain.SignedString(), d.Holding)
		}
		fmt.Fprintln(w)
		return len(report.Disposals) > 0
	})

	if report.Display.ShowFragments {
		for _, d := range report.Disposals {
			fmt.Fprintf(&b, "### Lots consumed on %s\n\n", d.On)
			fragmentsTable(&b, d.Fragments)
		}
	}

	ConditionalBlock(&b, func(w io.Writer) bool {
		fmt.Fprint(w, "## Remaining Lots\n\n")
		lotsTable(w, report.Lots, s.ReferencePrice)
		return report.Display.ShowLots && len(report.Lots) > 0
	})

	return b.String()
}

// ResultMarkdown renders the outcome of a processing run: the collected
// warnings and errors, in processing order.
func ResultMarkdown(result taxlot.Result) string {
	var b strings.Builder

	if result.IsValid {
		fmt.Fprint(&b, "# Processing Succeeded\n\n")
	} else {
		fmt.Fprintf(&b, "# Processing Collected %d Error(s)\n\n", len(result.Errors))
	}

	ConditionalBlock(&b, func(w io.Writer) bool {
		fmt.Fprint(w, "## Warnings\n\n")
		for _, warning := range result.Warnings {
			fmt.Fprintf(w, "- %s\n", warning)
		}
		fmt.Fprintln(w)
		return len(result.Warnings) > 0
	})

	ConditionalBlock(&b, func(w io.Writer) bool {
		fmt.Fprint(w, "## Errors\n\n")
		for _, err := range result.Errors {
			fmt.Fprintf(w, "- %s\n", err)
		}
		fmt.Fprintln(w)
		return len(result.Errors) > 0
	})

	return b.String()
}
