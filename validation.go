package taxlot

import "fmt"

// IssueCode identifies a class of integrity fault found by Validate.
type IssueCode string

const (
	// NegativeRemaining flags a lot whose remaining balance went below zero.
	NegativeRemaining IssueCode = "negative-remaining"
	// OverConsumed flags a lot whose remaining balance exceeds its original
	// quantity.
	OverConsumed IssueCode = "over-consumed"
	// NonPositiveCost flags a lot with a zero or negative cost basis.
	NonPositiveCost IssueCode = "non-positive-cost"
	// InvalidDate flags a lot without a valid purchase date.
	InvalidDate IssueCode = "invalid-date"
)

// Issue is one integrity finding, naming the offending lot.
type Issue struct {
	Code    IssueCode
	LotID   string
	Message string
}

func (i Issue) String() string { return fmt.Sprintf("%s: [%s] %s", i.LotID, i.Code, i.Message) }

// Validate scans all lots and reports integrity faults without mutating
// anything. A violated invariant is surfaced here, never self-corrected;
// CorrectLot is the repair path.
func (l *Ledger) Validate() []Issue {
	var issues []Issue
	for _, lot := range l.lots {
		if lot.Remaining.IsNegative() {
			issues = append(issues, Issue{
				Code: NegativeRemaining, LotID: lot.ID,
				Message: fmt.Sprintf("remaining %s is negative", lot.Remaining),
			})
		}
		if lot.Remaining.GreaterThan(lot.Original) {
			issues = append(issues, Issue{
				Code: OverConsumed, LotID: lot.ID,
				Message: fmt.Sprintf("remaining %s exceeds original quantity %s", lot.Remaining, lot.Original),
			})
		}
		if !lot.Cost.IsPositive() {
			issues = append(issues, Issue{
				Code: NonPositiveCost, LotID: lot.ID,
				Message: fmt.Sprintf("cost basis %s is not positive", lot.Cost),
			})
		}
		if lot.PurchaseDate.IsZero() {
			issues = append(issues, Issue{
				Code: InvalidDate, LotID: lot.ID,
				Message: "purchase date is missing",
			})
		}
	}
	return issues
}
