package taxlot

import (
	"errors"
	"fmt"
	"slices"
)

// Config drives a Calculator run.
type Config struct {
	Year          int
	Strategy      Strategy
	ThresholdDays int // 0 means DefaultLongTermDays
	Disposals     []DisposalRequest
	Display       Display
}

// WarningCode identifies a class of non-fatal processing condition.
type WarningCode string

const (
	// WithdrawalSkipped flags a custody movement excluded from the taxable
	// flow: moving assets to self-custody is not a disposal.
	WithdrawalSkipped WarningCode = "withdrawal-skipped"
)

// Warning is a non-fatal note emitted while processing transactions.
type Warning struct {
	Code    WarningCode
	Ref     string // transaction id, when available
	Message string
}

func (w Warning) String() string {
	if w.Ref == "" {
		return fmt.Sprintf("%s: %s", w.Code, w.Message)
	}
	return fmt.Sprintf("%s: [%s] %s", w.Code, w.Ref, w.Message)
}

// Result reports the outcome of a processing run. Errors are collected, not
// short-circuited, so one bad line does not hide the rest.
type Result struct {
	IsValid  bool
	Errors   []error
	Warnings []Warning
}

// Calculator orchestrates a tax period: it feeds the in-period acquisitions
// into a ledger, replays the configured disposals against it, and derives
// reports from the resulting state.
type Calculator struct {
	cfg    Config
	ledger *Ledger

	acquisitions []Acquisition
	disposals    []Disposal
	processed    int
	skipped      int
	failed       int
}

// NewCalculator returns a calculator for the given configuration.
func NewCalculator(cfg Config) *Calculator {
	if cfg.ThresholdDays == 0 {
		cfg.ThresholdDays = DefaultLongTermDays
	}
	return &Calculator{cfg: cfg, ledger: NewLedger()}
}

// ProcessTransactions runs the full period over the given transactions.
//
// Processing always starts from a clean ledger: reprocessing the same
// calculator replaces the previous run instead of stacking on top of it.
// Transactions outside the configured year are ignored. Custody movements
// are skipped with a warning since moving assets is not a taxable event.
// All errors, acquisition and disposal alike, are collected into the result.
func (c *Calculator) ProcessTransactions(txs []Transaction) Result {
	c.ledger.Reset()
	c.acquisitions = nil
	c.disposals = nil
	c.processed, c.skipped, c.failed = 0, 0, 0

	var result Result
	period := YearRange(c.cfg.Year)

	for _, tx := range txs {
		if !period.Contains(tx.On) {
			continue
		}
		if tx.IsCustodyMovement() {
			c.skipped++
			result.Warnings = append(result.Warnings, Warning{
				Code:    WithdrawalSkipped,
				Ref:     tx.ID,
				Message: fmt.Sprintf("custody movement of %s on %s is not a taxable disposal", tx.Quantity, tx.On),
			})
			continue
		}
		ntx, err := tx.Validate()
		if err != nil {
			result.Errors = append(result.Errors, err)
			continue
		}
		a := Acquisition{
			On:       ntx.On,
			Quantity: ntx.Quantity,
			Value:    ntx.Value(),
			Cost:     ntx.Value(),
			Ref:      ntx.ID,
			Venue:    ntx.Venue,
		}
		c.ledger.CreateLot(a)
		c.acquisitions = append(c.acquisitions, a)
		c.processed++
	}

	for i, req := range c.cfg.Disposals {
		disposal, err := c.ledger.Consume(req, c.cfg.Strategy, c.cfg.ThresholdDays)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("disposal %d on %s: %w", i+1, req.On, err))
			continue
		}
		c.disposals = append(c.disposals, disposal)
	}

	for _, issue := range c.ledger.Validate() {
		result.Errors = append(result.Errors, errors.New(issue.String()))
	}

	c.failed = len(result.Errors)
	result.IsValid = c.failed == 0
	return result
}

// Report derives the period report from the current state. It copies the
// events and lots, so the report stays stable if the calculator keeps
// running.
func (c *Calculator) Report(price Money) TaxReport {
	period := YearRange(c.cfg.Year)
	return TaxReport{
		Year:          c.cfg.Year,
		PeriodStart:   period.From,
		PeriodEnd:     period.To,
		Strategy:      c.cfg.Strategy,
		ThresholdDays: c.cfg.ThresholdDays,
		Acquisitions:  slices.Clone(c.acquisitions),
		Disposals:     slices.Clone(c.disposals),
		Lots:          c.ledger.RemainingLots(),
		Processed:     c.processed,
		Skipped:       c.skipped,
		Summary:       summarize(c.disposals, c.ledger, price),
		Display:       c.cfg.Display,
		Complete:      c.failed == 0,
	}
}

// SimulateDisposal runs a hypothetical disposal against a clone of the
// current ledger. The calculator's own state is untouched, so simulations
// can be chained freely.
func (c *Calculator) SimulateDisposal(quantity Quantity, price Money, on Date) (Disposal, error) {
	return c.ledger.Clone().Consume(DisposalRequest{
		On:       on,
		Quantity: quantity,
		Price:    price,
	}, c.cfg.Strategy, c.cfg.ThresholdDays)
}

// SuggestOptimizations inspects the remaining lots and returns human-readable
// suggestions. Heuristics only: it points at tax-loss harvesting candidates,
// lots close to long-term treatment, and strategy choice.
func (c *Calculator) SuggestOptimizations(price Money) []string {
	lots := c.ledger.RemainingLots()
	if len(lots) == 0 {
		return []string{"No remaining lots to optimize"}
	}

	var suggestions []string

	if !price.IsZero() {
		underwater := 0
		paperLoss := M(0, "")
		for _, lot := range lots {
			value := price.Mul(lot.Remaining)
			basis := lot.RemainingCost()
			if value.LessThan(basis) {
				underwater++
				paperLoss = paperLoss.Add(basis.Sub(value))
			}
		}
		if underwater > 0 {
			suggestions = append(suggestions, fmt.Sprintf(
				"Consider tax-loss harvesting: %d lot(s) hold an unrealized loss of %s at the current price",
				underwater, paperLoss))
		}
	}

	today := Today()
	nearTerm := 0
	for _, lot := range lots {
		if lot.Holding(today, c.cfg.ThresholdDays) == ShortTerm {
			nearTerm++
		}
	}
	if nearTerm > 0 {
		suggestions = append(suggestions, fmt.Sprintf(
			"%d lot(s) are still short-term; holding past %d days qualifies gains for long-term treatment",
			nearTerm, c.cfg.ThresholdDays))
	}

	alternative := HIFO
	if c.cfg.Strategy == HIFO {
		alternative = FIFO
	}
	suggestions = append(suggestions, fmt.Sprintf(
		"Current strategy is %s; compare with %s to see how the consumption order changes the realized gain",
		c.cfg.Strategy, alternative))

	return suggestions
}

// Ledger exposes the calculator's ledger for storage round trips. The
// calculator is the single writer; callers must not mutate lots directly
// while a run is in flight.
func (c *Calculator) Ledger() *Ledger {
	return c.ledger
}
