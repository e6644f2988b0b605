package taxlot

import "fmt"

// Recognized transaction type labels. Any other label on an in-period
// transaction is treated as a taxable acquisition.
const (
	TxWithdrawal = "Withdrawal"
	TxTransfer   = "Transfer"
)

// Transaction is one record of the upstream transaction stream (produced by
// the ingestion layer outside this package). The calculator reads it by
// field and by type label; it is never mutated by the core.
type Transaction struct {
	ID          string
	On          Date
	Type        string // free-form label; Withdrawal and Transfer mark custody movements
	Venue       string
	Quantity    Quantity
	Price       Money // unit price
	Amount      Money // total value in the settlement currency
	SelfCustody bool
	NonTaxable  bool
	Destination string // destination wallet of a custody movement
	Notes       string
}

// IsCustodyMovement reports whether the transaction moves assets between the
// user's own wallets rather than acquiring them: by type label, by the
// explicit self-custody flag, or by the explicit non-taxable flag. Custody
// movements never become lots.
func (t Transaction) IsCustodyMovement() bool {
	return t.Type == TxWithdrawal || t.Type == TxTransfer || t.SelfCustody || t.NonTaxable
}

// Value returns the transaction's total value, derived from the unit price
// when the amount is not set.
func (t Transaction) Value() Money {
	if !t.Amount.IsZero() {
		return t.Amount
	}
	return t.Price.Mul(t.Quantity)
}

// Validate checks the transaction and returns a copy with quick fixes
// applied: a missing date defaults to today, and whichever of amount/price
// is missing is derived from the other.
func (t Transaction) Validate() (Transaction, error) {
	if t.On.IsZero() {
		t.On = Today()
	}
	if !t.Quantity.IsPositive() {
		return t, fmt.Errorf("transaction %q: quantity must be positive, got %s", t.ID, t.Quantity)
	}
	if t.Amount.IsZero() && !t.Price.IsZero() {
		t.Amount = t.Price.Mul(t.Quantity)
	}
	if t.Price.IsZero() && !t.Amount.IsZero() {
		t.Price = t.Amount.Div(t.Quantity)
	}
	if t.Amount.IsZero() && !t.IsCustodyMovement() {
		return t, fmt.Errorf("transaction %q: an acquisition requires an amount or a price", t.ID)
	}
	return t, nil
}
