package taxlot

import (
	"errors"
	"fmt"
)

// ErrLotNotFound reports an operation addressing a lot id the ledger does
// not hold.
var ErrLotNotFound = errors.New("lot not found")

// Ledger owns the authoritative collection of acquisition lots. It is the
// single writer of lot state: mutation happens only through CreateLot,
// Consume, and the administrative CorrectLot/RemoveLot/Reset operations.
// Every read returns independent copies.
//
// The ledger provides no internal locking. It is designed to be owned by one
// calculator at a time; concurrent callers must serialize access themselves.
type Ledger struct {
	lots    []*Lot
	counter int // numeric suffix of the last assigned lot id
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger { return &Ledger{} }

// CreateLot appends a new lot for the given acquisition, with remaining
// equal to the acquired quantity, and assigns the next sequential id. It
// always succeeds; a positive quantity is the caller's contract. The created
// lot is returned by value.
func (l *Ledger) CreateLot(a Acquisition) Lot {
	cost := a.Cost
	if cost.IsZero() {
		cost = a.Value
	}
	l.counter++
	lot := &Lot{
		ID:           fmt.Sprintf("lot-%d", l.counter),
		Ref:          a.Ref,
		PurchaseDate: a.On,
		Original:     a.Quantity,
		Remaining:    a.Quantity,
		Cost:         cost,
		Venue:        a.Venue,
	}
	l.lots = append(l.lots, lot)
	return *lot
}

// Len returns the number of lots ever recorded, consumed or not.
func (l *Ledger) Len() int { return len(l.lots) }

// Lot returns a copy of the lot with the given id.
func (l *Ledger) Lot(id string) (Lot, bool) {
	lot := l.find(id)
	if lot == nil {
		return Lot{}, false
	}
	return *lot, true
}

// Lots returns copies of all lots, in insertion order.
func (l *Ledger) Lots() []Lot {
	list := make([]Lot, 0, len(l.lots))
	for _, lot := range l.lots {
		list = append(list, *lot)
	}
	return list
}

// RemainingLots returns copies of the lots that still carry a remaining
// balance, in insertion order.
func (l *Ledger) RemainingLots() []Lot {
	var list []Lot
	for _, lot := range l.lots {
		if lot.Remaining.IsPositive() {
			list = append(list, *lot)
		}
	}
	return list
}

// TotalCost returns the cost basis ever recorded, across consumed and
// remaining lots alike. Derived on demand, never cached.
func (l *Ledger) TotalCost() Money {
	total := M(0, "")
	for _, lot := range l.lots {
		total = total.Add(lot.Cost)
	}
	return total
}

// RemainingQuantity returns the total quantity still held. Derived on
// demand, never cached.
func (l *Ledger) RemainingQuantity() Quantity {
	total := Q(0)
	for _, lot := range l.lots {
		total = total.Add(lot.Remaining)
	}
	return total
}

// RemainingCost returns the cost basis still carried by the ledger, the sum
// of each lot's proportional remaining/original * cost. Derived on demand,
// never cached.
func (l *Ledger) RemainingCost() Money {
	total := M(0, "")
	for _, lot := range l.lots {
		total = total.Add(lot.RemainingCost())
	}
	return total
}

// UnrealizedGain returns remaining quantity * price - remaining cost basis,
// the paper gain at the supplied reference price.
func (l *Ledger) UnrealizedGain(price Money) Money {
	return price.Mul(l.RemainingQuantity()).Sub(l.RemainingCost())
}

// CorrectLot overwrites a lot's remaining balance. This is an administrative
// repair operation: it accepts any value, including ones that Validate will
// then flag.
func (l *Ledger) CorrectLot(id string, remaining Quantity) error {
	lot := l.find(id)
	if lot == nil {
		return fmt.Errorf("cannot correct lot %q: %w", id, ErrLotNotFound)
	}
	lot.Remaining = remaining
	return nil
}

// RemoveLot deletes a lot from the ledger. The id is not reused.
func (l *Ledger) RemoveLot(id string) error {
	for i, lot := range l.lots {
		if lot.ID == id {
			l.lots = append(l.lots[:i], l.lots[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("cannot remove lot %q: %w", id, ErrLotNotFound)
}

// Reset drops all lots and restarts the id sequence.
func (l *Ledger) Reset() {
	l.lots = nil
	l.counter = 0
}

// Clone returns a deep copy of the ledger, id counter included. Consuming
// from the clone never affects the original; this is the isolation guarantee
// behind disposal simulation.
func (l *Ledger) Clone() *Ledger {
	c := &Ledger{counter: l.counter, lots: make([]*Lot, 0, len(l.lots))}
	for _, lot := range l.lots {
		dup := *lot
		c.lots = append(c.lots, &dup)
	}
	return c
}

func (l *Ledger) find(id string) *Lot {
	for _, lot := range l.lots {
		if lot.ID == id {
			return lot
		}
	}
	return nil
}
