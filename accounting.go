package taxlot

import (
	"errors"
	"fmt"
	"sort"
)

// Structural failures of lot consumption. Both leave the ledger untouched:
// no partial consumption is ever committed.
var (
	// ErrEmptyLedger reports a disposal against a ledger with no lot left to
	// consume.
	ErrEmptyLedger = errors.New("no lots available for disposal")
	// ErrInsufficientBalance reports a disposal larger than the quantity the
	// candidate lots can cover.
	ErrInsufficientBalance = errors.New("insufficient balance")
)

// DisposalRequest describes one disposal to consume against the ledger. It
// is read-only input: the ledger never modifies it.
type DisposalRequest struct {
	On       Date
	Quantity Quantity
	Price    Money // unit sale price, used to derive Proceeds when unset
	Proceeds Money // total proceeds; Price * Quantity when zero
	Fee      Money
	Venue    string
	Notes    string
	// LotIDs names the lots to consume, in order, under the SpecificID
	// strategy. It is ignored by the other strategies.
	LotIDs []string
}

// proceeds resolves the total proceeds of the request.
func (r DisposalRequest) proceeds() Money {
	if !r.Proceeds.IsZero() {
		return r.Proceeds
	}
	return r.Price.Mul(r.Quantity)
}

// Consume disposes of the requested quantity by consuming lots selected and
// ordered by the strategy:
//
//   - FIFO: ascending purchase date, insertion order breaking ties
//   - LIFO: descending purchase date
//   - HIFO: descending price per unit (price, not date)
//   - SpecificID: exactly the lots named by req.LotIDs, in the given order
//
// Each consumed lot contributes a Fragment whose cost basis is the
// proportional share (taken / original) * cost, and has its remaining
// balance decremented in place. A disposal spanning several lots is
// long-term only when every fragment is; a single short-term fragment makes
// the whole disposal short-term. Exactly at thresholdDays is short-term.
//
// Consume fails with ErrEmptyLedger when no lot has a remaining balance and
// with ErrInsufficientBalance when the candidates cannot cover the request.
// On any error the ledger is left unchanged.
func (l *Ledger) Consume(req DisposalRequest, strategy Strategy, thresholdDays int) (Disposal, error) {
	if thresholdDays <= 0 {
		thresholdDays = DefaultLongTermDays
	}
	if !req.Quantity.IsPositive() {
		return Disposal{}, fmt.Errorf("disposal quantity must be positive, got %s", req.Quantity)
	}

	candidates := l.candidates()
	if len(candidates) == 0 {
		return Disposal{}, ErrEmptyLedger
	}
	if strategy == SpecificID {
		var err error
		if candidates, err = l.identified(req.LotIDs); err != nil {
			return Disposal{}, err
		}
	} else {
		orderLots(candidates, strategy)
	}

	available := Q(0)
	for _, lot := range candidates {
		available = available.Add(lot.Remaining)
	}
	if req.Quantity.GreaterThan(available) {
		return Disposal{}, fmt.Errorf("%w: requested %s, available %s", ErrInsufficientBalance, req.Quantity, available)
	}

	// Sufficiency is established, so the walk below cannot fail. The
	// in-place decrements are the only mutation of the whole operation.
	needed := req.Quantity
	cost := M(0, "")
	holding := LongTerm
	var fragments []Fragment
	for _, lot := range candidates {
		if !needed.IsPositive() {
			break
		}
		take := needed.Min(lot.Remaining)
		fragment := Fragment{
			LotID:        lot.ID,
			Quantity:     take,
			Cost:         lot.costOf(take),
			PurchaseDate: lot.PurchaseDate,
			Holding:      lot.Holding(req.On, thresholdDays),
		}
		if fragment.Holding == ShortTerm {
			holding = ShortTerm
		}
		lot.Remaining = lot.Remaining.Sub(take)
		cost = cost.Add(fragment.Cost)
		needed = needed.Sub(take)
		fragments = append(fragments, fragment)
	}

	proceeds := req.proceeds()
	return Disposal{
		On:        req.On,
		Quantity:  req.Quantity,
		Proceeds:  proceeds,
		Cost:      cost,
		Fee:       req.Fee,
		Gain:      proceeds.Sub(cost).Sub(req.Fee),
		Holding:   holding,
		Fragments: fragments,
		Venue:     req.Venue,
		Notes:     req.Notes,
	}, nil
}

// candidates returns the live lots still carrying a remaining balance, in
// insertion order.
func (l *Ledger) candidates() []*Lot {
	var list []*Lot
	for _, lot := range l.lots {
		if lot.Remaining.IsPositive() {
			list = append(list, lot)
		}
	}
	return list
}

// identified resolves the lots named for specific identification. The
// original design fell back silently to FIFO here; an explicit failure
// replaces that fallback.
func (l *Ledger) identified(ids []string) ([]*Lot, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("specific identification requires explicit lot ids")
	}
	seen := make(map[string]bool, len(ids))
	list := make([]*Lot, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			return nil, fmt.Errorf("lot %q named more than once", id)
		}
		seen[id] = true
		lot := l.find(id)
		if lot == nil {
			return nil, fmt.Errorf("cannot consume lot %q: %w", id, ErrLotNotFound)
		}
		if !lot.Remaining.IsPositive() {
			return nil, fmt.Errorf("cannot consume lot %q: already exhausted", id)
		}
		list = append(list, lot)
	}
	return list, nil
}

// orderLots sorts candidates in consumption order for the strategy. The sort
// is stable so that same-day (or same-price) lots keep insertion order.
func orderLots(lots []*Lot, strategy Strategy) {
	switch strategy {
	case LIFO:
		sort.SliceStable(lots, func(i, j int) bool {
			return lots[j].PurchaseDate.Before(lots[i].PurchaseDate)
		})
	case HIFO:
		sort.SliceStable(lots, func(i, j int) bool {
			return lots[j].PricePerUnit().LessThan(lots[i].PricePerUnit())
		})
	default: // FIFO
		sort.SliceStable(lots, func(i, j int) bool {
			return lots[i].PurchaseDate.Before(lots[j].PurchaseDate)
		})
	}
}
