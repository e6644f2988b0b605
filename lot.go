package taxlot

// Lot is one discrete acquisition of the tracked asset, with its own cost
// basis and remaining balance. Lots are identified by a stable "lot-<n>"
// identifier that is never reused for the life of the ledger.
type Lot struct {
	ID           string
	Ref          string // source transaction reference
	PurchaseDate Date
	Original     Quantity // quantity acquired, fixed at acquisition
	Remaining    Quantity // 0 <= Remaining <= Original, decremented by consumption
	Cost         Money    // total cost basis, fixed at acquisition
	Venue        string
}

// PricePerUnit returns the acquisition price per unit of the asset.
func (l Lot) PricePerUnit() Money {
	if l.Original.IsZero() {
		return M(0, l.Cost.Currency())
	}
	return l.Cost.Div(l.Original)
}

// RemainingCost returns the cost basis still carried by the lot, allocated
// proportionally: remaining/original * cost.
func (l Lot) RemainingCost() Money {
	return l.costOf(l.Remaining)
}

// costOf returns the proportional cost basis of taking q units from the lot.
func (l Lot) costOf(q Quantity) Money {
	if l.Original.IsZero() {
		return M(0, l.Cost.Currency())
	}
	return l.Cost.Mul(q).Div(l.Original)
}

// Holding classifies the lot's holding period as of a sale date.
func (l Lot) Holding(sale Date, thresholdDays int) HoldingPeriod {
	return classifyHolding(l.PurchaseDate, sale, thresholdDays)
}

// Fragment is the portion of a single lot consumed by one disposal event. It
// carries its own proportional cost basis and holding period.
type Fragment struct {
	LotID        string
	Quantity     Quantity
	Cost         Money // (Quantity / lot.Original) * lot.Cost
	PurchaseDate Date
	Holding      HoldingPeriod
}
