package taxlot

// Tax events are the immutable records a tax period report is assembled
// from. They are produced by the calculator and the ledger and never
// modified afterwards.

// Acquisition records one taxable acquisition turned into a lot.
type Acquisition struct {
	On       Date
	Quantity Quantity
	Value    Money // settlement value of the acquisition
	Cost     Money // cost basis, equal to Value
	Ref      string
	Venue    string
}

// Disposal records one disposal event: the quantity consumed from the
// ledger, the aggregate cost basis of the consumed fragments, and the
// resulting capital gain.
type Disposal struct {
	On       Date
	Quantity Quantity
	Proceeds Money
	Cost     Money // aggregate cost basis consumed
	Fee      Money
	Gain     Money // Proceeds - Cost - Fee
	Holding  HoldingPeriod
	// Fragments lists, in consumption order, the slice taken from each lot.
	// The fragment quantities sum to Quantity, their costs to Cost.
	Fragments []Fragment
	Venue     string
	Notes     string
}
