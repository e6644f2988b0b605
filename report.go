package taxlot

// Display carries rendering preferences through the core. The engine does
// not act on them; they ride along for the rendering layer.
type Display struct {
	ShowFragments bool
	ShowLots      bool
}

// Summary is the pure aggregate of a tax period, recomputed on demand from
// the disposal events and the current lots. It is never persisted on its
// own, which keeps it drift-free after mutation.
type Summary struct {
	Proceeds          Money
	NetGain           Money
	ShortTermGain     Money // net gain of short-term disposals
	LongTermGain      Money // net gain of long-term disposals
	ShortTermCount    int
	LongTermCount     int
	TotalCost         Money // cost basis ever recorded
	RemainingCost     Money
	RemainingQuantity Quantity
	ReferencePrice    Money // zero when no price was supplied
	UnrealizedGain    Money // zero when no price was supplied
}

// summarize derives the summary for the given disposals and ledger state. A
// zero price means no reference price was supplied, leaving the unrealized
// figures unset.
func summarize(disposals []Disposal, ledger *Ledger, price Money) Summary {
	s := Summary{
		Proceeds:          M(0, ""),
		NetGain:           M(0, ""),
		ShortTermGain:     M(0, ""),
		LongTermGain:      M(0, ""),
		TotalCost:         ledger.TotalCost(),
		RemainingCost:     ledger.RemainingCost(),
		RemainingQuantity: ledger.RemainingQuantity(),
	}
	for _, d := range disposals {
		s.Proceeds = s.Proceeds.Add(d.Proceeds)
		s.NetGain = s.NetGain.Add(d.Gain)
		switch d.Holding {
		case ShortTerm:
			s.ShortTermGain = s.ShortTermGain.Add(d.Gain)
			s.ShortTermCount++
		case LongTerm:
			s.LongTermGain = s.LongTermGain.Add(d.Gain)
			s.LongTermCount++
		}
	}
	if !price.IsZero() {
		s.ReferencePrice = price
		s.UnrealizedGain = ledger.UnrealizedGain(price)
	}
	return s
}

// TaxReport is the full period report handed to the rendering layer. It is
// assembled from copies; holding a report never aliases live ledger state.
type TaxReport struct {
	Year          int
	PeriodStart   Date
	PeriodEnd     Date
	Strategy      Strategy
	ThresholdDays int
	Acquisitions  []Acquisition
	Disposals     []Disposal
	Lots          []Lot // remaining lots
	Processed     int   // acquisitions recorded in the period
	Skipped       int   // custody movements skipped
	Summary       Summary
	Display       Display
	Complete      bool // true when the last processing run collected no errors
}
