package taxlot

// DefaultLongTermDays is the holding period threshold, in days, beyond which
// a disposal qualifies as long-term.
const DefaultLongTermDays = 365

// HoldingPeriod classifies the elapsed time between a lot's purchase and its
// disposal.
type HoldingPeriod int

const (
	// ShortTerm is a holding of threshold days or fewer.
	ShortTerm HoldingPeriod = iota
	// LongTerm is a holding of strictly more than threshold days.
	LongTerm
)

func (h HoldingPeriod) String() string {
	switch h {
	case ShortTerm:
		return "short-term"
	case LongTerm:
		return "long-term"
	default:
		return "unknown"
	}
}

// classifyHolding returns the holding period for an asset purchased on
// 'purchase' and disposed on 'sale'. Exactly at the threshold is short-term;
// strictly greater is required for long-term.
func classifyHolding(purchase, sale Date, thresholdDays int) HoldingPeriod {
	if sale.Sub(purchase) > thresholdDays {
		return LongTerm
	}
	return ShortTerm
}
