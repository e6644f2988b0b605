package taxlot

import "fmt"

// Strategy defines the lot-selection ordering applied during disposal
// consumption.
type Strategy int

const (
	// FIFO (First-In, First-Out) consumes the earliest-purchased lots first.
	FIFO Strategy = iota
	// LIFO (Last-In, First-Out) consumes the latest-purchased lots first.
	LIFO
	// HIFO (Highest-In, First-Out) consumes the lots with the highest price
	// per unit first, regardless of purchase date.
	HIFO
	// SpecificID consumes exactly the lots named by the disposal request,
	// in the order given.
	SpecificID
)

func (s Strategy) String() string {
	switch s {
	case FIFO:
		return "fifo"
	case LIFO:
		return "lifo"
	case HIFO:
		return "hifo"
	case SpecificID:
		return "specific-id"
	default:
		return "unknown"
	}
}

// ParseStrategy parses a string into a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch s {
	case "fifo":
		return FIFO, nil
	case "lifo":
		return LIFO, nil
	case "hifo":
		return HIFO, nil
	case "specific-id":
		return SpecificID, nil
	default:
		return 0, fmt.Errorf("unknown strategy: %q", s)
	}
}
