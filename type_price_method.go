package t212

import "fmt"

// PriceMethod defines how the representative fill price of a holding is computed.
type PriceMethod int

const (
	// PriceFirst uses the fill price of the first order seen for the ticker.
	PriceFirst PriceMethod = iota
	// PriceMean averages the fill prices of all the orders of the ticker.
	PriceMean
)

func (m PriceMethod) String() string {
	switch m {
	case PriceFirst:
		return "first"
	case PriceMean:
		return "mean"
	default:
		return "unknown"
	}
}

// ParsePriceMethod parses a string into a PriceMethod.
func ParsePriceMethod(s string) (PriceMethod, error) {
	switch s {
	case "first", "":
		return PriceFirst, nil
	case "mean", "average":
		return PriceMean, nil
	default:
		return PriceFirst, fmt.Errorf("unknown price method: %q", s)
	}
}
