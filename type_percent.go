package t212

import (
	"fmt"
	"math"
)

// Percent is a percentage, 100 meaning the whole.
type Percent float64

// percentOf returns part/total*100 rounded to 2 decimals, 0 when total is zero.
func percentOf(part, total Money) Percent {
	if !total.IsPositive() {
		return 0
	}
	return Percent(math.Round(part.Ratio(total)*100*100) / 100)
}

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", p)
}
