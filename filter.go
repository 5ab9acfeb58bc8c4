package t212

import (
	"slices"
	"strings"
	"time"

	"github.com/etnz/t212/date"
)

// Filter selects orders by creation day and ticker.
//
// The zero Filter accepts everything. Tickers restricts the orders to the
// given symbols (or raw tickers) when it is not nil: a non nil but empty
// Tickers accepts nothing.
type Filter struct {
	Range   date.Range
	Tickers []string
}

// All is the Filter that accepts every order.
var All = Filter{}

// Between returns a copy of f restricted to [from, to]. Zero dates are unbounded.
func (f Filter) Between(from, to date.Date) Filter {
	f.Range = date.Between(from, to)
	return f
}

// Only returns a copy of f restricted to the given tickers.
func (f Filter) Only(tickers ...string) Filter {
	f.Tickers = append(make([]string, 0, len(tickers)), tickers...)
	return f
}

// ParseTickers parses a comma separated list of tickers. Blank entries are ignored.
func ParseTickers(list string) []string {
	res := make([]string, 0)
	for _, t := range strings.Split(list, ",") {
		if t = strings.TrimSpace(t); t != "" {
			res = append(res, t)
		}
	}
	return res
}

func (f Filter) accept(o Order, loc *time.Location) bool {
	if f.Tickers != nil && !slices.Contains(f.Tickers, o.Symbol) && !slices.Contains(f.Tickers, o.Ticker) {
		return false
	}
	if f.Range.IsUnbounded() {
		return true
	}
	return f.Range.Contains(date.Of(o.DateCreated, loc))
}
