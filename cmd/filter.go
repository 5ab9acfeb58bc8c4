package cmd

import (
	"flag"
	"fmt"

	"github.com/etnz/t212"
	"github.com/etnz/t212/date"
)

// filterFlags are the flags shared by the reports to select orders.
type filterFlags struct {
	from, to string
	tickers  string
}

func (p *filterFlags) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.from, "from", "", "First day of the orders (YYYY-MM-DD), unbounded by default")
	f.StringVar(&p.to, "to", "", "Last day of the orders (YYYY-MM-DD), unbounded by default")
	f.StringVar(&p.tickers, "tickers", "", "Comma separated list of tickers, all tickers by default")
}

// filter returns the Filter described by the flags.
func (p *filterFlags) filter() (t212.Filter, error) {
	var from, to date.Date
	var err error
	if p.from != "" {
		if from, err = date.Parse(p.from); err != nil {
			return t212.All, fmt.Errorf("invalid -from: %w", err)
		}
	}
	if p.to != "" {
		if to, err = date.Parse(p.to); err != nil {
			return t212.All, fmt.Errorf("invalid -to: %w", err)
		}
	}
	f := t212.All.Between(from, to)
	if err := f.Range.Validate(); err != nil {
		return f, err
	}
	if p.tickers != "" {
		f = f.Only(t212.ParseTickers(p.tickers)...)
	}
	return f, nil
}
