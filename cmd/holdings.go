package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/t212"
	"github.com/google/subcommands"
)

type holdingsCmd struct {
	filterFlags
	price string
}

func (*holdingsCmd) Name() string     { return "holdings" }
func (*holdingsCmd) Synopsis() string { return "display the holdings allocation per ticker" }
func (*holdingsCmd) Usage() string {
	return `tdash holdings [-from <date>] [-to <date>] [-tickers <list>] [-price first|mean]

  Groups the filled orders by ticker: total quantity, total cost,
  representative price, number of trades and share of the total cost.
  Holdings are sorted by decreasing cost.
`
}

func (c *holdingsCmd) SetFlags(f *flag.FlagSet) {
	c.filterFlags.SetFlags(f)
	f.StringVar(&c.price, "price", "first", "Representative price of a ticker: first fill price or mean of the fill prices")
}

func (c *holdingsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	filter, err := c.filter()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	method, err := t212.ParsePriceMethod(c.price)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	b, cfg, err := openBook(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading orders: %v\n", err)
		return subcommands.ExitFailure
	}
	holdings := b.Holdings(filter, method)
	return display("Holdings Allocation", holdings, formatter(b, cfg).Holdings(holdings))
}
