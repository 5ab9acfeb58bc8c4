package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type cumulativeCmd struct {
	filterFlags
}

func (*cumulativeCmd) Name() string     { return "cumulative" }
func (*cumulativeCmd) Synopsis() string { return "display the cumulative investment over time" }
func (*cumulativeCmd) Usage() string {
	return `tdash cumulative [-from <date>] [-to <date>] [-tickers <list>]

  Displays the filled orders in chronological order with the running total
  of the amount invested.
`
}

func (c *cumulativeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	filter, err := c.filter()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	b, cfg, err := openBook(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading orders: %v\n", err)
		return subcommands.ExitFailure
	}
	points := b.Cumulative(filter)
	return display("Cumulative Investment", points, formatter(b, cfg).Cumulative(points))
}
