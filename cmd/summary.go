package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type summaryCmd struct {
	filterFlags
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display statistics on the cost of the filled orders" }
func (*summaryCmd) Usage() string {
	return `tdash summary [-from <date>] [-to <date>] [-tickers <list>]

  Displays the number of trades, the total, average, median, standard
  deviation and maximum cost of the filled orders, and the trading frequency.
`
}

func (c *summaryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	s := b.Summary(filter)
	return display("Performance Summary", s, formatter(b, cfg).Summary(s))
}
