package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"slices"

	"github.com/etnz/t212"
	"github.com/google/subcommands"
)

type stockCmd struct {
	filterFlags
}

func (*stockCmd) Name() string     { return "stock" }
func (*stockCmd) Synopsis() string { return "display the trades of a single stock" }
func (*stockCmd) Usage() string {
	return `tdash stock [-from <date>] [-to <date>] <ticker>

  Displays the position in a stock (quantity, cost, average price), the
  statistics of its trades, and every trade with the running total invested.
  The ticker is either the bare symbol (AAPL) or the full ticker (AAPL_US_EQ).
`
}

func (c *stockCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: exactly one ticker is required")
		return subcommands.ExitUsageError
	}
	ticker := f.Arg(0)
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
	if !slices.Contains(b.Symbols(), t212.Symbol(ticker)) {
		fmt.Fprintf(os.Stderr, "Error: no trades for %q\n", ticker)
		return subcommands.ExitFailure
	}

	detail := b.Stock(ticker, filter)
	r := formatter(b, cfg)
	return display(detail.Symbol, detail, r.Position(detail), r.Summary(detail.Summary), r.Trades(detail))
}
