package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type overviewCmd struct {
	filterFlags
	top int
}

func (*overviewCmd) Name() string     { return "overview" }
func (*overviewCmd) Synopsis() string { return "display the headline figures and rankings of the orders" }
func (*overviewCmd) Usage() string {
	return `tdash overview [-from <date>] [-to <date>] [-tickers <list>] [-n <count>]

  Displays the number of filled trades, the total invested, the number of
  stocks and of cancelled orders, followed by the largest investments, the
  most traded tickers and the activity per executor.
`
}

func (c *overviewCmd) SetFlags(f *flag.FlagSet) {
	c.filterFlags.SetFlags(f)
	f.IntVar(&c.top, "n", 5, "Number of entries in the rankings")
}

func (c *overviewCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	overview := b.Overview(filter)
	top := b.TopInvestments(filter, c.top)
	traded := b.MostTraded(filter, c.top)
	executors := b.Executors(filter)

	r := formatter(b, cfg)
	data := map[string]any{
		"overview":       overview,
		"topInvestments": top,
		"mostTraded":     traded,
		"executors":      executors,
	}
	return display("Trading 212 Dashboard", data,
		r.Overview(overview),
		r.TopInvestments(top),
		r.MostTraded(traded),
		r.Executors(executors),
	)
}
