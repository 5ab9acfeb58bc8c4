package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/t212"
	"github.com/google/subcommands"
)

type ordersCmd struct {
	filterFlags
	status string
}

func (*ordersCmd) Name() string     { return "orders" }
func (*ordersCmd) Synopsis() string { return "list the orders" }
func (*ordersCmd) Usage() string {
	return `tdash orders [-status <list>] [-from <date>] [-to <date>] [-tickers <list>]

  Lists the normalized orders, in the order of the history. Orders of every
  status are listed unless -status restricts them (e.g. -status FILLED,CANCELLED).
`
}

func (c *ordersCmd) SetFlags(f *flag.FlagSet) {
	c.filterFlags.SetFlags(f)
	f.StringVar(&c.status, "status", "", "Comma separated list of statuses, all by default")
}

// statuses parses a comma separated list of statuses.
func statuses(list string) []t212.Status {
	var res []t212.Status
	for _, s := range strings.Split(list, ",") {
		if s = strings.TrimSpace(s); s != "" {
			res = append(res, t212.ParseStatus(s))
		}
	}
	return res
}

func (c *ordersCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	orders := b.SelectStatus(filter, statuses(c.status)...)
	return display("Orders", orders, formatter(b, cfg).Orders(orders))
}
