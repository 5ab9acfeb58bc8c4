package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/t212"
	"github.com/google/subcommands"
)

type queryCmd struct {
	filterFlags
	status string
}

func (*queryCmd) Name() string     { return "query" }
func (*queryCmd) Synopsis() string { return "evaluate a JSONPath expression on the orders" }
func (*queryCmd) Usage() string {
	return `tdash query [-status <list>] [-from <date>] [-to <date>] [-tickers <list>] <expression>

  Evaluates a JSONPath expression on the json array of the normalized orders
  and prints the result as json.

  Examples:
    tdash query '$[*].symbol'
    tdash query '$[?(@.cost > 20)].id'
    tdash query -tickers AAPL '$[0].fillPrice'
`
}

func (c *queryCmd) SetFlags(f *flag.FlagSet) {
	c.filterFlags.SetFlags(f)
	f.StringVar(&c.status, "status", "", "Comma separated list of statuses, all by default")
}

// query evaluates the JSONPath expression on the json representation of orders.
func query(expr string, orders []t212.Order) (any, error) {
	if orders == nil {
		orders = []t212.Order{}
	}
	data, err := json.Marshal(orders)
	if err != nil {
		return nil, err
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	res, err := jsonpath.Get(expr, doc)
	if err != nil {
		return nil, fmt.Errorf("cannot evaluate %q: %w", expr, err)
	}
	return res, nil
}

func (c *queryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: exactly one expression is required")
		return subcommands.ExitUsageError
	}
	filter, err := c.filter()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	b, _, err := openBook(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading orders: %v\n", err)
		return subcommands.ExitFailure
	}

	res, err := query(f.Arg(0), b.SelectStatus(filter, statuses(c.status)...))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
