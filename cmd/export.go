package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/etnz/t212"
	"github.com/google/subcommands"
)

type exportCmd struct {
	filterFlags
	format string
	output string
	status string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export the normalized orders as csv or json" }
func (*exportCmd) Usage() string {
	return `tdash export [-f csv|json] [-o <file>] [-status <list>] [-from <date>] [-to <date>] [-tickers <list>]

  Writes the normalized order table, with the raw fields and the derived
  symbol, cost, quantity and average price per share, to the standard output
  or to a file.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	c.filterFlags.SetFlags(f)
	f.StringVar(&c.format, "f", "csv", "Export format: csv or json")
	f.StringVar(&c.output, "o", "", "Output file, the standard output by default")
	f.StringVar(&c.status, "status", "", "Comma separated list of statuses, all by default")
}

func (c *exportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	filter, err := c.filter()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	var export func(io.Writer, []t212.Order) error
	switch c.format {
	case "csv":
		export = t212.ExportCSV
	case "json":
		export = t212.ExportJSON
	default:
		fmt.Fprintf(os.Stderr, "Unknown export format %q\n", c.format)
		return subcommands.ExitUsageError
	}

	b, _, err := openBook(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading orders: %v\n", err)
		return subcommands.ExitFailure
	}
	orders := b.SelectStatus(filter, statuses(c.status)...)

	var w io.Writer = os.Stdout
	if c.output != "" {
		file, err := os.Create(c.output)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating %q: %v\n", c.output, err)
			return subcommands.ExitFailure
		}
		defer file.Close()
		w = file
	}
	if err := export(w, orders); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
