package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/t212"
	"github.com/etnz/t212/config"
	"github.com/etnz/t212/trading212"
	"github.com/google/subcommands"
	"github.com/schollz/progressbar/v3"
)

type fetchCmd struct {
	output string
	quiet  bool
}

func (*fetchCmd) Name() string     { return "fetch" }
func (*fetchCmd) Synopsis() string { return "download the order history from the Trading 212 API" }
func (*fetchCmd) Usage() string {
	return `tdash fetch [-o <file>] [-q]

  Downloads the whole order history of the account, page by page, and writes
  it to the orders file (JSONL), replacing its content.

  The credentials are read from the environment (T212_API_KEY and
  T212_API_SECRET, or a .env file). They are asked for when missing and
  the standard input is a terminal.

  When the history cannot be fully downloaded, the orders retrieved so far
  are written anyway, and a warning is printed.
`
}

func (c *fetchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "Output file, the configured orders file by default")
	f.BoolVar(&c.quiet, "q", false, "Do not display the progress bar")
}

func (c *fetchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}
	client, err := newClient(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	output := c.output
	if output == "" {
		output = cfg.OrdersFile
	}

	progress := func(int, float64) {}
	if !c.quiet {
		bar := progressbar.NewOptions(100,
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetDescription("Fetching orders"),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
		defer bar.Finish()
		progress = func(fetched int, fraction float64) {
			bar.Describe(fmt.Sprintf("Fetching orders (%d)", fetched))
			bar.Set(int(fraction * 100))
		}
	}

	orders, fetchErr := client.FetchOrders(ctx, progress)
	if trading212.IsUnauthorized(fetchErr) {
		fmt.Fprintf(os.Stderr, "Check the credentials in %s and %s\n", config.EnvKey, config.EnvSecret)
	}
	if fetchErr != nil && len(orders) == 0 {
		fmt.Fprintf(os.Stderr, "Error fetching orders: %v\n", fetchErr)
		return subcommands.ExitFailure
	}

	file, err := os.Create(output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating orders file %q: %v\n", output, err)
		return subcommands.ExitFailure
	}
	defer file.Close()
	if err := t212.EncodeOrders(file, orders); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing orders file %q: %v\n", output, err)
		return subcommands.ExitFailure
	}

	if fetchErr != nil {
		fmt.Fprintf(os.Stderr, "Warning: history partially fetched, %d orders written to %s: %v\n", len(orders), output, fetchErr)
		return subcommands.ExitFailure
	}
	fmt.Printf("Successfully fetched %d orders into %s\n", len(orders), output)
	return subcommands.ExitSuccess
}
