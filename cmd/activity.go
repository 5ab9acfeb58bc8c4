package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/t212/date"
	"github.com/google/subcommands"
)

type activityCmd struct {
	filterFlags
	period string
	hourly bool
}

func (*activityCmd) Name() string     { return "activity" }
func (*activityCmd) Synopsis() string { return "display the trading activity per period or per hour of the day" }
func (*activityCmd) Usage() string {
	return `tdash activity [-p <period>] [-hourly] [-from <date>] [-to <date>] [-tickers <list>]

  Displays the amount invested and the number of trades per period (day,
  week, month, quarter, year). Periods without trades are omitted.

  With -hourly, displays them per hour of the day instead, all days merged.
`
}

func (c *activityCmd) SetFlags(f *flag.FlagSet) {
	c.filterFlags.SetFlags(f)
	f.StringVar(&c.period, "p", "day", "Period of the activity (day, week, month, quarter, year)")
	f.BoolVar(&c.hourly, "hourly", false, "Group the activity by hour of the day")
}

func (c *activityCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	filter, err := c.filter()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	period, err := date.ParsePeriod(c.period)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	b, cfg, err := openBook(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading orders: %v\n", err)
		return subcommands.ExitFailure
	}

	r := formatter(b, cfg)
	if c.hourly {
		hours := b.Hourly(filter)
		return display("Trading Activity by Hour", hours, r.Hourly(hours))
	}
	activity := b.Activity(filter, period)
	return display("Trading Activity", activity, r.Activity(activity, period))
}
