package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/etnz/t212/server"
	"github.com/google/subcommands"
	log "github.com/sirupsen/logrus"
)

type serveCmd struct {
	addr string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serve the dashboard reports over HTTP" }
func (*serveCmd) Usage() string {
	return `tdash serve [-addr <host:port>]

  Serves the reports as a json API under /api. The orders are loaded once
  and kept for the session, POST /api/reload loads them again.

  Routes:
    GET  /api/overview          headline figures
    GET  /api/summary           statistics on the cost of the trades
    GET  /api/holdings          holdings allocation (?price=first|mean)
    GET  /api/activity/{period} activity per day, week, month, quarter or year
    GET  /api/activity/hourly   activity per hour of the day
    GET  /api/cumulative        cumulative investment
    GET  /api/rankings          top investments, most traded, executors (?n=5)
    GET  /api/orders            normalized orders (?status=FILLED,CANCELLED)
    GET  /api/stocks/{ticker}   trades of a single stock
    GET  /api/export.csv        normalized orders as csv
    GET  /api/export.json       normalized orders as json
    POST /api/reload            reload the orders

  Every report accepts the from, to (YYYY-MM-DD) and tickers query parameters.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.addr, "addr", ":8080", "Address to listen on")
}

func (c *serveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	session, _, err := openSession()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// load eagerly, so that a broken source is reported at startup.
	if b, err := session.Book(ctx); err != nil {
		log.Warnf("orders loaded with error (%d orders): %v", b.Len(), err)
	}

	log.Infof("serving dashboard on %s", c.addr)
	fmt.Fprintf(os.Stderr, "Serving dashboard on %s\n", c.addr)
	if err := server.New(session).ListenAndServe(ctx, c.addr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
