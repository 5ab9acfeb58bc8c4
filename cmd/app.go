// Package cmd implements the tdash CLI, a dashboard of a Trading 212 order history.
package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/t212"
	"github.com/etnz/t212/config"
	"github.com/etnz/t212/renderer"
	"github.com/etnz/t212/trading212"
	"github.com/google/subcommands"
	log "github.com/sirupsen/logrus"
	"golang.org/x/term"
)

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	configFile   = flag.String("config", "tdash.yaml", "Path to the configuration file (YAML)")
	ordersFile   = flag.String("orders-file", "", "Path to the orders file (JSON or JSONL), overrides the configuration")
	sourceName   = flag.String("source", "", "Source of the orders: api, file or sample (default: file if it exists, sample otherwise)")
	outputFormat = flag.String("format", "markdown", "Output format: markdown, text or json")
	currency     = flag.String("currency", "", "Currency used to format amounts, overrides the configuration")
	Verbose      = flag.Bool("v", false, "Verbose output")
)

// Source names.
const (
	SourceAPI    = "api"
	SourceFile   = "file"
	SourceSample = "sample"
)

// SetupLogging configures the logger from the global flags.
func SetupLogging() {
	log.SetOutput(os.Stderr)
	log.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
	log.SetLevel(log.WarnLevel)
	if *Verbose {
		log.SetLevel(log.DebugLevel)
	}
}

// loadConfig reads the configuration file, the environment, and applies the global flags.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(*configFile)
	if err != nil {
		return cfg, err
	}
	if err := cfg.LoadEnv(); err != nil {
		return cfg, err
	}
	if *ordersFile != "" {
		cfg.OrdersFile = *ordersFile
	}
	if *currency != "" {
		cfg.Currency = *currency
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// newClient returns a Trading 212 client, asking for the credentials if they are unknown.
func newClient(cfg config.Config) (*trading212.Client, error) {
	if !cfg.HasCredentials() {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return nil, fmt.Errorf("missing credentials: set %s and %s", config.EnvKey, config.EnvSecret)
		}
		if err := cfg.Prompt(os.Stdin, os.Stderr); err != nil {
			return nil, err
		}
	}
	opts := []trading212.Option{
		trading212.WithTimeout(cfg.Timeout),
		trading212.WithRateLimit(cfg.RatePerMinute),
	}
	if cfg.HTTPCache {
		opts = append(opts, trading212.WithDiskCache(cfg.CacheDir))
	}
	return trading212.New(cfg.BaseURL, cfg.Key, cfg.Secret, opts...), nil
}

// newSource returns the source of orders selected by name.
func newSource(name string, cfg config.Config) (t212.Source, error) {
	if name == "" {
		name = SourceSample
		if _, err := os.Stat(cfg.OrdersFile); err == nil {
			name = SourceFile
		}
		log.Debugf("using %s source", name)
	}
	switch name {
	case SourceAPI:
		return newClient(cfg)
	case SourceFile:
		return t212.FileSource(cfg.OrdersFile), nil
	case SourceSample:
		return t212.SampleSource{}, nil
	default:
		return nil, fmt.Errorf("unknown source %q", name)
	}
}

// openSession opens a session on the source selected by the global flags.
func openSession() (*t212.Session, config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, cfg, err
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, cfg, err
	}
	src, err := newSource(*sourceName, cfg)
	if err != nil {
		return nil, cfg, err
	}
	return t212.NewSession(src, loc), cfg, nil
}

// openBook loads the Book of the source selected by the global flags.
// Partial loads are reported but not fatal.
func openBook(ctx context.Context) (*t212.Book, config.Config, error) {
	s, cfg, err := openSession()
	if err != nil {
		return nil, cfg, err
	}
	b, err := s.Book(ctx)
	if err != nil && b.Len() == 0 {
		return nil, cfg, err
	}
	if err != nil {
		log.Warnf("orders only partially loaded (%d orders): %v", b.Len(), err)
	}
	return b, cfg, nil
}

// formatter returns the table formatter for cfg.
func formatter(b *t212.Book, cfg config.Config) renderer.Formatter {
	return renderer.Formatter{Currency: cfg.Currency, Location: b.Location()}
}

// display prints the tables in the selected output format. The json format
// prints data instead.
func display(title string, data any, tables ...renderer.Table) subcommands.ExitStatus {
	switch *outputFormat {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(data); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding json: %v\n", err)
			return subcommands.ExitFailure
		}
	case "text":
		if err := renderer.Text(os.Stdout, tables...); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing tables: %v\n", err)
			return subcommands.ExitFailure
		}
	case "markdown", "md":
		printMarkdown(renderer.Markdown(title, tables...))
	default:
		fmt.Fprintf(os.Stderr, "Unknown output format %q\n", *outputFormat)
		return subcommands.ExitUsageError
	}
	return subcommands.ExitSuccess
}

// printMarkdown renders md for the terminal, or prints it as is when stdout is not a terminal.
func printMarkdown(md string) {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Print(md)
		return
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err != nil {
		fmt.Print(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
