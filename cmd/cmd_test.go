package cmd

import (
	"flag"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/etnz/t212"
	"github.com/etnz/t212/config"
	"github.com/etnz/t212/date"
	"github.com/etnz/t212/trading212"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseFilter(t *testing.T, args ...string) (t212.Filter, error) {
	t.Helper()
	var p filterFlags
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	p.SetFlags(fs)
	require.NoError(t, fs.Parse(args))
	return p.filter()
}

func TestFilterFlags(t *testing.T) {
	f, err := parseFilter(t)
	require.NoError(t, err)
	assert.True(t, f.Range.IsUnbounded())
	assert.Nil(t, f.Tickers)

	f, err = parseFilter(t, "-from", "2024-01-01", "-to", "2024-12-31", "-tickers", "AAPL, MSFT_US_EQ,")
	require.NoError(t, err)
	assert.Equal(t, date.New(2024, 1, 1), f.Range.From)
	assert.Equal(t, date.New(2024, 12, 31), f.Range.To)
	assert.Equal(t, []string{"AAPL", "MSFT_US_EQ"}, f.Tickers)

	_, err = parseFilter(t, "-from", "yesterday")
	assert.Error(t, err)
	_, err = parseFilter(t, "-to", "2024-13-01")
	assert.Error(t, err)
	_, err = parseFilter(t, "-from", "2024-12-31", "-to", "2024-01-01")
	assert.Error(t, err)
}

func TestStatuses(t *testing.T) {
	assert.Nil(t, statuses(""))
	assert.Equal(t, []t212.Status{t212.Filled, t212.Cancelled}, statuses("filled, CANCELLED,"))
}

func TestNewSource(t *testing.T) {
	cfg := config.Default()
	cfg.OrdersFile = filepath.Join(t.TempDir(), "orders.jsonl")

	src, err := newSource("", cfg)
	require.NoError(t, err)
	assert.IsType(t, t212.SampleSource{}, src, "no orders file")

	require.NoError(t, os.WriteFile(cfg.OrdersFile, nil, 0o644))
	src, err = newSource("", cfg)
	require.NoError(t, err)
	assert.Equal(t, t212.FileSource(cfg.OrdersFile), src)

	src, err = newSource(SourceSample, cfg)
	require.NoError(t, err)
	assert.IsType(t, t212.SampleSource{}, src)

	cfg.Key, cfg.Secret = "key", "secret"
	src, err = newSource(SourceAPI, cfg)
	require.NoError(t, err)
	assert.IsType(t, &trading212.Client{}, src)

	_, err = newSource("ftp", cfg)
	assert.Error(t, err)
}

func TestQuery(t *testing.T) {
	orders, err := t212.SampleSource{}.Orders(t.Context())
	require.NoError(t, err)
	b := t212.NewBook(orders, nil)

	res, err := query("$[?(@.symbol == \"AAPL\")].fillPrice", b.Orders())
	require.NoError(t, err)
	assert.Equal(t, []any{259.15}, res)

	res, err = query("$[?(@.status == \"CANCELLED\")].symbol", b.Orders())
	require.NoError(t, err)
	assert.ElementsMatch(t, []any{"ADC", "TFC"}, res)

	res, err = query("$[*].id", nil)
	require.NoError(t, err)
	assert.Empty(t, res)

	_, err = query("$[", b.Orders())
	assert.Error(t, err)
}

func TestCompletion(t *testing.T) {
	global := flag.NewFlagSet("tdash", flag.ContinueOnError)
	global.String("format", "markdown", "")
	global.Bool("v", false, "")

	c := Completion(global)
	assert.Contains(t, c.Flags, "format")
	assert.Contains(t, c.Flags, "v")

	for _, name := range []string{"overview", "holdings", "activity", "stock", "fetch", "export", "query", "serve"} {
		assert.Contains(t, c.Sub, name)
		assert.True(t, IsCommand(name), name)
	}
	assert.Contains(t, c.Sub["activity"].Flags, "p")
	assert.Contains(t, c.Sub["activity"].Flags, "hourly")
	assert.Contains(t, c.Sub["holdings"].Flags, "price")
	assert.Contains(t, c.Sub["serve"].Flags, "addr")

	assert.True(t, IsCommand("help"))
	assert.False(t, IsCommand("hello"))
}

func TestRunExtension(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("extensions are shell scripts in this test")
	}
	dir := t.TempDir()
	out := filepath.Join(dir, "out.txt")
	script := "#!/bin/sh\n" +
		"echo \"$" + EnvOrdersFile + " $" + EnvCurrency + " $" + EnvVerbose + " $1\" > \"$OUT\"\n" +
		"exit 3\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ExtensionPrefix+"hello"), []byte(script), 0o755))
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))
	t.Setenv("OUT", out)

	oldOrders, oldCurrency := *ordersFile, *currency
	*ordersFile, *currency = "my_orders.jsonl", "EUR"
	t.Cleanup(func() { *ordersFile, *currency = oldOrders, oldCurrency })

	found, code := RunExtension("hello", []string{"world"})
	assert.True(t, found)
	assert.Equal(t, 3, code)

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "my_orders.jsonl EUR false world\n", string(got))

	found, _ = RunExtension("does-not-exist", nil)
	assert.False(t, found)
}
