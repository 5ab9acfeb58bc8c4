package renderer

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/etnz/t212"
	"github.com/etnz/t212/date"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleBook(t *testing.T) *t212.Book {
	t.Helper()
	orders, err := t212.SampleSource{}.Orders(context.Background())
	require.NoError(t, err)
	return t212.NewBook(orders, time.UTC)
}

func TestFormatter_Holdings(t *testing.T) {
	b := sampleBook(t)
	table := Formatter{Currency: "USD"}.Holdings(b.Holdings(t212.All.Only("AAPL", "MSFT"), t212.PriceFirst))

	assert.Equal(t, []string{"Ticker", "Total Quantity", "Total Cost", "Avg Price", "Trades", "% of Portfolio"}, table.Header)
	assert.Len(t, table.Align, len(table.Header))
	assert.Equal(t, []string{"MSFT", "AAPL"}, table.Column("Ticker"))
	assert.Equal(t, []string{"$22.00", "$14.00"}, table.Column("Total Cost"))
	assert.Equal(t, []string{"61.11%", "38.89%"}, table.Column("% of Portfolio"))
	assert.Nil(t, table.Column("Missing"))
}

func TestFormatter_Activity(t *testing.T) {
	b := sampleBook(t)

	daily := Formatter{}.Activity(b.Daily(t212.All), date.Daily)
	assert.Equal(t, "Daily Activity", daily.Title)
	assert.Equal(t, []string{"Date", "Amount Invested", "Number of Trades"}, daily.Header)
	assert.Equal(t, [][]string{{"2025-10-20", "199.94", "18"}}, daily.Rows)

	monthly := Formatter{}.Activity(b.Activity(t212.All, date.Monthly), date.Monthly)
	assert.Equal(t, "Period", monthly.Header[0])
	assert.Equal(t, []string{"2025-10"}, monthly.Column("Period"))

	hourly := Formatter{}.Hourly(b.Hourly(t212.All))
	assert.Equal(t, []string{"13:00"}, hourly.Column("Hour"))
}

func TestFormatter_Orders(t *testing.T) {
	b := sampleBook(t)
	paris, err := time.LoadLocation("Europe/Paris")
	require.NoError(t, err)

	table := Formatter{Location: paris}.Orders(b.Cancelled())
	assert.Equal(t, []string{"Date", "Ticker", "Quantity", "Fill Price", "Cost", "Status"}, table.Header)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, []string{"2024-08-03 19:08", "ADC", "0", "", "5.00", "CANCELLED"}, table.Rows[0])
}

func TestFormatter_Stock(t *testing.T) {
	detail := sampleBook(t).Stock("AAPL", t212.All)
	f := Formatter{Currency: "USD"}

	trades := f.Trades(detail)
	assert.Equal(t, []string{"$14.00"}, trades.Column("Cumulative Invested"))

	position := f.Position(detail)
	assert.Equal(t, []string{"Total Quantity", "0.0629322"}, position.Rows[0])
}

func TestMarkdown(t *testing.T) {
	table := Table{
		Title:  "Holdings",
		Header: []string{"Ticker", "Total Cost"},
		Align:  []Align{Left, Right},
		Rows:   [][]string{{"AAPL", "20.00"}, {"A|B", "1.00"}},
	}
	empty := Table{Title: "Nothing", Header: []string{"Ticker"}, Align: []Align{Left}}

	got := Markdown("Report", table, empty)
	want := `# Report

## Holdings

| Ticker | Total Cost |
|:---|---:|
| AAPL | 20.00 |
| A\|B | 1.00 |

## Nothing

_No data._
`
	assert.Equal(t, want, got)
}

func TestText(t *testing.T) {
	b := sampleBook(t)
	f := Formatter{}

	var buf bytes.Buffer
	require.NoError(t, Text(&buf, f.Overview(b.Overview(t212.All)), f.MostTraded(nil)))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "Overview\n"))
	assert.Contains(t, out, "Total Invested")
	assert.Contains(t, out, "199.94")
	assert.Contains(t, out, "Most Traded\nNo data.\n")
}
