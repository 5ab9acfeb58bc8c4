package renderer

import (
	"fmt"
	"strings"
	"time"

	"github.com/etnz/t212"
	"github.com/etnz/t212/date"
)

// Align is the alignment of a table column.
type Align int

const (
	Left Align = iota
	Right
)

// IsRight reports whether the column is right aligned.
func (a Align) IsRight() bool { return a == Right }

// Table is a report ready to be displayed: plain strings under display column names.
type Table struct {
	Title  string
	Header []string
	Align  []Align // one per header column.
	Rows   [][]string
}

// Column returns the cells of the named column, or nil if there is no such column.
func (t Table) Column(name string) []string {
	for i, h := range t.Header {
		if h == name {
			col := make([]string, 0, len(t.Rows))
			for _, row := range t.Rows {
				col = append(col, row[i])
			}
			return col
		}
	}
	return nil
}

// Formatter maps reports to Tables.
type Formatter struct {
	Currency string         // ISO code used to format amounts, none means plain decimals.
	Location *time.Location // used to display timestamps, nil means UTC.
}

func (f Formatter) money(m t212.Money) string {
	if f.Currency == "" {
		return m.String()
	}
	return m.Format(f.Currency)
}

func (f Formatter) timestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	loc := f.Location
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format("2006-01-02 15:04")
}

func (f Formatter) price(o t212.Order) string {
	if !o.FillPrice.Valid {
		return ""
	}
	return f.money(t212.M(o.FillPrice.Decimal))
}

// Overview maps the headline figures.
func (f Formatter) Overview(o t212.Overview) Table {
	return Table{
		Title:  "Overview",
		Header: []string{"Metric", "Value"},
		Align:  []Align{Left, Right},
		Rows: [][]string{
			{"Filled Trades", fmt.Sprint(o.FilledTrades)},
			{"Total Invested", f.money(o.TotalInvested)},
			{"Unique Stocks", fmt.Sprint(o.UniqueStocks)},
			{"Cancelled Orders", fmt.Sprint(o.CancelledOrders)},
			{"First Trade", o.Span.From.String()},
			{"Last Trade", o.Span.To.String()},
		},
	}
}

// Summary maps the statistics of a set of trades.
func (f Formatter) Summary(s t212.Summary) Table {
	return Table{
		Title:  "Summary",
		Header: []string{"Metric", "Value"},
		Align:  []Align{Left, Right},
		Rows: [][]string{
			{"Trades", fmt.Sprint(s.Count)},
			{"Total Invested", f.money(s.Total)},
			{"Average Trade", f.money(s.Mean)},
			{"Median Trade", fmt.Sprintf("%.2f", s.Median)},
			{"Standard Deviation", fmt.Sprintf("%.2f", s.StdDev)},
			{"Largest Trade", f.money(s.Max)},
			{"First Trade", f.timestamp(s.First)},
			{"Last Trade", f.timestamp(s.Last)},
			{"Days", fmt.Sprint(s.Days)},
			{"Trades per Day", fmt.Sprintf("%.2f", s.TradesPerDay)},
		},
	}
}

// Holdings maps the holdings allocation.
func (f Formatter) Holdings(holdings []t212.Holding) Table {
	t := Table{
		Title:  "Holdings",
		Header: []string{"Ticker", "Total Quantity", "Total Cost", "Avg Price", "Trades", "% of Portfolio"},
		Align:  []Align{Left, Right, Right, Right, Right, Right},
	}
	for _, h := range holdings {
		t.Rows = append(t.Rows, []string{h.Symbol, h.Quantity.String(), f.money(h.Cost), f.money(h.Price), fmt.Sprint(h.Trades), h.Share.String()})
	}
	return t
}

// Activity maps the activity per period, labelled by the period identifier.
func (f Formatter) Activity(activity []t212.Activity, period date.Period) Table {
	label := "Period"
	if period == date.Daily {
		label = "Date"
	}
	t := Table{
		Title:  capitalize(period.String()) + " Activity",
		Header: []string{label, "Amount Invested", "Number of Trades"},
		Align:  []Align{Left, Right, Right},
	}
	for _, a := range activity {
		t.Rows = append(t.Rows, []string{a.Range.Identifier(), f.money(a.Cost), fmt.Sprint(a.Trades)})
	}
	return t
}

// Hourly maps the activity per hour of the day.
func (f Formatter) Hourly(hours []t212.HourActivity) Table {
	t := Table{
		Title:  "Hourly Activity",
		Header: []string{"Hour", "Amount Invested", "Number of Trades"},
		Align:  []Align{Left, Right, Right},
	}
	for _, h := range hours {
		t.Rows = append(t.Rows, []string{fmt.Sprintf("%02d:00", h.Hour), f.money(h.Cost), fmt.Sprint(h.Trades)})
	}
	return t
}

// Cumulative maps the cumulative investment curve.
func (f Formatter) Cumulative(points []t212.CumulativePoint) Table {
	t := Table{
		Title:  "Cumulative Investment",
		Header: []string{"Date", "Ticker", "Cost", "Cumulative Invested"},
		Align:  []Align{Left, Left, Right, Right},
	}
	for _, p := range points {
		t.Rows = append(t.Rows, []string{f.timestamp(p.Time), p.Symbol, f.money(p.Cost), f.money(p.Cumulative)})
	}
	return t
}

// Orders maps a list of orders.
func (f Formatter) Orders(orders []t212.Order) Table {
	t := Table{
		Title:  "Orders",
		Header: []string{"Date", "Ticker", "Quantity", "Fill Price", "Cost", "Status"},
		Align:  []Align{Left, Left, Right, Right, Right, Left},
	}
	for _, o := range orders {
		t.Rows = append(t.Rows, []string{f.timestamp(o.DateCreated), o.Symbol, o.Quantity.String(), f.price(o), f.money(o.Cost), string(o.Status)})
	}
	return t
}

// Trades maps the trades of a stock, with the running total.
func (f Formatter) Trades(detail t212.StockDetail) Table {
	t := Table{
		Title:  "Trades",
		Header: []string{"Date", "Quantity", "Fill Price", "Cost", "Cumulative Invested"},
		Align:  []Align{Left, Right, Right, Right, Right},
	}
	for _, tr := range detail.Trades {
		t.Rows = append(t.Rows, []string{f.timestamp(tr.DateCreated), tr.Quantity.String(), f.price(tr.Order), f.money(tr.Cost), f.money(tr.Cumulative)})
	}
	return t
}

// Position maps the aggregated position in a stock.
func (f Formatter) Position(detail t212.StockDetail) Table {
	return Table{
		Title:  "Position",
		Header: []string{"Metric", "Value"},
		Align:  []Align{Left, Right},
		Rows: [][]string{
			{"Total Quantity", detail.Quantity.String()},
			{"Total Cost", f.money(detail.Summary.Total)},
			{"Avg Price", f.money(detail.AvgPrice)},
			{"Trades", fmt.Sprint(len(detail.Trades))},
		},
	}
}

// TopInvestments maps the largest orders.
func (f Formatter) TopInvestments(orders []t212.Order) Table {
	t := Table{
		Title:  "Top Investments",
		Header: []string{"Date", "Ticker", "Cost"},
		Align:  []Align{Left, Left, Right},
	}
	for _, o := range orders {
		t.Rows = append(t.Rows, []string{f.timestamp(o.DateCreated), o.Symbol, f.money(o.Cost)})
	}
	return t
}

// MostTraded maps the most traded tickers.
func (f Formatter) MostTraded(counts []t212.TickerCount) Table {
	t := Table{
		Title:  "Most Traded",
		Header: []string{"Ticker", "Number of Trades"},
		Align:  []Align{Left, Right},
	}
	for _, c := range counts {
		t.Rows = append(t.Rows, []string{c.Symbol, fmt.Sprint(c.Trades)})
	}
	return t
}

// Executors maps the activity per executor.
func (f Formatter) Executors(executors []t212.ExecutorActivity) Table {
	t := Table{
		Title:  "Executors",
		Header: []string{"Executor", "Number of Trades", "Amount Invested"},
		Align:  []Align{Left, Right, Right},
	}
	for _, e := range executors {
		t.Rows = append(t.Rows, []string{e.Executor, fmt.Sprint(e.Trades), f.money(e.Cost)})
	}
	return t
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
