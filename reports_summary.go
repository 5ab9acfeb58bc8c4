package t212

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/etnz/t212/date"
	"github.com/montanaflynn/stats"
)

// Summary holds descriptive statistics on the cost of a set of filled orders.
//
// Every field is zero for an empty set.
type Summary struct {
	Count        int       `json:"count"`
	Total        Money     `json:"total"`
	Mean         Money     `json:"mean"`
	Median       float64   `json:"median"`
	StdDev       float64   `json:"stdDev"` // sample standard deviation, zero with less than two orders.
	Max          Money     `json:"max"`
	First        time.Time `json:"first,omitzero"`
	Last         time.Time `json:"last,omitzero"`
	Days         int       `json:"days"`         // calendar days from the first to the last order, both included.
	TradesPerDay float64   `json:"tradesPerDay"` // Count / Days.
}

// Overview holds the headline figures of the account.
type Overview struct {
	FilledTrades    int        `json:"filledTrades"`
	TotalInvested   Money      `json:"totalInvested"`
	UniqueStocks    int        `json:"uniqueStocks"`
	CancelledOrders int        `json:"cancelledOrders"`
	Span            date.Range `json:"span"`
}

// TickerCount is the number of filled orders of a symbol.
type TickerCount struct {
	Symbol string `json:"symbol"`
	Trades int    `json:"trades"`
}

// ExecutorActivity is the activity originated by an executor (AUTOINVEST, ...).
type ExecutorActivity struct {
	Executor string `json:"executor"`
	Trades   int    `json:"trades"`
	Cost     Money  `json:"cost"`
}

// Summary computes the statistics of the filled orders accepted by f.
func (b *Book) Summary(f Filter) Summary { return b.summarize(b.Select(f)) }

func (b *Book) summarize(orders []Order) Summary {
	var s Summary
	if len(orders) == 0 {
		return s
	}
	costs := make([]float64, 0, len(orders))
	for i, o := range orders {
		s.Count++
		s.Total = s.Total.Add(o.Cost)
		if i == 0 || o.Cost.GreaterThan(s.Max) {
			s.Max = o.Cost
		}
		if s.First.IsZero() || o.DateCreated.Before(s.First) {
			s.First = o.DateCreated
		}
		if o.DateCreated.After(s.Last) {
			s.Last = o.DateCreated
		}
		costs = append(costs, o.Cost.AsFloat())
	}
	s.Mean = s.Total.DivInt(s.Count)

	// errors are only returned on empty input, which is excluded above.
	s.Median, _ = stats.Median(costs)
	if len(costs) > 1 {
		s.StdDev, _ = stats.StandardDeviationSample(costs)
	}

	s.Days = date.Of(s.Last, b.loc).Sub(date.Of(s.First, b.loc)) + 1
	s.TradesPerDay = float64(s.Count) / float64(max(s.Days, 1))
	return s
}

// Overview computes the headline figures for orders accepted by f.
func (b *Book) Overview(f Filter) Overview {
	filled := b.Select(f)
	o := Overview{
		FilledTrades:    len(filled),
		CancelledOrders: len(b.SelectStatus(f, Cancelled)),
		Span:            b.span(filled),
	}
	symbols := make(map[string]struct{})
	for _, order := range filled {
		o.TotalInvested = o.TotalInvested.Add(order.Cost)
		symbols[order.Symbol] = struct{}{}
	}
	o.UniqueStocks = len(symbols)
	return o
}

// TopInvestments returns the n filled orders with the largest cost, largest first.
// A negative n means all of them.
func (b *Book) TopInvestments(f Filter, n int) []Order {
	orders := b.Select(f)
	slices.SortStableFunc(orders, func(x, y Order) int { return y.Cost.Compare(x.Cost) })
	return head(orders, n)
}

// MostTraded returns the n symbols with the most filled orders, most traded first.
// A negative n means all of them.
func (b *Book) MostTraded(f Filter, n int) []TickerCount {
	index := make(map[string]int)
	res := make([]TickerCount, 0)
	for _, o := range b.Select(f) {
		i, exists := index[o.Symbol]
		if !exists {
			i = len(res)
			index[o.Symbol] = i
			res = append(res, TickerCount{Symbol: o.Symbol})
		}
		res[i].Trades++
	}
	slices.SortFunc(res, func(x, y TickerCount) int {
		if c := cmp.Compare(y.Trades, x.Trades); c != 0 {
			return c
		}
		return strings.Compare(x.Symbol, y.Symbol)
	})
	return head(res, n)
}

// Executors groups the filled orders accepted by f by executor, largest cost first.
func (b *Book) Executors(f Filter) []ExecutorActivity {
	index := make(map[string]int)
	res := make([]ExecutorActivity, 0)
	for _, o := range b.Select(f) {
		i, exists := index[o.Executor]
		if !exists {
			i = len(res)
			index[o.Executor] = i
			res = append(res, ExecutorActivity{Executor: o.Executor})
		}
		res[i].Trades++
		res[i].Cost = res[i].Cost.Add(o.Cost)
	}
	slices.SortStableFunc(res, func(x, y ExecutorActivity) int { return y.Cost.Compare(x.Cost) })
	return res
}

func head[T any](s []T, n int) []T {
	if n < 0 || n >= len(s) {
		return s
	}
	return s[:n]
}
