package t212

import (
	"slices"
	"time"

	"github.com/etnz/t212/date"
)

// Activity is the trading activity over a period of time.
type Activity struct {
	Range  date.Range `json:"range"` // the period, From is used as its label.
	Cost   Money      `json:"cost"`
	Trades int        `json:"trades"`
}

// HourActivity is the trading activity at a given hour of the day, across all days.
type HourActivity struct {
	Hour   int   `json:"hour"` // 0-23
	Cost   Money `json:"cost"`
	Trades int   `json:"trades"`
}

// CumulativePoint is one step of the cumulative investment curve.
type CumulativePoint struct {
	Time       time.Time `json:"time"`
	OrderID    int64     `json:"orderId"`
	Symbol     string    `json:"symbol"`
	Cost       Money     `json:"cost"`
	Cumulative Money     `json:"cumulative"`
}

// Daily returns the activity of each day that has filled orders accepted by f,
// in chronological order.
func (b *Book) Daily(f Filter) []Activity { return b.Activity(f, date.Daily) }

// Activity groups the filled orders accepted by f by period (day, week,
// month...), in chronological order. Periods without orders are omitted.
func (b *Book) Activity(f Filter, period date.Period) []Activity {
	index := make(map[date.Range]int)
	res := make([]Activity, 0)
	for _, o := range b.Select(f) {
		r := date.NewRange(b.Day(o), period)
		i, exists := index[r]
		if !exists {
			i = len(res)
			index[r] = i
			res = append(res, Activity{Range: r})
		}
		res[i].Cost = res[i].Cost.Add(o.Cost)
		res[i].Trades++
	}
	slices.SortFunc(res, func(a, b Activity) int { return a.Range.From.Compare(b.Range.From) })
	return res
}

// Hourly groups the filled orders accepted by f by hour of the day, all days
// merged. Hours without orders are omitted.
func (b *Book) Hourly(f Filter) []HourActivity {
	var hours [24]HourActivity
	for _, o := range b.Select(f) {
		h := b.Hour(o)
		hours[h].Cost = hours[h].Cost.Add(o.Cost)
		hours[h].Trades++
	}
	res := make([]HourActivity, 0)
	for h, a := range hours {
		if a.Trades > 0 {
			a.Hour = h
			res = append(res, a)
		}
	}
	return res
}

// Cumulative returns the running total of the cost of the filled orders
// accepted by f, sorted by creation time. The last point is the total cost.
func (b *Book) Cumulative(f Filter) []CumulativePoint {
	return cumulative(b.Select(f))
}

func cumulative(orders []Order) []CumulativePoint {
	res := make([]CumulativePoint, 0, len(orders))
	var sum Money
	for _, o := range chronological(orders) {
		sum = sum.Add(o.Cost)
		res = append(res, CumulativePoint{
			Time:       o.DateCreated,
			OrderID:    o.ID,
			Symbol:     o.Symbol,
			Cost:       o.Cost,
			Cumulative: sum,
		})
	}
	return res
}
