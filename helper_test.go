package t212

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// dec returns a present decimal from its string representation.
func dec(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

// at parses a RFC3339 timestamp, or panics.
func at(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

// filled returns a filled market order.
func filled(id int64, ticker, created, cost, quantity, price string) Order {
	o := Order{
		ID:             id,
		Type:           "MARKET",
		Ticker:         ticker,
		OrderedValue:   dec(cost),
		FilledValue:    dec(cost),
		FillCost:       dec(cost),
		FillPrice:      dec(price),
		FilledQuantity: dec(quantity),
		Executor:       "AUTOINVEST",
		DateCreated:    at(created),
		Status:         Filled,
	}
	o.Normalize()
	return o
}

// cancelled returns a cancelled market order.
func cancelled(id int64, ticker, created, ordered string) Order {
	o := Order{
		ID:           id,
		Type:         "MARKET",
		Ticker:       ticker,
		OrderedValue: dec(ordered),
		FilledValue:  dec("0"),
		Executor:     "AUTOINVEST",
		DateCreated:  at(created),
		Status:       Cancelled,
	}
	o.Normalize()
	return o
}

// sampleBook returns the Book of the embedded sample, in UTC.
func sampleBook() *Book {
	orders, err := SampleSource{}.Orders(context.Background())
	if err != nil {
		panic(err)
	}
	return NewBook(orders, time.UTC)
}

// sampleTotal is the total cost of the filled orders of the embedded sample.
var sampleTotal = M(decimal.RequireFromString("199.94"))
