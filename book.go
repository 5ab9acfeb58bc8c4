package t212

import (
	"slices"
	"time"

	"github.com/etnz/t212/date"
)

// Book is the normalized collection of orders of an account. It computes
// every report on demand, from scratch, and never modifies the orders.
//
// Calendar days and hours are computed in the Book location.
type Book struct {
	orders []Order // normalized, in the order received from the source.
	loc    *time.Location
}

// NewBook normalizes orders into a new Book. A nil loc means UTC.
func NewBook(orders []Order, loc *time.Location) *Book {
	if loc == nil {
		loc = time.UTC
	}
	return &Book{orders: Normalize(orders), loc: loc}
}

// Location returns the time zone used to compute days and hours.
func (b *Book) Location() *time.Location { return b.loc }

// Len returns the number of orders, whatever their status.
func (b *Book) Len() int { return len(b.orders) }

// Orders returns a copy of all the orders.
func (b *Book) Orders() []Order { return slices.Clone(b.orders) }

// Day returns the calendar day on which o was created.
func (b *Book) Day(o Order) date.Date { return date.Of(o.DateCreated, b.loc) }

// Hour returns the hour of the day (0-23) at which o was created.
func (b *Book) Hour(o Order) int { return o.DateCreated.In(b.loc).Hour() }

// ByStatus returns the orders with one of the given statuses. No status means all.
func (b *Book) ByStatus(statuses ...Status) []Order {
	if len(statuses) == 0 {
		return b.Orders()
	}
	var res []Order
	for _, o := range b.orders {
		if slices.Contains(statuses, o.Status) {
			res = append(res, o)
		}
	}
	return res
}

// Filled returns the executed orders.
func (b *Book) Filled() []Order { return b.ByStatus(Filled) }

// Cancelled returns the cancelled orders.
func (b *Book) Cancelled() []Order { return b.ByStatus(Cancelled) }

// Others returns the orders that are neither filled nor cancelled.
func (b *Book) Others() []Order {
	var res []Order
	for _, o := range b.orders {
		if o.Status != Filled && o.Status != Cancelled {
			res = append(res, o)
		}
	}
	return res
}

// Statuses returns the distinct statuses, in order of first appearance.
func (b *Book) Statuses() []Status {
	var res []Status
	for _, o := range b.orders {
		if !slices.Contains(res, o.Status) {
			res = append(res, o.Status)
		}
	}
	return res
}

// Select returns the filled orders accepted by f, in the book order.
func (b *Book) Select(f Filter) []Order {
	return b.selectStatus(f, Filled)
}

// SelectStatus returns the orders accepted by f with one of the given statuses.
// No status means all.
func (b *Book) SelectStatus(f Filter, statuses ...Status) []Order {
	return b.selectStatus(f, statuses...)
}

func (b *Book) selectStatus(f Filter, statuses ...Status) []Order {
	res := make([]Order, 0)
	for _, o := range b.orders {
		if len(statuses) > 0 && !slices.Contains(statuses, o.Status) {
			continue
		}
		if f.accept(o, b.loc) {
			res = append(res, o)
		}
	}
	return res
}

// Symbols returns the sorted list of distinct symbols of filled orders.
func (b *Book) Symbols() []string {
	var res []string
	for _, o := range b.orders {
		if o.IsFilled() && !slices.Contains(res, o.Symbol) {
			res = append(res, o.Symbol)
		}
	}
	slices.Sort(res)
	return res
}

// Span returns the range of days covered by the filled orders.
func (b *Book) Span() date.Range { return b.span(b.Filled()) }

func (b *Book) span(orders []Order) date.Range {
	var r date.Range
	for _, o := range orders {
		d := b.Day(o)
		if r.From.IsZero() || d.Before(r.From) {
			r.From = d
		}
		if r.To.IsZero() || d.After(r.To) {
			r.To = d
		}
	}
	return r
}

// chronological returns a copy of orders sorted by creation time. Orders
// created at the same time keep their relative order.
func chronological(orders []Order) []Order {
	res := slices.Clone(orders)
	slices.SortStableFunc(res, func(a, b Order) int { return a.DateCreated.Compare(b.DateCreated) })
	return res
}
