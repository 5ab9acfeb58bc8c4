package t212

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money represents a monetary value in the account currency.
//
// Orders do not carry their currency, so Money is a plain decimal amount and
// the currency only matters when formatting.
type Money struct {
	value decimal.Decimal // as major unit value
}

// M returns a new Money.
func M[T number](value T) Money {
	return Money{value: newDecimal(value)}
}

// Format returns the amount formatted for the given ISO currency code, e.g. "$20.00".
func (m Money) Format(currency string) string {
	// to get a never nil currency I need to call the Money constructor
	cur := *money.New(0, currency).Currency()
	dec := m.value.Round(int32(cur.Fraction)).Shift(int32(cur.Fraction))
	return cur.Formatter().Format(dec.IntPart())
}

// String returns the amount with two decimals.
func (m Money) String() string { return m.value.StringFixed(2) }

func (m Money) Equal(n Money) bool         { return m.value.Equal(n.value) }
func (m Money) IsZero() bool               { return m.value.IsZero() }
func (m Money) IsPositive() bool           { return m.value.IsPositive() }
func (m Money) LessThan(amount Money) bool { return m.value.LessThan(amount.value) }
func (m Money) GreaterThan(n Money) bool   { return m.value.GreaterThan(n.value) }
func (m Money) Compare(n Money) int        { return m.value.Cmp(n.value) }
func (m Money) Add(n Money) Money          { return Money{value: m.value.Add(n.value)} }
func (m Money) DivInt(n int) Money         { return Money{value: m.value.Div(decimal.NewFromInt(int64(n)))} }

// Div returns the price per unit of quantity. Dividing by a zero quantity
// returns zero instead of failing.
func (m Money) Div(n Quantity) Money {
	if n.IsZero() {
		return Money{}
	}
	return Money{value: m.value.Div(n.value)}
}

// Ratio returns m/n as a float, or 0 when n is zero.
func (m Money) Ratio(n Money) float64 {
	if n.IsZero() {
		return 0
	}
	return m.value.Div(n.value).InexactFloat64()
}

// AsFloat returns the amount as a float64, for statistics only.
func (m Money) AsFloat() float64           { return m.value.InexactFloat64() }

// MarshalJSON writes the amount as a JSON number.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.value.String()), nil
}

func (m *Money) UnmarshalJSON(decimalBytes []byte) error {
	return m.value.UnmarshalJSON(decimalBytes)
}

// MarshalCSV formats the amount for csv export.
func (m Money) MarshalCSV() (string, error) { return m.value.String(), nil }
