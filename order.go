package t212

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// Status is the lifecycle state of an order.
type Status string

const (
	Filled          Status = "FILLED"
	Cancelled       Status = "CANCELLED"
	Rejected        Status = "REJECTED"
	StatusNew       Status = "NEW"
	Local           Status = "LOCAL"
	Unconfirmed     Status = "UNCONFIRMED"
	Confirmed       Status = "CONFIRMED"
	PartiallyFilled Status = "PARTIALLY_FILLED"
	Replaced        Status = "REPLACED"
	Cancelling      Status = "CANCELLING"
	Replacing       Status = "REPLACING"
)

// ParseStatus parses a status case insensitively. Unknown statuses are kept verbatim.
func ParseStatus(s string) Status { return Status(strings.ToUpper(strings.TrimSpace(s))) }

// tickerSuffixes are the exchange qualifiers stripped from tickers, most specific first.
var tickerSuffixes = []string{"_US_EQ", "_EQ"}

// UnknownSymbol is the symbol of orders without a ticker.
const UnknownSymbol = "UNKNOWN"

// Symbol returns the bare symbol of a brokerage ticker: "AAPL_US_EQ" becomes "AAPL".
// A ticker made only of a suffix is returned unchanged, and a blank one is
// UnknownSymbol, so that a symbol is never empty.
func Symbol(ticker string) string {
	if strings.TrimSpace(ticker) == "" {
		return UnknownSymbol
	}
	for _, suffix := range tickerSuffixes {
		if s, ok := strings.CutSuffix(ticker, suffix); ok && s != "" {
			return s
		}
	}
	return ticker
}

// Order is a single brokerage order, as returned by the order history.
//
// The raw fields are never modified. The derived fields (Symbol, Cost,
// Quantity, AvgPrice) are computed by Normalize.
type Order struct {
	ID             int64
	Type           string
	Ticker         string
	OrderedValue   decimal.NullDecimal
	FilledValue    decimal.NullDecimal
	FillCost       decimal.NullDecimal
	FillPrice      decimal.NullDecimal
	FilledQuantity decimal.NullDecimal
	Executor       string
	DateCreated    time.Time
	Status         Status

	Symbol   string
	Cost     Money
	Quantity Quantity
	AvgPrice Money // average price per share, zero when nothing was filled.
}

// Normalize computes the derived fields from the raw ones. It is idempotent.
func (o *Order) Normalize() {
	o.Symbol = Symbol(o.Ticker)

	switch {
	case o.FillCost.Valid:
		o.Cost = M(o.FillCost.Decimal)
	case o.OrderedValue.Valid:
		o.Cost = M(o.OrderedValue.Decimal)
	default:
		o.Cost = Money{}
	}

	o.Quantity = Quantity{}
	if o.FilledQuantity.Valid && o.Status != Cancelled {
		o.Quantity = Q(o.FilledQuantity.Decimal)
	}

	o.AvgPrice = Money{}
	if o.Quantity.IsPositive() {
		o.AvgPrice = o.Cost.Div(o.Quantity)
	}
}

// IsFilled reports whether the order was executed.
func (o Order) IsFilled() bool { return o.Status == Filled }

// rawOrder is the wire representation of an Order.
type rawOrder struct {
	ID             int64               `json:"id"`
	Type           string              `json:"type"`
	Ticker         string              `json:"ticker"`
	OrderedValue   decimal.NullDecimal `json:"orderedValue"`
	FilledValue    decimal.NullDecimal `json:"filledValue"`
	FillCost       decimal.NullDecimal `json:"fillCost"`
	FillPrice      decimal.NullDecimal `json:"fillPrice"`
	FilledQuantity decimal.NullDecimal `json:"filledQuantity"`
	Executor       string              `json:"executor"`
	DateCreated    string              `json:"dateCreated"`
	Status         string              `json:"status"`
}

// dateLayouts are the timestamp layouts accepted for dateCreated.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.000Z0700",
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04:05",
}

// ParseTimestamp parses an ISO-8601 timestamp. Timestamps without a zone are UTC.
func ParseTimestamp(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", s)
}

// UnmarshalJSON decodes an order from the brokerage wire format and normalizes it.
// Missing fields are left absent, an invalid dateCreated is logged and left zero.
func (o *Order) UnmarshalJSON(data []byte) error {
	var raw rawOrder
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("cannot decode order: %w", err)
	}
	*o = Order{
		ID:             raw.ID,
		Type:           raw.Type,
		Ticker:         raw.Ticker,
		OrderedValue:   raw.OrderedValue,
		FilledValue:    raw.FilledValue,
		FillCost:       raw.FillCost,
		FillPrice:      raw.FillPrice,
		FilledQuantity: raw.FilledQuantity,
		Executor:       raw.Executor,
		Status:         ParseStatus(raw.Status),
	}
	if raw.DateCreated != "" {
		t, err := ParseTimestamp(raw.DateCreated)
		if err != nil {
			log.Warnf("order %d: %v", raw.ID, err)
		}
		o.DateCreated = t
	}
	o.Normalize()
	return nil
}

// MarshalJSON encodes the raw fields in the brokerage wire format, followed
// by the derived ones. Absent values are omitted.
func (o Order) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", o.ID)
	w.Optional("type", o.Type)
	w.Append("ticker", o.Ticker)
	w.Decimal("orderedValue", o.OrderedValue)
	w.Decimal("filledValue", o.FilledValue)
	w.Decimal("fillCost", o.FillCost)
	w.Decimal("fillPrice", o.FillPrice)
	w.Decimal("filledQuantity", o.FilledQuantity)
	w.Optional("executor", o.Executor)
	if !o.DateCreated.IsZero() {
		w.Append("dateCreated", o.DateCreated.UTC().Format("2006-01-02T15:04:05.000Z"))
	}
	w.Append("status", o.Status)
	w.Append("symbol", o.Symbol)
	w.Append("cost", o.Cost)
	w.Append("quantity", o.Quantity)
	w.Append("avgPricePerShare", o.AvgPrice)
	return w.MarshalJSON()
}

// Normalize returns normalized copies of orders. The input is left untouched.
func Normalize(orders []Order) []Order {
	out := make([]Order, len(orders))
	for i, o := range orders {
		o.Normalize()
		out[i] = o
	}
	return out
}
