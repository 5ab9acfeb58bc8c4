package t212

import "encoding/json"

// StockTrade is a filled order of a stock, with the running total invested in that stock.
type StockTrade struct {
	Order
	Cumulative Money
}

// MarshalJSON encodes the order and the running total side by side, the
// order encoding would hide the running total otherwise.
func (t StockTrade) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Order      Order `json:"order"`
		Cumulative Money `json:"cumulative"`
	}{t.Order, t.Cumulative})
}

// StockDetail is the history of a single stock.
type StockDetail struct {
	Symbol   string       `json:"symbol"`
	Trades   []StockTrade `json:"trades"` // sorted by creation time.
	Quantity Quantity     `json:"quantity"`
	AvgPrice Money        `json:"avgPrice"` // total cost divided by total quantity.
	Summary  Summary      `json:"summary"`
}

// Stock returns the detail of the filled orders of symbol accepted by f.
// The symbol is matched like a Filter ticker, and f's own tickers are ignored.
func (b *Book) Stock(symbol string, f Filter) StockDetail {
	orders := b.Select(f.Only(symbol))

	detail := StockDetail{
		Symbol:  symbol,
		Trades:  make([]StockTrade, 0, len(orders)),
		Summary: b.summarize(orders),
	}
	var sum Money
	for _, o := range chronological(orders) {
		sum = sum.Add(o.Cost)
		detail.Quantity = detail.Quantity.Add(o.Quantity)
		detail.Trades = append(detail.Trades, StockTrade{Order: o, Cumulative: sum})
		detail.Symbol = o.Symbol
	}
	detail.AvgPrice = sum.Div(detail.Quantity)
	return detail
}
