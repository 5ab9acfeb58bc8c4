package t212

import (
	"slices"
	"strings"
)

// Holding is the rollup of the filled orders of a single symbol.
type Holding struct {
	Symbol   string   `json:"symbol"`
	Quantity Quantity `json:"quantity"` // total number of shares bought.
	Cost     Money    `json:"cost"`     // total amount invested.
	Price    Money    `json:"price"`    // representative fill price, see PriceMethod.
	Trades   int      `json:"trades"`
	Share    Percent  `json:"share"` // share of Cost in the total cost of the rollup.
}

// Holdings groups the filled orders accepted by f by symbol.
//
// Holdings are sorted by decreasing cost, then by symbol. The sum of the
// holdings cost equals the total cost of the selected orders.
func (b *Book) Holdings(f Filter, method PriceMethod) []Holding {
	orders := b.Select(f)

	index := make(map[string]int)
	holdings := make([]Holding, 0)
	prices := make([][]Money, 0) // fill prices per holding, in book order.
	var total Money
	for _, o := range orders {
		i, exists := index[o.Symbol]
		if !exists {
			i = len(holdings)
			index[o.Symbol] = i
			holdings = append(holdings, Holding{Symbol: o.Symbol})
			prices = append(prices, nil)
		}
		h := &holdings[i]
		h.Quantity = h.Quantity.Add(o.Quantity)
		h.Cost = h.Cost.Add(o.Cost)
		h.Trades++
		if o.FillPrice.Valid {
			prices[i] = append(prices[i], M(o.FillPrice.Decimal))
		}
		total = total.Add(o.Cost)
	}

	for i := range holdings {
		holdings[i].Price = representativePrice(prices[i], method)
		holdings[i].Share = percentOf(holdings[i].Cost, total)
	}

	slices.SortStableFunc(holdings, func(a, b Holding) int {
		if c := b.Cost.Compare(a.Cost); c != 0 {
			return c
		}
		return strings.Compare(a.Symbol, b.Symbol)
	})
	return holdings
}

// representativePrice reduces fill prices according to method. Absent prices
// are not part of prices, and no price at all is a zero price.
func representativePrice(prices []Money, method PriceMethod) Money {
	if len(prices) == 0 {
		return Money{}
	}
	if method == PriceMean {
		var sum Money
		for _, p := range prices {
			sum = sum.Add(p)
		}
		return sum.DivInt(len(prices))
	}
	return prices[0]
}
