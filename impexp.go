package t212

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
)

// this file contains the export formats of the normalized order table.
// Both are row oriented and carry the same columns.

// csvDecimal is a decimal that is an empty cell when absent.
type csvDecimal decimal.NullDecimal

func (d csvDecimal) MarshalCSV() (string, error) {
	if !d.Valid {
		return "", nil
	}
	return d.Decimal.String(), nil
}

// csvOrder is a row of the csv export.
type csvOrder struct {
	ID             int64      `csv:"id"`
	Type           string     `csv:"type"`
	Ticker         string     `csv:"ticker"`
	OrderedValue   csvDecimal `csv:"orderedValue"`
	FilledValue    csvDecimal `csv:"filledValue"`
	FillCost       csvDecimal `csv:"fillCost"`
	FillPrice      csvDecimal `csv:"fillPrice"`
	FilledQuantity csvDecimal `csv:"filledQuantity"`
	Executor       string     `csv:"executor"`
	DateCreated    string     `csv:"dateCreated"`
	Status         string     `csv:"status"`
	Symbol         string     `csv:"symbol"`
	Cost           Money      `csv:"cost"`
	Quantity       Quantity   `csv:"quantity"`
	AvgPrice       Money      `csv:"avgPricePerShare"`
}

// ExportCSV writes orders as csv, with a header row.
func ExportCSV(w io.Writer, orders []Order) error {
	rows := make([]csvOrder, 0, len(orders))
	for _, o := range orders {
		row := csvOrder{
			ID:             o.ID,
			Type:           o.Type,
			Ticker:         o.Ticker,
			OrderedValue:   csvDecimal(o.OrderedValue),
			FilledValue:    csvDecimal(o.FilledValue),
			FillCost:       csvDecimal(o.FillCost),
			FillPrice:      csvDecimal(o.FillPrice),
			FilledQuantity: csvDecimal(o.FilledQuantity),
			Executor:       o.Executor,
			Status:         string(o.Status),
			Symbol:         o.Symbol,
			Cost:           o.Cost,
			Quantity:       o.Quantity,
			AvgPrice:       o.AvgPrice,
		}
		if !o.DateCreated.IsZero() {
			row.DateCreated = o.DateCreated.UTC().Format("2006-01-02T15:04:05.000Z")
		}
		rows = append(rows, row)
	}
	if err := gocsv.Marshal(&rows, w); err != nil {
		return fmt.Errorf("cannot export orders to csv: %w", err)
	}
	return nil
}

// ExportJSON writes orders as a json array of records.
func ExportJSON(w io.Writer, orders []Order) error {
	if orders == nil {
		orders = []Order{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(orders); err != nil {
		return fmt.Errorf("cannot export orders to json: %w", err)
	}
	return nil
}
