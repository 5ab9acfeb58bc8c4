package t212

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

// Source provides the full order history of an account.
//
// A Source may return a partial history along with an error, callers should
// keep the orders they get.
type Source interface {
	Orders(ctx context.Context) ([]Order, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(ctx context.Context) ([]Order, error)

func (f SourceFunc) Orders(ctx context.Context) ([]Order, error) { return f(ctx) }

type refreshKey struct{}

// Refresh marks ctx as an explicit reload: a Source must not answer it from
// a cache.
func Refresh(ctx context.Context) context.Context {
	return context.WithValue(ctx, refreshKey{}, true)
}

// IsRefresh reports whether ctx was marked by Refresh.
func IsRefresh(ctx context.Context) bool {
	v, _ := ctx.Value(refreshKey{}).(bool)
	return v
}

//go:embed sample_orders.json
var sampleOrders []byte

// SampleSource is a Source of a small, static, sample of orders.
type SampleSource struct{}

func (SampleSource) Orders(context.Context) ([]Order, error) {
	return DecodeOrders(bytes.NewReader(sampleOrders))
}

// FileSource is a Source that reads orders from a file, see DecodeOrders.
type FileSource string

func (f FileSource) Orders(context.Context) ([]Order, error) {
	file, err := os.Open(string(f))
	if err != nil {
		return nil, fmt.Errorf("cannot open orders file: %w", err)
	}
	defer file.Close()

	orders, err := DecodeOrders(file)
	if err != nil {
		return orders, fmt.Errorf("cannot read orders file %q: %w", string(f), err)
	}
	return orders, nil
}

// DecodeOrders reads orders from r. Three formats are accepted:
//   - an order history page: a json object with the orders in its "items" property.
//   - a json array of orders.
//   - a sequence of json objects, one order each (JSONL).
//
// Decoding stops at the first invalid order, the orders decoded so far are returned.
func DecodeOrders(r io.Reader) ([]Order, error) {
	dec := json.NewDecoder(r)
	orders := make([]Order, 0)
	first := true
	for {
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			if errors.Is(err, io.EOF) {
				return orders, nil
			}
			return orders, fmt.Errorf("invalid json after %d orders: %w", len(orders), err)
		}
		raw = bytes.TrimSpace(raw)

		if first && len(raw) > 0 && raw[0] == '[' {
			if err := json.Unmarshal(raw, &orders); err != nil {
				return orders, fmt.Errorf("invalid json array of orders: %w", err)
			}
			return orders, nil
		}

		if first {
			var page struct {
				Items *[]Order `json:"items"`
			}
			if err := json.Unmarshal(raw, &page); err != nil {
				return orders, fmt.Errorf("invalid order page: %w", err)
			}
			if page.Items != nil {
				return *page.Items, nil
			}
		}
		first = false

		var o Order
		if err := json.Unmarshal(raw, &o); err != nil {
			return orders, fmt.Errorf("invalid order #%d: %w", len(orders)+1, err)
		}
		orders = append(orders, o)
	}
}

// EncodeOrders writes orders to w, one json object per line (JSONL).
func EncodeOrders(w io.Writer, orders []Order) error {
	enc := json.NewEncoder(w)
	for _, o := range orders {
		if err := enc.Encode(o); err != nil {
			return fmt.Errorf("cannot encode order %d: %w", o.ID, err)
		}
	}
	return nil
}
