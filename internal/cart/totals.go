package cart

import (
	"github.com/shopspring/decimal"
)

// Totals carries the exact money amounts for a cart. Decimal arithmetic
// keeps the tax line free of float drift before it crosses the wire.
type Totals struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// LineTotal returns quantity times unit price for one line.
func LineTotal(item Item) decimal.Decimal {
	return decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(int64(item.Quantity)))
}

// ComputeTotals derives subtotal, tax at the given rate, and grand total.
// An empty cart yields all zeros.
func ComputeTotals(items []Item, rate decimal.Decimal) Totals {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(LineTotal(item))
	}
	tax := subtotal.Mul(rate)
	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal.Add(tax),
	}
}

// Summary is the client-facing cart view with totals flattened to floats.
// Field names follow the commerce API contract, including "tva".
type Summary struct {
	Items    []Item  `json:"items"`
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tva"`
	Total    float64 `json:"total"`
}

// Summarize folds a cart and its totals into the client-facing view.
func Summarize(c *Cart, rate decimal.Decimal) Summary {
	items := []Item{}
	if c != nil && c.Items != nil {
		items = c.Items
	}
	totals := ComputeTotals(items, rate)
	return Summary{
		Items:    items,
		Subtotal: totals.Subtotal.InexactFloat64(),
		Tax:      totals.Tax.InexactFloat64(),
		Total:    totals.Total.InexactFloat64(),
	}
}
