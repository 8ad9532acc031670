package cart

import (
	"time"
)

// Item is one cart line. Price is the unit price captured when the product
// was added; it is re-read from the catalog snapshot the client saw, not
// re-fetched on every mutation.
type Item struct {
	ProductID int64   `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// Cart is a session's pending order lines.
type Cart struct {
	Items     []Item    `json:"items"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Empty reports whether the cart has no lines.
func (c *Cart) Empty() bool {
	return c == nil || len(c.Items) == 0
}

// addItem appends a new line or increments the quantity of an existing one.
func addItem(items []Item, incoming Item) []Item {
	for i := range items {
		if items[i].ProductID == incoming.ProductID {
			items[i].Quantity += incoming.Quantity
			return items
		}
	}
	return append(items, incoming)
}

// removeItem drops the line for productID. Absent lines are a no-op.
func removeItem(items []Item, productID int64) []Item {
	for i := range items {
		if items[i].ProductID == productID {
			return append(items[:i], items[i+1:]...)
		}
	}
	return items
}

// adjustQuantity shifts an existing line's quantity by delta, clamped to a
// minimum of one. Absent lines are a no-op; removal is explicit.
func adjustQuantity(items []Item, productID int64, delta int) []Item {
	for i := range items {
		if items[i].ProductID != productID {
			continue
		}
		next := items[i].Quantity + delta
		if next < 1 {
			next = 1
		}
		items[i].Quantity = next
		return items
	}
	return items
}
