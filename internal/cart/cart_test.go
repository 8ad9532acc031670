package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddItemAppendsAndIncrements(t *testing.T) {
	items := addItem(nil, Item{ProductID: 1, Name: "Espresso", Price: 3.5, Quantity: 1})
	require.Len(t, items, 1)

	items = addItem(items, Item{ProductID: 1, Quantity: 1})
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)

	items = addItem(items, Item{ProductID: 2, Name: "Filter", Price: 2.0, Quantity: 1})
	require.Len(t, items, 2)
}

func TestRemoveItem(t *testing.T) {
	items := []Item{{ProductID: 1, Quantity: 2}, {ProductID: 2, Quantity: 1}}

	items = removeItem(items, 1)
	require.Len(t, items, 1)
	assert.Equal(t, int64(2), items[0].ProductID)

	items = removeItem(items, 99)
	require.Len(t, items, 1, "removing an absent line is a no-op")
}

func TestAdjustQuantityClampsAtOne(t *testing.T) {
	items := []Item{{ProductID: 1, Quantity: 2}}

	items = adjustQuantity(items, 1, 3)
	assert.Equal(t, 5, items[0].Quantity)

	items = adjustQuantity(items, 1, -10)
	assert.Equal(t, 1, items[0].Quantity, "quantity never drops below one")

	items = adjustQuantity(items, 99, 1)
	require.Len(t, items, 1, "adjusting an absent line is a no-op")
	assert.Equal(t, 1, items[0].Quantity)
}

func TestComputeTotals(t *testing.T) {
	rate := decimal.RequireFromString("0.20")
	items := []Item{
		{ProductID: 1, Price: 100, Quantity: 2},
		{ProductID: 2, Price: 25, Quantity: 2},
	}

	totals := ComputeTotals(items, rate)
	assert.True(t, totals.Subtotal.Equal(decimal.NewFromInt(250)), "subtotal %s", totals.Subtotal)
	assert.True(t, totals.Tax.Equal(decimal.NewFromInt(50)), "tax %s", totals.Tax)
	assert.True(t, totals.Total.Equal(decimal.NewFromInt(300)), "total %s", totals.Total)
}

func TestComputeTotalsEmptyCart(t *testing.T) {
	totals := ComputeTotals(nil, decimal.RequireFromString("0.20"))
	assert.True(t, totals.Subtotal.IsZero())
	assert.True(t, totals.Tax.IsZero())
	assert.True(t, totals.Total.IsZero())
}

func TestComputeTotalsExactTax(t *testing.T) {
	// 0.1 + 0.2 style drift must not leak into the tax line.
	rate := decimal.RequireFromString("0.20")
	items := []Item{{ProductID: 1, Price: 0.1, Quantity: 1}, {ProductID: 2, Price: 0.2, Quantity: 1}}

	totals := ComputeTotals(items, rate)
	assert.Equal(t, "0.3", totals.Subtotal.String())
	assert.Equal(t, "0.06", totals.Tax.String())
	assert.Equal(t, "0.36", totals.Total.String())
}

func TestSummarize(t *testing.T) {
	rate := decimal.RequireFromString("0.20")
	c := &Cart{Items: []Item{{ProductID: 1, Price: 100, Quantity: 2}, {ProductID: 2, Price: 25, Quantity: 2}}}

	summary := Summarize(c, rate)
	assert.Equal(t, 250.0, summary.Subtotal)
	assert.Equal(t, 50.0, summary.Tax)
	assert.Equal(t, 300.0, summary.Total)
	assert.Len(t, summary.Items, 2)

	empty := Summarize(nil, rate)
	assert.NotNil(t, empty.Items)
	assert.Empty(t, empty.Items)
	assert.Zero(t, empty.Total)
}
