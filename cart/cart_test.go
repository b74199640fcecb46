package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snap(id string, price string) Snapshot {
	return Snapshot{
		ID:          id,
		Name:        "Item " + id,
		Description: "Description " + id,
		Category:    "mains",
		Price:       decimal.RequireFromString(price),
	}
}

func TestCart_AddNewItem(t *testing.T) {
	var c Cart

	c.Add(snap("a", "12.50"))

	require.Equal(t, 1, c.Len())
	it, ok := c.Find("a")
	require.True(t, ok)
	assert.Equal(t, 1, it.Quantity)
	assert.Equal(t, "Item a", it.Name)
	assert.True(t, it.Price.Equal(decimal.RequireFromString("12.50")))
}

func TestCart_AddMergesOnSameID(t *testing.T) {
	var c Cart

	first := snap("a", "12.50")
	c.Add(first)

	// Second snapshot carries different fields; the cart must keep the
	// first snapshot and only bump the quantity.
	second := snap("a", "99.99")
	second.Name = "Renamed"
	c.Add(second)

	require.Equal(t, 1, c.Len())
	it, _ := c.Find("a")
	assert.Equal(t, 2, it.Quantity)
	assert.Equal(t, "Item a", it.Name)
	assert.True(t, it.Price.Equal(decimal.RequireFromString("12.50")))
}

func TestCart_InsertionOrderPreserved(t *testing.T) {
	var c Cart

	c.Add(snap("a", "1.00"))
	c.Add(snap("b", "2.00"))
	c.Add(snap("c", "3.00"))
	c.Add(snap("a", "1.00"))

	items := c.Items()
	require.Len(t, items, 3)
	assert.Equal(t, "a", items[0].ID)
	assert.Equal(t, "b", items[1].ID)
	assert.Equal(t, "c", items[2].ID)
}

func TestCart_RemoveDeletesWholeLine(t *testing.T) {
	var c Cart

	c.Add(snap("a", "5.00"))
	c.Add(snap("a", "5.00"))
	c.Add(snap("b", "3.00"))

	c.Remove("a")

	require.Equal(t, 1, c.Len())
	_, ok := c.Find("a")
	assert.False(t, ok)
}

func TestCart_RemoveUnknownIDIsNoop(t *testing.T) {
	var c Cart

	c.Add(snap("a", "5.00"))
	c.Remove("missing")

	assert.Equal(t, 1, c.Len())
}

func TestCart_Increment(t *testing.T) {
	var c Cart

	c.Add(snap("a", "5.00"))
	c.Increment("a")
	c.Increment("a")

	it, _ := c.Find("a")
	assert.Equal(t, 3, it.Quantity)
}

func TestCart_IncrementUnknownIDIsNoop(t *testing.T) {
	var c Cart

	c.Increment("ghost")

	assert.Equal(t, 0, c.Len())
}

func TestCart_DecrementFloorsAtOne(t *testing.T) {
	var c Cart

	c.Add(snap("a", "5.00"))
	c.Increment("a")

	c.Decrement("a")
	it, _ := c.Find("a")
	assert.Equal(t, 1, it.Quantity)

	// Decrementing a quantity-1 line is a safe no-op, not a removal.
	c.Decrement("a")
	it, ok := c.Find("a")
	require.True(t, ok)
	assert.Equal(t, 1, it.Quantity)
}

func TestCart_DecrementUnknownIDIsNoop(t *testing.T) {
	var c Cart

	c.Add(snap("a", "5.00"))
	c.Decrement("ghost")

	it, _ := c.Find("a")
	assert.Equal(t, 1, it.Quantity)
}

func TestCart_OpsAfterRemoveStayAbsent(t *testing.T) {
	var c Cart

	c.Add(snap("a", "5.00"))
	c.Remove("a")

	c.Increment("a")
	c.Decrement("a")

	_, ok := c.Find("a")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestCart_ClearIsTotalAndIdempotent(t *testing.T) {
	var c Cart

	c.Add(snap("a", "5.00"))
	c.Add(snap("b", "3.00"))

	c.Clear()
	assert.Equal(t, 0, c.Len())

	c.Clear()
	assert.Equal(t, 0, c.Len())
}

func TestCart_InvariantsHoldAcrossMixedSequence(t *testing.T) {
	var c Cart

	ops := []func(){
		func() { c.Add(snap("a", "2.00")) },
		func() { c.Add(snap("b", "4.00")) },
		func() { c.Add(snap("a", "2.00")) },
		func() { c.Decrement("b") },
		func() { c.Decrement("b") },
		func() { c.Increment("a") },
		func() { c.Remove("b") },
		func() { c.Add(snap("b", "4.00")) },
		func() { c.Decrement("a") },
	}

	for _, op := range ops {
		op()

		seen := map[string]bool{}
		for _, it := range c.Items() {
			assert.False(t, seen[it.ID], "duplicate line item %q", it.ID)
			seen[it.ID] = true
			assert.GreaterOrEqual(t, it.Quantity, 1)
		}
	}
}

func TestCart_TotalsDerivation(t *testing.T) {
	var c Cart

	c.Add(snap("a", "10.00"))
	c.Increment("a")
	c.Add(snap("b", "5.00"))

	rate := decimal.RequireFromString("0.08")
	assert.True(t, c.Subtotal().Equal(decimal.RequireFromString("25.00")), "subtotal = %s", c.Subtotal())
	assert.True(t, c.Tax(rate).Equal(decimal.RequireFromString("2.00")), "tax = %s", c.Tax(rate))
	assert.True(t, c.Total(rate).Equal(decimal.RequireFromString("27.00")), "total = %s", c.Total(rate))
}

func TestCart_EmptyTotalsAreZero(t *testing.T) {
	var c Cart

	rate := DefaultTaxRate
	assert.True(t, c.Subtotal().IsZero())
	assert.True(t, c.Tax(rate).IsZero())
	assert.True(t, c.Total(rate).IsZero())
}

// The walkthrough from the storefront: add, merge, decrement to the floor,
// remove, clear.
func TestCart_StorefrontScenario(t *testing.T) {
	var c Cart

	c.Add(snap("A", "12.50"))
	require.Equal(t, 1, c.Len())
	it, _ := c.Find("A")
	require.Equal(t, 1, it.Quantity)

	c.Add(snap("A", "12.50"))
	it, _ = c.Find("A")
	require.Equal(t, 2, it.Quantity)

	c.Add(snap("B", "8.00"))
	require.Equal(t, 2, c.Len())
	assert.True(t, c.Subtotal().Equal(decimal.RequireFromString("33.00")))

	c.Decrement("A")
	it, _ = c.Find("A")
	require.Equal(t, 1, it.Quantity)

	c.Decrement("A")
	it, _ = c.Find("A")
	require.Equal(t, 1, it.Quantity)

	c.Remove("B")
	require.Equal(t, 1, c.Len())

	c.Clear()
	assert.Equal(t, 0, c.Len())
}

func TestCart_ItemsReturnsCopy(t *testing.T) {
	var c Cart

	c.Add(snap("a", "5.00"))
	items := c.Items()
	items[0].Quantity = 99

	it, _ := c.Find("a")
	assert.Equal(t, 1, it.Quantity)
}
