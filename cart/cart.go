package cart

import (
	"github.com/shopspring/decimal"
)

// DefaultTaxRate is applied when the deployment does not configure one.
var DefaultTaxRate = decimal.NewFromFloat(0.08)

// Snapshot carries the menu item fields that get copied into the cart when
// an item is added. The cart never re-fetches them from the catalog.
type Snapshot struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image,omitempty"`
}

// Item is one line in the cart: a snapshot plus how many of it the customer
// wants. An Item present in a cart always has Quantity >= 1.
type Item struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image,omitempty"`
	Quantity    int             `json:"quantity"`
}

// Cart is an ordered collection of line items, unique by item ID. Insertion
// order is preserved for display. The zero value is an empty cart ready to use.
//
// All mutations are pure state transitions with no I/O; Store layers
// persistence on top.
type Cart struct {
	items []Item
}

// Add merges the snapshot into the cart: a new ID is appended with quantity 1,
// an existing ID gets its quantity bumped and keeps the fields it was first
// added with. Always succeeds.
func (c *Cart) Add(s Snapshot) {
	for i := range c.items {
		if c.items[i].ID == s.ID {
			c.items[i].Quantity++
			return
		}
	}
	c.items = append(c.items, Item{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		Category:    s.Category,
		Price:       s.Price,
		Image:       s.Image,
		Quantity:    1,
	})
}

// Remove deletes the line item entirely, whatever its quantity. Unknown IDs
// are a no-op.
func (c *Cart) Remove(id string) {
	for i := range c.items {
		if c.items[i].ID == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// Increment raises the line item's quantity by one. Unknown IDs are a no-op.
// No upper bound.
func (c *Cart) Increment(id string) {
	for i := range c.items {
		if c.items[i].ID == id {
			c.items[i].Quantity++
			return
		}
	}
}

// Decrement lowers the line item's quantity by one but never below 1.
// Dropping an item is Remove's job, not Decrement's. Unknown IDs are a no-op.
func (c *Cart) Decrement(id string) {
	for i := range c.items {
		if c.items[i].ID == id {
			if c.items[i].Quantity > 1 {
				c.items[i].Quantity--
			}
			return
		}
	}
}

// Clear empties the cart. Idempotent.
func (c *Cart) Clear() {
	c.items = nil
}

// Find returns the line item with the given ID.
func (c *Cart) Find(id string) (Item, bool) {
	for _, it := range c.items {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}

// Items returns a copy of the line items in insertion order.
func (c *Cart) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of distinct line items.
func (c *Cart) Len() int {
	return len(c.items)
}

// Subtotal is the sum of price times quantity over all line items.
func (c *Cart) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, it := range c.items {
		sum = sum.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return sum
}

// Tax is the subtotal times the given rate.
func (c *Cart) Tax(rate decimal.Decimal) decimal.Decimal {
	return c.Subtotal().Mul(rate)
}

// Total is subtotal plus tax.
func (c *Cart) Total(rate decimal.Decimal) decimal.Decimal {
	return c.Subtotal().Add(c.Tax(rate))
}
