// Package state holds the per-session shopping state: cart and wishlist.
// The types are not safe for concurrent use; Session serialises access.
package state

import (
	"slices"
	"strconv"

	"storefront/internal/models"

	"github.com/shopspring/decimal"
)

// Cart keeps at most one entry per product ID, in the order products were first added.
type Cart struct {
	items []models.CartItem
}

// Add puts product in the cart, incrementing the quantity if it is already there.
func (c *Cart) Add(product models.Product) models.CartItem {
	if i := c.index(product.ID); i >= 0 {
		c.items[i].Quantity++
		return c.items[i]
	}
	item := models.CartItem{Product: product, Quantity: 1}
	item.Tags = slices.Clone(product.Tags)
	c.items = append(c.items, item)
	return item
}

// UpdateQuantity changes the quantity of product id by delta, never going below 1.
// It reports whether the product was in the cart.
func (c *Cart) UpdateQuantity(id, delta int) bool {
	i := c.index(id)
	if i < 0 {
		return false
	}
	c.items[i].Quantity = max(1, c.items[i].Quantity+delta)
	return true
}

// Remove deletes product id from the cart and reports whether it was present.
func (c *Cart) Remove(id int) bool {
	i := c.index(id)
	if i < 0 {
		return false
	}
	c.items = slices.Delete(c.items, i, i+1)
	return true
}

// Subtract takes the given quantities out of the cart, dropping lines that
// reach zero. Units added after items were read stay in the cart.
func (c *Cart) Subtract(items []models.CartItem) {
	for _, item := range items {
		i := c.index(item.ID)
		if i < 0 {
			continue
		}
		if c.items[i].Quantity <= item.Quantity {
			c.items = slices.Delete(c.items, i, i+1)
			continue
		}
		c.items[i].Quantity -= item.Quantity
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.items = nil
}

// Items returns a copy of the cart entries.
func (c *Cart) Items() []models.CartItem {
	items := make([]models.CartItem, len(c.items))
	for i, item := range c.items {
		item.Tags = slices.Clone(item.Tags)
		items[i] = item
	}
	return items
}

// Len is the number of distinct products.
func (c *Cart) Len() int {
	return len(c.items)
}

// ItemCount is the sum of all quantities.
func (c *Cart) ItemCount() int {
	n := 0
	for _, item := range c.items {
		n += item.Quantity
	}
	return n
}

// Total is the sum of price × quantity, rounded to cents.
func (c *Cart) Total() float64 {
	total := decimal.Zero
	for _, item := range c.items {
		line := decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(line)
	}
	return total.Round(2).InexactFloat64()
}

// ProductIDs returns the IDs in the cart as strings, the form analytics catalogs expect.
func (c *Cart) ProductIDs() []string {
	ids := make([]string, len(c.items))
	for i, item := range c.items {
		ids[i] = strconv.Itoa(item.ID)
	}
	return ids
}

func (c *Cart) index(id int) int {
	return slices.IndexFunc(c.items, func(item models.CartItem) bool { return item.ID == id })
}
