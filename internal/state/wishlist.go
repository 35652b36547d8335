package state

import (
	"slices"

	"storefront/internal/models"
)

// Wishlist is a set of products keyed by ID, kept in insertion order.
type Wishlist struct {
	items []models.Product
}

// Toggle adds product when absent and removes it when present.
// It returns true when the product was added.
func (w *Wishlist) Toggle(product models.Product) bool {
	if w.Remove(product.ID) {
		return false
	}
	product.Tags = slices.Clone(product.Tags)
	w.items = append(w.items, product)
	return true
}

// Remove deletes product id and reports whether it was present.
func (w *Wishlist) Remove(id int) bool {
	i := slices.IndexFunc(w.items, func(p models.Product) bool { return p.ID == id })
	if i < 0 {
		return false
	}
	w.items = slices.Delete(w.items, i, i+1)
	return true
}

// Contains reports whether product id is wishlisted.
func (w *Wishlist) Contains(id int) bool {
	return slices.ContainsFunc(w.items, func(p models.Product) bool { return p.ID == id })
}

// Items returns a copy of the wishlisted products.
func (w *Wishlist) Items() []models.Product {
	items := make([]models.Product, len(w.items))
	for i, p := range w.items {
		p.Tags = slices.Clone(p.Tags)
		items[i] = p
	}
	return items
}

// Len is the number of wishlisted products.
func (w *Wishlist) Len() int {
	return len(w.items)
}
