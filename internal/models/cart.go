package models

// CartItem is a product in the cart together with its quantity.
type CartItem struct {
	Product
	Quantity int `json:"quantity"`
}

