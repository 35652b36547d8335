package repositories

import (
	"storefront/internal/models"
)

// ProductRepository defines the interface for product data access.
// GetAll returns products in catalog order (ascending ID).
type ProductRepository interface {
	GetAll() ([]models.Product, error)
	GetByID(id int) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id int) error
}
