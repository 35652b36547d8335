package repositories

import (
	"storefront/internal/models"
)

// OrderRepository defines the interface for order data access.
// Listings are ordered newest first.
type OrderRepository interface {
	GetAll() ([]models.Order, error)
	GetByID(id string) (*models.Order, error)
	GetByUserID(userID int) ([]models.Order, error)
	Create(order *models.Order) error
	UpdateStatus(id string, status models.OrderStatus) error
}
