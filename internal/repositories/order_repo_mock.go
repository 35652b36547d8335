package repositories

import (
	"fmt"
	"slices"
	"sync"

	"storefront/internal/models"

	"github.com/google/uuid"
)

// MockOrderRepository is an in-memory implementation of OrderRepository.
type MockOrderRepository struct {
	orders map[string]models.Order
	mu     sync.RWMutex
}

// NewMockOrderRepository creates a new instance of MockOrderRepository.
func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{
		orders: make(map[string]models.Order),
	}
}

// GetAll returns all orders, newest first.
func (r *MockOrderRepository) GetAll() ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.collect(func(models.Order) bool { return true }), nil
}

// GetByID returns an order by its ID.
func (r *MockOrderRepository) GetByID(id string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, fmt.Errorf("order with ID %s %w", id, ErrNotFound)
	}
	order.Items = slices.Clone(order.Items)
	return &order, nil
}

// GetByUserID returns the orders placed by one user, newest first.
func (r *MockOrderRepository) GetByUserID(userID int) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.collect(func(o models.Order) bool { return o.UserID == userID }), nil
}

// Create adds a new order.
func (r *MockOrderRepository) Create(order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	if _, exists := r.orders[order.ID]; exists {
		return fmt.Errorf("order with ID %s already exists: %w", order.ID, ErrConflict)
	}
	stored := *order
	stored.Items = slices.Clone(order.Items)
	r.orders[order.ID] = stored
	return nil
}

// UpdateStatus updates the status of an order.
func (r *MockOrderRepository) UpdateStatus(id string, status models.OrderStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return fmt.Errorf("order with ID %s %w", id, ErrNotFound)
	}
	order.Status = status
	r.orders[id] = order
	return nil
}

// collect must be called with r.mu held.
func (r *MockOrderRepository) collect(keep func(models.Order) bool) []models.Order {
	orderList := make([]models.Order, 0, len(r.orders))
	for _, o := range r.orders {
		if keep(o) {
			o.Items = slices.Clone(o.Items)
			orderList = append(orderList, o)
		}
	}
	slices.SortFunc(orderList, func(a, b models.Order) int { return b.Date.Compare(a.Date) })
	return orderList
}
