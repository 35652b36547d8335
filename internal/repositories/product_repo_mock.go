package repositories

import (
	"fmt"
	"slices"
	"sync"

	"storefront/internal/models"
)

// MockProductRepository is an in-memory implementation of ProductRepository.
type MockProductRepository struct {
	products map[int]models.Product
	mu       sync.RWMutex
}

// NewMockProductRepository creates a new instance of MockProductRepository.
func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{
		products: make(map[int]models.Product),
	}
}

// GetAll returns all products ordered by ID.
func (r *MockProductRepository) GetAll() ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	productList := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		productList = append(productList, cloneProduct(p))
	}
	slices.SortFunc(productList, func(a, b models.Product) int { return a.ID - b.ID })
	return productList, nil
}

// GetByID returns a product by its ID.
func (r *MockProductRepository) GetByID(id int) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, fmt.Errorf("product with ID %d %w", id, ErrNotFound)
	}
	product = cloneProduct(product)
	return &product, nil
}

// Create adds a new product. A zero ID is replaced with the next free one.
func (r *MockProductRepository) Create(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID == 0 {
		for id := range r.products {
			product.ID = max(product.ID, id)
		}
		product.ID++
	}
	if _, exists := r.products[product.ID]; exists {
		return fmt.Errorf("product with ID %d already exists: %w", product.ID, ErrConflict)
	}
	r.products[product.ID] = cloneProduct(*product)
	return nil
}

// Update replaces an existing product.
func (r *MockProductRepository) Update(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[product.ID]; !ok {
		return fmt.Errorf("product with ID %d %w", product.ID, ErrNotFound)
	}
	r.products[product.ID] = cloneProduct(*product)
	return nil
}

// Delete removes a product by its ID.
func (r *MockProductRepository) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return fmt.Errorf("product with ID %d %w", id, ErrNotFound)
	}
	delete(r.products, id)
	return nil
}

func cloneProduct(p models.Product) models.Product {
	p.Tags = slices.Clone(p.Tags)
	return p
}
