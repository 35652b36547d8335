package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"storefront/internal/analytics"
	"storefront/internal/models"
	"storefront/internal/repositories"

	"github.com/go-playground/validator/v10"
)

// RelatedLimit is how many related products a product page shows.
const RelatedLimit = 4

// minSearchLength is the shortest query that is reported as a Search event.
const minSearchLength = 3

// CatalogService handles product browsing and the admin product operations.
type CatalogService struct {
	repo     repositories.ProductRepository
	tracker  analytics.Tracker
	currency string
	validate *validator.Validate
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(repo repositories.ProductRepository, tracker analytics.Tracker, currency string) *CatalogService {
	return &CatalogService{
		repo:     repo,
		tracker:  tracker,
		currency: currency,
		validate: validator.New(),
	}
}

// GetAllProducts retrieves the full catalog in natural order.
func (s *CatalogService) GetAllProducts() ([]models.Product, error) {
	return s.repo.GetAll()
}

// GetProductByID retrieves a single product without recording a view.
func (s *CatalogService) GetProductByID(id int) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// GetProduct retrieves a product for its detail page and records a ViewContent event.
func (s *CatalogService) GetProduct(ctx context.Context, sessionID string, id int) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	s.tracker.Track(ctx, analytics.Event{
		Name:        analytics.EventViewContent,
		SessionID:   sessionID,
		ContentName: product.Name,
		ContentIDs:  []string{strconv.Itoa(product.ID)},
		ContentType: analytics.ContentTypeProduct,
		Value:       product.Price,
		Currency:    s.currency,
	})
	return product, nil
}

// Filter returns the products in category (CategoryAll for any) whose name or
// description contains search, ignoring case. Queries longer than two
// characters are reported as Search events.
func (s *CatalogService) Filter(ctx context.Context, sessionID string, category models.Category, search string) ([]models.Product, error) {
	all, err := s.repo.GetAll()
	if err != nil {
		return nil, err
	}

	matched := make([]models.Product, 0, len(all))
	for _, p := range all {
		if p.Matches(category, search) {
			matched = append(matched, p)
		}
	}

	if q := strings.TrimSpace(search); len(q) >= minSearchLength {
		s.tracker.Track(ctx, analytics.Event{
			Name:         analytics.EventSearch,
			SessionID:    sessionID,
			SearchString: q,
		})
	}
	return matched, nil
}

// Featured returns the products flagged as featured.
func (s *CatalogService) Featured() ([]models.Product, error) {
	all, err := s.repo.GetAll()
	if err != nil {
		return nil, err
	}
	featured := make([]models.Product, 0)
	for _, p := range all {
		if p.Featured {
			featured = append(featured, p)
		}
	}
	return featured, nil
}

// Related returns up to limit other products from the same category.
func (s *CatalogService) Related(id, limit int) ([]models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	all, err := s.repo.GetAll()
	if err != nil {
		return nil, err
	}
	related := make([]models.Product, 0, limit)
	for _, p := range all {
		if len(related) == limit {
			break
		}
		if p.Category == product.Category && p.ID != product.ID {
			related = append(related, p)
		}
	}
	return related, nil
}

// CreateProduct validates and stores a new product. The repository assigns the ID.
func (s *CatalogService) CreateProduct(product *models.Product) error {
	product.ID = 0
	if err := s.validate.Struct(product); err != nil {
		return fmt.Errorf("invalid product: %w", err)
	}
	return s.repo.Create(product)
}

// UpdateProduct replaces the product with the same ID.
func (s *CatalogService) UpdateProduct(product *models.Product) error {
	if err := s.validate.Struct(product); err != nil {
		return fmt.Errorf("invalid product: %w", err)
	}
	return s.repo.Update(product)
}

// DeleteProduct deletes a product by its ID.
func (s *CatalogService) DeleteProduct(id int) error {
	return s.repo.Delete(id)
}
