package services

import (
	"errors"
	"fmt"

	"storefront/internal/models"
	"storefront/internal/repositories"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// recentLimit is how many recent orders and users the overview lists.
const recentLimit = 2

// Overview is the admin dashboard summary.
type Overview struct {
	TotalRevenue float64        `json:"total_revenue"`
	TotalSales   int            `json:"total_sales"`
	Customers    int            `json:"customers"`
	Products     int            `json:"products"`
	RecentOrders []models.Order `json:"recent_orders"`
	RecentUsers  []models.User  `json:"recent_users"`
}

// AdminService backs the admin dashboard. Product edits go through CatalogService.
type AdminService struct {
	productRepo repositories.ProductRepository
	userRepo    repositories.UserRepository
	orders      *OrderService
	validate    *validator.Validate
}

// NewAdminService creates a new AdminService.
func NewAdminService(productRepo repositories.ProductRepository, userRepo repositories.UserRepository, orders *OrderService) *AdminService {
	return &AdminService{
		productRepo: productRepo,
		userRepo:    userRepo,
		orders:      orders,
		validate:    validator.New(),
	}
}

// Overview aggregates revenue and record counts.
func (s *AdminService) Overview() (*Overview, error) {
	orders, err := s.orders.GetAllOrders()
	if err != nil {
		return nil, fmt.Errorf("failed to load orders: %w", err)
	}
	users, err := s.userRepo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}
	products, err := s.productRepo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}

	revenue := decimal.Zero
	for _, o := range orders {
		revenue = revenue.Add(decimal.NewFromFloat(o.Total))
	}

	// Users come back in ID order; the newest are at the end.
	recentUsers := make([]models.User, 0, recentLimit)
	for i := len(users) - 1; i >= 0 && len(recentUsers) < recentLimit; i-- {
		recentUsers = append(recentUsers, users[i])
	}

	return &Overview{
		TotalRevenue: revenue.Round(2).InexactFloat64(),
		TotalSales:   len(orders),
		Customers:    len(users),
		Products:     len(products),
		RecentOrders: orders[:min(recentLimit, len(orders))],
		RecentUsers:  recentUsers,
	}, nil
}

// ListUsers returns every user.
func (s *AdminService) ListUsers() ([]models.User, error) {
	return s.userRepo.GetAll()
}

// UpdateUser replaces a user record. Emails stay unique.
func (s *AdminService) UpdateUser(user *models.User) error {
	user.Email = models.NormalizeEmail(user.Email)
	if err := s.validate.Struct(user); err != nil {
		return fmt.Errorf("invalid user: %w", err)
	}
	if err := s.userRepo.Update(user); err != nil {
		if errors.Is(err, repositories.ErrConflict) {
			return fmt.Errorf("email '%s': %w", user.Email, ErrEmailTaken)
		}
		return err
	}
	return nil
}

// DeleteUser removes a user. An administrator cannot delete their own account.
func (s *AdminService) DeleteUser(actorID, userID int) error {
	if actorID == userID {
		return ErrSelfDelete
	}
	return s.userRepo.Delete(userID)
}

// ListOrders returns every order, newest first.
func (s *AdminService) ListOrders() ([]models.Order, error) {
	return s.orders.GetAllOrders()
}

// UpdateOrderStatus moves an order to another status.
func (s *AdminService) UpdateOrderStatus(id string, status models.OrderStatus) error {
	return s.orders.UpdateOrderStatus(id, status)
}
