package services

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"storefront/internal/models"
	"storefront/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order event types published to the order queue.
const (
	OrderPlaced        = "order.placed"
	OrderStatusChanged = "order.status_changed"
)

// Publisher sends a message body to a named queue.
type Publisher interface {
	Publish(queue string, body []byte) error
}

// OrderEvent is the message published for order lifecycle changes.
type OrderEvent struct {
	Type     string             `json:"type"`
	OrderID  string             `json:"order_id"`
	UserID   int                `json:"user_id"`
	Status   models.OrderStatus `json:"status"`
	Total    float64            `json:"total"`
	NumItems int                `json:"num_items"`
	Time     time.Time          `json:"time"`
}

// OrderService handles business logic related to orders.
type OrderService struct {
	orderRepo repositories.OrderRepository
	userRepo  repositories.UserRepository
	publisher Publisher // nil when messaging is disabled
	queue     string
	clock     Clock
}

// NewOrderService creates a new OrderService. publisher may be nil.
func NewOrderService(orderRepo repositories.OrderRepository, userRepo repositories.UserRepository, publisher Publisher, queue string, clock Clock) *OrderService {
	if clock == nil {
		clock = RealClock{}
	}
	return &OrderService{
		orderRepo: orderRepo,
		userRepo:  userRepo,
		publisher: publisher,
		queue:     queue,
		clock:     clock,
	}
}

// GetAllOrders retrieves all orders, newest first.
func (s *OrderService) GetAllOrders() ([]models.Order, error) {
	return s.orderRepo.GetAll()
}

// GetOrderByID retrieves a single order by its ID.
func (s *OrderService) GetOrderByID(id string) (*models.Order, error) {
	return s.orderRepo.GetByID(id)
}

// OrdersForUser is the order history shown on a user's profile.
func (s *OrderService) OrdersForUser(userID int) ([]models.Order, error) {
	return s.orderRepo.GetByUserID(userID)
}

// CreateOrder stores a Processing order for the given cart lines. userID is
// zero for guest checkouts; otherwise the user's total spend is increased.
func (s *OrderService) CreateOrder(userID int, customerName, shippingAddress string, lines []models.CartItem, total float64) (*models.Order, error) {
	items := make([]models.OrderItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, models.OrderItem{
			ProductID: line.ID,
			Name:      line.Name,
			Quantity:  line.Quantity,
		})
	}

	order := &models.Order{
		ID:              newOrderID(),
		UserID:          userID,
		Date:            s.clock.Now(),
		Items:           items,
		Total:           total,
		Status:          models.OrderStatusProcessing,
		CustomerName:    customerName,
		ShippingAddress: shippingAddress,
	}
	if err := s.orderRepo.Create(order); err != nil {
		return nil, fmt.Errorf("failed to create order in repository: %w", err)
	}

	if userID != 0 {
		s.addSpend(userID, total)
	}

	numItems := 0
	for _, item := range items {
		numItems += item.Quantity
	}
	s.publish(OrderEvent{
		Type:     OrderPlaced,
		OrderID:  order.ID,
		UserID:   order.UserID,
		Status:   order.Status,
		Total:    order.Total,
		NumItems: numItems,
		Time:     order.Date,
	})
	return order, nil
}

// UpdateOrderStatus moves an order to another status.
func (s *OrderService) UpdateOrderStatus(id string, status models.OrderStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: %s", ErrInvalidStatus, status)
	}
	if err := s.orderRepo.UpdateStatus(id, status); err != nil {
		return fmt.Errorf("failed to update order status for order %s: %w", id, err)
	}
	s.publish(OrderEvent{
		Type:    OrderStatusChanged,
		OrderID: id,
		Status:  status,
		Time:    s.clock.Now(),
	})
	return nil
}

// HandleOrderEvent consumes a message from the order queue.
func (s *OrderService) HandleOrderEvent(body []byte) error {
	var event OrderEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return fmt.Errorf("failed to decode order event: %w", err)
	}
	switch event.Type {
	case OrderPlaced:
		log.Printf("Order %s placed by user %d: %d items, total %.2f", event.OrderID, event.UserID, event.NumItems, event.Total)
	case OrderStatusChanged:
		log.Printf("Order %s is now %s", event.OrderID, event.Status)
	default:
		return fmt.Errorf("unknown order event type %q", event.Type)
	}
	return nil
}

func (s *OrderService) addSpend(userID int, amount float64) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		log.Printf("Warning: Failed to load user %d to record spend: %v", userID, err)
		return
	}
	user.TotalSpent = decimal.NewFromFloat(user.TotalSpent).
		Add(decimal.NewFromFloat(amount)).
		Round(2).
		InexactFloat64()
	if err := s.userRepo.Update(user); err != nil {
		log.Printf("Warning: Failed to record spend for user %d: %v", userID, err)
	}
}

func (s *OrderService) publish(event OrderEvent) {
	if s.publisher == nil {
		return
	}
	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal order event to JSON: %v", err)
		return
	}
	if err := s.publisher.Publish(s.queue, body); err != nil {
		log.Printf("Warning: Failed to publish %s event for order %s: %v", event.Type, event.OrderID, err)
	}
}

// newOrderID returns an id of the form SAR-XXXXXXXX.
func newOrderID() string {
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "SAR-" + strings.ToUpper(hex[:8])
}
