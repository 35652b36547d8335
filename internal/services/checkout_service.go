package services

import (
	"context"
	"fmt"
	"time"

	"storefront/internal/analytics"
	"storefront/internal/models"
	"storefront/internal/state"

	"github.com/go-playground/validator/v10"
)

// CheckoutDetails is the form submitted at checkout. Card fields are
// validated for presence and then discarded.
type CheckoutDetails struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Address string `json:"address" validate:"required"`
	City    string `json:"city" validate:"required"`
	Zip     string `json:"zip" validate:"required"`
	Card    string `json:"card" validate:"required"`
	Expiry  string `json:"expiry"`
	CVC     string `json:"cvc"`
}

// ShippingAddress formats the address the way it is stored on the order.
func (d CheckoutDetails) ShippingAddress() string {
	return fmt.Sprintf("%s, %s %s", d.Address, d.City, d.Zip)
}

// CheckoutService runs the mocked payment flow.
type CheckoutService struct {
	sessions *state.Store
	orders   *OrderService
	tracker  analytics.Tracker
	currency string
	delay    time.Duration
	clock    Clock
	validate *validator.Validate
}

// NewCheckoutService creates a new CheckoutService. delay is the simulated
// payment processing time.
func NewCheckoutService(sessions *state.Store, orders *OrderService, tracker analytics.Tracker, currency string, delay time.Duration, clock Clock) *CheckoutService {
	if clock == nil {
		clock = RealClock{}
	}
	return &CheckoutService{
		sessions: sessions,
		orders:   orders,
		tracker:  tracker,
		currency: currency,
		delay:    delay,
		clock:    clock,
		validate: validator.New(),
	}
}

// Checkout places an order for the session's cart. userID is zero for guests.
// Only one checkout per session runs at a time. If ctx ends during
// processing the cart is left untouched.
func (s *CheckoutService) Checkout(ctx context.Context, sessionID string, userID int, details CheckoutDetails) (*models.Order, error) {
	if err := s.validate.Struct(details); err != nil {
		return nil, fmt.Errorf("invalid checkout details: %w", err)
	}

	sess := s.sessions.GetOrCreate(sessionID)
	sess.Lock()
	if sess.Cart.Len() == 0 {
		sess.Unlock()
		return nil, ErrEmptyCart
	}
	if !sess.BeginCheckout() {
		sess.Unlock()
		return nil, ErrCheckoutInProgress
	}
	lines := sess.Cart.Items()
	total := sess.Cart.Total()
	numItems := sess.Cart.ItemCount()
	contentIDs := sess.Cart.ProductIDs()
	sess.Unlock()

	defer func() {
		sess.Lock()
		sess.EndCheckout()
		sess.Unlock()
	}()

	if s.delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-s.clock.After(s.delay):
		}
	}

	order, err := s.orders.CreateOrder(userID, details.Name, details.ShippingAddress(), lines, total)
	if err != nil {
		return nil, err
	}

	s.tracker.Track(ctx, analytics.Event{
		Name:        analytics.EventPurchase,
		SessionID:   sess.ID,
		ContentIDs:  contentIDs,
		ContentType: analytics.ContentTypeProduct,
		NumItems:    numItems,
		Value:       total,
		Currency:    s.currency,
	})

	sess.Lock()
	sess.Cart.Subtract(lines)
	sess.Unlock()

	return order, nil
}
