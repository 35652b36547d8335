package services

import (
	"context"
	"strconv"

	"storefront/internal/analytics"
	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/state"
)

// CartView is the cart as the client renders it, with derived totals.
type CartView struct {
	Items     []models.CartItem `json:"items"`
	ItemCount int               `json:"item_count"`
	Total     float64           `json:"total"`
	Currency  string            `json:"currency"`
}

// CartService manages the cart of each session.
type CartService struct {
	sessions    *state.Store
	productRepo repositories.ProductRepository
	tracker     analytics.Tracker
	currency    string
}

// NewCartService creates a new CartService.
func NewCartService(sessions *state.Store, productRepo repositories.ProductRepository, tracker analytics.Tracker, currency string) *CartService {
	return &CartService{
		sessions:    sessions,
		productRepo: productRepo,
		tracker:     tracker,
		currency:    currency,
	}
}

// AddToCart adds one unit of a catalog product to the session's cart.
// The only failure is an unknown product id.
func (s *CartService) AddToCart(ctx context.Context, sessionID string, productID int) (CartView, error) {
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return CartView{}, err
	}

	sess := s.sessions.GetOrCreate(sessionID)
	sess.Lock()
	defer sess.Unlock()

	s.add(ctx, sess, *product)
	return s.view(sess), nil
}

// add puts product into the cart of a session whose lock is held.
func (s *CartService) add(ctx context.Context, sess *state.Session, product models.Product) {
	sess.Cart.Add(product)
	s.tracker.Track(ctx, analytics.Event{
		Name:        analytics.EventAddToCart,
		SessionID:   sess.ID,
		ContentName: product.Name,
		ContentIDs:  []string{strconv.Itoa(product.ID)},
		ContentType: analytics.ContentTypeProduct,
		Value:       product.Price,
		Currency:    s.currency,
	})
}

// UpdateQuantity changes an item's quantity by delta, never going below one.
func (s *CartService) UpdateQuantity(sessionID string, productID, delta int) CartView {
	sess := s.sessions.GetOrCreate(sessionID)
	sess.Lock()
	defer sess.Unlock()

	sess.Cart.UpdateQuantity(productID, delta)
	return s.view(sess)
}

// RemoveFromCart drops an item regardless of its quantity.
func (s *CartService) RemoveFromCart(sessionID string, productID int) CartView {
	sess := s.sessions.GetOrCreate(sessionID)
	sess.Lock()
	defer sess.Unlock()

	sess.Cart.Remove(productID)
	return s.view(sess)
}

// ClearCart empties the cart.
func (s *CartService) ClearCart(sessionID string) CartView {
	sess := s.sessions.GetOrCreate(sessionID)
	sess.Lock()
	defer sess.Unlock()

	sess.Cart.Clear()
	return s.view(sess)
}

// View returns the current cart.
func (s *CartService) View(sessionID string) CartView {
	sess := s.sessions.GetOrCreate(sessionID)
	sess.Lock()
	defer sess.Unlock()

	return s.view(sess)
}

// InitiateCheckout records that the visitor opened checkout with a non-empty cart.
func (s *CartService) InitiateCheckout(ctx context.Context, sessionID string) (CartView, error) {
	sess := s.sessions.GetOrCreate(sessionID)
	sess.Lock()
	defer sess.Unlock()

	if sess.Cart.Len() == 0 {
		return s.view(sess), ErrEmptyCart
	}

	view := s.view(sess)
	s.tracker.Track(ctx, analytics.Event{
		Name:        analytics.EventInitiateCheckout,
		SessionID:   sess.ID,
		ContentIDs:  sess.Cart.ProductIDs(),
		ContentType: analytics.ContentTypeProduct,
		NumItems:    view.ItemCount,
		Value:       view.Total,
		Currency:    s.currency,
	})
	return view, nil
}

func (s *CartService) view(sess *state.Session) CartView {
	return CartView{
		Items:     sess.Cart.Items(),
		ItemCount: sess.Cart.ItemCount(),
		Total:     sess.Cart.Total(),
		Currency:  s.currency,
	}
}
