package services

import (
	"context"
	"strconv"

	"storefront/internal/analytics"
	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/state"
)

// WishlistView is the wishlist as the client renders it.
type WishlistView struct {
	Items []models.Product `json:"items"`
	Count int              `json:"count"`
}

// WishlistService manages the wishlist of each session.
type WishlistService struct {
	sessions    *state.Store
	productRepo repositories.ProductRepository
	cart        *CartService
	tracker     analytics.Tracker
	currency    string
}

// NewWishlistService creates a new WishlistService. Moves to the cart go through cart.
func NewWishlistService(sessions *state.Store, productRepo repositories.ProductRepository, cart *CartService, tracker analytics.Tracker, currency string) *WishlistService {
	return &WishlistService{
		sessions:    sessions,
		productRepo: productRepo,
		cart:        cart,
		tracker:     tracker,
		currency:    currency,
	}
}

// ToggleWishlist adds the product when absent and removes it when present.
// Only additions are tracked.
func (s *WishlistService) ToggleWishlist(ctx context.Context, sessionID string, productID int) (bool, WishlistView, error) {
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return false, WishlistView{}, err
	}

	sess := s.sessions.GetOrCreate(sessionID)
	sess.Lock()
	defer sess.Unlock()

	added := sess.Wishlist.Toggle(*product)
	if added {
		s.tracker.Track(ctx, analytics.Event{
			Name:        analytics.EventAddToWishlist,
			SessionID:   sess.ID,
			ContentName: product.Name,
			ContentIDs:  []string{strconv.Itoa(product.ID)},
			ContentType: analytics.ContentTypeProduct,
			Value:       product.Price,
			Currency:    s.currency,
		})
	}
	return added, wishlistView(sess), nil
}

// RemoveFromWishlist drops the product if it is present.
func (s *WishlistService) RemoveFromWishlist(sessionID string, productID int) WishlistView {
	sess := s.sessions.GetOrCreate(sessionID)
	sess.Lock()
	defer sess.Unlock()

	sess.Wishlist.Remove(productID)
	return wishlistView(sess)
}

// MoveToCart adds the product to the cart and then drops it from the wishlist.
// The product need not be on the wishlist.
func (s *WishlistService) MoveToCart(ctx context.Context, sessionID string, productID int) (CartView, WishlistView, error) {
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return CartView{}, WishlistView{}, err
	}

	sess := s.sessions.GetOrCreate(sessionID)
	sess.Lock()
	defer sess.Unlock()

	s.cart.add(ctx, sess, *product)
	sess.Wishlist.Remove(productID)
	return s.cart.view(sess), wishlistView(sess), nil
}

// View returns the current wishlist.
func (s *WishlistService) View(sessionID string) WishlistView {
	sess := s.sessions.GetOrCreate(sessionID)
	sess.Lock()
	defer sess.Unlock()

	return wishlistView(sess)
}

// Contains reports whether the product is on the session's wishlist.
func (s *WishlistService) Contains(sessionID string, productID int) bool {
	sess, ok := s.sessions.Get(sessionID)
	if !ok {
		return false
	}
	sess.Lock()
	defer sess.Unlock()

	return sess.Wishlist.Contains(productID)
}

func wishlistView(sess *state.Session) WishlistView {
	return WishlistView{Items: sess.Wishlist.Items(), Count: sess.Wishlist.Len()}
}
