package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"storefront/internal/app"
	"storefront/internal/config"
	"storefront/internal/llm"
	"storefront/internal/middleware"
	"storefront/internal/models"
	"storefront/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMain runs setup and teardown for all tests
func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

// setupApp builds the whole storefront on in-memory repositories. Each
// option adjusts the test configuration before the app is built.
func setupApp(t *testing.T, options ...func(*config.Config)) *app.App {
	t.Helper()
	cfg := config.Default()
	cfg.Server.RequestLog = false
	cfg.Analytics.Log = false
	cfg.Checkout.ProcessingDelay = 0
	cfg.Auth.JWTSecret = "test_jwt_secret"
	for _, option := range options {
		option(cfg)
	}

	a, err := app.New(cfg, app.Options{Generator: llm.NewMock("")})
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })
	return a
}

type request struct {
	method  string
	path    string
	body    any
	session string
	token   string
}

// do sends req and decodes a JSON response into out when out is non-nil.
func do(t *testing.T, a *app.App, req request, out any) *http.Response {
	t.Helper()
	var body io.Reader
	if req.body != nil {
		jsonBody, err := json.Marshal(req.body)
		require.NoError(t, err)
		body = bytes.NewReader(jsonBody)
	}
	httpReq := httptest.NewRequest(req.method, req.path, body)
	if req.body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if req.session != "" {
		httpReq.Header.Set(middleware.HeaderSessionID, req.session)
	}
	if req.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+req.token)
	}

	resp, err := a.Fiber.Test(httpReq, -1)
	require.NoError(t, err)
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	resp.Body.Close()
	return resp
}

func login(t *testing.T, a *app.App, email, password string) string {
	t.Helper()
	var loginResp struct {
		Token string `json:"token"`
	}
	resp := do(t, a, request{
		method: http.MethodPost,
		path:   "/api/v1/auth/login",
		body:   map[string]string{"email": email, "password": password},
	}, &loginResp)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotEmpty(t, loginResp.Token)
	return loginResp.Token
}

func TestHealth(t *testing.T) {
	a := setupApp(t)

	var health map[string]any
	resp := do(t, a, request{method: http.MethodGet, path: "/health"}, &health)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "healthy", health["status"])
	assert.Equal(t, "memory", health["database"])
	assert.Equal(t, "disabled", health["rabbitmq"])
	assert.Equal(t, true, health["chat"])
}

func TestCatalogEndpoints(t *testing.T) {
	a := setupApp(t)

	var products []models.Product
	resp := do(t, a, request{method: http.MethodGet, path: "/api/v1/products"}, &products)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, products, 8)
	assert.Len(t, resp.Header.Get(middleware.HeaderSessionID), 36)

	resp = do(t, a, request{method: http.MethodGet, path: "/api/v1/products?category=Home"}, &products)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, products, 2)

	resp = do(t, a, request{method: http.MethodGet, path: "/api/v1/products?category=Toys"}, &products)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, products)

	resp = do(t, a, request{method: http.MethodGet, path: "/api/v1/products?q=WATCH"}, &products)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, products, 1)
	assert.Equal(t, 3, products[0].ID)

	resp = do(t, a, request{method: http.MethodGet, path: "/api/v1/products/featured"}, &products)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, products)

	var product models.Product
	resp = do(t, a, request{method: http.MethodGet, path: "/api/v1/products/3"}, &product)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Minimalist Smart Watch", product.Name)

	resp = do(t, a, request{method: http.MethodGet, path: "/api/v1/products/3/related"}, &products)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.LessOrEqual(t, len(products), services.RelatedLimit)
	for _, p := range products {
		assert.Equal(t, models.CategoryElectronics, p.Category)
		assert.NotEqual(t, 3, p.ID)
	}

	resp = do(t, a, request{method: http.MethodGet, path: "/api/v1/products/99"}, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = do(t, a, request{method: http.MethodGet, path: "/api/v1/products/abc"}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var categories []string
	resp = do(t, a, request{method: http.MethodGet, path: "/api/v1/categories"}, &categories)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []string{"All", "Electronics", "Fashion", "Home", "Accessories"}, categories)
}

func TestCartEndpoints(t *testing.T) {
	a := setupApp(t)
	session := "cart-session"

	var cart services.CartView
	for range 2 {
		resp := do(t, a, request{method: http.MethodPost, path: "/api/v1/cart/items", body: map[string]int{"product_id": 1}, session: session}, &cart)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.Equal(t, 599.98, cart.Total)
	assert.Equal(t, "USD", cart.Currency)

	resp := do(t, a, request{method: http.MethodPatch, path: "/api/v1/cart/items/1", body: map[string]int{"delta": -5}, session: session}, &cart)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, cart.Items[0].Quantity)

	resp = do(t, a, request{method: http.MethodPatch, path: "/api/v1/cart/items/1", body: map[string]int{"delta": 0}, session: session}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	for _, delta := range []int{1001, -1001, math.MaxInt} {
		var rejected struct {
			Errors map[string]string `json:"errors"`
		}
		resp = do(t, a, request{method: http.MethodPatch, path: "/api/v1/cart/items/1", body: map[string]int{"delta": delta}, session: session}, &rejected)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "delta %d", delta)
		assert.Contains(t, rejected.Errors, "Delta")
	}
	do(t, a, request{method: http.MethodGet, path: "/api/v1/cart", session: session}, &cart)
	assert.Equal(t, 1, cart.Items[0].Quantity)

	resp = do(t, a, request{method: http.MethodPost, path: "/api/v1/cart/items", body: map[string]int{"product_id": 404}, session: session}, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var validation struct {
		Message string            `json:"message"`
		Errors  map[string]string `json:"errors"`
	}
	resp = do(t, a, request{method: http.MethodPost, path: "/api/v1/cart/items", body: map[string]int{}, session: session}, &validation)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Validation failed", validation.Message)
	assert.Contains(t, validation.Errors, "ProductID")

	resp = do(t, a, request{method: http.MethodPost, path: "/api/v1/cart/checkout/initiate", session: session}, &cart)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = do(t, a, request{method: http.MethodDelete, path: "/api/v1/cart/items/1", session: session}, &cart)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, cart.Items)

	resp = do(t, a, request{method: http.MethodPost, path: "/api/v1/cart/checkout/initiate", session: session}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	do(t, a, request{method: http.MethodPost, path: "/api/v1/cart/items", body: map[string]int{"product_id": 2}, session: session}, nil)
	resp = do(t, a, request{method: http.MethodDelete, path: "/api/v1/cart", session: session}, &cart)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, cart.Items)
	assert.Zero(t, cart.ItemCount)

	// Another session sees its own empty cart.
	do(t, a, request{method: http.MethodPost, path: "/api/v1/cart/items", body: map[string]int{"product_id": 2}, session: session}, nil)
	resp = do(t, a, request{method: http.MethodGet, path: "/api/v1/cart", session: "other"}, &cart)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, cart.Items)
}

func TestWishlistEndpoints(t *testing.T) {
	a := setupApp(t)
	session := "wish-session"

	var toggled struct {
		Added    bool                  `json:"added"`
		Wishlist services.WishlistView `json:"wishlist"`
	}
	resp := do(t, a, request{method: http.MethodPost, path: "/api/v1/wishlist/toggle", body: map[string]int{"product_id": 6}, session: session}, &toggled)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, toggled.Added)
	assert.Equal(t, 1, toggled.Wishlist.Count)

	var contains struct {
		InWishlist bool `json:"in_wishlist"`
	}
	do(t, a, request{method: http.MethodGet, path: "/api/v1/wishlist/6", session: session}, &contains)
	assert.True(t, contains.InWishlist)

	do(t, a, request{method: http.MethodPost, path: "/api/v1/wishlist/toggle", body: map[string]int{"product_id": 6}, session: session}, &toggled)
	assert.False(t, toggled.Added)
	do(t, a, request{method: http.MethodGet, path: "/api/v1/wishlist/6", session: session}, &contains)
	assert.False(t, contains.InWishlist)
	assert.Zero(t, toggled.Wishlist.Count)

	do(t, a, request{method: http.MethodPost, path: "/api/v1/wishlist/toggle", body: map[string]int{"product_id": 7}, session: session}, nil)
	var moved struct {
		Cart     services.CartView     `json:"cart"`
		Wishlist services.WishlistView `json:"wishlist"`
	}
	resp = do(t, a, request{method: http.MethodPost, path: "/api/v1/wishlist/7/move-to-cart", session: session}, &moved)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Zero(t, moved.Wishlist.Count)
	require.Len(t, moved.Cart.Items, 1)
	assert.Equal(t, 7, moved.Cart.Items[0].ID)

	do(t, a, request{method: http.MethodPost, path: "/api/v1/wishlist/toggle", body: map[string]int{"product_id": 8}, session: session}, nil)
	var wishlist services.WishlistView
	resp = do(t, a, request{method: http.MethodDelete, path: "/api/v1/wishlist/8", session: session}, &wishlist)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Zero(t, wishlist.Count)

	resp = do(t, a, request{method: http.MethodPost, path: "/api/v1/wishlist/toggle", body: map[string]int{"product_id": 55}, session: session}, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

var checkoutForm = map[string]string{
	"name":    "Alex Chen",
	"email":   "alex.c@sar-legacy.net",
	"address": "12 Neon Row",
	"city":    "Neo Tokyo",
	"zip":     "10101",
	"card":    "4242424242424242",
	"expiry":  "12/45",
	"cvc":     "123",
}

func TestCheckoutEndpoints(t *testing.T) {
	a := setupApp(t)
	session := "checkout-session"

	resp := do(t, a, request{method: http.MethodPost, path: "/api/v1/checkout", body: checkoutForm, session: session}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	do(t, a, request{method: http.MethodPost, path: "/api/v1/cart/items", body: map[string]int{"product_id": 5}, session: session}, nil)

	resp = do(t, a, request{method: http.MethodPost, path: "/api/v1/checkout", body: map[string]string{"name": "Alex"}, session: session}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	token := login(t, a, "alex.c@sar-legacy.net", "any")
	var placed struct {
		Message string       `json:"message"`
		Order   models.Order `json:"order"`
	}
	resp = do(t, a, request{method: http.MethodPost, path: "/api/v1/checkout", body: checkoutForm, session: session, token: token}, &placed)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "Order placed", placed.Message)
	assert.Equal(t, models.OrderStatusProcessing, placed.Order.Status)
	assert.Equal(t, 89.99, placed.Order.Total)
	assert.Equal(t, 2, placed.Order.UserID)
	assert.Equal(t, "12 Neon Row, Neo Tokyo 10101", placed.Order.ShippingAddress)

	var cart services.CartView
	do(t, a, request{method: http.MethodGet, path: "/api/v1/cart", session: session}, &cart)
	assert.Empty(t, cart.Items)

	var orders []models.Order
	resp = do(t, a, request{method: http.MethodGet, path: "/api/v1/orders", token: token}, &orders)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, orders, 4)
	assert.Equal(t, placed.Order.ID, orders[0].ID)

	var order models.Order
	resp = do(t, a, request{method: http.MethodGet, path: "/api/v1/orders/" + placed.Order.ID, token: token}, &order)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, placed.Order.ID, order.ID)

	other := login(t, a, "mira.o@sar-legacy.net", "any")
	resp = do(t, a, request{method: http.MethodGet, path: "/api/v1/orders/" + placed.Order.ID, token: other}, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = do(t, a, request{method: http.MethodGet, path: "/api/v1/orders"}, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Guests may check out as well.
	do(t, a, request{method: http.MethodPost, path: "/api/v1/cart/items", body: map[string]int{"product_id": 8}, session: "guest"}, nil)
	resp = do(t, a, request{method: http.MethodPost, path: "/api/v1/checkout", body: checkoutForm, session: "guest"}, &placed)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Zero(t, placed.Order.UserID)
}

func TestCheckoutEndpoints_RequestTimeout(t *testing.T) {
	a := setupApp(t, func(cfg *config.Config) {
		cfg.Server.RequestTimeout = 50 * time.Millisecond
		cfg.Checkout.ProcessingDelay = 10 * time.Second
	})
	session := "slow-session"

	do(t, a, request{method: http.MethodPost, path: "/api/v1/cart/items", body: map[string]int{"product_id": 3}, session: session}, nil)

	var body map[string]any
	resp := do(t, a, request{method: http.MethodPost, path: "/api/v1/checkout", body: checkoutForm, session: session}, &body)
	assert.Equal(t, http.StatusRequestTimeout, resp.StatusCode)
	assert.Equal(t, "Checkout failed", body["message"])

	var cart services.CartView
	do(t, a, request{method: http.MethodGet, path: "/api/v1/cart", session: session}, &cart)
	assert.Equal(t, 1, cart.ItemCount)

	orders, err := a.Admin.ListOrders()
	require.NoError(t, err)
	assert.Len(t, orders, 3)
}

func TestAuthEndpoints(t *testing.T) {
	a := setupApp(t)

	var registered struct {
		Message string      `json:"message"`
		Token   string      `json:"token"`
		User    models.User `json:"user"`
	}
	resp := do(t, a, request{
		method: http.MethodPost,
		path:   "/api/v1/auth/register",
		body:   map[string]string{"name": "Kai Tanaka", "email": "kai@example.com", "password": "pw"},
	}, &registered)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "User registered successfully", registered.Message)
	assert.NotEmpty(t, registered.Token)
	assert.Equal(t, "Initiate", registered.User.Rank)

	resp = do(t, a, request{
		method: http.MethodPost,
		path:   "/api/v1/auth/register",
		body:   map[string]string{"name": "Alex", "email": "alex.c@sar-legacy.net"},
	}, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = do(t, a, request{
		method: http.MethodPost,
		path:   "/api/v1/auth/register",
		body:   map[string]string{"name": "No Email"},
	}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var users []models.User
	adminToken := login(t, a, "admin@sar-legacy.net", "superadmin")
	do(t, a, request{method: http.MethodGet, path: "/api/v1/admin/users", token: adminToken}, &users)
	assert.Len(t, users, 4)

	resp = do(t, a, request{
		method: http.MethodPost,
		path:   "/api/v1/auth/login",
		body:   map[string]string{"email": "admin@sar-legacy.net", "password": "wrong"},
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = do(t, a, request{
		method: http.MethodPost,
		path:   "/api/v1/auth/login",
		body:   map[string]string{"email": "kai@example.com", "password": ""},
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	var me models.User
	resp = do(t, a, request{method: http.MethodGet, path: "/api/v1/auth/me", token: registered.Token}, &me)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "kai@example.com", me.Email)

	resp = do(t, a, request{method: http.MethodGet, path: "/api/v1/auth/me"}, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAdminEndpoints(t *testing.T) {
	a := setupApp(t)

	customer := login(t, a, "alex.c@sar-legacy.net", "any")
	resp := do(t, a, request{method: http.MethodGet, path: "/api/v1/admin/overview", token: customer}, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	admin := login(t, a, "admin@sar-legacy.net", "superadmin")

	var overview services.Overview
	resp = do(t, a, request{method: http.MethodGet, path: "/api/v1/admin/overview", token: admin}, &overview)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 559.98, overview.TotalRevenue)
	assert.Equal(t, 3, overview.TotalSales)
	assert.Equal(t, 8, overview.Products)

	var created models.Product
	resp = do(t, a, request{
		method: http.MethodPost,
		path:   "/api/v1/admin/products",
		token:  admin,
		body:   map[string]any{"id": 2, "name": "Plasma Kettle", "price": 59, "category": "Home", "stock": 3},
	}, &created)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, 9, created.ID)
	assert.Zero(t, created.Rating)

	resp = do(t, a, request{
		method: http.MethodPost,
		path:   "/api/v1/admin/products",
		token:  admin,
		body:   map[string]any{"name": "Nothing", "price": 1, "category": "All"},
	}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var updated models.Product
	resp = do(t, a, request{
		method: http.MethodPut,
		path:   fmt.Sprintf("/api/v1/admin/products/%d", created.ID),
		token:  admin,
		body:   map[string]any{"name": "Plasma Kettle Pro", "price": 79, "category": "Home", "stock": 3},
	}, &updated)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Plasma Kettle Pro", updated.Name)

	resp = do(t, a, request{method: http.MethodDelete, path: fmt.Sprintf("/api/v1/admin/products/%d", created.ID), token: admin}, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp = do(t, a, request{method: http.MethodGet, path: fmt.Sprintf("/api/v1/products/%d", created.ID)}, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// The signed-in administrator cannot delete their own account.
	resp = do(t, a, request{method: http.MethodDelete, path: "/api/v1/admin/users/1", token: admin}, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	var users []models.User
	do(t, a, request{method: http.MethodGet, path: "/api/v1/admin/users", token: admin}, &users)
	assert.Len(t, users, 3)

	resp = do(t, a, request{method: http.MethodDelete, path: "/api/v1/admin/users/3", token: admin}, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	var user models.User
	resp = do(t, a, request{
		method: http.MethodPut,
		path:   "/api/v1/admin/users/2",
		token:  admin,
		body:   map[string]any{"name": "Alex Chen", "email": "alex.c@sar-legacy.net", "rank": "Legend", "credits": 5000},
	}, &user)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Legend", user.Rank)

	resp = do(t, a, request{
		method: http.MethodPut,
		path:   "/api/v1/admin/users/2",
		token:  admin,
		body:   map[string]any{"name": "Alex Chen", "email": "admin@sar-legacy.net"},
	}, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = do(t, a, request{method: http.MethodPatch, path: "/api/v1/admin/orders/SAR-7710/status", token: admin, body: map[string]string{"status": "Shipped"}}, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = do(t, a, request{method: http.MethodPatch, path: "/api/v1/admin/orders/SAR-7710/status", token: admin, body: map[string]string{"status": "Lost"}}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, a, request{method: http.MethodPatch, path: "/api/v1/admin/orders/SAR-0001/status", token: admin, body: map[string]string{"status": "Shipped"}}, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var orders []models.Order
	do(t, a, request{method: http.MethodGet, path: "/api/v1/admin/orders", token: admin}, &orders)
	require.Len(t, orders, 3)
	for _, o := range orders {
		if o.ID == "SAR-7710" {
			assert.Equal(t, models.OrderStatusShipped, o.Status)
		}
	}
}

func TestChatEndpoints(t *testing.T) {
	a := setupApp(t)
	session := "chat-session"

	var reply services.ChatReply
	resp := do(t, a, request{method: http.MethodPost, path: "/api/v1/chat", body: map[string]string{"message": "Any sunglasses?"}, session: session}, &reply)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "You might like: Designer Sunglasses.", reply.Text)

	var history struct {
		Online   bool          `json:"online"`
		Messages []llm.Message `json:"messages"`
	}
	do(t, a, request{method: http.MethodGet, path: "/api/v1/chat", session: session}, &history)
	assert.True(t, history.Online)
	assert.Len(t, history.Messages, 2)

	resp = do(t, a, request{method: http.MethodPost, path: "/api/v1/chat", body: map[string]string{"message": ""}, session: session}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, a, request{method: http.MethodDelete, path: "/api/v1/chat", session: session}, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	do(t, a, request{method: http.MethodGet, path: "/api/v1/chat", session: session}, &history)
	assert.Empty(t, history.Messages)
}

func TestSessionReset(t *testing.T) {
	a := setupApp(t)
	session := "reset-session"

	do(t, a, request{method: http.MethodPost, path: "/api/v1/cart/items", body: map[string]int{"product_id": 1}, session: session}, nil)
	do(t, a, request{method: http.MethodPost, path: "/api/v1/wishlist/toggle", body: map[string]int{"product_id": 2}, session: session}, nil)

	resp := do(t, a, request{method: http.MethodDelete, path: "/api/v1/session", session: session}, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	var cart services.CartView
	do(t, a, request{method: http.MethodGet, path: "/api/v1/cart", session: session}, &cart)
	assert.Zero(t, cart.ItemCount)
	var wishlist services.WishlistView
	do(t, a, request{method: http.MethodGet, path: "/api/v1/wishlist", session: session}, &wishlist)
	assert.Zero(t, wishlist.Count)
}
