package handlers

import (
	"storefront/internal/middleware"
	"storefront/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CheckoutHandler handles order placement. Signed-in and guest visitors may check out.
type CheckoutHandler struct {
	service     *services.CheckoutService
	authService *services.AuthService
	validate    *validator.Validate
}

// NewCheckoutHandler creates a new CheckoutHandler.
func NewCheckoutHandler(service *services.CheckoutService, authService *services.AuthService) *CheckoutHandler {
	return &CheckoutHandler{
		service:     service,
		authService: authService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the checkout route.
func (h *CheckoutHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/checkout", middleware.OptionalAuth(h.authService), h.HandleCheckout)
}

// HandleCheckout pays for the session cart and returns the new order.
func (h *CheckoutHandler) HandleCheckout(c *fiber.Ctx) error {
	var details services.CheckoutDetails
	if err := parseBody(c, h.validate, &details); err != nil {
		return badRequest(c, err)
	}

	userID, _ := middleware.UserID(c)
	order, err := h.service.Checkout(c.UserContext(), middleware.SessionID(c), userID, details)
	if err != nil {
		return respondError(c, "Checkout failed", err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Order placed",
		"order":   order,
	})
}
