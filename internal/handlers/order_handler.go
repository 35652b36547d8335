package handlers

import (
	"storefront/internal/middleware"
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
)

// OrderHandler serves the signed-in user's order history.
type OrderHandler struct {
	service     *services.OrderService
	authService *services.AuthService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService, authService *services.AuthService) *OrderHandler {
	return &OrderHandler{
		service:     service,
		authService: authService,
	}
}

// RegisterRoutes registers the order routes with the Fiber app.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders", middleware.AuthRequired(h.authService))
	orderRoutes.Get("/", h.HandleGetOrders)
	orderRoutes.Get("/:id", h.HandleGetOrderByID)
}

// HandleGetOrders lists the caller's orders, newest first.
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	userID, _ := middleware.UserID(c)
	orders, err := h.service.OrdersForUser(userID)
	if err != nil {
		return respondError(c, "Could not retrieve orders", err)
	}
	return c.JSON(orders)
}

// HandleGetOrderByID returns one of the caller's orders. Other users'
// orders are reported as missing.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	userID, _ := middleware.UserID(c)
	order, err := h.service.GetOrderByID(c.Params("id"))
	if err != nil {
		return respondError(c, "Could not retrieve order", err)
	}
	if order.UserID != userID {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Order not found",
		})
	}
	return c.JSON(order)
}
