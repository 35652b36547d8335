package handlers

import (
	"fmt"

	"storefront/internal/middleware"
	"storefront/internal/models"
	"storefront/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// StatusRequest moves an order to another status.
type StatusRequest struct {
	Status models.OrderStatus `json:"status" validate:"required"`
}

// AdminHandler serves the admin dashboard. Every route requires an administrator.
type AdminHandler struct {
	admin       *services.AdminService
	catalog     *services.CatalogService
	authService *services.AuthService
	validate    *validator.Validate
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(admin *services.AdminService, catalog *services.CatalogService, authService *services.AuthService) *AdminHandler {
	return &AdminHandler{
		admin:       admin,
		catalog:     catalog,
		authService: authService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the admin routes.
func (h *AdminHandler) RegisterRoutes(router fiber.Router) {
	adminRoutes := router.Group("/admin",
		middleware.AuthRequired(h.authService),
		middleware.AdminRequired(h.authService),
	)
	adminRoutes.Get("/overview", h.HandleOverview)

	adminRoutes.Post("/products", h.HandleCreateProduct)
	adminRoutes.Put("/products/:id", h.HandleUpdateProduct)
	adminRoutes.Delete("/products/:id", h.HandleDeleteProduct)

	adminRoutes.Get("/users", h.HandleListUsers)
	adminRoutes.Put("/users/:id", h.HandleUpdateUser)
	adminRoutes.Delete("/users/:id", h.HandleDeleteUser)

	adminRoutes.Get("/orders", h.HandleListOrders)
	adminRoutes.Patch("/orders/:id/status", h.HandleUpdateOrderStatus)
}

func (h *AdminHandler) HandleOverview(c *fiber.Ctx) error {
	overview, err := h.admin.Overview()
	if err != nil {
		return respondError(c, "Could not build overview", err)
	}
	return c.JSON(overview)
}

// HandleCreateProduct adds a product. Any id in the body is ignored.
func (h *AdminHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		return badRequest(c, err)
	}
	if err := h.catalog.CreateProduct(&product); err != nil {
		return respondError(c, "Could not create product", err)
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleUpdateProduct replaces the product record named in the path.
func (h *AdminHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidParam(c, "id")
	}
	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		return badRequest(c, err)
	}
	product.ID = id
	if err := h.catalog.UpdateProduct(&product); err != nil {
		return respondError(c, "Could not update product", err)
	}
	return c.JSON(product)
}

func (h *AdminHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidParam(c, "id")
	}
	if err := h.catalog.DeleteProduct(id); err != nil {
		return respondError(c, "Could not delete product", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *AdminHandler) HandleListUsers(c *fiber.Ctx) error {
	users, err := h.admin.ListUsers()
	if err != nil {
		return respondError(c, "Could not retrieve users", err)
	}
	return c.JSON(users)
}

// HandleUpdateUser replaces the user record named in the path.
func (h *AdminHandler) HandleUpdateUser(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidParam(c, "id")
	}
	var user models.User
	if err := c.BodyParser(&user); err != nil {
		return badRequest(c, err)
	}
	user.ID = id
	if err := h.admin.UpdateUser(&user); err != nil {
		return respondError(c, "Could not update user", err)
	}
	return c.JSON(user)
}

// HandleDeleteUser removes a user other than the caller.
func (h *AdminHandler) HandleDeleteUser(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidParam(c, "id")
	}
	actorID, _ := middleware.UserID(c)
	if err := h.admin.DeleteUser(actorID, id); err != nil {
		return respondError(c, "Could not delete user", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *AdminHandler) HandleListOrders(c *fiber.Ctx) error {
	orders, err := h.admin.ListOrders()
	if err != nil {
		return respondError(c, "Could not retrieve orders", err)
	}
	return c.JSON(orders)
}

func (h *AdminHandler) HandleUpdateOrderStatus(c *fiber.Ctx) error {
	orderID := c.Params("id")
	var req StatusRequest
	if err := parseBody(c, h.validate, &req); err != nil {
		return badRequest(c, err)
	}
	if err := h.admin.UpdateOrderStatus(orderID, req.Status); err != nil {
		return respondError(c, "Order update failed", err)
	}
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Order %s status updated successfully to %s", orderID, req.Status),
	})
}
