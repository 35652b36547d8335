package handlers

import (
	"storefront/internal/middleware"
	"storefront/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AddItemRequest adds one unit of a product.
type AddItemRequest struct {
	ProductID int `json:"product_id" validate:"required,gt=0"`
}

// UpdateQuantityRequest changes a line's quantity by Delta, at most 1000 either way.
type UpdateQuantityRequest struct {
	Delta int `json:"delta" validate:"required,min=-1000,max=1000"`
}

// CartHandler handles HTTP requests for the session cart.
type CartHandler struct {
	service  *services.CartService
	validate *validator.Validate
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(service *services.CartService) *CartHandler {
	return &CartHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the cart routes.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cartRoutes := router.Group("/cart")
	cartRoutes.Get("/", h.HandleGetCart)
	cartRoutes.Delete("/", h.HandleClearCart)
	cartRoutes.Post("/items", h.HandleAddItem)
	cartRoutes.Patch("/items/:id", h.HandleUpdateQuantity)
	cartRoutes.Delete("/items/:id", h.HandleRemoveItem)
	cartRoutes.Post("/checkout/initiate", h.HandleInitiateCheckout)
}

func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	return c.JSON(h.service.View(middleware.SessionID(c)))
}

func (h *CartHandler) HandleClearCart(c *fiber.Ctx) error {
	return c.JSON(h.service.ClearCart(middleware.SessionID(c)))
}

// HandleAddItem adds a product to the cart, merging with an existing line.
func (h *CartHandler) HandleAddItem(c *fiber.Ctx) error {
	var req AddItemRequest
	if err := parseBody(c, h.validate, &req); err != nil {
		return badRequest(c, err)
	}
	view, err := h.service.AddToCart(c.UserContext(), middleware.SessionID(c), req.ProductID)
	if err != nil {
		return respondError(c, "Could not add product to cart", err)
	}
	return c.Status(fiber.StatusCreated).JSON(view)
}

func (h *CartHandler) HandleUpdateQuantity(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidParam(c, "id")
	}
	var req UpdateQuantityRequest
	if err := parseBody(c, h.validate, &req); err != nil {
		return badRequest(c, err)
	}
	return c.JSON(h.service.UpdateQuantity(middleware.SessionID(c), id, req.Delta))
}

func (h *CartHandler) HandleRemoveItem(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidParam(c, "id")
	}
	return c.JSON(h.service.RemoveFromCart(middleware.SessionID(c), id))
}

// HandleInitiateCheckout is called when the checkout form opens.
func (h *CartHandler) HandleInitiateCheckout(c *fiber.Ctx) error {
	view, err := h.service.InitiateCheckout(c.UserContext(), middleware.SessionID(c))
	if err != nil {
		return respondError(c, "Cannot start checkout", err)
	}
	return c.JSON(view)
}
