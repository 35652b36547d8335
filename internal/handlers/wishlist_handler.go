package handlers

import (
	"storefront/internal/middleware"
	"storefront/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// WishlistHandler handles HTTP requests for the session wishlist.
type WishlistHandler struct {
	service  *services.WishlistService
	validate *validator.Validate
}

// NewWishlistHandler creates a new WishlistHandler.
func NewWishlistHandler(service *services.WishlistService) *WishlistHandler {
	return &WishlistHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the wishlist routes.
func (h *WishlistHandler) RegisterRoutes(router fiber.Router) {
	wishlistRoutes := router.Group("/wishlist")
	wishlistRoutes.Get("/", h.HandleGetWishlist)
	wishlistRoutes.Post("/toggle", h.HandleToggle)
	wishlistRoutes.Get("/:id", h.HandleContains)
	wishlistRoutes.Delete("/:id", h.HandleRemove)
	wishlistRoutes.Post("/:id/move-to-cart", h.HandleMoveToCart)
}

func (h *WishlistHandler) HandleGetWishlist(c *fiber.Ctx) error {
	return c.JSON(h.service.View(middleware.SessionID(c)))
}

// HandleToggle adds or removes a product and reports which happened.
func (h *WishlistHandler) HandleToggle(c *fiber.Ctx) error {
	var req AddItemRequest
	if err := parseBody(c, h.validate, &req); err != nil {
		return badRequest(c, err)
	}
	added, view, err := h.service.ToggleWishlist(c.UserContext(), middleware.SessionID(c), req.ProductID)
	if err != nil {
		return respondError(c, "Could not update wishlist", err)
	}
	return c.JSON(fiber.Map{
		"added":    added,
		"wishlist": view,
	})
}

// HandleContains reports whether one product is wishlisted, for the product page heart.
func (h *WishlistHandler) HandleContains(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidParam(c, "id")
	}
	return c.JSON(fiber.Map{
		"product_id":  id,
		"in_wishlist": h.service.Contains(middleware.SessionID(c), id),
	})
}

func (h *WishlistHandler) HandleRemove(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidParam(c, "id")
	}
	return c.JSON(h.service.RemoveFromWishlist(middleware.SessionID(c), id))
}

func (h *WishlistHandler) HandleMoveToCart(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidParam(c, "id")
	}
	cart, wishlist, err := h.service.MoveToCart(c.UserContext(), middleware.SessionID(c), id)
	if err != nil {
		return respondError(c, "Could not move product to cart", err)
	}
	return c.JSON(fiber.Map{
		"cart":     cart,
		"wishlist": wishlist,
	})
}
