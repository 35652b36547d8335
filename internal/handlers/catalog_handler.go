package handlers

import (
	"storefront/internal/middleware"
	"storefront/internal/models"
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CatalogHandler serves the public product catalog.
type CatalogHandler struct {
	service *services.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(service *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

// RegisterRoutes registers the catalog routes.
func (h *CatalogHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/categories", h.HandleGetCategories)
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Get("/featured", h.HandleGetFeatured)
	productRoutes.Get("/:id", h.HandleGetProduct)
	productRoutes.Get("/:id/related", h.HandleGetRelated)
}

// HandleGetCategories lists the filter options, starting with "All".
func (h *CatalogHandler) HandleGetCategories(c *fiber.Ctx) error {
	return c.JSON(append([]models.Category{models.CategoryAll}, models.Categories...))
}

// HandleGetProducts filters the catalog by ?category= and ?q=.
// An unknown category simply matches nothing.
func (h *CatalogHandler) HandleGetProducts(c *fiber.Ctx) error {
	raw := c.Query("category")
	category, ok := models.ParseCategory(raw)
	if !ok {
		category = models.Category(raw)
	}

	products, err := h.service.Filter(c.UserContext(), middleware.SessionID(c), category, c.Query("q"))
	if err != nil {
		return respondError(c, "Could not retrieve products", err)
	}
	return c.JSON(products)
}

// HandleGetFeatured returns the featured products.
func (h *CatalogHandler) HandleGetFeatured(c *fiber.Ctx) error {
	products, err := h.service.Featured()
	if err != nil {
		return respondError(c, "Could not retrieve featured products", err)
	}
	return c.JSON(products)
}

// HandleGetProduct returns one product and records the view.
func (h *CatalogHandler) HandleGetProduct(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidParam(c, "id")
	}
	product, err := h.service.GetProduct(c.UserContext(), middleware.SessionID(c), id)
	if err != nil {
		return respondError(c, "Could not retrieve product", err)
	}
	return c.JSON(product)
}

// HandleGetRelated returns other products from the same category.
func (h *CatalogHandler) HandleGetRelated(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidParam(c, "id")
	}
	products, err := h.service.Related(id, services.RelatedLimit)
	if err != nil {
		return respondError(c, "Could not retrieve related products", err)
	}
	return c.JSON(products)
}
