package handlers

import (
	"storefront/internal/middleware"
	"storefront/internal/state"

	"github.com/gofiber/fiber/v2"
)

// SessionHandler lets a visitor drop their cart, wishlist and conversation at once.
type SessionHandler struct {
	store *state.Store
}

func NewSessionHandler(store *state.Store) *SessionHandler {
	return &SessionHandler{store: store}
}

// RegisterRoutes registers the session routes.
func (h *SessionHandler) RegisterRoutes(router fiber.Router) {
	router.Delete("/session", h.HandleReset)
}

func (h *SessionHandler) HandleReset(c *fiber.Ctx) error {
	h.store.Reset(middleware.SessionID(c))
	return c.SendStatus(fiber.StatusNoContent)
}
