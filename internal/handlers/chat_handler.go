package handlers

import (
	"storefront/internal/middleware"
	"storefront/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ChatRequest is one message to the assistant.
type ChatRequest struct {
	Message string `json:"message" validate:"required,max=2000"`
}

// ChatHandler relays the shopping assistant conversation.
type ChatHandler struct {
	service  *services.ChatService
	validate *validator.Validate
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(service *services.ChatService) *ChatHandler {
	return &ChatHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the chat routes.
func (h *ChatHandler) RegisterRoutes(router fiber.Router) {
	chatRoutes := router.Group("/chat")
	chatRoutes.Get("/", h.HandleHistory)
	chatRoutes.Post("/", h.HandleSend)
	chatRoutes.Delete("/", h.HandleReset)
}

func (h *ChatHandler) HandleHistory(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"online":   h.service.Online(),
		"messages": h.service.History(middleware.SessionID(c)),
	})
}

// HandleSend always answers 200; failures come back as an error reply
// the client shows in the conversation.
func (h *ChatHandler) HandleSend(c *fiber.Ctx) error {
	var req ChatRequest
	if err := parseBody(c, h.validate, &req); err != nil {
		return badRequest(c, err)
	}
	return c.JSON(h.service.Send(c.UserContext(), middleware.SessionID(c), req.Message))
}

func (h *ChatHandler) HandleReset(c *fiber.Ctx) error {
	h.service.Reset(middleware.SessionID(c))
	return c.SendStatus(fiber.StatusNoContent)
}
