package middleware

import (
	"storefront/internal/state"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

// HeaderSessionID carries the visitor's session between requests.
const HeaderSessionID = "X-Session-ID"

const localSessionID = "session_id"

// maxSessionIDLength bounds client-supplied ids.
const maxSessionIDLength = 64

// Session resolves the visitor's session id, issuing a new one when the
// request has none, and echoes it on the response.
func Session() fiber.Handler {
	return func(c *fiber.Ctx) error {
		// The id outlives the request as a store key.
		id := utils.CopyString(c.Get(HeaderSessionID))
		if id == "" || len(id) > maxSessionIDLength {
			id = state.NewID()
		}
		c.Locals(localSessionID, id)
		c.Set(HeaderSessionID, id)
		return c.Next()
	}
}

// SessionID returns the id resolved by Session.
func SessionID(c *fiber.Ctx) string {
	id, _ := c.Locals(localSessionID).(string)
	return id
}
