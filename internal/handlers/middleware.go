package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"campsite-service/internal/flash"
)

const principalLocal = "principal"

// RequireLogin gates protected routes. An unauthenticated request has its
// target recorded so a successful login can resume there, then bounces to
// the login page. No resource state is touched.
func (h *Handler) RequireLogin(c *fiber.Ctx) error {
	principal, ok := h.principal(c)
	if !ok {
		sid := h.sid(c)
		if err := h.tracker.Track(c.Context(), sid, c.OriginalURL()); err != nil {
			h.log.Errorf("tracking return url failed: %v", err)
		}
		return h.redirectWith(c, flash.KindError, "You must be signed in to perform that action", "/login")
	}
	c.Locals(principalLocal, principal)
	return c.Next()
}

func currentPrincipal(c *fiber.Ctx) primitive.ObjectID {
	id, _ := c.Locals(principalLocal).(primitive.ObjectID)
	return id
}
