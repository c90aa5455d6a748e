package handlers

import (
	"github.com/gofiber/fiber/v2"

	"campsite-service/internal/flash"
)

// redirectWith records a flash message and sends the browser on. The
// message surfaces on whatever page renders next.
func (h *Handler) redirectWith(c *fiber.Ctx, kind flash.Kind, message, path string) error {
	sid := h.sid(c)
	if err := h.flash.Push(c.Context(), sid, kind, message); err != nil {
		h.log.Errorf("flash push failed: %v", err)
	}
	return c.Redirect(path, fiber.StatusSeeOther)
}

// render wraps payload with any pending flash messages, draining them.
func (h *Handler) render(c *fiber.Ctx, status int, payload any) error {
	sid := h.sid(c)
	success, err := h.flash.Drain(c.Context(), sid, flash.KindSuccess)
	if err != nil {
		h.log.Errorf("flash drain failed: %v", err)
	}
	errs, err := h.flash.Drain(c.Context(), sid, flash.KindError)
	if err != nil {
		h.log.Errorf("flash drain failed: %v", err)
	}
	return c.Status(status).JSON(fiber.Map{
		"data": payload,
		"flash": fiber.Map{
			"success": success,
			"error":   errs,
		},
	})
}

func jsonError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"status": "error", "message": msg})
}
