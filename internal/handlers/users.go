package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"campsite-service/internal/flash"
	"campsite-service/internal/repository"
	"campsite-service/internal/services"
)

// RegisterPage surfaces flash messages from a rejected registration; the
// form itself lives in the excluded view layer.
func (h *Handler) RegisterPage(c *fiber.Ctx) error {
	return h.render(c, fiber.StatusOK, nil)
}

func (h *Handler) RegisterUser(c *fiber.Ctx) error {
	username := strings.TrimSpace(c.FormValue("username"))
	email := strings.TrimSpace(c.FormValue("email"))
	password := c.FormValue("password")
	if username == "" || email == "" || password == "" {
		return h.redirectWith(c, flash.KindError, "Username, email and password are required", "/register")
	}

	user, err := h.users.Register(c.Context(), username, email, password)
	if errors.Is(err, repository.ErrDuplicateUser) {
		return h.redirectWith(c, flash.KindError, "That username or email is already taken", "/register")
	}
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "could not register")
	}

	// auto-login after registration
	sid := h.sid(c)
	if err := h.broker.Login(c.Context(), sid, user.ID); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "could not start session")
	}
	return h.redirectWith(c, flash.KindSuccess, "Welcome to Campsite!", "/campgrounds")
}

// LoginPage only exists to surface flash messages from a rejected attempt;
// the form itself lives in the excluded view layer.
func (h *Handler) LoginPage(c *fiber.Ctx) error {
	return h.render(c, fiber.StatusOK, nil)
}

func (h *Handler) Login(c *fiber.Ctx) error {
	username := strings.TrimSpace(c.FormValue("username"))
	password := c.FormValue("password")

	user, err := h.users.Authenticate(c.Context(), username, password)
	if errors.Is(err, services.ErrInvalidCredentials) {
		return h.redirectWith(c, flash.KindError, "Invalid username or password", "/login")
	}
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "could not log in")
	}

	sid := h.sid(c)
	if err := h.broker.Login(c.Context(), sid, user.ID); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "could not start session")
	}

	// Resume where the user left off before the login detour. Consuming
	// clears the target; a second login lands on the listing.
	target, err := h.tracker.Consume(c.Context(), sid, "/campgrounds")
	if err != nil {
		h.log.Errorf("consuming return url failed: %v", err)
	}
	return h.redirectWith(c, flash.KindSuccess, "Welcome back!", target)
}

func (h *Handler) Logout(c *fiber.Ctx) error {
	sid := h.sid(c)
	if err := h.broker.Logout(c.Context(), sid); err != nil {
		h.log.Errorf("logout failed: %v", err)
	}
	return h.redirectWith(c, flash.KindSuccess, "Goodbye!", "/campgrounds")
}
