package handlers

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"campsite-service/internal/auth"
	"campsite-service/internal/flash"
	"campsite-service/internal/models"
	"campsite-service/internal/services"
	"campsite-service/internal/session"
	"campsite-service/internal/storage"
)

// Geocoder resolves a free-form location to a point.
type Geocoder interface {
	Forward(ctx context.Context, query string) (models.Geometry, error)
}

type Handler struct {
	campgrounds *services.CampgroundService
	reviews     *services.ReviewService
	users       *services.UserService
	broker      *auth.Broker
	tracker     *session.Tracker
	flash       *flash.Channel
	store       storage.ObjectStore
	geocoder    Geocoder
	log         *zap.SugaredLogger

	cookieName string
	sessionTTL time.Duration
	presignTTL time.Duration
}

type Deps struct {
	Campgrounds *services.CampgroundService
	Reviews     *services.ReviewService
	Users       *services.UserService
	Broker      *auth.Broker
	Tracker     *session.Tracker
	Flash       *flash.Channel
	Store       storage.ObjectStore
	Geocoder    Geocoder
	Log         *zap.SugaredLogger
	CookieName  string
	SessionTTL  time.Duration
	PresignTTL  time.Duration
}

func New(d Deps) *Handler {
	return &Handler{
		campgrounds: d.Campgrounds,
		reviews:     d.Reviews,
		users:       d.Users,
		broker:      d.Broker,
		tracker:     d.Tracker,
		flash:       d.Flash,
		store:       d.Store,
		geocoder:    d.Geocoder,
		log:         d.Log,
		cookieName:  d.CookieName,
		sessionTTL:  d.SessionTTL,
		presignTTL:  d.PresignTTL,
	}
}

func (h *Handler) Register(app *fiber.App, loginLimiter fiber.Handler) {
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.SendString("ok") })

	app.Get("/register", h.RegisterPage)
	app.Post("/register", h.RegisterUser)
	app.Get("/login", h.LoginPage)
	if loginLimiter != nil {
		app.Post("/login", loginLimiter, h.Login)
	} else {
		app.Post("/login", h.Login)
	}
	app.Post("/logout", h.Logout)

	app.Get("/campgrounds", h.ListCampgrounds)
	app.Post("/campgrounds", h.RequireLogin, h.CreateCampground)
	app.Get("/campgrounds/:id", h.ShowCampground)
	app.Get("/campgrounds/:id/edit", h.RequireLogin, h.EditCampground)
	app.Put("/campgrounds/:id", h.RequireLogin, h.UpdateCampground)
	app.Delete("/campgrounds/:id", h.RequireLogin, h.DeleteCampground)

	app.Post("/campgrounds/:id/reviews", h.RequireLogin, h.CreateReview)
	app.Delete("/campgrounds/:id/reviews/:reviewID", h.RequireLogin, h.DeleteReview)
}

// sid returns the request's session id, minting a cookie when absent.
func (h *Handler) sid(c *fiber.Ctx) string {
	if sid := c.Cookies(h.cookieName); sid != "" {
		return sid
	}
	sid := uuid.NewString()
	c.Cookie(&fiber.Cookie{
		Name:     h.cookieName,
		Value:    sid,
		HTTPOnly: true,
		SameSite: "Lax",
		Expires:  time.Now().Add(h.sessionTTL),
	})
	return sid
}

func (h *Handler) principal(c *fiber.Ctx) (primitive.ObjectID, bool) {
	bearer := c.Get("Authorization")
	bearer = strings.TrimPrefix(bearer, "Bearer ")
	return h.broker.CurrentPrincipal(c.Context(), c.Cookies(h.cookieName), bearer)
}

func parseID(c *fiber.Ctx, param string) (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(c.Params(param))
}
