package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"campsite-service/internal/flash"
	"campsite-service/internal/repository"
	"campsite-service/internal/services"
)

func (h *Handler) CreateReview(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return h.redirectWith(c, flash.KindError, "Campground not found", "/campgrounds")
	}

	form, problems := parseReviewForm(c)
	if len(problems) > 0 {
		return h.flashProblems(c, problems, "/campgrounds/"+id.Hex())
	}

	if _, err := h.reviews.Create(c.Context(), id, currentPrincipal(c), form.Rating, form.Body); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return h.redirectWith(c, flash.KindError, "Campground not found", "/campgrounds")
		}
		return jsonError(c, fiber.StatusInternalServerError, "could not create review")
	}
	return h.redirectWith(c, flash.KindSuccess, "Created new review!", "/campgrounds/"+id.Hex())
}

func (h *Handler) DeleteReview(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return h.redirectWith(c, flash.KindError, "Campground not found", "/campgrounds")
	}
	reviewID, err := parseID(c, "reviewID")
	if err != nil {
		return h.redirectWith(c, flash.KindError, "Review not found", "/campgrounds/"+id.Hex())
	}

	// Ownership is checked against the review's own author. Owning the
	// campground grants no say over someone else's review.
	verdict, _, err := h.reviews.Authorize(c.Context(), currentPrincipal(c), reviewID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "could not load review")
	}
	switch verdict {
	case services.VerdictNotFound:
		return h.redirectWith(c, flash.KindError, "Review not found", "/campgrounds/"+id.Hex())
	case services.VerdictForbidden:
		return h.redirectWith(c, flash.KindError, "You do not have permission to do that", "/campgrounds/"+id.Hex())
	}

	if err := h.reviews.Delete(c.Context(), id, reviewID); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "could not delete review")
	}
	return h.redirectWith(c, flash.KindSuccess, "Successfully deleted review", "/campgrounds/"+id.Hex())
}
