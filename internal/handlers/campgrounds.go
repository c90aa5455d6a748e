package handlers

import (
	"context"
	"errors"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"campsite-service/internal/flash"
	"campsite-service/internal/models"
	"campsite-service/internal/repository"
	"campsite-service/internal/services"
)

type imageView struct {
	Key       string `json:"key"`
	URL       string `json:"url"`
	Thumbnail string `json:"thumbnail"`
}

// imageViews resolves delivery URLs for a campground's images. The stored
// URL is empty when the bucket is private; those images are served through
// short-lived presigned links instead.
func (h *Handler) imageViews(ctx context.Context, imgs []models.Image) []imageView {
	out := make([]imageView, 0, len(imgs))
	for _, img := range imgs {
		if img.URL == "" {
			signed, err := h.store.PresignURL(ctx, img.Key, h.presignTTL)
			if err != nil {
				h.log.Errorf("presigning %q failed: %v", img.Key, err)
			} else {
				img.URL = signed
			}
		}
		out = append(out, imageView{Key: img.Key, URL: img.URL, Thumbnail: img.Thumbnail()})
	}
	return out
}

func (h *Handler) ListCampgrounds(c *fiber.Ctx) error {
	list, err := h.campgrounds.List(c.Context())
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "could not load campgrounds")
	}
	return h.render(c, fiber.StatusOK, list)
}

func (h *Handler) ShowCampground(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return h.redirectWith(c, flash.KindError, "Campground not found", "/campgrounds")
	}
	camp, err := h.campgrounds.Get(c.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		return h.redirectWith(c, flash.KindError, "Campground not found", "/campgrounds")
	}
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "could not load campground")
	}
	reviews, err := h.reviews.ListFor(c.Context(), camp)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "could not load reviews")
	}
	return h.render(c, fiber.StatusOK, fiber.Map{
		"campground": camp,
		"images":     h.imageViews(c.Context(), camp.Images),
		"reviews":    reviews,
	})
}

func (h *Handler) CreateCampground(c *fiber.Ctx) error {
	form, problems := parseCampgroundForm(c)
	if len(problems) > 0 {
		return h.flashProblems(c, problems, "/campgrounds")
	}

	geometry, err := h.geocoder.Forward(c.Context(), form.Location)
	if err != nil {
		h.log.Errorf("geocoding %q failed: %v", form.Location, err)
		return h.redirectWith(c, flash.KindError, "Could not locate that address", "/campgrounds")
	}

	imgs, err := h.uploadImages(c.Context(), formFiles(c))
	if err != nil {
		return h.redirectWith(c, flash.KindError, err.Error(), "/campgrounds")
	}

	camp, err := h.campgrounds.Create(c.Context(), currentPrincipal(c), repository.CampgroundUpdate{
		Title:       form.Title,
		Price:       form.Price,
		Description: form.Description,
		Location:    form.Location,
		Geometry:    geometry,
	}, imgs)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "could not create campground")
	}
	return h.redirectWith(c, flash.KindSuccess, "Successfully made a new campground!", "/campgrounds/"+camp.ID.Hex())
}

func (h *Handler) EditCampground(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return h.redirectWith(c, flash.KindError, "Campground not found", "/campgrounds")
	}
	verdict, camp, err := h.campgrounds.Authorize(c.Context(), currentPrincipal(c), id)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "could not load campground")
	}
	if redirect := h.enforce(c, verdict, id); redirect != nil {
		return redirect()
	}
	return h.render(c, fiber.StatusOK, fiber.Map{
		"campground": camp,
		"images":     h.imageViews(c.Context(), camp.Images),
	})
}

func (h *Handler) UpdateCampground(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return h.redirectWith(c, flash.KindError, "Campground not found", "/campgrounds")
	}
	verdict, _, err := h.campgrounds.Authorize(c.Context(), currentPrincipal(c), id)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "could not load campground")
	}
	if redirect := h.enforce(c, verdict, id); redirect != nil {
		return redirect()
	}

	form, problems := parseCampgroundForm(c)
	if len(problems) > 0 {
		return h.flashProblems(c, problems, "/campgrounds/"+id.Hex()+"/edit")
	}

	geometry, err := h.geocoder.Forward(c.Context(), form.Location)
	if err != nil {
		h.log.Errorf("geocoding %q failed: %v", form.Location, err)
		return h.redirectWith(c, flash.KindError, "Could not locate that address", "/campgrounds/"+id.Hex()+"/edit")
	}

	if err := h.campgrounds.UpdateDetails(c.Context(), id, repository.CampgroundUpdate{
		Title:       form.Title,
		Price:       form.Price,
		Description: form.Description,
		Location:    form.Location,
		Geometry:    geometry,
	}); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "could not update campground")
	}

	added, err := h.uploadImages(c.Context(), formFiles(c))
	if err != nil {
		return h.redirectWith(c, flash.KindError, err.Error(), "/campgrounds/"+id.Hex()+"/edit")
	}
	toRemove := formValues(c, "delete_images")

	if _, err := h.campgrounds.ReconcileImages(c.Context(), id, added, toRemove); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "could not update campground images")
	}
	return h.redirectWith(c, flash.KindSuccess, "Successfully updated campground!", "/campgrounds/"+id.Hex())
}

func (h *Handler) DeleteCampground(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return h.redirectWith(c, flash.KindError, "Campground not found", "/campgrounds")
	}
	verdict, _, err := h.campgrounds.Authorize(c.Context(), currentPrincipal(c), id)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "could not load campground")
	}
	if redirect := h.enforce(c, verdict, id); redirect != nil {
		return redirect()
	}
	if err := h.campgrounds.DeleteCascading(c.Context(), id); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "could not delete campground")
	}
	return h.redirectWith(c, flash.KindSuccess, "Successfully deleted campground", "/campgrounds")
}

// enforce maps an ownership verdict to its redirect. Not-found heads back
// to the listing; forbidden heads to the resource's own page, since the
// requester is signed in, just not the owner.
func (h *Handler) enforce(c *fiber.Ctx, verdict services.Verdict, id primitive.ObjectID) func() error {
	switch verdict {
	case services.VerdictNotFound:
		return func() error {
			return h.redirectWith(c, flash.KindError, "Campground not found", "/campgrounds")
		}
	case services.VerdictForbidden:
		return func() error {
			return h.redirectWith(c, flash.KindError, "You do not have permission to do that", "/campgrounds/"+id.Hex())
		}
	}
	return nil
}

func (h *Handler) flashProblems(c *fiber.Ctx, problems []string, path string) error {
	sid := h.sid(c)
	for _, p := range problems {
		if err := h.flash.Push(c.Context(), sid, flash.KindError, p); err != nil {
			h.log.Errorf("flash push failed: %v", err)
		}
	}
	return c.Redirect(path, fiber.StatusSeeOther)
}

func formFiles(c *fiber.Ctx) []*multipart.FileHeader {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil
	}
	return form.File["images"]
}

func formValues(c *fiber.Ctx, key string) []string {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil
	}
	return form.Value[key]
}
