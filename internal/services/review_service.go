package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"campsite-service/internal/models"
	"campsite-service/internal/repository"
)

type ReviewService struct {
	reviews     repository.ReviewRepository
	campgrounds repository.CampgroundRepository
	log         *zap.SugaredLogger
}

func NewReviewService(reviews repository.ReviewRepository, campgrounds repository.CampgroundRepository, log *zap.SugaredLogger) *ReviewService {
	return &ReviewService{reviews: reviews, campgrounds: campgrounds, log: log}
}

// Create inserts the review and then attaches its id to the campground.
// Insert comes first so a crash between the two steps leaves an
// unreferenced review rather than a reference to a review that was never
// written.
func (s *ReviewService) Create(ctx context.Context, campgroundID, author primitive.ObjectID, rating int, body string) (*models.Review, error) {
	rv := &models.Review{
		Body:   body,
		Rating: rating,
		Author: author,
	}
	if err := s.reviews.Insert(ctx, rv); err != nil {
		return nil, err
	}
	if err := s.campgrounds.PushReview(ctx, campgroundID, rv.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// campground vanished under us; drop the review again
			if derr := s.reviews.Delete(ctx, rv.ID); derr != nil && !errors.Is(derr, repository.ErrNotFound) {
				s.log.Errorf("failed to undo review %s after missing campground: %v", rv.ID.Hex(), derr)
			}
		}
		return nil, err
	}
	return rv, nil
}

// Delete detaches the review from the campground and then removes the
// review document. The pull goes first: a crash in between leaves a
// dangling reference that dereferences to "not found", which beats a
// deleted-first ordering that could briefly serve reused state. An absent
// review or campground counts as success so concurrent deletions both
// complete cleanly.
func (s *ReviewService) Delete(ctx context.Context, campgroundID, reviewID primitive.ObjectID) error {
	if err := s.campgrounds.PullReview(ctx, campgroundID, reviewID); err != nil && !errors.Is(err, repository.ErrNotFound) {
		return err
	}
	if err := s.reviews.Delete(ctx, reviewID); err != nil && !errors.Is(err, repository.ErrNotFound) {
		return err
	}
	return nil
}

// Authorize checks the principal against the review's own author. The
// campground's owner has no inherited rights here; review ownership is
// per-resource.
func (s *ReviewService) Authorize(ctx context.Context, principal, reviewID primitive.ObjectID) (Verdict, *models.Review, error) {
	rv, err := s.reviews.Get(ctx, reviewID)
	if errors.Is(err, repository.ErrNotFound) {
		return VerdictNotFound, nil, nil
	}
	if err != nil {
		return VerdictNotFound, nil, err
	}
	if rv.Author != principal {
		return VerdictForbidden, rv, nil
	}
	return VerdictAllow, rv, nil
}

// ListFor returns the reviews referenced by a campground.
func (s *ReviewService) ListFor(ctx context.Context, c *models.Campground) ([]models.Review, error) {
	return s.reviews.GetMany(ctx, c.Reviews)
}
