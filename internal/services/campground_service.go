package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"campsite-service/internal/metrics"
	"campsite-service/internal/models"
	"campsite-service/internal/repository"
	"campsite-service/internal/storage"
)

type CampgroundService struct {
	campgrounds repository.CampgroundRepository
	reviews     repository.ReviewRepository
	store       storage.ObjectStore
	log         *zap.SugaredLogger
}

func NewCampgroundService(campgrounds repository.CampgroundRepository, reviews repository.ReviewRepository, store storage.ObjectStore, log *zap.SugaredLogger) *CampgroundService {
	return &CampgroundService{campgrounds: campgrounds, reviews: reviews, store: store, log: log}
}

func (s *CampgroundService) List(ctx context.Context) ([]models.Campground, error) {
	return s.campgrounds.List(ctx)
}

func (s *CampgroundService) Get(ctx context.Context, id primitive.ObjectID) (*models.Campground, error) {
	return s.campgrounds.Get(ctx, id)
}

func (s *CampgroundService) Create(ctx context.Context, author primitive.ObjectID, upd repository.CampgroundUpdate, images []models.Image) (*models.Campground, error) {
	c := &models.Campground{
		Title:       upd.Title,
		Price:       upd.Price,
		Description: upd.Description,
		Location:    upd.Location,
		Geometry:    upd.Geometry,
		Images:      images,
		Author:      author,
	}
	if err := s.campgrounds.Insert(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CampgroundService) UpdateDetails(ctx context.Context, id primitive.ObjectID, upd repository.CampgroundUpdate) error {
	return s.campgrounds.UpdateDetails(ctx, id, upd)
}

// Authorize loads the campground and checks the requesting principal
// against its recorded author. ObjectIDs are compared by value; the ids
// come from different decodings of the same document and are never the
// same allocation.
func (s *CampgroundService) Authorize(ctx context.Context, principal, id primitive.ObjectID) (Verdict, *models.Campground, error) {
	c, err := s.campgrounds.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return VerdictNotFound, nil, nil
	}
	if err != nil {
		return VerdictNotFound, nil, err
	}
	if c.Author != principal {
		return VerdictForbidden, c, nil
	}
	return VerdictAllow, c, nil
}

// ReconcileImages applies an add/remove diff to the campground's image
// list and then cleans up the removed objects remotely.
//
// The append lands before the pull, and both local writes must be
// confirmed before any remote delete goes out: a failed local write after
// a remote delete would leave the document referencing objects that no
// longer exist, which is unrecoverable. The reverse failure mode is just
// an orphaned remote object.
func (s *CampgroundService) ReconcileImages(ctx context.Context, id primitive.ObjectID, added []models.Image, toRemove []string) (*models.Campground, error) {
	if len(added) == 0 && len(toRemove) == 0 {
		return s.campgrounds.Get(ctx, id)
	}

	if len(added) > 0 {
		if err := s.campgrounds.PushImages(ctx, id, added); err != nil {
			return nil, err
		}
		metrics.AssetsReconciled.WithLabelValues("added").Add(float64(len(added)))
	}

	if len(toRemove) == 0 {
		return s.campgrounds.Get(ctx, id)
	}

	// The delta against a pre-pull read is what actually got detached;
	// requested keys that were never attached do not count.
	before, err := s.campgrounds.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	doc, err := s.campgrounds.PullImages(ctx, id, toRemove)
	if err != nil {
		return nil, err
	}
	if removed := len(before.Images) - len(doc.Images); removed > 0 {
		metrics.AssetsReconciled.WithLabelValues("removed").Add(float64(removed))
	}

	s.cleanupRemote(ctx, toRemove)
	return doc, nil
}

// DeleteCascading removes the campground, its reviews, and its remote
// assets. Safe to call for an already-deleted id: the second caller sees
// nothing to do and reports success.
func (s *CampgroundService) DeleteCascading(ctx context.Context, id primitive.ObjectID) error {
	doc, err := s.campgrounds.DeleteAndReturn(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	metrics.CascadeDeletes.Inc()

	n, err := s.reviews.DeleteMany(ctx, doc.Reviews)
	if err != nil {
		return err
	}
	metrics.CascadeReviewsDeleted.Add(float64(n))

	keys := make([]string, 0, len(doc.Images))
	for _, img := range doc.Images {
		keys = append(keys, img.Key)
	}
	s.cleanupRemote(ctx, keys)
	return nil
}

// cleanupRemote issues best-effort deletes for removed asset keys. The
// local record is already the source of truth at this point, so failures
// are logged and counted, never propagated; the leftover object is an
// orphan for an out-of-band sweep.
func (s *CampgroundService) cleanupRemote(ctx context.Context, keys []string) {
	for _, key := range keys {
		if key == models.SentinelImageKey {
			continue
		}
		if err := s.store.Delete(ctx, key); err != nil {
			metrics.RemoteCleanupFailures.Inc()
			s.log.Errorf("remote cleanup failed, object %q orphaned: %v", key, err)
		}
	}
}
