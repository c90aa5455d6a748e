package services

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"campsite-service/internal/models"
	"campsite-service/internal/repository"
)

// -------- test fakes --------

// fakeCampgroundRepo mimics the store's atomic single-document semantics
// in memory and records the order of operations.
type fakeCampgroundRepo struct {
	mu   sync.Mutex
	docs map[primitive.ObjectID]*models.Campground
	ops  []string

	getErr  error
	pushErr error
	pullErr error
}

func newFakeCampgroundRepo() *fakeCampgroundRepo {
	return &fakeCampgroundRepo{docs: map[primitive.ObjectID]*models.Campground{}}
}

func copyCampground(c *models.Campground) *models.Campground {
	out := *c
	out.Images = append([]models.Image(nil), c.Images...)
	out.Reviews = append([]primitive.ObjectID(nil), c.Reviews...)
	return &out
}

func (f *fakeCampgroundRepo) Insert(_ context.Context, c *models.Campground) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	c.CreatedAt = time.Now().UTC()
	f.docs[c.ID] = copyCampground(c)
	f.ops = append(f.ops, "insert")
	return nil
}

func (f *fakeCampgroundRepo) Get(_ context.Context, id primitive.ObjectID) (*models.Campground, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	c, ok := f.docs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return copyCampground(c), nil
}

func (f *fakeCampgroundRepo) List(_ context.Context) ([]models.Campground, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Campground
	for _, c := range f.docs {
		out = append(out, *copyCampground(c))
	}
	return out, nil
}

func (f *fakeCampgroundRepo) UpdateDetails(_ context.Context, id primitive.ObjectID, upd repository.CampgroundUpdate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.docs[id]
	if !ok {
		return repository.ErrNotFound
	}
	c.Title = upd.Title
	c.Price = upd.Price
	c.Description = upd.Description
	c.Location = upd.Location
	c.Geometry = upd.Geometry
	f.ops = append(f.ops, "update_details")
	return nil
}

func (f *fakeCampgroundRepo) PushImages(_ context.Context, id primitive.ObjectID, imgs []models.Image) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.pushErr != nil {
		return f.pushErr
	}
	c, ok := f.docs[id]
	if !ok {
		return repository.ErrNotFound
	}
	c.Images = append(c.Images, imgs...)
	f.ops = append(f.ops, "push_images")
	return nil
}

func (f *fakeCampgroundRepo) PullImages(_ context.Context, id primitive.ObjectID, keys []string) (*models.Campground, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.pullErr != nil {
		return nil, f.pullErr
	}
	c, ok := f.docs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	remove := map[string]bool{}
	for _, k := range keys {
		remove[k] = true
	}
	kept := c.Images[:0]
	for _, img := range c.Images {
		if !remove[img.Key] {
			kept = append(kept, img)
		}
	}
	c.Images = kept
	f.ops = append(f.ops, "pull_images")
	return copyCampground(c), nil
}

func (f *fakeCampgroundRepo) PushReview(_ context.Context, id, reviewID primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.docs[id]
	if !ok {
		return repository.ErrNotFound
	}
	c.Reviews = append(c.Reviews, reviewID)
	f.ops = append(f.ops, "push_review")
	return nil
}

func (f *fakeCampgroundRepo) PullReview(_ context.Context, id, reviewID primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.docs[id]
	if !ok {
		return repository.ErrNotFound
	}
	kept := c.Reviews[:0]
	for _, rid := range c.Reviews {
		if rid != reviewID {
			kept = append(kept, rid)
		}
	}
	c.Reviews = kept
	f.ops = append(f.ops, "pull_review")
	return nil
}

func (f *fakeCampgroundRepo) DeleteAndReturn(_ context.Context, id primitive.ObjectID) (*models.Campground, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.docs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	delete(f.docs, id)
	f.ops = append(f.ops, "delete_and_return")
	return c, nil
}

type fakeReviewRepo struct {
	mu   sync.Mutex
	docs map[primitive.ObjectID]*models.Review

	insertErr error
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{docs: map[primitive.ObjectID]*models.Review{}}
}

func (f *fakeReviewRepo) Insert(_ context.Context, rv *models.Review) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return f.insertErr
	}
	if rv.ID.IsZero() {
		rv.ID = primitive.NewObjectID()
	}
	cp := *rv
	f.docs[rv.ID] = &cp
	return nil
}

func (f *fakeReviewRepo) Get(_ context.Context, id primitive.ObjectID) (*models.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rv, ok := f.docs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *rv
	return &cp, nil
}

func (f *fakeReviewRepo) GetMany(_ context.Context, ids []primitive.ObjectID) ([]models.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Review
	for _, id := range ids {
		if rv, ok := f.docs[id]; ok {
			out = append(out, *rv)
		}
	}
	return out, nil
}

func (f *fakeReviewRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.docs[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.docs, id)
	return nil
}

func (f *fakeReviewRepo) DeleteMany(_ context.Context, ids []primitive.ObjectID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, id := range ids {
		if _, ok := f.docs[id]; ok {
			delete(f.docs, id)
			n++
		}
	}
	return n, nil
}

// fakeObjectStore records delete calls; deleting an absent key succeeds,
// matching the real store.
type fakeObjectStore struct {
	mu      sync.Mutex
	deleted []string

	deleteErr error
}

func (f *fakeObjectStore) Upload(_ context.Context, key, _ string, _ []byte) (string, error) {
	return "https://bucket.example.com/" + key, nil
}

func (f *fakeObjectStore) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, key)
	return nil
}

func (f *fakeObjectStore) PresignURL(_ context.Context, key string, _ time.Duration) (string, error) {
	return "https://bucket.example.com/" + key + "?signed", nil
}

func (f *fakeObjectStore) deletedKeys() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.deleted...)
}

func testLogger() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
