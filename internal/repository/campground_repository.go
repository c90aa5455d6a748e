package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"campsite-service/internal/models"
)

// CampgroundUpdate carries the plain scalar fields of an edit. Image and
// review membership changes go through the atomic array operations below,
// never through a whole-document rewrite.
type CampgroundUpdate struct {
	Title       string
	Price       float64
	Description string
	Location    string
	Geometry    models.Geometry
}

type CampgroundRepository interface {
	Insert(ctx context.Context, c *models.Campground) error
	Get(ctx context.Context, id primitive.ObjectID) (*models.Campground, error)
	List(ctx context.Context) ([]models.Campground, error)
	UpdateDetails(ctx context.Context, id primitive.ObjectID, upd CampgroundUpdate) error
	PushImages(ctx context.Context, id primitive.ObjectID, imgs []models.Image) error
	PullImages(ctx context.Context, id primitive.ObjectID, keys []string) (*models.Campground, error)
	PushReview(ctx context.Context, id, reviewID primitive.ObjectID) error
	PullReview(ctx context.Context, id, reviewID primitive.ObjectID) error
	DeleteAndReturn(ctx context.Context, id primitive.ObjectID) (*models.Campground, error)
}

type mongoCampgroundRepo struct {
	col *mongo.Collection
}

func NewMongoCampgroundRepo(col *mongo.Collection) CampgroundRepository {
	_, _ = col.Indexes().CreateOne(context.Background(), mongo.IndexModel{
		Keys: bson.D{{Key: "author", Value: 1}},
	})
	return &mongoCampgroundRepo{col: col}
}

func (r *mongoCampgroundRepo) Insert(ctx context.Context, c *models.Campground) error {
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	if c.Images == nil {
		c.Images = []models.Image{}
	}
	if c.Reviews == nil {
		c.Reviews = []primitive.ObjectID{}
	}
	_, err := r.col.InsertOne(ctx, c)
	return err
}

func (r *mongoCampgroundRepo) Get(ctx context.Context, id primitive.ObjectID) (*models.Campground, error) {
	var c models.Campground
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *mongoCampgroundRepo) List(ctx context.Context) ([]models.Campground, error) {
	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Campground
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *mongoCampgroundRepo) UpdateDetails(ctx context.Context, id primitive.ObjectID, upd CampgroundUpdate) error {
	res, err := r.col.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"title":       upd.Title,
		"price":       upd.Price,
		"description": upd.Description,
		"location":    upd.Location,
		"geometry":    upd.Geometry,
		"updated_at":  time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoCampgroundRepo) PushImages(ctx context.Context, id primitive.ObjectID, imgs []models.Image) error {
	res, err := r.col.UpdateByID(ctx, id, bson.M{
		"$push": bson.M{"images": bson.M{"$each": imgs}},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// PullImages removes every image whose key is in keys and returns the
// document as it stands after the pull.
func (r *mongoCampgroundRepo) PullImages(ctx context.Context, id primitive.ObjectID, keys []string) (*models.Campground, error) {
	var c models.Campground
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{
			"$pull": bson.M{"images": bson.M{"key": bson.M{"$in": keys}}},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *mongoCampgroundRepo) PushReview(ctx context.Context, id, reviewID primitive.ObjectID) error {
	res, err := r.col.UpdateByID(ctx, id, bson.M{"$push": bson.M{"reviews": reviewID}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// PullReview detaches a review reference with an atomic array pull. A
// read-modify-write of the whole document would lose concurrent pulls.
func (r *mongoCampgroundRepo) PullReview(ctx context.Context, id, reviewID primitive.ObjectID) error {
	res, err := r.col.UpdateByID(ctx, id, bson.M{"$pull": bson.M{"reviews": reviewID}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteAndReturn deletes the campground and hands back the deleted state.
// The cascade works off this returned document, not a pre-fetched copy that
// could be stale by the time the delete lands.
func (r *mongoCampgroundRepo) DeleteAndReturn(ctx context.Context, id primitive.ObjectID) (*models.Campground, error) {
	var c models.Campground
	err := r.col.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}
