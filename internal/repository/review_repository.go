package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"campsite-service/internal/models"
)

type ReviewRepository interface {
	Insert(ctx context.Context, rv *models.Review) error
	Get(ctx context.Context, id primitive.ObjectID) (*models.Review, error)
	GetMany(ctx context.Context, ids []primitive.ObjectID) ([]models.Review, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteMany(ctx context.Context, ids []primitive.ObjectID) (int64, error)
}

type mongoReviewRepo struct {
	col *mongo.Collection
}

func NewMongoReviewRepo(col *mongo.Collection) ReviewRepository {
	return &mongoReviewRepo{col: col}
}

func (r *mongoReviewRepo) Insert(ctx context.Context, rv *models.Review) error {
	rv.CreatedAt = time.Now().UTC()
	if rv.ID.IsZero() {
		rv.ID = primitive.NewObjectID()
	}
	_, err := r.col.InsertOne(ctx, rv)
	return err
}

func (r *mongoReviewRepo) Get(ctx context.Context, id primitive.ObjectID) (*models.Review, error) {
	var rv models.Review
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&rv)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rv, nil
}

func (r *mongoReviewRepo) GetMany(ctx context.Context, ids []primitive.ObjectID) ([]models.Review, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	cur, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Review
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *mongoReviewRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteMany removes the whole id set in one call. The cascade depends on
// this being a single bulk operation rather than per-id round trips.
func (r *mongoReviewRepo) DeleteMany(ctx context.Context, ids []primitive.ObjectID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res, err := r.col.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
