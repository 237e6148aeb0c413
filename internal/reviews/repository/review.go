package repository

import (
	"context"
	"fmt"
	"time"

	reviewserrors "hms/internal/reviews/errors"
	"hms/pkg/config"
	"hms/pkg/dates"
	mongotx "hms/pkg/db/mongo"
	"hms/pkg/model"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "Reviews"

	maxVisible = 50
	maxAdmin   = 100
)

type ReviewRepository interface {
	Create(ctx context.Context, review *model.Review) error
	FindVisible(ctx context.Context) ([]*model.Review, error)
	FindAll(ctx context.Context) ([]*model.Review, error)
	SetVisibility(ctx context.Context, id string, visible bool) error
	Delete(ctx context.Context, id string) error
	CountPending(ctx context.Context) (int64, error)
}

type mongoReviewRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoReviewRepository(cfg *config.Config) ReviewRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoReviewRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoReviewRepository) Create(ctx context.Context, review *model.Review) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	review.ID = uuid.NewString()
	review.CreatedAt = dates.Timestamp(time.Now())

	if _, err := r.collection.InsertOne(ctx, review); err != nil {
		return fmt.Errorf("failed to insert review: %w", err)
	}
	return nil
}

func (r *mongoReviewRepository) FindVisible(ctx context.Context) ([]*model.Review, error) {
	return r.find(ctx, bson.M{"is_visible": true}, maxVisible)
}

func (r *mongoReviewRepository) FindAll(ctx context.Context) ([]*model.Review, error) {
	return r.find(ctx, bson.M{}, maxAdmin)
}

func (r *mongoReviewRepository) find(ctx context.Context, filter bson.M, limit int64) ([]*model.Review, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}
	defer cursor.Close(ctx)

	reviews := []*model.Review{}
	if err = cursor.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("failed to decode reviews: %w", err)
	}
	return reviews, nil
}

func (r *mongoReviewRepository) SetVisibility(ctx context.Context, id string, visible bool) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"is_visible": visible}})
	if err != nil {
		return fmt.Errorf("failed to update review visibility: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: %s", reviewserrors.ErrNotFound, id)
	}
	return nil
}

func (r *mongoReviewRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("%w: %s", reviewserrors.ErrNotFound, id)
	}
	return nil
}

// CountPending counts reviews still waiting for approval.
func (r *mongoReviewRepository) CountPending(ctx context.Context) (int64, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{"is_visible": false})
	if err != nil {
		return 0, fmt.Errorf("failed to count pending reviews: %w", err)
	}
	return count, nil
}
