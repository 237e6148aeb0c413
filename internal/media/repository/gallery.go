package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	mediaerrors "hms/internal/media/errors"
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
	CollectionName = "Gallery"

	maxGalleryItems = 500
)

type GalleryRepository interface {
	Create(ctx context.Context, item *model.GalleryItem) error
	FindByID(ctx context.Context, id string) (*model.GalleryItem, error)
	Find(ctx context.Context, category string) ([]*model.GalleryItem, error)
	Delete(ctx context.Context, id string) error
}

type mongoGalleryRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoGalleryRepository(cfg *config.Config) GalleryRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoGalleryRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoGalleryRepository) Create(ctx context.Context, item *model.GalleryItem) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	item.ID = uuid.NewString()
	item.CreatedAt = dates.Timestamp(time.Now())

	if _, err := r.collection.InsertOne(ctx, item); err != nil {
		return fmt.Errorf("failed to insert gallery item: %w", err)
	}
	return nil
}

func (r *mongoGalleryRepository) FindByID(ctx context.Context, id string) (*model.GalleryItem, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var item model.GalleryItem
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&item); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", mediaerrors.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to find gallery item: %w", err)
	}
	return &item, nil
}

// Find lists the gallery newest first, optionally narrowed to one category.
func (r *mongoGalleryRepository) Find(ctx context.Context, category string) ([]*model.GalleryItem, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{}
	if category != "" {
		filter["category"] = category
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(maxGalleryItems)

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query gallery: %w", err)
	}
	defer cursor.Close(ctx)

	items := []*model.GalleryItem{}
	if err = cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("failed to decode gallery: %w", err)
	}
	return items, nil
}

func (r *mongoGalleryRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete gallery item: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("%w: %s", mediaerrors.ErrNotFound, id)
	}
	return nil
}
