package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	contenterrors "hms/internal/content/errors"
	"hms/pkg/config"
	"hms/pkg/dates"
	mongotx "hms/pkg/db/mongo"
	"hms/pkg/model"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const CollectionName = "Site_content"

type ContentRepository interface {
	FindAll(ctx context.Context) ([]*model.SiteContent, error)
	FindByPage(ctx context.Context, page string) ([]*model.SiteContent, error)
	FindSection(ctx context.Context, section, contentType string) (*model.SiteContent, error)
	Upsert(ctx context.Context, content *model.SiteContent) error
	Update(ctx context.Context, id string, fields bson.M) error
	DeleteSection(ctx context.Context, page, section string) error
}

type mongoContentRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoContentRepository(cfg *config.Config) ContentRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoContentRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoContentRepository) FindAll(ctx context.Context) ([]*model.SiteContent, error) {
	return r.find(ctx, bson.M{})
}

func (r *mongoContentRepository) FindByPage(ctx context.Context, page string) ([]*model.SiteContent, error) {
	return r.find(ctx, bson.M{"page": page})
}

func (r *mongoContentRepository) find(ctx context.Context, filter bson.M) ([]*model.SiteContent, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "page", Value: 1}, {Key: "section", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query site content: %w", err)
	}
	defer cursor.Close(ctx)

	items := []*model.SiteContent{}
	if err = cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("failed to decode site content: %w", err)
	}
	return items, nil
}

func (r *mongoContentRepository) FindSection(ctx context.Context, section, contentType string) (*model.SiteContent, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var item model.SiteContent
	err := r.collection.FindOne(ctx, bson.M{"section": section, "content_type": contentType}).Decode(&item)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s/%s", contenterrors.ErrNotFound, section, contentType)
		}
		return nil, fmt.Errorf("failed to find site content: %w", err)
	}
	return &item, nil
}

// Upsert replaces the section identified by (page, section), keeping its id
// when one already exists.
func (r *mongoContentRepository) Upsert(ctx context.Context, content *model.SiteContent) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	content.UpdatedAt = dates.Timestamp(time.Now())

	filter := bson.M{"page": content.Page, "section": content.Section}
	update := bson.M{
		"$set": bson.M{
			"content_type": content.ContentType,
			"content":      content.Content,
			"updated_at":   content.UpdatedAt,
		},
		"$setOnInsert": bson.M{"_id": uuid.NewString()},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var stored model.SiteContent
	if err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&stored); err != nil {
		return fmt.Errorf("failed to upsert site content: %w", err)
	}
	content.ID = stored.ID
	return nil
}

func (r *mongoContentRepository) Update(ctx context.Context, id string, fields bson.M) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	fields["updated_at"] = dates.Timestamp(time.Now())
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("failed to update site content: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: %s", contenterrors.ErrNotFound, id)
	}
	return nil
}

func (r *mongoContentRepository) DeleteSection(ctx context.Context, page, section string) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	result, err := r.collection.DeleteOne(ctx, bson.M{"page": page, "section": section})
	if err != nil {
		return fmt.Errorf("failed to delete site content: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("%w: %s/%s", contenterrors.ErrNotFound, page, section)
	}
	return nil
}
