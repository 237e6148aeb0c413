package repository

import (
	"context"
	"fmt"
	"time"

	"hms/pkg/config"
	"hms/pkg/dates"
	mongotx "hms/pkg/db/mongo"
	"hms/pkg/model"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const CollectionName = "Email_logs"

type EmailLogRepository interface {
	Insert(ctx context.Context, entry *model.EmailLog) error
	FindRecent(ctx context.Context, limit int) ([]*model.EmailLog, error)
}

type mongoEmailLogRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoEmailLogRepository(cfg *config.Config) EmailLogRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoEmailLogRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoEmailLogRepository) Insert(ctx context.Context, entry *model.EmailLog) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	entry.CreatedAt = dates.Timestamp(time.Now())

	if _, err := r.collection.InsertOne(ctx, entry); err != nil {
		return fmt.Errorf("failed to insert email log: %w", err)
	}
	return nil
}

func (r *mongoEmailLogRepository) FindRecent(ctx context.Context, limit int) ([]*model.EmailLog, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query email logs: %w", err)
	}
	defer cursor.Close(ctx)

	logs := []*model.EmailLog{}
	if err = cursor.All(ctx, &logs); err != nil {
		return nil, fmt.Errorf("failed to decode email logs: %w", err)
	}
	return logs, nil
}
