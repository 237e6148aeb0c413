package repository

import (
	"context"
	"fmt"
	"time"

	"hms/pkg/config"
	mongotx "hms/pkg/db/mongo"
	"hms/pkg/model"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "Audit_logs"
)

type AuditLogRepository interface {
	Insert(ctx context.Context, entry *model.AuditLog) error
	Find(ctx context.Context, resource string, limit int) ([]*model.AuditLog, error)
}

type mongoAuditLogRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoAuditLogRepository(cfg *config.Config) AuditLogRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoAuditLogRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoAuditLogRepository) Insert(ctx context.Context, entry *model.AuditLog) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt == "" {
		entry.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}

	if _, err := r.collection.InsertOne(ctx, entry); err != nil {
		return fmt.Errorf("failed to insert audit log: %w", err)
	}
	return nil
}

func (r *mongoAuditLogRepository) Find(ctx context.Context, resource string, limit int) ([]*model.AuditLog, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{}
	if resource != "" {
		filter["resource"] = resource
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit logs: %w", err)
	}
	defer cursor.Close(ctx)

	logs := []*model.AuditLog{}
	if err = cursor.All(ctx, &logs); err != nil {
		return nil, fmt.Errorf("failed to decode audit logs: %w", err)
	}
	return logs, nil
}
