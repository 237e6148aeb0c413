package repository

import (
	"context"
	"errors"
	"fmt"

	autherrors "hms/internal/auth/errors"
	"hms/pkg/config"
	mongotx "hms/pkg/db/mongo"
	"hms/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// PasswordResetsCollection carries a TTL index on expires_at, so expired
// tokens also disappear on their own.
const PasswordResetsCollection = "Password_resets"

type PasswordResetRepository interface {
	Create(ctx context.Context, reset *model.PasswordReset) error
	Find(ctx context.Context, token string) (*model.PasswordReset, error)
	Delete(ctx context.Context, token string) error
}

type mongoPasswordResetRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoPasswordResetRepository(cfg *config.Config) PasswordResetRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoPasswordResetRepository{
		cfg:        cfg,
		collection: db.Collection(PasswordResetsCollection),
	}
}

func (r *mongoPasswordResetRepository) Create(ctx context.Context, reset *model.PasswordReset) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if _, err := r.collection.InsertOne(ctx, reset); err != nil {
		return fmt.Errorf("failed to insert password reset: %w", err)
	}
	return nil
}

func (r *mongoPasswordResetRepository) Find(ctx context.Context, token string) (*model.PasswordReset, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var reset model.PasswordReset
	if err := r.collection.FindOne(ctx, bson.M{"_id": token}).Decode(&reset); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, autherrors.ErrResetNotFound
		}
		return nil, fmt.Errorf("failed to find password reset: %w", err)
	}
	return &reset, nil
}

func (r *mongoPasswordResetRepository) Delete(ctx context.Context, token string) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if _, err := r.collection.DeleteOne(ctx, bson.M{"_id": token}); err != nil {
		return fmt.Errorf("failed to delete password reset: %w", err)
	}
	return nil
}
