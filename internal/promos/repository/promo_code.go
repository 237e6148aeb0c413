package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	promoerrors "hms/internal/promos/errors"
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
	CollectionName = "Promo_codes"

	maxPromoCodes = 100
)

type PromoCodeRepository interface {
	Create(ctx context.Context, promo *model.PromoCode) error
	FindByID(ctx context.Context, id string) (*model.PromoCode, error)
	FindActiveByCode(ctx context.Context, code string) (*model.PromoCode, error)
	FindAll(ctx context.Context) ([]*model.PromoCode, error)
	Update(ctx context.Context, id string, promo *model.PromoCode) error
	Delete(ctx context.Context, id string) error
	// Redeem takes one use of an active promo if it is still under its cap.
	Redeem(ctx context.Context, id string) error
	// Release gives back a use taken by Redeem.
	Release(ctx context.Context, id string) error
}

type mongoPromoCodeRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoPromoCodeRepository(cfg *config.Config) PromoCodeRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoPromoCodeRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoPromoCodeRepository) Create(ctx context.Context, promo *model.PromoCode) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	promo.ID = uuid.NewString()
	promo.CreatedAt = dates.Timestamp(time.Now())
	if promo.RoomTypeIDs == nil {
		promo.RoomTypeIDs = []string{}
	}
	if promo.ValidDays == nil {
		promo.ValidDays = []int{}
	}

	if _, err := r.collection.InsertOne(ctx, promo); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: %s", promoerrors.ErrDuplicateCode, promo.Code)
		}
		return fmt.Errorf("failed to create promo code: %w", err)
	}
	return nil
}

func (r *mongoPromoCodeRepository) FindByID(ctx context.Context, id string) (*model.PromoCode, error) {
	return r.findOne(ctx, bson.M{"_id": id}, id)
}

func (r *mongoPromoCodeRepository) FindActiveByCode(ctx context.Context, code string) (*model.PromoCode, error) {
	return r.findOne(ctx, bson.M{"code": code, "is_active": true}, code)
}

func (r *mongoPromoCodeRepository) findOne(ctx context.Context, filter bson.M, key string) (*model.PromoCode, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var promo model.PromoCode
	if err := r.collection.FindOne(ctx, filter).Decode(&promo); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", promoerrors.ErrNotFound, key)
		}
		return nil, fmt.Errorf("failed to find promo code: %w", err)
	}
	return &promo, nil
}

func (r *mongoPromoCodeRepository) FindAll(ctx context.Context) ([]*model.PromoCode, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(maxPromoCodes)

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query promo codes: %w", err)
	}
	defer cursor.Close(ctx)

	promos := []*model.PromoCode{}
	if err = cursor.All(ctx, &promos); err != nil {
		return nil, fmt.Errorf("failed to decode promo codes: %w", err)
	}
	return promos, nil
}

func (r *mongoPromoCodeRepository) Update(ctx context.Context, id string, promo *model.PromoCode) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	promo.UpdatedAt = dates.Timestamp(time.Now())
	update := bson.M{
		"$set": bson.M{
			"code":           promo.Code,
			"description":    promo.Description,
			"discount_type":  promo.DiscountType,
			"discount_value": promo.DiscountValue,
			"max_usage":      promo.MaxUsage,
			"room_type_ids":  promo.RoomTypeIDs,
			"valid_days":     promo.ValidDays,
			"valid_from":     promo.ValidFrom,
			"valid_until":    promo.ValidUntil,
			"is_active":      promo.IsActive,
			"updated_at":     promo.UpdatedAt,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: %s", promoerrors.ErrDuplicateCode, promo.Code)
		}
		return fmt.Errorf("failed to update promo code: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: %s", promoerrors.ErrNotFound, id)
	}
	return nil
}

func (r *mongoPromoCodeRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete promo code: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("%w: %s", promoerrors.ErrNotFound, id)
	}
	return nil
}

func (r *mongoPromoCodeRepository) Redeem(ctx context.Context, id string) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	filter := bson.M{
		"_id":       id,
		"is_active": true,
		"$expr":     bson.M{"$lt": bson.A{"$current_usage", "$max_usage"}},
	}
	update := bson.M{"$inc": bson.M{"current_usage": 1}}

	err := r.collection.FindOneAndUpdate(ctx, filter, update).Err()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return fmt.Errorf("%w: %s", promoerrors.ErrCapacityReached, id)
		}
		return fmt.Errorf("failed to redeem promo code: %w", err)
	}
	return nil
}

func (r *mongoPromoCodeRepository) Release(ctx context.Context, id string) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	filter := bson.M{"_id": id, "current_usage": bson.M{"$gt": 0}}
	if _, err := r.collection.UpdateOne(ctx, filter, bson.M{"$inc": bson.M{"current_usage": -1}}); err != nil {
		return fmt.Errorf("failed to release promo code: %w", err)
	}
	return nil
}
