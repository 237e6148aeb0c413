package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	rateplanserrors "hms/internal/rateplans/errors"
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
	CollectionName = "Rate_plans"

	maxPlans = 100
)

type RatePlanRepository interface {
	Create(ctx context.Context, plan *model.RatePlan) error
	FindByID(ctx context.Context, id string) (*model.RatePlan, error)
	// FindCatalog returns active plans in catalog order. A non-empty
	// roomTypeID limits the result to global plans and plans scoped to it.
	FindCatalog(ctx context.Context, roomTypeID string) ([]*model.RatePlan, error)
	FindAll(ctx context.Context) ([]*model.RatePlan, error)
	Update(ctx context.Context, id string, plan *model.RatePlan) error
	Delete(ctx context.Context, id string) error
}

type mongoRatePlanRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoRatePlanRepository(cfg *config.Config) RatePlanRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoRatePlanRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoRatePlanRepository) Create(ctx context.Context, plan *model.RatePlan) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	plan.ID = uuid.NewString()
	plan.CreatedAt = dates.Timestamp(time.Now())
	if plan.Conditions == nil {
		plan.Conditions = []string{}
	}

	if _, err := r.collection.InsertOne(ctx, plan); err != nil {
		return fmt.Errorf("failed to create rate plan: %w", err)
	}
	return nil
}

func (r *mongoRatePlanRepository) FindByID(ctx context.Context, id string) (*model.RatePlan, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var plan model.RatePlan
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&plan); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", rateplanserrors.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to find rate plan: %w", err)
	}
	return &plan, nil
}

func (r *mongoRatePlanRepository) FindCatalog(ctx context.Context, roomTypeID string) ([]*model.RatePlan, error) {
	filter := bson.M{"is_active": true}
	if roomTypeID != "" {
		filter["$or"] = bson.A{
			bson.M{"room_type_id": nil},
			bson.M{"room_type_id": ""},
			bson.M{"room_type_id": roomTypeID},
		}
	}
	return r.find(ctx, filter, 1)
}

func (r *mongoRatePlanRepository) FindAll(ctx context.Context) ([]*model.RatePlan, error) {
	return r.find(ctx, bson.M{}, -1)
}

func (r *mongoRatePlanRepository) find(ctx context.Context, filter bson.M, order int) ([]*model.RatePlan, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: order}}).
		SetLimit(maxPlans)

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query rate plans: %w", err)
	}
	defer cursor.Close(ctx)

	plans := []*model.RatePlan{}
	if err = cursor.All(ctx, &plans); err != nil {
		return nil, fmt.Errorf("failed to decode rate plans: %w", err)
	}
	return plans, nil
}

func (r *mongoRatePlanRepository) Update(ctx context.Context, id string, plan *model.RatePlan) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	plan.UpdatedAt = dates.Timestamp(time.Now())
	update := bson.M{
		"$set": bson.M{
			"room_type_id":        plan.RoomTypeID,
			"name":                plan.Name,
			"description":         plan.Description,
			"price_modifier_type": plan.ModifierType,
			"price_modifier_val":  plan.ModifierValue,
			"is_active":           plan.IsActive,
			"conditions":          plan.Conditions,
			"updated_at":          plan.UpdatedAt,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update rate plan: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: %s", rateplanserrors.ErrNotFound, id)
	}
	return nil
}

func (r *mongoRatePlanRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete rate plan: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("%w: %s", rateplanserrors.ErrNotFound, id)
	}
	return nil
}
