package repository

import (
	"context"
	"fmt"

	reservationsrepo "hms/internal/reservations/repository"
	"hms/pkg/config"
	mongotx "hms/pkg/db/mongo"
	"hms/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MonthlyRevenue is the revenue of reservations checking in during Month
// (YYYY-MM).
type MonthlyRevenue struct {
	Month   string  `bson:"_id"`
	Revenue float64 `bson:"revenue"`
}

type StatsRepository interface {
	CountOccupied(ctx context.Context, day string) (int64, error)
	RevenueSince(ctx context.Context, createdFrom string) (float64, error)
	Recent(ctx context.Context, limit int64) ([]*model.Reservation, error)
	RevenueByMonth(ctx context.Context, fromMonth string) ([]MonthlyRevenue, error)
}

type mongoStatsRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoStatsRepository(cfg *config.Config) StatsRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoStatsRepository{
		cfg:        cfg,
		collection: db.Collection(reservationsrepo.CollectionName),
	}
}

// CountOccupied counts stays covering the night of day.
func (r *mongoStatsRepository) CountOccupied(ctx context.Context, day string) (int64, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{
		"check_in":  bson.M{"$lte": day},
		"check_out": bson.M{"$gt": day},
		"status":    bson.M{"$in": []string{model.StatusConfirmed, model.StatusCheckedIn}},
	}
	count, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count occupied rooms: %w", err)
	}
	return count, nil
}

func (r *mongoStatsRepository) RevenueSince(ctx context.Context, createdFrom string) (float64, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"created_at": bson.M{"$gte": createdFrom},
			"status":     bson.M{"$ne": model.StatusCancelled},
		}}},
		{{Key: "$group", Value: bson.M{"_id": nil, "revenue": bson.M{"$sum": "$total_amount"}}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("failed to aggregate monthly revenue: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []MonthlyRevenue
	if err = cursor.All(ctx, &rows); err != nil {
		return 0, fmt.Errorf("failed to decode monthly revenue: %w", err)
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Revenue, nil
}

func (r *mongoStatsRepository) Recent(ctx context.Context, limit int64) ([]*model.Reservation, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(limit)
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent reservations: %w", err)
	}
	defer cursor.Close(ctx)

	reservations := []*model.Reservation{}
	if err = cursor.All(ctx, &reservations); err != nil {
		return nil, fmt.Errorf("failed to decode recent reservations: %w", err)
	}
	return reservations, nil
}

// RevenueByMonth groups realised revenue by check-in month, from fromMonth
// onwards, in chronological order.
func (r *mongoStatsRepository) RevenueByMonth(ctx context.Context, fromMonth string) ([]MonthlyRevenue, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"status": bson.M{"$in": []string{model.StatusConfirmed, model.StatusCheckedIn, model.StatusCheckedOut}},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":     bson.M{"$substr": bson.A{"$check_in", 0, 7}},
			"revenue": bson.M{"$sum": "$total_amount"},
		}}},
		{{Key: "$match", Value: bson.M{"_id": bson.M{"$gte": fromMonth}}}},
		{{Key: "$sort", Value: bson.M{"_id": 1}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate revenue chart: %w", err)
	}
	defer cursor.Close(ctx)

	rows := []MonthlyRevenue{}
	if err = cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode revenue chart: %w", err)
	}
	return rows, nil
}
