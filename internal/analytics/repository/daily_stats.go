package repository

import (
	"context"
	"fmt"
	"time"

	"hms/pkg/config"
	"hms/pkg/dates"
	mongotx "hms/pkg/db/mongo"
	"hms/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const CollectionName = "Daily_stats"

type StatsRepository interface {
	// Increment counts one visit to pageKey on date, creating the day on
	// first use.
	Increment(ctx context.Context, date, pageKey string) error
	Latest(ctx context.Context, days int) ([]*model.DailyStats, error)
}

type mongoStatsRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoStatsRepository(cfg *config.Config) StatsRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoStatsRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoStatsRepository) Increment(ctx context.Context, date, pageKey string) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	update := bson.M{
		"$inc": bson.M{
			"total_visits":          1,
			"page_views." + pageKey: 1,
		},
		"$set": bson.M{"last_updated": dates.Timestamp(time.Now())},
	}
	if _, err := r.collection.UpdateOne(ctx, bson.M{"date": date}, update, options.Update().SetUpsert(true)); err != nil {
		return fmt.Errorf("failed to record visit: %w", err)
	}
	return nil
}

func (r *mongoStatsRepository) Latest(ctx context.Context, days int) ([]*model.DailyStats, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: -1}}).
		SetLimit(int64(days)).
		SetProjection(bson.M{"_id": 0})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily stats: %w", err)
	}
	defer cursor.Close(ctx)

	stats := []*model.DailyStats{}
	if err = cursor.All(ctx, &stats); err != nil {
		return nil, fmt.Errorf("failed to decode daily stats: %w", err)
	}
	return stats, nil
}
