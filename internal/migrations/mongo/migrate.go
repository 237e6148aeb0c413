package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"hms/internal/migrations/mongo/validators"
	"hms/pkg/logger"
)

// Collection describes one collection the API relies on.
type Collection struct {
	Name      string
	Indexes   []mongo.IndexModel
	Validator bson.M
}

func unique(keys bson.D) mongo.IndexModel {
	return mongo.IndexModel{Keys: keys, Options: options.Index().SetUnique(true)}
}

func ascending(field string) mongo.IndexModel {
	return mongo.IndexModel{Keys: bson.D{{Key: field, Value: 1}}}
}

func descending(field string) mongo.IndexModel {
	return mongo.IndexModel{Keys: bson.D{{Key: field, Value: -1}}}
}

// Collections is ordered so that reference data exists before the
// collections that point at it.
var Collections = []Collection{
	{
		Name:      "Room_types",
		Indexes:   []mongo.IndexModel{ascending("display_order")},
		Validator: validators.RoomTypeValidator,
	},
	{
		Name: "Room_inventory",
		Indexes: []mongo.IndexModel{
			unique(bson.D{{Key: "room_type_id", Value: 1}, {Key: "date", Value: 1}}),
			ascending("date"),
		},
		Validator: validators.InventoryValidator,
	},
	{
		Name:      "Rate_plans",
		Indexes:   []mongo.IndexModel{ascending("room_type_id")},
		Validator: validators.RatePlanValidator,
	},
	{
		Name:      "Promo_codes",
		Indexes:   []mongo.IndexModel{unique(bson.D{{Key: "code", Value: 1}})},
		Validator: validators.PromoCodeValidator,
	},
	{
		Name: "Reservations",
		Indexes: []mongo.IndexModel{
			unique(bson.D{{Key: "booking_code", Value: 1}}),
			ascending("guest_email"),
			descending("created_at"),
			{Keys: bson.D{{Key: "check_in", Value: 1}, {Key: "check_out", Value: 1}}},
		},
		Validator: validators.ReservationValidator,
	},
	{
		Name:    "Reviews",
		Indexes: []mongo.IndexModel{ascending("is_visible")},
	},
	{
		Name:    "Site_content",
		Indexes: []mongo.IndexModel{unique(bson.D{{Key: "page", Value: 1}, {Key: "section", Value: 1}})},
	},
	{
		Name:    "Audit_logs",
		Indexes: []mongo.IndexModel{descending("created_at"), ascending("resource")},
	},
	{
		Name:    "Email_logs",
		Indexes: []mongo.IndexModel{descending("created_at")},
	},
	{
		Name:    "Users",
		Indexes: []mongo.IndexModel{unique(bson.D{{Key: "email", Value: 1}})},
	},
	{
		Name: "Password_resets",
		Indexes: []mongo.IndexModel{{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0),
		}},
	},
	{
		Name:    "Gallery",
		Indexes: []mongo.IndexModel{ascending("category")},
	},
	{
		Name:    "Daily_stats",
		Indexes: []mongo.IndexModel{unique(bson.D{{Key: "date", Value: 1}})},
	},
}

// RunMigration creates missing collections, refreshes their validators and
// ensures their indexes. It is safe to run repeatedly.
func RunMigration(ctx context.Context, db *mongo.Database, log *logger.Logger) error {
	log.Info("Running Mongo migrations", "database", db.Name(), "collections", len(Collections))

	for _, def := range Collections {
		if err := ensureCollection(ctx, db, def.Name, def.Validator, log); err != nil {
			return fmt.Errorf("failed to ensure collection %s: %w", def.Name, err)
		}
		if err := ensureIndexes(ctx, db, def.Name, def.Indexes, log); err != nil {
			return fmt.Errorf("failed to ensure indexes for %s: %w", def.Name, err)
		}
	}

	log.Info("All migrations applied successfully", "database", db.Name())
	return nil
}

func ensureCollection(ctx context.Context, db *mongo.Database, name string, validator bson.M, log *logger.Logger) error {
	existing, err := db.ListCollectionNames(ctx, bson.D{{Key: "name", Value: name}})
	if err != nil {
		return err
	}

	if len(existing) == 0 {
		log.Info("Creating collection", "collection", name)
		opts := options.CreateCollection()
		if validator != nil {
			opts.SetValidator(validator)
		}
		if err := db.CreateCollection(ctx, name, opts); err != nil {
			return fmt.Errorf("failed creating %s: %w", name, err)
		}
		return nil
	}

	if validator == nil {
		return nil
	}
	log.Info("Collection exists, updating validator", "collection", name)
	command := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
	}
	if err := db.RunCommand(ctx, command).Err(); err != nil {
		log.Warn("Failed updating validator", "collection", name, "error", err)
	}
	return nil
}

func ensureIndexes(ctx context.Context, db *mongo.Database, name string, models []mongo.IndexModel, log *logger.Logger) error {
	if len(models) == 0 {
		return nil
	}
	names, err := db.Collection(name).Indexes().CreateMany(ctx, models)
	if err != nil {
		return err
	}
	log.Info("Ensured indexes", "collection", name, "indexes", names)
	return nil
}
