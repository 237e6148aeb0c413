package repository

import (
	"context"
	"fmt"

	inventoryerrors "hms/internal/inventory/errors"
	"hms/pkg/config"
	mongotx "hms/pkg/db/mongo"
	"hms/pkg/model"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "Room_inventory"

	maxListResults = 1000
)

// DayPatch carries the fields a bulk update supplies. Nil fields keep their
// stored value, or take the defaults when the day is created.
type DayPatch struct {
	Allotment *int
	Rate      *float64
	IsClosed  *bool
}

// DayDefaults seeds a calendar day that does not exist yet.
type DayDefaults struct {
	Allotment int
	Rate      float64
}

type InventoryRepository interface {
	FindRange(ctx context.Context, roomTypeID, from, to string) (map[string]*model.InventoryDay, error)
	List(ctx context.Context, roomTypeID, start, end string) ([]*model.InventoryDay, error)
	Upsert(ctx context.Context, day *model.InventoryDay) error
	PatchDay(ctx context.Context, roomTypeID, date string, patch DayPatch, defaults DayDefaults) error
	DecrementAllotment(ctx context.Context, roomTypeID, date string, defaults DayDefaults) error
	IncrementAllotment(ctx context.Context, roomTypeID, date string) error
	SumAllotment(ctx context.Context, date string) (int, error)
}

type mongoInventoryRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoInventoryRepository(cfg *config.Config) InventoryRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoInventoryRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

// FindRange returns the calendar days of [from, to) keyed by date.
func (r *mongoInventoryRepository) FindRange(ctx context.Context, roomTypeID, from, to string) (map[string]*model.InventoryDay, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{
		"room_type_id": roomTypeID,
		"date":         bson.M{"$gte": from, "$lt": to},
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query inventory range: %w", err)
	}
	defer cursor.Close(ctx)

	var days []*model.InventoryDay
	if err = cursor.All(ctx, &days); err != nil {
		return nil, fmt.Errorf("failed to decode inventory range: %w", err)
	}

	byDate := make(map[string]*model.InventoryDay, len(days))
	for _, d := range days {
		byDate[d.Date] = d
	}
	return byDate, nil
}

// List returns calendar days for the inclusive range. Empty arguments are
// not filtered on.
func (r *mongoInventoryRepository) List(ctx context.Context, roomTypeID, start, end string) ([]*model.InventoryDay, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{}
	if roomTypeID != "" {
		filter["room_type_id"] = roomTypeID
	}
	dateFilter := bson.M{}
	if start != "" {
		dateFilter["$gte"] = start
	}
	if end != "" {
		dateFilter["$lte"] = end
	}
	if len(dateFilter) > 0 {
		filter["date"] = dateFilter
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: 1}, {Key: "room_type_id", Value: 1}}).
		SetLimit(maxListResults)

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query inventory: %w", err)
	}
	defer cursor.Close(ctx)

	days := []*model.InventoryDay{}
	if err = cursor.All(ctx, &days); err != nil {
		return nil, fmt.Errorf("failed to decode inventory: %w", err)
	}
	return days, nil
}

func (r *mongoInventoryRepository) Upsert(ctx context.Context, day *model.InventoryDay) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	filter := bson.M{"room_type_id": day.RoomTypeID, "date": day.Date}
	update := bson.M{
		"$set": bson.M{
			"allotment": day.Allotment,
			"rate":      day.Rate,
			"is_closed": day.IsClosed,
		},
		"$setOnInsert": bson.M{"_id": uuid.NewString()},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	if err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(day); err != nil {
		return fmt.Errorf("failed to upsert inventory day: %w", err)
	}
	return nil
}

func (r *mongoInventoryRepository) PatchDay(ctx context.Context, roomTypeID, date string, patch DayPatch, defaults DayDefaults) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	filter := bson.M{"room_type_id": roomTypeID, "date": date}
	if _, err := r.collection.UpdateOne(ctx, filter, patchUpdate(patch, defaults), options.Update().SetUpsert(true)); err != nil {
		return fmt.Errorf("failed to update inventory day %s: %w", date, err)
	}
	return nil
}

// patchUpdate is the upsert for one day. Existing days keep every field the
// patch leaves out; new days take defaults for them.
func patchUpdate(patch DayPatch, defaults DayDefaults) bson.M {
	set, onInsert := patchDocuments(patch, defaults)
	update := bson.M{"$setOnInsert": onInsert}
	if len(set) > 0 {
		update["$set"] = set
	}
	return update
}

// patchDocuments splits a patch into the $set of supplied fields and the
// $setOnInsert of defaults for the rest. A field never appears in both.
func patchDocuments(patch DayPatch, defaults DayDefaults) (bson.M, bson.M) {
	set := bson.M{}
	onInsert := bson.M{"_id": uuid.NewString()}

	if patch.Allotment != nil {
		set["allotment"] = *patch.Allotment
	} else {
		onInsert["allotment"] = defaults.Allotment
	}
	if patch.Rate != nil {
		set["rate"] = *patch.Rate
	} else {
		onInsert["rate"] = defaults.Rate
	}
	if patch.IsClosed != nil {
		set["is_closed"] = *patch.IsClosed
	} else {
		onInsert["is_closed"] = false
	}
	return set, onInsert
}

// DecrementAllotment takes one room off date only if the day is open and has
// allotment left. A day that does not exist yet is created from defaults with
// one room already taken.
func (r *mongoInventoryRepository) DecrementAllotment(ctx context.Context, roomTypeID, date string, defaults DayDefaults) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	taken, err := r.conditionalDecrement(ctx, roomTypeID, date)
	if err != nil || taken {
		return err
	}

	exists, err := r.collection.CountDocuments(ctx, bson.M{"room_type_id": roomTypeID, "date": date})
	if err != nil {
		return fmt.Errorf("failed to check inventory day %s: %w", date, err)
	}
	if exists > 0 {
		return fmt.Errorf("%w: %s", inventoryerrors.ErrUnavailable, date)
	}
	day, ok := openingDay(roomTypeID, date, defaults)
	if !ok {
		return fmt.Errorf("%w: %s", inventoryerrors.ErrUnavailable, date)
	}

	_, err = r.collection.InsertOne(ctx, day)
	if err == nil {
		return nil
	}
	if !mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("failed to create inventory day %s: %w", date, err)
	}

	// Another booking created the day first; take from it instead.
	taken, err = r.conditionalDecrement(ctx, roomTypeID, date)
	if err != nil {
		return err
	}
	if !taken {
		return fmt.Errorf("%w: %s", inventoryerrors.ErrUnavailable, date)
	}
	return nil
}

// openingDay is a day that did not exist yet, created from defaults with the
// booked room already taken. ok is false when defaults leave nothing to sell.
func openingDay(roomTypeID, date string, defaults DayDefaults) (model.InventoryDay, bool) {
	if defaults.Allotment < 1 {
		return model.InventoryDay{}, false
	}
	return model.InventoryDay{
		ID:         uuid.NewString(),
		RoomTypeID: roomTypeID,
		Date:       date,
		Allotment:  defaults.Allotment - 1,
		Rate:       defaults.Rate,
	}, true
}

// decrementFilter matches the day only while it is open and has a room left,
// so the $inc cannot take allotment below zero.
func decrementFilter(roomTypeID, date string) bson.M {
	return bson.M{
		"room_type_id": roomTypeID,
		"date":         date,
		"is_closed":    bson.M{"$ne": true},
		"allotment":    bson.M{"$gt": 0},
	}
}

func decrementUpdate() bson.M {
	return bson.M{"$inc": bson.M{"allotment": -1}}
}

func (r *mongoInventoryRepository) conditionalDecrement(ctx context.Context, roomTypeID, date string) (bool, error) {
	result, err := r.collection.UpdateOne(ctx, decrementFilter(roomTypeID, date), decrementUpdate())
	if err != nil {
		return false, fmt.Errorf("failed to decrement inventory day %s: %w", date, err)
	}
	return result.ModifiedCount == 1, nil
}

func (r *mongoInventoryRepository) IncrementAllotment(ctx context.Context, roomTypeID, date string) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	filter := bson.M{"room_type_id": roomTypeID, "date": date}
	if _, err := r.collection.UpdateOne(ctx, filter, bson.M{"$inc": bson.M{"allotment": 1}}); err != nil {
		return fmt.Errorf("failed to restore inventory day %s: %w", date, err)
	}
	return nil
}

func (r *mongoInventoryRepository) SumAllotment(ctx context.Context, date string) (int, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"date": date, "is_closed": bson.M{"$ne": true}}}},
		{{Key: "$group", Value: bson.M{"_id": nil, "total": bson.M{"$sum": "$allotment"}}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("failed to aggregate allotment: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Total int `bson:"total"`
	}
	if err = cursor.All(ctx, &rows); err != nil {
		return 0, fmt.Errorf("failed to decode allotment total: %w", err)
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Total, nil
}
