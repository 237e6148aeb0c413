package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	inventoryrepo "hms/internal/inventory/repository"
	rateplansrepo "hms/internal/rateplans/repository"
	roomserrors "hms/internal/rooms/errors"
	"hms/pkg/config"
	mongotx "hms/pkg/db/mongo"
	"hms/pkg/model"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "Room_types"
)

type RoomTypeRepository interface {
	Create(ctx context.Context, room *model.RoomType) error
	FindByID(ctx context.Context, id string) (*model.RoomType, error)
	FindAll(ctx context.Context, activeOnly bool) ([]*model.RoomType, error)
	Update(ctx context.Context, id string, room *model.RoomType) error
	SetActive(ctx context.Context, id string, active bool) error
	SetDisplayOrder(ctx context.Context, id string, order int) error
	AppendImage(ctx context.Context, id, url, alt string) error
	SetVideo(ctx context.Context, id, url string) error
	CountActive(ctx context.Context) (int64, error)
	Purge(ctx context.Context, id string) error
}

type mongoRoomTypeRepository struct {
	cfg        *config.Config
	db         *mongo.Database
	collection *mongo.Collection
	txManager  mongotx.TransactionManager
}

func NewMongoRoomTypeRepository(cfg *config.Config) RoomTypeRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoRoomTypeRepository{
		cfg:        cfg,
		db:         db,
		collection: db.Collection(CollectionName),
		txManager:  mongotx.NewTransactionManager(cfg.Client.Mongo),
	}
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

func (r *mongoRoomTypeRepository) Create(ctx context.Context, room *model.RoomType) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if room.ID == "" {
		room.ID = uuid.NewString()
	}
	room.CreatedAt = now()
	if room.Amenities == nil {
		room.Amenities = []string{}
	}
	if room.Images == nil {
		room.Images = []string{}
	}
	if room.ImageAlts == nil {
		room.ImageAlts = []string{}
	}

	if _, err := r.collection.InsertOne(ctx, room); err != nil {
		return fmt.Errorf("failed to create room type: %w", err)
	}
	return nil
}

func (r *mongoRoomTypeRepository) FindByID(ctx context.Context, id string) (*model.RoomType, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var room model.RoomType
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&room)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", roomserrors.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to find room type: %w", err)
	}
	return &room, nil
}

func (r *mongoRoomTypeRepository) FindAll(ctx context.Context, activeOnly bool) ([]*model.RoomType, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{}
	if activeOnly {
		filter["is_active"] = true
	}
	opts := options.Find().SetSort(bson.D{{Key: "display_order", Value: 1}, {Key: "created_at", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query room types: %w", err)
	}
	defer cursor.Close(ctx)

	rooms := []*model.RoomType{}
	if err = cursor.All(ctx, &rooms); err != nil {
		return nil, fmt.Errorf("failed to decode room types: %w", err)
	}
	return rooms, nil
}

func (r *mongoRoomTypeRepository) Update(ctx context.Context, id string, room *model.RoomType) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	room.UpdatedAt = now()
	update := bson.M{
		"$set": bson.M{
			"name":          room.Name,
			"description":   room.Description,
			"base_price":    room.BasePrice,
			"max_guests":    room.MaxGuests,
			"amenities":     room.Amenities,
			"images":        room.Images,
			"image_alts":    room.ImageAlts,
			"video_url":     room.VideoURL,
			"size_sqm":      room.SizeSqm,
			"bed_type":      room.BedType,
			"is_active":     room.IsActive,
			"display_order": room.DisplayOrder,
			"updated_at":    room.UpdatedAt,
		},
	}
	return r.updateOne(ctx, id, update, "failed to update room type")
}

func (r *mongoRoomTypeRepository) SetActive(ctx context.Context, id string, active bool) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{"is_active": active, "updated_at": now()}}
	return r.updateOne(ctx, id, update, "failed to change room type status")
}

func (r *mongoRoomTypeRepository) SetDisplayOrder(ctx context.Context, id string, order int) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	return r.updateOne(ctx, id, bson.M{"$set": bson.M{"display_order": order}}, "failed to reorder room type")
}

func (r *mongoRoomTypeRepository) AppendImage(ctx context.Context, id, url, alt string) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	update := bson.M{
		"$push": bson.M{"images": url, "image_alts": alt},
		"$set":  bson.M{"updated_at": now()},
	}
	return r.updateOne(ctx, id, update, "failed to attach room image")
}

func (r *mongoRoomTypeRepository) SetVideo(ctx context.Context, id, url string) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{"video_url": url, "updated_at": now()}}
	return r.updateOne(ctx, id, update, "failed to attach room video")
}

func (r *mongoRoomTypeRepository) updateOne(ctx context.Context, id string, update bson.M, failure string) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("%s: %w", failure, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: %s", roomserrors.ErrNotFound, id)
	}
	return nil
}

func (r *mongoRoomTypeRepository) CountActive(ctx context.Context) (int64, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{"is_active": true})
	if err != nil {
		return 0, fmt.Errorf("failed to count room types: %w", err)
	}
	return count, nil
}

// Purge removes the room type together with its inventory calendar and the
// rate plans scoped to it, in one transaction.
func (r *mongoRoomTypeRepository) Purge(ctx context.Context, id string) error {
	return r.txManager.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		result, err := r.collection.DeleteOne(sessCtx, bson.M{"_id": id})
		if err != nil {
			return fmt.Errorf("failed to delete room type: %w", err)
		}
		if result.DeletedCount == 0 {
			return fmt.Errorf("%w: %s", roomserrors.ErrNotFound, id)
		}

		if _, err := r.db.Collection(inventoryrepo.CollectionName).DeleteMany(sessCtx, bson.M{"room_type_id": id}); err != nil {
			return fmt.Errorf("failed to delete room inventory: %w", err)
		}
		if _, err := r.db.Collection(rateplansrepo.CollectionName).DeleteMany(sessCtx, bson.M{"room_type_id": id}); err != nil {
			return fmt.Errorf("failed to delete room rate plans: %w", err)
		}
		return nil
	})
}
