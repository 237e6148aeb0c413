package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	reservationserrors "hms/internal/reservations/errors"
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
	CollectionName = "Reservations"

	maxListResults = 1000
)

type ReservationRepository interface {
	Create(ctx context.Context, reservation *model.Reservation) error
	FindByID(ctx context.Context, id string) (*model.Reservation, error)
	// FindByGuest matches on booking code, email, or both when both are set.
	FindByGuest(ctx context.Context, bookingCode, email string, limit int) ([]*model.Reservation, error)
	Find(ctx context.Context, filter model.ReservationFilter) ([]*model.Reservation, error)
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
}

type mongoReservationRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoReservationRepository(cfg *config.Config) ReservationRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoReservationRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

// Create inserts the reservation. The booking code must already be set; a
// clash on it returns ErrDuplicateBookingCode so the caller can retry.
func (r *mongoReservationRepository) Create(ctx context.Context, reservation *model.Reservation) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if reservation.ID == "" {
		reservation.ID = uuid.NewString()
	}
	reservation.CreatedAt = dates.Timestamp(time.Now())

	if _, err := r.collection.InsertOne(ctx, reservation); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: %s", reservationserrors.ErrDuplicateBookingCode, reservation.BookingCode)
		}
		return fmt.Errorf("failed to create reservation: %w", err)
	}
	return nil
}

func (r *mongoReservationRepository) FindByID(ctx context.Context, id string) (*model.Reservation, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var reservation model.Reservation
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&reservation); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", reservationserrors.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to find reservation: %w", err)
	}
	return &reservation, nil
}

func (r *mongoReservationRepository) FindByGuest(ctx context.Context, bookingCode, email string, limit int) ([]*model.Reservation, error) {
	filter := bson.M{}
	if bookingCode != "" {
		filter["booking_code"] = bookingCode
	}
	if email != "" {
		filter["guest_email"] = email
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))
	return r.find(ctx, filter, opts)
}

func (r *mongoReservationRepository) Find(ctx context.Context, f model.ReservationFilter) ([]*model.Reservation, error) {
	filter := bson.M{}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.StartDate != "" {
		filter["check_in"] = bson.M{"$gte": f.StartDate}
	}
	if f.EndDate != "" {
		filter["check_out"] = bson.M{"$lte": f.EndDate}
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(maxListResults)
	return r.find(ctx, filter, opts)
}

func (r *mongoReservationRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*model.Reservation, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query reservations: %w", err)
	}
	defer cursor.Close(ctx)

	reservations := []*model.Reservation{}
	if err = cursor.All(ctx, &reservations); err != nil {
		return nil, fmt.Errorf("failed to decode reservations: %w", err)
	}
	return reservations, nil
}

func (r *mongoReservationRepository) UpdateStatus(ctx context.Context, id, status string) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"status":     status,
		"updated_at": dates.Timestamp(time.Now()),
	}}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update reservation status: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: %s", reservationserrors.ErrNotFound, id)
	}
	return nil
}

func (r *mongoReservationRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete reservation: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("%w: %s", reservationserrors.ErrNotFound, id)
	}
	return nil
}
