package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"hms/internal/inventory/repository"
	"hms/internal/inventory/validator"
	roomserrors "hms/internal/rooms/errors"
	"hms/pkg/config"
	"hms/pkg/dates"
	apperrors "hms/pkg/errors"
	"hms/pkg/model"
	"hms/pkg/validation"
)

// RoomLookup is the slice of the room type repository inventory needs.
type RoomLookup interface {
	FindByID(ctx context.Context, id string) (*model.RoomType, error)
}

type InventoryService interface {
	List(ctx context.Context, roomTypeID, start, end string) ([]*model.InventoryDay, error)
	UpsertDay(ctx context.Context, day *model.InventoryDay) error
	BulkUpdate(ctx context.Context, req *model.BulkInventoryUpdate) (int, error)
}

type inventoryService struct {
	repo      repository.InventoryRepository
	rooms     RoomLookup
	validator *validator.InventoryValidator
	cfg       *config.Config
}

func NewInventoryService(
	repo repository.InventoryRepository,
	rooms RoomLookup,
	validator *validator.InventoryValidator,
	cfg *config.Config,
) InventoryService {
	return &inventoryService{
		repo:      repo,
		rooms:     rooms,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *inventoryService) List(ctx context.Context, roomTypeID, start, end string) ([]*model.InventoryDay, error) {
	for _, d := range []string{start, end} {
		if d != "" && !dates.Valid(d) {
			return nil, apperrors.InvalidInput(fmt.Sprintf("Invalid date %q, expected YYYY-MM-DD", d))
		}
	}

	days, err := s.repo.List(ctx, strings.TrimSpace(roomTypeID), start, end)
	if err != nil {
		s.cfg.Log.Error("Failed to list inventory", "room_type_id", roomTypeID, "error", err)
		return nil, apperrors.Internal("Failed to retrieve inventory", err)
	}
	return days, nil
}

func (s *inventoryService) UpsertDay(ctx context.Context, day *model.InventoryDay) error {
	day.RoomTypeID = strings.TrimSpace(day.RoomTypeID)
	if err := s.validator.ValidateDay(day); err != nil {
		s.cfg.Log.Warn("Inventory day validation failed", "room_type_id", day.RoomTypeID, "date", day.Date, "error", err)
		return validationError(err)
	}

	if _, err := s.room(ctx, day.RoomTypeID); err != nil {
		return err
	}

	if err := s.repo.Upsert(ctx, day); err != nil {
		s.cfg.Log.Error("Failed to upsert inventory day", "room_type_id", day.RoomTypeID, "date", day.Date, "error", err)
		return apperrors.Internal("Failed to save inventory", err)
	}

	s.cfg.Log.Info("Inventory day saved",
		"room_type_id", day.RoomTypeID,
		"date", day.Date,
		"allotment", day.Allotment,
		"rate", day.Rate,
		"is_closed", day.IsClosed,
	)
	return nil
}

// BulkUpdate applies the supplied fields to every day of [start, end] whose
// weekday is selected, returning how many days were written. days_of_week
// uses the Monday-first convention of the admin UI.
func (s *inventoryService) BulkUpdate(ctx context.Context, req *model.BulkInventoryUpdate) (int, error) {
	req.RoomTypeID = strings.TrimSpace(req.RoomTypeID)

	start, err := dates.Parse(req.StartDate)
	if err != nil {
		return 0, apperrors.InvalidInput(err.Error())
	}
	end, err := dates.Parse(req.EndDate)
	if err != nil {
		return 0, apperrors.InvalidInput(err.Error())
	}
	if end.Before(start) {
		return 0, apperrors.InvalidInput("end_date must not be before start_date")
	}

	if err := s.validator.ValidateBulk(req); err != nil {
		s.cfg.Log.Warn("Bulk inventory validation failed", "room_type_id", req.RoomTypeID, "error", err)
		return 0, validationError(err)
	}

	room, err := s.room(ctx, req.RoomTypeID)
	if err != nil {
		return 0, err
	}

	if !req.HasChanges() {
		return 0, nil
	}

	selected, err := weekdayFilter(req.DaysOfWeek)
	if err != nil {
		return 0, apperrors.InvalidInput(err.Error())
	}

	patch := repository.DayPatch{Allotment: req.Allotment, Rate: req.Rate, IsClosed: req.IsClosed}
	defaults := repository.DayDefaults{Allotment: s.cfg.DefaultAllotment, Rate: room.BasePrice}

	updated := 0
	for _, day := range dates.EachDay(start, end) {
		if !selected(day.Weekday()) {
			continue
		}
		date := dates.Format(day)
		if err := s.repo.PatchDay(ctx, room.ID, date, patch, defaults); err != nil {
			s.cfg.Log.Error("Bulk inventory update stopped",
				"room_type_id", room.ID,
				"date", date,
				"updated", updated,
				"error", err,
			)
			return updated, apperrors.Internal("Failed to update inventory", err)
		}
		updated++
	}

	s.cfg.Log.Info("Bulk inventory update applied",
		"room_type_id", room.ID,
		"start_date", req.StartDate,
		"end_date", req.EndDate,
		"days", updated,
	)
	return updated, nil
}

func (s *inventoryService) room(ctx context.Context, id string) (*model.RoomType, error) {
	room, err := s.rooms.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, roomserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Room type", id)
		}
		s.cfg.Log.Error("Failed to load room type for inventory", "room_type_id", id, "error", err)
		return nil, apperrors.Internal("Failed to retrieve room type", err)
	}
	return room, nil
}

// weekdayFilter converts Monday-first indexes into a predicate. An empty
// list selects every day.
func weekdayFilter(mondayFirst []int) (func(time.Weekday) bool, error) {
	if len(mondayFirst) == 0 {
		return func(time.Weekday) bool { return true }, nil
	}

	set := make(map[time.Weekday]struct{}, len(mondayFirst))
	for _, i := range mondayFirst {
		wd, err := dates.WeekdayFromMondayIndex(i)
		if err != nil {
			return nil, err
		}
		set[wd] = struct{}{}
	}
	return func(wd time.Weekday) bool {
		_, ok := set[wd]
		return ok
	}, nil
}

func validationError(err error) error {
	var verrs validation.ValidationErrors
	if errors.As(err, &verrs) {
		return apperrors.Validation("Inventory validation failed", verrs.Details())
	}
	return apperrors.Validation("Inventory validation failed", map[string]any{"error": err.Error()})
}
