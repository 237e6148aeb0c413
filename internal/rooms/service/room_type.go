package service

import (
	"context"
	"errors"
	"strings"

	roomserrors "hms/internal/rooms/errors"
	"hms/internal/rooms/repository"
	"hms/internal/rooms/validator"
	"hms/pkg/config"
	apperrors "hms/pkg/errors"
	"hms/pkg/model"
	"hms/pkg/sanitizer"
	"hms/pkg/validation"
)

type RoomTypeService interface {
	Create(ctx context.Context, room *model.RoomType) error
	GetByID(ctx context.Context, id string) (*model.RoomType, error)
	ListActive(ctx context.Context) ([]*model.RoomType, error)
	ListAll(ctx context.Context) ([]*model.RoomType, error)
	Update(ctx context.Context, id string, updates *model.RoomTypeUpdate) (*model.RoomType, error)
	Deactivate(ctx context.Context, id string) error
	Purge(ctx context.Context, id string) error
	Reorder(ctx context.Context, ids []string) error
}

type roomTypeService struct {
	repo      repository.RoomTypeRepository
	validator *validator.RoomTypeValidator
	cfg       *config.Config
}

func NewRoomTypeService(
	repo repository.RoomTypeRepository,
	validator *validator.RoomTypeValidator,
	cfg *config.Config,
) RoomTypeService {
	return &roomTypeService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *roomTypeService) Create(ctx context.Context, room *model.RoomType) error {
	s.sanitize(room)
	room.ID = ""
	room.IsActive = true

	if err := s.validator.Validate(room); err != nil {
		s.cfg.Log.Warn("Room type validation failed", "name", room.Name, "error", err)
		return validationError(err)
	}

	if err := s.repo.Create(ctx, room); err != nil {
		s.cfg.Log.Error("Failed to create room type", "name", room.Name, "error", err)
		return apperrors.Internal("Failed to create room type", err)
	}

	s.cfg.Log.Info("Room type created successfully",
		"id", room.ID,
		"name", room.Name,
		"base_price", room.BasePrice,
	)
	return nil
}

func (s *roomTypeService) GetByID(ctx context.Context, id string) (*model.RoomType, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Room type ID cannot be empty")
	}

	room, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, roomserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Room", id)
		}
		s.cfg.Log.Error("Failed to get room type by ID", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to retrieve room type", err)
	}
	return room, nil
}

func (s *roomTypeService) ListActive(ctx context.Context) ([]*model.RoomType, error) {
	return s.list(ctx, true)
}

func (s *roomTypeService) ListAll(ctx context.Context) ([]*model.RoomType, error) {
	return s.list(ctx, false)
}

func (s *roomTypeService) list(ctx context.Context, activeOnly bool) ([]*model.RoomType, error) {
	rooms, err := s.repo.FindAll(ctx, activeOnly)
	if err != nil {
		s.cfg.Log.Error("Failed to list room types", "active_only", activeOnly, "error", err)
		return nil, apperrors.Internal("Failed to retrieve room types", err)
	}
	return rooms, nil
}

func (s *roomTypeService) Update(ctx context.Context, id string, updates *model.RoomTypeUpdate) (*model.RoomType, error) {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	merged := s.merge(existing, updates)
	s.sanitize(merged)
	if err := s.validator.Validate(merged); err != nil {
		s.cfg.Log.Warn("Room type validation failed", "id", id, "error", err)
		return nil, validationError(err)
	}

	if err := s.repo.Update(ctx, id, merged); err != nil {
		if errors.Is(err, roomserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Room", id)
		}
		s.cfg.Log.Error("Failed to update room type", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to update room type", err)
	}

	s.cfg.Log.Info("Room type updated successfully", "id", id, "name", merged.Name)
	return merged, nil
}

func (s *roomTypeService) Deactivate(ctx context.Context, id string) error {
	if err := s.repo.SetActive(ctx, id, false); err != nil {
		if errors.Is(err, roomserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Room", id)
		}
		s.cfg.Log.Error("Failed to deactivate room type", "id", id, "error", err)
		return apperrors.Internal("Failed to delete room type", err)
	}

	s.cfg.Log.Info("Room type deactivated", "id", id)
	return nil
}

func (s *roomTypeService) Purge(ctx context.Context, id string) error {
	if err := s.repo.Purge(ctx, id); err != nil {
		if errors.Is(err, roomserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Room", id)
		}
		s.cfg.Log.Error("Failed to purge room type", "id", id, "error", err)
		return apperrors.Internal("Failed to permanently delete room type", err)
	}

	s.cfg.Log.Info("Room type purged with its inventory and rate plans", "id", id)
	return nil
}

// Reorder assigns each room its index in ids as display order. Unknown ids
// are skipped.
func (s *roomTypeService) Reorder(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return apperrors.InvalidInput("room_ids list is required")
	}

	for i, id := range ids {
		if err := s.repo.SetDisplayOrder(ctx, id, i); err != nil {
			if errors.Is(err, roomserrors.ErrNotFound) {
				s.cfg.Log.Warn("Skipping unknown room type during reorder", "id", id)
				continue
			}
			s.cfg.Log.Error("Failed to reorder room types", "id", id, "position", i, "error", err)
			return apperrors.Internal("Failed to reorder room types", err)
		}
	}

	s.cfg.Log.Info("Room types reordered", "count", len(ids))
	return nil
}

func (s *roomTypeService) sanitize(room *model.RoomType) {
	room.Name = sanitizer.NormalizeName(room.Name)
	room.Description = strings.TrimSpace(room.Description)
	room.BedType = sanitizer.TrimAndNormalize(room.BedType)
	room.Amenities = sanitizer.Slice(room.Amenities, sanitizer.TrimAndNormalize)
	room.VideoURL = strings.TrimSpace(room.VideoURL)
}

func (s *roomTypeService) merge(existing *model.RoomType, updates *model.RoomTypeUpdate) *model.RoomType {
	merged := *existing

	if updates.Name != nil {
		merged.Name = *updates.Name
	}
	if updates.Description != nil {
		merged.Description = *updates.Description
	}
	if updates.BasePrice != nil {
		merged.BasePrice = *updates.BasePrice
	}
	if updates.MaxGuests != nil {
		merged.MaxGuests = *updates.MaxGuests
	}
	if updates.Amenities != nil {
		merged.Amenities = *updates.Amenities
	}
	if updates.Images != nil {
		merged.Images = *updates.Images
	}
	if updates.ImageAlts != nil {
		merged.ImageAlts = *updates.ImageAlts
	}
	if updates.VideoURL != nil {
		merged.VideoURL = *updates.VideoURL
	}
	if updates.SizeSqm != nil {
		merged.SizeSqm = *updates.SizeSqm
	}
	if updates.BedType != nil {
		merged.BedType = *updates.BedType
	}
	if updates.IsActive != nil {
		merged.IsActive = *updates.IsActive
	}
	if updates.DisplayOrder != nil {
		merged.DisplayOrder = *updates.DisplayOrder
	}

	merged.ID = existing.ID
	merged.CreatedAt = existing.CreatedAt
	return &merged
}

func validationError(err error) error {
	var verrs validation.ValidationErrors
	if errors.As(err, &verrs) {
		return apperrors.Validation("Room type validation failed", verrs.Details())
	}
	return apperrors.Validation("Room type validation failed", map[string]any{"error": err.Error()})
}
