package service

import (
	"context"
	"errors"
	"strings"

	rateplanserrors "hms/internal/rateplans/errors"
	"hms/internal/rateplans/repository"
	"hms/internal/rateplans/validator"
	roomserrors "hms/internal/rooms/errors"
	"hms/pkg/config"
	apperrors "hms/pkg/errors"
	"hms/pkg/model"
	"hms/pkg/sanitizer"
	"hms/pkg/validation"
)

// RoomLookup is the slice of the room type repository rate plans need.
type RoomLookup interface {
	FindByID(ctx context.Context, id string) (*model.RoomType, error)
}

type RatePlanService interface {
	Create(ctx context.Context, plan *model.RatePlan) error
	GetByID(ctx context.Context, id string) (*model.RatePlan, error)
	Catalog(ctx context.Context, roomTypeID string) ([]*model.RatePlan, error)
	ListAll(ctx context.Context) ([]*model.RatePlan, error)
	Update(ctx context.Context, id string, updates *model.RatePlanUpdate) (*model.RatePlan, error)
	Delete(ctx context.Context, id string) error
}

type ratePlanService struct {
	repo      repository.RatePlanRepository
	rooms     RoomLookup
	validator *validator.RatePlanValidator
	cfg       *config.Config
}

func NewRatePlanService(
	repo repository.RatePlanRepository,
	rooms RoomLookup,
	validator *validator.RatePlanValidator,
	cfg *config.Config,
) RatePlanService {
	return &ratePlanService{
		repo:      repo,
		rooms:     rooms,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *ratePlanService) Create(ctx context.Context, plan *model.RatePlan) error {
	s.sanitize(plan)

	if err := s.validator.Validate(plan); err != nil {
		s.cfg.Log.Warn("Rate plan validation failed", "name", plan.Name, "error", err)
		return validationError(err)
	}
	if err := s.checkRoomScope(ctx, plan); err != nil {
		return err
	}

	if err := s.repo.Create(ctx, plan); err != nil {
		s.cfg.Log.Error("Failed to create rate plan", "name", plan.Name, "error", err)
		return apperrors.Internal("Failed to create rate plan", err)
	}

	s.cfg.Log.Info("Rate plan created successfully",
		"id", plan.ID,
		"name", plan.Name,
		"modifier_type", plan.ModifierType,
		"modifier_value", plan.ModifierValue,
	)
	return nil
}

func (s *ratePlanService) GetByID(ctx context.Context, id string) (*model.RatePlan, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Rate plan ID cannot be empty")
	}

	plan, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, rateplanserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Rate plan", id)
		}
		s.cfg.Log.Error("Failed to get rate plan by ID", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to retrieve rate plan", err)
	}
	return plan, nil
}

func (s *ratePlanService) Catalog(ctx context.Context, roomTypeID string) ([]*model.RatePlan, error) {
	plans, err := s.repo.FindCatalog(ctx, strings.TrimSpace(roomTypeID))
	if err != nil {
		s.cfg.Log.Error("Failed to list rate plan catalog", "room_type_id", roomTypeID, "error", err)
		return nil, apperrors.Internal("Failed to retrieve rate plans", err)
	}
	return plans, nil
}

func (s *ratePlanService) ListAll(ctx context.Context) ([]*model.RatePlan, error) {
	plans, err := s.repo.FindAll(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to list rate plans", "error", err)
		return nil, apperrors.Internal("Failed to retrieve rate plans", err)
	}
	return plans, nil
}

func (s *ratePlanService) Update(ctx context.Context, id string, updates *model.RatePlanUpdate) (*model.RatePlan, error) {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	merged := merge(existing, updates)
	s.sanitize(merged)
	if err := s.validator.Validate(merged); err != nil {
		s.cfg.Log.Warn("Rate plan validation failed", "id", id, "error", err)
		return nil, validationError(err)
	}
	if err := s.checkRoomScope(ctx, merged); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, id, merged); err != nil {
		if errors.Is(err, rateplanserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Rate plan", id)
		}
		s.cfg.Log.Error("Failed to update rate plan", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to update rate plan", err)
	}

	s.cfg.Log.Info("Rate plan updated successfully", "id", id, "name", merged.Name)
	return merged, nil
}

func (s *ratePlanService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, rateplanserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Rate plan", id)
		}
		s.cfg.Log.Error("Failed to delete rate plan", "id", id, "error", err)
		return apperrors.Internal("Failed to delete rate plan", err)
	}

	s.cfg.Log.Info("Rate plan deleted", "id", id)
	return nil
}

func (s *ratePlanService) checkRoomScope(ctx context.Context, plan *model.RatePlan) error {
	if plan.RoomTypeID == nil {
		return nil
	}
	if _, err := s.rooms.FindByID(ctx, *plan.RoomTypeID); err != nil {
		if errors.Is(err, roomserrors.ErrNotFound) {
			return apperrors.Validation("Rate plan validation failed", map[string]any{
				"RoomTypeID": "room type does not exist",
			})
		}
		s.cfg.Log.Error("Failed to check rate plan room scope", "room_type_id", *plan.RoomTypeID, "error", err)
		return apperrors.Internal("Failed to retrieve room type", err)
	}
	return nil
}

func (s *ratePlanService) sanitize(plan *model.RatePlan) {
	plan.Name = sanitizer.NormalizeName(plan.Name)
	plan.Description = strings.TrimSpace(plan.Description)
	plan.ModifierType = strings.ToLower(strings.TrimSpace(plan.ModifierType))
	plan.Conditions = sanitizer.Slice(plan.Conditions, sanitizer.TrimAndNormalize)
	if plan.RoomTypeID != nil {
		id := strings.TrimSpace(*plan.RoomTypeID)
		if id == "" {
			plan.RoomTypeID = nil
		} else {
			plan.RoomTypeID = &id
		}
	}
}

func merge(existing *model.RatePlan, updates *model.RatePlanUpdate) *model.RatePlan {
	merged := *existing

	if updates.RoomTypeID != nil {
		id := *updates.RoomTypeID
		merged.RoomTypeID = &id
	}
	if updates.Name != nil {
		merged.Name = *updates.Name
	}
	if updates.Description != nil {
		merged.Description = *updates.Description
	}
	if updates.ModifierType != nil {
		merged.ModifierType = *updates.ModifierType
	}
	if updates.ModifierValue != nil {
		merged.ModifierValue = *updates.ModifierValue
	}
	if updates.IsActive != nil {
		merged.IsActive = *updates.IsActive
	}
	if updates.Conditions != nil {
		merged.Conditions = *updates.Conditions
	}

	merged.ID = existing.ID
	merged.CreatedAt = existing.CreatedAt
	return &merged
}

func validationError(err error) error {
	var verrs validation.ValidationErrors
	if errors.As(err, &verrs) {
		return apperrors.Validation("Rate plan validation failed", verrs.Details())
	}
	return apperrors.Validation("Rate plan validation failed", map[string]any{"error": err.Error()})
}
