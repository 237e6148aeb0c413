package service

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"hms/internal/promos"
	promoerrors "hms/internal/promos/errors"
	"hms/internal/promos/repository"
	"hms/internal/promos/validator"
	"hms/pkg/config"
	"hms/pkg/dates"
	apperrors "hms/pkg/errors"
	"hms/pkg/model"
	"hms/pkg/sanitizer"
	"hms/pkg/validation"
)

const verifiedMessage = "Promo code applied!"

type PromoCodeService interface {
	Create(ctx context.Context, promo *model.PromoCode) error
	List(ctx context.Context) ([]*model.PromoCode, error)
	Update(ctx context.Context, id string, updates *model.PromoCodeUpdate) (*model.PromoCode, error)
	Delete(ctx context.Context, id string) error
	Verify(ctx context.Context, req *model.PromoVerifyRequest) (*model.PromoVerifyResponse, error)
}

type promoCodeService struct {
	repo      repository.PromoCodeRepository
	validator *validator.PromoCodeValidator
	cfg       *config.Config
	now       func() time.Time
}

func NewPromoCodeService(
	repo repository.PromoCodeRepository,
	validator *validator.PromoCodeValidator,
	cfg *config.Config,
) PromoCodeService {
	return &promoCodeService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
		now:       time.Now,
	}
}

func (s *promoCodeService) Create(ctx context.Context, promo *model.PromoCode) error {
	s.sanitize(promo)
	promo.CurrentUsage = 0

	if err := s.validator.Validate(promo); err != nil {
		s.cfg.Log.Warn("Promo code validation failed", "code", promo.Code, "error", err)
		return validationError(err)
	}
	s.normalizeWindow(promo)

	if err := s.repo.Create(ctx, promo); err != nil {
		if errors.Is(err, promoerrors.ErrDuplicateCode) {
			return apperrors.Conflict("Promo code already exists")
		}
		s.cfg.Log.Error("Failed to create promo code", "code", promo.Code, "error", err)
		return apperrors.Internal("Failed to create promo code", err)
	}

	s.cfg.Log.Info("Promo code created successfully",
		"id", promo.ID,
		"code", promo.Code,
		"discount_type", promo.DiscountType,
		"max_usage", promo.MaxUsage,
	)
	return nil
}

func (s *promoCodeService) List(ctx context.Context) ([]*model.PromoCode, error) {
	list, err := s.repo.FindAll(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to list promo codes", "error", err)
		return nil, apperrors.Internal("Failed to retrieve promo codes", err)
	}
	return list, nil
}

func (s *promoCodeService) Update(ctx context.Context, id string, updates *model.PromoCodeUpdate) (*model.PromoCode, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, promoerrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Promo code", id)
		}
		s.cfg.Log.Error("Failed to get promo code by ID", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to retrieve promo code", err)
	}

	merged := merge(existing, updates)
	s.sanitize(merged)
	if err := s.validator.Validate(merged); err != nil {
		s.cfg.Log.Warn("Promo code validation failed", "id", id, "error", err)
		return nil, validationError(err)
	}
	s.normalizeWindow(merged)

	if err := s.repo.Update(ctx, id, merged); err != nil {
		switch {
		case errors.Is(err, promoerrors.ErrNotFound):
			return nil, apperrors.NotFoundWithID("Promo code", id)
		case errors.Is(err, promoerrors.ErrDuplicateCode):
			return nil, apperrors.Conflict("Promo code already exists")
		}
		s.cfg.Log.Error("Failed to update promo code", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to update promo code", err)
	}

	s.cfg.Log.Info("Promo code updated successfully", "id", id, "code", merged.Code)
	return merged, nil
}

func (s *promoCodeService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, promoerrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Promo code", id)
		}
		s.cfg.Log.Error("Failed to delete promo code", "id", id, "error", err)
		return apperrors.Internal("Failed to delete promo code", err)
	}

	s.cfg.Log.Info("Promo code deleted", "id", id)
	return nil
}

// Verify previews a promo without taking a use. It runs the same rules as
// booking; the weekday is checked only when check_in parses and the room
// scope only when a room is given.
func (s *promoCodeService) Verify(ctx context.Context, req *model.PromoVerifyRequest) (*model.PromoVerifyResponse, error) {
	code := sanitizer.NormalizeCode(req.Code)
	if code == "" {
		return nil, apperrors.PromoInvalid("Promo code is required", http.StatusBadRequest)
	}

	promo, err := s.repo.FindActiveByCode(ctx, code)
	if err != nil {
		if errors.Is(err, promoerrors.ErrNotFound) {
			return nil, apperrors.PromoInvalid("Invalid promo code", http.StatusNotFound)
		}
		s.cfg.Log.Error("Failed to look up promo code", "code", code, "error", err)
		return nil, apperrors.Internal("Failed to verify promo code", err)
	}

	stay := promos.Stay{RoomTypeID: strings.TrimSpace(req.RoomTypeID)}
	if checkIn, err := dates.Parse(strings.TrimSpace(req.CheckIn)); err == nil {
		stay.CheckIn = checkIn
	}

	if verdict := promos.Evaluate(promo, stay, s.now()); !verdict.Valid {
		s.cfg.Log.Info("Promo code rejected at verification", "code", code, "reason", verdict.Reason)
		return nil, apperrors.PromoInvalid(reasonMessage(verdict.Reason), http.StatusBadRequest)
	}

	roomTypeIDs := promo.RoomTypeIDs
	if roomTypeIDs == nil {
		roomTypeIDs = []string{}
	}
	return &model.PromoVerifyResponse{
		Valid:         true,
		Code:          promo.Code,
		DiscountType:  promo.DiscountType,
		DiscountValue: promo.DiscountValue,
		RoomTypeIDs:   roomTypeIDs,
		Message:       verifiedMessage,
	}, nil
}

func reasonMessage(reason error) string {
	switch {
	case errors.Is(reason, promoerrors.ErrOutsideWindow):
		return "Promo code is expired or not yet valid"
	case errors.Is(reason, promoerrors.ErrCapacityReached):
		return "Promo code usage limit reached"
	case errors.Is(reason, promoerrors.ErrDayNotEligible):
		return "Promo code not valid for this check-in day"
	case errors.Is(reason, promoerrors.ErrRoomNotEligible):
		return "Promo code not valid for this room type"
	default:
		return "Invalid promo code"
	}
}

func (s *promoCodeService) sanitize(promo *model.PromoCode) {
	promo.Code = sanitizer.NormalizeCode(promo.Code)
	promo.Description = strings.TrimSpace(promo.Description)
	promo.DiscountType = strings.ToLower(strings.TrimSpace(promo.DiscountType))
	promo.RoomTypeIDs = sanitizer.Slice(promo.RoomTypeIDs, strings.TrimSpace)
	promo.ValidFrom = strings.TrimSpace(promo.ValidFrom)
	promo.ValidUntil = strings.TrimSpace(promo.ValidUntil)
}

// normalizeWindow rewrites the window as RFC3339 UTC so stored values sort
// chronologically. It runs after validation, when both values parse.
func (s *promoCodeService) normalizeWindow(promo *model.PromoCode) {
	if from, err := dates.ParseTimestamp(promo.ValidFrom); err == nil {
		promo.ValidFrom = dates.Timestamp(from)
	}
	if until, err := dates.ParseTimestamp(promo.ValidUntil); err == nil {
		promo.ValidUntil = dates.Timestamp(until)
	}
}

func merge(existing *model.PromoCode, updates *model.PromoCodeUpdate) *model.PromoCode {
	merged := *existing

	if updates.Code != nil {
		merged.Code = *updates.Code
	}
	if updates.Description != nil {
		merged.Description = *updates.Description
	}
	if updates.DiscountType != nil {
		merged.DiscountType = *updates.DiscountType
	}
	if updates.DiscountValue != nil {
		merged.DiscountValue = *updates.DiscountValue
	}
	if updates.MaxUsage != nil {
		merged.MaxUsage = *updates.MaxUsage
	}
	if updates.RoomTypeIDs != nil {
		merged.RoomTypeIDs = *updates.RoomTypeIDs
	}
	if updates.ValidDays != nil {
		merged.ValidDays = *updates.ValidDays
	}
	if updates.ValidFrom != nil {
		merged.ValidFrom = *updates.ValidFrom
	}
	if updates.ValidUntil != nil {
		merged.ValidUntil = *updates.ValidUntil
	}
	if updates.IsActive != nil {
		merged.IsActive = *updates.IsActive
	}

	merged.ID = existing.ID
	merged.CurrentUsage = existing.CurrentUsage
	merged.CreatedAt = existing.CreatedAt
	return &merged
}

func validationError(err error) error {
	var verrs validation.ValidationErrors
	if errors.As(err, &verrs) {
		return apperrors.Validation("Promo code validation failed", verrs.Details())
	}
	return apperrors.Validation("Promo code validation failed", map[string]any{"error": err.Error()})
}
