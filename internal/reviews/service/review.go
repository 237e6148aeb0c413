package service

import (
	"context"
	"errors"

	reviewserrors "hms/internal/reviews/errors"
	"hms/internal/reviews/repository"
	"hms/internal/reviews/validator"
	"hms/pkg/config"
	apperrors "hms/pkg/errors"
	"hms/pkg/model"
	"hms/pkg/sanitizer"
	"hms/pkg/validation"
)

const (
	minRating = 1
	maxRating = 5
)

type ReviewService interface {
	Submit(ctx context.Context, review *model.Review) error
	ListVisible(ctx context.Context) ([]*model.Review, error)
	ListAll(ctx context.Context) ([]*model.Review, error)
	SetVisibility(ctx context.Context, id string, req *model.ReviewVisibility) error
	Delete(ctx context.Context, id string) error
}

type reviewService struct {
	repo      repository.ReviewRepository
	validator *validator.ReviewValidator
	cfg       *config.Config
}

func NewReviewService(repo repository.ReviewRepository, validator *validator.ReviewValidator, cfg *config.Config) ReviewService {
	return &reviewService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
	}
}

// Submit stores a guest review hidden until an admin approves it. Ratings
// outside 1..5 are clamped rather than rejected.
func (s *reviewService) Submit(ctx context.Context, review *model.Review) error {
	review.GuestName = sanitizer.NormalizeName(review.GuestName)
	review.GuestEmail = sanitizer.NormalizeEmail(review.GuestEmail)
	review.Comment = sanitizer.FreeText(review.Comment, 2000)
	review.Source = sanitizer.TrimAndNormalize(review.Source)
	review.Rating = sanitizer.Clamp(review.Rating, minRating, maxRating)
	review.IsVisible = false

	if err := s.validator.Validate(review); err != nil {
		s.cfg.Log.Warn("Review validation failed", "error", err)
		return validationError(err)
	}

	if err := s.repo.Create(ctx, review); err != nil {
		s.cfg.Log.Error("Failed to create review", "error", err)
		return apperrors.Internal("Failed to submit review", err)
	}

	s.cfg.Log.Info("Review submitted", "id", review.ID, "rating", review.Rating)
	return nil
}

func (s *reviewService) ListVisible(ctx context.Context) ([]*model.Review, error) {
	reviews, err := s.repo.FindVisible(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to list visible reviews", "error", err)
		return nil, apperrors.Internal("Failed to retrieve reviews", err)
	}
	return reviews, nil
}

func (s *reviewService) ListAll(ctx context.Context) ([]*model.Review, error) {
	reviews, err := s.repo.FindAll(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to list reviews", "error", err)
		return nil, apperrors.Internal("Failed to retrieve reviews", err)
	}
	return reviews, nil
}

func (s *reviewService) SetVisibility(ctx context.Context, id string, req *model.ReviewVisibility) error {
	if err := s.validator.ValidateVisibility(req); err != nil {
		return validationError(err)
	}

	if err := s.repo.SetVisibility(ctx, id, *req.IsVisible); err != nil {
		if errors.Is(err, reviewserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Review", id)
		}
		s.cfg.Log.Error("Failed to update review visibility", "id", id, "error", err)
		return apperrors.Internal("Failed to update review", err)
	}

	s.cfg.Log.Info("Review visibility updated", "id", id, "is_visible", *req.IsVisible)
	return nil
}

func (s *reviewService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, reviewserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Review", id)
		}
		s.cfg.Log.Error("Failed to delete review", "id", id, "error", err)
		return apperrors.Internal("Failed to delete review", err)
	}

	s.cfg.Log.Info("Review deleted", "id", id)
	return nil
}

func validationError(err error) error {
	var verrs validation.ValidationErrors
	if errors.As(err, &verrs) {
		return apperrors.Validation("Review validation failed", verrs.Details())
	}
	return apperrors.Validation("Review validation failed", map[string]any{"error": err.Error()})
}
