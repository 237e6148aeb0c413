package service

import (
	"context"
	"slices"
	"time"

	"hms/internal/analytics/repository"
	"hms/pkg/config"
	"hms/pkg/dates"
	apperrors "hms/pkg/errors"
	"hms/pkg/model"
	"hms/pkg/sanitizer"
)

const (
	DefaultDays = 7
	maxDays     = 90
	maxPageKey  = 200
)

type AnalyticsService interface {
	Track(ctx context.Context, page string) error
	Recent(ctx context.Context, days int) ([]*model.DailyStats, error)
}

type analyticsService struct {
	repo repository.StatsRepository
	cfg  *config.Config
	now  func() time.Time
}

func NewAnalyticsService(repo repository.StatsRepository, cfg *config.Config) AnalyticsService {
	return &analyticsService{
		repo: repo,
		cfg:  cfg,
		now:  time.Now,
	}
}

func (s *analyticsService) Track(ctx context.Context, page string) error {
	key := sanitizer.Truncate(sanitizer.PageKey(page), maxPageKey)
	if key == "" {
		return apperrors.InvalidInput("page is required")
	}

	if err := s.repo.Increment(ctx, dates.Today(s.now()), key); err != nil {
		s.cfg.Log.Error("Failed to track page view", "page", key, "error", err)
		return apperrors.Internal("Failed to track visit", err)
	}
	return nil
}

// Recent returns up to days daily records, oldest first. days is clamped to
// 1..90.
func (s *analyticsService) Recent(ctx context.Context, days int) ([]*model.DailyStats, error) {
	days = sanitizer.Clamp(days, 1, maxDays)

	stats, err := s.repo.Latest(ctx, days)
	if err != nil {
		s.cfg.Log.Error("Failed to load analytics", "days", days, "error", err)
		return nil, apperrors.Internal("Failed to retrieve analytics", err)
	}
	slices.Reverse(stats)
	return stats, nil
}
