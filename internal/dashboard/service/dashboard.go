package service

import (
	"context"
	"time"

	"hms/internal/dashboard/repository"
	"hms/pkg/config"
	"hms/pkg/dates"
	apperrors "hms/pkg/errors"
	"hms/pkg/model"
)

const (
	recentReservations = 5
	chartMonths        = 6
	monthLayout        = "2006-01"
)

type RoomCounter interface {
	CountActive(ctx context.Context) (int64, error)
}

type AllotmentCounter interface {
	SumAllotment(ctx context.Context, date string) (int, error)
}

type ReviewCounter interface {
	CountPending(ctx context.Context) (int64, error)
}

type DashboardService interface {
	Stats(ctx context.Context) (*model.DashboardStats, error)
}

type dashboardService struct {
	stats     repository.StatsRepository
	rooms     RoomCounter
	inventory AllotmentCounter
	reviews   ReviewCounter
	cfg       *config.Config
	now       func() time.Time
}

func NewDashboardService(stats repository.StatsRepository, rooms RoomCounter, inventory AllotmentCounter, reviews ReviewCounter, cfg *config.Config) DashboardService {
	return &dashboardService{
		stats:     stats,
		rooms:     rooms,
		inventory: inventory,
		reviews:   reviews,
		cfg:       cfg,
		now:       time.Now,
	}
}

func (s *dashboardService) Stats(ctx context.Context) (*model.DashboardStats, error) {
	now := s.now().UTC()
	today := dates.Today(now)
	monthStart := dates.MonthStart(now)

	var (
		result model.DashboardStats
		err    error
	)

	if result.OccupiedToday, err = s.stats.CountOccupied(ctx, today); err != nil {
		return nil, s.failed("occupied_today", err)
	}
	if result.AvailableToday, err = s.inventory.SumAllotment(ctx, today); err != nil {
		return nil, s.failed("available_today", err)
	}
	if result.MonthlyRevenue, err = s.stats.RevenueSince(ctx, dates.Timestamp(monthStart)); err != nil {
		return nil, s.failed("monthly_revenue", err)
	}
	if result.TotalRoomTypes, err = s.rooms.CountActive(ctx); err != nil {
		return nil, s.failed("total_room_types", err)
	}
	if result.PendingReviews, err = s.reviews.CountPending(ctx); err != nil {
		return nil, s.failed("pending_reviews", err)
	}
	if result.RecentReservations, err = s.stats.Recent(ctx, recentReservations); err != nil {
		return nil, s.failed("recent_reservations", err)
	}

	fromMonth := monthStart.AddDate(0, -(chartMonths - 1), 0).Format(monthLayout)
	rows, err := s.stats.RevenueByMonth(ctx, fromMonth)
	if err != nil {
		return nil, s.failed("revenue_chart", err)
	}
	result.RevenueChart = revenueChart(rows)

	return &result, nil
}

func (s *dashboardService) failed(metric string, err error) error {
	s.cfg.Log.Error("Failed to compute dashboard metric", "metric", metric, "error", err)
	return apperrors.Internal("Failed to load dashboard", err)
}

// revenueChart labels each month with its short name. Rows whose key is not
// a YYYY-MM month, such as reservations with a malformed check_in, are
// dropped.
func revenueChart(rows []repository.MonthlyRevenue) []model.RevenuePoint {
	points := make([]model.RevenuePoint, 0, len(rows))
	for _, row := range rows {
		month, err := time.Parse(monthLayout, row.Month)
		if err != nil {
			continue
		}
		points = append(points, model.RevenuePoint{
			Name:     month.Format("Jan"),
			Revenue:  row.Revenue,
			FullDate: row.Month,
		})
	}
	if len(points) > chartMonths {
		points = points[len(points)-chartMonths:]
	}
	return points
}
