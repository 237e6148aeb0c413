package service

import (
	"context"
	"sync"

	"hms/internal/pricing"
	"hms/pkg/config"
	"hms/pkg/dates"
	apperrors "hms/pkg/errors"
	"hms/pkg/model"
)

type RoomCatalog interface {
	FindAll(ctx context.Context, activeOnly bool) ([]*model.RoomType, error)
}

type Calendar interface {
	FindRange(ctx context.Context, roomTypeID, from, to string) (map[string]*model.InventoryDay, error)
}

type PlanCatalog interface {
	FindCatalog(ctx context.Context, roomTypeID string) ([]*model.RatePlan, error)
}

// RoomAvailability is a bookable room type with its priced candidates.
type RoomAvailability struct {
	model.RoomType
	AvailableRate float64             `json:"available_rate"`
	Nights        int                 `json:"nights"`
	TotalBase     float64             `json:"total_base"`
	RatePlans     []pricing.Candidate `json:"rate_plans"`
}

type AvailabilityService interface {
	Search(ctx context.Context, checkIn, checkOut string) ([]RoomAvailability, error)
}

type availabilityService struct {
	rooms    RoomCatalog
	calendar Calendar
	plans    PlanCatalog
	cfg      *config.Config
}

func NewAvailabilityService(rooms RoomCatalog, calendar Calendar, plans PlanCatalog, cfg *config.Config) AvailabilityService {
	return &availabilityService{
		rooms:    rooms,
		calendar: calendar,
		plans:    plans,
		cfg:      cfg,
	}
}

// Search returns every active room type bookable for the whole stay, in
// display order. A stay of zero or fewer nights yields an empty list.
func (s *availabilityService) Search(ctx context.Context, checkInStr, checkOutStr string) ([]RoomAvailability, error) {
	checkIn, err := dates.Parse(checkInStr)
	if err != nil {
		return nil, apperrors.InvalidInput("check_in: " + err.Error())
	}
	checkOut, err := dates.Parse(checkOutStr)
	if err != nil {
		return nil, apperrors.InvalidInput("check_out: " + err.Error())
	}

	results := []RoomAvailability{}
	if dates.Nights(checkIn, checkOut) <= 0 {
		return results, nil
	}

	var (
		rooms            []*model.RoomType
		plans            []*model.RatePlan
		roomErr, planErr error
		wg               sync.WaitGroup
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		rooms, roomErr = s.rooms.FindAll(ctx, true)
	}()
	go func() {
		defer wg.Done()
		plans, planErr = s.plans.FindCatalog(ctx, "")
	}()
	wg.Wait()

	if roomErr != nil {
		s.cfg.Log.Error("Failed to load rooms for availability", "error", roomErr)
		return nil, apperrors.Internal("Failed to check availability", roomErr)
	}
	if planErr != nil {
		s.cfg.Log.Error("Failed to load rate plans for availability", "error", planErr)
		return nil, apperrors.Internal("Failed to check availability", planErr)
	}

	quotes := make([]pricing.Quote, len(rooms))
	errs := make([]error, len(rooms))
	for i, room := range rooms {
		wg.Add(1)
		go func(i int, room *model.RoomType) {
			defer wg.Done()
			days, err := s.calendar.FindRange(ctx, room.ID, checkInStr, checkOutStr)
			if err != nil {
				errs[i] = err
				return
			}
			quotes[i] = pricing.QuoteStay(room, checkIn, checkOut, days, plans)
		}(i, room)
	}
	wg.Wait()

	for i, room := range rooms {
		if errs[i] != nil {
			s.cfg.Log.Error("Failed to load inventory for availability", "room_type_id", room.ID, "error", errs[i])
			return nil, apperrors.Internal("Failed to check availability", errs[i])
		}
		q := quotes[i]
		if !q.Available {
			continue
		}
		results = append(results, RoomAvailability{
			RoomType:      *room,
			AvailableRate: q.MinNightly(),
			Nights:        q.Nights,
			TotalBase:     q.TotalBase,
			RatePlans:     q.Candidates,
		})
	}

	s.cfg.Log.Debug("Availability computed",
		"check_in", checkInStr,
		"check_out", checkOutStr,
		"rooms", len(rooms),
		"available", len(results),
	)
	return results, nil
}
