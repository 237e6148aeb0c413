package service

import (
	"context"
	"errors"
	"testing"

	"hms/pkg/config"
	apperrors "hms/pkg/errors"
	"hms/pkg/logger"
	"hms/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticRooms []*model.RoomType

func (s staticRooms) FindAll(context.Context, bool) ([]*model.RoomType, error) {
	return s, nil
}

type staticCalendar struct {
	days map[string]map[string]*model.InventoryDay
	err  error
}

func (c staticCalendar) FindRange(_ context.Context, roomTypeID, _, _ string) (map[string]*model.InventoryDay, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.days[roomTypeID], nil
}

type staticPlans []*model.RatePlan

func (s staticPlans) FindCatalog(context.Context, string) ([]*model.RatePlan, error) {
	return s, nil
}

func newTestService(rooms staticRooms, cal staticCalendar, plans staticPlans) AvailabilityService {
	return NewAvailabilityService(rooms, cal, plans, &config.Config{Log: logger.Nop()})
}

func TestSearch(t *testing.T) {
	deluxe := &model.RoomType{ID: "deluxe", Name: "Deluxe", BasePrice: 850000, IsActive: true}
	suite := &model.RoomType{ID: "suite", Name: "Suite", BasePrice: 2000000, IsActive: true}
	cal := staticCalendar{days: map[string]map[string]*model.InventoryDay{
		"deluxe": {"2024-03-11": {Date: "2024-03-11", Allotment: 2, Rate: 1000000}},
		"suite":  {"2024-03-10": {Date: "2024-03-10", Allotment: 0, Rate: 2000000}},
	}}
	plans := staticPlans{
		{ID: "nr", Name: "Non Refundable", ModifierType: model.ModifierPercent, ModifierValue: -10, IsActive: true},
	}

	results, err := newTestService(staticRooms{deluxe, suite}, cal, plans).Search(context.Background(), "2024-03-10", "2024-03-12")

	require.NoError(t, err)
	require.Len(t, results, 1, "sold out suite is left out")
	got := results[0]
	assert.Equal(t, "deluxe", got.ID)
	assert.Equal(t, 2, got.Nights)
	assert.Equal(t, 1850000.0, got.TotalBase)
	require.Len(t, got.RatePlans, 2)
	assert.Equal(t, model.StandardRatePlanID, got.RatePlans[0].PlanID)
	assert.InDelta(t, 1850000*0.9/2, got.AvailableRate, 0.001)
}

func TestSearchRanges(t *testing.T) {
	svc := newTestService(staticRooms{{ID: "deluxe", BasePrice: 1}}, staticCalendar{}, nil)

	results, err := svc.Search(context.Background(), "2024-03-12", "2024-03-12")
	require.NoError(t, err)
	assert.Empty(t, results)

	_, err = svc.Search(context.Background(), "12/03/2024", "2024-03-13")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeInvalidInput))
}

func TestSearchCalendarFailure(t *testing.T) {
	svc := newTestService(staticRooms{{ID: "deluxe", BasePrice: 1}}, staticCalendar{err: errors.New("timeout")}, nil)

	_, err := svc.Search(context.Background(), "2024-03-10", "2024-03-12")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeInternal))
}
