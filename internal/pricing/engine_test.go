package pricing

import (
	"testing"
	"time"

	"hms/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func strPtr(s string) *string { return &s }

func deluxe() *model.RoomType {
	return &model.RoomType{ID: "deluxe", Name: "Deluxe", BasePrice: 850000, IsActive: true}
}

func TestApplyModifier(t *testing.T) {
	tests := []struct {
		name     string
		modifier string
		value    float64
		nights   int
		want     float64
	}{
		{"percent discount", model.ModifierPercent, -10, 3, 270},
		{"percent surcharge", model.ModifierPercent, 20, 3, 360},
		{"per night add", model.ModifierAbsoluteAdd, 50000, 3, 300 + 150000},
		{"per night subtract", model.ModifierAbsoluteAdd, -50, 3, 150},
		{"whole stay add", model.ModifierAbsoluteTotal, 75000, 3, 300 + 75000},
		{"unknown modifier", "multiply", 2, 3, 300},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ApplyModifier(300, tt.nights, tt.modifier, tt.value), 1e-9)
		})
	}
}

func TestQuoteStayBasePriceOnly(t *testing.T) {
	q := QuoteStay(deluxe(), day("2024-03-01"), day("2024-03-03"), nil, nil)

	require.True(t, q.Available)
	assert.Equal(t, 2, q.Nights)
	assert.Equal(t, 1700000.0, q.TotalBase)
	require.Len(t, q.Candidates, 1)
	assert.Equal(t, model.StandardRatePlanID, q.Candidates[0].PlanID)
	assert.Equal(t, StandardPlanName, q.Candidates[0].Name)
	assert.Equal(t, 850000.0, q.Candidates[0].NightlyPrice)
	assert.Equal(t, []string{ConditionFreeCancellation}, q.Candidates[0].Conditions)
}

func TestQuoteStayUsesCalendarRate(t *testing.T) {
	days := map[string]*model.InventoryDay{
		"2024-03-02": {RoomTypeID: "deluxe", Date: "2024-03-02", Allotment: 3, Rate: 1000000},
	}

	q := QuoteStay(deluxe(), day("2024-03-01"), day("2024-03-03"), days, nil)

	require.True(t, q.Available)
	assert.Equal(t, 1850000.0, q.TotalBase)
}

func TestQuoteStayBlockedNight(t *testing.T) {
	tests := []struct {
		name string
		day  *model.InventoryDay
	}{
		{"closed", &model.InventoryDay{Date: "2024-03-02", Allotment: 4, Rate: 1, IsClosed: true}},
		{"sold out", &model.InventoryDay{Date: "2024-03-02", Allotment: 0, Rate: 1}},
		{"negative allotment", &model.InventoryDay{Date: "2024-03-02", Allotment: -1, Rate: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			days := map[string]*model.InventoryDay{tt.day.Date: tt.day}
			q := QuoteStay(deluxe(), day("2024-03-01"), day("2024-03-04"), days, nil)

			assert.False(t, q.Available)
			assert.Equal(t, "2024-03-02", q.UnavailableDate)
			assert.Empty(t, q.Candidates)
			assert.Zero(t, q.MinNightly())
		})
	}
}

func TestQuoteStayEmptyRange(t *testing.T) {
	for _, out := range []string{"2024-03-01", "2024-02-27"} {
		q := QuoteStay(deluxe(), day("2024-03-01"), day(out), nil, nil)
		assert.False(t, q.Available)
		assert.LessOrEqual(t, q.Nights, 0)
		assert.Empty(t, q.Candidates)
	}
}

func TestQuoteStayRatePlans(t *testing.T) {
	plans := []*model.RatePlan{
		{ID: "nr", Name: "Non refundable", ModifierType: model.ModifierPercent, ModifierValue: -10, IsActive: true, Conditions: []string{"non-refundable"}},
		{ID: "bf", Name: "Breakfast", ModifierType: model.ModifierAbsoluteAdd, ModifierValue: 50000, IsActive: true, RoomTypeID: strPtr("deluxe")},
		{ID: "other", Name: "Suite only", ModifierType: model.ModifierAbsoluteTotal, ModifierValue: 1, IsActive: true, RoomTypeID: strPtr("suite")},
		{ID: "off", Name: "Inactive", ModifierType: model.ModifierPercent, ModifierValue: -50, IsActive: false},
	}

	q := QuoteStay(deluxe(), day("2024-03-01"), day("2024-03-03"), nil, plans)

	require.Len(t, q.Candidates, 3)
	assert.Equal(t, []string{"standard", "nr", "bf"}, []string{q.Candidates[0].PlanID, q.Candidates[1].PlanID, q.Candidates[2].PlanID})
	assert.InDelta(t, 1530000, q.Candidates[1].TotalPrice, 1e-6)
	assert.InDelta(t, 765000, q.Candidates[1].NightlyPrice, 1e-6)
	assert.InDelta(t, 1800000, q.Candidates[2].TotalPrice, 1e-6)
	assert.NotNil(t, q.Candidates[2].Conditions)
	assert.InDelta(t, 765000, q.MinNightly(), 1e-6)
}

func TestQuoteStayIsDeterministic(t *testing.T) {
	days := map[string]*model.InventoryDay{
		"2024-03-01": {Date: "2024-03-01", Allotment: 2, Rate: 900000},
	}
	plans := []*model.RatePlan{{ID: "p", Name: "P", ModifierType: model.ModifierPercent, ModifierValue: 5, IsActive: true}}

	first := QuoteStay(deluxe(), day("2024-03-01"), day("2024-03-04"), days, plans)
	second := QuoteStay(deluxe(), day("2024-03-01"), day("2024-03-04"), days, plans)

	assert.Equal(t, first, second)
	assert.Equal(t, 2, days["2024-03-01"].Allotment)
}
