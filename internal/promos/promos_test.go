package promos

import (
	"testing"
	"time"

	promoerrors "hms/internal/promos/errors"
	"hms/pkg/model"

	"github.com/stretchr/testify/assert"
)

func date(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

func basePromo() *model.PromoCode {
	return &model.PromoCode{
		Code:          "WEEKEND",
		DiscountType:  model.DiscountPercent,
		DiscountValue: 10,
		MaxUsage:      5,
		ValidFrom:     "2024-01-01T00:00:00Z",
		ValidUntil:    "2024-12-31T23:59:59Z",
		IsActive:      true,
	}
}

func TestEvaluate(t *testing.T) {
	now := time.Date(2024, 1, 3, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		mutate func(*model.PromoCode)
		stay   Stay
		now    time.Time
		want   error
	}{
		{"no restrictions", func(*model.PromoCode) {}, Stay{RoomTypeID: "deluxe", CheckIn: date("2024-01-08")}, now, nil},
		{"saturday allowed", func(p *model.PromoCode) { p.ValidDays = []int{0, 6} }, Stay{CheckIn: date("2024-01-06")}, now, nil},
		{"sunday allowed", func(p *model.PromoCode) { p.ValidDays = []int{0, 6} }, Stay{CheckIn: date("2024-01-07")}, now, nil},
		{"weekday rejected", func(p *model.PromoCode) { p.ValidDays = []int{0, 6} }, Stay{CheckIn: date("2024-01-08")}, now, promoerrors.ErrDayNotEligible},
		{"weekday skipped without check-in", func(p *model.PromoCode) { p.ValidDays = []int{0, 6} }, Stay{}, now, nil},
		{"before window", func(*model.PromoCode) {}, Stay{}, date("2023-12-31"), promoerrors.ErrOutsideWindow},
		{"after window", func(*model.PromoCode) {}, Stay{}, date("2025-01-01"), promoerrors.ErrOutsideWindow},
		{"zone-less window", func(p *model.PromoCode) { p.ValidUntil = "2024-01-03T13:00" }, Stay{}, now, nil},
		{"unparseable window", func(p *model.PromoCode) { p.ValidFrom = "soon" }, Stay{}, now, promoerrors.ErrOutsideWindow},
		{"at capacity", func(p *model.PromoCode) { p.MaxUsage, p.CurrentUsage = 1, 1 }, Stay{}, now, promoerrors.ErrCapacityReached},
		{"other room", func(p *model.PromoCode) { p.RoomTypeIDs = []string{"suite"} }, Stay{RoomTypeID: "deluxe"}, now, promoerrors.ErrRoomNotEligible},
		{"room skipped without room", func(p *model.PromoCode) { p.RoomTypeIDs = []string{"suite"} }, Stay{}, now, nil},
		{
			"window checked before capacity",
			func(p *model.PromoCode) { p.MaxUsage, p.CurrentUsage = 1, 1 },
			Stay{}, date("2025-06-01"), promoerrors.ErrOutsideWindow,
		},
		{
			"room checked before day",
			func(p *model.PromoCode) { p.RoomTypeIDs = []string{"suite"}; p.ValidDays = []int{6} },
			Stay{RoomTypeID: "deluxe", CheckIn: date("2024-01-08")}, now, promoerrors.ErrRoomNotEligible,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := basePromo()
			tt.mutate(p)

			v := Evaluate(p, tt.stay, tt.now)

			if tt.want == nil {
				assert.True(t, v.Valid)
				assert.NoError(t, v.Reason)
				return
			}
			assert.False(t, v.Valid)
			assert.ErrorIs(t, v.Reason, tt.want)
		})
	}
}

func TestDiscountFixedCappedAtTotal(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		total float64
		want  float64
	}{
		{"below total", 250000, 1700000, 250000},
		{"equal to total", 1700000, 1700000, 1700000},
		{"above total", 2000000, 1700000, 1700000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &model.PromoCode{DiscountType: model.DiscountFixed, DiscountValue: tt.value}
			discount := Discount(p, tt.total)
			assert.Equal(t, tt.want, discount)
			assert.GreaterOrEqual(t, tt.total-discount, 0.0)
		})
	}
}

func TestDiscount(t *testing.T) {
	p := basePromo()
	assert.Equal(t, 170000.0, Discount(p, 1700000))

	p.DiscountType, p.DiscountValue = model.DiscountFixed, 250000
	assert.Equal(t, 250000.0, Discount(p, 1700000))
	assert.Equal(t, 100000.0, Discount(p, 100000))

	p.DiscountType = "bogus"
	assert.Zero(t, Discount(p, 1700000))
}
