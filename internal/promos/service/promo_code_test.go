package service

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	promoerrors "hms/internal/promos/errors"
	"hms/internal/promos/validator"
	"hms/pkg/config"
	apperrors "hms/pkg/errors"
	"hms/pkg/logger"
	"hms/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockPromoCodeRepository struct {
	byID map[string]*model.PromoCode
}

func newMockRepo(promos ...*model.PromoCode) *mockPromoCodeRepository {
	m := &mockPromoCodeRepository{byID: map[string]*model.PromoCode{}}
	for _, p := range promos {
		m.byID[p.ID] = p
	}
	return m
}

func (m *mockPromoCodeRepository) Create(_ context.Context, promo *model.PromoCode) error {
	for _, p := range m.byID {
		if p.Code == promo.Code {
			return fmt.Errorf("%w: %s", promoerrors.ErrDuplicateCode, promo.Code)
		}
	}
	promo.ID = fmt.Sprintf("promo-%d", len(m.byID)+1)
	m.byID[promo.ID] = promo
	return nil
}

func (m *mockPromoCodeRepository) FindByID(_ context.Context, id string) (*model.PromoCode, error) {
	p, ok := m.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", promoerrors.ErrNotFound, id)
	}
	copied := *p
	return &copied, nil
}

func (m *mockPromoCodeRepository) FindActiveByCode(_ context.Context, code string) (*model.PromoCode, error) {
	for _, p := range m.byID {
		if p.Code == code && p.IsActive {
			copied := *p
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", promoerrors.ErrNotFound, code)
}

func (m *mockPromoCodeRepository) FindAll(context.Context) ([]*model.PromoCode, error) {
	return nil, nil
}

func (m *mockPromoCodeRepository) Update(_ context.Context, id string, promo *model.PromoCode) error {
	m.byID[id] = promo
	return nil
}

func (m *mockPromoCodeRepository) Delete(context.Context, string) error { return nil }

func (m *mockPromoCodeRepository) Redeem(context.Context, string) error { return nil }

func (m *mockPromoCodeRepository) Release(context.Context, string) error { return nil }

func newTestService(repo *mockPromoCodeRepository, now time.Time) PromoCodeService {
	log := logger.Nop()
	svc := NewPromoCodeService(repo, validator.NewPromoCodeValidator(log), &config.Config{Log: log}).(*promoCodeService)
	svc.now = func() time.Time { return now }
	return svc
}

func weekendPromo() *model.PromoCode {
	return &model.PromoCode{
		ID:            "p1",
		Code:          "WEEKEND",
		DiscountType:  model.DiscountPercent,
		DiscountValue: 15,
		MaxUsage:      10,
		CurrentUsage:  3,
		RoomTypeIDs:   []string{"deluxe"},
		ValidDays:     []int{0, 6},
		ValidFrom:     "2024-01-01T00:00:00Z",
		ValidUntil:    "2024-12-31T23:59:59Z",
		IsActive:      true,
	}
}

func TestVerify(t *testing.T) {
	now := time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		req         model.PromoVerifyRequest
		mutate      func(*model.PromoCode)
		wantStatus  int
		wantMessage string
	}{
		{name: "saturday check-in", req: model.PromoVerifyRequest{Code: " weekend ", CheckIn: "2024-01-06"}, wantMessage: "Promo code applied!"},
		{name: "no check-in skips weekday", req: model.PromoVerifyRequest{Code: "WEEKEND"}, wantMessage: "Promo code applied!"},
		{name: "empty code", req: model.PromoVerifyRequest{Code: "  "}, wantStatus: http.StatusBadRequest, wantMessage: "Promo code is required"},
		{name: "unknown code", req: model.PromoVerifyRequest{Code: "NOPE"}, wantStatus: http.StatusNotFound, wantMessage: "Invalid promo code"},
		{
			name: "inactive code", req: model.PromoVerifyRequest{Code: "WEEKEND"},
			mutate:     func(p *model.PromoCode) { p.IsActive = false },
			wantStatus: http.StatusNotFound, wantMessage: "Invalid promo code",
		},
		{
			name: "expired", req: model.PromoVerifyRequest{Code: "WEEKEND"},
			mutate:     func(p *model.PromoCode) { p.ValidUntil = "2024-01-01T12:00:00Z" },
			wantStatus: http.StatusBadRequest, wantMessage: "Promo code is expired or not yet valid",
		},
		{
			name: "used up", req: model.PromoVerifyRequest{Code: "WEEKEND"},
			mutate:     func(p *model.PromoCode) { p.CurrentUsage = p.MaxUsage },
			wantStatus: http.StatusBadRequest, wantMessage: "Promo code usage limit reached",
		},
		{
			name: "weekday check-in", req: model.PromoVerifyRequest{Code: "WEEKEND", CheckIn: "2024-01-08"},
			wantStatus: http.StatusBadRequest, wantMessage: "Promo code not valid for this check-in day",
		},
		{
			name: "wrong room", req: model.PromoVerifyRequest{Code: "WEEKEND", RoomTypeID: "suite"},
			wantStatus: http.StatusBadRequest, wantMessage: "Promo code not valid for this room type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			promo := weekendPromo()
			if tt.mutate != nil {
				tt.mutate(promo)
			}
			svc := newTestService(newMockRepo(promo), now)

			resp, err := svc.Verify(context.Background(), &tt.req)

			if tt.wantStatus == 0 {
				require.NoError(t, err)
				assert.True(t, resp.Valid)
				assert.Equal(t, "WEEKEND", resp.Code)
				assert.Equal(t, tt.wantMessage, resp.Message)
				assert.Equal(t, []string{"deluxe"}, resp.RoomTypeIDs)
				return
			}
			appErr := apperrors.AsAppError(err)
			assert.Equal(t, tt.wantStatus, appErr.StatusCode())
			assert.Equal(t, tt.wantMessage, appErr.Message)
			assert.Equal(t, apperrors.CodePromoInvalid, appErr.Code)
		})
	}
}

func TestCreateNormalizesAndRejectsDuplicates(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo, time.Now())

	promo := &model.PromoCode{
		Code:          " summer24 ",
		DiscountType:  "Fixed",
		DiscountValue: 100000,
		MaxUsage:      50,
		CurrentUsage:  7,
		ValidFrom:     "2024-06-01T00:00",
		ValidUntil:    "2024-08-31",
		IsActive:      true,
	}
	require.NoError(t, svc.Create(context.Background(), promo))
	assert.Equal(t, "SUMMER24", promo.Code)
	assert.Equal(t, model.DiscountFixed, promo.DiscountType)
	assert.Zero(t, promo.CurrentUsage)
	assert.Equal(t, "2024-06-01T00:00:00Z", promo.ValidFrom)
	assert.Equal(t, "2024-08-31T00:00:00Z", promo.ValidUntil)

	dup := *promo
	dup.ID = ""
	err := svc.Create(context.Background(), &dup)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeConflict))
}

func TestCreateValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*model.PromoCode)
	}{
		{"percent over 100", func(p *model.PromoCode) { p.DiscountValue = 120 }},
		{"window reversed", func(p *model.PromoCode) { p.ValidFrom, p.ValidUntil = "2024-12-31T00:00:00Z", "2024-01-01T00:00:00Z" }},
		{"bad weekday", func(p *model.PromoCode) { p.ValidDays = []int{7} }},
		{"unknown discount type", func(p *model.PromoCode) { p.DiscountType = "bogo" }},
		{"zero max usage", func(p *model.PromoCode) { p.MaxUsage = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			promo := weekendPromo()
			promo.ID = ""
			tt.mutate(promo)

			err := newTestService(newMockRepo(), time.Now()).Create(context.Background(), promo)
			assert.True(t, apperrors.HasCode(err, apperrors.CodeValidation), "got %v", err)
		})
	}
}

func TestUpdateKeepsUsage(t *testing.T) {
	repo := newMockRepo(weekendPromo())
	svc := newTestService(repo, time.Now())

	maxUsage := 20
	promo, err := svc.Update(context.Background(), "p1", &model.PromoCodeUpdate{MaxUsage: &maxUsage})

	require.NoError(t, err)
	assert.Equal(t, 20, promo.MaxUsage)
	assert.Equal(t, 3, promo.CurrentUsage)

	_, err = svc.Update(context.Background(), "missing", &model.PromoCodeUpdate{})
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))
}
