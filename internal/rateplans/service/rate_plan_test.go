package service

import (
	"context"
	"fmt"
	"testing"

	rateplanserrors "hms/internal/rateplans/errors"
	"hms/internal/rateplans/validator"
	roomserrors "hms/internal/rooms/errors"
	"hms/pkg/config"
	apperrors "hms/pkg/errors"
	"hms/pkg/logger"
	"hms/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockRatePlanRepository struct {
	plans   map[string]*model.RatePlan
	created []*model.RatePlan
	catalog func(roomTypeID string) []*model.RatePlan
}

func newMockRepo(plans ...*model.RatePlan) *mockRatePlanRepository {
	m := &mockRatePlanRepository{plans: map[string]*model.RatePlan{}}
	for _, p := range plans {
		m.plans[p.ID] = p
	}
	return m
}

func (m *mockRatePlanRepository) Create(_ context.Context, plan *model.RatePlan) error {
	plan.ID = fmt.Sprintf("plan-%d", len(m.created)+1)
	m.created = append(m.created, plan)
	m.plans[plan.ID] = plan
	return nil
}

func (m *mockRatePlanRepository) FindByID(_ context.Context, id string) (*model.RatePlan, error) {
	plan, ok := m.plans[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", rateplanserrors.ErrNotFound, id)
	}
	copied := *plan
	return &copied, nil
}

func (m *mockRatePlanRepository) FindCatalog(_ context.Context, roomTypeID string) ([]*model.RatePlan, error) {
	if m.catalog != nil {
		return m.catalog(roomTypeID), nil
	}
	return nil, nil
}

func (m *mockRatePlanRepository) FindAll(context.Context) ([]*model.RatePlan, error) {
	return nil, nil
}

func (m *mockRatePlanRepository) Update(_ context.Context, id string, plan *model.RatePlan) error {
	if _, ok := m.plans[id]; !ok {
		return rateplanserrors.ErrNotFound
	}
	m.plans[id] = plan
	return nil
}

func (m *mockRatePlanRepository) Delete(_ context.Context, id string) error {
	if _, ok := m.plans[id]; !ok {
		return fmt.Errorf("%w: %s", rateplanserrors.ErrNotFound, id)
	}
	delete(m.plans, id)
	return nil
}

type roomLookup map[string]*model.RoomType

func (l roomLookup) FindByID(_ context.Context, id string) (*model.RoomType, error) {
	if room, ok := l[id]; ok {
		return room, nil
	}
	return nil, fmt.Errorf("%w: %s", roomserrors.ErrNotFound, id)
}

func newTestService(repo *mockRatePlanRepository) RatePlanService {
	log := logger.Nop()
	return NewRatePlanService(repo, roomLookup{"deluxe": {ID: "deluxe"}}, validator.NewRatePlanValidator(log), &config.Config{Log: log})
}

func strPtr(s string) *string { return &s }

func TestCreate(t *testing.T) {
	tests := []struct {
		name     string
		plan     model.RatePlan
		wantCode string
	}{
		{
			name: "global percent plan",
			plan: model.RatePlan{Name: "Non Refundable", ModifierType: "percent", ModifierValue: -10, IsActive: true},
		},
		{
			name: "scoped plan",
			plan: model.RatePlan{Name: "Breakfast", ModifierType: "absolute_add", ModifierValue: 150000, RoomTypeID: strPtr("deluxe")},
		},
		{
			name:     "unknown modifier",
			plan:     model.RatePlan{Name: "Weird", ModifierType: "multiply", ModifierValue: 2},
			wantCode: apperrors.CodeValidation,
		},
		{
			name:     "percent below -100",
			plan:     model.RatePlan{Name: "Free", ModifierType: "percent", ModifierValue: -150},
			wantCode: apperrors.CodeValidation,
		},
		{
			name:     "unknown room scope",
			plan:     model.RatePlan{Name: "Ghost", ModifierType: "percent", ModifierValue: 5, RoomTypeID: strPtr("ghost")},
			wantCode: apperrors.CodeValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMockRepo()
			svc := newTestService(repo)

			plan := tt.plan
			err := svc.Create(context.Background(), &plan)

			if tt.wantCode != "" {
				require.Error(t, err)
				assert.True(t, apperrors.HasCode(err, tt.wantCode), "got %v", err)
				assert.Empty(t, repo.created)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, plan.ID)
		})
	}
}

func TestCreateTreatsBlankRoomScopeAsGlobal(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)

	plan := model.RatePlan{Name: "  Long   Stay ", ModifierType: "PERCENT", ModifierValue: -5, RoomTypeID: strPtr("  ")}
	require.NoError(t, svc.Create(context.Background(), &plan))

	assert.Nil(t, plan.RoomTypeID)
	assert.Equal(t, "Long Stay", plan.Name)
	assert.Equal(t, model.ModifierPercent, plan.ModifierType)
}

func TestUpdateMergesFields(t *testing.T) {
	repo := newMockRepo(&model.RatePlan{
		ID: "p1", Name: "Breakfast", ModifierType: "absolute_add", ModifierValue: 100000, IsActive: true, CreatedAt: "2024-01-01T00:00:00Z",
	})
	svc := newTestService(repo)

	value := 125000.0
	inactive := false
	plan, err := svc.Update(context.Background(), "p1", &model.RatePlanUpdate{ModifierValue: &value, IsActive: &inactive})

	require.NoError(t, err)
	assert.Equal(t, "Breakfast", plan.Name)
	assert.Equal(t, 125000.0, plan.ModifierValue)
	assert.False(t, plan.IsActive)
	assert.Equal(t, "2024-01-01T00:00:00Z", plan.CreatedAt)

	_, err = svc.Update(context.Background(), "missing", &model.RatePlanUpdate{})
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))
}

func TestDeleteMissing(t *testing.T) {
	svc := newTestService(newMockRepo())
	err := svc.Delete(context.Background(), "missing")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))
}

func TestCatalogTrimsRoomFilter(t *testing.T) {
	var got string
	repo := newMockRepo()
	repo.catalog = func(roomTypeID string) []*model.RatePlan {
		got = roomTypeID
		return []*model.RatePlan{{ID: "p1"}}
	}
	svc := newTestService(repo)

	plans, err := svc.Catalog(context.Background(), " deluxe ")
	require.NoError(t, err)
	assert.Len(t, plans, 1)
	assert.Equal(t, "deluxe", got)
}
