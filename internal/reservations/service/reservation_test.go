package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	inventoryerrors "hms/internal/inventory/errors"
	inventoryrepo "hms/internal/inventory/repository"
	promoerrors "hms/internal/promos/errors"
	rateplanserrors "hms/internal/rateplans/errors"
	reservationserrors "hms/internal/reservations/errors"
	"hms/internal/reservations/validator"
	roomserrors "hms/internal/rooms/errors"
	"hms/pkg/config"
	apperrors "hms/pkg/errors"
	"hms/pkg/logger"
	"hms/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)

type mockReservationRepository struct {
	mu         sync.Mutex
	created    []*model.Reservation
	duplicates int
	createErr  error
	statuses   map[string]string
}

func (m *mockReservationRepository) Create(_ context.Context, reservation *model.Reservation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	if m.duplicates > 0 {
		m.duplicates--
		return fmt.Errorf("%w: %s", reservationserrors.ErrDuplicateBookingCode, reservation.BookingCode)
	}
	reservation.ID = fmt.Sprintf("res-%d", len(m.created)+1)
	copied := *reservation
	m.created = append(m.created, &copied)
	return nil
}

func (m *mockReservationRepository) FindByID(_ context.Context, id string) (*model.Reservation, error) {
	for _, r := range m.created {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", reservationserrors.ErrNotFound, id)
}

func (m *mockReservationRepository) FindByGuest(_ context.Context, bookingCode, email string, _ int) ([]*model.Reservation, error) {
	var out []*model.Reservation
	for _, r := range m.created {
		if (bookingCode == "" || r.BookingCode == bookingCode) && (email == "" || r.GuestEmail == email) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockReservationRepository) Find(context.Context, model.ReservationFilter) ([]*model.Reservation, error) {
	return m.created, nil
}

func (m *mockReservationRepository) UpdateStatus(_ context.Context, id, status string) error {
	if _, err := m.FindByID(context.Background(), id); err != nil {
		return err
	}
	if m.statuses == nil {
		m.statuses = map[string]string{}
	}
	m.statuses[id] = status
	return nil
}

func (m *mockReservationRepository) Delete(_ context.Context, id string) error {
	_, err := m.FindByID(context.Background(), id)
	return err
}

type roomLookup map[string]*model.RoomType

func (l roomLookup) FindByID(_ context.Context, id string) (*model.RoomType, error) {
	if room, ok := l[id]; ok {
		return room, nil
	}
	return nil, fmt.Errorf("%w: %s", roomserrors.ErrNotFound, id)
}

// fakeCalendar is a single-room calendar keyed by date.
type fakeCalendar struct {
	mu         sync.Mutex
	days       map[string]*model.InventoryDay
	loseRace   string
	decrements []string
	increments []string
}

func newCalendar(days ...*model.InventoryDay) *fakeCalendar {
	c := &fakeCalendar{days: map[string]*model.InventoryDay{}}
	for _, d := range days {
		c.days[d.Date] = d
	}
	return c
}

func (c *fakeCalendar) FindRange(_ context.Context, _, from, to string) (map[string]*model.InventoryDay, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := map[string]*model.InventoryDay{}
	for date, day := range c.days {
		if date >= from && date < to {
			copied := *day
			out[date] = &copied
		}
	}
	return out, nil
}

func (c *fakeCalendar) DecrementAllotment(_ context.Context, roomTypeID, date string, defaults inventoryrepo.DayDefaults) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if date == c.loseRace {
		return inventoryerrors.ErrUnavailable
	}
	day, ok := c.days[date]
	if !ok {
		day = &model.InventoryDay{RoomTypeID: roomTypeID, Date: date, Allotment: defaults.Allotment, Rate: defaults.Rate}
		c.days[date] = day
	}
	if !day.Sellable() {
		return inventoryerrors.ErrUnavailable
	}
	day.Allotment--
	c.decrements = append(c.decrements, date)
	return nil
}

func (c *fakeCalendar) IncrementAllotment(_ context.Context, _, date string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.days[date].Allotment++
	c.increments = append(c.increments, date)
	return nil
}

func (c *fakeCalendar) allotment(date string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.days[date].Allotment
}

type planLookup map[string]*model.RatePlan

func (l planLookup) FindByID(_ context.Context, id string) (*model.RatePlan, error) {
	if plan, ok := l[id]; ok {
		return plan, nil
	}
	return nil, fmt.Errorf("%w: %s", rateplanserrors.ErrNotFound, id)
}

type fakePromoLedger struct {
	mu       sync.Mutex
	promos   map[string]*model.PromoCode
	released int
}

func newLedger(promos ...*model.PromoCode) *fakePromoLedger {
	l := &fakePromoLedger{promos: map[string]*model.PromoCode{}}
	for _, p := range promos {
		l.promos[p.Code] = p
	}
	return l
}

func (l *fakePromoLedger) FindActiveByCode(_ context.Context, code string) (*model.PromoCode, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if p, ok := l.promos[code]; ok && p.IsActive {
		copied := *p
		return &copied, nil
	}
	return nil, fmt.Errorf("%w: %s", promoerrors.ErrNotFound, code)
}

func (l *fakePromoLedger) Redeem(_ context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, p := range l.promos {
		if p.ID == id {
			if p.CurrentUsage >= p.MaxUsage {
				return promoerrors.ErrCapacityReached
			}
			p.CurrentUsage++
			return nil
		}
	}
	return promoerrors.ErrNotFound
}

func (l *fakePromoLedger) Release(_ context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, p := range l.promos {
		if p.ID == id && p.CurrentUsage > 0 {
			p.CurrentUsage--
			l.released++
		}
	}
	return nil
}

func (l *fakePromoLedger) usage(code string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.promos[code].CurrentUsage
}

type recordingNotifier struct {
	mu       sync.Mutex
	notified []string
}

func (n *recordingNotifier) ReservationCreated(_ context.Context, reservation *model.Reservation) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notified = append(n.notified, reservation.BookingCode)
}

type confirmationFunc func(ctx context.Context, reservation *model.Reservation) error

func (f confirmationFunc) SendReservationConfirmation(ctx context.Context, reservation *model.Reservation) error {
	return f(ctx, reservation)
}

type fixture struct {
	repo     *mockReservationRepository
	calendar *fakeCalendar
	ledger   *fakePromoLedger
	notifier *recordingNotifier
	plans    planLookup
	sent     []string
	sendErr  error
}

func deluxe() *model.RoomType {
	return &model.RoomType{ID: "deluxe", Name: "Deluxe Room", BasePrice: 850000, IsActive: true}
}

func newFixture(calendar *fakeCalendar, ledger *fakePromoLedger) *fixture {
	return &fixture{
		repo:     &mockReservationRepository{},
		calendar: calendar,
		ledger:   ledger,
		notifier: &recordingNotifier{},
		plans:    planLookup{},
	}
}

func (f *fixture) service() *reservationService {
	log := logger.Nop()
	cfg := &config.Config{
		Log:               log,
		WriteTimeout:      time.Second,
		DefaultAllotment:  5,
		BookingCodePrefix: "SGH",
	}
	svc := NewReservationService(Dependencies{
		Repo:     f.repo,
		Rooms:    roomLookup{"deluxe": deluxe(), "retired": {ID: "retired", BasePrice: 1, IsActive: false}},
		Calendar: f.calendar,
		Plans:    f.plans,
		Promos:   f.ledger,
		Notifier: f.notifier,
		Confirmations: confirmationFunc(func(_ context.Context, r *model.Reservation) error {
			f.sent = append(f.sent, r.GuestEmail)
			return f.sendErr
		}),
		Validator: validator.NewReservationValidator(log),
	}, cfg).(*reservationService)
	svc.now = func() time.Time { return testNow }
	return svc
}

func booking(checkIn, checkOut string) *model.ReservationRequest {
	return &model.ReservationRequest{
		GuestName:  "  Budi   Santoso ",
		GuestEmail: "Budi@Example.com",
		GuestPhone: "0812 3456 7890",
		RoomTypeID: "deluxe",
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		Guests:     2,
	}
}

func weekendPromo() *model.PromoCode {
	return &model.PromoCode{
		ID:            "p1",
		Code:          "WEEKEND10",
		DiscountType:  model.DiscountPercent,
		DiscountValue: 10,
		MaxUsage:      10,
		ValidDays:     []int{0, 6},
		ValidFrom:     "2023-01-01T00:00:00Z",
		ValidUntil:    "2030-01-01T00:00:00Z",
		IsActive:      true,
	}
}

func TestCreatePricesFromBasePrice(t *testing.T) {
	f := newFixture(newCalendar(), newLedger())

	reservation, err := f.service().Create(context.Background(), booking("2024-01-10", "2024-01-12"))
	require.NoError(t, err)

	assert.Equal(t, 1700000.0, reservation.TotalAmount)
	assert.Equal(t, 0.0, reservation.DiscountAmount)
	assert.Equal(t, 850000.0, reservation.RatePerNight)
	assert.Equal(t, 2, reservation.Nights)
	assert.Equal(t, model.StatusPending, reservation.Status)
	assert.Equal(t, model.StandardRatePlanID, reservation.RatePlanID)
	assert.Equal(t, "Room Only", reservation.RatePlanName)
	assert.Equal(t, "Deluxe Room", reservation.RoomTypeName)
	assert.Equal(t, "Budi Santoso", reservation.GuestName)
	assert.Equal(t, "budi@example.com", reservation.GuestEmail)
	assert.Equal(t, "+6281234567890", reservation.GuestPhone)
	assert.Regexp(t, `^SGH-20240102-[0-9A-F]{6}$`, reservation.BookingCode)

	assert.Equal(t, []string{"2024-01-10", "2024-01-11"}, f.calendar.decrements)
	assert.Equal(t, 4, f.calendar.allotment("2024-01-10"))
	assert.Equal(t, []string{reservation.BookingCode}, f.notifier.notified)
	require.Len(t, f.repo.created, 1)
}

func TestCreateUsesCalendarRates(t *testing.T) {
	calendar := newCalendar(&model.InventoryDay{RoomTypeID: "deluxe", Date: "2024-01-11", Allotment: 3, Rate: 1000000})
	f := newFixture(calendar, newLedger())

	reservation, err := f.service().Create(context.Background(), booking("2024-01-10", "2024-01-12"))
	require.NoError(t, err)

	assert.Equal(t, 1850000.0, reservation.TotalAmount)
	assert.Equal(t, 925000.0, reservation.RatePerNight)
	assert.Equal(t, 2, calendar.allotment("2024-01-11"))
}

func TestCreateUnknownRoomWritesNothing(t *testing.T) {
	for _, roomID := range []string{"missing", "retired"} {
		t.Run(roomID, func(t *testing.T) {
			f := newFixture(newCalendar(), newLedger())
			req := booking("2024-01-10", "2024-01-12")
			req.RoomTypeID = roomID

			_, err := f.service().Create(context.Background(), req)

			assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))
			assert.Empty(t, f.calendar.decrements)
			assert.Empty(t, f.repo.created)
			assert.Empty(t, f.notifier.notified)
		})
	}
}

func TestCreateRejectsBadDates(t *testing.T) {
	tests := []struct {
		name     string
		checkIn  string
		checkOut string
		wantCode string
	}{
		{"malformed check-in", "10/01/2024", "2024-01-12", apperrors.CodeInvalidInput},
		{"same day", "2024-01-10", "2024-01-10", apperrors.CodeInvalidRange},
		{"reversed", "2024-01-12", "2024-01-10", apperrors.CodeInvalidRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(newCalendar(), newLedger())

			_, err := f.service().Create(context.Background(), booking(tt.checkIn, tt.checkOut))

			assert.True(t, apperrors.HasCode(err, tt.wantCode), "got %v", err)
			assert.Equal(t, 400, apperrors.AsAppError(err).StatusCode())
			assert.Empty(t, f.repo.created)
		})
	}
}

func TestCreateValidation(t *testing.T) {
	f := newFixture(newCalendar(), newLedger())
	req := booking("2024-01-10", "2024-01-12")
	req.GuestEmail = "not-an-email"
	req.Guests = 0

	_, err := f.service().Create(context.Background(), req)

	require.True(t, apperrors.HasCode(err, apperrors.CodeValidation))
	assert.Equal(t, 422, apperrors.AsAppError(err).StatusCode())
}

func TestCreateClosedNightIsUnavailable(t *testing.T) {
	calendar := newCalendar(&model.InventoryDay{RoomTypeID: "deluxe", Date: "2024-01-11", Allotment: 3, Rate: 900000, IsClosed: true})
	f := newFixture(calendar, newLedger())

	_, err := f.service().Create(context.Background(), booking("2024-01-10", "2024-01-12"))

	require.True(t, apperrors.HasCode(err, apperrors.CodeRoomUnavailable))
	assert.Equal(t, "2024-01-11", apperrors.AsAppError(err).Details["date"])
	assert.Empty(t, calendar.decrements)
}

func TestCreateRollsBackTakenNights(t *testing.T) {
	calendar := newCalendar(
		&model.InventoryDay{RoomTypeID: "deluxe", Date: "2024-01-10", Allotment: 2, Rate: 850000},
		&model.InventoryDay{RoomTypeID: "deluxe", Date: "2024-01-11", Allotment: 2, Rate: 850000},
		&model.InventoryDay{RoomTypeID: "deluxe", Date: "2024-01-12", Allotment: 1, Rate: 850000},
	)
	calendar.loseRace = "2024-01-12"
	f := newFixture(calendar, newLedger())

	_, err := f.service().Create(context.Background(), booking("2024-01-10", "2024-01-13"))

	require.True(t, apperrors.HasCode(err, apperrors.CodeRoomUnavailable))
	assert.Equal(t, 409, apperrors.AsAppError(err).StatusCode())
	assert.Equal(t, []string{"2024-01-10", "2024-01-11"}, calendar.decrements)
	assert.Equal(t, []string{"2024-01-10", "2024-01-11"}, calendar.increments)
	assert.Equal(t, 2, calendar.allotment("2024-01-10"))
	assert.Equal(t, 2, calendar.allotment("2024-01-11"))
	assert.Empty(t, f.repo.created)
}

func TestCreateWithRatePlan(t *testing.T) {
	f := newFixture(newCalendar(), newLedger())
	deluxeID := "deluxe"
	f.plans["member"] = &model.RatePlan{ID: "member", Name: "Member Rate", ModifierType: model.ModifierPercent, ModifierValue: -10, IsActive: true, RoomTypeID: &deluxeID}
	f.plans["breakfast"] = &model.RatePlan{ID: "breakfast", Name: "Breakfast", ModifierType: model.ModifierAbsoluteAdd, ModifierValue: 150000, IsActive: true}

	reservation, err := f.service().Create(context.Background(), withPlan(booking("2024-01-10", "2024-01-12"), "member"))
	require.NoError(t, err)
	assert.Equal(t, 1530000.0, reservation.TotalAmount)
	assert.Equal(t, "Member Rate", reservation.RatePlanName)
	assert.Equal(t, 765000.0, reservation.RatePerNight)

	reservation, err = f.service().Create(context.Background(), withPlan(booking("2024-01-10", "2024-01-12"), "breakfast"))
	require.NoError(t, err)
	assert.Equal(t, 2000000.0, reservation.TotalAmount)
}

func TestCreateRejectsUnusableRatePlan(t *testing.T) {
	otherRoom := "suite"
	plans := planLookup{
		"inactive": {ID: "inactive", ModifierType: model.ModifierPercent, ModifierValue: -5},
		"suite":    {ID: "suite", ModifierType: model.ModifierPercent, ModifierValue: -5, IsActive: true, RoomTypeID: &otherRoom},
	}

	for _, planID := range []string{"missing", "inactive", "suite"} {
		t.Run(planID, func(t *testing.T) {
			f := newFixture(newCalendar(), newLedger())
			f.plans = plans

			_, err := f.service().Create(context.Background(), withPlan(booking("2024-01-10", "2024-01-12"), planID))

			require.True(t, apperrors.HasCode(err, apperrors.CodeInvalidRatePlan))
			assert.Empty(t, f.calendar.decrements)
		})
	}
}

func TestCreatePromoDayRestriction(t *testing.T) {
	tests := []struct {
		name         string
		checkIn      string
		checkOut     string
		wantDiscount float64
		wantUsage    int
	}{
		// 2024-01-06 is a Saturday, 2024-01-07 a Sunday.
		{"saturday check-in", "2024-01-06", "2024-01-08", 170000, 1},
		{"sunday check-in", "2024-01-07", "2024-01-09", 170000, 1},
		{"monday check-in", "2024-01-08", "2024-01-10", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledger := newLedger(weekendPromo())
			f := newFixture(newCalendar(), ledger)
			req := booking(tt.checkIn, tt.checkOut)
			req.PromoCode = " weekend10 "

			reservation, err := f.service().Create(context.Background(), req)
			require.NoError(t, err)

			assert.Equal(t, tt.wantDiscount, reservation.DiscountAmount)
			assert.Equal(t, 1700000-tt.wantDiscount, reservation.TotalAmount)
			assert.Equal(t, 850000.0, reservation.RatePerNight)
			assert.Equal(t, tt.wantUsage, ledger.usage("WEEKEND10"))
			if tt.wantUsage == 0 {
				assert.Empty(t, reservation.PromoCode)
			} else {
				assert.Equal(t, "WEEKEND10", reservation.PromoCode)
			}
		})
	}
}

func TestCreateUnknownPromoIsSilent(t *testing.T) {
	f := newFixture(newCalendar(), newLedger())
	req := booking("2024-01-10", "2024-01-12")
	req.PromoCode = "NOPE"

	reservation, err := f.service().Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 1700000.0, reservation.TotalAmount)
}

func TestCreateFixedPromoCappedAtTotal(t *testing.T) {
	promo := weekendPromo()
	promo.ValidDays = nil
	promo.DiscountType = model.DiscountFixed
	promo.DiscountValue = 5000000
	f := newFixture(newCalendar(), newLedger(promo))
	req := booking("2024-01-10", "2024-01-12")
	req.PromoCode = "WEEKEND10"

	reservation, err := f.service().Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 1700000.0, reservation.DiscountAmount)
	assert.Equal(t, 0.0, reservation.TotalAmount)
}

func TestConcurrentBookingsRedeemLastPromoOnce(t *testing.T) {
	promo := weekendPromo()
	promo.MaxUsage = 1
	ledger := newLedger(promo)
	f := newFixture(newCalendar(), ledger)
	svc := f.service()

	const callers = 8
	var wg sync.WaitGroup
	results := make([]*model.Reservation, callers)
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := booking("2024-01-06", "2024-01-07")
			req.PromoCode = "WEEKEND10"
			results[i], errs[i] = svc.Create(context.Background(), req)
		}(i)
	}
	wg.Wait()

	discounted := 0
	for i := range results {
		if errs[i] != nil {
			assert.True(t, apperrors.HasCode(errs[i], apperrors.CodeRoomUnavailable), "unexpected error %v", errs[i])
			continue
		}
		if results[i].DiscountAmount > 0 {
			discounted++
		}
	}
	assert.Equal(t, 1, discounted)
	assert.Equal(t, 1, ledger.usage("WEEKEND10"))
}

func TestCreateRetriesBookingCodeCollisions(t *testing.T) {
	f := newFixture(newCalendar(), newLedger())
	f.repo.duplicates = 2
	svc := f.service()
	n := 0
	svc.newCode = func(time.Time) string {
		n++
		return fmt.Sprintf("SGH-20240102-00000%d", n)
	}

	reservation, err := svc.Create(context.Background(), booking("2024-01-10", "2024-01-12"))
	require.NoError(t, err)
	assert.Equal(t, "SGH-20240102-000003", reservation.BookingCode)
}

func TestCreateStoreFailureReleasesEverything(t *testing.T) {
	promo := weekendPromo()
	promo.ValidDays = nil
	ledger := newLedger(promo)
	f := newFixture(newCalendar(), ledger)
	f.repo.duplicates = bookingCodeAttempts

	req := booking("2024-01-10", "2024-01-12")
	req.PromoCode = "WEEKEND10"
	_, err := f.service().Create(context.Background(), req)

	require.True(t, apperrors.HasCode(err, apperrors.CodeInternal))
	assert.Equal(t, []string{"2024-01-10", "2024-01-11"}, f.calendar.increments)
	assert.Equal(t, 5, f.calendar.allotment("2024-01-10"))
	assert.Equal(t, 0, ledger.usage("WEEKEND10"))
	assert.Equal(t, 1, ledger.released)
	assert.Empty(t, f.notifier.notified)
}

func TestCheck(t *testing.T) {
	f := newFixture(newCalendar(), newLedger())
	svc := f.service()
	reservation, err := svc.Create(context.Background(), booking("2024-01-10", "2024-01-12"))
	require.NoError(t, err)

	_, err = svc.Check(context.Background(), " ", "")
	require.True(t, apperrors.HasCode(err, apperrors.CodeInvalidInput))
	assert.Equal(t, "Please provide booking code or email", apperrors.AsAppError(err).Message)

	found, err := svc.Check(context.Background(), "", "BUDI@example.com")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, reservation.BookingCode, found[0].BookingCode)
}

func TestUpdateStatus(t *testing.T) {
	f := newFixture(newCalendar(), newLedger())
	svc := f.service()
	reservation, err := svc.Create(context.Background(), booking("2024-01-10", "2024-01-12"))
	require.NoError(t, err)

	require.NoError(t, svc.UpdateStatus(context.Background(), reservation.ID, " Confirmed "))
	assert.Equal(t, model.StatusConfirmed, f.repo.statuses[reservation.ID])

	err = svc.UpdateStatus(context.Background(), reservation.ID, "archived")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeInvalidInput))

	err = svc.UpdateStatus(context.Background(), "missing", model.StatusCancelled)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))
}

func TestListRejectsBadFilters(t *testing.T) {
	svc := newFixture(newCalendar(), newLedger()).service()

	_, err := svc.List(context.Background(), model.ReservationFilter{Status: "archived"})
	assert.True(t, apperrors.HasCode(err, apperrors.CodeInvalidInput))

	_, err = svc.List(context.Background(), model.ReservationFilter{StartDate: "2024-13-01"})
	assert.True(t, apperrors.HasCode(err, apperrors.CodeInvalidInput))
}

func TestResendEmail(t *testing.T) {
	f := newFixture(newCalendar(), newLedger())
	svc := f.service()
	reservation, err := svc.Create(context.Background(), booking("2024-01-10", "2024-01-12"))
	require.NoError(t, err)

	_, err = svc.ResendEmail(context.Background(), reservation.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"budi@example.com"}, f.sent)

	f.sendErr = errors.New("smtp down")
	got, err := svc.ResendEmail(context.Background(), reservation.ID)
	require.True(t, apperrors.HasCode(err, apperrors.CodeInternal))
	assert.Equal(t, reservation.ID, got.ID)

	_, err = svc.ResendEmail(context.Background(), "missing")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))
}

func withPlan(req *model.ReservationRequest, planID string) *model.ReservationRequest {
	req.RatePlanID = planID
	return req
}
