package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	inventoryerrors "hms/internal/inventory/errors"
	inventoryrepo "hms/internal/inventory/repository"
	"hms/internal/pricing"
	"hms/internal/promos"
	promoerrors "hms/internal/promos/errors"
	rateplanserrors "hms/internal/rateplans/errors"
	reservationserrors "hms/internal/reservations/errors"
	"hms/internal/reservations/repository"
	"hms/internal/reservations/validator"
	roomserrors "hms/internal/rooms/errors"
	"hms/pkg/config"
	"hms/pkg/dates"
	apperrors "hms/pkg/errors"
	"hms/pkg/model"
	"hms/pkg/sanitizer"
	"hms/pkg/validation"

	"github.com/google/uuid"
)

const bookingCodeAttempts = 3

type RoomLookup interface {
	FindByID(ctx context.Context, id string) (*model.RoomType, error)
}

// Calendar is the inventory the workflow prices from and allocates against.
type Calendar interface {
	FindRange(ctx context.Context, roomTypeID, from, to string) (map[string]*model.InventoryDay, error)
	DecrementAllotment(ctx context.Context, roomTypeID, date string, defaults inventoryrepo.DayDefaults) error
	IncrementAllotment(ctx context.Context, roomTypeID, date string) error
}

type PlanLookup interface {
	FindByID(ctx context.Context, id string) (*model.RatePlan, error)
}

type PromoLedger interface {
	FindActiveByCode(ctx context.Context, code string) (*model.PromoCode, error)
	Redeem(ctx context.Context, id string) error
	Release(ctx context.Context, id string) error
}

// Notifier is told about new reservations. It must not block and never
// reports failure to the caller.
type Notifier interface {
	ReservationCreated(ctx context.Context, reservation *model.Reservation)
}

type ConfirmationSender interface {
	SendReservationConfirmation(ctx context.Context, reservation *model.Reservation) error
}

type ReservationService interface {
	Create(ctx context.Context, req *model.ReservationRequest) (*model.Reservation, error)
	Check(ctx context.Context, bookingCode, email string) ([]*model.Reservation, error)
	List(ctx context.Context, filter model.ReservationFilter) ([]*model.Reservation, error)
	UpdateStatus(ctx context.Context, id, status string) error
	ResendEmail(ctx context.Context, id string) (*model.Reservation, error)
	Delete(ctx context.Context, id string) error
}

type Dependencies struct {
	Repo          repository.ReservationRepository
	Rooms         RoomLookup
	Calendar      Calendar
	Plans         PlanLookup
	Promos        PromoLedger
	Notifier      Notifier
	Confirmations ConfirmationSender
	Validator     *validator.ReservationValidator
}

type reservationService struct {
	repo          repository.ReservationRepository
	rooms         RoomLookup
	calendar      Calendar
	plans         PlanLookup
	promos        PromoLedger
	notifier      Notifier
	confirmations ConfirmationSender
	validator     *validator.ReservationValidator
	cfg           *config.Config

	now     func() time.Time
	newCode func(now time.Time) string
}

func NewReservationService(deps Dependencies, cfg *config.Config) ReservationService {
	s := &reservationService{
		repo:          deps.Repo,
		rooms:         deps.Rooms,
		calendar:      deps.Calendar,
		plans:         deps.Plans,
		promos:        deps.Promos,
		notifier:      deps.Notifier,
		confirmations: deps.Confirmations,
		validator:     deps.Validator,
		cfg:           cfg,
		now:           time.Now,
	}
	s.newCode = s.bookingCode
	return s
}

// pricedPlan is the rate plan a booking is charged under.
type pricedPlan struct {
	id    string
	name  string
	total float64
}

// Create prices, allocates and stores a booking. Nothing is written unless
// every night can be allocated; a failure part way through gives back the
// nights already taken.
func (s *reservationService) Create(ctx context.Context, req *model.ReservationRequest) (*model.Reservation, error) {
	s.sanitize(req)
	if err := s.validator.Validate(req); err != nil {
		s.cfg.Log.Warn("Reservation validation failed", "room_type_id", req.RoomTypeID, "error", err)
		return nil, validationError(err)
	}

	room, err := s.rooms.FindByID(ctx, req.RoomTypeID)
	if err != nil {
		if errors.Is(err, roomserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Room type", req.RoomTypeID)
		}
		s.cfg.Log.Error("Failed to load room type for reservation", "room_type_id", req.RoomTypeID, "error", err)
		return nil, apperrors.Internal("Failed to create reservation", err)
	}
	if !room.IsActive {
		return nil, apperrors.NotFoundWithID("Room type", req.RoomTypeID)
	}

	checkIn, err := dates.Parse(req.CheckIn)
	if err != nil {
		return nil, apperrors.InvalidInput("check_in: " + err.Error())
	}
	checkOut, err := dates.Parse(req.CheckOut)
	if err != nil {
		return nil, apperrors.InvalidInput("check_out: " + err.Error())
	}
	nights := dates.EachNight(checkIn, checkOut)
	if len(nights) == 0 {
		return nil, apperrors.InvalidRange("Check-out must be after check-in")
	}

	days, err := s.calendar.FindRange(ctx, room.ID, req.CheckIn, req.CheckOut)
	if err != nil {
		s.cfg.Log.Error("Failed to read inventory for reservation", "room_type_id", room.ID, "error", err)
		return nil, apperrors.Internal("Failed to create reservation", err)
	}
	totalBase, blocked, ok := pricing.BaseTotal(room, nights, days)
	if !ok {
		s.cfg.Log.Info("Reservation rejected, night unavailable", "room_type_id", room.ID, "date", blocked)
		return nil, apperrors.RoomUnavailable(blocked)
	}

	plan, err := s.resolvePlan(ctx, req.RatePlanID, room, totalBase, len(nights))
	if err != nil {
		return nil, err
	}

	promo := s.evaluatePromo(ctx, req.PromoCode, room.ID, checkIn)

	if err := s.allocate(ctx, room, nights); err != nil {
		return nil, err
	}

	var discount float64
	if promo != nil {
		if err := s.promos.Redeem(ctx, promo.ID); err != nil {
			if !errors.Is(err, promoerrors.ErrCapacityReached) {
				s.cfg.Log.Error("Failed to redeem promo code", "code", promo.Code, "error", err)
			} else {
				s.cfg.Log.Info("Promo code reached its limit during booking", "code", promo.Code)
			}
			promo = nil
		} else {
			discount = promos.Discount(promo, plan.total)
		}
	}

	reservation := &model.Reservation{
		GuestName:       req.GuestName,
		GuestEmail:      req.GuestEmail,
		GuestPhone:      req.GuestPhone,
		RoomTypeID:      room.ID,
		RoomTypeName:    room.Name,
		RatePlanID:      plan.id,
		RatePlanName:    plan.name,
		CheckIn:         req.CheckIn,
		CheckOut:        req.CheckOut,
		Guests:          req.Guests,
		Nights:          len(nights),
		RatePerNight:    plan.total / float64(len(nights)),
		TotalAmount:     plan.total - discount,
		DiscountAmount:  discount,
		Status:          model.StatusPending,
		SpecialRequests: req.SpecialRequests,
	}
	if promo != nil {
		reservation.PromoCode = promo.Code
	}

	if err := s.insert(ctx, reservation); err != nil {
		s.release(ctx, room.ID, nights)
		if promo != nil {
			s.releasePromo(ctx, promo)
		}
		s.cfg.Log.Error("Failed to store reservation", "room_type_id", room.ID, "error", err)
		return nil, apperrors.Internal("Failed to create reservation", err)
	}

	s.cfg.Log.Info("Reservation created successfully",
		"id", reservation.ID,
		"booking_code", reservation.BookingCode,
		"room_type_id", room.ID,
		"check_in", reservation.CheckIn,
		"nights", reservation.Nights,
		"total_amount", reservation.TotalAmount,
	)

	s.notifier.ReservationCreated(ctx, reservation)
	return reservation, nil
}

func (s *reservationService) resolvePlan(ctx context.Context, planID string, room *model.RoomType, totalBase float64, nights int) (pricedPlan, error) {
	if planID == "" || planID == model.StandardRatePlanID {
		return pricedPlan{id: model.StandardRatePlanID, name: pricing.StandardPlanName, total: totalBase}, nil
	}

	plan, err := s.plans.FindByID(ctx, planID)
	if err != nil {
		if errors.Is(err, rateplanserrors.ErrNotFound) {
			return pricedPlan{}, apperrors.InvalidRatePlan(planID)
		}
		s.cfg.Log.Error("Failed to load rate plan for reservation", "rate_plan_id", planID, "error", err)
		return pricedPlan{}, apperrors.Internal("Failed to create reservation", err)
	}
	if !plan.IsActive || !plan.AppliesTo(room.ID) {
		return pricedPlan{}, apperrors.InvalidRatePlan(planID)
	}

	return pricedPlan{
		id:    plan.ID,
		name:  plan.Name,
		total: pricing.ApplyModifier(totalBase, nights, plan.ModifierType, plan.ModifierValue),
	}, nil
}

// evaluatePromo returns the promo to redeem, or nil. An unusable code never
// fails the booking.
func (s *reservationService) evaluatePromo(ctx context.Context, code, roomTypeID string, checkIn time.Time) *model.PromoCode {
	if code == "" {
		return nil
	}

	promo, err := s.promos.FindActiveByCode(ctx, code)
	if err != nil {
		if errors.Is(err, promoerrors.ErrNotFound) {
			s.cfg.Log.Info("Ignoring unknown promo code", "code", code)
		} else {
			s.cfg.Log.Error("Failed to look up promo code", "code", code, "error", err)
		}
		return nil
	}

	verdict := promos.Evaluate(promo, promos.Stay{RoomTypeID: roomTypeID, CheckIn: checkIn}, s.now())
	if !verdict.Valid {
		s.cfg.Log.Info("Promo code not applied", "code", code, "reason", verdict.Reason)
		return nil
	}
	return promo
}

func (s *reservationService) allocate(ctx context.Context, room *model.RoomType, nights []string) error {
	defaults := inventoryrepo.DayDefaults{Allotment: s.cfg.DefaultAllotment, Rate: room.BasePrice}

	for i, night := range nights {
		err := s.calendar.DecrementAllotment(ctx, room.ID, night, defaults)
		if err == nil {
			continue
		}

		s.release(ctx, room.ID, nights[:i])
		if errors.Is(err, inventoryerrors.ErrUnavailable) {
			s.cfg.Log.Info("Reservation lost the race for a night", "room_type_id", room.ID, "date", night)
			return apperrors.RoomUnavailable(night)
		}
		s.cfg.Log.Error("Failed to allocate inventory", "room_type_id", room.ID, "date", night, "error", err)
		return apperrors.Internal("Failed to create reservation", err)
	}
	return nil
}

// release gives back nights taken by allocate. It runs on a detached context
// so a cancelled request still restores inventory.
func (s *reservationService) release(ctx context.Context, roomTypeID string, nights []string) {
	if len(nights) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.WriteTimeout)
	defer cancel()

	for _, night := range nights {
		if err := s.calendar.IncrementAllotment(ctx, roomTypeID, night); err != nil {
			s.cfg.Log.Error("Failed to restore inventory, manual fix needed",
				"room_type_id", roomTypeID,
				"date", night,
				"error", err,
			)
		}
	}
}

func (s *reservationService) releasePromo(ctx context.Context, promo *model.PromoCode) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.WriteTimeout)
	defer cancel()

	if err := s.promos.Release(ctx, promo.ID); err != nil {
		s.cfg.Log.Error("Failed to release promo code use", "code", promo.Code, "error", err)
	}
}

func (s *reservationService) insert(ctx context.Context, reservation *model.Reservation) error {
	var err error
	for attempt := 1; attempt <= bookingCodeAttempts; attempt++ {
		reservation.ID = ""
		reservation.BookingCode = s.newCode(s.now())
		err = s.repo.Create(ctx, reservation)
		if !errors.Is(err, reservationserrors.ErrDuplicateBookingCode) {
			return err
		}
		s.cfg.Log.Warn("Booking code collision, regenerating", "booking_code", reservation.BookingCode, "attempt", attempt)
	}
	return err
}

// bookingCode renders PREFIX-YYYYMMDD-XXXXXX.
func (s *reservationService) bookingCode(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return fmt.Sprintf("%s-%s-%s", s.cfg.BookingCodePrefix, now.UTC().Format("20060102"), suffix)
}

func (s *reservationService) Check(ctx context.Context, bookingCode, email string) ([]*model.Reservation, error) {
	bookingCode = sanitizer.NormalizeCode(bookingCode)
	email = sanitizer.NormalizeEmail(email)
	if bookingCode == "" && email == "" {
		return nil, apperrors.InvalidInput("Please provide booking code or email")
	}

	reservations, err := s.repo.FindByGuest(ctx, bookingCode, email, config.DefaultReservationQueryLimit)
	if err != nil {
		s.cfg.Log.Error("Failed to look up guest reservations", "booking_code", bookingCode, "error", err)
		return nil, apperrors.Internal("Failed to retrieve reservations", err)
	}
	return reservations, nil
}

func (s *reservationService) List(ctx context.Context, filter model.ReservationFilter) ([]*model.Reservation, error) {
	if filter.Status != "" {
		if err := s.validator.ValidateStatus(filter.Status); err != nil {
			return nil, apperrors.InvalidInput("Invalid status")
		}
	}
	for _, d := range []string{filter.StartDate, filter.EndDate} {
		if d != "" && !dates.Valid(d) {
			return nil, apperrors.InvalidInput(fmt.Sprintf("Invalid date %q, expected YYYY-MM-DD", d))
		}
	}

	reservations, err := s.repo.Find(ctx, filter)
	if err != nil {
		s.cfg.Log.Error("Failed to list reservations", "status", filter.Status, "error", err)
		return nil, apperrors.Internal("Failed to retrieve reservations", err)
	}
	return reservations, nil
}

func (s *reservationService) UpdateStatus(ctx context.Context, id, status string) error {
	status = strings.ToLower(strings.TrimSpace(status))
	if err := s.validator.ValidateStatus(status); err != nil {
		return apperrors.InvalidInput("Invalid status")
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, reservationserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Reservation", id)
		}
		s.cfg.Log.Error("Failed to update reservation status", "id", id, "status", status, "error", err)
		return apperrors.Internal("Failed to update reservation status", err)
	}

	s.cfg.Log.Info("Reservation status updated", "id", id, "status", status)
	return nil
}

// ResendEmail sends the confirmation synchronously and returns the
// reservation it was sent for.
func (s *reservationService) ResendEmail(ctx context.Context, id string) (*model.Reservation, error) {
	reservation, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Reservation", id)
		}
		s.cfg.Log.Error("Failed to load reservation for resend", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to retrieve reservation", err)
	}

	if err := s.confirmations.SendReservationConfirmation(ctx, reservation); err != nil {
		s.cfg.Log.Error("Failed to resend reservation email", "id", id, "to", reservation.GuestEmail, "error", err)
		return reservation, apperrors.Internal("Failed to send email", err)
	}

	s.cfg.Log.Info("Reservation email resent", "id", id, "to", reservation.GuestEmail)
	return reservation, nil
}

func (s *reservationService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, reservationserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Reservation", id)
		}
		s.cfg.Log.Error("Failed to delete reservation", "id", id, "error", err)
		return apperrors.Internal("Failed to delete reservation", err)
	}

	s.cfg.Log.Info("Reservation deleted permanently", "id", id)
	return nil
}

func (s *reservationService) sanitize(req *model.ReservationRequest) {
	req.GuestName = sanitizer.NormalizeName(req.GuestName)
	req.GuestEmail = sanitizer.NormalizeEmail(req.GuestEmail)
	req.GuestPhone = sanitizer.NormalizePhone(req.GuestPhone, config.DefaultPhoneRegion)
	req.RoomTypeID = strings.TrimSpace(req.RoomTypeID)
	req.CheckIn = strings.TrimSpace(req.CheckIn)
	req.CheckOut = strings.TrimSpace(req.CheckOut)
	req.RatePlanID = strings.TrimSpace(req.RatePlanID)
	req.PromoCode = sanitizer.NormalizeCode(req.PromoCode)
	req.SpecialRequests = sanitizer.FreeText(req.SpecialRequests, validator.MaxSpecialRequests)
}

func validationError(err error) error {
	var verrs validation.ValidationErrors
	if errors.As(err, &verrs) {
		return apperrors.Validation("Reservation validation failed", verrs.Details())
	}
	return apperrors.Validation("Reservation validation failed", map[string]any{"error": err.Error()})
}
