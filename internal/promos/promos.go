// Package promos holds the eligibility rules shared by promo verification and
// booking, so both always agree on whether a code applies.
package promos

import (
	"math"
	"slices"
	"time"

	promoerrors "hms/internal/promos/errors"
	"hms/pkg/dates"
	"hms/pkg/model"
)

// Stay describes what a promo is checked against. An empty RoomTypeID skips
// the room scope check and a zero CheckIn skips the weekday check.
type Stay struct {
	RoomTypeID string
	CheckIn    time.Time
}

type Verdict struct {
	Valid  bool
	Reason error
}

func valid() Verdict { return Verdict{Valid: true} }

func invalid(reason error) Verdict { return Verdict{Reason: reason} }

// Evaluate checks, in order, the validity window, the usage cap, the room
// scope and the check-in weekday. It reports the first rule that fails.
func Evaluate(promo *model.PromoCode, stay Stay, now time.Time) Verdict {
	if !withinWindow(promo, now) {
		return invalid(promoerrors.ErrOutsideWindow)
	}
	if promo.CurrentUsage >= promo.MaxUsage {
		return invalid(promoerrors.ErrCapacityReached)
	}
	if stay.RoomTypeID != "" && len(promo.RoomTypeIDs) > 0 && !slices.Contains(promo.RoomTypeIDs, stay.RoomTypeID) {
		return invalid(promoerrors.ErrRoomNotEligible)
	}
	if !stay.CheckIn.IsZero() && len(promo.ValidDays) > 0 && !slices.Contains(promo.ValidDays, int(stay.CheckIn.Weekday())) {
		return invalid(promoerrors.ErrDayNotEligible)
	}
	return valid()
}

func withinWindow(promo *model.PromoCode, now time.Time) bool {
	from, err := dates.ParseTimestamp(promo.ValidFrom)
	if err != nil {
		return false
	}
	until, err := dates.ParseTimestamp(promo.ValidUntil)
	if err != nil {
		return false
	}
	return !now.Before(from) && !now.After(until)
}

// Discount is the amount taken off total. Fixed discounts never exceed the
// total.
func Discount(promo *model.PromoCode, total float64) float64 {
	switch promo.DiscountType {
	case model.DiscountPercent:
		return total * promo.DiscountValue / 100
	case model.DiscountFixed:
		return math.Min(promo.DiscountValue, total)
	default:
		return 0
	}
}
