package errors

import "errors"

var (
	ErrNotFound        = errors.New("promo code not found")
	ErrDuplicateCode   = errors.New("promo code already exists")
	ErrCapacityReached = errors.New("promo code usage limit reached")

	ErrOutsideWindow   = errors.New("promo code is expired or not yet valid")
	ErrRoomNotEligible = errors.New("promo code not valid for this room type")
	ErrDayNotEligible  = errors.New("promo code not valid for this check-in day")
)
