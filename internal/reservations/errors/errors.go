package errors

import "errors"

var (
	ErrNotFound             = errors.New("reservation not found")
	ErrDuplicateBookingCode = errors.New("booking code already exists")
)
