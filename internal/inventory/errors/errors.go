package errors

import "errors"

var (
	// ErrUnavailable means the night is closed or has no allotment left.
	ErrUnavailable = errors.New("inventory day is closed or sold out")

	ErrInvalidRange = errors.New("end date is before start date")
)
