package errors

import "errors"

var (
	ErrNotFound = errors.New("rate plan not found")
)
