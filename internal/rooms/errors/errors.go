package errors

import "errors"

var (
	ErrNotFound = errors.New("room type not found")
)
