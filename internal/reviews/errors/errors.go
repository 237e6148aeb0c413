package errors

import "errors"

var ErrNotFound = errors.New("review not found")
