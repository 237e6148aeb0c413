package errors

import "errors"

var (
	ErrNotFound       = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already registered")
	ErrInvalidToken   = errors.New("invalid token")
	ErrResetNotFound  = errors.New("password reset token not found")
)
