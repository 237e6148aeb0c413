package errors

import "errors"

var (
	ErrMailerUnavailable = errors.New("mailer circuit is open")
	ErrNoRecipient       = errors.New("email has no recipient")
)
