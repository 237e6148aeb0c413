package errors

import "errors"

var (
	ErrNotFound           = errors.New("gallery item not found")
	ErrStorageDisabled    = errors.New("object storage is not configured")
	ErrCaptionUnavailable = errors.New("captioning is not configured")
)
