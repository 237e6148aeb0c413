package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appErr   *AppError
		expected string
	}{
		{
			name:     "without underlying error",
			appErr:   &AppError{Code: CodeNotFound, Message: "resource not found"},
			expected: "NOT_FOUND: resource not found",
		},
		{
			name: "with underlying error",
			appErr: &AppError{
				Code:    CodeInternal,
				Message: "internal error",
				Err:     errors.New("database connection failed"),
			},
			expected: "INTERNAL_ERROR: internal error (caused by: database connection failed)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.appErr.Error())
		})
	}
}

func TestWrapAndUnwrap(t *testing.T) {
	original := errors.New("write conflict")
	wrapped := Wrap(original, CodeInternal, "wrapped", http.StatusInternalServerError)

	assert.Same(t, original, errors.Unwrap(wrapped))
	assert.ErrorIs(t, wrapped, original)
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name   string
		err    *AppError
		code   string
		status int
	}{
		{"not found", NotFound("Room type"), CodeNotFound, http.StatusNotFound},
		{"validation", Validation("bad", nil), CodeValidation, http.StatusUnprocessableEntity},
		{"invalid input", InvalidInput("bad"), CodeInvalidInput, http.StatusBadRequest},
		{"unauthorized", Unauthorized("no token"), CodeUnauthorized, http.StatusUnauthorized},
		{"forbidden", Forbidden("no"), CodeForbidden, http.StatusForbidden},
		{"conflict", Conflict("dup"), CodeConflict, http.StatusConflict},
		{"internal", Internal("boom", nil), CodeInternal, http.StatusInternalServerError},
		{"timeout", Timeout("slow"), CodeTimeout, http.StatusGatewayTimeout},
		{"unavailable", Unavailable("smtp"), CodeUnavailable, http.StatusServiceUnavailable},
		{"invalid range", InvalidRange("Invalid dates"), CodeInvalidRange, http.StatusBadRequest},
		{"room unavailable", RoomUnavailable("2024-01-06"), CodeRoomUnavailable, http.StatusConflict},
		{"invalid rate plan", InvalidRatePlan("rp-1"), CodeInvalidRatePlan, http.StatusBadRequest},
		{"promo invalid", PromoInvalid("expired", http.StatusBadRequest), CodePromoInvalid, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.status, tt.err.StatusCode())
		})
	}
}

func TestRoomUnavailableNamesDate(t *testing.T) {
	err := RoomUnavailable("2024-03-02")

	assert.Equal(t, "Room not available on 2024-03-02", err.Message)
	assert.Equal(t, "2024-03-02", err.Details["date"])
}

func TestNotFoundWithID(t *testing.T) {
	err := NotFoundWithID("Reservation", "abc")

	assert.Equal(t, "Reservation not found", err.Message)
	assert.Equal(t, "abc", err.Details["id"])
	assert.Equal(t, "Reservation", err.Details["resource"])
}

func TestAsAppError(t *testing.T) {
	t.Run("direct app error", func(t *testing.T) {
		original := Conflict("taken")
		assert.Same(t, original, AsAppError(original))
	})

	t.Run("wrapped app error", func(t *testing.T) {
		original := NotFound("Promo")
		got := AsAppError(fmt.Errorf("lookup: %w", original))
		assert.Same(t, original, got)
	})

	t.Run("plain error becomes internal", func(t *testing.T) {
		plain := errors.New("socket closed")
		got := AsAppError(plain)
		require.NotNil(t, got)
		assert.Equal(t, CodeInternal, got.Code)
		assert.ErrorIs(t, got, plain)
	})
}

func TestHasCode(t *testing.T) {
	err := fmt.Errorf("booking: %w", RoomUnavailable("2024-01-01"))

	assert.True(t, HasCode(err, CodeRoomUnavailable))
	assert.False(t, HasCode(err, CodeNotFound))
	assert.False(t, HasCode(errors.New("x"), CodeNotFound))
	assert.True(t, IsAppError(err))
}

func TestZeroStatusDefaultsToInternal(t *testing.T) {
	err := &AppError{Code: CodeBadRequest, Message: "x"}
	assert.Equal(t, http.StatusInternalServerError, err.StatusCode())
}
