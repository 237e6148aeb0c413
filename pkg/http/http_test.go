package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apperrors "hms/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{"room unavailable", apperrors.RoomUnavailable("2024-01-06"), http.StatusConflict, apperrors.CodeRoomUnavailable, "Room not available on 2024-01-06"},
		{"not found", apperrors.NotFound("Room type"), http.StatusNotFound, apperrors.CodeNotFound, "Room type not found"},
		{"invalid range", apperrors.InvalidRange("Invalid dates"), http.StatusBadRequest, apperrors.CodeInvalidRange, "Invalid dates"},
		{"plain error", errors.New("socket closed"), http.StatusInternalServerError, apperrors.CodeInternal, "An unexpected error occurred"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			require.NoError(t, WriteError(rec, tt.err))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body.Code)
			assert.Equal(t, tt.wantMsg, body.Error)
		})
	}
}

func TestWriteErrorCarriesDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	require.NoError(t, WriteError(rec, apperrors.RoomUnavailable("2024-03-02")))

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "2024-03-02", body.Details["date"])
}

func TestWriteSuccessIsUnwrapped(t *testing.T) {
	rec := httptest.NewRecorder()
	require.NoError(t, WriteSuccess(rec, []string{"a", "b"}))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `["a","b"]`, rec.Body.String())
}

func TestDecodeJSON(t *testing.T) {
	var dst struct {
		Name string `json:"name"`
	}

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Deluxe"}`))
	require.NoError(t, DecodeJSON(r, &dst))
	assert.Equal(t, "Deluxe", dst.Name)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
	err := DecodeJSON(r, &dst)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeInvalidInput))

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{"))
	err = DecodeJSON(r, &dst)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeInvalidInput))
}

func TestExtractLimitOffset(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/?limit=500&offset=-2", nil)
	limit, offset, err := ExtractLimitOffset(r)
	require.NoError(t, err)
	assert.Equal(t, 100, limit)
	assert.Equal(t, int64(0), offset)

	r = httptest.NewRequest(http.MethodGet, "/?limit=abc", nil)
	_, _, err = ExtractLimitOffset(r)
	assert.Error(t, err)
}

func TestQueryInt(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/?days=14&bad=x", nil)

	v, err := QueryInt(r, "days", 7)
	require.NoError(t, err)
	assert.Equal(t, 14, v)

	v, err = QueryInt(r, "missing", 7)
	require.NoError(t, err)
	assert.Equal(t, 7, v)

	_, err = QueryInt(r, "bad", 7)
	assert.Error(t, err)
}

func TestClientIP(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "10.0.0.9:5123"
	assert.Equal(t, "10.0.0.9", ClientIP(r))

	r.Header.Set("X-Real-IP", "198.51.100.4")
	assert.Equal(t, "198.51.100.4", ClientIP(r))

	r.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	assert.Equal(t, "203.0.113.7", ClientIP(r))
}
