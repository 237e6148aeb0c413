package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"hms/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
}

func TestContentTypeValidation(t *testing.T) {
	h := ContentTypeValidation(logger.Nop(), "/upload/")(okHandler())

	tests := []struct {
		name        string
		method      string
		path        string
		body        string
		contentType string
		want        int
	}{
		{"get passes", http.MethodGet, "/api/rooms", "", "", http.StatusCreated},
		{"json post", http.MethodPost, "/api/reservations", "{}", "application/json; charset=utf-8", http.StatusCreated},
		{"form post rejected", http.MethodPost, "/api/reservations", "a=b", "application/x-www-form-urlencoded", http.StatusUnsupportedMediaType},
		{"bodiless post passes", http.MethodPost, "/api/admin/reservations/1/resend-email", "", "", http.StatusCreated},
		{"multipart on upload", http.MethodPost, "/api/admin/media/upload/gallery", "x", "multipart/form-data; boundary=abc", http.StatusCreated},
		{"json on upload rejected", http.MethodPost, "/api/admin/media/upload/gallery", "{}", "application/json", http.StatusUnsupportedMediaType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestRateLimiterAllow(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute, nil, logger.Nop())
	defer rl.Stop()

	now := time.Date(2024, 1, 6, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	assert.True(t, rl.Allow("10.0.0.1"))
	assert.True(t, rl.Allow("10.0.0.1"))
	assert.False(t, rl.Allow("10.0.0.1"))
	assert.True(t, rl.Allow("10.0.0.2"))
	assert.True(t, rl.Allow(""))

	now = now.Add(61 * time.Second)
	assert.True(t, rl.Allow("10.0.0.1"))
}

func TestClientRateLimit(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute, nil, logger.Nop())
	defer rl.Stop()
	h := ClientRateLimit(rl)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/rooms", nil)
	req.RemoteAddr = "203.0.113.5:4000"

	first := httptest.NewRecorder()
	h.ServeHTTP(first, req)
	second := httptest.NewRecorder()
	h.ServeHTTP(second, req)

	assert.Equal(t, http.StatusCreated, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Equal(t, "60", second.Header().Get("Retry-After"))
}

func TestIdempotencyReplaysSuccess(t *testing.T) {
	store := NewInMemoryIdempotencyStore(time.Hour)
	defer store.Stop()

	calls := 0
	h := Idempotency(store, "")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"booking_code":"SGH-20240106-ABCDEF"}`))
	}))

	send := func(path string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader("{}"))
		req.Header.Set("Idempotency-Key", "k1")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	first := send("/api/reservations")
	second := send("/api/reservations")
	other := send("/api/reviews")

	assert.Equal(t, 2, calls)
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, "true", second.Header().Get("Idempotent-Replayed"))
	assert.Empty(t, other.Header().Get("Idempotent-Replayed"))
}

func TestRecovery(t *testing.T) {
	h := Recovery(logger.Nop())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	require.NotPanics(t, func() { h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil)) })
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "INTERNAL_ERROR")
}

func TestRequestTimeout(t *testing.T) {
	h := RequestTimeout(20 * time.Millisecond)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
		time.Sleep(5 * time.Millisecond)
		_, _ = w.Write([]byte("late"))
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.NotContains(t, rec.Body.String(), "late")
}

func TestRequestLoggingSetsID(t *testing.T) {
	var id string
	h := RequestLogging(logger.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id = RequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Len(t, id, 32)
	assert.Equal(t, id, rec.Header().Get("X-Request-ID"))
}

func TestMaxRequestSize(t *testing.T) {
	var readErr error
	h := MaxRequestSize(4, 64, "/upload/")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf := make([]byte, 32)
		_, readErr = r.Body.Read(buf)
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/reviews", strings.NewReader("0123456789")))
	assert.Error(t, readErr)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/admin/media/upload/gallery", strings.NewReader("0123456789")))
	assert.NoError(t, readErr)
}
