package health

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"hms/pkg/logger"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func serve(db Pinger, path string) *httptest.ResponseRecorder {
	router := httprouter.New()
	NewHandler(db, logger.Nop()).RegisterRoutes(router)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHealth(t *testing.T) {
	rec := serve(pingFunc(func(context.Context) error { return errors.New("down") }), "/health")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestReady(t *testing.T) {
	tests := []struct {
		name   string
		ping   error
		status int
		body   string
	}{
		{"database reachable", nil, http.StatusOK, `{"status":"ready","database":"ok"}`},
		{"database down", errors.New("no primary"), http.StatusServiceUnavailable, `{"status":"unavailable","database":"error"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(pingFunc(func(context.Context) error { return tt.ping }), "/ready")

			assert.Equal(t, tt.status, rec.Code)
			assert.JSONEq(t, tt.body, rec.Body.String())
		})
	}
}
