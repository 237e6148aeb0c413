package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "hms/pkg/errors"
	"hms/pkg/logger"
	"hms/pkg/model"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockAuthenticator struct {
	authenticateFunc func(ctx context.Context, token string) (*Principal, error)
}

func (m *mockAuthenticator) Authenticate(ctx context.Context, token string) (*Principal, error) {
	return m.authenticateFunc(ctx, token)
}

func tokensFor(principals map[string]*Principal) *mockAuthenticator {
	return &mockAuthenticator{
		authenticateFunc: func(_ context.Context, token string) (*Principal, error) {
			if p, ok := principals[token]; ok {
				return p, nil
			}
			return nil, apperrors.Unauthorized("Invalid token")
		},
	}
}

func TestGuard(t *testing.T) {
	principals := map[string]*Principal{
		"super":        {UserID: "u1", Role: model.RoleSuperAdmin},
		"admin":        {UserID: "u2", Role: model.RoleAdmin},
		"staff-rooms":  {UserID: "u3", Role: model.RoleStaff, Permissions: map[string]bool{model.PermRooms: true}},
		"staff-nobody": {UserID: "u4", Role: model.RoleStaff, Permissions: map[string]bool{model.PermRooms: false}},
	}
	guard := NewGuard(tokensFor(principals), logger.Nop())

	var seen *Principal
	ok := func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		seen, _ = PrincipalFrom(r.Context())
		w.WriteHeader(http.StatusOK)
	}

	tests := []struct {
		name   string
		handle httprouter.Handle
		header string
		want   int
	}{
		{"missing header", guard.Authenticated(ok), "", http.StatusUnauthorized},
		{"wrong scheme", guard.Authenticated(ok), "Basic admin", http.StatusUnauthorized},
		{"unknown token", guard.Authenticated(ok), "Bearer forged", http.StatusUnauthorized},
		{"authenticated", guard.Authenticated(ok), "Bearer staff-nobody", http.StatusOK},
		{"admin passes admin", guard.Admin(ok), "Bearer admin", http.StatusOK},
		{"staff with permission is admin", guard.Admin(ok), "Bearer staff-rooms", http.StatusOK},
		{"staff without permissions is not admin", guard.Admin(ok), "Bearer staff-nobody", http.StatusForbidden},
		{"admin passes permission", guard.Permission(model.PermRooms, ok), "Bearer admin", http.StatusOK},
		{"staff with key passes", guard.Permission(model.PermRooms, ok), "Bearer staff-rooms", http.StatusOK},
		{"staff without key is forbidden", guard.Permission(model.PermPromo, ok), "Bearer staff-rooms", http.StatusForbidden},
		{"superadmin only", guard.SuperAdmin(ok), "Bearer admin", http.StatusForbidden},
		{"superadmin passes", guard.SuperAdmin(ok), "bearer super", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = nil
			req := httptest.NewRequest(http.MethodGet, "/api/admin/rooms", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			tt.handle(rec, req, nil)

			assert.Equal(t, tt.want, rec.Code)
			if tt.want == http.StatusOK {
				require.NotNil(t, seen)
			} else {
				assert.Nil(t, seen)
			}
		})
	}
}

func TestGuardMasksNonAppErrors(t *testing.T) {
	auth := &mockAuthenticator{
		authenticateFunc: func(context.Context, string) (*Principal, error) {
			return nil, context.DeadlineExceeded
		},
	}
	guard := NewGuard(auth, logger.Nop())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer x")
	rec := httptest.NewRecorder()
	guard.Authenticated(func(http.ResponseWriter, *http.Request, httprouter.Params) {})(rec, req, nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
