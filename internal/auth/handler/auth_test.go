package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"hms/internal/audit"
	apperrors "hms/pkg/errors"
	"hms/pkg/logger"
	"hms/pkg/middleware"
	"hms/pkg/model"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockAuthService struct {
	principals map[string]*middleware.Principal
	registered []*model.RegisterRequest
}

func (m *mockAuthService) Login(context.Context, *model.LoginRequest) (*model.LoginResponse, error) {
	return nil, apperrors.Unauthorized("Invalid email or password")
}

func (m *mockAuthService) Register(_ context.Context, req *model.RegisterRequest) (*model.User, error) {
	m.registered = append(m.registered, req)
	return &model.User{ID: "u-new", Email: req.Email, Role: req.Role}, nil
}

func (m *mockAuthService) Me(_ context.Context, userID string) (*model.User, error) {
	return &model.User{ID: userID}, nil
}

func (m *mockAuthService) ForgotPassword(context.Context, *model.ForgotPasswordRequest) (string, error) {
	return "ok", nil
}

func (m *mockAuthService) ResetPassword(context.Context, *model.ResetPasswordRequest) error {
	return nil
}

func (m *mockAuthService) Authenticate(_ context.Context, token string) (*middleware.Principal, error) {
	if p, ok := m.principals[token]; ok {
		return p, nil
	}
	return nil, apperrors.Unauthorized("Invalid token")
}

func TestRegisterSuperAdminRequiresSuperAdmin(t *testing.T) {
	tests := []struct {
		name       string
		token      string
		role       string
		wantStatus int
	}{
		{"admin creates staff", "admin", model.RoleStaff, http.StatusCreated},
		{"admin creates superadmin", "admin", model.RoleSuperAdmin, http.StatusForbidden},
		{"superadmin creates superadmin", "root", model.RoleSuperAdmin, http.StatusCreated},
		{"staff without permissions", "staff", model.RoleStaff, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockAuthService{principals: map[string]*middleware.Principal{
				"admin": {UserID: "a", Role: model.RoleAdmin},
				"root":  {UserID: "r", Role: model.RoleSuperAdmin},
				"staff": {UserID: "s", Role: model.RoleStaff},
			}}
			log := logger.Nop()
			router := httprouter.New()
			NewAuthHandler(svc, middleware.NewGuard(svc, log), audit.NopRecorder{}, log).RegisterRoutes(router)

			body := `{"email":"new@example.com","password":"secret123","name":"New User","role":"` + tt.role + `"}`
			req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("Authorization", "Bearer "+tt.token)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			if tt.wantStatus == http.StatusCreated {
				assert.Len(t, svc.registered, 1)
			} else {
				assert.Empty(t, svc.registered)
			}
		})
	}
}
