package handler

import (
	"context"
	"errors"
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

type mockReservationService struct {
	createFunc func(ctx context.Context, req *model.ReservationRequest) (*model.Reservation, error)
	resendErr  error
	status     string
	deleted    string
}

func (m *mockReservationService) Create(ctx context.Context, req *model.ReservationRequest) (*model.Reservation, error) {
	return m.createFunc(ctx, req)
}

func (m *mockReservationService) Check(_ context.Context, bookingCode, email string) ([]*model.Reservation, error) {
	if bookingCode == "" && email == "" {
		return nil, apperrors.InvalidInput("Please provide booking code or email")
	}
	return []*model.Reservation{{ID: "r1", BookingCode: bookingCode}}, nil
}

func (m *mockReservationService) List(context.Context, model.ReservationFilter) ([]*model.Reservation, error) {
	return []*model.Reservation{}, nil
}

func (m *mockReservationService) UpdateStatus(_ context.Context, _, status string) error {
	m.status = status
	return nil
}

func (m *mockReservationService) ResendEmail(_ context.Context, id string) (*model.Reservation, error) {
	reservation := &model.Reservation{ID: id, GuestEmail: "guest@example.com"}
	if m.resendErr != nil {
		return reservation, apperrors.Internal("Failed to send email", m.resendErr)
	}
	return reservation, nil
}

func (m *mockReservationService) Delete(_ context.Context, id string) error {
	m.deleted = id
	return nil
}

type tokenAuthenticator map[string]*middleware.Principal

func (a tokenAuthenticator) Authenticate(_ context.Context, token string) (*middleware.Principal, error) {
	if p, ok := a[token]; ok {
		return p, nil
	}
	return nil, apperrors.Unauthorized("Invalid token")
}

type recordingAuditor struct {
	entries []audit.Entry
}

func (r *recordingAuditor) Record(_ context.Context, entry audit.Entry) {
	r.entries = append(r.entries, entry)
}

func newRouter(svc *mockReservationService, recorder audit.Recorder) *httprouter.Router {
	log := logger.Nop()
	auth := tokenAuthenticator{
		"root":  {UserID: "u0", Role: model.RoleSuperAdmin},
		"admin": {UserID: "u1", Role: model.RoleAdmin},
		"desk":  {UserID: "u2", Role: model.RoleStaff, Permissions: map[string]bool{model.PermReservations: true}},
	}
	router := httprouter.New()
	NewReservationHandler(svc, middleware.NewGuard(auth, log), recorder, log).RegisterRoutes(router)
	return router
}

func do(router http.Handler, method, target, token, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCreateIsPublic(t *testing.T) {
	svc := &mockReservationService{createFunc: func(_ context.Context, req *model.ReservationRequest) (*model.Reservation, error) {
		assert.Equal(t, "deluxe", req.RoomTypeID)
		return &model.Reservation{ID: "r1", BookingCode: "SGH-20240102-ABC123", TotalAmount: 1700000}, nil
	}}

	rec := do(newRouter(svc, audit.NopRecorder{}), http.MethodPost, "/api/reservations", "", `{"room_type_id":"deluxe"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"booking_code":"SGH-20240102-ABC123"`)
}

func TestCreateSurfacesUnavailable(t *testing.T) {
	svc := &mockReservationService{createFunc: func(context.Context, *model.ReservationRequest) (*model.Reservation, error) {
		return nil, apperrors.RoomUnavailable("2024-01-11")
	}}

	rec := do(newRouter(svc, audit.NopRecorder{}), http.MethodPost, "/api/reservations", "", `{}`)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), apperrors.CodeRoomUnavailable)
}

func TestCheckNeedsCodeOrEmail(t *testing.T) {
	router := newRouter(&mockReservationService{}, audit.NopRecorder{})

	rec := do(router, http.MethodGet, "/api/reservations/check", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(router, http.MethodGet, "/api/reservations/check?booking_code=SGH-1", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUpdateStatusReadsBodyOrQuery(t *testing.T) {
	svc := &mockReservationService{}
	recorder := &recordingAuditor{}
	router := newRouter(svc, recorder)

	rec := do(router, http.MethodPut, "/api/admin/reservations/r1/status", "desk", `{"status":"confirmed"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "confirmed", svc.status)
	assert.JSONEq(t, `{"message":"Status updated"}`, rec.Body.String())

	rec = do(router, http.MethodPut, "/api/admin/reservations/r1/status?status=cancelled", "desk", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "cancelled", svc.status)

	require.Len(t, recorder.entries, 2)
	assert.Equal(t, "r1", recorder.entries[1].ResourceID)
	assert.Equal(t, "u2", recorder.entries[1].Actor.UserID)
}

func TestResendEmailAuditsFailures(t *testing.T) {
	svc := &mockReservationService{resendErr: errors.New("smtp down")}
	recorder := &recordingAuditor{}

	rec := do(newRouter(svc, recorder), http.MethodPost, "/api/admin/reservations/r1/resend-email", "admin", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Len(t, recorder.entries, 1)
	assert.Equal(t, audit.ActionResend, recorder.entries[0].Action)
	assert.Equal(t, false, recorder.entries[0].Details["success"])
	assert.Equal(t, "guest@example.com", recorder.entries[0].Details["to_email"])
}

func TestResendEmailSuccess(t *testing.T) {
	rec := do(newRouter(&mockReservationService{}, audit.NopRecorder{}), http.MethodPost, "/api/admin/reservations/r1/resend-email", "admin", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Email sent successfully","success":true}`, rec.Body.String())
}

func TestDeleteIsSuperAdminOnly(t *testing.T) {
	svc := &mockReservationService{}
	router := newRouter(svc, audit.NopRecorder{})

	rec := do(router, http.MethodDelete, "/api/reservations/r1", "admin", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Empty(t, svc.deleted)

	rec = do(router, http.MethodDelete, "/api/reservations/r1", "root", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "r1", svc.deleted)
}
