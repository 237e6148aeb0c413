package handler

import (
	"net/http"

	"hms/internal/audit"
	"hms/internal/auth/service"
	apperrors "hms/pkg/errors"
	httputil "hms/pkg/http"
	"hms/pkg/logger"
	"hms/pkg/middleware"
	"hms/pkg/model"

	"github.com/julienschmidt/httprouter"
)

const auditResource = "users"

type AuthHandler struct {
	service service.AuthService
	guard   *middleware.Guard
	audit   audit.Recorder
	log     *logger.Logger
}

func NewAuthHandler(service service.AuthService, guard *middleware.Guard, recorder audit.Recorder, log *logger.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		guard:   guard,
		audit:   recorder,
		log:     log,
	}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.LoginRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Login", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	resp, err := h.service.Login(r.Context(), &req)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Login", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, resp); err != nil {
		h.log.Error("failed to write success response", "handler", "Login", "operation", "WriteSuccess", "error", err)
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.RegisterRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Register", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if principal, ok := middleware.PrincipalFrom(r.Context()); ok && req.Role == model.RoleSuperAdmin && !principal.IsSuperAdmin() {
		if writeErr := httputil.WriteError(w, apperrors.Forbidden("Only a superadmin can create superadmins")); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Register", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	user, err := h.service.Register(r.Context(), &req)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Register", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	h.audit.Record(r.Context(), audit.FromRequest(r, audit.ActionCreate, auditResource, user.ID, map[string]any{
		"email": user.Email,
		"role":  user.Role,
	}))

	if err := httputil.WriteCreated(w, user); err != nil {
		h.log.Error("failed to write created response", "handler", "Register", "operation", "WriteCreated", "error", err)
	}
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	principal, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		if writeErr := httputil.WriteError(w, apperrors.Unauthorized("Not authenticated")); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Me", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	user, err := h.service.Me(r.Context(), principal.UserID)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Me", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, user); err != nil {
		h.log.Error("failed to write success response", "handler", "Me", "operation", "WriteSuccess", "error", err)
	}
}

func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.ForgotPasswordRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ForgotPassword", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	message, err := h.service.ForgotPassword(r.Context(), &req)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ForgotPassword", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteMessage(w, message); err != nil {
		h.log.Error("failed to write message response", "handler", "ForgotPassword", "operation", "WriteMessage", "error", err)
	}
}

func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.ResetPasswordRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ResetPassword", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := h.service.ResetPassword(r.Context(), &req); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ResetPassword", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteMessage(w, "Password reset successful"); err != nil {
		h.log.Error("failed to write message response", "handler", "ResetPassword", "operation", "WriteMessage", "error", err)
	}
}

func (h *AuthHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/auth/login", h.Login)
	router.POST("/api/auth/register", h.guard.Admin(h.Register))
	router.GET("/api/auth/me", h.guard.Authenticated(h.Me))
	router.POST("/api/auth/forgot-password", h.ForgotPassword)
	router.POST("/api/auth/reset-password", h.ResetPassword)
}
