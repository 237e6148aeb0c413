package handler

import (
	"net/http"

	"hms/internal/audit"
	"hms/internal/auth/service"
	httputil "hms/pkg/http"
	"hms/pkg/logger"
	"hms/pkg/middleware"
	"hms/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type UserHandler struct {
	service service.UserService
	guard   *middleware.Guard
	audit   audit.Recorder
	log     *logger.Logger
}

func NewUserHandler(service service.UserService, guard *middleware.Guard, recorder audit.Recorder, log *logger.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		guard:   guard,
		audit:   recorder,
		log:     log,
	}
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	users, err := h.service.List(r.Context())
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "List", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, users); err != nil {
		h.log.Error("failed to write success response", "handler", "List", "operation", "WriteSuccess", "error", err)
	}
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")
	actor, _ := middleware.PrincipalFrom(r.Context())

	var updates model.UserUpdate
	if err := httputil.DecodeJSON(r, &updates); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Update", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	user, err := h.service.Update(r.Context(), actor, id, &updates)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Update", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	details := map[string]any{"password_changed": updates.Password != nil && *updates.Password != ""}
	if updates.Role != nil {
		details["role"] = *updates.Role
	}
	if updates.Permissions != nil {
		details["permissions"] = *updates.Permissions
	}
	h.audit.Record(r.Context(), audit.FromRequest(r, audit.ActionUpdate, auditResource, id, details))

	if err := httputil.WriteSuccess(w, user); err != nil {
		h.log.Error("failed to write success response", "handler", "Update", "operation", "WriteSuccess", "error", err)
	}
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")
	actor, _ := middleware.PrincipalFrom(r.Context())

	if err := h.service.Delete(r.Context(), actor, id); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Delete", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	h.audit.Record(r.Context(), audit.FromRequest(r, audit.ActionDelete, auditResource, id, nil))

	if err := httputil.WriteMessage(w, "User deleted"); err != nil {
		h.log.Error("failed to write message response", "handler", "Delete", "operation", "WriteMessage", "error", err)
	}
}

func (h *UserHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/admin/users", h.guard.Permission(model.PermUsers, h.List))
	router.PUT("/api/admin/users/:id", h.guard.Permission(model.PermUsers, h.Update))
	router.DELETE("/api/admin/users/:id", h.guard.SuperAdmin(h.Delete))
}
