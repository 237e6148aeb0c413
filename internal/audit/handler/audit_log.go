package handler

import (
	"net/http"

	"hms/internal/audit/service"
	httputil "hms/pkg/http"
	"hms/pkg/logger"
	"hms/pkg/middleware"

	"github.com/julienschmidt/httprouter"
)

type AuditLogHandler struct {
	service service.AuditService
	guard   *middleware.Guard
	log     *logger.Logger
}

func NewAuditLogHandler(service service.AuditService, guard *middleware.Guard, log *logger.Logger) *AuditLogHandler {
	return &AuditLogHandler{
		service: service,
		guard:   guard,
		log:     log,
	}
}

func (h *AuditLogHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, err := httputil.QueryInt(r, "limit", 0)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "List", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	logs, err := h.service.List(r.Context(), r.URL.Query().Get("resource"), limit)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "List", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, logs); err != nil {
		h.log.Error("failed to write success response", "handler", "List", "operation", "WriteSuccess", "error", err)
	}
}

func (h *AuditLogHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/admin/audit-logs", h.guard.SuperAdmin(h.List))
}
