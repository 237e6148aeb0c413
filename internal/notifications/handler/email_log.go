package handler

import (
	"net/http"

	"hms/internal/notifications/service"
	httputil "hms/pkg/http"
	"hms/pkg/logger"
	"hms/pkg/middleware"
	"hms/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type EmailLogHandler struct {
	service service.EmailService
	guard   *middleware.Guard
	log     *logger.Logger
}

func NewEmailLogHandler(service service.EmailService, guard *middleware.Guard, log *logger.Logger) *EmailLogHandler {
	return &EmailLogHandler{
		service: service,
		guard:   guard,
		log:     log,
	}
}

func (h *EmailLogHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	logs, err := h.service.RecentLogs(r.Context())
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

func (h *EmailLogHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/admin/email-logs", h.guard.Permission(model.PermEmailConfig, h.List))
}
