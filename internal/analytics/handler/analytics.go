package handler

import (
	"net/http"

	"hms/internal/analytics/service"
	httputil "hms/pkg/http"
	"hms/pkg/logger"
	"hms/pkg/middleware"
	"hms/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type AnalyticsHandler struct {
	service service.AnalyticsService
	guard   *middleware.Guard
	log     *logger.Logger
}

func NewAnalyticsHandler(service service.AnalyticsService, guard *middleware.Guard, log *logger.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		service: service,
		guard:   guard,
		log:     log,
	}
}

// Track accepts the page in a JSON body or, from beacons that send no body,
// in the page query parameter.
func (h *AnalyticsHandler) Track(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	req := model.TrackRequest{Page: r.URL.Query().Get("page")}
	if r.ContentLength > 0 {
		if err := httputil.DecodeJSON(r, &req); err != nil {
			if writeErr := httputil.WriteError(w, err); writeErr != nil {
				h.log.Error("failed to write error response", "handler", "Track", "operation", "WriteError", "error", writeErr)
			}
			return
		}
	}

	if err := h.service.Track(r.Context(), req.Page); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Track", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, map[string]string{"status": "ok"}); err != nil {
		h.log.Error("failed to write success response", "handler", "Track", "operation", "WriteSuccess", "error", err)
	}
}

func (h *AnalyticsHandler) Recent(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	days, err := httputil.QueryInt(r, "days", service.DefaultDays)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Recent", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	stats, err := h.service.Recent(r.Context(), days)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Recent", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, stats); err != nil {
		h.log.Error("failed to write success response", "handler", "Recent", "operation", "WriteSuccess", "error", err)
	}
}

func (h *AnalyticsHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/analytics/track", h.Track)
	router.GET("/api/admin/analytics", h.guard.Permission(model.PermDashboard, h.Recent))
}
