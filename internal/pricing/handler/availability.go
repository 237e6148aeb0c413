package handler

import (
	"net/http"

	"hms/internal/pricing/service"
	httputil "hms/pkg/http"
	"hms/pkg/logger"

	"github.com/julienschmidt/httprouter"
)

type AvailabilityHandler struct {
	service service.AvailabilityService
	log     *logger.Logger
}

func NewAvailabilityHandler(service service.AvailabilityService, log *logger.Logger) *AvailabilityHandler {
	return &AvailabilityHandler{
		service: service,
		log:     log,
	}
}

func (h *AvailabilityHandler) Search(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	q := r.URL.Query()
	rooms, err := h.service.Search(r.Context(), q.Get("check_in"), q.Get("check_out"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Search", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, rooms); err != nil {
		h.log.Error("failed to write success response", "handler", "Search", "operation", "WriteSuccess", "error", err)
	}
}

func (h *AvailabilityHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/availability", h.Search)
}
