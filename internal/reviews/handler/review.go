package handler

import (
	"net/http"
	"strconv"

	"hms/internal/audit"
	"hms/internal/reviews/service"
	apperrors "hms/pkg/errors"
	httputil "hms/pkg/http"
	"hms/pkg/logger"
	"hms/pkg/middleware"
	"hms/pkg/model"

	"github.com/julienschmidt/httprouter"
)

const auditResource = "reviews"

type ReviewHandler struct {
	service service.ReviewService
	guard   *middleware.Guard
	audit   audit.Recorder
	log     *logger.Logger
}

func NewReviewHandler(service service.ReviewService, guard *middleware.Guard, recorder audit.Recorder, log *logger.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: service,
		guard:   guard,
		audit:   recorder,
		log:     log,
	}
}

func (h *ReviewHandler) Submit(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var review model.Review
	if err := httputil.DecodeJSON(r, &review); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Submit", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := h.service.Submit(r.Context(), &review); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Submit", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteJSON(w, http.StatusCreated, map[string]string{"message": "Review submitted for approval"}); err != nil {
		h.log.Error("failed to write created response", "handler", "Submit", "operation", "WriteJSON", "error", err)
	}
}

func (h *ReviewHandler) ListVisible(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	reviews, err := h.service.ListVisible(r.Context())
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ListVisible", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, reviews); err != nil {
		h.log.Error("failed to write success response", "handler", "ListVisible", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ReviewHandler) ListAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	reviews, err := h.service.ListAll(r.Context())
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ListAll", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, reviews); err != nil {
		h.log.Error("failed to write success response", "handler", "ListAll", "operation", "WriteSuccess", "error", err)
	}
}

// SetVisibility reads is_visible from the body, or from the query string
// for older admin clients.
func (h *ReviewHandler) SetVisibility(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	var req model.ReviewVisibility
	if raw := r.URL.Query().Get("is_visible"); raw != "" {
		visible, err := strconv.ParseBool(raw)
		if err != nil {
			if writeErr := httputil.WriteError(w, apperrors.InvalidInput("is_visible must be true or false")); writeErr != nil {
				h.log.Error("failed to write error response", "handler", "SetVisibility", "operation", "WriteError", "error", writeErr)
			}
			return
		}
		req.IsVisible = &visible
	} else if err := httputil.DecodeJSON(r, &req); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "SetVisibility", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := h.service.SetVisibility(r.Context(), id, &req); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "SetVisibility", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	h.audit.Record(r.Context(), audit.FromRequest(r, audit.ActionUpdate, auditResource, id, map[string]any{"is_visible": *req.IsVisible}))

	if err := httputil.WriteMessage(w, "Review visibility updated"); err != nil {
		h.log.Error("failed to write message response", "handler", "SetVisibility", "operation", "WriteMessage", "error", err)
	}
}

func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	if err := h.service.Delete(r.Context(), id); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Delete", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	h.audit.Record(r.Context(), audit.FromRequest(r, audit.ActionDelete, auditResource, id, nil))

	if err := httputil.WriteMessage(w, "Review deleted permanently"); err != nil {
		h.log.Error("failed to write message response", "handler", "Delete", "operation", "WriteMessage", "error", err)
	}
}

func (h *ReviewHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/reviews", h.ListVisible)
	router.POST("/api/reviews", h.Submit)

	router.GET("/api/admin/reviews", h.guard.Permission(model.PermReviews, h.ListAll))
	router.PUT("/api/admin/reviews/:id/visibility", h.guard.Permission(model.PermReviews, h.SetVisibility))
	router.DELETE("/api/admin/reviews/:id", h.guard.SuperAdmin(h.Delete))
}
