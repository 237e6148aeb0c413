package handler

import (
	"net/http"

	"hms/internal/audit"
	"hms/internal/rateplans/service"
	httputil "hms/pkg/http"
	"hms/pkg/logger"
	"hms/pkg/middleware"
	"hms/pkg/model"

	"github.com/julienschmidt/httprouter"
)

const auditResource = "rate_plans"

type RatePlanHandler struct {
	service service.RatePlanService
	guard   *middleware.Guard
	audit   audit.Recorder
	log     *logger.Logger
}

func NewRatePlanHandler(service service.RatePlanService, guard *middleware.Guard, recorder audit.Recorder, log *logger.Logger) *RatePlanHandler {
	return &RatePlanHandler{
		service: service,
		guard:   guard,
		audit:   recorder,
		log:     log,
	}
}

func (h *RatePlanHandler) Catalog(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	plans, err := h.service.Catalog(r.Context(), r.URL.Query().Get("room_type_id"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Catalog", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, plans); err != nil {
		h.log.Error("failed to write success response", "handler", "Catalog", "operation", "WriteSuccess", "error", err)
	}
}

func (h *RatePlanHandler) ListAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	plans, err := h.service.ListAll(r.Context())
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ListAll", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, plans); err != nil {
		h.log.Error("failed to write success response", "handler", "ListAll", "operation", "WriteSuccess", "error", err)
	}
}

func (h *RatePlanHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	// Plans are active unless the body says otherwise.
	plan := model.RatePlan{IsActive: true}
	if err := httputil.DecodeJSON(r, &plan); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := h.service.Create(r.Context(), &plan); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	h.audit.Record(r.Context(), audit.FromRequest(r, audit.ActionCreate, auditResource, plan.ID, map[string]any{"name": plan.Name}))

	if err := httputil.WriteCreated(w, plan); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *RatePlanHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	var updates model.RatePlanUpdate
	if err := httputil.DecodeJSON(r, &updates); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Update", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	plan, err := h.service.Update(r.Context(), id, &updates)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Update", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	h.audit.Record(r.Context(), audit.FromRequest(r, audit.ActionUpdate, auditResource, id, map[string]any{"updates": updates}))

	if err := httputil.WriteSuccess(w, plan); err != nil {
		h.log.Error("failed to write success response", "handler", "Update", "operation", "WriteSuccess", "error", err)
	}
}

func (h *RatePlanHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	if err := h.service.Delete(r.Context(), id); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Delete", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	h.audit.Record(r.Context(), audit.FromRequest(r, audit.ActionDelete, auditResource, id, nil))

	if err := httputil.WriteMessage(w, "Rate plan deleted"); err != nil {
		h.log.Error("failed to write message response", "handler", "Delete", "operation", "WriteMessage", "error", err)
	}
}

func (h *RatePlanHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/rate-plans", h.Catalog)

	router.GET("/api/admin/rate-plans", h.guard.Permission(model.PermRooms, h.ListAll))
	router.POST("/api/admin/rate-plans", h.guard.Permission(model.PermRooms, h.Create))
	router.PUT("/api/admin/rate-plans/:id", h.guard.Permission(model.PermRooms, h.Update))
	router.DELETE("/api/admin/rate-plans/:id", h.guard.Permission(model.PermRooms, h.Delete))
}
