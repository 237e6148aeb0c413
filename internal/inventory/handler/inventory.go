package handler

import (
	"fmt"
	"net/http"

	"hms/internal/audit"
	"hms/internal/inventory/service"
	httputil "hms/pkg/http"
	"hms/pkg/logger"
	"hms/pkg/middleware"
	"hms/pkg/model"

	"github.com/julienschmidt/httprouter"
)

const auditResource = "inventory"

type InventoryHandler struct {
	service service.InventoryService
	guard   *middleware.Guard
	audit   audit.Recorder
	log     *logger.Logger
}

func NewInventoryHandler(service service.InventoryService, guard *middleware.Guard, recorder audit.Recorder, log *logger.Logger) *InventoryHandler {
	return &InventoryHandler{
		service: service,
		guard:   guard,
		audit:   recorder,
		log:     log,
	}
}

func (h *InventoryHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	q := r.URL.Query()
	days, err := h.service.List(r.Context(), q.Get("room_type_id"), q.Get("start_date"), q.Get("end_date"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "List", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, days); err != nil {
		h.log.Error("failed to write success response", "handler", "List", "operation", "WriteSuccess", "error", err)
	}
}

func (h *InventoryHandler) Upsert(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var day model.InventoryDay
	if err := httputil.DecodeJSON(r, &day); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Upsert", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := h.service.UpsertDay(r.Context(), &day); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Upsert", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	h.audit.Record(r.Context(), audit.FromRequest(r, audit.ActionUpdate, auditResource, day.ID, map[string]any{
		"room_type_id": day.RoomTypeID,
		"date":         day.Date,
	}))

	if err := httputil.WriteSuccess(w, day); err != nil {
		h.log.Error("failed to write success response", "handler", "Upsert", "operation", "WriteSuccess", "error", err)
	}
}

func (h *InventoryHandler) BulkUpdate(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.BulkInventoryUpdate
	if err := httputil.DecodeJSON(r, &req); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "BulkUpdate", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	updated, err := h.service.BulkUpdate(r.Context(), &req)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "BulkUpdate", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	h.audit.Record(r.Context(), audit.FromRequest(r, audit.ActionUpdate, auditResource, req.RoomTypeID, map[string]any{
		"start_date":   req.StartDate,
		"end_date":     req.EndDate,
		"days_of_week": req.DaysOfWeek,
		"updated":      updated,
	}))

	if err := httputil.WriteMessage(w, fmt.Sprintf("Updated %d days", updated)); err != nil {
		h.log.Error("failed to write message response", "handler", "BulkUpdate", "operation", "WriteMessage", "error", err)
	}
}

func (h *InventoryHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/inventory", h.List)

	router.POST("/api/admin/inventory", h.guard.Permission(model.PermRooms, h.Upsert))
	router.POST("/api/admin/inventory/bulk-update", h.guard.Permission(model.PermRooms, h.BulkUpdate))
}
