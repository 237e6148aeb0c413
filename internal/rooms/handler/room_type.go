package handler

import (
	"net/http"

	"hms/internal/audit"
	"hms/internal/rooms/service"
	httputil "hms/pkg/http"
	"hms/pkg/logger"
	"hms/pkg/middleware"
	"hms/pkg/model"

	"github.com/julienschmidt/httprouter"
)

const auditResource = "room_types"

type RoomTypeHandler struct {
	service service.RoomTypeService
	guard   *middleware.Guard
	audit   audit.Recorder
	log     *logger.Logger
}

func NewRoomTypeHandler(service service.RoomTypeService, guard *middleware.Guard, recorder audit.Recorder, log *logger.Logger) *RoomTypeHandler {
	return &RoomTypeHandler{
		service: service,
		guard:   guard,
		audit:   recorder,
		log:     log,
	}
}

type reorderRequest struct {
	RoomIDs []string `json:"room_ids"`
}

func (h *RoomTypeHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	rooms, err := h.service.ListActive(r.Context())
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "List", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, rooms); err != nil {
		h.log.Error("failed to write success response", "handler", "List", "operation", "WriteSuccess", "error", err)
	}
}

func (h *RoomTypeHandler) ListAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	rooms, err := h.service.ListAll(r.Context())
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ListAll", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, rooms); err != nil {
		h.log.Error("failed to write success response", "handler", "ListAll", "operation", "WriteSuccess", "error", err)
	}
}

func (h *RoomTypeHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	room, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetByID", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, room); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "operation", "WriteSuccess", "error", err)
	}
}

func (h *RoomTypeHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var room model.RoomType
	if err := httputil.DecodeJSON(r, &room); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := h.service.Create(r.Context(), &room); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	h.audit.Record(r.Context(), audit.FromRequest(r, audit.ActionCreate, auditResource, room.ID, map[string]any{"name": room.Name}))

	if err := httputil.WriteCreated(w, room); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *RoomTypeHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	var updates model.RoomTypeUpdate
	if err := httputil.DecodeJSON(r, &updates); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Update", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	room, err := h.service.Update(r.Context(), id, &updates)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Update", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	h.audit.Record(r.Context(), audit.FromRequest(r, audit.ActionUpdate, auditResource, id, map[string]any{"name": room.Name}))

	if err := httputil.WriteSuccess(w, room); err != nil {
		h.log.Error("failed to write success response", "handler", "Update", "operation", "WriteSuccess", "error", err)
	}
}

func (h *RoomTypeHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	if err := h.service.Deactivate(r.Context(), id); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Delete", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	h.audit.Record(r.Context(), audit.FromRequest(r, audit.ActionDelete, auditResource, id, nil))

	if err := httputil.WriteMessage(w, "Room deleted"); err != nil {
		h.log.Error("failed to write message response", "handler", "Delete", "operation", "WriteMessage", "error", err)
	}
}

func (h *RoomTypeHandler) Purge(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	if err := h.service.Purge(r.Context(), id); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Purge", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	h.audit.Record(r.Context(), audit.FromRequest(r, audit.ActionPurge, auditResource, id, nil))

	if err := httputil.WriteMessage(w, "Room permanently deleted"); err != nil {
		h.log.Error("failed to write message response", "handler", "Purge", "operation", "WriteMessage", "error", err)
	}
}

func (h *RoomTypeHandler) Reorder(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req reorderRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Reorder", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := h.service.Reorder(r.Context(), req.RoomIDs); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Reorder", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	h.audit.Record(r.Context(), audit.FromRequest(r, audit.ActionReorder, auditResource, "", map[string]any{"room_ids": req.RoomIDs}))

	if err := httputil.WriteMessage(w, "Rooms reordered successfully"); err != nil {
		h.log.Error("failed to write message response", "handler", "Reorder", "operation", "WriteMessage", "error", err)
	}
}

func (h *RoomTypeHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/rooms", h.List)
	router.GET("/api/rooms/:id", h.GetByID)

	router.GET("/api/admin/rooms", h.guard.Permission(model.PermRooms, h.ListAll))
	router.POST("/api/admin/rooms", h.guard.Permission(model.PermRooms, h.Create))
	router.POST("/api/admin/rooms/reorder", h.guard.Permission(model.PermRooms, h.Reorder))
	router.PUT("/api/admin/rooms/:id", h.guard.Permission(model.PermRooms, h.Update))
	router.DELETE("/api/admin/rooms/:id", h.guard.Permission(model.PermRooms, h.Delete))
	router.DELETE("/api/admin/rooms/:id/purge", h.guard.SuperAdmin(h.Purge))
}
