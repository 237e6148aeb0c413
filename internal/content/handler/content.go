package handler

import (
	"net/http"

	"hms/internal/audit"
	"hms/internal/content/service"
	httputil "hms/pkg/http"
	"hms/pkg/logger"
	"hms/pkg/middleware"
	"hms/pkg/model"

	"github.com/julienschmidt/httprouter"
)

const auditResource = "site_content"

type ContentHandler struct {
	service service.ContentService
	guard   *middleware.Guard
	audit   audit.Recorder
	log     *logger.Logger
}

func NewContentHandler(service service.ContentService, guard *middleware.Guard, recorder audit.Recorder, log *logger.Logger) *ContentHandler {
	return &ContentHandler{
		service: service,
		guard:   guard,
		audit:   recorder,
		log:     log,
	}
}

func (h *ContentHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	items, err := h.service.List(r.Context())
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "List", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, items); err != nil {
		h.log.Error("failed to write success response", "handler", "List", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ContentHandler) ListPage(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	items, err := h.service.ListPage(r.Context(), ps.ByName("page"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ListPage", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, items); err != nil {
		h.log.Error("failed to write success response", "handler", "ListPage", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ContentHandler) Upsert(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var content model.SiteContent
	if err := httputil.DecodeJSON(r, &content); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Upsert", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := h.service.Upsert(r.Context(), &content); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Upsert", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	h.audit.Record(r.Context(), audit.FromRequest(r, audit.ActionUpdate, auditResource, content.ID, map[string]any{
		"page":    content.Page,
		"section": content.Section,
	}))

	if err := httputil.WriteSuccess(w, content); err != nil {
		h.log.Error("failed to write success response", "handler", "Upsert", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ContentHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	var update model.SiteContentUpdate
	if err := httputil.DecodeJSON(r, &update); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Update", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := h.service.Update(r.Context(), id, &update); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Update", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	h.audit.Record(r.Context(), audit.FromRequest(r, audit.ActionUpdate, auditResource, id, nil))

	if err := httputil.WriteMessage(w, "Content updated"); err != nil {
		h.log.Error("failed to write message response", "handler", "Update", "operation", "WriteMessage", "error", err)
	}
}

func (h *ContentHandler) DeleteSection(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	page, section := ps.ByName("page"), ps.ByName("section")

	if err := h.service.DeleteSection(r.Context(), page, section); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "DeleteSection", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	h.audit.Record(r.Context(), audit.FromRequest(r, audit.ActionDelete, auditResource, page+"/"+section, nil))

	if err := httputil.WriteMessage(w, "Content deleted"); err != nil {
		h.log.Error("failed to write message response", "handler", "DeleteSection", "operation", "WriteMessage", "error", err)
	}
}

func (h *ContentHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/content", h.List)
	router.GET("/api/content/:page", h.ListPage)

	router.POST("/api/admin/content", h.guard.Permission(model.PermContent, h.Upsert))
	router.PUT("/api/admin/content/:id", h.guard.Permission(model.PermContent, h.Update))
	router.DELETE("/api/admin/content/:page/:section", h.guard.Permission(model.PermContent, h.DeleteSection))
}
