package handler

import (
	"net/http"

	"hms/internal/audit"
	"hms/internal/promos/service"
	httputil "hms/pkg/http"
	"hms/pkg/logger"
	"hms/pkg/middleware"
	"hms/pkg/model"

	"github.com/julienschmidt/httprouter"
)

const auditResource = "promo_codes"

type PromoCodeHandler struct {
	service service.PromoCodeService
	guard   *middleware.Guard
	audit   audit.Recorder
	log     *logger.Logger
}

func NewPromoCodeHandler(service service.PromoCodeService, guard *middleware.Guard, recorder audit.Recorder, log *logger.Logger) *PromoCodeHandler {
	return &PromoCodeHandler{
		service: service,
		guard:   guard,
		audit:   recorder,
		log:     log,
	}
}

func (h *PromoCodeHandler) Verify(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.PromoVerifyRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Verify", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	resp, err := h.service.Verify(r.Context(), &req)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Verify", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, resp); err != nil {
		h.log.Error("failed to write success response", "handler", "Verify", "operation", "WriteSuccess", "error", err)
	}
}

func (h *PromoCodeHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	list, err := h.service.List(r.Context())
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "List", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, list); err != nil {
		h.log.Error("failed to write success response", "handler", "List", "operation", "WriteSuccess", "error", err)
	}
}

func (h *PromoCodeHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	promo := model.PromoCode{IsActive: true}
	if err := httputil.DecodeJSON(r, &promo); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := h.service.Create(r.Context(), &promo); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	h.audit.Record(r.Context(), audit.FromRequest(r, audit.ActionCreate, auditResource, promo.ID, map[string]any{"code": promo.Code}))

	if err := httputil.WriteCreated(w, promo); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *PromoCodeHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	var updates model.PromoCodeUpdate
	if err := httputil.DecodeJSON(r, &updates); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Update", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	promo, err := h.service.Update(r.Context(), id, &updates)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Update", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	h.audit.Record(r.Context(), audit.FromRequest(r, audit.ActionUpdate, auditResource, id, map[string]any{"code": promo.Code}))

	if err := httputil.WriteSuccess(w, promo); err != nil {
		h.log.Error("failed to write success response", "handler", "Update", "operation", "WriteSuccess", "error", err)
	}
}

func (h *PromoCodeHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	if err := h.service.Delete(r.Context(), id); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Delete", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	h.audit.Record(r.Context(), audit.FromRequest(r, audit.ActionDelete, auditResource, id, nil))

	if err := httputil.WriteMessage(w, "Promo code deleted"); err != nil {
		h.log.Error("failed to write message response", "handler", "Delete", "operation", "WriteMessage", "error", err)
	}
}

func (h *PromoCodeHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/promo/verify", h.Verify)

	router.GET("/api/admin/promo-codes", h.guard.Permission(model.PermPromo, h.List))
	router.POST("/api/admin/promo-codes", h.guard.Permission(model.PermPromo, h.Create))
	router.PUT("/api/admin/promo-codes/:id", h.guard.Permission(model.PermPromo, h.Update))
	router.DELETE("/api/admin/promo-codes/:id", h.guard.Permission(model.PermPromo, h.Delete))
}
