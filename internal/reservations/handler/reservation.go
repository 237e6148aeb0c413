package handler

import (
	"net/http"

	"hms/internal/audit"
	"hms/internal/reservations/service"
	httputil "hms/pkg/http"
	"hms/pkg/logger"
	"hms/pkg/middleware"
	"hms/pkg/model"

	"github.com/julienschmidt/httprouter"
)

const auditResource = "reservations"

type ReservationHandler struct {
	service service.ReservationService
	guard   *middleware.Guard
	audit   audit.Recorder
	log     *logger.Logger
}

func NewReservationHandler(service service.ReservationService, guard *middleware.Guard, recorder audit.Recorder, log *logger.Logger) *ReservationHandler {
	return &ReservationHandler{
		service: service,
		guard:   guard,
		audit:   recorder,
		log:     log,
	}
}

type statusRequest struct {
	Status string `json:"status"`
}

type resendResponse struct {
	Message string `json:"message"`
	Success bool   `json:"success"`
}

func (h *ReservationHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.ReservationRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	reservation, err := h.service.Create(r.Context(), &req)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, reservation); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *ReservationHandler) Check(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()
	reservations, err := h.service.Check(r.Context(), query.Get("booking_code"), query.Get("email"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Check", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, reservations); err != nil {
		h.log.Error("failed to write success response", "handler", "Check", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ReservationHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()
	filter := model.ReservationFilter{
		Status:    query.Get("status"),
		StartDate: query.Get("start_date"),
		EndDate:   query.Get("end_date"),
	}

	reservations, err := h.service.List(r.Context(), filter)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "List", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, reservations); err != nil {
		h.log.Error("failed to write success response", "handler", "List", "operation", "WriteSuccess", "error", err)
	}
}

// UpdateStatus takes the status from the JSON body, falling back to the
// status query parameter.
func (h *ReservationHandler) UpdateStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	status := r.URL.Query().Get("status")
	if r.ContentLength != 0 {
		var body statusRequest
		if err := httputil.DecodeJSON(r, &body); err != nil {
			if writeErr := httputil.WriteError(w, err); writeErr != nil {
				h.log.Error("failed to write error response", "handler", "UpdateStatus", "operation", "WriteError", "error", writeErr)
			}
			return
		}
		if body.Status != "" {
			status = body.Status
		}
	}

	if err := h.service.UpdateStatus(r.Context(), id, status); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "UpdateStatus", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	h.audit.Record(r.Context(), audit.FromRequest(r, audit.ActionUpdate, auditResource, id, map[string]any{"status": status}))

	if err := httputil.WriteMessage(w, "Status updated"); err != nil {
		h.log.Error("failed to write message response", "handler", "UpdateStatus", "operation", "WriteMessage", "error", err)
	}
}

func (h *ReservationHandler) ResendEmail(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	reservation, err := h.service.ResendEmail(r.Context(), id)
	if reservation != nil {
		h.audit.Record(r.Context(), audit.FromRequest(r, audit.ActionResend, auditResource, id, map[string]any{
			"success":  err == nil,
			"to_email": reservation.GuestEmail,
		}))
	}
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ResendEmail", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, resendResponse{Message: "Email sent successfully", Success: true}); err != nil {
		h.log.Error("failed to write success response", "handler", "ResendEmail", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ReservationHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	if err := h.service.Delete(r.Context(), id); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Delete", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	h.audit.Record(r.Context(), audit.FromRequest(r, audit.ActionDelete, auditResource, id, nil))

	if err := httputil.WriteMessage(w, "Reservation deleted permanently"); err != nil {
		h.log.Error("failed to write message response", "handler", "Delete", "operation", "WriteMessage", "error", err)
	}
}

func (h *ReservationHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/reservations", h.Create)
	router.GET("/api/reservations/check", h.Check)
	router.DELETE("/api/reservations/:id", h.guard.SuperAdmin(h.Delete))

	router.GET("/api/admin/reservations", h.guard.Permission(model.PermReservations, h.List))
	router.PUT("/api/admin/reservations/:id/status", h.guard.Permission(model.PermReservations, h.UpdateStatus))
	router.POST("/api/admin/reservations/:id/resend-email", h.guard.Permission(model.PermReservations, h.ResendEmail))
}
