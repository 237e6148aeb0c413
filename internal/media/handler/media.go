package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"hms/internal/audit"
	"hms/internal/media/service"
	apperrors "hms/pkg/errors"
	httputil "hms/pkg/http"
	"hms/pkg/logger"
	"hms/pkg/middleware"
	"hms/pkg/model"

	"github.com/julienschmidt/httprouter"
)

const (
	auditResource = "media"

	formFile        = "file"
	multipartMemory = 8 << 20
)

type MediaHandler struct {
	service   service.MediaService
	guard     *middleware.Guard
	audit     audit.Recorder
	log       *logger.Logger
	maxUpload int64
}

func NewMediaHandler(service service.MediaService, guard *middleware.Guard, recorder audit.Recorder, log *logger.Logger, maxUpload int) *MediaHandler {
	return &MediaHandler{
		service:   service,
		guard:     guard,
		audit:     recorder,
		log:       log,
		maxUpload: int64(maxUpload),
	}
}

// readUpload pulls the "file" part out of a multipart request, enforcing
// the upload size limit.
func (h *MediaHandler) readUpload(w http.ResponseWriter, r *http.Request) (service.Upload, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return service.Upload{}, apperrors.InvalidInput(fmt.Sprintf("File exceeds the %d byte upload limit", h.maxUpload))
		}
		return service.Upload{}, apperrors.InvalidInput("Expected a multipart form upload")
	}

	file, header, err := r.FormFile(formFile)
	if err != nil {
		return service.Upload{}, apperrors.InvalidInput("file is required")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return service.Upload{}, apperrors.InvalidInput("Failed to read uploaded file")
	}

	return service.Upload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

func wantsCaption(r *http.Request) bool {
	caption, err := strconv.ParseBool(r.FormValue("generate_caption"))
	return err == nil && caption
}

func (h *MediaHandler) fail(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *MediaHandler) UploadGallery(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	file, err := h.readUpload(w, r)
	if err != nil {
		h.fail(w, "UploadGallery", err)
		return
	}

	item, err := h.service.UploadGallery(r.Context(), file, r.FormValue("category"), wantsCaption(r))
	if err != nil {
		h.fail(w, "UploadGallery", err)
		return
	}

	h.audit.Record(r.Context(), audit.FromRequest(r, audit.ActionUpload, auditResource, item.ID, map[string]any{
		"key":      item.Key,
		"category": item.Category,
	}))

	if err := httputil.WriteCreated(w, item); err != nil {
		h.log.Error("failed to write created response", "handler", "UploadGallery", "operation", "WriteCreated", "error", err)
	}
}

func (h *MediaHandler) UploadRoomImage(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	file, err := h.readUpload(w, r)
	if err != nil {
		h.fail(w, "UploadRoomImage", err)
		return
	}

	roomTypeID := r.FormValue("room_type_id")
	result, err := h.service.UploadRoomImage(r.Context(), roomTypeID, file, wantsCaption(r))
	if err != nil {
		h.fail(w, "UploadRoomImage", err)
		return
	}

	h.audit.Record(r.Context(), audit.FromRequest(r, audit.ActionUpload, auditResource, roomTypeID, map[string]any{
		"key":  result.Key,
		"kind": "room_image",
	}))

	if err := httputil.WriteCreated(w, result); err != nil {
		h.log.Error("failed to write created response", "handler", "UploadRoomImage", "operation", "WriteCreated", "error", err)
	}
}

func (h *MediaHandler) UploadRoomVideo(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	file, err := h.readUpload(w, r)
	if err != nil {
		h.fail(w, "UploadRoomVideo", err)
		return
	}

	roomTypeID := r.FormValue("room_type_id")
	result, err := h.service.UploadRoomVideo(r.Context(), roomTypeID, file)
	if err != nil {
		h.fail(w, "UploadRoomVideo", err)
		return
	}

	h.audit.Record(r.Context(), audit.FromRequest(r, audit.ActionUpload, auditResource, roomTypeID, map[string]any{
		"key":  result.Key,
		"kind": "room_video",
	}))

	if err := httputil.WriteCreated(w, result); err != nil {
		h.log.Error("failed to write created response", "handler", "UploadRoomVideo", "operation", "WriteCreated", "error", err)
	}
}

func (h *MediaHandler) UploadContentImage(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	file, err := h.readUpload(w, r)
	if err != nil {
		h.fail(w, "UploadContentImage", err)
		return
	}

	result, err := h.service.UploadContentImage(r.Context(), r.FormValue("section"), file, wantsCaption(r))
	if err != nil {
		h.fail(w, "UploadContentImage", err)
		return
	}

	h.audit.Record(r.Context(), audit.FromRequest(r, audit.ActionUpload, auditResource, result.Key, map[string]any{
		"kind": "content_image",
	}))

	if err := httputil.WriteCreated(w, result); err != nil {
		h.log.Error("failed to write created response", "handler", "UploadContentImage", "operation", "WriteCreated", "error", err)
	}
}

func (h *MediaHandler) ListGallery(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	items, err := h.service.ListGallery(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		h.fail(w, "ListGallery", err)
		return
	}

	if err := httputil.WriteSuccess(w, items); err != nil {
		h.log.Error("failed to write success response", "handler", "ListGallery", "operation", "WriteSuccess", "error", err)
	}
}

func (h *MediaHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.fail(w, "Delete", err)
		return
	}

	h.audit.Record(r.Context(), audit.FromRequest(r, audit.ActionDelete, auditResource, id, nil))

	if err := httputil.WriteMessage(w, "Media deleted"); err != nil {
		h.log.Error("failed to write message response", "handler", "Delete", "operation", "WriteMessage", "error", err)
	}
}

func (h *MediaHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/gallery", h.ListGallery)

	router.POST("/api/admin/media/upload/gallery", h.guard.Permission(model.PermGallery, h.UploadGallery))
	router.POST("/api/admin/media/upload/room-image", h.guard.Permission(model.PermRooms, h.UploadRoomImage))
	router.POST("/api/admin/media/upload/room-video", h.guard.Permission(model.PermRooms, h.UploadRoomVideo))
	router.POST("/api/admin/media/upload/content-image", h.guard.Permission(model.PermContent, h.UploadContentImage))
	router.DELETE("/api/admin/media/:id", h.guard.Permission(model.PermGallery, h.Delete))
}
