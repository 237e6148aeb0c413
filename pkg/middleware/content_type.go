package middleware

import (
	"net/http"
	"strings"

	apperrors "hms/pkg/errors"
	"hms/pkg/logger"
)

const (
	contentTypeJSON      = "application/json"
	contentTypeMultipart = "multipart/form-data"
)

// ContentTypeValidation requires JSON bodies on writes. Paths containing
// uploadSegment accept multipart form data instead.
func ContentTypeValidation(log *logger.Logger, uploadSegment string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if requiresContentType(r) {
				contentType := extractContentType(r.Header.Get("Content-Type"))
				expected := contentTypeJSON
				if uploadSegment != "" && strings.Contains(r.URL.Path, uploadSegment) {
					expected = contentTypeMultipart
				}

				if contentType != expected {
					rejectInvalidContentType(w, log, r, contentType, expected)
					return
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

// Bodiless writes such as POST .../resend-email pass through.
func requiresContentType(r *http.Request) bool {
	switch r.Method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return r.ContentLength != 0
	}
	return false
}

func extractContentType(header string) string {
	if header == "" {
		return ""
	}

	mediaType, _, _ := strings.Cut(header, ";")
	return strings.ToLower(strings.TrimSpace(mediaType))
}

func rejectInvalidContentType(w http.ResponseWriter, log *logger.Logger, r *http.Request, contentType, expected string) {
	log.Warn("Invalid Content-Type header",
		"request_id", RequestID(r.Context()),
		"content_type", contentType,
		"expected", expected,
		"path", r.URL.Path,
		"method", r.Method,
	)

	reject(w, http.StatusUnsupportedMediaType, apperrors.CodeBadRequest, "Content-Type must be "+expected)
}
