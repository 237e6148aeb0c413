package middleware

import (
	"net/http"

	httputil "hms/pkg/http"
)

func reject(w http.ResponseWriter, status int, code, message string) {
	_ = httputil.WriteJSON(w, status, httputil.ErrorResponse{
		Error: message,
		Code:  code,
	})
}
