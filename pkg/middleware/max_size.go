package middleware

import (
	"net/http"
	"strings"
)

// MaxRequestSize caps request bodies at limit bytes, or uploadLimit on paths
// containing uploadSegment.
func MaxRequestSize(limit, uploadLimit int64, uploadSegment string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			max := limit
			if uploadSegment != "" && strings.Contains(r.URL.Path, uploadSegment) {
				max = uploadLimit
			}
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, max)
			}
			next.ServeHTTP(w, r)
		})
	}
}
