package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"peoplehub/internal/requestctx"
)

// RequestID honors an incoming X-Request-ID header and mints a fresh UUID
// when absent. The ID is echoed on the response and stashed in the context
// for the request logger.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get("X-Request-ID")
		if reqID == "" {
			reqID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", reqID)
		next.ServeHTTP(w, r.WithContext(requestctx.WithRequestID(r.Context(), reqID)))
	})
}
