package middleware

import (
	"fmt"
	"net/http"

	"peoplehub/internal/domain/apperr"
	"peoplehub/internal/transport/http/api"
)

func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				api.Error(w, apperr.Internal("Server Error", fmt.Errorf("panic: %v", rec)))
			}
		}()
		next.ServeHTTP(w, r)
	})
}
