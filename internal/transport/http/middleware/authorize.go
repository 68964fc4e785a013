package middleware

import (
	"fmt"
	"net/http"

	"peoplehub/internal/domain/apperr"
	"peoplehub/internal/domain/auth"
	"peoplehub/internal/transport/http/api"
)

// Authorize gates a route on the policy table. It requires Authenticate to
// have run earlier in the chain; it is a pure predicate with no side effects.
func Authorize(resource, action string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := GetIdentity(r.Context())
			if !ok {
				api.Error(w, apperr.Unauthenticated("Not authorized to access this route"))
				return
			}
			if !auth.Allowed(resource, action, identity.Role) {
				api.Error(w, apperr.Forbidden(fmt.Sprintf("Role '%s' is not authorized to access %s %s", identity.Role, r.Method, r.URL.Path)))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
