package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"peoplehub/internal/domain/apperr"
	"peoplehub/internal/domain/auth"
	"peoplehub/internal/transport/http/api"
)

type ctxKey string

const identityKey ctxKey = "identity"

// IdentityStore loads the acting identity for a verified token subject.
type IdentityStore interface {
	IdentityByID(ctx context.Context, id int64) (auth.Identity, error)
}

// Authenticate resolves the bearer token into an Identity and attaches it to
// the request context. Missing or malformed credentials, verification
// failures, unknown subjects and inactive accounts all reject with 401.
func Authenticate(secret string, store IdentityStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				api.Error(w, apperr.Unauthenticated("Not authorized to access this route"))
				return
			}
			parts := strings.Split(header, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				api.Error(w, apperr.Unauthenticated("Not authorized to access this route"))
				return
			}

			claims, err := auth.ParseToken(secret, parts[1])
			if err != nil {
				// Expired and invalid are logged apart but surface the same.
				if errors.Is(err, jwt.ErrTokenExpired) {
					slog.Debug("token expired", "path", r.URL.Path)
				} else {
					slog.Debug("token rejected", "path", r.URL.Path, "err", err)
				}
				api.Error(w, apperr.Unauthenticated("Invalid or expired token"))
				return
			}

			subjectID, err := claims.SubjectID()
			if err != nil {
				api.Error(w, apperr.Unauthenticated("Invalid or expired token"))
				return
			}

			identity, err := store.IdentityByID(r.Context(), subjectID)
			if err != nil {
				if apperr.KindOf(err) == apperr.KindNotFound {
					api.Error(w, apperr.Unauthenticated("User not found"))
					return
				}
				api.Error(w, err)
				return
			}
			if identity.Status == auth.StatusInactive {
				api.Error(w, apperr.Unauthenticated("User account is inactive"))
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetIdentity(ctx context.Context) (auth.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(auth.Identity)
	return identity, ok
}
