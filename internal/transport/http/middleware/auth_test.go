package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"peoplehub/internal/domain/apperr"
	"peoplehub/internal/domain/auth"
)

type fakeIdentityStore struct {
	identities map[int64]auth.Identity
}

func (f *fakeIdentityStore) IdentityByID(_ context.Context, id int64) (auth.Identity, error) {
	identity, ok := f.identities[id]
	if !ok {
		return auth.Identity{}, apperr.NotFound("User not found")
	}
	return identity, nil
}

func authServer(t *testing.T, store *fakeIdentityStore) http.Handler {
	t.Helper()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := GetIdentity(r.Context())
		if !ok {
			t.Error("identity missing from context after Authenticate")
		}
		w.Header().Set("X-Identity", identity.Email)
		w.WriteHeader(http.StatusOK)
	})
	return Authenticate("test-secret", store)(next)
}

func responseMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return body.Message
}

func TestAuthenticateMissingHeader(t *testing.T) {
	handler := authServer(t, &fakeIdentityStore{})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if got := responseMessage(t, rec); got != "Not authorized to access this route" {
		t.Errorf("message = %q", got)
	}
}

func TestAuthenticateMalformedHeader(t *testing.T) {
	handler := authServer(t, &fakeIdentityStore{})
	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set("Authorization", "Token abc")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, r)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestAuthenticateInvalidToken(t *testing.T) {
	handler := authServer(t, &fakeIdentityStore{})
	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, r)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if got := responseMessage(t, rec); got != "Invalid or expired token" {
		t.Errorf("message = %q", got)
	}
}

func TestAuthenticateUnknownSubject(t *testing.T) {
	handler := authServer(t, &fakeIdentityStore{identities: map[int64]auth.Identity{}})
	token, err := auth.GenerateToken("test-secret", 99, auth.RoleEmployee, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, r)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if got := responseMessage(t, rec); got != "User not found" {
		t.Errorf("message = %q", got)
	}
}

func TestAuthenticateInactiveAccount(t *testing.T) {
	store := &fakeIdentityStore{identities: map[int64]auth.Identity{
		7: {ID: 7, Email: "gone@test.local", Role: auth.RoleEmployee, Status: auth.StatusInactive},
	}}
	handler := authServer(t, store)
	token, err := auth.GenerateToken("test-secret", 7, auth.RoleEmployee, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, r)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if got := responseMessage(t, rec); got != "User account is inactive" {
		t.Errorf("message = %q", got)
	}
}

func TestAuthenticateSuccess(t *testing.T) {
	store := &fakeIdentityStore{identities: map[int64]auth.Identity{
		3: {ID: 3, Email: "ok@test.local", Role: auth.RoleManager, Status: auth.StatusActive},
	}}
	handler := authServer(t, store)
	token, err := auth.GenerateToken("test-secret", 3, auth.RoleManager, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, r)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := rec.Header().Get("X-Identity"); got != "ok@test.local" {
		t.Errorf("identity email = %q", got)
	}
}

func TestAuthorizeDeniesRole(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := Authorize("employees", "delete")(next)

	identity := auth.Identity{ID: 1, Role: auth.RoleEmployee, Status: auth.StatusActive}
	r := httptest.NewRequest("DELETE", "/api/employees/5", nil)
	r = r.WithContext(context.WithValue(r.Context(), identityKey, identity))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, r)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
	if got := responseMessage(t, rec); got != "Role 'employee' is not authorized to access DELETE /api/employees/5" {
		t.Errorf("message = %q", got)
	}
}

func TestAuthorizeAllowsRole(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := Authorize("employees", "delete")(next)

	identity := auth.Identity{ID: 1, Role: auth.RoleAdmin, Status: auth.StatusActive}
	r := httptest.NewRequest("DELETE", "/api/employees/5", nil)
	r = r.WithContext(context.WithValue(r.Context(), identityKey, identity))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, r)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}
