package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"peoplehub/internal/domain/apperr"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) Envelope {
	t.Helper()
	var env Envelope
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return env
}

func TestErrorMapsTaxonomyKinds(t *testing.T) {
	cases := []struct {
		err        error
		wantStatus int
		wantMsg    string
	}{
		{apperr.Unauthenticated("Invalid credentials"), http.StatusUnauthorized, "Invalid credentials"},
		{apperr.Forbidden("nope"), http.StatusForbidden, "nope"},
		{apperr.NotFound("Employee not found"), http.StatusNotFound, "Employee not found"},
		{apperr.Validation("No valid fields to update"), http.StatusBadRequest, "No valid fields to update"},
		{apperr.Conflict("Contract is already signed"), http.StatusConflict, "Contract is already signed"},
		{apperr.Internal("Server Error", errors.New("boom")), http.StatusInternalServerError, "Server Error"},
	}

	for _, tc := range cases {
		rec := httptest.NewRecorder()
		Error(rec, tc.err)
		if rec.Code != tc.wantStatus {
			t.Errorf("status for %v = %d, want %d", tc.err, rec.Code, tc.wantStatus)
		}
		env := decode(t, rec)
		if env.Success {
			t.Errorf("success should be false for %v", tc.err)
		}
		if env.Message != tc.wantMsg {
			t.Errorf("message for %v = %q, want %q", tc.err, env.Message, tc.wantMsg)
		}
	}
}

func TestErrorMapsUniqueViolation(t *testing.T) {
	rec := httptest.NewRecorder()
	Error(rec, &pgconn.PgError{
		Code:   "23505",
		Detail: "Key (email)=(a@b.c) already exists.",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	env := decode(t, rec)
	if env.Message != "email already exists" {
		t.Errorf("message = %q, want %q", env.Message, "email already exists")
	}
}

func TestErrorMapsForeignKeyViolation(t *testing.T) {
	rec := httptest.NewRecorder()
	Error(rec, &pgconn.PgError{Code: "23503"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	env := decode(t, rec)
	if env.Message != "Referenced record does not exist" {
		t.Errorf("message = %q", env.Message)
	}
}

func TestErrorMapsInvalidText(t *testing.T) {
	rec := httptest.NewRecorder()
	Error(rec, &pgconn.PgError{Code: "22P02"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	env := decode(t, rec)
	if env.Message != "Invalid input value" {
		t.Errorf("message = %q", env.Message)
	}
}

func TestErrorMapsNoRows(t *testing.T) {
	rec := httptest.NewRecorder()
	Error(rec, pgx.ErrNoRows)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	env := decode(t, rec)
	if env.Message != "Resource not found" {
		t.Errorf("message = %q", env.Message)
	}
}

func TestErrorIncludesStackInDebugMode(t *testing.T) {
	SetDebug(true)
	defer SetDebug(false)

	rec := httptest.NewRecorder()
	Error(rec, errors.New("boom"))
	env := decode(t, rec)
	if env.Stack == "" {
		t.Error("expected stack trace in debug mode")
	}

	SetDebug(false)
	rec = httptest.NewRecorder()
	Error(rec, errors.New("boom"))
	env = decode(t, rec)
	if env.Stack != "" {
		t.Error("stack trace must be absent outside debug mode")
	}
}
