package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"runtime/debug"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"peoplehub/internal/domain/apperr"
)

// Postgres error codes classified by the normalizer. Handlers never
// pre-translate these; storage failures reach this boundary raw.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgInvalidTextValue    = "22P02"
)

var includeStack bool

// SetDebug enables stack traces on unclassified errors. Called once at
// startup; never enabled in production mode.
func SetDebug(enabled bool) {
	includeStack = enabled
}

var uniqueKeyPattern = regexp.MustCompile(`Key \(([^)]+)\)`)

// Error is the single error normalizer: it maps taxonomy errors, raw
// Postgres failures and anything else to the uniform envelope.
func Error(w http.ResponseWriter, err error) {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		status := statusFor(appErr.Kind)
		if appErr.Kind == apperr.KindInternal {
			slog.Error("request failed", "err", err)
			writeError(w, status, appErr.Message, err)
			return
		}
		WriteJSON(w, status, Envelope{Success: false, Message: appErr.Message})
		return
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			field := "field"
			if match := uniqueKeyPattern.FindStringSubmatch(pgErr.Detail); match != nil {
				field = match[1]
			}
			WriteJSON(w, http.StatusBadRequest, Envelope{Success: false, Message: fmt.Sprintf("%s already exists", field)})
			return
		case pgForeignKeyViolation:
			WriteJSON(w, http.StatusBadRequest, Envelope{Success: false, Message: "Referenced record does not exist"})
			return
		case pgInvalidTextValue:
			WriteJSON(w, http.StatusBadRequest, Envelope{Success: false, Message: "Invalid input value"})
			return
		}
	}

	if errors.Is(err, pgx.ErrNoRows) {
		WriteJSON(w, http.StatusNotFound, Envelope{Success: false, Message: "Resource not found"})
		return
	}

	slog.Error("unclassified error", "err", err)
	writeError(w, http.StatusInternalServerError, "Server Error", err)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	payload := Envelope{Success: false, Message: message}
	if includeStack {
		payload.Stack = fmt.Sprintf("%v\n%s", err, debug.Stack())
	}
	WriteJSON(w, status, payload)
}

func statusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.KindUnauthenticated:
		return http.StatusUnauthorized
	case apperr.KindForbidden:
		return http.StatusForbidden
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindValidation:
		return http.StatusBadRequest
	case apperr.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
