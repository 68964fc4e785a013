package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Envelope is the uniform response shape: {success, message?, data?, count?,
// total?, pages?, currentPage?}. Stack is populated only in development mode
// for unclassified failures.
type Envelope struct {
	Success     bool   `json:"success"`
	Message     string `json:"message,omitempty"`
	Data        any    `json:"data,omitempty"`
	Count       *int   `json:"count,omitempty"`
	Total       *int   `json:"total,omitempty"`
	Pages       *int   `json:"pages,omitempty"`
	CurrentPage *int   `json:"currentPage,omitempty"`
	Stack       string `json:"stack,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, payload Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Warn("write json failed", "err", err)
	}
}

func Success(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusOK, Envelope{Success: true, Data: data})
}

func SuccessMessage(w http.ResponseWriter, message string, data any) {
	WriteJSON(w, http.StatusOK, Envelope{Success: true, Message: message, Data: data})
}

func Created(w http.ResponseWriter, message string, data any) {
	WriteJSON(w, http.StatusCreated, Envelope{Success: true, Message: message, Data: data})
}

// Page writes a paginated list response. count is the number of rows in this
// page, total the full result size under the same filter.
func Page(w http.ResponseWriter, data any, count, total, pages, currentPage int) {
	WriteJSON(w, http.StatusOK, Envelope{
		Success:     true,
		Data:        data,
		Count:       &count,
		Total:       &total,
		Pages:       &pages,
		CurrentPage: &currentPage,
	})
}

// List writes an unpaginated list response with a row count.
func List(w http.ResponseWriter, data any, count int) {
	WriteJSON(w, http.StatusOK, Envelope{Success: true, Data: data, Count: &count})
}
