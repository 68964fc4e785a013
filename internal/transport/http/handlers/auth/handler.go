package auth

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"peoplehub/internal/domain/activity"
	"peoplehub/internal/domain/apperr"
	"peoplehub/internal/domain/auth"
	"peoplehub/internal/domain/employee"
	"peoplehub/internal/transport/http/api"
	"peoplehub/internal/transport/http/middleware"
	"peoplehub/internal/transport/http/shared"
)

type Handler struct {
	Employees *employee.Store
	Activity  *activity.Recorder
	JWTSecret string
	JWTTTL    time.Duration
}

func NewHandler(employees *employee.Store, recorder *activity.Recorder, secret string, ttl time.Duration) *Handler {
	return &Handler{Employees: employees, Activity: recorder, JWTSecret: secret, JWTTTL: ttl}
}

// RegisterPublic mounts the unauthenticated routes.
func (h *Handler) RegisterPublic(r chi.Router) {
	r.Post("/register", h.register)
	r.Post("/login", h.login)
}

// RegisterProtected mounts the routes that require a resolved identity.
func (h *Handler) RegisterProtected(r chi.Router) {
	r.Get("/me", h.me)
	r.Post("/logout", h.logout)
	r.Put("/updatepassword", h.updatePassword)
}

type registerRequest struct {
	FirstName    string  `json:"firstName"`
	LastName     string  `json:"lastName"`
	Email        string  `json:"email"`
	Password     string  `json:"password"`
	JobTitle     *string `json:"jobTitle"`
	DepartmentID *int64  `json:"departmentId"`
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, apperr.Validation("Invalid request body"))
		return
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.FirstName == "" || req.LastName == "" || req.Email == "" || req.Password == "" {
		api.Error(w, apperr.Validation("Please provide firstName, lastName, email and password"))
		return
	}
	if len(req.Password) < 6 {
		api.Error(w, apperr.Validation("Password must be at least 6 characters"))
		return
	}
	exists, err := h.Employees.EmailExists(r.Context(), req.Email)
	if err != nil {
		api.Error(w, err)
		return
	}
	if exists {
		api.Error(w, apperr.Conflict("Email already registered"))
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		api.Error(w, apperr.Internal("Server Error", err))
		return
	}
	last, err := h.Employees.LastCode(r.Context())
	if err != nil {
		api.Error(w, err)
		return
	}

	// Self-service registration always produces an employee account. Elevated
	// roles are assigned through the employee admin endpoints.
	created, err := h.Employees.Create(r.Context(), employee.NextCode(last), hash, employee.NewEmployee{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		JobTitle:     req.JobTitle,
		DepartmentID: req.DepartmentID,
		Role:         auth.RoleEmployee,
	})
	if err != nil {
		api.Error(w, err)
		return
	}

	token, err := auth.GenerateToken(h.JWTSecret, created.ID, created.Role, h.JWTTTL)
	if err != nil {
		api.Error(w, apperr.Internal("Server Error", err))
		return
	}

	h.Activity.Record(r.Context(), created.ID, "REGISTER", created.FirstName+" "+created.LastName+" registered", shared.ClientIP(r))
	api.Created(w, "Registered successfully", map[string]any{
		"token": token,
		"user":  created,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, apperr.Validation("Invalid request body"))
		return
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" || req.Password == "" {
		api.Error(w, apperr.Validation("Please provide email and password"))
		return
	}

	found, err := h.Employees.GetByEmail(r.Context(), req.Email)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			api.Error(w, apperr.Unauthenticated("Invalid credentials"))
			return
		}
		api.Error(w, err)
		return
	}

	// Deactivated accounts are rejected before the password check so the
	// caller gets the account message rather than a credentials one.
	if found.Status == auth.StatusInactive {
		api.Error(w, apperr.Unauthenticated("Your account has been deactivated. Please contact HR."))
		return
	}
	if err := auth.CheckPassword(found.PasswordHash, req.Password); err != nil {
		api.Error(w, apperr.Unauthenticated("Invalid credentials"))
		return
	}

	token, err := auth.GenerateToken(h.JWTSecret, found.ID, found.Role, h.JWTTTL)
	if err != nil {
		api.Error(w, apperr.Internal("Server Error", err))
		return
	}

	h.Activity.Record(r.Context(), found.ID, "LOGIN", found.FirstName+" "+found.LastName+" logged in", shared.ClientIP(r))
	api.SuccessMessage(w, "Logged in successfully", map[string]any{
		"token": token,
		"user":  found,
	})
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetIdentity(r.Context())
	current, err := h.Employees.Get(r.Context(), identity.ID)
	if err != nil {
		api.Error(w, err)
		return
	}
	api.Success(w, current)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetIdentity(r.Context())
	h.Activity.Record(r.Context(), identity.ID, "LOGOUT", identity.FirstName+" "+identity.LastName+" logged out", shared.ClientIP(r))
	api.SuccessMessage(w, "Logged out successfully", nil)
}

type updatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (h *Handler) updatePassword(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetIdentity(r.Context())

	var req updatePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, apperr.Validation("Invalid request body"))
		return
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		api.Error(w, apperr.Validation("Please provide currentPassword and newPassword"))
		return
	}
	if len(req.NewPassword) < 6 {
		api.Error(w, apperr.Validation("Password must be at least 6 characters"))
		return
	}

	current, err := h.Employees.Get(r.Context(), identity.ID)
	if err != nil {
		api.Error(w, err)
		return
	}
	if err := auth.CheckPassword(current.PasswordHash, req.CurrentPassword); err != nil {
		api.Error(w, apperr.Unauthenticated("Current password is incorrect"))
		return
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		api.Error(w, apperr.Internal("Server Error", err))
		return
	}
	if err := h.Employees.UpdatePassword(r.Context(), identity.ID, hash); err != nil {
		api.Error(w, err)
		return
	}

	token, err := auth.GenerateToken(h.JWTSecret, identity.ID, identity.Role, h.JWTTTL)
	if err != nil {
		api.Error(w, apperr.Internal("Server Error", err))
		return
	}

	h.Activity.Record(r.Context(), identity.ID, "PASSWORD_CHANGE", identity.FirstName+" "+identity.LastName+" changed their password", shared.ClientIP(r))
	api.SuccessMessage(w, "Password updated successfully", map[string]any{"token": token})
}
