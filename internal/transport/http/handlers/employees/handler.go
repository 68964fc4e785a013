package employees

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"peoplehub/internal/domain/activity"
	"peoplehub/internal/domain/apperr"
	"peoplehub/internal/domain/auth"
	"peoplehub/internal/domain/contract"
	"peoplehub/internal/domain/department"
	"peoplehub/internal/domain/employee"
	"peoplehub/internal/domain/leave"
	"peoplehub/internal/transport/http/api"
	"peoplehub/internal/transport/http/middleware"
	"peoplehub/internal/transport/http/shared"
)

type Handler struct {
	Employees   *employee.Store
	Departments *department.Store
	Leaves      *leave.Store
	Contracts   *contract.Store
	Activity    *activity.Recorder
}

func NewHandler(employees *employee.Store, departments *department.Store, leaves *leave.Store, contracts *contract.Store, recorder *activity.Recorder) *Handler {
	return &Handler{Employees: employees, Departments: departments, Leaves: leaves, Contracts: contracts, Activity: recorder}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.With(middleware.Authorize("employees", "create")).Post("/", h.create)

	// Fixed segments come before the id wildcard.
	r.Get("/statistics", h.statistics)
	r.Get("/top/performers", h.topPerformers)

	r.Get("/{employeeID}", h.get)
	r.Get("/{employeeID}/subordinates", h.subordinates)
	r.With(middleware.Authorize("employees", "update")).Put("/{employeeID}", h.update)
	r.With(middleware.Authorize("employees", "delete")).Delete("/{employeeID}", h.remove)
}

func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil {
		return 0, apperr.Validation("Invalid id")
	}
	return id, nil
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := employee.Filter{
		Status:     q.Get("status"),
		Department: q.Get("department"),
		Search:     q.Get("search"),
		SortBy:     q.Get("sortBy"),
		Order:      q.Get("order"),
	}
	page := shared.ParsePagination(r, 50, 100)

	items, total, err := h.Employees.List(r.Context(), filter, page.Limit, page.Offset())
	if err != nil {
		api.Error(w, err)
		return
	}
	api.Page(w, items, len(items), total, shared.PageCount(total, page.Limit), page.Page)
}

// get returns the profile plus its related records: direct reports, the five
// most recent leave applications, and contracts.
func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "employeeID")
	if err != nil {
		api.Error(w, err)
		return
	}
	found, err := h.Employees.Get(r.Context(), id)
	if err != nil {
		api.Error(w, err)
		return
	}
	subs, err := h.Employees.Subordinates(r.Context(), id)
	if err != nil {
		api.Error(w, err)
		return
	}
	recentLeaves, err := h.Leaves.RecentForEmployee(r.Context(), id, 5)
	if err != nil {
		api.Error(w, err)
		return
	}
	employeeContracts, _, err := h.Contracts.List(r.Context(), contract.Filter{EmployeeID: id}, 50, 0)
	if err != nil {
		api.Error(w, err)
		return
	}

	api.Success(w, map[string]any{
		"employee":     found,
		"subordinates": subs,
		"recentLeaves": recentLeaves,
		"contracts":    employeeContracts,
	})
}

type createRequest struct {
	FirstName      string   `json:"firstName"`
	LastName       string   `json:"lastName"`
	Email          string   `json:"email"`
	Password       string   `json:"password"`
	Phone          *string  `json:"phone"`
	DateOfBirth    *string  `json:"dateOfBirth"`
	Gender         *string  `json:"gender"`
	JobTitle       *string  `json:"jobTitle"`
	DepartmentID   *int64   `json:"departmentId"`
	ReportsTo      *int64   `json:"reportsTo"`
	EmploymentType *string  `json:"employmentType"`
	StartDate      *string  `json:"startDate"`
	Salary         *float64 `json:"salary"`
	PayFrequency   *string  `json:"payFrequency"`
	Address        *string  `json:"address"`
	City           *string  `json:"city"`
	Country        *string  `json:"country"`
	Role           string   `json:"role"`
}

func parseOptionalDate(value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	parsed, err := shared.ParseDate(*value)
	if err != nil {
		return nil, apperr.Validation(fmt.Sprintf("Invalid date: %s", *value))
	}
	return &parsed, nil
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, apperr.Validation("Invalid request body"))
		return
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.FirstName == "" || req.LastName == "" || req.Email == "" {
		api.Error(w, apperr.Validation("Please provide firstName, lastName and email"))
		return
	}
	if req.Password == "" {
		req.Password = "password123"
	}
	role := req.Role
	if role == "" {
		role = auth.RoleEmployee
	}
	if !auth.ValidRole(role) {
		api.Error(w, apperr.Validation("Invalid role"))
		return
	}

	dateOfBirth, err := parseOptionalDate(req.DateOfBirth)
	if err != nil {
		api.Error(w, err)
		return
	}
	startDate, err := parseOptionalDate(req.StartDate)
	if err != nil {
		api.Error(w, err)
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

	created, err := h.Employees.Create(r.Context(), employee.NextCode(last), hash, employee.NewEmployee{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		Phone:          req.Phone,
		DateOfBirth:    dateOfBirth,
		Gender:         req.Gender,
		JobTitle:       req.JobTitle,
		DepartmentID:   req.DepartmentID,
		ReportsTo:      req.ReportsTo,
		EmploymentType: req.EmploymentType,
		StartDate:      startDate,
		Salary:         req.Salary,
		PayFrequency:   req.PayFrequency,
		Address:        req.Address,
		City:           req.City,
		Country:        req.Country,
		Role:           role,
	})
	if err != nil {
		api.Error(w, err)
		return
	}

	if created.DepartmentID != nil {
		if err := h.Departments.AdjustEmployeeCount(r.Context(), *created.DepartmentID, 1); err != nil {
			api.Error(w, err)
			return
		}
	}

	identity, _ := middleware.GetIdentity(r.Context())
	h.Activity.Record(r.Context(), identity.ID, "CREATE_EMPLOYEE",
		fmt.Sprintf("Created employee %s %s (%s)", created.FirstName, created.LastName, created.Code), shared.ClientIP(r))
	api.Created(w, "Employee created successfully", created)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "employeeID")
	if err != nil {
		api.Error(w, err)
		return
	}

	var patch employee.Patch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		api.Error(w, apperr.Validation("Invalid request body"))
		return
	}
	if patch.Role != nil && !auth.ValidRole(*patch.Role) {
		api.Error(w, apperr.Validation("Invalid role"))
		return
	}

	before, err := h.Employees.Get(r.Context(), id)
	if err != nil {
		api.Error(w, err)
		return
	}

	updated, err := h.Employees.Update(r.Context(), id, patch)
	if err != nil {
		api.Error(w, err)
		return
	}

	// Keep the cached member counters in step with a department move.
	if patch.DepartmentID != nil {
		oldID := before.DepartmentID
		newID := updated.DepartmentID
		if oldID == nil || newID == nil || *oldID != *newID {
			if oldID != nil {
				if err := h.Departments.AdjustEmployeeCount(r.Context(), *oldID, -1); err != nil {
					api.Error(w, err)
					return
				}
			}
			if newID != nil {
				if err := h.Departments.AdjustEmployeeCount(r.Context(), *newID, 1); err != nil {
					api.Error(w, err)
					return
				}
			}
		}
	}

	identity, _ := middleware.GetIdentity(r.Context())
	h.Activity.Record(r.Context(), identity.ID, "UPDATE_EMPLOYEE",
		fmt.Sprintf("Updated employee %s %s (%s)", updated.FirstName, updated.LastName, updated.Code), shared.ClientIP(r))
	api.SuccessMessage(w, "Employee updated successfully", updated)
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "employeeID")
	if err != nil {
		api.Error(w, err)
		return
	}

	identity, _ := middleware.GetIdentity(r.Context())
	if identity.ID == id {
		api.Error(w, apperr.Conflict("You cannot delete your own account"))
		return
	}

	found, err := h.Employees.Get(r.Context(), id)
	if err != nil {
		api.Error(w, err)
		return
	}
	if err := h.Employees.Delete(r.Context(), id); err != nil {
		api.Error(w, err)
		return
	}
	if found.DepartmentID != nil {
		if err := h.Departments.AdjustEmployeeCount(r.Context(), *found.DepartmentID, -1); err != nil {
			api.Error(w, err)
			return
		}
	}

	h.Activity.Record(r.Context(), identity.ID, "DELETE_EMPLOYEE",
		fmt.Sprintf("Deleted employee %s %s (%s)", found.FirstName, found.LastName, found.Code), shared.ClientIP(r))
	api.SuccessMessage(w, "Employee deleted successfully", nil)
}

func (h *Handler) subordinates(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "employeeID")
	if err != nil {
		api.Error(w, err)
		return
	}
	subs, err := h.Employees.Subordinates(r.Context(), id)
	if err != nil {
		api.Error(w, err)
		return
	}
	api.List(w, subs, len(subs))
}

func (h *Handler) topPerformers(w http.ResponseWriter, r *http.Request) {
	limit := 5
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 && v <= 50 {
			limit = v
		}
	}
	top, err := h.Employees.TopPerformers(r.Context(), limit)
	if err != nil {
		api.Error(w, err)
		return
	}
	api.List(w, top, len(top))
}

func (h *Handler) statistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Employees.Statistics(r.Context())
	if err != nil {
		api.Error(w, err)
		return
	}
	api.Success(w, stats)
}
