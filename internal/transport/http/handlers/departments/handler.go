package departments

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"peoplehub/internal/domain/activity"
	"peoplehub/internal/domain/apperr"
	"peoplehub/internal/domain/department"
	"peoplehub/internal/transport/http/api"
	"peoplehub/internal/transport/http/middleware"
	"peoplehub/internal/transport/http/shared"
)

type Handler struct {
	Departments *department.Store
	Activity    *activity.Recorder
}

func NewHandler(departments *department.Store, recorder *activity.Recorder) *Handler {
	return &Handler{Departments: departments, Activity: recorder}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.With(middleware.Authorize("departments", "create")).Post("/", h.create)
	r.Get("/{departmentID}", h.get)
	r.With(middleware.Authorize("departments", "update")).Put("/{departmentID}", h.update)
	r.With(middleware.Authorize("departments", "delete")).Delete("/{departmentID}", h.remove)
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "departmentID"), 10, 64)
	if err != nil {
		return 0, apperr.Validation("Invalid id")
	}
	return id, nil
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	items, err := h.Departments.List(r.Context())
	if err != nil {
		api.Error(w, err)
		return
	}
	api.List(w, items, len(items))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		api.Error(w, err)
		return
	}
	detail, err := h.Departments.Get(r.Context(), id)
	if err != nil {
		api.Error(w, err)
		return
	}
	api.Success(w, detail)
}

type createRequest struct {
	Name        string   `json:"name"`
	Description *string  `json:"description"`
	ManagerID   *int64   `json:"managerId"`
	Budget      *float64 `json:"budget"`
	Location    *string  `json:"location"`
	Color       *string  `json:"color"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, apperr.Validation("Invalid request body"))
		return
	}
	if req.Name == "" {
		api.Error(w, apperr.Validation("Please provide a department name"))
		return
	}

	exists, err := h.Departments.NameExists(r.Context(), req.Name, 0)
	if err != nil {
		api.Error(w, err)
		return
	}
	if exists {
		api.Error(w, apperr.Conflict("Department with this name already exists"))
		return
	}

	created, err := h.Departments.Create(r.Context(), department.NewDepartment{
		Name:        req.Name,
		Description: req.Description,
		ManagerID:   req.ManagerID,
		Budget:      req.Budget,
		Location:    req.Location,
		Color:       req.Color,
	})
	if err != nil {
		api.Error(w, err)
		return
	}

	identity, _ := middleware.GetIdentity(r.Context())
	h.Activity.Record(r.Context(), identity.ID, "CREATE_DEPARTMENT",
		fmt.Sprintf("Created department %s", created.Name), shared.ClientIP(r))
	api.Created(w, "Department created successfully", created)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		api.Error(w, err)
		return
	}

	var patch department.Patch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		api.Error(w, apperr.Validation("Invalid request body"))
		return
	}
	if patch.Name != nil {
		exists, err := h.Departments.NameExists(r.Context(), *patch.Name, id)
		if err != nil {
			api.Error(w, err)
			return
		}
		if exists {
			api.Error(w, apperr.Conflict("Department with this name already exists"))
			return
		}
	}

	updated, err := h.Departments.Update(r.Context(), id, patch)
	if err != nil {
		api.Error(w, err)
		return
	}

	identity, _ := middleware.GetIdentity(r.Context())
	h.Activity.Record(r.Context(), identity.ID, "UPDATE_DEPARTMENT",
		fmt.Sprintf("Updated department %s", updated.Name), shared.ClientIP(r))
	api.SuccessMessage(w, "Department updated successfully", updated)
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		api.Error(w, err)
		return
	}

	detail, err := h.Departments.Get(r.Context(), id)
	if err != nil {
		api.Error(w, err)
		return
	}
	if err := h.Departments.Delete(r.Context(), id); err != nil {
		api.Error(w, err)
		return
	}

	identity, _ := middleware.GetIdentity(r.Context())
	h.Activity.Record(r.Context(), identity.ID, "DELETE_DEPARTMENT",
		fmt.Sprintf("Deleted department %s", detail.Name), shared.ClientIP(r))
	api.SuccessMessage(w, "Department deleted successfully", nil)
}
