package leaves

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"peoplehub/internal/domain/activity"
	"peoplehub/internal/domain/apperr"
	"peoplehub/internal/domain/auth"
	"peoplehub/internal/domain/leave"
	"peoplehub/internal/transport/http/api"
	"peoplehub/internal/transport/http/middleware"
	"peoplehub/internal/transport/http/shared"
)

type Handler struct {
	Leaves   *leave.Store
	Activity *activity.Recorder
}

func NewHandler(leaves *leave.Store, recorder *activity.Recorder) *Handler {
	return &Handler{Leaves: leaves, Activity: recorder}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/statistics", h.statistics)
	r.Get("/{leaveID}", h.get)
	r.With(middleware.Authorize("leaves", "decide")).Put("/{leaveID}/status", h.decide)
	r.Delete("/{leaveID}", h.remove)
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "leaveID"), 10, 64)
	if err != nil {
		return 0, apperr.Validation("Invalid id")
	}
	return id, nil
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetIdentity(r.Context())
	q := r.URL.Query()

	filter := leave.Filter{
		Status:    q.Get("status"),
		LeaveType: q.Get("leaveType"),
	}
	if raw := q.Get("employeeId"); raw != "" {
		if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
			filter.EmployeeID = v
		}
	}
	// Employees only ever see their own applications regardless of the
	// filter they send.
	if identity.Role == auth.RoleEmployee {
		filter.EmployeeID = identity.ID
	}

	page := shared.ParsePagination(r, 20, 100)
	items, total, err := h.Leaves.List(r.Context(), filter, page.Limit, page.Offset())
	if err != nil {
		api.Error(w, err)
		return
	}
	api.Page(w, items, len(items), total, shared.PageCount(total, page.Limit), page.Page)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		api.Error(w, err)
		return
	}
	found, err := h.Leaves.Get(r.Context(), id)
	if err != nil {
		api.Error(w, err)
		return
	}

	identity, _ := middleware.GetIdentity(r.Context())
	if identity.Role == auth.RoleEmployee && found.EmployeeID != identity.ID {
		api.Error(w, apperr.Forbidden("Not authorized to view this leave application"))
		return
	}
	api.Success(w, found)
}

type createRequest struct {
	EmployeeID *int64  `json:"employeeId"`
	LeaveType  string  `json:"leaveType"`
	StartDate  string  `json:"startDate"`
	EndDate    string  `json:"endDate"`
	Days       int     `json:"days"`
	Reason     *string `json:"reason"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetIdentity(r.Context())

	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, apperr.Validation("Invalid request body"))
		return
	}
	if req.LeaveType == "" || req.StartDate == "" || req.EndDate == "" {
		api.Error(w, apperr.Validation("Please provide leaveType, startDate and endDate"))
		return
	}

	start, err := shared.ParseDate(req.StartDate)
	if err != nil {
		api.Error(w, apperr.Validation("Invalid startDate"))
		return
	}
	end, err := shared.ParseDate(req.EndDate)
	if err != nil {
		api.Error(w, apperr.Validation("Invalid endDate"))
		return
	}
	if end.Before(start) {
		api.Error(w, apperr.Validation("endDate must not be before startDate"))
		return
	}

	// Employees apply for themselves; admins and managers may file on
	// someone else's behalf.
	employeeID := identity.ID
	if req.EmployeeID != nil && identity.Role != auth.RoleEmployee {
		employeeID = *req.EmployeeID
	}

	created, err := h.Leaves.Create(r.Context(), leave.NewApplication{
		EmployeeID: employeeID,
		LeaveType:  req.LeaveType,
		StartDate:  start,
		EndDate:    end,
		Days:       req.Days,
		Reason:     req.Reason,
	})
	if err != nil {
		api.Error(w, err)
		return
	}

	h.Activity.Record(r.Context(), identity.ID, "CREATE_LEAVE",
		fmt.Sprintf("Applied for %s leave (%d days)", created.LeaveType, created.Days), shared.ClientIP(r))
	api.Created(w, "Leave application submitted successfully", created)
}

type decisionRequest struct {
	Status  string  `json:"status"`
	Comment *string `json:"comment"`
}

func (h *Handler) decide(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		api.Error(w, err)
		return
	}

	var req decisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, apperr.Validation("Invalid request body"))
		return
	}
	if req.Status != leave.StatusApproved && req.Status != leave.StatusRejected {
		api.Error(w, apperr.Validation("Status must be approved or rejected"))
		return
	}

	identity, _ := middleware.GetIdentity(r.Context())
	decided, err := h.Leaves.Decide(r.Context(), id, leave.Decision{
		Status:  req.Status,
		Comment: req.Comment,
		ByID:    identity.ID,
	})
	if err != nil {
		api.Error(w, err)
		return
	}

	h.Activity.Record(r.Context(), identity.ID, "UPDATE_LEAVE",
		fmt.Sprintf("Leave application #%d %s", decided.ID, decided.Status), shared.ClientIP(r))
	api.SuccessMessage(w, fmt.Sprintf("Leave application %s", decided.Status), decided)
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		api.Error(w, err)
		return
	}

	identity, _ := middleware.GetIdentity(r.Context())
	found, err := h.Leaves.Get(r.Context(), id)
	if err != nil {
		api.Error(w, err)
		return
	}
	if identity.Role == auth.RoleEmployee && found.EmployeeID != identity.ID {
		api.Error(w, apperr.Forbidden("Not authorized to delete this leave application"))
		return
	}

	if err := h.Leaves.Delete(r.Context(), id, identity.Role == auth.RoleAdmin); err != nil {
		api.Error(w, err)
		return
	}

	h.Activity.Record(r.Context(), identity.ID, "DELETE_LEAVE",
		fmt.Sprintf("Deleted leave application #%d", id), shared.ClientIP(r))
	api.SuccessMessage(w, "Leave application deleted successfully", nil)
}

func (h *Handler) statistics(w http.ResponseWriter, r *http.Request) {
	year := time.Now().Year()
	if raw := r.URL.Query().Get("year"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			year = v
		}
	}
	stats, err := h.Leaves.Statistics(r.Context(), year)
	if err != nil {
		api.Error(w, err)
		return
	}
	api.Success(w, stats)
}
