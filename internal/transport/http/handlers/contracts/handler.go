package contracts

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
	"peoplehub/internal/domain/contract"
	"peoplehub/internal/transport/http/api"
	"peoplehub/internal/transport/http/middleware"
	"peoplehub/internal/transport/http/shared"
)

type Handler struct {
	Contracts *contract.Store
	Activity  *activity.Recorder
}

func NewHandler(contracts *contract.Store, recorder *activity.Recorder) *Handler {
	return &Handler{Contracts: contracts, Activity: recorder}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.With(middleware.Authorize("contracts", "create")).Post("/", h.create)
	r.With(middleware.Authorize("contracts", "stats")).Get("/statistics", h.statistics)
	r.Get("/{contractID}", h.get)
	r.With(middleware.Authorize("contracts", "update")).Put("/{contractID}", h.update)
	r.With(middleware.Authorize("contracts", "sign")).Post("/{contractID}/sign", h.sign)
	r.With(middleware.Authorize("contracts", "export")).Get("/{contractID}/pdf", h.exportPDF)
	r.With(middleware.Authorize("contracts", "delete")).Delete("/{contractID}", h.remove)
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "contractID"), 10, 64)
	if err != nil {
		return 0, apperr.Validation("Invalid id")
	}
	return id, nil
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetIdentity(r.Context())
	q := r.URL.Query()

	filter := contract.Filter{
		Status:       q.Get("status"),
		ContractType: q.Get("contractType"),
	}
	if raw := q.Get("employeeId"); raw != "" {
		if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
			filter.EmployeeID = v
		}
	}
	if identity.Role == auth.RoleEmployee {
		filter.EmployeeID = identity.ID
	}

	page := shared.ParsePagination(r, 20, 100)
	items, total, err := h.Contracts.List(r.Context(), filter, page.Limit, page.Offset())
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
	found, err := h.Contracts.Get(r.Context(), id)
	if err != nil {
		api.Error(w, err)
		return
	}

	identity, _ := middleware.GetIdentity(r.Context())
	if identity.Role == auth.RoleEmployee && found.EmployeeID != identity.ID {
		api.Error(w, apperr.Forbidden("Not authorized to view this contract"))
		return
	}
	api.Success(w, found)
}

type createRequest struct {
	EmployeeID   int64    `json:"employeeId"`
	ContractType string   `json:"contractType"`
	StartDate    string   `json:"startDate"`
	EndDate      *string  `json:"endDate"`
	Salary       *float64 `json:"salary"`
	Terms        *string  `json:"terms"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, apperr.Validation("Invalid request body"))
		return
	}
	if req.EmployeeID == 0 || req.ContractType == "" || req.StartDate == "" {
		api.Error(w, apperr.Validation("Please provide employeeId, contractType and startDate"))
		return
	}

	start, err := shared.ParseDate(req.StartDate)
	if err != nil {
		api.Error(w, apperr.Validation("Invalid startDate"))
		return
	}
	var end *time.Time
	if req.EndDate != nil && *req.EndDate != "" {
		parsed, err := shared.ParseDate(*req.EndDate)
		if err != nil {
			api.Error(w, apperr.Validation("Invalid endDate"))
			return
		}
		if parsed.Before(start) {
			api.Error(w, apperr.Validation("endDate must not be before startDate"))
			return
		}
		end = &parsed
	}

	last, err := h.Contracts.LastNumber(r.Context())
	if err != nil {
		api.Error(w, err)
		return
	}
	number := contract.NextContractNumber(last, time.Now().Year())

	created, err := h.Contracts.Create(r.Context(), number, contract.NewContract{
		EmployeeID:   req.EmployeeID,
		ContractType: req.ContractType,
		StartDate:    start,
		EndDate:      end,
		Salary:       req.Salary,
		Terms:        req.Terms,
	})
	if err != nil {
		api.Error(w, err)
		return
	}

	identity, _ := middleware.GetIdentity(r.Context())
	h.Activity.Record(r.Context(), identity.ID, "CREATE_CONTRACT",
		fmt.Sprintf("Created contract %s", created.ContractNumber), shared.ClientIP(r))
	api.Created(w, "Contract created successfully", created)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		api.Error(w, err)
		return
	}

	var patch contract.Patch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		api.Error(w, apperr.Validation("Invalid request body"))
		return
	}

	updated, err := h.Contracts.Update(r.Context(), id, patch)
	if err != nil {
		api.Error(w, err)
		return
	}

	identity, _ := middleware.GetIdentity(r.Context())
	h.Activity.Record(r.Context(), identity.ID, "UPDATE_CONTRACT",
		fmt.Sprintf("Updated contract %s", updated.ContractNumber), shared.ClientIP(r))
	api.SuccessMessage(w, "Contract updated successfully", updated)
}

func (h *Handler) sign(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		api.Error(w, err)
		return
	}

	signed, err := h.Contracts.Sign(r.Context(), id)
	if err != nil {
		api.Error(w, err)
		return
	}

	identity, _ := middleware.GetIdentity(r.Context())
	h.Activity.Record(r.Context(), identity.ID, "SIGN_CONTRACT",
		fmt.Sprintf("Signed contract %s", signed.ContractNumber), shared.ClientIP(r))
	api.SuccessMessage(w, "Contract signed successfully", signed)
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		api.Error(w, err)
		return
	}

	found, err := h.Contracts.Get(r.Context(), id)
	if err != nil {
		api.Error(w, err)
		return
	}
	if err := h.Contracts.Delete(r.Context(), id); err != nil {
		api.Error(w, err)
		return
	}

	identity, _ := middleware.GetIdentity(r.Context())
	h.Activity.Record(r.Context(), identity.ID, "DELETE_CONTRACT",
		fmt.Sprintf("Deleted contract %s", found.ContractNumber), shared.ClientIP(r))
	api.SuccessMessage(w, "Contract deleted successfully", nil)
}

func (h *Handler) statistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Contracts.Statistics(r.Context())
	if err != nil {
		api.Error(w, err)
		return
	}
	api.Success(w, stats)
}

func (h *Handler) exportPDF(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		api.Error(w, err)
		return
	}
	found, err := h.Contracts.Get(r.Context(), id)
	if err != nil {
		api.Error(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s.pdf", found.ContractNumber))
	if err := writePDF(w, found); err != nil {
		api.Error(w, apperr.Internal("Failed to generate PDF", err))
	}
}
