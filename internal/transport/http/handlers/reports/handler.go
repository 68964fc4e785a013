package reports

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/xuri/excelize/v2"

	"peoplehub/internal/domain/activity"
	"peoplehub/internal/domain/apperr"
	"peoplehub/internal/domain/employee"
	"peoplehub/internal/transport/http/api"
	"peoplehub/internal/transport/http/middleware"
	"peoplehub/internal/transport/http/shared"
)

type Handler struct {
	Employees *employee.Store
	Activity  *activity.Recorder
}

func NewHandler(employees *employee.Store, recorder *activity.Recorder) *Handler {
	return &Handler{Employees: employees, Activity: recorder}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.With(middleware.Authorize("reports", "export")).Get("/employees/export", h.exportEmployees)
}

// exportEmployees streams the full employee roster as a workbook. The same
// filters as the list endpoint apply; pagination does not.
func (h *Handler) exportEmployees(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := employee.Filter{
		Status:     q.Get("status"),
		Department: q.Get("department"),
		Search:     q.Get("search"),
	}

	const exportLimit = 10000
	items, _, err := h.Employees.List(r.Context(), filter, exportLimit, 0)
	if err != nil {
		api.Error(w, err)
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Employees"
	index, err := f.NewSheet(sheet)
	if err != nil {
		api.Error(w, apperr.Internal("Failed to generate report", err))
		return
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"Code", "First Name", "Last Name", "Email", "Job Title", "Department", "Employment Type", "Start Date", "Salary", "Status", "Role"}
	for col, title := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			api.Error(w, apperr.Internal("Failed to generate report", err))
			return
		}
	}

	for row, emp := range items {
		values := []any{
			emp.Code, emp.FirstName, emp.LastName, emp.Email,
			deref(emp.JobTitle), deref(emp.DepartmentName), deref(emp.EmploymentType),
			formatDate(emp.StartDate), derefFloat(emp.Salary), emp.Status, emp.Role,
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				api.Error(w, apperr.Internal("Failed to generate report", err))
				return
			}
		}
	}

	identity, _ := middleware.GetIdentity(r.Context())
	h.Activity.Record(r.Context(), identity.ID, "EXPORT_EMPLOYEES",
		fmt.Sprintf("Exported %d employees", len(items)), shared.ClientIP(r))

	filename := fmt.Sprintf("employees-%s.xlsx", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	if err := f.Write(w); err != nil {
		api.Error(w, apperr.Internal("Failed to generate report", err))
	}
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

func derefFloat(value *float64) float64 {
	if value == nil {
		return 0
	}
	return *value
}

func formatDate(value *time.Time) string {
	if value == nil {
		return ""
	}
	return value.Format("2006-01-02")
}
