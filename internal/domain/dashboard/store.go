// Package dashboard aggregates cross-domain figures for the overview
// screens. It reads other domains' tables directly; nothing here writes.
package dashboard

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"peoplehub/internal/domain/activity"
	"peoplehub/internal/domain/employee"
	"peoplehub/internal/domain/leave"
)

type Totals struct {
	TotalEmployees   int `json:"totalEmployees"`
	ActiveEmployees  int `json:"activeEmployees"`
	OnLeaveEmployees int `json:"onLeaveEmployees"`
	TotalDepartments int `json:"totalDepartments"`
	PendingLeaves    int `json:"pendingLeaves"`
	ActiveContracts  int `json:"activeContracts"`
}

type MonthBucket struct {
	Month time.Time `json:"month"`
	Count int       `json:"count"`
}

type DepartmentSlice struct {
	Name  string  `json:"name"`
	Color *string `json:"color"`
	Count int     `json:"count"`
}

type Overview struct {
	Totals                 Totals                  `json:"totals"`
	NewEmployeesByMonth    []MonthBucket           `json:"newEmployeesByMonth"`
	DepartmentDistribution []DepartmentSlice       `json:"departmentDistribution"`
	TopEmployees           []employee.TopPerformer `json:"topEmployees"`
	RecentActivities       []activity.Entry        `json:"recentActivities"`
	LeaveStatistics        *leave.Statistics       `json:"leaveStatistics"`
}

type Trends struct {
	Months            int           `json:"months"`
	EmployeeGrowth    []MonthBucket `json:"employeeGrowth"`
	LeaveApplications []MonthBucket `json:"leaveApplications"`
	ContractsSigned   []MonthBucket `json:"contractsSigned"`
}

type Store struct {
	DB        *pgxpool.Pool
	Employees *employee.Store
	Leaves    *leave.Store
	Activity  *activity.Recorder
}

func NewStore(db *pgxpool.Pool, employees *employee.Store, leaves *leave.Store, recorder *activity.Recorder) *Store {
	return &Store{DB: db, Employees: employees, Leaves: leaves, Activity: recorder}
}

func (s *Store) Overview(ctx context.Context) (*Overview, error) {
	out := &Overview{}

	err := s.DB.QueryRow(ctx, `
    SELECT total_employees, active_employees, on_leave_employees,
           total_departments, pending_leaves, active_contracts
    FROM dashboard_stats
  `).Scan(
		&out.Totals.TotalEmployees, &out.Totals.ActiveEmployees, &out.Totals.OnLeaveEmployees,
		&out.Totals.TotalDepartments, &out.Totals.PendingLeaves, &out.Totals.ActiveContracts,
	)
	if err != nil {
		return nil, err
	}

	out.NewEmployeesByMonth, err = s.monthBuckets(ctx, `
    SELECT date_trunc('month', created_at), COUNT(*)
    FROM employees
    WHERE created_at >= date_trunc('month', now()) - interval '2 months'
    GROUP BY 1
    ORDER BY 1
  `)
	if err != nil {
		return nil, err
	}

	rows, err := s.DB.Query(ctx, `
    SELECT d.name, d.color, COUNT(e.id)
    FROM departments d
    LEFT JOIN employees e ON d.id = e.department_id AND e.status = 'active'
    GROUP BY d.name, d.color
    ORDER BY COUNT(e.id) DESC
  `)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var slice DepartmentSlice
		if err := rows.Scan(&slice.Name, &slice.Color, &slice.Count); err != nil {
			rows.Close()
			return nil, err
		}
		out.DepartmentDistribution = append(out.DepartmentDistribution, slice)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if out.TopEmployees, err = s.Employees.TopPerformers(ctx, 5); err != nil {
		return nil, err
	}
	if out.RecentActivities, err = s.Activity.Recent(ctx, 10); err != nil {
		return nil, err
	}
	if out.LeaveStatistics, err = s.Leaves.Statistics(ctx, time.Now().Year()); err != nil {
		return nil, err
	}
	return out, nil
}

// TrendData returns month-bucketed growth series over the trailing window.
func (s *Store) TrendData(ctx context.Context, months int) (*Trends, error) {
	out := &Trends{Months: months}
	var err error

	out.EmployeeGrowth, err = s.monthBuckets(ctx, `
    SELECT date_trunc('month', created_at), COUNT(*)
    FROM employees
    WHERE created_at >= date_trunc('month', now()) - make_interval(months => $1 - 1)
    GROUP BY 1
    ORDER BY 1
  `, months)
	if err != nil {
		return nil, err
	}

	out.LeaveApplications, err = s.monthBuckets(ctx, `
    SELECT date_trunc('month', created_at), COUNT(*)
    FROM leave_applications
    WHERE status = 'approved'
      AND created_at >= date_trunc('month', now()) - make_interval(months => $1 - 1)
    GROUP BY 1
    ORDER BY 1
  `, months)
	if err != nil {
		return nil, err
	}

	out.ContractsSigned, err = s.monthBuckets(ctx, `
    SELECT date_trunc('month', signed_at), COUNT(*)
    FROM contracts
    WHERE signed_at IS NOT NULL
      AND signed_at >= date_trunc('month', now()) - make_interval(months => $1 - 1)
    GROUP BY 1
    ORDER BY 1
  `, months)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) monthBuckets(ctx context.Context, query string, args ...any) ([]MonthBucket, error) {
	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []MonthBucket{}
	for rows.Next() {
		var b MonthBucket
		if err := rows.Scan(&b.Month, &b.Count); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
