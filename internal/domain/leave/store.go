package leave

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"peoplehub/internal/domain/apperr"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const leaveColumns = `
    l.id, l.employee_id, l.leave_type, l.start_date, l.end_date, l.days,
    l.reason, l.status, l.approved_by, l.approved_at, l.comment,
    l.created_at, l.updated_at`

func scanApplication(row pgx.Row, app *Application, joined bool) error {
	dest := []any{
		&app.ID, &app.EmployeeID, &app.LeaveType, &app.StartDate, &app.EndDate, &app.Days,
		&app.Reason, &app.Status, &app.ApprovedBy, &app.ApprovedAt, &app.Comment,
		&app.CreatedAt, &app.UpdatedAt,
	}
	if joined {
		dest = append(dest,
			&app.EmployeeFirstName, &app.EmployeeLastName, &app.EmployeeCode, &app.DepartmentName,
			&app.ApproverFirstName, &app.ApproverLastName,
		)
	}
	return row.Scan(dest...)
}

func (s *Store) List(ctx context.Context, f Filter, limit, offset int) ([]Application, int, error) {
	clause := " WHERE 1=1"
	var args []any
	if f.Status != "" {
		args = append(args, f.Status)
		clause += fmt.Sprintf(" AND l.status = $%d", len(args))
	}
	if f.EmployeeID != 0 {
		args = append(args, f.EmployeeID)
		clause += fmt.Sprintf(" AND l.employee_id = $%d", len(args))
	}
	if f.LeaveType != "" {
		args = append(args, f.LeaveType)
		clause += fmt.Sprintf(" AND l.leave_type = $%d", len(args))
	}

	var total int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(*) FROM leave_applications l"+clause, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := "SELECT" + leaveColumns + `,
    e.first_name, e.last_name, e.employee_code, d.name,
    a.first_name, a.last_name
    FROM leave_applications l
    JOIN employees e ON l.employee_id = e.id
    LEFT JOIN departments d ON e.department_id = d.id
    LEFT JOIN employees a ON l.approved_by = a.id` + clause +
		fmt.Sprintf(" ORDER BY l.created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := []Application{}
	for rows.Next() {
		var app Application
		if err := scanApplication(rows, &app, true); err != nil {
			return nil, 0, err
		}
		out = append(out, app)
	}
	return out, total, rows.Err()
}

func (s *Store) Get(ctx context.Context, id int64) (*Application, error) {
	row := s.DB.QueryRow(ctx, "SELECT"+leaveColumns+`,
    e.first_name, e.last_name, e.employee_code, d.name,
    a.first_name, a.last_name
    FROM leave_applications l
    JOIN employees e ON l.employee_id = e.id
    LEFT JOIN departments d ON e.department_id = d.id
    LEFT JOIN employees a ON l.approved_by = a.id
    WHERE l.id = $1
  `, id)

	var app Application
	if err := scanApplication(row, &app, true); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Leave application not found")
		}
		return nil, err
	}
	return &app, nil
}

// HasOverlap reports whether the employee already has a non-rejected
// application whose date range intersects [start, end].
func (s *Store) HasOverlap(ctx context.Context, employeeID int64, start, end time.Time) (bool, error) {
	var count int
	err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1)
    FROM leave_applications
    WHERE employee_id = $1
      AND status <> 'rejected'
      AND (
        (start_date <= $2 AND end_date >= $2)
        OR (start_date <= $3 AND end_date >= $3)
        OR (start_date >= $2 AND end_date <= $3)
      )
  `, employeeID, start, end).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) Create(ctx context.Context, in NewApplication) (*Application, error) {
	overlap, err := s.HasOverlap(ctx, in.EmployeeID, in.StartDate, in.EndDate)
	if err != nil {
		return nil, err
	}
	if overlap {
		return nil, apperr.Conflict("You already have a leave application for this period")
	}

	days := in.Days
	if days <= 0 {
		// Inclusive of both endpoints.
		days = int(in.EndDate.Sub(in.StartDate).Hours()/24) + 1
	}

	row := s.DB.QueryRow(ctx, `
    INSERT INTO leave_applications (employee_id, leave_type, start_date, end_date, days, reason)
    VALUES ($1, $2, $3, $4, $5, $6)
    RETURNING id, employee_id, leave_type, start_date, end_date, days,
              reason, status, approved_by, approved_at, comment, created_at, updated_at
  `, in.EmployeeID, in.LeaveType, in.StartDate, in.EndDate, days, in.Reason)

	var app Application
	if err := scanApplication(row, &app, false); err != nil {
		return nil, err
	}
	return &app, nil
}

// Decide moves a pending application to approved or rejected. Approved and
// rejected are terminal states.
func (s *Store) Decide(ctx context.Context, id int64, d Decision) (*Application, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Status != StatusPending {
		return nil, apperr.Conflict(fmt.Sprintf("Leave application is already %s", current.Status))
	}

	row := s.DB.QueryRow(ctx, `
    UPDATE leave_applications
    SET status = $1, comment = $2, approved_by = $3, approved_at = now(), updated_at = now()
    WHERE id = $4
    RETURNING id, employee_id, leave_type, start_date, end_date, days,
              reason, status, approved_by, approved_at, comment, created_at, updated_at
  `, d.Status, d.Comment, d.ByID, id)

	var app Application
	if err := scanApplication(row, &app, false); err != nil {
		return nil, err
	}

	if d.Status == StatusApproved {
		today := time.Now().Truncate(24 * time.Hour)
		if !today.Before(app.StartDate) && !today.After(app.EndDate) {
			// Best effort; the decision stands even if the status flip fails.
			if _, err := s.DB.Exec(ctx, "UPDATE employees SET status = 'on-leave', updated_at = now() WHERE id = $1", app.EmployeeID); err != nil {
				slog.Warn("marking employee on leave failed", "employeeId", app.EmployeeID, "err", err)
			}
		}
	}
	return &app, nil
}

// Delete removes an application. Only the admin override may remove one
// that is no longer pending.
func (s *Store) Delete(ctx context.Context, id int64, adminOverride bool) error {
	current, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if current.Status != StatusPending && !adminOverride {
		return apperr.Forbidden("Cannot delete approved/rejected leave applications")
	}
	_, err = s.DB.Exec(ctx, "DELETE FROM leave_applications WHERE id = $1", id)
	return err
}

func (s *Store) RecentForEmployee(ctx context.Context, employeeID int64, limit int) ([]Application, error) {
	rows, err := s.DB.Query(ctx, "SELECT"+leaveColumns+`
    FROM leave_applications l
    WHERE l.employee_id = $1
    ORDER BY l.created_at DESC
    LIMIT $2
  `, employeeID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Application{}
	for rows.Next() {
		var app Application
		if err := scanApplication(rows, &app, false); err != nil {
			return nil, err
		}
		out = append(out, app)
	}
	return out, rows.Err()
}

func (s *Store) Statistics(ctx context.Context, year int) (*Statistics, error) {
	stats := &Statistics{Year: year}

	rows, err := s.DB.Query(ctx, `
    SELECT leave_type, COUNT(*), COALESCE(SUM(days), 0)
    FROM leave_applications
    WHERE EXTRACT(YEAR FROM created_at) = $1 AND status = 'approved'
    GROUP BY leave_type
    ORDER BY COUNT(*) DESC
  `, year)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var tc TypeCount
		if err := rows.Scan(&tc.LeaveType, &tc.Count, &tc.TotalDays); err != nil {
			rows.Close()
			return nil, err
		}
		stats.ByType = append(stats.ByType, tc)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = s.DB.Query(ctx, `
    SELECT status, COUNT(*)
    FROM leave_applications
    WHERE EXTRACT(YEAR FROM created_at) = $1
    GROUP BY status
  `, year)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var sc StatusCount
		if err := rows.Scan(&sc.Status, &sc.Count); err != nil {
			rows.Close()
			return nil, err
		}
		stats.ByStatus = append(stats.ByStatus, sc)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = s.DB.Query(ctx, `
    SELECT EXTRACT(MONTH FROM start_date)::int, COUNT(*), COALESCE(SUM(days), 0)
    FROM leave_applications
    WHERE EXTRACT(YEAR FROM start_date) = $1 AND status = 'approved'
    GROUP BY 1
    ORDER BY 1
  `, year)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var mc MonthCount
		if err := rows.Scan(&mc.Month, &mc.Count, &mc.TotalDays); err != nil {
			rows.Close()
			return nil, err
		}
		stats.MonthlyTrend = append(stats.MonthlyTrend, mc)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return stats, nil
}
