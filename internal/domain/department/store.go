package department

import (
	"context"
	"errors"
	"fmt"
	"strings"

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

const departmentColumns = `
    d.id, d.name, d.description, d.manager_id, d.budget, d.location, d.color,
    d.employee_count, d.created_at, d.updated_at`

func (s *Store) List(ctx context.Context) ([]Department, error) {
	rows, err := s.DB.Query(ctx, "SELECT"+departmentColumns+`,
    m.first_name, m.last_name,
    (SELECT COUNT(*) FROM employees e WHERE e.department_id = d.id AND e.status = 'active')
    FROM departments d
    LEFT JOIN employees m ON d.manager_id = m.id
    ORDER BY d.name
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Department{}
	for rows.Next() {
		var dep Department
		if err := rows.Scan(
			&dep.ID, &dep.Name, &dep.Description, &dep.ManagerID, &dep.Budget, &dep.Location, &dep.Color,
			&dep.EmployeeCount, &dep.CreatedAt, &dep.UpdatedAt,
			&dep.ManagerFirstName, &dep.ManagerLastName, &dep.ActiveEmployeeCount,
		); err != nil {
			return nil, err
		}
		out = append(out, dep)
	}
	return out, rows.Err()
}

// Get returns the department together with its member list and aggregate
// statistics.
func (s *Store) Get(ctx context.Context, id int64) (*Detail, error) {
	row := s.DB.QueryRow(ctx, "SELECT"+departmentColumns+`,
    m.first_name, m.last_name
    FROM departments d
    LEFT JOIN employees m ON d.manager_id = m.id
    WHERE d.id = $1
  `, id)

	var detail Detail
	err := row.Scan(
		&detail.ID, &detail.Name, &detail.Description, &detail.ManagerID, &detail.Budget, &detail.Location, &detail.Color,
		&detail.EmployeeCount, &detail.CreatedAt, &detail.UpdatedAt,
		&detail.ManagerFirstName, &detail.ManagerLastName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Department not found")
		}
		return nil, err
	}

	rows, err := s.DB.Query(ctx, `
    SELECT id, employee_code, first_name, last_name, job_title, email, status
    FROM employees
    WHERE department_id = $1
    ORDER BY last_name, first_name
  `, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var m Member
		if err := rows.Scan(&m.ID, &m.Code, &m.FirstName, &m.LastName, &m.JobTitle, &m.Email, &m.Status); err != nil {
			return nil, err
		}
		detail.Employees = append(detail.Employees, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	err = s.DB.QueryRow(ctx, `
    SELECT COUNT(*),
           COUNT(*) FILTER (WHERE status = 'active'),
           COUNT(*) FILTER (WHERE status = 'on-leave'),
           ROUND(AVG(salary)::numeric, 2),
           ROUND(AVG(performance_score)::numeric, 2)
    FROM employees
    WHERE department_id = $1
  `, id).Scan(
		&detail.Statistics.TotalEmployees,
		&detail.Statistics.ActiveEmployees,
		&detail.Statistics.OnLeave,
		&detail.Statistics.AvgSalary,
		&detail.Statistics.AvgPerformance,
	)
	if err != nil {
		return nil, err
	}
	return &detail, nil
}

func (s *Store) NameExists(ctx context.Context, name string, excludeID int64) (bool, error) {
	var count int
	err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM departments WHERE LOWER(name) = LOWER($1) AND id <> $2", name, excludeID).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) Create(ctx context.Context, in NewDepartment) (*Department, error) {
	row := s.DB.QueryRow(ctx, `
    INSERT INTO departments (name, description, manager_id, budget, location, color)
    VALUES ($1, $2, $3, $4, $5, $6)
    RETURNING`+strings.ReplaceAll(departmentColumns, "d.", "")+`
  `, in.Name, in.Description, in.ManagerID, in.Budget, in.Location, in.Color)

	var dep Department
	err := row.Scan(
		&dep.ID, &dep.Name, &dep.Description, &dep.ManagerID, &dep.Budget, &dep.Location, &dep.Color,
		&dep.EmployeeCount, &dep.CreatedAt, &dep.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &dep, nil
}

func (p Patch) assignments() ([]string, []any) {
	var sets []string
	var args []any
	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if p.Name != nil {
		add("name", *p.Name)
	}
	if p.Description != nil {
		add("description", *p.Description)
	}
	if p.ManagerID != nil {
		add("manager_id", *p.ManagerID)
	}
	if p.Budget != nil {
		add("budget", *p.Budget)
	}
	if p.Location != nil {
		add("location", *p.Location)
	}
	if p.Color != nil {
		add("color", *p.Color)
	}
	if p.EmployeeCount != nil {
		add("employee_count", *p.EmployeeCount)
	}
	return sets, args
}

func (s *Store) Update(ctx context.Context, id int64, patch Patch) (*Department, error) {
	sets, args := patch.assignments()
	if len(sets) == 0 {
		return nil, apperr.Validation("No valid fields to update")
	}
	sets = append(sets, "updated_at = now()")
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE departments d SET %s WHERE d.id = $%d RETURNING`+departmentColumns,
		strings.Join(sets, ", "), len(args))

	var dep Department
	err := s.DB.QueryRow(ctx, query, args...).Scan(
		&dep.ID, &dep.Name, &dep.Description, &dep.ManagerID, &dep.Budget, &dep.Location, &dep.Color,
		&dep.EmployeeCount, &dep.CreatedAt, &dep.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Department not found")
		}
		return nil, err
	}
	return &dep, nil
}

// Delete refuses to remove a department that still has employees assigned.
func (s *Store) Delete(ctx context.Context, id int64) error {
	var members int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(*) FROM employees WHERE department_id = $1", id).Scan(&members); err != nil {
		return err
	}
	if members > 0 {
		return apperr.Conflict("Cannot delete department with employees. Please reassign employees first.")
	}

	cmd, err := s.DB.Exec(ctx, "DELETE FROM departments WHERE id = $1", id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return apperr.NotFound("Department not found")
	}
	return nil
}

// AdjustEmployeeCount moves the cached member counter by delta, clamped at
// zero.
func (s *Store) AdjustEmployeeCount(ctx context.Context, id int64, delta int) error {
	_, err := s.DB.Exec(ctx, `
    UPDATE departments
    SET employee_count = GREATEST(employee_count + $1, 0), updated_at = now()
    WHERE id = $2
  `, delta, id)
	return err
}
