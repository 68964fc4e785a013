package employee

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"peoplehub/internal/domain/apperr"
	"peoplehub/internal/domain/auth"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const employeeColumns = `
    e.id, e.employee_code, e.first_name, e.last_name, e.email, e.password_hash,
    e.phone, e.date_of_birth, e.gender, e.job_title, e.department_id, e.reports_to,
    e.employment_type, e.start_date, e.salary, e.pay_frequency, e.address, e.city,
    e.country, e.photo, e.status, e.performance_score, e.role, e.created_at, e.updated_at`

var sortColumns = map[string]string{
	"created_at":        "e.created_at",
	"first_name":        "e.first_name",
	"last_name":         "e.last_name",
	"email":             "e.email",
	"employee_code":     "e.employee_code",
	"status":            "e.status",
	"salary":            "e.salary",
	"start_date":        "e.start_date",
	"performance_score": "e.performance_score",
}

func scanEmployee(row pgx.Row, emp *Employee, joined bool) error {
	dest := []any{
		&emp.ID, &emp.Code, &emp.FirstName, &emp.LastName, &emp.Email, &emp.PasswordHash,
		&emp.Phone, &emp.DateOfBirth, &emp.Gender, &emp.JobTitle, &emp.DepartmentID, &emp.ReportsTo,
		&emp.EmploymentType, &emp.StartDate, &emp.Salary, &emp.PayFrequency, &emp.Address, &emp.City,
		&emp.Country, &emp.Photo, &emp.Status, &emp.PerformanceScore, &emp.Role, &emp.CreatedAt, &emp.UpdatedAt,
	}
	if joined {
		dest = append(dest, &emp.DepartmentName, &emp.DepartmentColor, &emp.ManagerFirstName, &emp.ManagerLastName)
	}
	return row.Scan(dest...)
}

func buildFilter(f Filter) (string, []any) {
	clause := " WHERE 1=1"
	var args []any
	if f.Status != "" {
		args = append(args, f.Status)
		clause += fmt.Sprintf(" AND e.status = $%d", len(args))
	}
	if f.Department != "" {
		args = append(args, f.Department)
		clause += fmt.Sprintf(" AND e.department_id = $%d::bigint", len(args))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		n := len(args)
		clause += fmt.Sprintf(" AND (e.first_name ILIKE $%d OR e.last_name ILIKE $%d OR e.email ILIKE $%d OR e.employee_code ILIKE $%d)", n, n, n, n)
	}
	return clause, args
}

// List returns a page of employees plus the total count under the same
// filter predicate.
func (s *Store) List(ctx context.Context, f Filter, limit, offset int) ([]Employee, int, error) {
	where, args := buildFilter(f)

	var total int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(*) FROM employees e"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	orderCol, ok := sortColumns[f.SortBy]
	if !ok {
		orderCol = "e.created_at"
	}
	direction := "DESC"
	if strings.EqualFold(f.Order, "asc") {
		direction = "ASC"
	}

	query := "SELECT" + employeeColumns + `,
    d.name, d.color, m.first_name, m.last_name
    FROM employees e
    LEFT JOIN departments d ON e.department_id = d.id
    LEFT JOIN employees m ON e.reports_to = m.id` + where +
		fmt.Sprintf(" ORDER BY %s %s LIMIT $%d OFFSET $%d", orderCol, direction, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := []Employee{}
	for rows.Next() {
		var emp Employee
		if err := scanEmployee(rows, &emp, true); err != nil {
			return nil, 0, err
		}
		out = append(out, emp)
	}
	return out, total, rows.Err()
}

func (s *Store) Get(ctx context.Context, id int64) (*Employee, error) {
	row := s.DB.QueryRow(ctx, "SELECT"+employeeColumns+`,
    d.name, d.color, m.first_name, m.last_name
    FROM employees e
    LEFT JOIN departments d ON e.department_id = d.id
    LEFT JOIN employees m ON e.reports_to = m.id
    WHERE e.id = $1`, id)

	var emp Employee
	if err := scanEmployee(row, &emp, true); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Employee not found")
		}
		return nil, err
	}
	return &emp, nil
}

func (s *Store) GetByEmail(ctx context.Context, email string) (*Employee, error) {
	row := s.DB.QueryRow(ctx, "SELECT"+employeeColumns+`,
    d.name, d.color, m.first_name, m.last_name
    FROM employees e
    LEFT JOIN departments d ON e.department_id = d.id
    LEFT JOIN employees m ON e.reports_to = m.id
    WHERE e.email = $1`, email)

	var emp Employee
	if err := scanEmployee(row, &emp, true); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Employee not found")
		}
		return nil, err
	}
	return &emp, nil
}

// IdentityByID loads the reduced acting-identity projection for the session
// resolver. The password hash never leaves the store here.
func (s *Store) IdentityByID(ctx context.Context, id int64) (auth.Identity, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT id, employee_code, first_name, last_name, email, role, department_id, status
    FROM employees
    WHERE id = $1
  `, id)

	var identity auth.Identity
	err := row.Scan(&identity.ID, &identity.Code, &identity.FirstName, &identity.LastName, &identity.Email, &identity.Role, &identity.DepartmentID, &identity.Status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.Identity{}, apperr.NotFound("User not found")
		}
		return auth.Identity{}, err
	}
	return identity, nil
}

func (s *Store) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM employees WHERE email = $1", email).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

// LastCode returns the most recently assigned employee code, or empty when
// none exists yet.
func (s *Store) LastCode(ctx context.Context) (string, error) {
	var code string
	err := s.DB.QueryRow(ctx, "SELECT employee_code FROM employees WHERE employee_code LIKE 'EMP-%' ORDER BY id DESC LIMIT 1").Scan(&code)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return code, nil
}

func (s *Store) Create(ctx context.Context, code, passwordHash string, in NewEmployee) (*Employee, error) {
	row := s.DB.QueryRow(ctx, `
    INSERT INTO employees (
      employee_code, first_name, last_name, email, password_hash, phone,
      date_of_birth, gender, job_title, department_id, reports_to,
      employment_type, start_date, salary, pay_frequency,
      address, city, country, role, status
    ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,'active')
    RETURNING`+strings.ReplaceAll(employeeColumns, "e.", "")+`
  `,
		code, in.FirstName, in.LastName, in.Email, passwordHash, in.Phone,
		in.DateOfBirth, in.Gender, in.JobTitle, in.DepartmentID, in.ReportsTo,
		in.EmploymentType, in.StartDate, in.Salary, in.PayFrequency,
		in.Address, in.City, in.Country, in.Role,
	)

	var emp Employee
	if err := scanEmployee(row, &emp, false); err != nil {
		return nil, err
	}
	return &emp, nil
}

func (p Patch) assignments() ([]string, []any) {
	var sets []string
	var args []any
	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if p.FirstName != nil {
		add("first_name", *p.FirstName)
	}
	if p.LastName != nil {
		add("last_name", *p.LastName)
	}
	if p.Email != nil {
		add("email", *p.Email)
	}
	if p.Phone != nil {
		add("phone", *p.Phone)
	}
	if p.DateOfBirth != nil {
		add("date_of_birth", *p.DateOfBirth)
	}
	if p.Gender != nil {
		add("gender", *p.Gender)
	}
	if p.JobTitle != nil {
		add("job_title", *p.JobTitle)
	}
	if p.DepartmentID != nil {
		add("department_id", *p.DepartmentID)
	}
	if p.ReportsTo != nil {
		add("reports_to", *p.ReportsTo)
	}
	if p.EmploymentType != nil {
		add("employment_type", *p.EmploymentType)
	}
	if p.StartDate != nil {
		add("start_date", *p.StartDate)
	}
	if p.Salary != nil {
		add("salary", *p.Salary)
	}
	if p.PayFrequency != nil {
		add("pay_frequency", *p.PayFrequency)
	}
	if p.Address != nil {
		add("address", *p.Address)
	}
	if p.City != nil {
		add("city", *p.City)
	}
	if p.Country != nil {
		add("country", *p.Country)
	}
	if p.Status != nil {
		add("status", *p.Status)
	}
	if p.PerformanceScore != nil {
		add("performance_score", *p.PerformanceScore)
	}
	if p.Role != nil {
		add("role", *p.Role)
	}
	if p.Photo != nil {
		add("photo", *p.Photo)
	}
	return sets, args
}

// Update applies a partial update. A patch that survives the allow-list with
// zero fields is a validation failure, not a no-op.
func (s *Store) Update(ctx context.Context, id int64, patch Patch) (*Employee, error) {
	sets, args := patch.assignments()
	if len(sets) == 0 {
		return nil, apperr.Validation("No valid fields to update")
	}
	sets = append(sets, "updated_at = now()")
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE employees e SET %s WHERE e.id = $%d RETURNING`+employeeColumns,
		strings.Join(sets, ", "), len(args))

	var emp Employee
	if err := scanEmployee(s.DB.QueryRow(ctx, query, args...), &emp, false); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Employee not found")
		}
		return nil, err
	}
	return &emp, nil
}

func (s *Store) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	cmd, err := s.DB.Exec(ctx, "UPDATE employees SET password_hash = $1, updated_at = now() WHERE id = $2", passwordHash, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return apperr.NotFound("Employee not found")
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id int64) error {
	cmd, err := s.DB.Exec(ctx, "DELETE FROM employees WHERE id = $1", id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return apperr.NotFound("Employee not found")
	}
	return nil
}

func (s *Store) Subordinates(ctx context.Context, id int64) ([]Subordinate, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, employee_code, first_name, last_name, job_title, email
    FROM employees
    WHERE reports_to = $1
    ORDER BY last_name, first_name
  `, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Subordinate{}
	for rows.Next() {
		var sub Subordinate
		if err := rows.Scan(&sub.ID, &sub.Code, &sub.FirstName, &sub.LastName, &sub.JobTitle, &sub.Email); err != nil {
			return nil, err
		}
		out = append(out, sub)
	}
	return out, rows.Err()
}

func (s *Store) TopPerformers(ctx context.Context, limit int) ([]TopPerformer, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT e.id, e.employee_code, e.first_name, e.last_name, e.job_title, e.performance_score,
           d.name, d.color
    FROM employees e
    LEFT JOIN departments d ON e.department_id = d.id
    WHERE e.status = 'active' AND e.performance_score > 0
    ORDER BY e.performance_score DESC
    LIMIT $1
  `, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []TopPerformer{}
	for rows.Next() {
		var tp TopPerformer
		if err := rows.Scan(&tp.ID, &tp.Code, &tp.FirstName, &tp.LastName, &tp.JobTitle, &tp.PerformanceScore, &tp.Department, &tp.DepartmentColor); err != nil {
			return nil, err
		}
		out = append(out, tp)
	}
	return out, rows.Err()
}

func (s *Store) Statistics(ctx context.Context) (*Statistics, error) {
	stats := &Statistics{}

	rows, err := s.DB.Query(ctx, "SELECT status, COUNT(*) FROM employees GROUP BY status")
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
    SELECT d.name, COUNT(e.id)
    FROM departments d
    LEFT JOIN employees e ON d.id = e.department_id
    GROUP BY d.name
    ORDER BY COUNT(e.id) DESC
  `)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var dc DepartmentCount
		if err := rows.Scan(&dc.Department, &dc.Count); err != nil {
			rows.Close()
			return nil, err
		}
		stats.ByDepartment = append(stats.ByDepartment, dc)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = s.DB.Query(ctx, "SELECT employment_type, COUNT(*) FROM employees GROUP BY employment_type")
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var tc TypeCount
		if err := rows.Scan(&tc.EmploymentType, &tc.Count); err != nil {
			rows.Close()
			return nil, err
		}
		stats.ByEmploymentType = append(stats.ByEmploymentType, tc)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = s.DB.Query(ctx, "SELECT gender, COUNT(*) FROM employees WHERE gender IS NOT NULL GROUP BY gender")
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var gc GenderCount
		if err := rows.Scan(&gc.Gender, &gc.Count); err != nil {
			rows.Close()
			return nil, err
		}
		stats.ByGender = append(stats.ByGender, gc)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = s.DB.Query(ctx, `
    SELECT d.name, ROUND(AVG(e.salary)::numeric, 2)
    FROM departments d
    JOIN employees e ON d.id = e.department_id
    WHERE e.salary IS NOT NULL
    GROUP BY d.name
    ORDER BY 2 DESC
  `)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var ds DepartmentSalary
		if err := rows.Scan(&ds.Department, &ds.AvgSalary); err != nil {
			rows.Close()
			return nil, err
		}
		stats.AvgSalaryByDepartment = append(stats.AvgSalaryByDepartment, ds)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return stats, nil
}
