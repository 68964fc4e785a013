package db

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

// Seed loads a small demo data set. It is idempotent: when any employee
// already exists the whole seed is skipped.
func Seed(ctx context.Context, pool *pgxpool.Pool) error {
	var existing int
	if err := pool.QueryRow(ctx, "SELECT COUNT(1) FROM employees").Scan(&existing); err != nil {
		return err
	}
	if existing > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	password := string(hash)

	tx, err := pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	departments := []struct {
		name, description, location, color string
		budget                             float64
	}{
		{"Engineering", "Product development and infrastructure", "Berlin", "#3b82f6", 1500000},
		{"Human Resources", "People operations and recruiting", "Berlin", "#10b981", 400000},
		{"Sales", "Revenue and customer accounts", "Munich", "#f59e0b", 900000},
		{"Finance", "Accounting and planning", "Berlin", "#8b5cf6", 600000},
	}
	departmentIDs := make(map[string]int64, len(departments))
	for _, d := range departments {
		var id int64
		err := tx.QueryRow(ctx, `
      INSERT INTO departments (name, description, location, color, budget)
      VALUES ($1, $2, $3, $4, $5)
      RETURNING id
    `, d.name, d.description, d.location, d.color, d.budget).Scan(&id)
		if err != nil {
			return err
		}
		departmentIDs[d.name] = id
	}

	employees := []struct {
		code, first, last, email, jobTitle, department, employmentType, role string
		salary                                                              float64
		performance                                                         int
	}{
		{"EMP-001", "Alice", "Hartmann", "alice.hartmann@peoplehub.test", "Head of People", "Human Resources", "full-time", "admin", 95000, 92},
		{"EMP-002", "Bruno", "Keller", "bruno.keller@peoplehub.test", "Engineering Manager", "Engineering", "full-time", "manager", 110000, 88},
		{"EMP-003", "Clara", "Voss", "clara.voss@peoplehub.test", "Backend Engineer", "Engineering", "full-time", "employee", 78000, 85},
		{"EMP-004", "Daniel", "Brandt", "daniel.brandt@peoplehub.test", "Account Executive", "Sales", "full-time", "employee", 65000, 74},
		{"EMP-005", "Elena", "Schuster", "elena.schuster@peoplehub.test", "Financial Analyst", "Finance", "part-time", "employee", 52000, 80},
	}
	employeeIDs := make(map[string]int64, len(employees))
	for _, e := range employees {
		var id int64
		err := tx.QueryRow(ctx, `
      INSERT INTO employees (
        employee_code, first_name, last_name, email, password_hash,
        job_title, department_id, employment_type, start_date, salary,
        performance_score, role, status
      ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now() - interval '1 year', $9, $10, $11, 'active')
      RETURNING id
    `, e.code, e.first, e.last, e.email, password,
			e.jobTitle, departmentIDs[e.department], e.employmentType, e.salary, e.performance, e.role).Scan(&id)
		if err != nil {
			return err
		}
		employeeIDs[e.code] = id
	}

	// Reporting lines and department counters.
	if _, err := tx.Exec(ctx, "UPDATE employees SET reports_to = $1 WHERE employee_code = 'EMP-003'", employeeIDs["EMP-002"]); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `
    UPDATE departments d
    SET employee_count = (SELECT COUNT(*) FROM employees e WHERE e.department_id = d.id)
  `); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, "UPDATE departments SET manager_id = $1 WHERE name = 'Engineering'", employeeIDs["EMP-002"]); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, "UPDATE departments SET manager_id = $1 WHERE name = 'Human Resources'", employeeIDs["EMP-001"]); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `
    INSERT INTO leave_applications (employee_id, leave_type, start_date, end_date, days, reason, status)
    VALUES
      ($1, 'vacation', current_date + 30, current_date + 34, 5, 'Family visit', 'pending'),
      ($2, 'sick', current_date - 10, current_date - 9, 2, NULL, 'approved')
  `, employeeIDs["EMP-003"], employeeIDs["EMP-004"]); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `
    INSERT INTO contracts (contract_number, employee_id, contract_type, start_date, salary, status, signed_at)
    VALUES
      ('CNT-2025-001', $1, 'permanent', current_date - interval '1 year', 110000, 'active', now() - interval '1 year'),
      ('CNT-2025-002', $2, 'permanent', current_date - interval '1 year', 78000, 'active', now() - interval '1 year'),
      ('CNT-2025-003', $3, 'fixed-term', current_date - interval '6 months', 52000, 'draft', NULL)
  `, employeeIDs["EMP-002"], employeeIDs["EMP-003"], employeeIDs["EMP-005"]); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}
	slog.Info("seed data loaded", "employees", len(employees), "departments", len(departments))
	return nil
}
