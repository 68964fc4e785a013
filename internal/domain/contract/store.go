package contract

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

const contractColumns = `
    c.id, c.contract_number, c.employee_id, c.contract_type, c.start_date, c.end_date,
    c.salary, c.terms, c.status, c.file_path, c.signed_at, c.created_at, c.updated_at`

func scanContract(row pgx.Row, con *Contract, joined bool) error {
	dest := []any{
		&con.ID, &con.ContractNumber, &con.EmployeeID, &con.ContractType, &con.StartDate, &con.EndDate,
		&con.Salary, &con.Terms, &con.Status, &con.FilePath, &con.SignedAt, &con.CreatedAt, &con.UpdatedAt,
	}
	if joined {
		dest = append(dest, &con.EmployeeFirstName, &con.EmployeeLastName, &con.EmployeeCode, &con.JobTitle, &con.DepartmentName)
	}
	return row.Scan(dest...)
}

func (s *Store) List(ctx context.Context, f Filter, limit, offset int) ([]Contract, int, error) {
	clause := " WHERE 1=1"
	var args []any
	if f.Status != "" {
		args = append(args, f.Status)
		clause += fmt.Sprintf(" AND c.status = $%d", len(args))
	}
	if f.EmployeeID != 0 {
		args = append(args, f.EmployeeID)
		clause += fmt.Sprintf(" AND c.employee_id = $%d", len(args))
	}
	if f.ContractType != "" {
		args = append(args, f.ContractType)
		clause += fmt.Sprintf(" AND c.contract_type = $%d", len(args))
	}

	var total int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(*) FROM contracts c"+clause, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := "SELECT" + contractColumns + `,
    e.first_name, e.last_name, e.employee_code, e.job_title, d.name
    FROM contracts c
    JOIN employees e ON c.employee_id = e.id
    LEFT JOIN departments d ON e.department_id = d.id` + clause +
		fmt.Sprintf(" ORDER BY c.created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := []Contract{}
	for rows.Next() {
		var con Contract
		if err := scanContract(rows, &con, true); err != nil {
			return nil, 0, err
		}
		out = append(out, con)
	}
	return out, total, rows.Err()
}

func (s *Store) Get(ctx context.Context, id int64) (*Contract, error) {
	row := s.DB.QueryRow(ctx, "SELECT"+contractColumns+`,
    e.first_name, e.last_name, e.employee_code, e.job_title, d.name
    FROM contracts c
    JOIN employees e ON c.employee_id = e.id
    LEFT JOIN departments d ON e.department_id = d.id
    WHERE c.id = $1
  `, id)

	var con Contract
	if err := scanContract(row, &con, true); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Contract not found")
		}
		return nil, err
	}
	return &con, nil
}

// LastNumber returns the most recently assigned contract number, or empty
// when none exists yet.
func (s *Store) LastNumber(ctx context.Context) (string, error) {
	var number string
	err := s.DB.QueryRow(ctx, "SELECT contract_number FROM contracts WHERE contract_number LIKE 'CNT-%' ORDER BY id DESC LIMIT 1").Scan(&number)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return number, nil
}

func (s *Store) Create(ctx context.Context, number string, in NewContract) (*Contract, error) {
	var exists int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM employees WHERE id = $1", in.EmployeeID).Scan(&exists); err != nil {
		return nil, err
	}
	if exists == 0 {
		return nil, apperr.NotFound("Employee not found")
	}

	row := s.DB.QueryRow(ctx, `
    INSERT INTO contracts (contract_number, employee_id, contract_type, start_date, end_date, salary, terms)
    VALUES ($1, $2, $3, $4, $5, $6, $7)
    RETURNING`+strings.ReplaceAll(contractColumns, "c.", "")+`
  `, number, in.EmployeeID, in.ContractType, in.StartDate, in.EndDate, in.Salary, in.Terms)

	var con Contract
	if err := scanContract(row, &con, false); err != nil {
		return nil, err
	}
	return &con, nil
}

func (p Patch) assignments() ([]string, []any) {
	var sets []string
	var args []any
	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if p.ContractType != nil {
		add("contract_type", *p.ContractType)
	}
	if p.StartDate != nil {
		add("start_date", *p.StartDate)
	}
	if p.EndDate != nil {
		add("end_date", *p.EndDate)
	}
	if p.Salary != nil {
		add("salary", *p.Salary)
	}
	if p.Terms != nil {
		add("terms", *p.Terms)
	}
	if p.Status != nil {
		add("status", *p.Status)
	}
	if p.FilePath != nil {
		add("file_path", *p.FilePath)
	}
	if p.SignedAt != nil {
		add("signed_at", *p.SignedAt)
	}
	return sets, args
}

func (s *Store) Update(ctx context.Context, id int64, patch Patch) (*Contract, error) {
	sets, args := patch.assignments()
	if len(sets) == 0 {
		return nil, apperr.Validation("No valid fields to update")
	}
	sets = append(sets, "updated_at = now()")
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE contracts c SET %s WHERE c.id = $%d RETURNING`+contractColumns,
		strings.Join(sets, ", "), len(args))

	var con Contract
	if err := scanContract(s.DB.QueryRow(ctx, query, args...), &con, false); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Contract not found")
		}
		return nil, err
	}
	return &con, nil
}

// Sign activates a contract and stamps the signature time. Signing twice is
// a conflict.
func (s *Store) Sign(ctx context.Context, id int64) (*Contract, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Status == StatusActive && current.SignedAt != nil {
		return nil, apperr.Conflict("Contract is already signed")
	}

	row := s.DB.QueryRow(ctx, `
    UPDATE contracts c
    SET status = 'active', signed_at = now(), updated_at = now()
    WHERE c.id = $1
    RETURNING`+contractColumns+`
  `, id)

	var con Contract
	if err := scanContract(row, &con, false); err != nil {
		return nil, err
	}
	return &con, nil
}

func (s *Store) Delete(ctx context.Context, id int64) error {
	cmd, err := s.DB.Exec(ctx, "DELETE FROM contracts WHERE id = $1", id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return apperr.NotFound("Contract not found")
	}
	return nil
}

func (s *Store) Statistics(ctx context.Context) (*Statistics, error) {
	stats := &Statistics{}

	rows, err := s.DB.Query(ctx, "SELECT contract_type, COUNT(*) FROM contracts GROUP BY contract_type")
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var tc TypeCount
		if err := rows.Scan(&tc.ContractType, &tc.Count); err != nil {
			rows.Close()
			return nil, err
		}
		stats.ByType = append(stats.ByType, tc)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = s.DB.Query(ctx, "SELECT status, COUNT(*) FROM contracts GROUP BY status")
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

	err = s.DB.QueryRow(ctx, `
    SELECT COUNT(*)
    FROM contracts
    WHERE status = 'active'
      AND end_date IS NOT NULL
      AND end_date BETWEEN now() AND now() + interval '30 days'
  `).Scan(&stats.ExpiringSoon)
	if err != nil {
		return nil, err
	}
	return stats, nil
}
