// Package activity appends to the audit trail. Writes are best-effort: they
// run off the request's critical path, are attempted exactly once, and a
// failed append never fails the operation that triggered it.
package activity

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Entry struct {
	ID          int64     `json:"id"`
	EmployeeID  *int64    `json:"employeeId"`
	Action      string    `json:"action"`
	Description string    `json:"description"`
	IPAddress   *string   `json:"ipAddress,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	FirstName   *string   `json:"firstName,omitempty"`
	LastName    *string   `json:"lastName,omitempty"`
}

type Recorder struct {
	DB      *pgxpool.Pool
	Timeout time.Duration

	wg sync.WaitGroup
}

func NewRecorder(db *pgxpool.Pool) *Recorder {
	return &Recorder{DB: db, Timeout: 5 * time.Second}
}

// Record appends an activity entry asynchronously. The write survives the
// request context being cancelled once the response is sent.
func (rec *Recorder) Record(ctx context.Context, actorID int64, action, description, ip string) {
	detached := context.WithoutCancel(ctx)
	rec.wg.Add(1)
	go func() {
		defer rec.wg.Done()
		writeCtx, cancel := context.WithTimeout(detached, rec.Timeout)
		defer cancel()

		var ipValue any
		if ip != "" {
			ipValue = ip
		}
		if _, err := rec.DB.Exec(writeCtx, `
      INSERT INTO activity_logs (employee_id, action, description, ip_address)
      VALUES ($1, $2, $3, $4)
    `, actorID, action, description, ipValue); err != nil {
			slog.Warn("activity log append failed", "action", action, "actorId", actorID, "err", err)
		}
	}()
}

// Wait blocks until all in-flight appends finish. Used on shutdown and by
// tests that assert on the audit trail.
func (rec *Recorder) Wait() {
	rec.wg.Wait()
}

// Recent returns the newest entries joined with the actor's name.
func (rec *Recorder) Recent(ctx context.Context, limit int) ([]Entry, error) {
	rows, err := rec.DB.Query(ctx, `
    SELECT al.id, al.employee_id, al.action, COALESCE(al.description, ''), al.ip_address, al.created_at,
           e.first_name, e.last_name
    FROM activity_logs al
    LEFT JOIN employees e ON al.employee_id = e.id
    ORDER BY al.created_at DESC
    LIMIT $1
  `, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Entry{}
	for rows.Next() {
		var entry Entry
		if err := rows.Scan(&entry.ID, &entry.EmployeeID, &entry.Action, &entry.Description, &entry.IPAddress, &entry.CreatedAt, &entry.FirstName, &entry.LastName); err != nil {
			return nil, err
		}
		out = append(out, entry)
	}
	return out, rows.Err()
}
