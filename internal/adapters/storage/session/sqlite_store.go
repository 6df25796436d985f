package session

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"fitdesk/internal/adapters/storage"
	domain "fitdesk/internal/domain/session"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new SessionStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const sessionColumns = "id, title, start_at, end_at, status, type, customer_id, employee_id, service_id, total_price, created_at"

// GetByID retrieves a Session by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Session, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+sessionColumns+" FROM session WHERE id = ?", id)
	entity, err := scanSession(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Session{}, fmt.Errorf("session not found: %w", err)
	}
	return entity, err
}

// Save persists a Session to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Session) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO session (id, title, start_at, end_at, status, type, customer_id, employee_id, service_id, total_price, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   title=excluded.title, start_at=excluded.start_at, end_at=excluded.end_at,
		   status=excluded.status, type=excluded.type, customer_id=excluded.customer_id,
		   employee_id=excluded.employee_id, service_id=excluded.service_id,
		   total_price=excluded.total_price`,
		entity.ID, entity.Title,
		formatTime(entity.Start), formatTime(entity.End),
		entity.Status, entity.Type, entity.CustomerID, entity.EmployeeID,
		entity.ServiceID, entity.TotalPrice, formatTime(entity.CreatedAt),
	)
	return err
}

// Delete removes a Session from the database.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM session WHERE id = ?", id)
	return err
}

// List retrieves all Sessions ordered by start time.
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Session, error) {
	return s.querySessions(ctx, "SELECT "+sessionColumns+" FROM session ORDER BY start_at")
}

// ListByRange retrieves Sessions starting in [from, to).
// PRE: from is before to
// POST: Returns sessions ordered by start time
func (s *SQLiteStore) ListByRange(ctx context.Context, from, to time.Time) ([]domain.Session, error) {
	return s.querySessions(ctx,
		"SELECT "+sessionColumns+" FROM session WHERE start_at >= ? AND start_at < ? ORDER BY start_at",
		formatTime(from), formatTime(to))
}

// ListByCustomerID retrieves Sessions for a specific customer.
// PRE: customerID is non-empty
// POST: Returns sessions ordered by start time
func (s *SQLiteStore) ListByCustomerID(ctx context.Context, customerID string) ([]domain.Session, error) {
	return s.querySessions(ctx,
		"SELECT "+sessionColumns+" FROM session WHERE customer_id = ? ORDER BY start_at", customerID)
}

// ListByEmployeeID retrieves Sessions for a specific employee.
// PRE: employeeID is non-empty
// POST: Returns sessions ordered by start time
func (s *SQLiteStore) ListByEmployeeID(ctx context.Context, employeeID string) ([]domain.Session, error) {
	return s.querySessions(ctx,
		"SELECT "+sessionColumns+" FROM session WHERE employee_id = ? ORDER BY start_at", employeeID)
}

func (s *SQLiteStore) querySessions(ctx context.Context, query string, args ...any) ([]domain.Session, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Session
	for rows.Next() {
		entity, err := scanSession(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

func scanSession(scan func(...any) error) (domain.Session, error) {
	var entity domain.Session
	var startStr, endStr, createdStr string
	var serviceID sql.NullString
	err := scan(&entity.ID, &entity.Title, &startStr, &endStr, &entity.Status,
		&entity.Type, &entity.CustomerID, &entity.EmployeeID, &serviceID,
		&entity.TotalPrice, &createdStr)
	if err != nil {
		return domain.Session{}, err
	}
	entity.ServiceID = serviceID.String
	if entity.Start, err = parseTime(startStr); err != nil {
		return domain.Session{}, fmt.Errorf("session %s start_at: %w", entity.ID, err)
	}
	if entity.End, err = parseTime(endStr); err != nil {
		return domain.Session{}, fmt.Errorf("session %s end_at: %w", entity.ID, err)
	}
	if entity.CreatedAt, err = parseTime(createdStr); err != nil {
		return domain.Session{}, fmt.Errorf("session %s created_at: %w", entity.ID, err)
	}
	return entity, nil
}

// formatTime normalizes an instant to UTC before storing. Local-offset
// strings compare lexicographically, so a mixed-offset column would
// mis-order rows across a DST change.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, s)
}
