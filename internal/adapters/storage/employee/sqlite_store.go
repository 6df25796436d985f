package employee

import (
	"context"
	"database/sql"
	"fmt"

	"fitdesk/internal/adapters/storage"
	domain "fitdesk/internal/domain/employee"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new EmployeeStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const employeeColumns = "id, name, email, phone, role, hourly_rate, status"

// GetByID retrieves an Employee by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Employee, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+employeeColumns+" FROM employee WHERE id = ?", id)
	entity, err := scanEmployee(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Employee{}, fmt.Errorf("employee not found: %w", err)
	}
	return entity, err
}

// Save persists an Employee to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Employee) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO employee (id, name, email, phone, role, hourly_rate, status) VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   name=excluded.name, email=excluded.email, phone=excluded.phone,
		   role=excluded.role, hourly_rate=excluded.hourly_rate, status=excluded.status`,
		entity.ID, entity.Name, entity.Email, entity.Phone, entity.Role, entity.HourlyRate, entity.Status,
	)
	return err
}

// Delete removes an Employee from the database.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM employee WHERE id = ?", id)
	return err
}

// List retrieves all Employees ordered by name.
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Employee, error) {
	return s.queryEmployees(ctx, "SELECT "+employeeColumns+" FROM employee ORDER BY name")
}

// ListActive retrieves non-archived Employees ordered by name.
func (s *SQLiteStore) ListActive(ctx context.Context) ([]domain.Employee, error) {
	return s.queryEmployees(ctx,
		"SELECT "+employeeColumns+" FROM employee WHERE status = ? ORDER BY name", domain.StatusActive)
}

// ListNames retrieves employee display names keyed by ID.
func (s *SQLiteStore) ListNames(ctx context.Context) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, name FROM employee")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names := make(map[string]string)
	for rows.Next() {
		var id, name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		names[id] = name
	}
	return names, rows.Err()
}

func (s *SQLiteStore) queryEmployees(ctx context.Context, query string, args ...any) ([]domain.Employee, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Employee
	for rows.Next() {
		entity, err := scanEmployee(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

func scanEmployee(scan func(...any) error) (domain.Employee, error) {
	var entity domain.Employee
	var phone sql.NullString
	err := scan(&entity.ID, &entity.Name, &entity.Email, &phone, &entity.Role, &entity.HourlyRate, &entity.Status)
	if err != nil {
		return domain.Employee{}, err
	}
	entity.Phone = phone.String
	return entity, nil
}
