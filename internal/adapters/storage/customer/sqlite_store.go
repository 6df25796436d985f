package customer

import (
	"context"
	"database/sql"
	"fmt"

	"fitdesk/internal/adapters/storage"
	domain "fitdesk/internal/domain/customer"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new CustomerStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const customerColumns = "id, name, email, phone, notes, status"

// GetByID retrieves a Customer by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Customer, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+customerColumns+" FROM customer WHERE id = ?", id)
	entity, err := scanCustomer(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Customer{}, fmt.Errorf("customer not found: %w", err)
	}
	return entity, err
}

// GetByEmail retrieves a Customer by email.
// PRE: email is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByEmail(ctx context.Context, email string) (domain.Customer, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+customerColumns+" FROM customer WHERE email = ?", email)
	entity, err := scanCustomer(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Customer{}, fmt.Errorf("customer not found: %w", err)
	}
	return entity, err
}

// Save persists a Customer to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Customer) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO customer (id, name, email, phone, notes, status) VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   name=excluded.name, email=excluded.email, phone=excluded.phone,
		   notes=excluded.notes, status=excluded.status`,
		entity.ID, entity.Name, entity.Email, entity.Phone, entity.Notes, entity.Status,
	)
	return err
}

// Delete removes a Customer from the database.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM customer WHERE id = ?", id)
	return err
}

// List retrieves all Customers ordered by name.
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Customer, error) {
	return s.queryCustomers(ctx, "SELECT "+customerColumns+" FROM customer ORDER BY name")
}

// Search retrieves Customers matching a name/email query and optional status,
// with pagination.
// PRE: limit > 0, offset >= 0
// POST: Returns the page of matches and the total match count
func (s *SQLiteStore) Search(ctx context.Context, query, status string, limit, offset int) ([]domain.Customer, int, error) {
	where := "WHERE 1=1"
	var args []any
	if query != "" {
		where += " AND (name LIKE ? OR email LIKE ?)"
		like := "%" + query + "%"
		args = append(args, like, like)
	}
	if status != "" {
		where += " AND status = ?"
		args = append(args, status)
	}

	var total int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM customer "+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, limit, offset)
	results, err := s.queryCustomers(ctx,
		"SELECT "+customerColumns+" FROM customer "+where+" ORDER BY name LIMIT ? OFFSET ?", args...)
	if err != nil {
		return nil, 0, err
	}
	return results, total, nil
}

// ListNames retrieves customer display names keyed by ID.
func (s *SQLiteStore) ListNames(ctx context.Context) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, name FROM customer")
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

func (s *SQLiteStore) queryCustomers(ctx context.Context, query string, args ...any) ([]domain.Customer, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Customer
	for rows.Next() {
		entity, err := scanCustomer(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

func scanCustomer(scan func(...any) error) (domain.Customer, error) {
	var entity domain.Customer
	var phone, notes sql.NullString
	err := scan(&entity.ID, &entity.Name, &entity.Email, &phone, &notes, &entity.Status)
	if err != nil {
		return domain.Customer{}, err
	}
	entity.Phone = phone.String
	entity.Notes = notes.String
	return entity, nil
}
