package service

import (
	"context"
	"database/sql"
	"fmt"

	"fitdesk/internal/adapters/storage"
	domain "fitdesk/internal/domain/service"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new ServiceStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const serviceColumns = "id, name, type, duration_minutes, price, active"

// GetByID retrieves a Service by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Service, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+serviceColumns+" FROM service WHERE id = ?", id)
	var entity domain.Service
	err := row.Scan(&entity.ID, &entity.Name, &entity.Type, &entity.DurationMinutes, &entity.Price, &entity.Active)
	if err == sql.ErrNoRows {
		return domain.Service{}, fmt.Errorf("service not found: %w", err)
	}
	return entity, err
}

// Save persists a Service to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Service) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO service (id, name, type, duration_minutes, price, active) VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   name=excluded.name, type=excluded.type, duration_minutes=excluded.duration_minutes,
		   price=excluded.price, active=excluded.active`,
		entity.ID, entity.Name, entity.Type, entity.DurationMinutes, entity.Price, entity.Active,
	)
	return err
}

// Delete removes a Service from the database.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM service WHERE id = ?", id)
	return err
}

// List retrieves all Services ordered by name.
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Service, error) {
	return s.queryServices(ctx, "SELECT "+serviceColumns+" FROM service ORDER BY name")
}

// ListActive retrieves bookable Services ordered by name.
func (s *SQLiteStore) ListActive(ctx context.Context) ([]domain.Service, error) {
	return s.queryServices(ctx, "SELECT "+serviceColumns+" FROM service WHERE active = 1 ORDER BY name")
}

func (s *SQLiteStore) queryServices(ctx context.Context, query string, args ...any) ([]domain.Service, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Service
	for rows.Next() {
		var entity domain.Service
		if err := rows.Scan(&entity.ID, &entity.Name, &entity.Type, &entity.DurationMinutes, &entity.Price, &entity.Active); err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}
