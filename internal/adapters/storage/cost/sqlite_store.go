package cost

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"fitdesk/internal/adapters/storage"
	domain "fitdesk/internal/domain/cost"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new CostStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const costColumns = "id, category, description, amount, incurred_at, created_at"

// GetByID retrieves a Cost by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Cost, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+costColumns+" FROM cost WHERE id = ?", id)
	entity, err := scanCost(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Cost{}, fmt.Errorf("cost not found: %w", err)
	}
	return entity, err
}

// Save persists a Cost to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Cost) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO cost (id, category, description, amount, incurred_at, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   category=excluded.category, description=excluded.description,
		   amount=excluded.amount, incurred_at=excluded.incurred_at`,
		entity.ID, entity.Category, entity.Description, entity.Amount,
		entity.IncurredAt.UTC().Format(time.RFC3339), entity.CreatedAt.UTC().Format(time.RFC3339),
	)
	return err
}

// Delete removes a Cost from the database.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM cost WHERE id = ?", id)
	return err
}

// List retrieves all Costs, newest first.
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Cost, error) {
	return s.queryCosts(ctx, "SELECT "+costColumns+" FROM cost ORDER BY incurred_at DESC")
}

// ListBetween retrieves Costs incurred in [from, to), newest first.
// PRE: from is before to
// POST: Returns matching costs
func (s *SQLiteStore) ListBetween(ctx context.Context, from, to time.Time) ([]domain.Cost, error) {
	return s.queryCosts(ctx,
		"SELECT "+costColumns+" FROM cost WHERE incurred_at >= ? AND incurred_at < ? ORDER BY incurred_at DESC",
		from.UTC().Format(time.RFC3339), to.UTC().Format(time.RFC3339))
}

func (s *SQLiteStore) queryCosts(ctx context.Context, query string, args ...any) ([]domain.Cost, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Cost
	for rows.Next() {
		entity, err := scanCost(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

func scanCost(scan func(...any) error) (domain.Cost, error) {
	var entity domain.Cost
	var incurredStr, createdStr string
	err := scan(&entity.ID, &entity.Category, &entity.Description, &entity.Amount, &incurredStr, &createdStr)
	if err != nil {
		return domain.Cost{}, err
	}
	entity.IncurredAt = parseTime(incurredStr)
	entity.CreatedAt = parseTime(createdStr)
	return entity, nil
}

func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, _ := time.Parse(time.RFC3339, s)
	return t
}
