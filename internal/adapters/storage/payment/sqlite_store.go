package payment

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"fitdesk/internal/adapters/storage"
	domain "fitdesk/internal/domain/payment"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new PaymentStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const paymentColumns = "id, session_id, customer_id, amount, method, status, provider_ref, created_at, paid_at"

// GetByID retrieves a Payment by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Payment, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+paymentColumns+" FROM payment WHERE id = ?", id)
	entity, err := scanPayment(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Payment{}, fmt.Errorf("payment not found: %w", err)
	}
	return entity, err
}

// Save persists a Payment to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Payment) error {
	paidAt := ""
	if !entity.PaidAt.IsZero() {
		paidAt = entity.PaidAt.UTC().Format(time.RFC3339)
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO payment (id, session_id, customer_id, amount, method, status, provider_ref, created_at, paid_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   amount=excluded.amount, method=excluded.method, status=excluded.status,
		   provider_ref=excluded.provider_ref, paid_at=excluded.paid_at`,
		entity.ID, entity.SessionID, entity.CustomerID, entity.Amount,
		entity.Method, entity.Status, entity.ProviderRef,
		entity.CreatedAt.UTC().Format(time.RFC3339), paidAt,
	)
	return err
}

// List retrieves all Payments, newest first.
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Payment, error) {
	return s.queryPayments(ctx, "SELECT "+paymentColumns+" FROM payment ORDER BY created_at DESC")
}

// ListBySessionID retrieves Payments recorded for a session.
// PRE: sessionID is non-empty
// POST: Returns payments ordered by creation time
func (s *SQLiteStore) ListBySessionID(ctx context.Context, sessionID string) ([]domain.Payment, error) {
	return s.queryPayments(ctx,
		"SELECT "+paymentColumns+" FROM payment WHERE session_id = ? ORDER BY created_at", sessionID)
}

// SumPaidBetween totals paid payments with PaidAt in [from, to).
// PRE: from is before to
// POST: Returns the sum in cents (0 when no payments match)
func (s *SQLiteStore) SumPaidBetween(ctx context.Context, from, to time.Time) (int, error) {
	var total sql.NullInt64
	err := s.db.QueryRowContext(ctx,
		"SELECT SUM(amount) FROM payment WHERE status = ? AND paid_at >= ? AND paid_at < ?",
		domain.StatusPaid, from.UTC().Format(time.RFC3339), to.UTC().Format(time.RFC3339),
	).Scan(&total)
	if err != nil {
		return 0, err
	}
	return int(total.Int64), nil
}

func (s *SQLiteStore) queryPayments(ctx context.Context, query string, args ...any) ([]domain.Payment, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Payment
	for rows.Next() {
		entity, err := scanPayment(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

func scanPayment(scan func(...any) error) (domain.Payment, error) {
	var entity domain.Payment
	var providerRef, createdStr, paidStr sql.NullString
	err := scan(&entity.ID, &entity.SessionID, &entity.CustomerID, &entity.Amount,
		&entity.Method, &entity.Status, &providerRef, &createdStr, &paidStr)
	if err != nil {
		return domain.Payment{}, err
	}
	entity.ProviderRef = providerRef.String
	entity.CreatedAt = parseTime(createdStr.String)
	entity.PaidAt = parseTime(paidStr.String)
	return entity, nil
}

func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, _ := time.Parse(time.RFC3339, s)
	return t
}
