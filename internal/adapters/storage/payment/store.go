package payment

import (
	"context"
	"time"

	domain "fitdesk/internal/domain/payment"
)

// Store persists Payment state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Payment, error)
	Save(ctx context.Context, value domain.Payment) error
	List(ctx context.Context) ([]domain.Payment, error)
	ListBySessionID(ctx context.Context, sessionID string) ([]domain.Payment, error)
	// SumPaidBetween totals paid payments with PaidAt in [from, to), in cents.
	SumPaidBetween(ctx context.Context, from, to time.Time) (int, error)
}
