package session

import (
	"context"
	"time"

	domain "fitdesk/internal/domain/session"
)

// Store persists Session state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Session, error)
	Save(ctx context.Context, value domain.Session) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.Session, error)
	// ListByRange returns sessions starting in [from, to), ordered by start.
	ListByRange(ctx context.Context, from, to time.Time) ([]domain.Session, error)
	ListByCustomerID(ctx context.Context, customerID string) ([]domain.Session, error)
	ListByEmployeeID(ctx context.Context, employeeID string) ([]domain.Session, error)
}
