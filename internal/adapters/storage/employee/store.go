package employee

import (
	"context"

	domain "fitdesk/internal/domain/employee"
)

// Store persists Employee state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Employee, error)
	Save(ctx context.Context, value domain.Employee) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.Employee, error)
	ListActive(ctx context.Context) ([]domain.Employee, error)
	// ListNames returns display names keyed by employee ID.
	ListNames(ctx context.Context) (map[string]string, error)
}
