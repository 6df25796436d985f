package customer

import (
	"context"

	domain "fitdesk/internal/domain/customer"
)

// Store persists Customer state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Customer, error)
	GetByEmail(ctx context.Context, email string) (domain.Customer, error)
	Save(ctx context.Context, value domain.Customer) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.Customer, error)
	// Search returns customers whose name or email matches the query,
	// paginated; total is the match count before paging.
	Search(ctx context.Context, query, status string, limit, offset int) ([]domain.Customer, int, error)
	// ListNames returns display names keyed by customer ID.
	ListNames(ctx context.Context) (map[string]string, error)
}
