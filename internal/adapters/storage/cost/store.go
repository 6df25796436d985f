package cost

import (
	"context"
	"time"

	domain "fitdesk/internal/domain/cost"
)

// Store persists Cost state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Cost, error)
	Save(ctx context.Context, value domain.Cost) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.Cost, error)
	// ListBetween returns costs incurred in [from, to), newest first.
	ListBetween(ctx context.Context, from, to time.Time) ([]domain.Cost, error)
}
