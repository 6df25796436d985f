package notice

import (
	"context"

	domain "fitdesk/internal/domain/notice"
)

// Store persists Notice state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Notice, error)
	Save(ctx context.Context, value domain.Notice) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.Notice, error)
	ListPublished(ctx context.Context) ([]domain.Notice, error)
}
