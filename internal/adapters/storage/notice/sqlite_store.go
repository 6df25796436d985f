package notice

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"fitdesk/internal/adapters/storage"
	domain "fitdesk/internal/domain/notice"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new NoticeStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const noticeColumns = "id, status, title, content, created_by, pinned, pinned_at, created_at, published_at"

// GetByID retrieves a Notice by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Notice, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+noticeColumns+" FROM notice WHERE id = ?", id)
	entity, err := scanNotice(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Notice{}, fmt.Errorf("notice not found: %w", err)
	}
	return entity, err
}

// Save persists a Notice to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Notice) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO notice (id, status, title, content, created_by, pinned, pinned_at, created_at, published_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   status=excluded.status, title=excluded.title, content=excluded.content,
		   pinned=excluded.pinned, pinned_at=excluded.pinned_at, published_at=excluded.published_at`,
		entity.ID, entity.Status, entity.Title, entity.Content, entity.CreatedBy,
		boolToInt(entity.Pinned), formatTime(entity.PinnedAt),
		entity.CreatedAt.Format(time.RFC3339), formatTime(entity.PublishedAt),
	)
	return err
}

// Delete removes a Notice from the database.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM notice WHERE id = ?", id)
	return err
}

// List retrieves all Notices, pinned first, then newest first.
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Notice, error) {
	return s.list(ctx, "SELECT "+noticeColumns+" FROM notice ORDER BY pinned DESC, created_at DESC")
}

// ListPublished retrieves published Notices, pinned first, then newest first.
func (s *SQLiteStore) ListPublished(ctx context.Context) ([]domain.Notice, error) {
	return s.list(ctx, "SELECT "+noticeColumns+" FROM notice WHERE status = ? ORDER BY pinned DESC, published_at DESC", domain.StatusPublished)
}

func (s *SQLiteStore) list(ctx context.Context, query string, args ...any) ([]domain.Notice, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Notice
	for rows.Next() {
		entity, err := scanNotice(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

func scanNotice(scan func(...any) error) (domain.Notice, error) {
	var entity domain.Notice
	var pinned int
	var pinnedStr, createdStr, publishedStr sql.NullString
	err := scan(&entity.ID, &entity.Status, &entity.Title, &entity.Content, &entity.CreatedBy,
		&pinned, &pinnedStr, &createdStr, &publishedStr)
	if err != nil {
		return domain.Notice{}, err
	}
	entity.Pinned = pinned != 0
	entity.PinnedAt = parseTime(pinnedStr.String)
	entity.CreatedAt = parseTime(createdStr.String)
	entity.PublishedAt = parseTime(publishedStr.String)
	return entity, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, _ := time.Parse(time.RFC3339, s)
	return t
}
