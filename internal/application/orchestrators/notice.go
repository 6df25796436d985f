package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"fitdesk/internal/adapters/email"
	"fitdesk/internal/domain/customer"
	"fitdesk/internal/domain/notice"
)

// NoticeStoreForOrchestrator defines the store interface needed by notice orchestrators.
type NoticeStoreForOrchestrator interface {
	GetByID(ctx context.Context, id string) (notice.Notice, error)
	Save(ctx context.Context, n notice.Notice) error
}

// CreateNoticeInput carries input for the create notice orchestrator.
type CreateNoticeInput struct {
	Title     string
	Content   string
	Publish   bool   // publish immediately instead of leaving a draft
	CreatedBy string // AccountID of creator
}

// CreateNoticeDeps holds dependencies for CreateNotice.
type CreateNoticeDeps struct {
	NoticeStore NoticeStoreForOrchestrator
	GenerateID  func() string
	Now         func() time.Time
}

// ExecuteCreateNotice creates a dashboard notice, optionally publishing it at once.
// PRE: Title and Content are non-empty; CreatedBy is non-empty
// POST: Notice persisted in draft or published status
func ExecuteCreateNotice(ctx context.Context, input CreateNoticeInput, deps CreateNoticeDeps) (notice.Notice, error) {
	if input.CreatedBy == "" {
		return notice.Notice{}, errors.New("creator account ID is required")
	}

	now := deps.Now()
	n := notice.Notice{
		ID:        deps.GenerateID(),
		Status:    notice.StatusDraft,
		Title:     input.Title,
		Content:   input.Content,
		CreatedBy: input.CreatedBy,
		CreatedAt: now,
	}
	if input.Publish {
		if err := n.Publish(now); err != nil {
			return notice.Notice{}, err
		}
	}
	if err := n.Validate(); err != nil {
		return notice.Notice{}, err
	}
	if err := deps.NoticeStore.Save(ctx, n); err != nil {
		return notice.Notice{}, err
	}

	slog.Info("notice_created", "notice_id", n.ID, "status", n.Status)
	return n, nil
}

// PublishNoticeDeps holds dependencies for PublishNotice.
type PublishNoticeDeps struct {
	NoticeStore NoticeStoreForOrchestrator
	CustomerStore interface {
		Search(ctx context.Context, query, status string, limit, offset int) ([]customer.Customer, int, error)
	} // optional: nil skips the announcement emails
	EmailSender email.Sender // optional: nil skips the announcement emails
	Now         func() time.Time
}

// ExecutePublishNotice moves a draft notice to published and notifies active
// customers by email. Notification is best effort: a send failure is logged
// and does not roll back the publish.
// PRE: NoticeID identifies a draft notice
// POST: Notice status is published with PublishedAt set
func ExecutePublishNotice(ctx context.Context, noticeID string, deps PublishNoticeDeps) (notice.Notice, error) {
	n, err := deps.NoticeStore.GetByID(ctx, noticeID)
	if err != nil {
		return notice.Notice{}, err
	}
	if err := n.Publish(deps.Now()); err != nil {
		return notice.Notice{}, err
	}
	if err := deps.NoticeStore.Save(ctx, n); err != nil {
		return notice.Notice{}, err
	}
	slog.Info("notice_published", "notice_id", n.ID)

	if deps.EmailSender != nil && deps.CustomerStore != nil {
		notifyNoticePublished(ctx, n, deps)
	}
	return n, nil
}

// notifyNoticePublished batch-emails every active customer with an address.
func notifyNoticePublished(ctx context.Context, n notice.Notice, deps PublishNoticeDeps) {
	const pageSize = 100
	for offset := 0; ; offset += pageSize {
		customers, total, err := deps.CustomerStore.Search(ctx, "", customer.StatusActive, pageSize, offset)
		if err != nil {
			slog.Warn("notice_announcement_lookup_failed", "notice_id", n.ID, "error", err)
			return
		}
		var reqs []email.SendRequest
		for _, c := range customers {
			if c.Email == "" {
				continue
			}
			reqs = append(reqs, email.NoticeAnnouncement(c.Email, n.Title, n.Content))
		}
		if len(reqs) > 0 {
			if _, err := deps.EmailSender.SendBatch(ctx, reqs); err != nil {
				slog.Warn("notice_announcement_send_failed", "notice_id", n.ID, "error", err)
				return
			}
		}
		if offset+pageSize >= total || len(customers) == 0 {
			return
		}
	}
}

// PinNoticeDeps holds dependencies for pin/unpin.
type PinNoticeDeps struct {
	NoticeStore NoticeStoreForOrchestrator
	Now         func() time.Time
}

// ExecutePinNotice toggles the pinned flag on a notice.
// PRE: NoticeID identifies an existing notice
// POST: Pinned state matches pin
func ExecutePinNotice(ctx context.Context, noticeID string, pin bool, deps PinNoticeDeps) (notice.Notice, error) {
	n, err := deps.NoticeStore.GetByID(ctx, noticeID)
	if err != nil {
		return notice.Notice{}, err
	}
	if pin {
		err = n.Pin(deps.Now())
	} else {
		err = n.Unpin()
	}
	if err != nil {
		return notice.Notice{}, err
	}
	if err := deps.NoticeStore.Save(ctx, n); err != nil {
		return notice.Notice{}, err
	}
	return n, nil
}
