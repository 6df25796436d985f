package projections

import (
	"context"
	"time"

	"fitdesk/internal/domain/notice"
	"fitdesk/internal/domain/session"
	"fitdesk/internal/domain/timetable"
)

// DashboardNoticeStore defines the notice store interface needed by the dashboard projection.
type DashboardNoticeStore interface {
	ListPublished(ctx context.Context) ([]notice.Notice, error)
}

// DashboardPaymentStore defines the payment store interface needed by the dashboard projection.
type DashboardPaymentStore interface {
	SumPaidBetween(ctx context.Context, from, to time.Time) (int, error)
}

// GetDashboardDeps holds dependencies for the dashboard projection.
type GetDashboardDeps struct {
	SessionStore CalendarSessionStore
	NoticeStore  DashboardNoticeStore
	PaymentStore DashboardPaymentStore
}

// GetDashboardResult carries the aggregated dashboard data.
type GetDashboardResult struct {
	TodaysSessions []timetable.Placed
	UpcomingCount  int // sessions still ahead of now today
	DoneCount      int // sessions already marked done today
	RevenueMonth   int // cents paid since the first of the month
	Notices        []notice.Notice
}

// QueryGetDashboard aggregates today's sessions, this month's revenue and
// published notices for the landing page.
func QueryGetDashboard(ctx context.Context, deps GetDashboardDeps, now time.Time) (GetDashboardResult, error) {
	result := GetDashboardResult{}

	today := timetable.Today(now)
	sessions, err := deps.SessionStore.ListByRange(ctx, today, today.AddDate(0, 0, 1))
	if err != nil {
		return GetDashboardResult{}, err
	}
	result.TodaysSessions = timetable.AssignColumns(sessions)
	for _, s := range sessions {
		switch {
		case s.Status == session.StatusDone:
			result.DoneCount++
		case s.Status == session.StatusNew && s.Start.After(now):
			result.UpcomingCount++
		}
	}

	if deps.PaymentStore != nil {
		monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		if sum, err := deps.PaymentStore.SumPaidBetween(ctx, monthStart, now); err == nil {
			result.RevenueMonth = sum
		}
	}

	if deps.NoticeStore != nil {
		if notices, err := deps.NoticeStore.ListPublished(ctx); err == nil {
			result.Notices = notices
		}
	}

	return result, nil
}
