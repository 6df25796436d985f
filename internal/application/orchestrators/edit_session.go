package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"fitdesk/internal/domain/session"
)

// EditSessionInput carries the replacement values for a session. Zero values
// leave the stored field unchanged, except Status which is always applied
// when non-empty.
type EditSessionInput struct {
	SessionID  string
	Title      string
	Start      time.Time
	End        time.Time
	Status     string
	Type       string
	CustomerID string
	EmployeeID string
	ServiceID  string
	TotalPrice int // -1 leaves the stored price unchanged
}

// EditSessionDeps holds dependencies for EditSession.
type EditSessionDeps struct {
	SessionStore SessionStoreForBooking
}

// ExecuteEditSession applies changes to an existing session, including reschedules.
// PRE: SessionID identifies an existing session
// POST: Updated session persisted after revalidation
func ExecuteEditSession(ctx context.Context, input EditSessionInput, deps EditSessionDeps) (session.Session, error) {
	s, err := deps.SessionStore.GetByID(ctx, input.SessionID)
	if err != nil {
		return session.Session{}, err
	}

	if input.Title != "" {
		s.Title = input.Title
	}
	if !input.Start.IsZero() {
		s.Start = input.Start
	}
	if !input.End.IsZero() {
		s.End = input.End
	}
	if input.Status != "" {
		s.Status = input.Status
	}
	if input.Type != "" {
		s.Type = input.Type
	}
	if input.CustomerID != "" {
		s.CustomerID = input.CustomerID
	}
	if input.EmployeeID != "" {
		s.EmployeeID = input.EmployeeID
	}
	if input.ServiceID != "" {
		s.ServiceID = input.ServiceID
	}
	if input.TotalPrice >= 0 {
		s.TotalPrice = input.TotalPrice
	}

	if err := s.Validate(); err != nil {
		return session.Session{}, err
	}
	if err := deps.SessionStore.Save(ctx, s); err != nil {
		return session.Session{}, err
	}

	slog.Info("session_updated", "session_id", s.ID, "status", s.Status)
	return s, nil
}
