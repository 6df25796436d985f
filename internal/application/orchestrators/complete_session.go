package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"fitdesk/internal/domain/session"
)

// CompleteSessionInput carries input for the complete orchestrator.
type CompleteSessionInput struct {
	SessionID string
}

// CompleteSessionDeps holds dependencies for CompleteSession.
type CompleteSessionDeps struct {
	SessionStore SessionStoreForBooking
	Now          func() time.Time
}

// ExecuteCompleteSession marks a booked session as delivered.
// PRE: SessionID identifies a session with status new
// POST: Session status is done
func ExecuteCompleteSession(ctx context.Context, input CompleteSessionInput, deps CompleteSessionDeps) (session.Session, error) {
	s, err := deps.SessionStore.GetByID(ctx, input.SessionID)
	if err != nil {
		return session.Session{}, err
	}

	s.MarkDone()
	if err := deps.SessionStore.Save(ctx, s); err != nil {
		return session.Session{}, err
	}

	slog.Info("session_completed", "session_id", s.ID, "at", deps.Now())
	return s, nil
}
