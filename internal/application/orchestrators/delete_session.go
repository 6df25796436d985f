package orchestrators

import (
	"context"
	"log/slog"

	"fitdesk/internal/adapters/email"
)

// DeleteSessionInput carries input for the delete orchestrator.
type DeleteSessionInput struct {
	SessionID string
}

// DeleteSessionDeps holds dependencies for DeleteSession.
type DeleteSessionDeps struct {
	SessionStore  SessionStoreForBooking
	CustomerStore CustomerStoreForBooking
	EmailSender   email.Sender // optional: nil skips the cancellation email
}

// ExecuteDeleteSession removes a session and notifies the customer.
// PRE: SessionID identifies an existing session
// POST: Session is removed; cancellation email sent best-effort
func ExecuteDeleteSession(ctx context.Context, input DeleteSessionInput, deps DeleteSessionDeps) error {
	s, err := deps.SessionStore.GetByID(ctx, input.SessionID)
	if err != nil {
		return err
	}

	if err := deps.SessionStore.Delete(ctx, s.ID); err != nil {
		return err
	}
	slog.Info("session_deleted", "session_id", s.ID, "start", s.Start)

	if deps.EmailSender != nil && s.CustomerID != "" && deps.CustomerStore != nil {
		if c, err := deps.CustomerStore.GetByID(ctx, s.CustomerID); err == nil && c.Email != "" {
			req := email.BookingCancellation(c.Email, c.Name, s.Title, s.Start)
			if _, err := deps.EmailSender.Send(ctx, req); err != nil {
				slog.Error("cancellation_email_failed", "session_id", s.ID, "error", err)
			}
		}
	}
	return nil
}
