package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"fitdesk/internal/adapters/email"
	"fitdesk/internal/domain/customer"
	"fitdesk/internal/domain/service"
	"fitdesk/internal/domain/session"
)

// SessionStoreForBooking defines the store interface needed by the session orchestrators.
type SessionStoreForBooking interface {
	GetByID(ctx context.Context, id string) (session.Session, error)
	Save(ctx context.Context, s session.Session) error
	Delete(ctx context.Context, id string) error
}

// ServiceStoreForBooking defines the service store interface needed by BookSession.
type ServiceStoreForBooking interface {
	GetByID(ctx context.Context, id string) (service.Service, error)
}

// CustomerStoreForBooking defines the customer store interface needed by the session orchestrators.
type CustomerStoreForBooking interface {
	GetByID(ctx context.Context, id string) (customer.Customer, error)
}

// BookSessionInput carries input for the booking orchestrator.
type BookSessionInput struct {
	Title      string
	Start      time.Time
	End        time.Time // zero means derive from the service duration
	Type       string
	CustomerID string
	EmployeeID string
	ServiceID  string
	TotalPrice int // cents; -1 means derive from the service price
}

// BookSessionDeps holds dependencies for BookSession.
type BookSessionDeps struct {
	SessionStore  SessionStoreForBooking
	ServiceStore  ServiceStoreForBooking
	CustomerStore CustomerStoreForBooking
	EmailSender   email.Sender // optional: nil skips the confirmation email
	GenerateID    func() string
	Now           func() time.Time
}

var ErrEndWithoutService = errors.New("session needs an end time or a service to derive it from")

// ExecuteBookSession creates a session, deriving end time and price from the
// service when not given, and sends a booking confirmation to the customer.
// PRE: Start is set; End or ServiceID is set
// POST: Session persisted with status new; confirmation email sent best-effort
func ExecuteBookSession(ctx context.Context, input BookSessionInput, deps BookSessionDeps) (session.Session, error) {
	s := session.Session{
		ID:         deps.GenerateID(),
		Title:      input.Title,
		Start:      input.Start,
		End:        input.End,
		Status:     session.StatusNew,
		Type:       input.Type,
		CustomerID: input.CustomerID,
		EmployeeID: input.EmployeeID,
		ServiceID:  input.ServiceID,
		TotalPrice: input.TotalPrice,
		CreatedAt:  deps.Now(),
	}

	if input.ServiceID != "" {
		svc, err := deps.ServiceStore.GetByID(ctx, input.ServiceID)
		if err != nil {
			return session.Session{}, err
		}
		if s.End.IsZero() {
			s.End = s.Start.Add(time.Duration(svc.DurationMinutes) * time.Minute)
		}
		if s.TotalPrice < 0 {
			s.TotalPrice = svc.Price
		}
		if s.Title == "" {
			s.Title = svc.Name
		}
		if s.Type == "" {
			s.Type = svc.Type
		}
	}
	if s.End.IsZero() {
		return session.Session{}, ErrEndWithoutService
	}
	if s.TotalPrice < 0 {
		s.TotalPrice = 0
	}

	if err := s.Validate(); err != nil {
		return session.Session{}, err
	}

	if err := deps.SessionStore.Save(ctx, s); err != nil {
		return session.Session{}, err
	}

	slog.Info("session_booked", "session_id", s.ID, "start", s.Start, "customer_id", s.CustomerID)

	sendBookingConfirmation(ctx, deps, s)
	return s, nil
}

// sendBookingConfirmation emails the customer. Failures are logged, not returned:
// the booking already succeeded.
func sendBookingConfirmation(ctx context.Context, deps BookSessionDeps, s session.Session) {
	if deps.EmailSender == nil || s.CustomerID == "" || deps.CustomerStore == nil {
		return
	}
	c, err := deps.CustomerStore.GetByID(ctx, s.CustomerID)
	if err != nil || c.Email == "" {
		return
	}
	req := email.BookingConfirmation(c.Email, c.Name, s.Title, s.Start, s.End)
	if _, err := deps.EmailSender.Send(ctx, req); err != nil {
		slog.Error("booking_confirmation_failed", "session_id", s.ID, "error", err)
	}
}
