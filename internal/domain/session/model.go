package session

import (
	"errors"
	"time"
)

// Session status constants.
const (
	StatusNew    = "new"    // booked, not yet delivered
	StatusDone   = "done"   // delivered and marked complete
	StatusCancel = "cancel" // cancelled before delivery
)

// Session type constants. Type affects visual styling only.
const (
	TypeGym     = "gym"
	TypeTherapy = "therapy"
)

// ValidStatuses contains all valid status values.
var ValidStatuses = []string{StatusNew, StatusDone, StatusCancel}

// Max length constants.
const (
	MaxTitleLength = 200
)

// Domain errors
var (
	ErrEmptyTitle    = errors.New("session title cannot be empty")
	ErrTitleTooLong  = errors.New("session title cannot exceed 200 characters")
	ErrMissingStart  = errors.New("session start time is required")
	ErrEndNotAfter   = errors.New("session end time must be after start time")
	ErrInvalidStatus = errors.New("session status must be 'new', 'done' or 'cancel'")
	ErrInvalidType   = errors.New("session type must be 'gym' or 'therapy'")
	ErrNegativePrice = errors.New("session total price cannot be negative")
)

// Session represents one scheduled booking between a customer and an employee.
// The calendar treats [Start, End) as a half-open interval: a session that ends
// at the instant another starts does not overlap it.
// PRE: ID is unique among sessions supplied to one render.
// INVARIANT: Start < End.
type Session struct {
	ID         string
	Title      string
	Start      time.Time
	End        time.Time
	Status     string // "new", "done" or "cancel"
	Type       string // "gym" or "therapy"
	CustomerID string
	EmployeeID string
	ServiceID  string
	TotalPrice int // cents
	CreatedAt  time.Time
}

// Validate checks the session's invariants.
// PRE: none
// POST: returns nil if valid, error describing the first violation otherwise
func (s *Session) Validate() error {
	if s.Title == "" {
		return ErrEmptyTitle
	}
	if len(s.Title) > MaxTitleLength {
		return ErrTitleTooLong
	}
	if s.Start.IsZero() {
		return ErrMissingStart
	}
	if !s.End.After(s.Start) {
		return ErrEndNotAfter
	}
	if !isValidStatus(s.Status) {
		return ErrInvalidStatus
	}
	if s.Type != TypeGym && s.Type != TypeTherapy {
		return ErrInvalidType
	}
	if s.TotalPrice < 0 {
		return ErrNegativePrice
	}
	return nil
}

// Overlaps reports whether two sessions' intervals intersect.
// Intervals are half-open: touching endpoints do not overlap.
// PRE: both sessions satisfy Start < End
// POST: returns true iff the intervals share at least one instant
func (s *Session) Overlaps(other *Session) bool {
	return !(s.End.Compare(other.Start) <= 0 || s.Start.Compare(other.End) >= 0)
}

// OnDay reports whether the session belongs to the given calendar day.
// Day membership is decided by Start alone; a session crossing midnight
// belongs only to the day it starts on.
// PRE: none
// POST: returns true iff Start falls on the same local calendar day as date
func (s *Session) OnDay(date time.Time) bool {
	y1, m1, d1 := s.Start.Date()
	y2, m2, d2 := date.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// Duration returns the session length.
func (s *Session) Duration() time.Duration {
	return s.End.Sub(s.Start)
}

// MarkDone transitions the session to done.
// PRE: none
// POST: Status is "done"
func (s *Session) MarkDone() {
	s.Status = StatusDone
}

// IsDone reports whether the session has been delivered.
func (s *Session) IsDone() bool {
	return s.Status == StatusDone
}

func isValidStatus(status string) bool {
	for _, v := range ValidStatuses {
		if v == status {
			return true
		}
	}
	return false
}
