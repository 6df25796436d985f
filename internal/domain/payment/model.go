package payment

import (
	"errors"
	"time"
)

// Payment method constants.
const (
	MethodCash = "cash"
	MethodCard = "card"
)

// Payment status constants.
const (
	StatusPending  = "pending"
	StatusPaid     = "paid"
	StatusRefunded = "refunded"
)

// Domain errors
var (
	ErrAlreadyPaid     = errors.New("payment is already paid")
	ErrNotPaid         = errors.New("only a paid payment can be refunded")
	ErrInvalidMethod   = errors.New("payment method must be 'cash' or 'card'")
	ErrInvalidStatus   = errors.New("payment status must be 'pending', 'paid', or 'refunded'")
	ErrNonPositiveAmnt = errors.New("payment amount must be positive")
	ErrEmptySessionID  = errors.New("payment session ID cannot be empty")
)

// Payment records money received for one session. ProviderRef holds the
// external charge reference for card payments; empty for cash.
type Payment struct {
	ID          string
	SessionID   string
	CustomerID  string
	Amount      int // cents
	Method      string
	Status      string
	ProviderRef string
	CreatedAt   time.Time
	PaidAt      time.Time // zero until Status is paid
}

// Validate checks if the Payment has valid data.
// PRE: Payment struct is initialized
// POST: Returns error if validation fails, nil otherwise
func (p *Payment) Validate() error {
	if p.SessionID == "" {
		return ErrEmptySessionID
	}
	if p.Amount <= 0 {
		return ErrNonPositiveAmnt
	}
	if p.Method != MethodCash && p.Method != MethodCard {
		return ErrInvalidMethod
	}
	if p.Status != StatusPending && p.Status != StatusPaid && p.Status != StatusRefunded {
		return ErrInvalidStatus
	}
	return nil
}

// MarkPaid transitions the payment to paid at the given instant.
// PRE: Payment is pending
// POST: Status is paid, PaidAt is set
func (p *Payment) MarkPaid(at time.Time) error {
	if p.Status == StatusPaid {
		return ErrAlreadyPaid
	}
	p.Status = StatusPaid
	p.PaidAt = at
	return nil
}

// Refund transitions a paid payment to refunded.
// PRE: Payment is paid
// POST: Status is refunded
func (p *Payment) Refund() error {
	if p.Status != StatusPaid {
		return ErrNotPaid
	}
	p.Status = StatusRefunded
	return nil
}
