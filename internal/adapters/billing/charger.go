package billing

import (
	"context"
	"time"
)

// ChargeRequest contains the data needed to capture a card payment.
type ChargeRequest struct {
	AmountCents int64  // Amount in cents
	Currency    string // ISO currency code, e.g. "nzd"
	CustomerID  string // Internal customer ID, attached as metadata
	Description string
}

// ChargeResult contains the response from the payment provider.
type ChargeResult struct {
	ProviderRef string    // Provider's payment reference for reconciliation
	ChargedAt   time.Time // When the charge was accepted
}

// Charger is the interface for capturing card payments via an external provider.
type Charger interface {
	Charge(ctx context.Context, req ChargeRequest) (ChargeResult, error)
	Refund(ctx context.Context, providerRef string) error
}
