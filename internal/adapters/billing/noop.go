package billing

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// NoopCharger is a no-op payment provider for development and testing.
// It logs charges but does not move money.
type NoopCharger struct{}

// NewNoopCharger creates a new NoopCharger.
func NewNoopCharger() *NoopCharger {
	return &NoopCharger{}
}

// Charge logs the charge but does not capture it.
// PRE: req is a valid ChargeRequest
// POST: Returns a noop result without an actual charge
func (c *NoopCharger) Charge(_ context.Context, req ChargeRequest) (ChargeResult, error) {
	slog.Info("noop_charge", "amount_cents", req.AmountCents, "currency", req.Currency, "customer_id", req.CustomerID)
	return ChargeResult{
		ProviderRef: fmt.Sprintf("noop-%d", time.Now().UnixNano()),
		ChargedAt:   time.Now(),
	}, nil
}

// Refund logs the refund but does not process it.
// PRE: providerRef is non-empty
// POST: Returns nil without an actual refund
func (c *NoopCharger) Refund(_ context.Context, providerRef string) error {
	slog.Info("noop_refund", "provider_ref", providerRef)
	return nil
}
