package billing

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"github.com/stripe/stripe-go/v76/refund"
)

// StripeCharger captures card payments via the Stripe API.
type StripeCharger struct{}

// NewStripeCharger creates a new StripeCharger with the given API key.
// PRE: apiKey is a valid Stripe secret key
// POST: Returns a ready-to-use charger; the key is set process-wide
func NewStripeCharger(apiKey string) *StripeCharger {
	stripe.Key = apiKey
	return &StripeCharger{}
}

// Charge creates a payment intent for the given amount.
// PRE: req.AmountCents > 0 and req.Currency is a valid ISO code
// POST: Returns the Stripe payment intent ID for reconciliation
func (c *StripeCharger) Charge(ctx context.Context, req ChargeRequest) (ChargeResult, error) {
	params := &stripe.PaymentIntentParams{
		Amount:      stripe.Int64(req.AmountCents),
		Currency:    stripe.String(req.Currency),
		Description: stripe.String(req.Description),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	params.AddMetadata("customer_id", req.CustomerID)

	pi, err := paymentintent.New(params)
	if err != nil {
		slog.Error("stripe_charge_failed", "error", err, "amount_cents", req.AmountCents)
		return ChargeResult{}, fmt.Errorf("stripe charge failed: %w", err)
	}

	slog.Info("stripe_charged", "provider_ref", pi.ID, "amount_cents", req.AmountCents)
	return ChargeResult{
		ProviderRef: pi.ID,
		ChargedAt:   time.Now(),
	}, nil
}

// Refund refunds the payment intent with the given reference.
// PRE: providerRef is a Stripe payment intent ID
// POST: The full amount is refunded
func (c *StripeCharger) Refund(ctx context.Context, providerRef string) error {
	params := &stripe.RefundParams{
		PaymentIntent: stripe.String(providerRef),
	}
	params.Context = ctx

	if _, err := refund.New(params); err != nil {
		slog.Error("stripe_refund_failed", "error", err, "provider_ref", providerRef)
		return fmt.Errorf("stripe refund failed: %w", err)
	}

	slog.Info("stripe_refunded", "provider_ref", providerRef)
	return nil
}
