package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"fitdesk/internal/adapters/billing"
	"fitdesk/internal/adapters/email"
	"fitdesk/internal/domain/payment"
)

// PaymentStoreForRecording defines the payment store interface needed by the payment orchestrators.
type PaymentStoreForRecording interface {
	GetByID(ctx context.Context, id string) (payment.Payment, error)
	Save(ctx context.Context, p payment.Payment) error
}

// RecordPaymentInput carries input for the payment orchestrator.
type RecordPaymentInput struct {
	SessionID  string
	CustomerID string
	Amount     int // cents
	Method     string
	Currency   string // used for card charges; defaults to "nzd"
}

// RecordPaymentDeps holds dependencies for RecordPayment.
type RecordPaymentDeps struct {
	PaymentStore  PaymentStoreForRecording
	CustomerStore CustomerStoreForBooking
	Charger       billing.Charger // captures card payments; cash skips it
	EmailSender   email.Sender    // optional: nil skips the receipt email
	GenerateID    func() string
	Now           func() time.Time
}

// ExecuteRecordPayment records a payment against a session. Card payments are
// captured through the payment provider before being marked paid.
// PRE: Amount > 0; Method is cash or card
// POST: Payment persisted with status paid and, for card, the provider reference
func ExecuteRecordPayment(ctx context.Context, input RecordPaymentInput, deps RecordPaymentDeps) (payment.Payment, error) {
	now := deps.Now()
	p := payment.Payment{
		ID:         deps.GenerateID(),
		SessionID:  input.SessionID,
		CustomerID: input.CustomerID,
		Amount:     input.Amount,
		Method:     input.Method,
		Status:     payment.StatusPending,
		CreatedAt:  now,
	}
	if err := p.Validate(); err != nil {
		return payment.Payment{}, err
	}

	if p.Method == payment.MethodCard && deps.Charger != nil {
		currency := input.Currency
		if currency == "" {
			currency = "nzd"
		}
		result, err := deps.Charger.Charge(ctx, billing.ChargeRequest{
			AmountCents: int64(p.Amount),
			Currency:    currency,
			CustomerID:  p.CustomerID,
			Description: fmt.Sprintf("session %s", p.SessionID),
		})
		if err != nil {
			return payment.Payment{}, err
		}
		p.ProviderRef = result.ProviderRef
	}

	if err := p.MarkPaid(now); err != nil {
		return payment.Payment{}, err
	}
	if err := deps.PaymentStore.Save(ctx, p); err != nil {
		return payment.Payment{}, err
	}

	slog.Info("payment_recorded", "payment_id", p.ID, "session_id", p.SessionID, "amount_cents", p.Amount, "method", p.Method)

	sendReceipt(ctx, deps, p)
	return p, nil
}

// sendReceipt emails the customer. Failures are logged, not returned.
func sendReceipt(ctx context.Context, deps RecordPaymentDeps, p payment.Payment) {
	if deps.EmailSender == nil || p.CustomerID == "" || deps.CustomerStore == nil {
		return
	}
	c, err := deps.CustomerStore.GetByID(ctx, p.CustomerID)
	if err != nil || c.Email == "" {
		return
	}
	req := email.PaymentReceipt(c.Email, c.Name, int64(p.Amount), p.Method, p.PaidAt)
	if _, err := deps.EmailSender.Send(ctx, req); err != nil {
		slog.Error("receipt_email_failed", "payment_id", p.ID, "error", err)
	}
}

// RefundPaymentInput carries input for the refund orchestrator.
type RefundPaymentInput struct {
	PaymentID string
}

// RefundPaymentDeps holds dependencies for RefundPayment.
type RefundPaymentDeps struct {
	PaymentStore PaymentStoreForRecording
	Charger      billing.Charger // optional: nil skips the provider refund
}

// ExecuteRefundPayment refunds a paid payment, via the provider for card payments.
// PRE: PaymentID identifies a paid payment
// POST: Payment status is refunded
func ExecuteRefundPayment(ctx context.Context, input RefundPaymentInput, deps RefundPaymentDeps) (payment.Payment, error) {
	p, err := deps.PaymentStore.GetByID(ctx, input.PaymentID)
	if err != nil {
		return payment.Payment{}, err
	}

	if p.Method == payment.MethodCard && p.ProviderRef != "" && deps.Charger != nil {
		if err := deps.Charger.Refund(ctx, p.ProviderRef); err != nil {
			return payment.Payment{}, err
		}
	}

	if err := p.Refund(); err != nil {
		return payment.Payment{}, err
	}
	if err := deps.PaymentStore.Save(ctx, p); err != nil {
		return payment.Payment{}, err
	}

	slog.Info("payment_refunded", "payment_id", p.ID, "amount_cents", p.Amount)
	return p, nil
}
