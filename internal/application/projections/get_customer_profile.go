package projections

import (
	"context"
	"sort"

	"fitdesk/internal/domain/customer"
	"fitdesk/internal/domain/payment"
	"fitdesk/internal/domain/session"
)

// ProfileSessionStore defines the session store interface needed by the profile projection.
type ProfileSessionStore interface {
	ListByCustomerID(ctx context.Context, customerID string) ([]session.Session, error)
}

// ProfilePaymentStore defines the payment store interface needed by the profile projection.
type ProfilePaymentStore interface {
	ListBySessionID(ctx context.Context, sessionID string) ([]payment.Payment, error)
}

// GetCustomerProfileQuery carries input for the customer profile projection.
type GetCustomerProfileQuery struct {
	CustomerID string
}

// GetCustomerProfileDeps holds dependencies for the customer profile projection.
type GetCustomerProfileDeps struct {
	CustomerStore DetailCustomerStore
	SessionStore  ProfileSessionStore
	PaymentStore  ProfilePaymentStore
}

// GetCustomerProfileResult carries a customer with their session and payment history.
type GetCustomerProfileResult struct {
	Customer     customer.Customer
	Sessions     []session.Session // newest first
	SessionCount int
	DoneCount    int
	TotalPaid    int // cents across all paid payments
}

// QueryGetCustomerProfile loads a customer with their booking history and totals.
// PRE: CustomerID is non-empty
// POST: Sessions are ordered newest first
func QueryGetCustomerProfile(ctx context.Context, query GetCustomerProfileQuery, deps GetCustomerProfileDeps) (GetCustomerProfileResult, error) {
	c, err := deps.CustomerStore.GetByID(ctx, query.CustomerID)
	if err != nil {
		return GetCustomerProfileResult{}, err
	}

	sessions, err := deps.SessionStore.ListByCustomerID(ctx, query.CustomerID)
	if err != nil {
		return GetCustomerProfileResult{}, err
	}
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].Start.After(sessions[j].Start)
	})

	result := GetCustomerProfileResult{
		Customer:     c,
		Sessions:     sessions,
		SessionCount: len(sessions),
	}

	for _, s := range sessions {
		if s.IsDone() {
			result.DoneCount++
		}
		if deps.PaymentStore == nil {
			continue
		}
		payments, err := deps.PaymentStore.ListBySessionID(ctx, s.ID)
		if err != nil {
			continue
		}
		for _, p := range payments {
			if p.Status == payment.StatusPaid {
				result.TotalPaid += p.Amount
			}
		}
	}

	return result, nil
}
