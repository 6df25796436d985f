package projections

import (
	"context"

	"fitdesk/internal/domain/customer"
	"fitdesk/internal/domain/employee"
	"fitdesk/internal/domain/payment"
	"fitdesk/internal/domain/service"
	"fitdesk/internal/domain/session"
)

// DetailSessionStore defines the session store interface needed by the detail projection.
type DetailSessionStore interface {
	GetByID(ctx context.Context, id string) (session.Session, error)
}

// DetailCustomerStore defines the customer store interface needed by the detail projection.
type DetailCustomerStore interface {
	GetByID(ctx context.Context, id string) (customer.Customer, error)
}

// DetailEmployeeStore defines the employee store interface needed by the detail projection.
type DetailEmployeeStore interface {
	GetByID(ctx context.Context, id string) (employee.Employee, error)
}

// DetailServiceStore defines the service store interface needed by the detail projection.
type DetailServiceStore interface {
	GetByID(ctx context.Context, id string) (service.Service, error)
}

// DetailPaymentStore defines the payment store interface needed by the detail projection.
type DetailPaymentStore interface {
	ListBySessionID(ctx context.Context, sessionID string) ([]payment.Payment, error)
}

// GetSessionDetailQuery carries input for the session detail projection.
type GetSessionDetailQuery struct {
	SessionID string
}

// GetSessionDetailDeps holds dependencies for the session detail projection.
type GetSessionDetailDeps struct {
	SessionStore  DetailSessionStore
	CustomerStore DetailCustomerStore
	EmployeeStore DetailEmployeeStore
	ServiceStore  DetailServiceStore
	PaymentStore  DetailPaymentStore
}

// GetSessionDetailResult carries everything the detail card shows for one session.
type GetSessionDetailResult struct {
	Session      session.Session
	CustomerName string
	EmployeeName string
	ServiceName  string
	Payments     []payment.Payment
	AmountPaid   int // cents, sum of paid payments
	Outstanding  int // cents, TotalPrice minus AmountPaid, floored at 0
}

// QueryGetSessionDetail resolves a session with its linked records for the detail card.
// PRE: SessionID is non-empty
// POST: Returns the session; missing linked records leave their names empty
func QueryGetSessionDetail(ctx context.Context, query GetSessionDetailQuery, deps GetSessionDetailDeps) (GetSessionDetailResult, error) {
	s, err := deps.SessionStore.GetByID(ctx, query.SessionID)
	if err != nil {
		return GetSessionDetailResult{}, err
	}

	result := GetSessionDetailResult{Session: s}

	if s.CustomerID != "" && deps.CustomerStore != nil {
		if c, err := deps.CustomerStore.GetByID(ctx, s.CustomerID); err == nil {
			result.CustomerName = c.Name
		}
	}
	if s.EmployeeID != "" && deps.EmployeeStore != nil {
		if e, err := deps.EmployeeStore.GetByID(ctx, s.EmployeeID); err == nil {
			result.EmployeeName = e.Name
		}
	}
	if s.ServiceID != "" && deps.ServiceStore != nil {
		if svc, err := deps.ServiceStore.GetByID(ctx, s.ServiceID); err == nil {
			result.ServiceName = svc.Name
		}
	}

	if deps.PaymentStore != nil {
		payments, err := deps.PaymentStore.ListBySessionID(ctx, s.ID)
		if err == nil {
			result.Payments = payments
			for _, p := range payments {
				if p.Status == payment.StatusPaid {
					result.AmountPaid += p.Amount
				}
			}
		}
	}

	result.Outstanding = s.TotalPrice - result.AmountPaid
	if result.Outstanding < 0 {
		result.Outstanding = 0
	}

	return result, nil
}
