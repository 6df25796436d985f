package orchestrators

import (
	"context"
	"errors"
	"log/slog"

	"fitdesk/internal/domain/customer"
)

// CustomerStoreForRegistration defines the store interface needed by RegisterCustomer.
type CustomerStoreForRegistration interface {
	GetByEmail(ctx context.Context, email string) (customer.Customer, error)
	Save(ctx context.Context, c customer.Customer) error
}

// RegisterCustomerInput carries input for the registration orchestrator.
type RegisterCustomerInput struct {
	Name  string
	Email string
	Phone string
	Notes string
}

// RegisterCustomerDeps holds dependencies for RegisterCustomer.
type RegisterCustomerDeps struct {
	CustomerStore CustomerStoreForRegistration
	GenerateID    func() string
}

var ErrCustomerEmailTaken = errors.New("a customer with this email already exists")

// ExecuteRegisterCustomer creates an active customer record.
// PRE: Email is unique among customers
// POST: Customer persisted with status active
func ExecuteRegisterCustomer(ctx context.Context, input RegisterCustomerInput, deps RegisterCustomerDeps) (customer.Customer, error) {
	if input.Email != "" {
		if _, err := deps.CustomerStore.GetByEmail(ctx, input.Email); err == nil {
			return customer.Customer{}, ErrCustomerEmailTaken
		}
	}

	c := customer.Customer{
		ID:     deps.GenerateID(),
		Name:   input.Name,
		Email:  input.Email,
		Phone:  input.Phone,
		Notes:  input.Notes,
		Status: customer.StatusActive,
	}
	if err := c.Validate(); err != nil {
		return customer.Customer{}, err
	}
	if err := deps.CustomerStore.Save(ctx, c); err != nil {
		return customer.Customer{}, err
	}

	slog.Info("customer_registered", "customer_id", c.ID)
	return c, nil
}
