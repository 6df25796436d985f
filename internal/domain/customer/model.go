package customer

import (
	"errors"
	"strings"
)

// Max length constants for user-editable fields.
const (
	MaxNameLength  = 100
	MaxNotesLength = 2000
)

// Business rule constants
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
	StatusArchived = "archived"
)

// Domain errors
var (
	ErrAlreadyArchived = errors.New("customer is already archived")
	ErrNotArchived     = errors.New("customer is not archived")
)

// Customer holds state for one client of the practice.
type Customer struct {
	ID     string
	Name   string
	Email  string
	Phone  string
	Notes  string
	Status string
}

// Validate checks if the Customer has valid data.
// PRE: Customer struct is initialized
// POST: Returns error if validation fails, nil otherwise
// INVARIANT: Email must contain '@', Name must not be empty
func (c *Customer) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return errors.New("customer name cannot be empty")
	}
	if len(c.Name) > MaxNameLength {
		return errors.New("customer name cannot exceed 100 characters")
	}
	if !strings.Contains(c.Email, "@") {
		return errors.New("customer email must be valid")
	}
	if len(c.Notes) > MaxNotesLength {
		return errors.New("customer notes cannot exceed 2000 characters")
	}
	if c.Status != StatusActive && c.Status != StatusInactive && c.Status != StatusArchived {
		return errors.New("status must be 'active', 'inactive', or 'archived'")
	}
	return nil
}

// IsActive returns true if the customer is currently active.
func (c *Customer) IsActive() bool {
	return c.Status == StatusActive
}

// Archive sets the customer status to archived.
// PRE: Customer is not already archived
// POST: Status is set to archived
func (c *Customer) Archive() error {
	if c.Status == StatusArchived {
		return ErrAlreadyArchived
	}
	c.Status = StatusArchived
	return nil
}

// Restore sets the customer status back to active.
// PRE: Customer is currently archived
// POST: Status is set to active
func (c *Customer) Restore() error {
	if c.Status != StatusArchived {
		return ErrNotArchived
	}
	c.Status = StatusActive
	return nil
}
