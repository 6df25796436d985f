package employee

import (
	"errors"
	"strings"
)

// Max length constants for user-editable fields.
const (
	MaxNameLength = 100
)

// Business rule constants
const (
	RoleTrainer   = "trainer"
	RoleTherapist = "therapist"
	RoleReception = "reception"

	StatusActive   = "active"
	StatusArchived = "archived"
)

// ValidRoles contains all valid role values.
var ValidRoles = []string{RoleTrainer, RoleTherapist, RoleReception}

// Domain errors
var (
	ErrAlreadyArchived = errors.New("employee is already archived")
)

// Employee holds state for one staff member of the practice.
// HourlyRate is in cents; payroll calculation itself lives outside this app,
// the rate is recorded for reporting only.
type Employee struct {
	ID         string
	Name       string
	Email      string
	Phone      string
	Role       string
	HourlyRate int
	Status     string
}

// Validate checks if the Employee has valid data.
// PRE: Employee struct is initialized
// POST: Returns error if validation fails, nil otherwise
func (e *Employee) Validate() error {
	if strings.TrimSpace(e.Name) == "" {
		return errors.New("employee name cannot be empty")
	}
	if len(e.Name) > MaxNameLength {
		return errors.New("employee name cannot exceed 100 characters")
	}
	if !strings.Contains(e.Email, "@") {
		return errors.New("employee email must be valid")
	}
	if !isValidRole(e.Role) {
		return errors.New("role must be 'trainer', 'therapist', or 'reception'")
	}
	if e.HourlyRate < 0 {
		return errors.New("hourly rate cannot be negative")
	}
	if e.Status != StatusActive && e.Status != StatusArchived {
		return errors.New("status must be 'active' or 'archived'")
	}
	return nil
}

// IsActive returns true if the employee currently works at the practice.
func (e *Employee) IsActive() bool {
	return e.Status == StatusActive
}

// Archive sets the employee status to archived.
// PRE: Employee is not already archived
// POST: Status is set to archived
func (e *Employee) Archive() error {
	if e.Status == StatusArchived {
		return ErrAlreadyArchived
	}
	e.Status = StatusArchived
	return nil
}

func isValidRole(role string) bool {
	for _, r := range ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}
