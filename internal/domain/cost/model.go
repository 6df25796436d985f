package cost

import (
	"errors"
	"strings"
	"time"
)

// Cost category constants.
const (
	CategoryRent      = "rent"
	CategoryEquipment = "equipment"
	CategoryUtilities = "utilities"
	CategorySalary    = "salary"
	CategoryOther     = "other"
)

// ValidCategories contains all valid category values.
var ValidCategories = []string{
	CategoryRent, CategoryEquipment, CategoryUtilities, CategorySalary, CategoryOther,
}

// Max length constants.
const (
	MaxDescriptionLength = 500
)

// Cost records one operational expense of the practice.
type Cost struct {
	ID          string
	Category    string
	Description string
	Amount      int // cents
	IncurredAt  time.Time
	CreatedAt   time.Time
}

// Validate checks if the Cost has valid data.
// PRE: Cost struct is initialized
// POST: Returns error if validation fails, nil otherwise
func (c *Cost) Validate() error {
	if !isValidCategory(c.Category) {
		return errors.New("cost category must be one of rent, equipment, utilities, salary, other")
	}
	if strings.TrimSpace(c.Description) == "" {
		return errors.New("cost description cannot be empty")
	}
	if len(c.Description) > MaxDescriptionLength {
		return errors.New("cost description cannot exceed 500 characters")
	}
	if c.Amount <= 0 {
		return errors.New("cost amount must be positive")
	}
	if c.IncurredAt.IsZero() {
		return errors.New("cost date is required")
	}
	return nil
}

func isValidCategory(category string) bool {
	for _, c := range ValidCategories {
		if c == category {
			return true
		}
	}
	return false
}
