package service

import (
	"errors"
	"strings"
)

// Max length constants.
const (
	MaxNameLength = 100
)

// Service type constants, mirroring session types.
const (
	TypeGym     = "gym"
	TypeTherapy = "therapy"
)

// Service is a bookable offering with a default duration and price.
// Sessions reference a service; changing a service never rewrites
// already-booked sessions.
type Service struct {
	ID              string
	Name            string
	Type            string // "gym" or "therapy"
	DurationMinutes int
	Price           int // cents
	Active          bool
}

// Validate checks if the Service has valid data.
// PRE: Service struct is initialized
// POST: Returns error if validation fails, nil otherwise
func (s *Service) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return errors.New("service name cannot be empty")
	}
	if len(s.Name) > MaxNameLength {
		return errors.New("service name cannot exceed 100 characters")
	}
	if s.Type != TypeGym && s.Type != TypeTherapy {
		return errors.New("service type must be 'gym' or 'therapy'")
	}
	if s.DurationMinutes <= 0 {
		return errors.New("service duration must be positive")
	}
	if s.Price < 0 {
		return errors.New("service price cannot be negative")
	}
	return nil
}
