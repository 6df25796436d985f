package orchestrators

import (
	"context"
	"log/slog"

	"fitdesk/internal/domain/service"

	"github.com/google/uuid"
)

// ServiceSeedDeps holds stores needed for service catalogue seeding.
type ServiceSeedDeps struct {
	ServiceStore interface {
		List(ctx context.Context) ([]service.Service, error)
		Save(ctx context.Context, s service.Service) error
	}
}

// defaultServices returns the starter service catalogue.
func defaultServices() []service.Service {
	return []service.Service{
		{Name: "Personal Training 30", Type: service.TypeGym, DurationMinutes: 30, Price: 4500, Active: true},
		{Name: "Personal Training 60", Type: service.TypeGym, DurationMinutes: 60, Price: 8000, Active: true},
		{Name: "Small Group Session", Type: service.TypeGym, DurationMinutes: 45, Price: 3000, Active: true},
		{Name: "Physiotherapy 30", Type: service.TypeTherapy, DurationMinutes: 30, Price: 6000, Active: true},
		{Name: "Physiotherapy 60", Type: service.TypeTherapy, DurationMinutes: 60, Price: 11000, Active: true},
		{Name: "Massage Therapy 45", Type: service.TypeTherapy, DurationMinutes: 45, Price: 7500, Active: true},
	}
}

// ExecuteSeedServices inserts the default service catalogue when none exists.
// Idempotent: any existing service skips the seed.
// PRE: Database schema exists
// POST: The catalogue has at least the default services
func ExecuteSeedServices(ctx context.Context, deps ServiceSeedDeps) error {
	existing, err := deps.ServiceStore.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	for _, svc := range defaultServices() {
		svc.ID = uuid.New().String()
		if err := svc.Validate(); err != nil {
			return err
		}
		if err := deps.ServiceStore.Save(ctx, svc); err != nil {
			return err
		}
	}

	slog.Info("seeded_service_catalogue", "count", len(defaultServices()))
	return nil
}
