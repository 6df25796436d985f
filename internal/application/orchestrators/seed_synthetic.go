package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"fitdesk/internal/domain/cost"
	"fitdesk/internal/domain/customer"
	"fitdesk/internal/domain/employee"
	"fitdesk/internal/domain/payment"
	"fitdesk/internal/domain/service"
	"fitdesk/internal/domain/session"

	"github.com/google/uuid"
)

// SyntheticSeedDeps holds all stores needed for synthetic data seeding.
type SyntheticSeedDeps struct {
	CustomerStore synCustomerStore
	EmployeeStore synEmployeeStore
	ServiceStore  synServiceStore
	SessionStore  synSessionStore
	PaymentStore  synPaymentStore
	CostStore     synCostStore
}

type synCustomerStore interface {
	Save(ctx context.Context, c customer.Customer) error
	List(ctx context.Context) ([]customer.Customer, error)
}
type synEmployeeStore interface {
	Save(ctx context.Context, e employee.Employee) error
	List(ctx context.Context) ([]employee.Employee, error)
}
type synServiceStore interface {
	List(ctx context.Context) ([]service.Service, error)
}
type synSessionStore interface {
	Save(ctx context.Context, s session.Session) error
}
type synPaymentStore interface {
	Save(ctx context.Context, p payment.Payment) error
}
type synCostStore interface {
	Save(ctx context.Context, c cost.Cost) error
}

var syntheticCustomerNames = []string{
	"Ana Silva", "Ben Carter", "Chloe Walker", "Daniel Ng", "Emma Thompson",
	"Finn O'Brien", "Grace Patel", "Harry Jones", "Isla McKenzie", "Jack Wilson",
	"Kara Lindqvist", "Liam Murphy", "Mia Hansen", "Noah Clarke", "Olivia Reed",
	"Pete Novak", "Quinn Taylor", "Ruby Sharma", "Sam Fletcher", "Tessa Wright",
}

var syntheticEmployees = []struct {
	Name string
	Role string
	Rate int
}{
	{"Marco Jensen", employee.RoleTrainer, 4500},
	{"Sofia Laurent", employee.RoleTrainer, 4800},
	{"Petra Kovac", employee.RoleTherapist, 6500},
	{"David Aluko", employee.RoleTherapist, 6200},
	{"Nina Brandt", employee.RoleReception, 2800},
}

// ExecuteSeedSynthetic fills an empty database with realistic demo data:
// customers, employees, several weeks of sessions (past sessions done and
// paid, future sessions booked), and monthly running costs.
// Idempotent: any existing customer skips the seed.
// PRE: Database schema exists; the service catalogue has been seeded
// POST: Demo data present for calendar, customer and finance screens
func ExecuteSeedSynthetic(ctx context.Context, deps SyntheticSeedDeps, now time.Time) error {
	existing, err := deps.CustomerStore.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	services, err := deps.ServiceStore.List(ctx)
	if err != nil {
		return err
	}
	if len(services) == 0 {
		return fmt.Errorf("synthetic seed needs the service catalogue seeded first")
	}

	// Fixed seed keeps the demo data stable across restarts.
	rng := rand.New(rand.NewSource(42))

	customers := make([]customer.Customer, 0, len(syntheticCustomerNames))
	for i, name := range syntheticCustomerNames {
		c := customer.Customer{
			ID:     uuid.New().String(),
			Name:   name,
			Email:  fmt.Sprintf("customer%02d@example.com", i+1),
			Phone:  fmt.Sprintf("021 %03d %04d", rng.Intn(900)+100, rng.Intn(10000)),
			Status: customer.StatusActive,
		}
		if err := deps.CustomerStore.Save(ctx, c); err != nil {
			return err
		}
		customers = append(customers, c)
	}

	employees := make([]employee.Employee, 0, len(syntheticEmployees))
	for i, def := range syntheticEmployees {
		e := employee.Employee{
			ID:         uuid.New().String(),
			Name:       def.Name,
			Email:      fmt.Sprintf("staff%02d@fitdesk.example.com", i+1),
			Role:       def.Role,
			HourlyRate: def.Rate,
			Status:     employee.StatusActive,
		}
		if err := deps.EmployeeStore.Save(ctx, e); err != nil {
			return err
		}
		employees = append(employees, e)
	}

	// Trainers deliver gym services, therapists deliver therapy.
	byType := map[string][]employee.Employee{}
	for _, e := range employees {
		switch e.Role {
		case employee.RoleTrainer:
			byType[service.TypeGym] = append(byType[service.TypeGym], e)
		case employee.RoleTherapist:
			byType[service.TypeTherapy] = append(byType[service.TypeTherapy], e)
		}
	}

	sessionCount := 0
	paymentCount := 0
	// Four weeks back, two weeks ahead.
	for dayOffset := -28; dayOffset <= 14; dayOffset++ {
		day := now.AddDate(0, 0, dayOffset)
		if day.Weekday() == time.Sunday {
			continue
		}
		// 3 to 7 sessions per day, some overlapping.
		perDay := 3 + rng.Intn(5)
		for i := 0; i < perDay; i++ {
			svc := services[rng.Intn(len(services))]
			staff := byType[svc.Type]
			if len(staff) == 0 {
				continue
			}
			c := customers[rng.Intn(len(customers))]
			e := staff[rng.Intn(len(staff))]

			startHour := 7 + rng.Intn(12)
			startMin := []int{0, 15, 30, 45}[rng.Intn(4)]
			start := time.Date(day.Year(), day.Month(), day.Day(), startHour, startMin, 0, 0, day.Location())

			s := session.Session{
				ID:         uuid.New().String(),
				Title:      svc.Name,
				Start:      start,
				End:        start.Add(time.Duration(svc.DurationMinutes) * time.Minute),
				Status:     session.StatusNew,
				Type:       svc.Type,
				CustomerID: c.ID,
				EmployeeID: e.ID,
				ServiceID:  svc.ID,
				TotalPrice: svc.Price,
				CreatedAt:  start.AddDate(0, 0, -rng.Intn(14)-1),
			}
			if start.Before(now) {
				if rng.Intn(10) == 0 {
					s.Status = session.StatusCancel
				} else {
					s.MarkDone()
				}
			}
			if err := deps.SessionStore.Save(ctx, s); err != nil {
				return err
			}
			sessionCount++

			// Most delivered sessions are paid.
			if s.IsDone() && rng.Intn(10) < 9 {
				method := payment.MethodCash
				if rng.Intn(2) == 0 {
					method = payment.MethodCard
				}
				p := payment.Payment{
					ID:         uuid.New().String(),
					SessionID:  s.ID,
					CustomerID: c.ID,
					Amount:     s.TotalPrice,
					Method:     method,
					Status:     payment.StatusPending,
					CreatedAt:  s.End,
				}
				if method == payment.MethodCard {
					p.ProviderRef = fmt.Sprintf("seed-%06d", rng.Intn(1000000))
				}
				if err := p.MarkPaid(s.End); err != nil {
					return err
				}
				if err := deps.PaymentStore.Save(ctx, p); err != nil {
					return err
				}
				paymentCount++
			}
		}
	}

	// Two months of running costs.
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	for m := 0; m < 2; m++ {
		first := monthStart.AddDate(0, -m, 0)
		monthly := []cost.Cost{
			{Category: cost.CategoryRent, Description: "Studio rent", Amount: 380000, IncurredAt: first},
			{Category: cost.CategoryUtilities, Description: "Power and water", Amount: 42000, IncurredAt: first.AddDate(0, 0, 4)},
			{Category: cost.CategoryEquipment, Description: "Equipment maintenance", Amount: 25000, IncurredAt: first.AddDate(0, 0, 9)},
			{Category: cost.CategorySalary, Description: "Reception wages", Amount: 310000, IncurredAt: first.AddDate(0, 0, 13)},
		}
		for _, c := range monthly {
			c.ID = uuid.New().String()
			c.CreatedAt = c.IncurredAt
			if err := deps.CostStore.Save(ctx, c); err != nil {
				return err
			}
		}
	}

	slog.Info("seeded_synthetic_data",
		"customers", len(customers),
		"employees", len(employees),
		"sessions", sessionCount,
		"payments", paymentCount,
	)
	return nil
}
