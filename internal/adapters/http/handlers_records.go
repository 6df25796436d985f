package web

import (
	"net/http"
	"strings"

	costDomain "fitdesk/internal/domain/cost"
	employeeDomain "fitdesk/internal/domain/employee"
	serviceDomain "fitdesk/internal/domain/service"
)

// handleEmployees handles GET (list) and POST (create) for /api/employees. Manager or admin.
func handleEmployees(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method == "GET" {
		var (
			employees []employeeDomain.Employee
			err       error
		)
		if r.URL.Query().Get("active") == "true" {
			employees, err = stores.EmployeeStore.ListActive(ctx)
		} else {
			employees, err = stores.EmployeeStore.List(ctx)
		}
		if err != nil {
			internalError(w, err)
			return
		}
		writeJSON(w, employees)
		return
	}

	if r.Method == "POST" {
		if _, ok := requireManager(w, r); !ok {
			return
		}
		var e employeeDomain.Employee
		if err := strictDecode(r, &e); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}
		e.ID = generateID()
		if e.Status == "" {
			e.Status = employeeDomain.StatusActive
		}
		if err := e.Validate(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := stores.EmployeeStore.Save(ctx, e); err != nil {
			internalError(w, err)
			return
		}
		w.WriteHeader(http.StatusCreated)
		writeJSON(w, e)
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

// handleEmployeeByID handles GET/PUT/DELETE /api/employees/{id}
func handleEmployeeByID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := strings.TrimPrefix(r.URL.Path, "/api/employees/")
	if id == "" || strings.Contains(id, "/") {
		http.Error(w, "missing id", http.StatusBadRequest)
		return
	}

	switch r.Method {
	case "GET":
		e, err := stores.EmployeeStore.GetByID(ctx, id)
		if err != nil {
			http.Error(w, "employee not found", http.StatusNotFound)
			return
		}
		writeJSON(w, e)

	case "PUT":
		if _, ok := requireManager(w, r); !ok {
			return
		}
		e, err := stores.EmployeeStore.GetByID(ctx, id)
		if err != nil {
			http.Error(w, "employee not found", http.StatusNotFound)
			return
		}
		var input struct {
			Name       string
			Email      string
			Phone      string
			Role       string
			HourlyRate *int
			Status     string
		}
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}
		if input.Name != "" {
			e.Name = input.Name
		}
		if input.Email != "" {
			e.Email = input.Email
		}
		if input.Phone != "" {
			e.Phone = input.Phone
		}
		if input.Role != "" {
			e.Role = input.Role
		}
		if input.HourlyRate != nil {
			e.HourlyRate = *input.HourlyRate
		}
		if input.Status != "" {
			e.Status = input.Status
		}
		if err := e.Validate(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := stores.EmployeeStore.Save(ctx, e); err != nil {
			internalError(w, err)
			return
		}
		writeJSON(w, e)

	case "DELETE":
		// Archive rather than remove: sessions keep their employee link.
		if _, ok := requireManager(w, r); !ok {
			return
		}
		e, err := stores.EmployeeStore.GetByID(ctx, id)
		if err != nil {
			http.Error(w, "employee not found", http.StatusNotFound)
			return
		}
		e.Status = employeeDomain.StatusArchived
		if err := stores.EmployeeStore.Save(ctx, e); err != nil {
			internalError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// handleServices handles GET (list) and POST (create) for /api/services.
func handleServices(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method == "GET" {
		var (
			services []serviceDomain.Service
			err      error
		)
		if r.URL.Query().Get("active") == "true" {
			services, err = stores.ServiceStore.ListActive(ctx)
		} else {
			services, err = stores.ServiceStore.List(ctx)
		}
		if err != nil {
			internalError(w, err)
			return
		}
		writeJSON(w, services)
		return
	}

	if r.Method == "POST" {
		if _, ok := requireManager(w, r); !ok {
			return
		}
		var s serviceDomain.Service
		if err := strictDecode(r, &s); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}
		s.ID = generateID()
		s.Active = true
		if err := s.Validate(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := stores.ServiceStore.Save(ctx, s); err != nil {
			internalError(w, err)
			return
		}
		w.WriteHeader(http.StatusCreated)
		writeJSON(w, s)
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

// handleServiceByID handles GET/PUT/DELETE /api/services/{id}
func handleServiceByID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := strings.TrimPrefix(r.URL.Path, "/api/services/")
	if id == "" || strings.Contains(id, "/") {
		http.Error(w, "missing id", http.StatusBadRequest)
		return
	}

	switch r.Method {
	case "GET":
		s, err := stores.ServiceStore.GetByID(ctx, id)
		if err != nil {
			http.Error(w, "service not found", http.StatusNotFound)
			return
		}
		writeJSON(w, s)

	case "PUT":
		if _, ok := requireManager(w, r); !ok {
			return
		}
		s, err := stores.ServiceStore.GetByID(ctx, id)
		if err != nil {
			http.Error(w, "service not found", http.StatusNotFound)
			return
		}
		var input struct {
			Name            string
			Type            string
			DurationMinutes *int
			Price           *int
			Active          *bool
		}
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}
		if input.Name != "" {
			s.Name = input.Name
		}
		if input.Type != "" {
			s.Type = input.Type
		}
		if input.DurationMinutes != nil {
			s.DurationMinutes = *input.DurationMinutes
		}
		if input.Price != nil {
			s.Price = *input.Price
		}
		if input.Active != nil {
			s.Active = *input.Active
		}
		if err := s.Validate(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := stores.ServiceStore.Save(ctx, s); err != nil {
			internalError(w, err)
			return
		}
		writeJSON(w, s)

	case "DELETE":
		// Deactivate rather than remove: booked sessions keep their service link.
		if _, ok := requireManager(w, r); !ok {
			return
		}
		s, err := stores.ServiceStore.GetByID(ctx, id)
		if err != nil {
			http.Error(w, "service not found", http.StatusNotFound)
			return
		}
		s.Active = false
		if err := stores.ServiceStore.Save(ctx, s); err != nil {
			internalError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// handleCosts handles GET (list) and POST (record) for /api/costs. Manager or admin.
func handleCosts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if _, ok := requireManager(w, r); !ok {
		return
	}

	if r.Method == "GET" {
		from, err := parseDate(r.URL.Query().Get("from"))
		if err != nil {
			http.Error(w, "Invalid from date", http.StatusBadRequest)
			return
		}
		to, err := parseDate(r.URL.Query().Get("to"))
		if err != nil {
			http.Error(w, "Invalid to date", http.StatusBadRequest)
			return
		}

		var costs []costDomain.Cost
		if !from.IsZero() && !to.IsZero() {
			costs, err = stores.CostStore.ListBetween(ctx, from, to)
		} else {
			costs, err = stores.CostStore.List(ctx)
		}
		if err != nil {
			internalError(w, err)
			return
		}
		writeJSON(w, costs)
		return
	}

	if r.Method == "POST" {
		var input struct {
			Category    string
			Description string
			Amount      int
			IncurredAt  string
		}
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}
		incurredAt, err := parseDate(input.IncurredAt)
		if err != nil {
			http.Error(w, "Invalid incurred date", http.StatusBadRequest)
			return
		}
		if incurredAt.IsZero() {
			incurredAt = timeNow()
		}

		c := costDomain.Cost{
			ID:          generateID(),
			Category:    input.Category,
			Description: input.Description,
			Amount:      input.Amount,
			IncurredAt:  incurredAt,
			CreatedAt:   timeNow(),
		}
		if err := c.Validate(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := stores.CostStore.Save(ctx, c); err != nil {
			internalError(w, err)
			return
		}
		w.WriteHeader(http.StatusCreated)
		writeJSON(w, c)
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

// handleCostByID handles GET/DELETE /api/costs/{id}. Manager or admin.
func handleCostByID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if _, ok := requireManager(w, r); !ok {
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/costs/")
	if id == "" || strings.Contains(id, "/") {
		http.Error(w, "missing id", http.StatusBadRequest)
		return
	}

	switch r.Method {
	case "GET":
		c, err := stores.CostStore.GetByID(ctx, id)
		if err != nil {
			http.Error(w, "cost not found", http.StatusNotFound)
			return
		}
		writeJSON(w, c)

	case "DELETE":
		if err := stores.CostStore.Delete(ctx, id); err != nil {
			internalError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}
