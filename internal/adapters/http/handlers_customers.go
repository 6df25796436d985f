package web

import (
	"errors"
	"net/http"
	"strings"

	"fitdesk/internal/application/listutil"
	"fitdesk/internal/application/orchestrators"
	"fitdesk/internal/application/projections"
	customerDomain "fitdesk/internal/domain/customer"
)

// handleCustomers handles GET (list page) and POST (register) for /customers
func handleCustomers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method == "GET" {
		q := r.URL.Query()
		pp := listutil.ParsePageParams(q)

		query := projections.GetCustomerListQuery{
			Status:  q.Get("status"),
			Search:  q.Get("q"),
			Page:    pp.Page,
			PerPage: pp.PerPage,
		}
		deps := projections.GetCustomerListDeps{CustomerStore: stores.CustomerStore}

		result, err := projections.QueryGetCustomerList(ctx, query, deps)
		if err != nil {
			internalError(w, err)
			return
		}

		if isHTMLRequest(r) {
			renderTemplate(w, r, "customers.html", map[string]any{
				"Customers":      result.Customers,
				"PageInfo":       result.PageInfo,
				"Search":         query.Search,
				"Status":         query.Status,
				"PerPageOptions": listutil.PerPageOptions,
				"HasFilters":     query.Search != "" || query.Status != "",
			})
			return
		}
		writeJSON(w, result)
		return
	}

	if r.Method == "POST" {
		input := orchestrators.RegisterCustomerInput{}
		if isFormRequest(r) {
			if err := r.ParseForm(); err != nil {
				http.Error(w, "Invalid form submission", http.StatusBadRequest)
				return
			}
			input.Name = r.FormValue("Name")
			input.Email = r.FormValue("Email")
			input.Phone = r.FormValue("Phone")
			input.Notes = r.FormValue("Notes")
		} else {
			if err := strictDecode(r, &input); err != nil {
				http.Error(w, "Invalid request", http.StatusBadRequest)
				return
			}
		}

		deps := orchestrators.RegisterCustomerDeps{
			CustomerStore: stores.CustomerStore,
			GenerateID:    generateID,
		}
		c, err := orchestrators.ExecuteRegisterCustomer(ctx, input, deps)
		if err != nil {
			if errors.Is(err, orchestrators.ErrCustomerEmailTaken) {
				http.Error(w, err.Error(), http.StatusConflict)
				return
			}
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		if isFormRequest(r) {
			http.Redirect(w, r, "/customers/profile?id="+c.ID, http.StatusSeeOther)
			return
		}
		w.WriteHeader(http.StatusCreated)
		writeJSON(w, c)
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

// handleCustomerProfile handles GET /customers/profile?id= and the archive form POST.
func handleCustomerProfile(w http.ResponseWriter, r *http.Request) {
	customerID := r.URL.Query().Get("id")
	if customerID == "" {
		http.Error(w, "missing id", http.StatusBadRequest)
		return
	}

	if r.Method == "POST" {
		if r.FormValue("action") != "archive" {
			http.Error(w, "unknown action", http.StatusBadRequest)
			return
		}
		if _, ok := requireManager(w, r); !ok {
			return
		}
		c, err := stores.CustomerStore.GetByID(r.Context(), customerID)
		if err != nil {
			http.Error(w, "customer not found", http.StatusNotFound)
			return
		}
		c.Status = customerDomain.StatusArchived
		if err := stores.CustomerStore.Save(r.Context(), c); err != nil {
			internalError(w, err)
			return
		}
		http.Redirect(w, r, "/customers", http.StatusSeeOther)
		return
	}

	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	query := projections.GetCustomerProfileQuery{CustomerID: customerID}
	deps := projections.GetCustomerProfileDeps{
		CustomerStore: stores.CustomerStore,
		SessionStore:  stores.SessionStore,
		PaymentStore:  stores.PaymentStore,
	}

	result, err := projections.QueryGetCustomerProfile(r.Context(), query, deps)
	if err != nil {
		http.Error(w, "customer not found", http.StatusNotFound)
		return
	}

	if isHTMLRequest(r) {
		renderTemplate(w, r, "customer_profile.html", result)
		return
	}
	writeJSON(w, result)
}

// handleCustomersAPI handles GET /api/customers?q= : name search for booking forms.
func handleCustomersAPI(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	query := r.URL.Query().Get("q")
	customers, _, err := stores.CustomerStore.Search(r.Context(), query, customerDomain.StatusActive, 10, 0)
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, customers)
}

// handleCustomerByID handles GET/PUT/DELETE /api/customers/{id}
func handleCustomerByID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := strings.TrimPrefix(r.URL.Path, "/api/customers/")
	if id == "" || strings.Contains(id, "/") {
		http.Error(w, "missing id", http.StatusBadRequest)
		return
	}

	switch r.Method {
	case "GET":
		c, err := stores.CustomerStore.GetByID(ctx, id)
		if err != nil {
			http.Error(w, "customer not found", http.StatusNotFound)
			return
		}
		writeJSON(w, c)

	case "PUT":
		c, err := stores.CustomerStore.GetByID(ctx, id)
		if err != nil {
			http.Error(w, "customer not found", http.StatusNotFound)
			return
		}

		var input struct {
			Name   string
			Email  string
			Phone  string
			Notes  string
			Status string
		}
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}
		if input.Name != "" {
			c.Name = input.Name
		}
		if input.Email != "" {
			c.Email = input.Email
		}
		if input.Phone != "" {
			c.Phone = input.Phone
		}
		if input.Notes != "" {
			c.Notes = input.Notes
		}
		if input.Status != "" {
			c.Status = input.Status
		}
		if err := c.Validate(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := stores.CustomerStore.Save(ctx, c); err != nil {
			internalError(w, err)
			return
		}
		writeJSON(w, c)

	case "DELETE":
		// Archive rather than remove: session history must keep resolving.
		if _, ok := requireManager(w, r); !ok {
			return
		}
		c, err := stores.CustomerStore.GetByID(ctx, id)
		if err != nil {
			http.Error(w, "customer not found", http.StatusNotFound)
			return
		}
		c.Status = customerDomain.StatusArchived
		if err := stores.CustomerStore.Save(ctx, c); err != nil {
			internalError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}
