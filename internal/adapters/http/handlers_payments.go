package web

import (
	"net/http"
	"strings"
	"time"

	"fitdesk/internal/application/orchestrators"
	"fitdesk/internal/application/projections"
)

// handlePayments handles GET (list) and POST (record) for /api/payments
func handlePayments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method == "GET" {
		if sessionID := r.URL.Query().Get("session_id"); sessionID != "" {
			payments, err := stores.PaymentStore.ListBySessionID(ctx, sessionID)
			if err != nil {
				internalError(w, err)
				return
			}
			writeJSON(w, payments)
			return
		}
		payments, err := stores.PaymentStore.List(ctx)
		if err != nil {
			internalError(w, err)
			return
		}
		writeJSON(w, payments)
		return
	}

	if r.Method == "POST" {
		input := orchestrators.RecordPaymentInput{}
		if isFormRequest(r) {
			if err := r.ParseForm(); err != nil {
				http.Error(w, "Invalid form submission", http.StatusBadRequest)
				return
			}
			input.SessionID = r.FormValue("SessionID")
			input.CustomerID = r.FormValue("CustomerID")
			input.Method = r.FormValue("Method")
			amount, err := parseCents(r.FormValue("Amount"))
			if err != nil {
				http.Error(w, "Invalid amount", http.StatusBadRequest)
				return
			}
			input.Amount = amount
		} else {
			if err := strictDecode(r, &input); err != nil {
				http.Error(w, "Invalid request", http.StatusBadRequest)
				return
			}
		}

		deps := orchestrators.RecordPaymentDeps{
			PaymentStore:  stores.PaymentStore,
			CustomerStore: stores.CustomerStore,
			Charger:       cardCharger,
			EmailSender:   emailSender,
			GenerateID:    generateID,
			Now:           timeNow,
		}
		p, err := orchestrators.ExecuteRecordPayment(ctx, input, deps)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		if isFormRequest(r) {
			http.Redirect(w, r, "/calendar", http.StatusSeeOther)
			return
		}
		w.WriteHeader(http.StatusCreated)
		writeJSON(w, p)
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

// handlePaymentByID handles GET /api/payments/{id} and POST /api/payments/{id}/refund
func handlePaymentByID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	rest := strings.TrimPrefix(r.URL.Path, "/api/payments/")
	id, action, _ := strings.Cut(rest, "/")
	if id == "" {
		http.Error(w, "missing id", http.StatusBadRequest)
		return
	}

	if action == "refund" {
		if r.Method != "POST" {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		if _, ok := requireManager(w, r); !ok {
			return
		}
		p, err := orchestrators.ExecuteRefundPayment(ctx,
			orchestrators.RefundPaymentInput{PaymentID: id},
			orchestrators.RefundPaymentDeps{PaymentStore: stores.PaymentStore, Charger: cardCharger})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		writeJSON(w, p)
		return
	}
	if action != "" {
		http.NotFound(w, r)
		return
	}

	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	p, err := stores.PaymentStore.GetByID(ctx, id)
	if err != nil {
		http.Error(w, "payment not found", http.StatusNotFound)
		return
	}
	writeJSON(w, p)
}

// handleFinanceReport handles GET /finance?from=&to= : revenue against costs.
// Manager or admin. Defaults to the current month.
func handleFinanceReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if _, ok := requireManager(w, r); !ok {
		return
	}

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
	if from.IsZero() || to.IsZero() {
		now := timeNow()
		from = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		to = from.AddDate(0, 1, 0)
	}

	query := projections.GetFinanceReportQuery{From: from, To: to}
	deps := projections.GetFinanceReportDeps{
		PaymentStore: stores.PaymentStore,
		CostStore:    stores.CostStore,
	}

	result, err := projections.QueryGetFinanceReport(r.Context(), query, deps)
	if err != nil {
		internalError(w, err)
		return
	}

	if isHTMLRequest(r) {
		renderTemplate(w, r, "finance.html", result)
		return
	}
	writeJSON(w, result)
}
