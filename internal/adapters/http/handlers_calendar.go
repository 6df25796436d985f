package web

import (
	"net/http"
	"strings"

	"fitdesk/internal/application/projections"
	"fitdesk/internal/domain/timetable"
)

// handleCalendar handles GET /calendar?view=&date=&status=&q=
func handleCalendar(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	q := r.URL.Query()
	query := projections.GetCalendarQuery{
		View:     q.Get("view"),
		Date:     q.Get("date"),
		Status:   q.Get("status"),
		Search:   q.Get("q"),
		Selected: q.Get("selected"),
	}
	deps := projections.GetCalendarDeps{
		SessionStore:  stores.SessionStore,
		CustomerStore: stores.CustomerStore,
		EmployeeStore: stores.EmployeeStore,
	}

	result, err := projections.QueryGetCalendar(r.Context(), query, deps, timeNow())
	if err != nil {
		internalError(w, err)
		return
	}

	if isHTMLRequest(r) {
		renderTemplate(w, r, "calendar.html", map[string]any{
			"Result":    result,
			"View":      result.View.String(),
			"Status":    query.Status,
			"Search":    query.Search,
			"Selected":  query.Selected,
			"RowHeight": timetable.DefaultRowHeight,
		})
		return
	}

	writeJSON(w, result)
}

// handleDashboard handles GET /dashboard
func handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if !requireLogin(w, r) {
		return
	}

	deps := projections.GetDashboardDeps{
		SessionStore: stores.SessionStore,
		NoticeStore:  stores.NoticeStore,
		PaymentStore: stores.PaymentStore,
	}

	result, err := projections.QueryGetDashboard(r.Context(), deps, timeNow())
	if err != nil {
		internalError(w, err)
		return
	}

	if isHTMLRequest(r) {
		renderTemplate(w, r, "dashboard.html", result)
		return
	}

	writeJSON(w, result)
}

// handleSessionDetail handles GET /api/sessions/{id}: the detail card data.
func handleSessionDetail(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/sessions/")
	if id == "" || strings.Contains(id, "/") {
		http.Error(w, "missing id", http.StatusBadRequest)
		return
	}

	query := projections.GetSessionDetailQuery{SessionID: id}
	deps := projections.GetSessionDetailDeps{
		SessionStore:  stores.SessionStore,
		CustomerStore: stores.CustomerStore,
		EmployeeStore: stores.EmployeeStore,
		ServiceStore:  stores.ServiceStore,
		PaymentStore:  stores.PaymentStore,
	}

	result, err := projections.QueryGetSessionDetail(r.Context(), query, deps)
	if err != nil {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}

	writeJSON(w, result)
}
