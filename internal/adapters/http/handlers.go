package web

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/csrf"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"fitdesk/internal/adapters/http/middleware"
)

// timeNow is a variable for testability.
var timeNow = time.Now

// mdRenderer is a goldmark instance configured for safe HTML output.
// Raw HTML in markdown input is escaped (WithUnsafe is NOT set), preventing XSS.
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// generateID creates a new UUID string.
func generateID() string {
	return uuid.New().String()
}

// internalError logs the real error and returns a generic message to the client.
// This prevents leaking internal details per OWASP A05.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// strictDecode decodes JSON from the request body, rejecting unknown fields.
func strictDecode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// writeJSON writes v as a JSON response.
func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// isFormRequest reports whether the body is an HTML form post.
func isFormRequest(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded")
}

// parseCents parses a dollar amount like "75" or "75.50" into cents.
func parseCents(value string) (int, error) {
	value = strings.TrimSpace(strings.TrimPrefix(value, "$"))
	whole, frac, hasFrac := strings.Cut(value, ".")
	dollars, err := strconv.Atoi(whole)
	if err != nil {
		return 0, err
	}
	cents := dollars * 100
	if hasFrac {
		if len(frac) != 2 {
			return 0, fmt.Errorf("amount %q must have two decimal places", value)
		}
		c, err := strconv.Atoi(frac)
		if err != nil {
			return 0, err
		}
		cents += c
	}
	return cents, nil
}

// parseDate parses a YYYY-MM-DD value, returning the zero time when absent.
func parseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	return time.Parse("2006-01-02", value)
}

// parseDateTime parses a datetime-local form value or RFC 3339 timestamp.
func parseDateTime(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse("2006-01-02T15:04", value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}

const templatesDir = "internal/adapters/http/templates"

func isHTMLRequest(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "text/html") || strings.Contains(accept, "application/xhtml+xml")
}

func renderTemplate(w http.ResponseWriter, r *http.Request, templateName string, data any) {
	renderPage(w, r, []string{templateName}, data)
}

func renderPage(w http.ResponseWriter, r *http.Request, templateNames []string, data any) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	role := ""
	email := ""
	if ok {
		role = sess.Role
		email = sess.Email
	}

	funcMap := template.FuncMap{
		"currentRole":  func() string { return role },
		"currentEmail": func() string { return email },
		"isLoggedIn":   func() bool { return role != "" },
		"isAdmin":      func() bool { return role == "admin" },
		"isManager":    func() bool { return role == "admin" || role == "manager" },
		"csrfToken":    func() string { return csrf.Token(r) },
		"renderMarkdown": func(md string) template.HTML {
			var buf bytes.Buffer
			if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
				return template.HTML(template.HTMLEscapeString(md))
			}
			return template.HTML(buf.String())
		},
		"cents": func(amount int) string {
			sign := ""
			if amount < 0 {
				sign = "-"
				amount = -amount
			}
			return fmt.Sprintf("%s$%d.%02d", sign, amount/100, amount%100)
		},
		"shortTime": func(t time.Time) string { return t.Format("15:04") },
		"shortDate": func(t time.Time) string { return t.Format("Mon 2 Jan") },
		"isoDate":   func(t time.Time) string { return t.Format("2006-01-02") },
		"isoMinute": func(t time.Time) string { return t.Format("2006-01-02T15:04") },
		"dict": func(pairs ...any) map[string]any {
			m := make(map[string]any, len(pairs)/2)
			for i := 0; i+1 < len(pairs); i += 2 {
				if key, ok := pairs[i].(string); ok {
					m[key] = pairs[i+1]
				}
			}
			return m
		},
		"add":       func(a, b int) int { return a + b },
		"sub":       func(a, b int) int { return a - b },
		"paginationQuery": func(page int, search, status string, perPage int) template.URL {
			q := fmt.Sprintf("page=%d", page)
			if search != "" {
				q += "&q=" + search
			}
			if status != "" {
				q += "&status=" + status
			}
			if perPage > 0 {
				q += fmt.Sprintf("&per_page=%d", perPage)
			}
			return template.URL(q)
		},
	}

	paths := make([]string, 0, len(templateNames)+1)
	paths = append(paths, templatesDir+"/layout.html")
	for _, name := range templateNames {
		paths = append(paths, templatesDir+"/"+name)
	}
	tpl, err := template.New("layout.html").Funcs(funcMap).ParseFiles(paths...)
	if err != nil {
		http.Error(w, "Template error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tpl.Execute(w, data); err != nil {
		http.Error(w, "Render error: "+err.Error(), http.StatusInternalServerError)
		return
	}
}

// requireLogin redirects HTML page requests to /login when no session exists.
// Returns false if the request should not proceed.
func requireLogin(w http.ResponseWriter, r *http.Request) bool {
	if _, ok := middleware.GetSessionFromContext(r.Context()); ok {
		return true
	}
	if isHTMLRequest(r) {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return false
	}
	http.Error(w, "not authenticated", http.StatusUnauthorized)
	return false
}

// requireAdmin checks the session for admin role and returns the session.
// Returns false if the request should not proceed.
func requireAdmin(w http.ResponseWriter, r *http.Request) (middleware.Session, bool) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		slog.Warn("auth_denied", "path", r.URL.Path, "reason", "no session")
		http.Error(w, "not authenticated", http.StatusUnauthorized)
		return middleware.Session{}, false
	}
	if sess.Role != "admin" {
		slog.Warn("auth_denied", "path", r.URL.Path, "account_id", sess.AccountID, "role", sess.Role, "required", "admin")
		http.Error(w, "Forbidden", http.StatusForbidden)
		return middleware.Session{}, false
	}
	return sess, true
}

// requireManager checks the session for manager or admin role.
// Returns false if the request should not proceed.
func requireManager(w http.ResponseWriter, r *http.Request) (middleware.Session, bool) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		slog.Warn("auth_denied", "path", r.URL.Path, "reason", "no session")
		http.Error(w, "not authenticated", http.StatusUnauthorized)
		return middleware.Session{}, false
	}
	if sess.Role != "admin" && sess.Role != "manager" {
		slog.Warn("auth_denied", "path", r.URL.Path, "account_id", sess.AccountID, "role", sess.Role, "required", "manager")
		http.Error(w, "Forbidden", http.StatusForbidden)
		return middleware.Session{}, false
	}
	return sess, true
}

// handleAdminPerf handles GET /api/admin/perf: request timing stats for the last hour.
func handleAdminPerf(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if _, ok := requireAdmin(w, r); !ok {
		return
	}
	snap := perfCollector.Snapshot(timeNow().Add(-time.Hour), 10)
	writeJSON(w, snap)
}

func registerRoutes(mux *http.ServeMux) {
	// Auth
	mux.HandleFunc("/login", handleLogin)
	mux.HandleFunc("/logout", handleLogout)
	mux.HandleFunc("/change-password", handleChangePassword)

	// Pages
	mux.HandleFunc("/dashboard", handleDashboard)
	mux.HandleFunc("/calendar", handleCalendar)
	mux.HandleFunc("/customers", handleCustomers)
	mux.HandleFunc("/customers/profile", handleCustomerProfile)
	mux.HandleFunc("/finance", handleFinanceReport)

	// Sessions
	mux.HandleFunc("/sessions", handleSessions)
	mux.HandleFunc("/sessions/", handleSessionByID)

	// JSON API
	mux.HandleFunc("/api/sessions/", handleSessionDetail)
	mux.HandleFunc("/api/customers", handleCustomersAPI)
	mux.HandleFunc("/api/customers/", handleCustomerByID)
	mux.HandleFunc("/api/employees", handleEmployees)
	mux.HandleFunc("/api/employees/", handleEmployeeByID)
	mux.HandleFunc("/api/services", handleServices)
	mux.HandleFunc("/api/services/", handleServiceByID)
	mux.HandleFunc("/api/payments", handlePayments)
	mux.HandleFunc("/api/payments/", handlePaymentByID)
	mux.HandleFunc("/api/costs", handleCosts)
	mux.HandleFunc("/api/costs/", handleCostByID)
	mux.HandleFunc("/api/notices", handleNotices)
	mux.HandleFunc("/api/notices/", handleNoticeByID)
	mux.HandleFunc("/api/accounts", handleAccounts)
	mux.HandleFunc("/api/admin/perf", handleAdminPerf)
}
