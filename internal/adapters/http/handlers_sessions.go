package web

import (
	"net/http"
	"strconv"
	"strings"

	"fitdesk/internal/application/orchestrators"
)

// sessionForm is the JSON shape for booking and editing sessions.
type sessionForm struct {
	Title      string
	Start      string // datetime-local or RFC 3339
	End        string
	Type       string
	Status     string
	CustomerID string
	EmployeeID string
	ServiceID  string
	TotalPrice *int // cents; nil means derive or keep
}

func parseSessionForm(r *http.Request) (sessionForm, error) {
	var f sessionForm
	if isFormRequest(r) {
		if err := r.ParseForm(); err != nil {
			return f, err
		}
		f.Title = r.FormValue("Title")
		f.Start = r.FormValue("Start")
		f.End = r.FormValue("End")
		f.Type = r.FormValue("Type")
		f.Status = r.FormValue("Status")
		f.CustomerID = r.FormValue("CustomerID")
		f.EmployeeID = r.FormValue("EmployeeID")
		f.ServiceID = r.FormValue("ServiceID")
		if v := r.FormValue("TotalPrice"); v != "" {
			cents, err := strconv.Atoi(v)
			if err != nil {
				return f, err
			}
			f.TotalPrice = &cents
		}
		return f, nil
	}
	return f, strictDecode(r, &f)
}

func (f sessionForm) price() int {
	if f.TotalPrice == nil {
		return -1
	}
	return *f.TotalPrice
}

// handleSessions handles POST /sessions: book a session.
func handleSessions(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	f, err := parseSessionForm(r)
	if err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	start, err := parseDateTime(f.Start)
	if err != nil {
		http.Error(w, "Invalid start time", http.StatusBadRequest)
		return
	}
	end, err := parseDateTime(f.End)
	if err != nil {
		http.Error(w, "Invalid end time", http.StatusBadRequest)
		return
	}

	input := orchestrators.BookSessionInput{
		Title:      f.Title,
		Start:      start,
		End:        end,
		Type:       f.Type,
		CustomerID: f.CustomerID,
		EmployeeID: f.EmployeeID,
		ServiceID:  f.ServiceID,
		TotalPrice: f.price(),
	}
	deps := orchestrators.BookSessionDeps{
		SessionStore:  stores.SessionStore,
		ServiceStore:  stores.ServiceStore,
		CustomerStore: stores.CustomerStore,
		EmailSender:   emailSender,
		GenerateID:    generateID,
		Now:           timeNow,
	}

	s, err := orchestrators.ExecuteBookSession(r.Context(), input, deps)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if isFormRequest(r) {
		http.Redirect(w, r, "/calendar?date="+s.Start.Format("2006-01-02"), http.StatusSeeOther)
		return
	}
	w.WriteHeader(http.StatusCreated)
	writeJSON(w, s)
}

// handleSessionByID handles GET/PUT/DELETE /sessions/{id} and
// POST /sessions/{id}/complete.
func handleSessionByID(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/sessions/")
	id, action, _ := strings.Cut(rest, "/")
	if id == "" {
		http.Error(w, "missing id", http.StatusBadRequest)
		return
	}

	if action == "complete" {
		handleCompleteSession(w, r, id)
		return
	}
	if action == "delete" {
		handleDeleteSessionForm(w, r, id)
		return
	}
	if action != "" {
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case "GET":
		s, err := stores.SessionStore.GetByID(r.Context(), id)
		if err != nil {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}
		writeJSON(w, s)

	case "PUT", "POST":
		// POST with form body covers HTML forms, which cannot send PUT.
		f, err := parseSessionForm(r)
		if err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}
		start, err := parseDateTime(f.Start)
		if err != nil {
			http.Error(w, "Invalid start time", http.StatusBadRequest)
			return
		}
		end, err := parseDateTime(f.End)
		if err != nil {
			http.Error(w, "Invalid end time", http.StatusBadRequest)
			return
		}

		input := orchestrators.EditSessionInput{
			SessionID:  id,
			Title:      f.Title,
			Start:      start,
			End:        end,
			Status:     f.Status,
			Type:       f.Type,
			CustomerID: f.CustomerID,
			EmployeeID: f.EmployeeID,
			ServiceID:  f.ServiceID,
			TotalPrice: f.price(),
		}
		s, err := orchestrators.ExecuteEditSession(r.Context(), input,
			orchestrators.EditSessionDeps{SessionStore: stores.SessionStore})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		if isFormRequest(r) {
			http.Redirect(w, r, "/calendar?date="+s.Start.Format("2006-01-02"), http.StatusSeeOther)
			return
		}
		writeJSON(w, s)

	case "DELETE":
		err := orchestrators.ExecuteDeleteSession(r.Context(),
			orchestrators.DeleteSessionInput{SessionID: id},
			orchestrators.DeleteSessionDeps{
				SessionStore:  stores.SessionStore,
				CustomerStore: stores.CustomerStore,
				EmailSender:   emailSender,
			})
		if err != nil {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// handleDeleteSessionForm handles POST /sessions/{id}/delete from the calendar
// detail card. Browsers cannot send DELETE from a form; the JSON API uses the
// DELETE method on /sessions/{id} instead.
func handleDeleteSessionForm(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	// Read the session first so the redirect lands on the day it occupied.
	s, err := stores.SessionStore.GetByID(r.Context(), id)
	if err != nil {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}

	err = orchestrators.ExecuteDeleteSession(r.Context(),
		orchestrators.DeleteSessionInput{SessionID: id},
		orchestrators.DeleteSessionDeps{
			SessionStore:  stores.SessionStore,
			CustomerStore: stores.CustomerStore,
			EmailSender:   emailSender,
		})
	if err != nil {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}

	http.Redirect(w, r, "/calendar?date="+s.Start.Format("2006-01-02"), http.StatusSeeOther)
}

func handleCompleteSession(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	s, err := orchestrators.ExecuteCompleteSession(r.Context(),
		orchestrators.CompleteSessionInput{SessionID: id},
		orchestrators.CompleteSessionDeps{SessionStore: stores.SessionStore, Now: timeNow})
	if err != nil {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}

	if isFormRequest(r) {
		http.Redirect(w, r, "/calendar?date="+s.Start.Format("2006-01-02"), http.StatusSeeOther)
		return
	}
	writeJSON(w, s)
}
