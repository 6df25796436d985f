package web

import (
	"net/http"
	"strings"

	"fitdesk/internal/application/orchestrators"
)

// handleNotices handles GET (list) and POST (create) for /api/notices
func handleNotices(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method == "GET" {
		if r.URL.Query().Get("published") == "true" {
			notices, err := stores.NoticeStore.ListPublished(ctx)
			if err != nil {
				internalError(w, err)
				return
			}
			writeJSON(w, notices)
			return
		}
		if _, ok := requireManager(w, r); !ok {
			return
		}
		notices, err := stores.NoticeStore.List(ctx)
		if err != nil {
			internalError(w, err)
			return
		}
		writeJSON(w, notices)
		return
	}

	if r.Method == "POST" {
		sess, ok := requireManager(w, r)
		if !ok {
			return
		}

		input := orchestrators.CreateNoticeInput{CreatedBy: sess.AccountID}
		if isFormRequest(r) {
			if err := r.ParseForm(); err != nil {
				http.Error(w, "Invalid form submission", http.StatusBadRequest)
				return
			}
			input.Title = r.FormValue("Title")
			input.Content = r.FormValue("Content")
			input.Publish = r.FormValue("Publish") == "true"
		} else {
			var body struct {
				Title   string
				Content string
				Publish bool
			}
			if err := strictDecode(r, &body); err != nil {
				http.Error(w, "Invalid request", http.StatusBadRequest)
				return
			}
			input.Title = body.Title
			input.Content = body.Content
			input.Publish = body.Publish
		}

		deps := orchestrators.CreateNoticeDeps{
			NoticeStore: stores.NoticeStore,
			GenerateID:  generateID,
			Now:         timeNow,
		}
		n, err := orchestrators.ExecuteCreateNotice(ctx, input, deps)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		if isFormRequest(r) {
			http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
			return
		}
		w.WriteHeader(http.StatusCreated)
		writeJSON(w, n)
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

// handleNoticeByID handles GET/DELETE /api/notices/{id} and
// POST /api/notices/{id}/publish, /pin, /unpin.
func handleNoticeByID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	rest := strings.TrimPrefix(r.URL.Path, "/api/notices/")
	id, action, _ := strings.Cut(rest, "/")
	if id == "" {
		http.Error(w, "missing id", http.StatusBadRequest)
		return
	}

	switch action {
	case "publish", "pin", "unpin":
		if r.Method != "POST" {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		if _, ok := requireManager(w, r); !ok {
			return
		}

		var err error
		switch action {
		case "publish":
			deps := orchestrators.PublishNoticeDeps{
				NoticeStore: stores.NoticeStore,
				Now:         timeNow,
			}
			if emailSender != nil {
				deps.CustomerStore = stores.CustomerStore
				deps.EmailSender = emailSender
			}
			_, err = orchestrators.ExecutePublishNotice(ctx, id, deps)
		case "pin":
			_, err = orchestrators.ExecutePinNotice(ctx, id, true,
				orchestrators.PinNoticeDeps{NoticeStore: stores.NoticeStore, Now: timeNow})
		case "unpin":
			_, err = orchestrators.ExecutePinNotice(ctx, id, false,
				orchestrators.PinNoticeDeps{NoticeStore: stores.NoticeStore, Now: timeNow})
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		if isFormRequest(r) {
			http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
			return
		}
		w.WriteHeader(http.StatusOK)
		return

	case "":
		// fall through to GET/DELETE below

	default:
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case "GET":
		n, err := stores.NoticeStore.GetByID(ctx, id)
		if err != nil {
			http.Error(w, "notice not found", http.StatusNotFound)
			return
		}
		writeJSON(w, n)

	case "DELETE":
		if _, ok := requireManager(w, r); !ok {
			return
		}
		if err := stores.NoticeStore.Delete(ctx, id); err != nil {
			internalError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}
