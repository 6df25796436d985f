package web

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strings"
	"testing"
	"time"

	"fitdesk/internal/adapters/http/middleware"
	costDomain "fitdesk/internal/domain/cost"
	customerDomain "fitdesk/internal/domain/customer"
	employeeDomain "fitdesk/internal/domain/employee"
	noticeDomain "fitdesk/internal/domain/notice"
	paymentDomain "fitdesk/internal/domain/payment"
	serviceDomain "fitdesk/internal/domain/service"
	sessionDomain "fitdesk/internal/domain/session"
)

// Mock implementations for testing

type mockSessionStore struct {
	sessions map[string]sessionDomain.Session
}

func (m *mockSessionStore) GetByID(ctx context.Context, id string) (sessionDomain.Session, error) {
	if s, ok := m.sessions[id]; ok {
		return s, nil
	}
	return sessionDomain.Session{}, sql.ErrNoRows
}

func (m *mockSessionStore) Save(ctx context.Context, s sessionDomain.Session) error {
	m.sessions[s.ID] = s
	return nil
}

func (m *mockSessionStore) Delete(ctx context.Context, id string) error {
	delete(m.sessions, id)
	return nil
}

func (m *mockSessionStore) List(ctx context.Context) ([]sessionDomain.Session, error) {
	return m.sorted(func(sessionDomain.Session) bool { return true }), nil
}

func (m *mockSessionStore) ListByRange(ctx context.Context, from, to time.Time) ([]sessionDomain.Session, error) {
	return m.sorted(func(s sessionDomain.Session) bool {
		return !s.Start.Before(from) && s.Start.Before(to)
	}), nil
}

func (m *mockSessionStore) ListByCustomerID(ctx context.Context, customerID string) ([]sessionDomain.Session, error) {
	return m.sorted(func(s sessionDomain.Session) bool { return s.CustomerID == customerID }), nil
}

func (m *mockSessionStore) ListByEmployeeID(ctx context.Context, employeeID string) ([]sessionDomain.Session, error) {
	return m.sorted(func(s sessionDomain.Session) bool { return s.EmployeeID == employeeID }), nil
}

func (m *mockSessionStore) sorted(keep func(sessionDomain.Session) bool) []sessionDomain.Session {
	var list []sessionDomain.Session
	for _, s := range m.sessions {
		if keep(s) {
			list = append(list, s)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Start.Before(list[j].Start) })
	return list
}

type mockCustomerStore struct {
	customers map[string]customerDomain.Customer
}

func (m *mockCustomerStore) GetByID(ctx context.Context, id string) (customerDomain.Customer, error) {
	if c, ok := m.customers[id]; ok {
		return c, nil
	}
	return customerDomain.Customer{}, sql.ErrNoRows
}

func (m *mockCustomerStore) GetByEmail(ctx context.Context, email string) (customerDomain.Customer, error) {
	for _, c := range m.customers {
		if c.Email == email {
			return c, nil
		}
	}
	return customerDomain.Customer{}, sql.ErrNoRows
}

func (m *mockCustomerStore) Save(ctx context.Context, c customerDomain.Customer) error {
	m.customers[c.ID] = c
	return nil
}

func (m *mockCustomerStore) Delete(ctx context.Context, id string) error {
	delete(m.customers, id)
	return nil
}

func (m *mockCustomerStore) List(ctx context.Context) ([]customerDomain.Customer, error) {
	var list []customerDomain.Customer
	for _, c := range m.customers {
		list = append(list, c)
	}
	return list, nil
}

func (m *mockCustomerStore) Search(ctx context.Context, query, status string, limit, offset int) ([]customerDomain.Customer, int, error) {
	var list []customerDomain.Customer
	for _, c := range m.customers {
		if status != "" && c.Status != status {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(c.Name), strings.ToLower(query)) {
			continue
		}
		list = append(list, c)
	}
	total := len(list)
	if offset > len(list) {
		offset = len(list)
	}
	list = list[offset:]
	if len(list) > limit {
		list = list[:limit]
	}
	return list, total, nil
}

func (m *mockCustomerStore) ListNames(ctx context.Context) (map[string]string, error) {
	names := make(map[string]string, len(m.customers))
	for id, c := range m.customers {
		names[id] = c.Name
	}
	return names, nil
}

type mockEmployeeStore struct {
	employees map[string]employeeDomain.Employee
}

func (m *mockEmployeeStore) GetByID(ctx context.Context, id string) (employeeDomain.Employee, error) {
	if e, ok := m.employees[id]; ok {
		return e, nil
	}
	return employeeDomain.Employee{}, sql.ErrNoRows
}

func (m *mockEmployeeStore) Save(ctx context.Context, e employeeDomain.Employee) error {
	m.employees[e.ID] = e
	return nil
}

func (m *mockEmployeeStore) Delete(ctx context.Context, id string) error {
	delete(m.employees, id)
	return nil
}

func (m *mockEmployeeStore) List(ctx context.Context) ([]employeeDomain.Employee, error) {
	var list []employeeDomain.Employee
	for _, e := range m.employees {
		list = append(list, e)
	}
	return list, nil
}

func (m *mockEmployeeStore) ListActive(ctx context.Context) ([]employeeDomain.Employee, error) {
	var list []employeeDomain.Employee
	for _, e := range m.employees {
		if e.Status == employeeDomain.StatusActive {
			list = append(list, e)
		}
	}
	return list, nil
}

func (m *mockEmployeeStore) ListNames(ctx context.Context) (map[string]string, error) {
	names := make(map[string]string, len(m.employees))
	for id, e := range m.employees {
		names[id] = e.Name
	}
	return names, nil
}

type mockServiceStore struct {
	services map[string]serviceDomain.Service
}

func (m *mockServiceStore) GetByID(ctx context.Context, id string) (serviceDomain.Service, error) {
	if s, ok := m.services[id]; ok {
		return s, nil
	}
	return serviceDomain.Service{}, sql.ErrNoRows
}

func (m *mockServiceStore) Save(ctx context.Context, s serviceDomain.Service) error {
	m.services[s.ID] = s
	return nil
}

func (m *mockServiceStore) Delete(ctx context.Context, id string) error {
	delete(m.services, id)
	return nil
}

func (m *mockServiceStore) List(ctx context.Context) ([]serviceDomain.Service, error) {
	var list []serviceDomain.Service
	for _, s := range m.services {
		list = append(list, s)
	}
	return list, nil
}

func (m *mockServiceStore) ListActive(ctx context.Context) ([]serviceDomain.Service, error) {
	var list []serviceDomain.Service
	for _, s := range m.services {
		if s.Active {
			list = append(list, s)
		}
	}
	return list, nil
}

type mockPaymentStore struct {
	payments map[string]paymentDomain.Payment
}

func (m *mockPaymentStore) GetByID(ctx context.Context, id string) (paymentDomain.Payment, error) {
	if p, ok := m.payments[id]; ok {
		return p, nil
	}
	return paymentDomain.Payment{}, sql.ErrNoRows
}

func (m *mockPaymentStore) Save(ctx context.Context, p paymentDomain.Payment) error {
	m.payments[p.ID] = p
	return nil
}

func (m *mockPaymentStore) List(ctx context.Context) ([]paymentDomain.Payment, error) {
	var list []paymentDomain.Payment
	for _, p := range m.payments {
		list = append(list, p)
	}
	return list, nil
}

func (m *mockPaymentStore) ListBySessionID(ctx context.Context, sessionID string) ([]paymentDomain.Payment, error) {
	var list []paymentDomain.Payment
	for _, p := range m.payments {
		if p.SessionID == sessionID {
			list = append(list, p)
		}
	}
	return list, nil
}

func (m *mockPaymentStore) SumPaidBetween(ctx context.Context, from, to time.Time) (int, error) {
	total := 0
	for _, p := range m.payments {
		if p.Status == paymentDomain.StatusPaid && !p.PaidAt.Before(from) && p.PaidAt.Before(to) {
			total += p.Amount
		}
	}
	return total, nil
}

type mockNoticeStore struct {
	notices map[string]noticeDomain.Notice
}

func (m *mockNoticeStore) GetByID(ctx context.Context, id string) (noticeDomain.Notice, error) {
	if n, ok := m.notices[id]; ok {
		return n, nil
	}
	return noticeDomain.Notice{}, sql.ErrNoRows
}

func (m *mockNoticeStore) Save(ctx context.Context, n noticeDomain.Notice) error {
	m.notices[n.ID] = n
	return nil
}

func (m *mockNoticeStore) Delete(ctx context.Context, id string) error {
	delete(m.notices, id)
	return nil
}

func (m *mockNoticeStore) List(ctx context.Context) ([]noticeDomain.Notice, error) {
	var list []noticeDomain.Notice
	for _, n := range m.notices {
		list = append(list, n)
	}
	return list, nil
}

func (m *mockNoticeStore) ListPublished(ctx context.Context) ([]noticeDomain.Notice, error) {
	var list []noticeDomain.Notice
	for _, n := range m.notices {
		if n.Status == noticeDomain.StatusPublished {
			list = append(list, n)
		}
	}
	return list, nil
}

type mockCostStore struct {
	costs map[string]costDomain.Cost
}

func (m *mockCostStore) GetByID(ctx context.Context, id string) (costDomain.Cost, error) {
	if c, ok := m.costs[id]; ok {
		return c, nil
	}
	return costDomain.Cost{}, sql.ErrNoRows
}

func (m *mockCostStore) Save(ctx context.Context, c costDomain.Cost) error {
	m.costs[c.ID] = c
	return nil
}

func (m *mockCostStore) Delete(ctx context.Context, id string) error {
	delete(m.costs, id)
	return nil
}

func (m *mockCostStore) List(ctx context.Context) ([]costDomain.Cost, error) {
	var list []costDomain.Cost
	for _, c := range m.costs {
		list = append(list, c)
	}
	return list, nil
}

func (m *mockCostStore) ListBetween(ctx context.Context, from, to time.Time) ([]costDomain.Cost, error) {
	var list []costDomain.Cost
	for _, c := range m.costs {
		if !c.IncurredAt.Before(from) && c.IncurredAt.Before(to) {
			list = append(list, c)
		}
	}
	return list, nil
}

// setupTestStores installs fresh mocks into the package globals.
func setupTestStores(t *testing.T) (*mockSessionStore, *mockCustomerStore) {
	t.Helper()
	sessionMock := &mockSessionStore{sessions: make(map[string]sessionDomain.Session)}
	customerMock := &mockCustomerStore{customers: make(map[string]customerDomain.Customer)}
	stores = &Stores{
		SessionStore:  sessionMock,
		CustomerStore: customerMock,
		EmployeeStore: &mockEmployeeStore{employees: make(map[string]employeeDomain.Employee)},
		ServiceStore:  &mockServiceStore{services: make(map[string]serviceDomain.Service)},
		PaymentStore:  &mockPaymentStore{payments: make(map[string]paymentDomain.Payment)},
		NoticeStore:   &mockNoticeStore{notices: make(map[string]noticeDomain.Notice)},
		CostStore:     &mockCostStore{costs: make(map[string]costDomain.Cost)},
	}
	emailSender = nil
	cardCharger = nil
	return sessionMock, customerMock
}

// withSession attaches a session with the given role to the request context.
func withSession(r *http.Request, role string) *http.Request {
	ctx := middleware.ContextWithSession(r.Context(), middleware.Session{
		AccountID: "acct-1",
		Email:     "staff@test.com",
		Role:      role,
		CreatedAt: time.Now(),
	})
	return r.WithContext(ctx)
}

func TestPostSessions(t *testing.T) {
	tests := []struct {
		name       string
		formData   url.Values
		wantStatus int
	}{
		{
			name: "valid booking",
			formData: url.Values{
				"Title": []string{"Open gym"},
				"Start": []string{"2026-03-11T09:00"},
				"End":   []string{"2026-03-11T10:00"},
				"Type":  []string{"gym"},
			},
			wantStatus: http.StatusSeeOther,
		},
		{
			name: "end before start",
			formData: url.Values{
				"Title": []string{"Broken"},
				"Start": []string{"2026-03-11T10:00"},
				"End":   []string{"2026-03-11T09:00"},
				"Type":  []string{"gym"},
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "no end and no service",
			formData: url.Values{
				"Title": []string{"Dangling"},
				"Start": []string{"2026-03-11T09:00"},
				"Type":  []string{"gym"},
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "garbage start time",
			formData: url.Values{
				"Title": []string{"Bad clock"},
				"Start": []string{"next tuesday"},
				"End":   []string{"2026-03-11T10:00"},
				"Type":  []string{"gym"},
			},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sessionMock, _ := setupTestStores(t)

			req := httptest.NewRequest("POST", "/sessions", strings.NewReader(tt.formData.Encode()))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			rec := httptest.NewRecorder()

			handleSessions(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("got status %d, want %d. Body: %s", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if tt.wantStatus == http.StatusSeeOther {
				if len(sessionMock.sessions) != 1 {
					t.Errorf("expected 1 session, got %d", len(sessionMock.sessions))
				}
				location := rec.Header().Get("Location")
				if !strings.HasPrefix(location, "/calendar?date=2026-03-11") {
					t.Errorf("got redirect %q, want calendar on booking date", location)
				}
			} else if len(sessionMock.sessions) != 0 {
				t.Errorf("expected no sessions, got %d", len(sessionMock.sessions))
			}
		})
	}
}

func TestSessionLifecycle(t *testing.T) {
	sessionMock, _ := setupTestStores(t)

	body := `{"Title":"PT with Sam","Start":"2026-03-11T09:00","End":"2026-03-11T10:00","Type":"gym"}`
	req := httptest.NewRequest("POST", "/sessions", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handleSessions(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("book: got status %d. Body: %s", rec.Code, rec.Body.String())
	}
	var booked sessionDomain.Session
	if err := json.Unmarshal(rec.Body.Bytes(), &booked); err != nil {
		t.Fatalf("book: bad response body: %v", err)
	}

	// Read it back.
	req = httptest.NewRequest("GET", "/sessions/"+booked.ID, nil)
	rec = httptest.NewRecorder()
	handleSessionByID(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("get: got status %d", rec.Code)
	}

	// Reschedule to the next day.
	update := `{"Start":"2026-03-12T09:00","End":"2026-03-12T10:00"}`
	req = httptest.NewRequest("PUT", "/sessions/"+booked.ID, strings.NewReader(update))
	req.Header.Set("Content-Type", "application/json")
	rec = httptest.NewRecorder()
	handleSessionByID(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("edit: got status %d. Body: %s", rec.Code, rec.Body.String())
	}
	if got := sessionMock.sessions[booked.ID].Start.Day(); got != 12 {
		t.Errorf("edit: start day = %d, want 12", got)
	}

	// Mark delivered.
	req = httptest.NewRequest("POST", "/sessions/"+booked.ID+"/complete", nil)
	rec = httptest.NewRecorder()
	handleSessionByID(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("complete: got status %d", rec.Code)
	}
	if sessionMock.sessions[booked.ID].Status != sessionDomain.StatusDone {
		t.Errorf("complete: status = %q, want done", sessionMock.sessions[booked.ID].Status)
	}

	// Delete it.
	req = httptest.NewRequest("DELETE", "/sessions/"+booked.ID, nil)
	rec = httptest.NewRecorder()
	handleSessionByID(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete: got status %d", rec.Code)
	}
	if len(sessionMock.sessions) != 0 {
		t.Errorf("delete: %d sessions left", len(sessionMock.sessions))
	}
}

func TestGetCalendarJSON(t *testing.T) {
	sessionMock, customerMock := setupTestStores(t)
	customerMock.customers["c1"] = customerDomain.Customer{
		ID: "c1", Name: "Alice", Email: "alice@test.com", Status: customerDomain.StatusActive,
	}
	sessionMock.sessions["s1"] = sessionDomain.Session{
		ID:         "s1",
		Title:      "PT",
		Start:      time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC),
		End:        time.Date(2026, 3, 11, 10, 0, 0, 0, time.UTC),
		Status:     sessionDomain.StatusNew,
		Type:       sessionDomain.TypeGym,
		CustomerID: "c1",
	}

	req := httptest.NewRequest("GET", "/calendar?view=day&date=2026-03-11", nil)
	rec := httptest.NewRecorder()
	handleCalendar(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d. Body: %s", rec.Code, rec.Body.String())
	}
	var result struct {
		Day *struct {
			Sessions []struct {
				Session sessionDomain.Session
			}
		}
		CustomerNames map[string]string
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if result.Day == nil || len(result.Day.Sessions) != 1 {
		t.Fatalf("expected 1 placed session in day view, got %+v", result.Day)
	}
	if result.CustomerNames["c1"] != "Alice" {
		t.Errorf("CustomerNames = %v", result.CustomerNames)
	}
}

func TestGetCalendarSelectedCard(t *testing.T) {
	sessionMock, _ := setupTestStores(t)
	sessionMock.sessions["s1"] = sessionDomain.Session{
		ID:     "s1",
		Title:  "PT",
		Start:  time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC),
		End:    time.Date(2026, 3, 11, 10, 0, 0, 0, time.UTC),
		Status: sessionDomain.StatusNew,
		Type:   sessionDomain.TypeGym,
	}

	req := httptest.NewRequest("GET", "/calendar?view=day&date=2026-03-11&selected=s1", nil)
	rec := httptest.NewRecorder()
	handleCalendar(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d. Body: %s", rec.Code, rec.Body.String())
	}
	var result struct {
		Card *struct {
			Session  sessionDomain.Session
			Position string
		}
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if result.Card == nil || result.Card.Session.ID != "s1" {
		t.Fatalf("Card = %+v, want pinned card for s1", result.Card)
	}
	if result.Card.Position == "" {
		t.Error("expected a card position")
	}

	// A selection for an unknown session pins nothing.
	req = httptest.NewRequest("GET", "/calendar?view=day&date=2026-03-11&selected=ghost", nil)
	rec = httptest.NewRecorder()
	handleCalendar(rec, req)
	result.Card = nil
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if result.Card != nil {
		t.Errorf("Card = %+v, want nil for an unknown selection", result.Card)
	}
}

func TestDeleteSessionForm(t *testing.T) {
	sessionMock, _ := setupTestStores(t)
	sessionMock.sessions["s1"] = sessionDomain.Session{
		ID:     "s1",
		Title:  "PT",
		Start:  time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC),
		End:    time.Date(2026, 3, 11, 10, 0, 0, 0, time.UTC),
		Status: sessionDomain.StatusNew,
		Type:   sessionDomain.TypeGym,
	}

	req := httptest.NewRequest("POST", "/sessions/s1/delete", strings.NewReader(""))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	handleSessionByID(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("got status %d. Body: %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Location"); got != "/calendar?date=2026-03-11" {
		t.Errorf("redirect = %q, want the session's calendar day", got)
	}
	if len(sessionMock.sessions) != 0 {
		t.Errorf("expected session deleted, %d left", len(sessionMock.sessions))
	}

	// Deleting a missing session is a 404, not a redirect.
	req = httptest.NewRequest("POST", "/sessions/ghost/delete", strings.NewReader(""))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec = httptest.NewRecorder()
	handleSessionByID(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing session: got status %d, want 404", rec.Code)
	}
}

func TestGetSessionDetail(t *testing.T) {
	sessionMock, _ := setupTestStores(t)
	sessionMock.sessions["s1"] = sessionDomain.Session{
		ID:     "s1",
		Title:  "PT",
		Start:  time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC),
		End:    time.Date(2026, 3, 11, 10, 0, 0, 0, time.UTC),
		Status: sessionDomain.StatusNew,
		Type:   sessionDomain.TypeGym,
	}

	req := httptest.NewRequest("GET", "/api/sessions/s1", nil)
	rec := httptest.NewRecorder()
	handleSessionDetail(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d. Body: %s", rec.Code, rec.Body.String())
	}

	req = httptest.NewRequest("GET", "/api/sessions/nope", nil)
	rec = httptest.NewRecorder()
	handleSessionDetail(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing session: got status %d, want 404", rec.Code)
	}
}

func TestPostCustomers(t *testing.T) {
	_, customerMock := setupTestStores(t)

	body := `{"Name":"Alice Novak","Email":"alice@test.com","Phone":"021 555 0101"}`
	req := httptest.NewRequest("POST", "/customers", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handleCustomers(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("got status %d. Body: %s", rec.Code, rec.Body.String())
	}
	if len(customerMock.customers) != 1 {
		t.Fatalf("expected 1 customer, got %d", len(customerMock.customers))
	}

	// Same email again conflicts.
	req = httptest.NewRequest("POST", "/customers", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec = httptest.NewRecorder()
	handleCustomers(rec, req)
	if rec.Code != http.StatusConflict {
		t.Errorf("duplicate: got status %d, want 409", rec.Code)
	}
}

func TestCostsRequireManager(t *testing.T) {
	setupTestStores(t)

	// No session at all.
	req := httptest.NewRequest("GET", "/api/costs", nil)
	rec := httptest.NewRecorder()
	handleCosts(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("anonymous: got status %d, want 401", rec.Code)
	}

	// Staff role is not enough.
	req = withSession(httptest.NewRequest("GET", "/api/costs", nil), "staff")
	rec = httptest.NewRecorder()
	handleCosts(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("staff: got status %d, want 403", rec.Code)
	}

	// Manager can list.
	req = withSession(httptest.NewRequest("GET", "/api/costs", nil), "manager")
	rec = httptest.NewRecorder()
	handleCosts(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("manager: got status %d, want 200", rec.Code)
	}
}

func TestPostCosts(t *testing.T) {
	setupTestStores(t)

	body := `{"Category":"rent","Description":"March rent","Amount":380000,"IncurredAt":"2026-03-01"}`
	req := withSession(httptest.NewRequest("POST", "/api/costs", strings.NewReader(body)), "manager")
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handleCosts(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("got status %d. Body: %s", rec.Code, rec.Body.String())
	}
	var c costDomain.Cost
	if err := json.Unmarshal(rec.Body.Bytes(), &c); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if c.Category != costDomain.CategoryRent || c.Amount != 380000 {
		t.Errorf("cost = %+v", c)
	}

	// Unknown category rejected.
	bad := `{"Category":"snacks","Description":"biscuits","Amount":500}`
	req = withSession(httptest.NewRequest("POST", "/api/costs", strings.NewReader(bad)), "manager")
	req.Header.Set("Content-Type", "application/json")
	rec = httptest.NewRecorder()
	handleCosts(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad category: got status %d, want 400", rec.Code)
	}
}

func TestNoticePublishFlow(t *testing.T) {
	setupTestStores(t)

	body := `{"Title":"Easter hours","Content":"We close at **2pm** on Friday."}`
	req := withSession(httptest.NewRequest("POST", "/api/notices", strings.NewReader(body)), "admin")
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handleNotices(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("create: got status %d. Body: %s", rec.Code, rec.Body.String())
	}
	var n noticeDomain.Notice
	if err := json.Unmarshal(rec.Body.Bytes(), &n); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if n.Status != noticeDomain.StatusDraft {
		t.Fatalf("create: status = %q, want draft", n.Status)
	}

	// Drafts stay off the published feed.
	req = httptest.NewRequest("GET", "/api/notices?published=true", nil)
	rec = httptest.NewRecorder()
	handleNotices(rec, req)
	if body := strings.TrimSpace(rec.Body.String()); body != "null" && body != "[]" {
		t.Errorf("published feed before publish = %s", body)
	}

	req = withSession(httptest.NewRequest("POST", "/api/notices/"+n.ID+"/publish", nil), "admin")
	rec = httptest.NewRecorder()
	handleNoticeByID(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("publish: got status %d. Body: %s", rec.Code, rec.Body.String())
	}

	req = httptest.NewRequest("GET", "/api/notices?published=true", nil)
	rec = httptest.NewRecorder()
	handleNotices(rec, req)
	var published []noticeDomain.Notice
	if err := json.Unmarshal(rec.Body.Bytes(), &published); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if len(published) != 1 {
		t.Errorf("published feed after publish = %d notices, want 1", len(published))
	}
}

func TestRecordPaymentEndpoint(t *testing.T) {
	_, customerMock := setupTestStores(t)
	customerMock.customers["c1"] = customerDomain.Customer{
		ID: "c1", Name: "Alice", Email: "alice@test.com", Status: customerDomain.StatusActive,
	}

	body := `{"SessionID":"s1","CustomerID":"c1","Amount":7500,"Method":"cash"}`
	req := httptest.NewRequest("POST", "/api/payments", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handlePayments(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("got status %d. Body: %s", rec.Code, rec.Body.String())
	}
	var p paymentDomain.Payment
	if err := json.Unmarshal(rec.Body.Bytes(), &p); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if p.Status != paymentDomain.StatusPaid {
		t.Errorf("status = %q, want paid", p.Status)
	}

	// Zero amount rejected.
	bad := `{"SessionID":"s1","Amount":0,"Method":"cash"}`
	req = httptest.NewRequest("POST", "/api/payments", strings.NewReader(bad))
	req.Header.Set("Content-Type", "application/json")
	rec = httptest.NewRecorder()
	handlePayments(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("zero amount: got status %d, want 400", rec.Code)
	}
}
