package orchestrators

import (
	"context"
	"errors"
	"testing"
	"time"

	"fitdesk/internal/adapters/email"
	"fitdesk/internal/domain/customer"
	"fitdesk/internal/domain/service"
	"fitdesk/internal/domain/session"
)

// mockSessionStore implements SessionStoreForBooking for testing.
type mockSessionStore struct {
	sessions map[string]session.Session
}

func newMockSessionStore() *mockSessionStore {
	return &mockSessionStore{sessions: make(map[string]session.Session)}
}

func (m *mockSessionStore) GetByID(_ context.Context, id string) (session.Session, error) {
	s, ok := m.sessions[id]
	if !ok {
		return session.Session{}, errors.New("session not found")
	}
	return s, nil
}

func (m *mockSessionStore) Save(_ context.Context, s session.Session) error {
	m.sessions[s.ID] = s
	return nil
}

func (m *mockSessionStore) Delete(_ context.Context, id string) error {
	delete(m.sessions, id)
	return nil
}

type mockServiceStore struct {
	service service.Service
}

func (m *mockServiceStore) GetByID(_ context.Context, _ string) (service.Service, error) {
	return m.service, nil
}

type mockCustomerStoreForBooking struct {
	customer customer.Customer
}

func (m *mockCustomerStoreForBooking) GetByID(_ context.Context, _ string) (customer.Customer, error) {
	return m.customer, nil
}

// recordingSender captures sent emails.
type recordingSender struct {
	sent []email.SendRequest
}

func (r *recordingSender) Send(_ context.Context, req email.SendRequest) (email.SendResult, error) {
	r.sent = append(r.sent, req)
	return email.SendResult{MessageID: "rec-1", SentAt: time.Now()}, nil
}

func (r *recordingSender) SendBatch(_ context.Context, reqs []email.SendRequest) ([]email.SendResult, error) {
	r.sent = append(r.sent, reqs...)
	return nil, nil
}

// TestExecuteBookSession_DerivesFromService verifies end time, price and title
// come from the service when not given.
func TestExecuteBookSession_DerivesFromService(t *testing.T) {
	store := newMockSessionStore()
	sender := &recordingSender{}
	start := time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC)

	s, err := ExecuteBookSession(context.Background(), BookSessionInput{
		Start:      start,
		CustomerID: "c1",
		EmployeeID: "e1",
		ServiceID:  "sv1",
		TotalPrice: -1,
	}, BookSessionDeps{
		SessionStore: store,
		ServiceStore: &mockServiceStore{service: service.Service{
			ID: "sv1", Name: "Physio 60", Type: service.TypeTherapy, DurationMinutes: 60, Price: 11000, Active: true,
		}},
		CustomerStore: &mockCustomerStoreForBooking{customer: customer.Customer{
			ID: "c1", Name: "Alice", Email: "alice@test.com", Status: customer.StatusActive,
		}},
		EmailSender: sender,
		GenerateID:  fixedID,
		Now:         fixedNow,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !s.End.Equal(start.Add(time.Hour)) {
		t.Errorf("End = %v, want start+60m", s.End)
	}
	if s.TotalPrice != 11000 {
		t.Errorf("TotalPrice = %d, want 11000", s.TotalPrice)
	}
	if s.Title != "Physio 60" || s.Type != session.TypeTherapy {
		t.Errorf("Title/Type = %q/%q", s.Title, s.Type)
	}
	if s.Status != session.StatusNew {
		t.Errorf("Status = %q, want new", s.Status)
	}
	if len(sender.sent) != 1 {
		t.Fatalf("emails sent = %d, want 1", len(sender.sent))
	}
	if sender.sent[0].To[0] != "alice@test.com" {
		t.Errorf("confirmation went to %v", sender.sent[0].To)
	}
}

// TestExecuteBookSession_NoEndNoService verifies the input must pin down an end time.
func TestExecuteBookSession_NoEndNoService(t *testing.T) {
	_, err := ExecuteBookSession(context.Background(), BookSessionInput{
		Title: "Ad hoc",
		Start: fixedTime,
		Type:  session.TypeGym,
	}, BookSessionDeps{
		SessionStore: newMockSessionStore(),
		GenerateID:   fixedID,
		Now:          fixedNow,
	})
	if !errors.Is(err, ErrEndWithoutService) {
		t.Fatalf("err = %v, want ErrEndWithoutService", err)
	}
}

// TestExecuteBookSession_InvalidIntervalRejected verifies end before start never persists.
func TestExecuteBookSession_InvalidIntervalRejected(t *testing.T) {
	store := newMockSessionStore()
	_, err := ExecuteBookSession(context.Background(), BookSessionInput{
		Title: "Broken",
		Start: fixedTime,
		End:   fixedTime.Add(-time.Hour),
		Type:  session.TypeGym,
	}, BookSessionDeps{
		SessionStore: store,
		GenerateID:   fixedID,
		Now:          fixedNow,
	})
	if !errors.Is(err, session.ErrEndNotAfter) {
		t.Fatalf("err = %v, want ErrEndNotAfter", err)
	}
	if len(store.sessions) != 0 {
		t.Error("invalid session must not be persisted")
	}
}

// TestExecuteBookSession_NoEmailSenderStillBooks verifies email is optional.
func TestExecuteBookSession_NoEmailSenderStillBooks(t *testing.T) {
	store := newMockSessionStore()
	_, err := ExecuteBookSession(context.Background(), BookSessionInput{
		Title: "Open gym",
		Start: fixedTime,
		End:   fixedTime.Add(time.Hour),
		Type:  session.TypeGym,
	}, BookSessionDeps{
		SessionStore: store,
		GenerateID:   fixedID,
		Now:          fixedNow,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(store.sessions) != 1 {
		t.Error("session should be persisted without a sender")
	}
}

// TestExecuteCompleteSession verifies the done transition persists.
func TestExecuteCompleteSession(t *testing.T) {
	store := newMockSessionStore()
	store.sessions["s1"] = session.Session{
		ID: "s1", Title: "PT", Start: fixedTime, End: fixedTime.Add(time.Hour),
		Status: session.StatusNew, Type: session.TypeGym, CreatedAt: fixedTime,
	}

	s, err := ExecuteCompleteSession(context.Background(), CompleteSessionInput{SessionID: "s1"},
		CompleteSessionDeps{SessionStore: store, Now: fixedNow})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !s.IsDone() {
		t.Error("expected session done")
	}
	if store.sessions["s1"].Status != session.StatusDone {
		t.Error("done status not persisted")
	}
}

// TestExecuteEditSession_Reschedule verifies a moved session revalidates and saves.
func TestExecuteEditSession_Reschedule(t *testing.T) {
	store := newMockSessionStore()
	store.sessions["s1"] = session.Session{
		ID: "s1", Title: "PT", Start: fixedTime, End: fixedTime.Add(time.Hour),
		Status: session.StatusNew, Type: session.TypeGym, TotalPrice: 4500, CreatedAt: fixedTime,
	}

	newStart := fixedTime.AddDate(0, 0, 1)
	s, err := ExecuteEditSession(context.Background(), EditSessionInput{
		SessionID:  "s1",
		Start:      newStart,
		End:        newStart.Add(90 * time.Minute),
		TotalPrice: -1,
	}, EditSessionDeps{SessionStore: store})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !s.Start.Equal(newStart) {
		t.Errorf("Start = %v, want %v", s.Start, newStart)
	}
	if s.TotalPrice != 4500 {
		t.Errorf("TotalPrice = %d, want unchanged 4500", s.TotalPrice)
	}
}

// TestExecuteDeleteSession_SendsCancellation verifies delete emails the customer.
func TestExecuteDeleteSession_SendsCancellation(t *testing.T) {
	store := newMockSessionStore()
	store.sessions["s1"] = session.Session{
		ID: "s1", Title: "PT", Start: fixedTime, End: fixedTime.Add(time.Hour),
		Status: session.StatusNew, Type: session.TypeGym, CustomerID: "c1", CreatedAt: fixedTime,
	}
	sender := &recordingSender{}

	err := ExecuteDeleteSession(context.Background(), DeleteSessionInput{SessionID: "s1"},
		DeleteSessionDeps{
			SessionStore: store,
			CustomerStore: &mockCustomerStoreForBooking{customer: customer.Customer{
				ID: "c1", Name: "Alice", Email: "alice@test.com", Status: customer.StatusActive,
			}},
			EmailSender: sender,
		})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := store.sessions["s1"]; ok {
		t.Error("session should be deleted")
	}
	if len(sender.sent) != 1 {
		t.Errorf("emails sent = %d, want 1", len(sender.sent))
	}
}
