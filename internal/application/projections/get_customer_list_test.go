package projections

import (
	"context"
	"testing"

	domainCustomer "fitdesk/internal/domain/customer"
)

type mockListCustomerStore struct {
	customers []domainCustomer.Customer

	// captured from the last Search call
	query, status string
	limit, offset int
}

// Search returns the seeded page and the full seeded count as total.
func (m *mockListCustomerStore) Search(_ context.Context, query, status string, limit, offset int) ([]domainCustomer.Customer, int, error) {
	m.query, m.status, m.limit, m.offset = query, status, limit, offset
	return m.customers, 45, nil
}

// TestQueryGetCustomerList_Paging verifies offset math and page metadata.
func TestQueryGetCustomerList_Paging(t *testing.T) {
	store := &mockListCustomerStore{customers: []domainCustomer.Customer{
		{ID: "c1", Name: "Alice", Email: "alice@test.com", Status: "active"},
	}}
	deps := GetCustomerListDeps{CustomerStore: store}

	res, err := QueryGetCustomerList(context.Background(), GetCustomerListQuery{
		Search: "ali", Status: "active", Page: 3, PerPage: 20,
	}, deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.offset != 40 || store.limit != 20 {
		t.Errorf("limit/offset = %d/%d, want 20/40", store.limit, store.offset)
	}
	if store.query != "ali" || store.status != "active" {
		t.Errorf("search passthrough = %q/%q", store.query, store.status)
	}
	if res.PageInfo.TotalPages != 3 {
		t.Errorf("TotalPages = %d, want 3", res.PageInfo.TotalPages)
	}
	if res.PageInfo.Total != 45 {
		t.Errorf("Total = %d, want 45", res.PageInfo.Total)
	}
}

// TestQueryGetCustomerList_Defaults verifies page and per-page defaults apply.
func TestQueryGetCustomerList_Defaults(t *testing.T) {
	store := &mockListCustomerStore{}
	deps := GetCustomerListDeps{CustomerStore: store}

	_, err := QueryGetCustomerList(context.Background(), GetCustomerListQuery{Page: 0, PerPage: 0}, deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.offset != 0 {
		t.Errorf("offset = %d, want 0", store.offset)
	}
	if store.limit != 20 {
		t.Errorf("limit = %d, want default 20", store.limit)
	}
}
