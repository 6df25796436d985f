package projections

import (
	"context"

	"fitdesk/internal/application/listutil"
	"fitdesk/internal/domain/customer"
)

// ListCustomerStore defines the customer store interface needed by the list projection.
type ListCustomerStore interface {
	Search(ctx context.Context, query, status string, limit, offset int) ([]customer.Customer, int, error)
}

// GetCustomerListQuery carries query parameters.
type GetCustomerListQuery struct {
	Status  string
	Search  string
	Page    int
	PerPage int
}

// GetCustomerListDeps holds dependencies for GetCustomerList.
type GetCustomerListDeps struct {
	CustomerStore ListCustomerStore
}

// GetCustomerListResult carries the query result.
type GetCustomerListResult struct {
	Customers []customer.Customer
	PageInfo  listutil.PageInfo
}

// QueryGetCustomerList retrieves a page of customers matching the search and status filter.
// PRE: Page >= 1; PerPage is one of the allowed page sizes
// POST: Returns the page plus pagination metadata
func QueryGetCustomerList(ctx context.Context, query GetCustomerListQuery, deps GetCustomerListDeps) (GetCustomerListResult, error) {
	page := query.Page
	if page < 1 {
		page = 1
	}
	perPage := query.PerPage
	if perPage < 1 {
		perPage = listutil.DefaultPerPage
	}

	offset := (page - 1) * perPage
	customers, total, err := deps.CustomerStore.Search(ctx, query.Search, query.Status, perPage, offset)
	if err != nil {
		return GetCustomerListResult{}, err
	}

	return GetCustomerListResult{
		Customers: customers,
		PageInfo:  listutil.NewPageInfo(page, perPage, total),
	}, nil
}
