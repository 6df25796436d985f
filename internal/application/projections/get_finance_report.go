package projections

import (
	"context"
	"time"

	"fitdesk/internal/domain/cost"
)

// FinanceCostStore defines the cost store interface needed by the finance projection.
type FinanceCostStore interface {
	ListBetween(ctx context.Context, from, to time.Time) ([]cost.Cost, error)
}

// GetFinanceReportQuery carries the reporting window.
type GetFinanceReportQuery struct {
	From time.Time
	To   time.Time // exclusive
}

// GetFinanceReportDeps holds dependencies for the finance projection.
type GetFinanceReportDeps struct {
	PaymentStore DashboardPaymentStore
	CostStore    FinanceCostStore
}

// GetFinanceReportResult carries revenue against costs for a period.
type GetFinanceReportResult struct {
	From       time.Time
	To         time.Time
	Revenue    int // cents paid in the window
	Costs      []cost.Cost
	CostTotal  int            // cents
	Net        int            // Revenue minus CostTotal, may be negative
	ByCategory map[string]int // cost cents per category
}

// QueryGetFinanceReport totals paid revenue against recorded costs in [From, To).
// PRE: From is before To
// POST: Net = Revenue - CostTotal
func QueryGetFinanceReport(ctx context.Context, query GetFinanceReportQuery, deps GetFinanceReportDeps) (GetFinanceReportResult, error) {
	result := GetFinanceReportResult{
		From:       query.From,
		To:         query.To,
		ByCategory: make(map[string]int),
	}

	revenue, err := deps.PaymentStore.SumPaidBetween(ctx, query.From, query.To)
	if err != nil {
		return GetFinanceReportResult{}, err
	}
	result.Revenue = revenue

	costs, err := deps.CostStore.ListBetween(ctx, query.From, query.To)
	if err != nil {
		return GetFinanceReportResult{}, err
	}
	result.Costs = costs
	for _, c := range costs {
		result.CostTotal += c.Amount
		result.ByCategory[c.Category] += c.Amount
	}

	result.Net = result.Revenue - result.CostTotal
	return result, nil
}
