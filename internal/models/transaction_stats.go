package models

import "github.com/shopspring/decimal"

// TransactionStats aggregates the records matched by a filter.
// Revenue is measured on the final (post-discount) amount.
type TransactionStats struct {
	TotalTransactions int64               `json:"totalTransactions"`
	TotalRevenue      decimal.Decimal     `json:"totalRevenue"`
	TotalQuantity     int64               `json:"totalQuantity"`
	TotalDiscount     decimal.Decimal     `json:"totalDiscount"`
	AverageOrderValue decimal.Decimal     `json:"averageOrderValue"`
	StatusBreakdown   []StatusBreakdown   `json:"statusBreakdown"`
	CategoryBreakdown []CategoryBreakdown `json:"categoryBreakdown"`
	RegionBreakdown   []RegionBreakdown   `json:"regionBreakdown"`
}

// StatusBreakdown contains aggregated sales by order status
type StatusBreakdown struct {
	Status  string          `json:"status"`
	Count   int64           `json:"count"`
	Revenue decimal.Decimal `json:"revenue"`
}

// CategoryBreakdown contains aggregated sales by product category
type CategoryBreakdown struct {
	Category string          `json:"category"`
	Count    int64           `json:"count"`
	Revenue  decimal.Decimal `json:"revenue"`
}

// RegionBreakdown contains aggregated sales by customer region
type RegionBreakdown struct {
	Region  string          `json:"region"`
	Count   int64           `json:"count"`
	Revenue decimal.Decimal `json:"revenue"`
}

// MaxCategoryBreakdown limits the category breakdown to the top earners
const MaxCategoryBreakdown = 10

// ComputeAverage fills AverageOrderValue from the totals
func (s *TransactionStats) ComputeAverage() {
	if s.TotalTransactions == 0 {
		s.AverageOrderValue = decimal.Zero
		return
	}
	s.AverageOrderValue = s.TotalRevenue.Div(decimal.NewFromInt(s.TotalTransactions)).Round(2)
}
