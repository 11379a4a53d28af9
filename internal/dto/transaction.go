package dto

import (
	"retail-sales-api/internal/models"
	"retail-sales-api/internal/query"

	"github.com/shopspring/decimal"
)

func init() {
	// amounts are rendered as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true
}

// ListTransactionsResponse represents the response for listing transactions
type ListTransactionsResponse struct {
	Success    bool                 `json:"success"`
	Data       []models.Transaction `json:"data"`
	Pagination query.PageInfo       `json:"pagination"`
}

// TransactionResponse wraps a single transaction
type TransactionResponse struct {
	Success bool                `json:"success"`
	Data    *models.Transaction `json:"data"`
}

// FilterOptionsResponse wraps the available filter values
type FilterOptionsResponse struct {
	Success bool                  `json:"success"`
	Data    *models.FilterOptions `json:"data"`
}

// TransactionStatsResponse wraps aggregate statistics for a filter
type TransactionStatsResponse struct {
	Success bool                     `json:"success"`
	Data    *models.TransactionStats `json:"data"`
}
