package repositories

import (
	"context"

	"retail-sales-api/internal/models"
	"retail-sales-api/internal/query"
)

// TransactionRepositoryInterface defines the contract for transaction repository operations
type TransactionRepositoryInterface interface {
	CreateBatch(ctx context.Context, transactions []models.Transaction) error
	GetByTransactionID(ctx context.Context, transactionID int64) (*models.Transaction, error)
	Count(ctx context.Context) (int64, error)
	MaxTransactionID(ctx context.Context) (int64, error)

	// Predicate-driven reads
	List(ctx context.Context, pred query.Predicate, sort query.Sort, page query.Page) ([]models.Transaction, int64, error)
	Export(ctx context.Context, pred query.Predicate, sort query.Sort, limit int, fn func(*models.Transaction) error) error
	GetStats(ctx context.Context, pred query.Predicate) (*models.TransactionStats, error)
	GetFilterOptions(ctx context.Context) (*models.FilterOptions, error)
}
