package services

import (
	"context"
	"io"
	"time"

	"retail-sales-api/internal/models"
	"retail-sales-api/internal/query"
)

// TransactionServiceInterface defines the read operations behind the transactions API
type TransactionServiceInterface interface {
	ListTransactions(ctx context.Context, req query.Request) (*TransactionPage, error)
	GetTransaction(ctx context.Context, transactionID int64) (*models.Transaction, error)
	GetFilterOptions(ctx context.Context) (*models.FilterOptions, error)
	GetStats(ctx context.Context, req query.Request) (*models.TransactionStats, error)

	// ExportTransactions streams every matching record, up to the export cap,
	// and returns the number of rows written
	ExportTransactions(ctx context.Context, req query.Request, format ExportFormat, w io.Writer) (int, error)
}

// ExportServiceInterface renders transactions into downloadable documents
type ExportServiceInterface interface {
	NewWriter(format ExportFormat, w io.Writer) (TransactionWriter, error)
	ContentType(format ExportFormat) string
	Filename(format ExportFormat, now time.Time) string
}

// TransactionWriter receives rows one at a time. Nothing is guaranteed to reach
// the underlying writer until Close returns.
type TransactionWriter interface {
	Write(transaction *models.Transaction) error
	Close() error
	// Abort releases the writer without completing the document
	Abort()
}

// DatasetImporterInterface loads a sales dataset into storage
type DatasetImporterInterface interface {
	Import(ctx context.Context, r io.Reader) (*ImportResult, error)
}

// TransactionGeneratorInterface generates realistic retail records for local seeding
type TransactionGeneratorInterface interface {
	Generate(firstID int64, count int, startDate, endDate time.Time) []models.Transaction
	GenerateTags() models.StringList
	GenerateTimestamp(startDate, endDate time.Time) time.Time
}

type MetricsRecorderInterface interface {
	IncrementCounter(name string, tags map[string]string)
	RecordProcessingTime(name string, duration time.Duration)
	RecordGauge(name string, value float64, tags map[string]string)
}
