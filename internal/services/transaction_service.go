package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"retail-sales-api/internal/models"
	"retail-sales-api/internal/query"
	"retail-sales-api/internal/repositories"
)

// TransactionPage is one page of listing results with its metadata
type TransactionPage struct {
	Transactions []models.Transaction
	Pagination   query.PageInfo
}

type TransactionService struct {
	transactionRepo repositories.TransactionRepositoryInterface
	exporter        ExportServiceInterface
	metrics         MetricsRecorderInterface
	exportLimit     int
	logger          *slog.Logger
}

func NewTransactionService(
	transactionRepo repositories.TransactionRepositoryInterface,
	exporter ExportServiceInterface,
	metrics MetricsRecorderInterface,
	exportLimit int,
) TransactionServiceInterface {
	if exportLimit < 1 {
		exportLimit = query.ExportLimit
	}
	return &TransactionService{
		transactionRepo: transactionRepo,
		exporter:        exporter,
		metrics:         metrics,
		exportLimit:     exportLimit,
		logger:          slog.Default(),
	}
}

// observe records the outcome and duration of one read operation
func (s *TransactionService) observe(operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "failed"
	}
	s.metrics.IncrementCounter(MetricQueryTotal, map[string]string{
		"operation": operation,
		"status":    status,
	})
	s.metrics.RecordProcessingTime(operation, time.Since(start))
}

func (s *TransactionService) ListTransactions(ctx context.Context, req query.Request) (page *TransactionPage, err error) {
	start := time.Now()
	defer func() { s.observe("list", start, err) }()

	transactions, total, err := s.transactionRepo.List(ctx, req.Predicate, req.Sort, req.Page)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	return &TransactionPage{
		Transactions: transactions,
		Pagination:   req.Page.Paginate(total),
	}, nil
}

func (s *TransactionService) GetTransaction(ctx context.Context, transactionID int64) (*models.Transaction, error) {
	return s.transactionRepo.GetByTransactionID(ctx, transactionID)
}

func (s *TransactionService) GetFilterOptions(ctx context.Context) (opts *models.FilterOptions, err error) {
	start := time.Now()
	defer func() { s.observe("filter_options", start, err) }()

	opts, err = s.transactionRepo.GetFilterOptions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get filter options: %w", err)
	}
	return opts, nil
}

func (s *TransactionService) GetStats(ctx context.Context, req query.Request) (stats *models.TransactionStats, err error) {
	start := time.Now()
	defer func() { s.observe("stats", start, err) }()

	stats, err = s.transactionRepo.GetStats(ctx, req.Predicate)
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction stats: %w", err)
	}
	return stats, nil
}

func (s *TransactionService) ExportTransactions(ctx context.Context, req query.Request, format ExportFormat, w io.Writer) (rows int, err error) {
	start := time.Now()
	defer func() { s.observe("export", start, err) }()

	tw, err := s.exporter.NewWriter(format, w)
	if err != nil {
		return 0, err
	}

	err = s.transactionRepo.Export(ctx, req.Predicate, req.Sort, s.exportLimit, func(t *models.Transaction) error {
		rows++
		return tw.Write(t)
	})
	if err != nil {
		tw.Abort()
		return rows, fmt.Errorf("failed to export transactions: %w", err)
	}

	if err := tw.Close(); err != nil {
		return rows, fmt.Errorf("failed to finish export: %w", err)
	}

	s.metrics.IncrementCounter(MetricExportedRows, map[string]string{"format": string(format)})
	s.metrics.RecordGauge(MetricExportedRows, float64(rows), nil)

	s.logger.InfoContext(ctx, "transactions exported",
		slog.String("format", string(format)),
		slog.Int("rows", rows),
		slog.String("sort", req.Sort.String()),
	)

	return rows, nil
}
