package services

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"retail-sales-api/internal/models"
	"retail-sales-api/internal/repositories"

	"github.com/shopspring/decimal"
)

// ErrMissingColumn is returned when the dataset header lacks a required column
var ErrMissingColumn = errors.New("dataset is missing a required column")

// Dataset column titles
const (
	colTransactionID      = "Transaction ID"
	colDate               = "Date"
	colCustomerID         = "Customer ID"
	colCustomerName       = "Customer Name"
	colPhone              = "Phone Number"
	colGender             = "Gender"
	colAge                = "Age"
	colRegion             = "Customer Region"
	colCustomerType       = "Customer Type"
	colProductID          = "Product ID"
	colProductName        = "Product Name"
	colBrand              = "Brand"
	colProductCategory    = "Product Category"
	colTags               = "Tags"
	colQuantity           = "Quantity"
	colPricePerUnit       = "Price per Unit"
	colDiscountPercentage = "Discount Percentage"
	colAmount             = "Total Amount"
	colFinalAmount        = "Final Amount"
	colPaymentMethod      = "Payment Method"
	colStatus             = "Order Status"
	colDeliveryType       = "Delivery Type"
	colStoreID            = "Store ID"
	colStoreLocation      = "Store Location"
	colEmployeeID         = "Employee ID"
	colEmployeeName       = "Employee Name"
)

var requiredColumns = []string{
	colTransactionID,
	colDate,
	colCustomerID,
	colCustomerName,
	colGender,
	colAge,
	colRegion,
	colProductCategory,
	colAmount,
	colFinalAmount,
}

var datasetDateLayouts = []string{
	time.DateOnly,
	time.RFC3339,
	time.DateTime,
	"01/02/2006",
}

// ImportResult summarizes one dataset load
type ImportResult struct {
	Read     int
	Inserted int
	Skipped  int
	Failed   int
	Batches  int
	Duration time.Duration
}

type DatasetImporter struct {
	transactionRepo repositories.TransactionRepositoryInterface
	metrics         MetricsRecorderInterface
	batchSize       int
	maxRecords      int
	logger          *slog.Logger
}

// NewDatasetImporter creates an importer. maxRecords <= 0 imports every row.
func NewDatasetImporter(
	transactionRepo repositories.TransactionRepositoryInterface,
	metrics MetricsRecorderInterface,
	batchSize int,
	maxRecords int,
) DatasetImporterInterface {
	if batchSize < 1 {
		batchSize = repositories.BatchSize
	}
	return &DatasetImporter{
		transactionRepo: transactionRepo,
		metrics:         metrics,
		batchSize:       batchSize,
		maxRecords:      maxRecords,
		logger:          slog.Default(),
	}
}

// Import reads a CSV dataset with a header row and inserts it batch by batch.
// Unparsable rows are skipped; a failed batch is logged and the load continues.
func (i *DatasetImporter) Import(ctx context.Context, r io.Reader) (*ImportResult, error) {
	start := time.Now()
	result := &ImportResult{}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset header: %w", err)
	}

	index, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	batch := make([]models.Transaction, 0, i.batchSize)
	flush := func() {
		if len(batch) == 0 {
			return
		}
		result.Batches++
		i.metrics.RecordGauge(MetricImportBatchSize, float64(len(batch)), nil)

		if err := i.transactionRepo.CreateBatch(ctx, batch); err != nil {
			result.Failed += len(batch)
			i.logger.ErrorContext(ctx, "failed to insert batch",
				slog.Int("batch", result.Batches),
				slog.Int("size", len(batch)),
				slog.String("error", err.Error()),
			)
		} else {
			result.Inserted += len(batch)
		}
		batch = make([]models.Transaction, 0, i.batchSize)
	}

	line := 1
	for {
		if i.maxRecords > 0 && result.Read >= i.maxRecords {
			break
		}
		if err := ctx.Err(); err != nil {
			return result, err
		}

		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			result.Skipped++
			i.logger.WarnContext(ctx, "skipping malformed dataset line", slog.Int("line", line), slog.String("error", err.Error()))
			continue
		}
		result.Read++

		transaction, err := index.transaction(record)
		if err != nil {
			result.Skipped++
			i.logger.WarnContext(ctx, "skipping invalid dataset row", slog.Int("line", line), slog.String("error", err.Error()))
			continue
		}

		batch = append(batch, transaction)
		if len(batch) >= i.batchSize {
			flush()
		}
	}
	flush()

	result.Duration = time.Since(start)

	i.metrics.RecordGauge(MetricImportedRows, float64(result.Inserted), map[string]string{"status": "inserted"})
	i.metrics.RecordGauge(MetricImportedRows, float64(result.Skipped+result.Failed), map[string]string{"status": "rejected"})

	i.logger.InfoContext(ctx, "dataset import complete",
		slog.Int("read", result.Read),
		slog.Int("inserted", result.Inserted),
		slog.Int("skipped", result.Skipped),
		slog.Int("failed", result.Failed),
		slog.Int("batches", result.Batches),
		slog.Duration("duration", result.Duration),
	)

	return result, nil
}

type datasetColumns map[string]int

func columnIndex(header []string) (datasetColumns, error) {
	index := make(datasetColumns, len(header))
	for pos, name := range header {
		index[strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))] = pos
	}
	for _, name := range requiredColumns {
		if _, ok := index[name]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
	}
	return index, nil
}

func (c datasetColumns) get(record []string, name string) string {
	pos, ok := c[name]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}

func (c datasetColumns) transaction(record []string) (models.Transaction, error) {
	var t models.Transaction
	var err error

	if t.TransactionID, err = strconv.ParseInt(c.get(record, colTransactionID), 10, 64); err != nil {
		return t, fmt.Errorf("transaction id: %w", err)
	}
	if t.Date, err = parseDatasetDate(c.get(record, colDate)); err != nil {
		return t, err
	}
	if t.Age, err = atoiOrZero(c.get(record, colAge)); err != nil {
		return t, fmt.Errorf("age: %w", err)
	}
	if t.Quantity, err = atoiOrZero(c.get(record, colQuantity)); err != nil {
		return t, fmt.Errorf("quantity: %w", err)
	}

	amounts := []struct {
		column string
		dst    *decimal.Decimal
	}{
		{colPricePerUnit, &t.PricePerUnit},
		{colDiscountPercentage, &t.DiscountPercentage},
		{colAmount, &t.Amount},
		{colFinalAmount, &t.FinalAmount},
	}
	for _, a := range amounts {
		raw := c.get(record, a.column)
		if raw == "" {
			continue
		}
		if *a.dst, err = decimal.NewFromString(raw); err != nil {
			return t, fmt.Errorf("%s: %w", strings.ToLower(a.column), err)
		}
	}

	t.CustomerID = c.get(record, colCustomerID)
	t.CustomerName = c.get(record, colCustomerName)
	t.Phone = c.get(record, colPhone)
	t.Gender = c.get(record, colGender)
	t.Region = c.get(record, colRegion)
	t.CustomerType = c.get(record, colCustomerType)
	t.ProductID = c.get(record, colProductID)
	t.ProductName = c.get(record, colProductName)
	t.Brand = c.get(record, colBrand)
	t.ProductCategory = c.get(record, colProductCategory)
	t.Tags = ParseTags(c.get(record, colTags))
	t.PaymentMethod = c.get(record, colPaymentMethod)
	t.Status = c.get(record, colStatus)
	t.DeliveryType = c.get(record, colDeliveryType)
	t.StoreID = c.get(record, colStoreID)
	t.StoreLocation = c.get(record, colStoreLocation)
	t.EmployeeID = c.get(record, colEmployeeID)
	t.EmployeeName = c.get(record, colEmployeeName)

	return t, t.Validate()
}

// ParseTags splits a comma separated tag cell, tolerating surrounding quotes
func ParseTags(raw string) models.StringList {
	raw = strings.Trim(strings.TrimSpace(raw), `"`)
	if raw == "" {
		return nil
	}

	var tags models.StringList
	for _, tag := range strings.Split(raw, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

func parseDatasetDate(raw string) (time.Time, error) {
	for _, layout := range datasetDateLayouts {
		if d, err := time.Parse(layout, raw); err == nil {
			return d.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", raw)
}

func atoiOrZero(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}
