package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"retail-sales-api/internal/models"
	"retail-sales-api/internal/query"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

var (
	ErrTransactionNotFound = errors.New("transaction not found")
)

// BatchSize is the number of rows written per INSERT when loading records
const BatchSize = 1000

// transactionRepository implements TransactionRepositoryInterface
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *gorm.DB) TransactionRepositoryInterface {
	return &transactionRepository{
		db: db,
	}
}

func (r *transactionRepository) matched(ctx context.Context, pred query.Predicate) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.Transaction{}).Scopes(matching(pred))
}

// CreateBatch inserts records and their tag lookup rows in a single database transaction
func (r *transactionRepository) CreateBatch(ctx context.Context, transactions []models.Transaction) error {
	if len(transactions) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.CreateInBatches(&transactions, BatchSize).Error; err != nil {
			return fmt.Errorf("failed to create batch transactions: %w", err)
		}

		tags := models.TagRows(transactions)
		if len(tags) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(&tags, BatchSize).Error; err != nil {
			return fmt.Errorf("failed to create transaction tags: %w", err)
		}
		return nil
	})
}

// GetByTransactionID retrieves a transaction by its public identifier
func (r *transactionRepository) GetByTransactionID(ctx context.Context, transactionID int64) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := r.db.WithContext(ctx).Where("transaction_id = ?", transactionID).First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return &transaction, nil
}

// List retrieves one page of matching transactions and the total match count
func (r *transactionRepository) List(ctx context.Context, pred query.Predicate, sort query.Sort, page query.Page) ([]models.Transaction, int64, error) {
	var transactions []models.Transaction
	var total int64

	if err := r.matched(ctx, pred).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions: %w", err)
	}

	if total == 0 || int64(page.Offset) >= total {
		return []models.Transaction{}, total, nil
	}

	if err := r.matched(ctx, pred).
		Clauses(ordering(sort)).
		Offset(page.Offset).Limit(page.Limit).
		Find(&transactions).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to get transactions: %w", err)
	}

	return transactions, total, nil
}

// Export streams up to limit matching transactions in sort order to fn
func (r *transactionRepository) Export(ctx context.Context, pred query.Predicate, sort query.Sort, limit int, fn func(*models.Transaction) error) error {
	db := r.matched(ctx, pred).Clauses(ordering(sort))
	if limit > 0 {
		db = db.Limit(limit)
	}

	rows, err := db.Rows()
	if err != nil {
		return fmt.Errorf("failed to export transactions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var transaction models.Transaction
		if err := r.db.ScanRows(rows, &transaction); err != nil {
			return fmt.Errorf("failed to scan exported transaction: %w", err)
		}
		if err := fn(&transaction); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to read exported transactions: %w", err)
	}
	return nil
}

type rangeRow struct {
	Min decimal.NullDecimal
	Max decimal.NullDecimal
}

func (rr rangeRow) orDefault(def models.NumericRange) models.NumericRange {
	if !rr.Min.Valid || !rr.Max.Valid {
		return def
	}
	return models.NumericRange{Min: rr.Min.Decimal, Max: rr.Max.Decimal}
}

// GetFilterOptions collects the distinct values offered as filter choices
func (r *transactionRepository) GetFilterOptions(ctx context.Context) (*models.FilterOptions, error) {
	opts := &models.FilterOptions{}
	g, gctx := errgroup.WithContext(ctx)

	distinct := map[string]*[]string{
		"region":           &opts.Regions,
		"gender":           &opts.Genders,
		"payment_method":   &opts.PaymentMethods,
		"status":           &opts.Statuses,
		"product_category": &opts.ProductCategories,
		"delivery_type":    &opts.DeliveryTypes,
		"store_location":   &opts.StoreLocations,
	}
	for col, dest := range distinct {
		g.Go(func() error {
			*dest = []string{}
			if err := r.db.WithContext(gctx).Model(&models.Transaction{}).
				Distinct(col).Order(col).Pluck(col, dest).Error; err != nil {
				return fmt.Errorf("failed to get distinct %s: %w", col, err)
			}
			return nil
		})
	}

	g.Go(func() error {
		opts.Tags = []string{}
		if err := r.db.WithContext(gctx).Model(&models.TransactionTag{}).
			Distinct("tag").Order("tag").Pluck("tag", &opts.Tags).Error; err != nil {
			return fmt.Errorf("failed to get distinct tags: %w", err)
		}
		return nil
	})

	var ages, amounts rangeRow
	g.Go(func() error {
		if err := r.db.WithContext(gctx).Model(&models.Transaction{}).
			Select("MIN(age) AS min, MAX(age) AS max").Scan(&ages).Error; err != nil {
			return fmt.Errorf("failed to get age range: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		if err := r.db.WithContext(gctx).Model(&models.Transaction{}).
			Select("MIN(amount) AS min, MAX(amount) AS max").Scan(&amounts).Error; err != nil {
			return fmt.Errorf("failed to get amount range: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, dest := range distinct {
		if *dest == nil {
			*dest = []string{}
		}
	}
	if opts.Tags == nil {
		opts.Tags = []string{}
	}
	opts.AgeRange = ages.orDefault(models.DefaultAgeRange)
	opts.AmountRange = amounts.orDefault(models.DefaultAmountRange)
	return opts, nil
}

type totalsRow struct {
	TotalTransactions int64
	TotalRevenue      decimal.Decimal
	TotalQuantity     int64
	TotalDiscount     decimal.Decimal
}

// GetStats aggregates totals and breakdowns over the matching transactions
func (r *transactionRepository) GetStats(ctx context.Context, pred query.Predicate) (*models.TransactionStats, error) {
	stats := &models.TransactionStats{
		StatusBreakdown:   []models.StatusBreakdown{},
		CategoryBreakdown: []models.CategoryBreakdown{},
		RegionBreakdown:   []models.RegionBreakdown{},
	}
	var totals totalsRow

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := r.matched(gctx, pred).
			Select(`COUNT(*) AS total_transactions,
				COALESCE(SUM(final_amount), 0) AS total_revenue,
				COALESCE(SUM(quantity), 0) AS total_quantity,
				COALESCE(SUM(amount - final_amount), 0) AS total_discount`).
			Scan(&totals).Error; err != nil {
			return fmt.Errorf("failed to get transaction totals: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		if err := r.matched(gctx, pred).
			Select("status, COUNT(*) AS count, COALESCE(SUM(final_amount), 0) AS revenue").
			Group("status").
			Order("count DESC, status").
			Scan(&stats.StatusBreakdown).Error; err != nil {
			return fmt.Errorf("failed to get status breakdown: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		if err := r.matched(gctx, pred).
			Select("product_category AS category, COUNT(*) AS count, COALESCE(SUM(final_amount), 0) AS revenue").
			Group("product_category").
			Order("revenue DESC, category").
			Limit(models.MaxCategoryBreakdown).
			Scan(&stats.CategoryBreakdown).Error; err != nil {
			return fmt.Errorf("failed to get category breakdown: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		if err := r.matched(gctx, pred).
			Select("region, COUNT(*) AS count, COALESCE(SUM(final_amount), 0) AS revenue").
			Group("region").
			Order("revenue DESC, region").
			Scan(&stats.RegionBreakdown).Error; err != nil {
			return fmt.Errorf("failed to get region breakdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats.TotalTransactions = totals.TotalTransactions
	stats.TotalRevenue = totals.TotalRevenue.Round(2)
	stats.TotalQuantity = totals.TotalQuantity
	stats.TotalDiscount = totals.TotalDiscount.Round(2)
	for i := range stats.StatusBreakdown {
		stats.StatusBreakdown[i].Revenue = stats.StatusBreakdown[i].Revenue.Round(2)
	}
	for i := range stats.CategoryBreakdown {
		stats.CategoryBreakdown[i].Revenue = stats.CategoryBreakdown[i].Revenue.Round(2)
	}
	for i := range stats.RegionBreakdown {
		stats.RegionBreakdown[i].Revenue = stats.RegionBreakdown[i].Revenue.Round(2)
	}
	stats.ComputeAverage()

	return stats, nil
}

// Count returns the number of stored transactions
func (r *transactionRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Transaction{}).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	return total, nil
}

// MaxTransactionID returns the highest stored transaction ID, or 0 when empty
func (r *transactionRepository) MaxTransactionID(ctx context.Context) (int64, error) {
	var highest sql.NullInt64
	err := r.db.WithContext(ctx).Model(&models.Transaction{}).
		Select("MAX(transaction_id)").
		Scan(&highest).Error
	if err != nil {
		return 0, fmt.Errorf("failed to read max transaction id: %w", err)
	}
	return highest.Int64, nil
}
