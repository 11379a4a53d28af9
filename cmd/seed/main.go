// Command seed loads transactions into the configured database, either from
// the source CSV dataset or from the synthetic generator.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"retail-sales-api/internal/config"
	"retail-sales-api/internal/database"
	"retail-sales-api/internal/repositories"
	"retail-sales-api/internal/services"

	"github.com/prometheus/client_golang/prometheus"
)

const defaultMaxRecords = 100000

type options struct {
	file       string
	generate   int
	seed       int64
	batchSize  int
	maxRecords int
	from       string
	to         string
}

func main() {
	var opts options
	flag.StringVar(&opts.file, "file", "", "CSV dataset to import")
	flag.IntVar(&opts.generate, "generate", 0, "number of synthetic transactions to generate instead of importing")
	flag.Int64Var(&opts.seed, "seed", 0, "generator seed; 0 uses the clock")
	flag.IntVar(&opts.batchSize, "batch", repositories.BatchSize, "rows per insert batch")
	flag.IntVar(&opts.maxRecords, "max", defaultMaxRecords, "maximum rows to import; 0 imports everything")
	flag.StringVar(&opts.from, "from", "2021-01-01", "first sale date for generated records")
	flag.StringVar(&opts.to, "to", "2023-12-31", "last sale date for generated records")
	flag.Parse()

	if err := run(opts); err != nil {
		slog.Error("seed failed", "error", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	if (opts.file == "") == (opts.generate <= 0) {
		return errors.New("exactly one of -file or -generate is required")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := cfg.NewLogger(os.Stdout)
	slog.SetDefault(logger)

	db, err := database.Initialize(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo := repositories.NewTransactionRepository(db.DB)
	metrics := services.NewPrometheusMetrics(prometheus.NewRegistry())

	if opts.file != "" {
		return importFile(ctx, repo, metrics, opts)
	}
	return generate(ctx, repo, metrics, opts)
}

func importFile(ctx context.Context, repo repositories.TransactionRepositoryInterface, metrics services.MetricsRecorderInterface, opts options) error {
	f, err := os.Open(opts.file)
	if err != nil {
		return fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	importer := services.NewDatasetImporter(repo, metrics, opts.batchSize, opts.maxRecords)
	result, err := importer.Import(ctx, f)
	if err != nil {
		return err
	}

	slog.Info("import complete",
		"read", result.Read,
		"inserted", result.Inserted,
		"skipped", result.Skipped,
		"failed", result.Failed,
		"duration", result.Duration,
	)
	return nil
}

func generate(ctx context.Context, repo repositories.TransactionRepositoryInterface, metrics services.MetricsRecorderInterface, opts options) error {
	from, err := time.Parse(time.DateOnly, opts.from)
	if err != nil {
		return fmt.Errorf("invalid -from: %w", err)
	}
	to, err := time.Parse(time.DateOnly, opts.to)
	if err != nil {
		return fmt.Errorf("invalid -to: %w", err)
	}

	lastID, err := repo.MaxTransactionID(ctx)
	if err != nil {
		return err
	}

	gen := services.NewTransactionGenerator(opts.seed)
	if opts.batchSize < 1 {
		opts.batchSize = repositories.BatchSize
	}

	nextID := lastID + 1
	for remaining := opts.generate; remaining > 0; {
		if err := ctx.Err(); err != nil {
			return err
		}

		n := min(remaining, opts.batchSize)
		if err := repo.CreateBatch(ctx, gen.Generate(nextID, n, from, to)); err != nil {
			return err
		}
		metrics.RecordGauge(services.MetricImportedRows, float64(n), nil)

		nextID += int64(n)
		remaining -= n
	}

	slog.Info("generation complete", "inserted", opts.generate, "first_id", lastID+1)
	return nil
}
