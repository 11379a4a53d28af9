package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metric names accepted by PrometheusMetrics
const (
	MetricQueryTotal      = "transaction_query"
	MetricExportedRows    = "transactions_exported"
	MetricImportedRows    = "transactions_imported"
	MetricImportBatchSize = "import_batch_size"
)

type PrometheusMetrics struct {
	queriesTotal    *prometheus.CounterVec
	queryDuration   *prometheus.HistogramVec
	exportsTotal    *prometheus.CounterVec
	exportedRows    prometheus.Histogram
	importedRows    *prometheus.CounterVec
	importBatchSize prometheus.Gauge
}

// NewPrometheusMetrics registers the service metrics with reg
func NewPrometheusMetrics(reg prometheus.Registerer) MetricsRecorderInterface {
	factory := promauto.With(reg)
	return &PrometheusMetrics{
		queriesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "transaction_queries_total",
				Help: "Total number of transaction read operations",
			},
			[]string{"operation", "status"},
		),
		queryDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "transaction_query_duration_milliseconds",
				Help:    "Transaction read duration in milliseconds",
				Buckets: prometheus.ExponentialBuckets(1, 2, 14),
			},
			[]string{"operation"},
		),
		exportsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "transaction_exports_total",
				Help: "Total number of transaction exports by format",
			},
			[]string{"format"},
		),
		exportedRows: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "transaction_export_rows",
				Help:    "Number of rows written per export",
				Buckets: prometheus.ExponentialBuckets(1, 4, 9),
			},
		),
		importedRows: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "transactions_imported_total",
				Help: "Total number of records processed by the dataset importer",
			},
			[]string{"status"},
		),
		importBatchSize: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "transaction_import_batch_size",
				Help: "Size of the most recent import batch",
			},
		),
	}
}

func (m *PrometheusMetrics) IncrementCounter(name string, tags map[string]string) {
	switch name {
	case MetricQueryTotal:
		m.queriesTotal.WithLabelValues(tags["operation"], tags["status"]).Inc()
	case MetricExportedRows:
		if format := tags["format"]; format != "" {
			m.exportsTotal.WithLabelValues(format).Inc()
		}
	}
}

// RecordProcessingTime observes the duration of the named read operation
func (m *PrometheusMetrics) RecordProcessingTime(name string, duration time.Duration) {
	m.queryDuration.WithLabelValues(name).Observe(float64(duration.Milliseconds()))
}

func (m *PrometheusMetrics) RecordGauge(name string, value float64, tags map[string]string) {
	switch name {
	case MetricExportedRows:
		m.exportedRows.Observe(value)
	case MetricImportedRows:
		status := tags["status"]
		if status == "" {
			status = "inserted"
		}
		m.importedRows.WithLabelValues(status).Add(value)
	case MetricImportBatchSize:
		m.importBatchSize.Set(value)
	}
}
