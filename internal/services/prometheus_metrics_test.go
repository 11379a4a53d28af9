package services_test

import (
	"testing"
	"time"

	"retail-sales-api/internal/services"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sampleValue returns the counter, gauge or histogram sample count of the
// first series of family name whose labels include want
func sampleValue(t *testing.T, reg *prometheus.Registry, name string, want map[string]string) float64 {
	t.Helper()

	families, err := reg.Gather()
	require.NoError(t, err)

	for _, family := range families {
		if family.GetName() != name {
			continue
		}
		for _, metric := range family.GetMetric() {
			labels := map[string]string{}
			for _, pair := range metric.GetLabel() {
				labels[pair.GetName()] = pair.GetValue()
			}
			matched := true
			for k, v := range want {
				if labels[k] != v {
					matched = false
				}
			}
			if !matched {
				continue
			}
			switch {
			case metric.GetCounter() != nil:
				return metric.GetCounter().GetValue()
			case metric.GetGauge() != nil:
				return metric.GetGauge().GetValue()
			case metric.GetHistogram() != nil:
				return float64(metric.GetHistogram().GetSampleCount())
			}
		}
	}
	t.Fatalf("metric %s %v not found", name, want)
	return 0
}

func TestPrometheusMetrics_Queries(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := services.NewPrometheusMetrics(reg)

	m.IncrementCounter(services.MetricQueryTotal, map[string]string{"operation": "list", "status": "success"})
	m.IncrementCounter(services.MetricQueryTotal, map[string]string{"operation": "list", "status": "success"})
	m.IncrementCounter(services.MetricQueryTotal, map[string]string{"operation": "stats", "status": "failed"})
	m.RecordProcessingTime("list", 15*time.Millisecond)

	assert.Equal(t, 2.0, sampleValue(t, reg, "transaction_queries_total", map[string]string{"operation": "list", "status": "success"}))
	assert.Equal(t, 1.0, sampleValue(t, reg, "transaction_queries_total", map[string]string{"operation": "stats", "status": "failed"}))
	assert.Equal(t, 1.0, sampleValue(t, reg, "transaction_query_duration_milliseconds", map[string]string{"operation": "list"}))
}

func TestPrometheusMetrics_ExportAndImport(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := services.NewPrometheusMetrics(reg)

	m.IncrementCounter(services.MetricExportedRows, map[string]string{"format": "csv"})
	m.RecordGauge(services.MetricExportedRows, 120, nil)
	m.RecordGauge(services.MetricImportedRows, 900, map[string]string{"status": "inserted"})
	m.RecordGauge(services.MetricImportedRows, 4, nil)
	m.RecordGauge(services.MetricImportBatchSize, 1000, nil)

	assert.Equal(t, 1.0, sampleValue(t, reg, "transaction_exports_total", map[string]string{"format": "csv"}))
	assert.Equal(t, 1.0, sampleValue(t, reg, "transaction_export_rows", nil))
	assert.Equal(t, 904.0, sampleValue(t, reg, "transactions_imported_total", map[string]string{"status": "inserted"}))
	assert.Equal(t, 1000.0, sampleValue(t, reg, "transaction_import_batch_size", nil))
}

func TestPrometheusMetrics_SeparateRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		services.NewPrometheusMetrics(prometheus.NewRegistry())
		services.NewPrometheusMetrics(prometheus.NewRegistry())
	})
}
