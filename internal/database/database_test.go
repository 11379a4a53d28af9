package database

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"retail-sales-api/internal/config"
	"retail-sales-api/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"
)

func sqliteConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Database: config.DatabaseConfig{
			Driver:         DriverSQLite,
			Path:           filepath.Join(t.TempDir(), "sales.db"),
			MaxConnections: 1,
			MaxIdleConns:   1,
			AutoMigrate:    true,
		},
		Logging: config.LoggingConfig{Level: "error"},
	}
}

func TestInitialize_SQLite(t *testing.T) {
	db, err := Initialize(sqliteConfig(t))
	require.NoError(t, err)
	defer db.Close()

	assert.True(t, db.Migrator().HasTable(&models.Transaction{}))
	assert.True(t, db.Migrator().HasTable(&models.TransactionTag{}))
	assert.True(t, db.Migrator().HasIndex(&models.Transaction{}, "idx_transactions_region_status"))
	assert.NoError(t, db.HealthCheck(context.Background()))
}

func TestNew_UnsupportedDriver(t *testing.T) {
	_, err := New(&config.DatabaseConfig{Driver: "oracle"}, logger.Silent)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database driver")
}

func TestHealthCheck_Closed(t *testing.T) {
	db, err := Initialize(sqliteConfig(t))
	require.NoError(t, err)
	require.NoError(t, db.Close())

	assert.Error(t, db.HealthCheck(context.Background()))
}

func TestSeedTestTransactions_WritesTagRows(t *testing.T) {
	db := SetupTestDB(t)

	SeedTestTransactions(t, db, []models.Transaction{
		{
			TransactionID: 1,
			Date:          mustParseDate(t, "2023-03-01"),
			CustomerID:    "CUST-1",
			CustomerName:  "Asha Rao",
			Gender:        models.GenderFemale,
			Tags:          models.StringList{"gift", "sale"},
		},
	})

	var count int64
	require.NoError(t, db.Model(&models.TransactionTag{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)

	require.NoError(t, db.Model(&models.Transaction{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestGormLogLevel(t *testing.T) {
	tests := map[string]logger.LogLevel{
		"debug": logger.Info,
		"info":  logger.Warn,
		"warn":  logger.Warn,
		"error": logger.Error,
		"":      logger.Warn,
	}

	for level, want := range tests {
		t.Run(level, func(t *testing.T) {
			assert.Equal(t, want, GormLogLevel(level))
		})
	}
}

func mustParseDate(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := time.Parse(time.DateOnly, value)
	require.NoError(t, err)
	return d
}
