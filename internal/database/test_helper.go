package database

import (
	"context"
	"testing"

	"retail-sales-api/internal/config"
	"retail-sales-api/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB opens a migrated in-memory SQLite database
func SetupTestDB(t *testing.T) *DB {
	t.Helper()

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	db, err := gorm.Open(SQLiteDialector(":memory:"), gormConfig)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	// each connection to :memory: opens its own empty database
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	testDB := &DB{
		DB: db,
		config: &config.DatabaseConfig{
			Driver:         DriverSQLite,
			Path:           ":memory:",
			MaxConnections: 1,
			MaxIdleConns:   1,
		},
	}

	if err := testDB.AutoMigrate(); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		_ = testDB.Close()
	})

	return testDB
}

// SeedTestTransactions inserts records together with their tag rows
func SeedTestTransactions(t *testing.T, db *DB, transactions []models.Transaction) {
	t.Helper()

	err := db.WithContext(context.Background()).Transaction(func(tx *gorm.DB) error {
		if err := tx.CreateInBatches(&transactions, 1000).Error; err != nil {
			return err
		}
		tags := models.TagRows(transactions)
		if len(tags) == 0 {
			return nil
		}
		return tx.CreateInBatches(&tags, 1000).Error
	})
	if err != nil {
		t.Fatalf("failed to seed test transactions: %v", err)
	}
}
