package database

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"retail-sales-api/internal/config"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fastRetries shortens the readiness loop for the duration of a test
func fastRetries(t *testing.T, retries int) {
	t.Helper()
	originalRetries := maxRetries
	originalInterval := retryInterval
	maxRetries = retries
	retryInterval = 10 * time.Millisecond
	t.Cleanup(func() {
		maxRetries = originalRetries
		retryInterval = originalInterval
	})
}

func seedingRunner(t *testing.T, seedsPath string) (*MigrationRunner, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewMigrationRunner(db, &config.DatabaseConfig{
		SeedDatabase: true,
		SeedsPath:    seedsPath,
	}), mock
}

func TestNewMigrationRunner_Defaults(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	runner := NewMigrationRunner(db, nil)

	assert.NotNil(t, runner)
	assert.Equal(t, db, runner.db)
	assert.Equal(t, defaultMigrationsPath, runner.migrationsPath)
	assert.Equal(t, defaultSeedsPath, runner.seedsPath)
	assert.False(t, runner.seed)
}

func TestNewMigrationRunner_FromConfig(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	runner := NewMigrationRunner(db, &config.DatabaseConfig{
		MigrationsPath: "custom/migrations",
		SeedsPath:      "custom/seeds",
		SeedDatabase:   true,
	})

	assert.Equal(t, "custom/migrations", runner.migrationsPath)
	assert.Equal(t, "custom/seeds", runner.seedsPath)
	assert.True(t, runner.seed)
}

func TestWaitForDatabase_Success(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectPing().WillReturnError(nil)

	err = NewMigrationRunner(db, nil).WaitForDatabase()

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWaitForDatabase_FailureThenSuccess(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()
	fastRetries(t, 2)

	mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	mock.ExpectPing().WillReturnError(nil)

	err = NewMigrationRunner(db, nil).WaitForDatabase()

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWaitForDatabase_AlwaysFails(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()
	fastRetries(t, 2)

	for i := 0; i < maxRetries; i++ {
		mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	}

	err = NewMigrationRunner(db, nil).WaitForDatabase()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "database not ready after")
}

func TestRunMigrations_DirectoryNotFound(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	runner := NewMigrationRunner(db, &config.DatabaseConfig{
		MigrationsPath: "/nonexistent/path/to/migrations",
	})

	err = runner.RunMigrations()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "migrations directory not found")
}

func TestLoadSeeds_Disabled(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "001_sales.sql"), []byte("INSERT INTO transactions VALUES (1);"), 0644))

	runner := NewMigrationRunner(db, &config.DatabaseConfig{SeedsPath: dir})

	assert.NoError(t, runner.LoadSeeds())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadSeeds_DirectoryNotFound(t *testing.T) {
	runner, _ := seedingRunner(t, "/nonexistent/seeds/path")

	assert.NoError(t, runner.LoadSeeds())
}

func TestLoadSeeds_NoSeedFiles(t *testing.T) {
	runner, mock := seedingRunner(t, t.TempDir())

	assert.NoError(t, runner.LoadSeeds())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadSeeds_SuccessfulExecution(t *testing.T) {
	dir := t.TempDir()
	seed := `
INSERT INTO transactions (transaction_id, date, customer_id, customer_name)
VALUES (1, '2023-01-15', 'CUST-0001', 'Neha Shah')
ON CONFLICT (transaction_id) DO NOTHING;
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "001_sales.sql"), []byte(seed), 0644))

	runner, mock := seedingRunner(t, dir)
	mock.ExpectExec("INSERT INTO transactions").WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, runner.LoadSeeds())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadSeeds_ExecutionFailureIsContinued(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "001_bad.sql"), []byte("INSERT INTO nonexistent_table VALUES (1);"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "002_tags.sql"), []byte("INSERT INTO transaction_tags VALUES (1, 1, 'gift');"), 0644))

	runner, mock := seedingRunner(t, dir)
	mock.ExpectExec("INSERT INTO nonexistent_table").WillReturnError(errors.New("table does not exist"))
	mock.ExpectExec("INSERT INTO transaction_tags").WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, runner.LoadSeeds())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadSeeds_ReadFileError(t *testing.T) {
	dir := t.TempDir()
	// a directory matching the glob cannot be read as a file
	require.NoError(t, os.Mkdir(filepath.Join(dir, "001_invalid.sql"), 0755))

	runner, _ := seedingRunner(t, dir)

	err := runner.LoadSeeds()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read seed file")
}

func TestGetMigrationStatus_DirectoryNotFound(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	runner := NewMigrationRunner(db, &config.DatabaseConfig{MigrationsPath: "/nonexistent/migrations"})

	_, _, err = runner.GetMigrationStatus()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "migrations directory not found")
}

func TestRunMigrations_DatabaseNotReady(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()
	fastRetries(t, 2)

	for i := 0; i < maxRetries; i++ {
		mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	}

	err = RunMigrations(db, &config.DatabaseConfig{})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "database readiness check failed")
}

func TestRunMigrations_MissingDirectoryAfterReady(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectPing().WillReturnError(nil)

	err = RunMigrations(db, &config.DatabaseConfig{MigrationsPath: filepath.Join(t.TempDir(), "missing")})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "migration execution failed")
}
