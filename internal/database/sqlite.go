package database

import (
	"database/sql"

	"retail-sales-api/internal/query"

	"github.com/mattn/go-sqlite3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// sqliteDriverName is go-sqlite3 with lower() replaced by query.Lower.
// The built-in lower() only maps ASCII.
const sqliteDriverName = "sqlite3_retail"

func init() {
	sql.Register(sqliteDriverName, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			return conn.RegisterFunc("lower", sqliteLower, true)
		},
	})
}

// SQLiteDialector opens dsn through the retail sqlite driver
func SQLiteDialector(dsn string) gorm.Dialector {
	return sqlite.New(sqlite.Config{
		DriverName: sqliteDriverName,
		DSN:        dsn,
	})
}

func sqliteLower(v any) any {
	switch x := v.(type) {
	case string:
		return query.Lower(x)
	case []byte:
		// NULL arrives as a nil slice
		if x == nil {
			return nil
		}
		return query.Lower(string(x))
	default:
		return v
	}
}
