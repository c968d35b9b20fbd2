package database

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"hotel/internal/config"
)

const sqlitePragmas = "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"

// Connect opens PostgreSQL for postgres:// DSNs and SQLite (pure Go driver)
// for anything else.
func Connect(dsn string, log *zap.Logger) (*gorm.DB, error) {
	gcfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)}

	if config.IsPostgresDSN(dsn) {
		if log != nil {
			log.Info("connecting to PostgreSQL")
		}
		db, err := gorm.Open(postgres.Open(dsn), gcfg)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(20)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
		return db, nil
	}

	if log != nil {
		log.Info("using SQLite for local development", zap.String("dsn", dsn))
	}

	db, err := gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        SQLiteDSN(dsn),
		}),
		gcfg,
	)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// One connection serializes writers; the booking check-then-insert
	// relies on it when no exclusion constraint is available.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	return db, nil
}

// SQLiteDSN turns a bare path or memory DSN into a modernc URI with foreign
// keys enabled.
func SQLiteDSN(dsn string) string {
	if strings.Contains(dsn, "_pragma=foreign_keys") {
		return dsn
	}
	if dsn == ":memory:" {
		dsn = "file::memory:"
	}
	if !strings.HasPrefix(dsn, "file:") {
		dsn = "file:" + dsn
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&" + sqlitePragmas
	}
	return dsn + "?" + sqlitePragmas
}

// MemoryDSN names a shared-cache in-memory SQLite database. Connections
// opened with the same name see the same data.
func MemoryDSN(name string) string {
	name = strings.NewReplacer("/", "_", " ", "_", "?", "_", "#", "_").Replace(name)
	return "file:" + name + "?mode=memory&cache=shared"
}

// DriverName reports the database/sql driver name behind db, using the
// names sqlx understands for placeholder rebinding.
func DriverName(db *gorm.DB) string {
	if db.Dialector.Name() == "postgres" {
		return "pgx"
	}
	return "sqlite3"
}
