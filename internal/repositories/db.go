package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/rs/zerolog"
	sqldblogger "github.com/simukti/sqldb-logger"
	"github.com/simukti/sqldb-logger/logadapter/zerologadapter"

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
)

const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "pgx"
)

// Open connects to the configured database, runs file migrations, and wraps
// the driver so every statement is logged through zerolog.
func Open(driver, dsn, migrationsPath string, logger zerolog.Logger) (*sql.DB, error) {
	migrationDB, err := sql.Open(driver, dsn)

	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}

	if err := RunMigrations(migrationDB, driver, migrationsPath); err != nil {
		migrationDB.Close()
		return nil, err
	}

	migrationDB.Close()

	sqlDB, err := sql.Open(driver, dsn)

	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}

	db := sqldblogger.OpenDriver(dsn, sqlDB.Driver(), zerologadapter.New(logger))
	sqlDB.Close()

	db.SetMaxOpenConns(100)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	return db, nil
}

// RunMigrations applies the file migrations under path to db. Shared by the
// server startup and the test helpers (which migrate an in-memory sqlite).
func RunMigrations(db *sql.DB, driver, path string) error {
	var (
		m   *migrate.Migrate
		err error
	)

	switch driver {
	case DriverPostgres:
		pgDriver, derr := migratepg.WithInstance(db, &migratepg.Config{})

		if derr != nil {
			return fmt.Errorf("migrate driver: %w", derr)
		}

		m, err = migrate.NewWithDatabaseInstance("file://"+path, "postgres", pgDriver)
	default:
		liteDriver, derr := migratesqlite.WithInstance(db, &migratesqlite.Config{})

		if derr != nil {
			return fmt.Errorf("migrate driver: %w", derr)
		}

		m, err = migrate.NewWithDatabaseInstance("file://"+path, "sqlite3", liteDriver)
	}

	if err != nil {
		return fmt.Errorf("migrate setup: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate up: %w", err)
	}

	return nil
}

// Builder returns a squirrel statement builder with the placeholder format the
// driver expects.
func Builder(driver string) squirrel.StatementBuilderType {
	if driver == DriverPostgres {
		return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	}

	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)
}
