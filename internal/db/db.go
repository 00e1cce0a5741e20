// Package db archives generated fields in SQLite.
package db

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/mattn/go-sqlite3"

	"github.com/VoidMesh/noise/internal/config"
	"github.com/VoidMesh/noise/internal/logging"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Open connects to the archive database and verifies the connection.
func Open(cfg config.DatabaseConfig) (*sql.DB, error) {
	logger := logging.WithComponent("db")

	logger.Debug("Opening database connection", "path", cfg.Path)
	database, err := sql.Open("sqlite3", cfg.Path+"?_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	logger.Debug("Configuring database connection pool", "max_open_conns", cfg.MaxOpenConns, "max_idle_conns", cfg.MaxIdleConns, "conn_max_lifetime", cfg.ConnMaxLifetime)
	database.SetMaxOpenConns(cfg.MaxOpenConns)
	database.SetMaxIdleConns(cfg.MaxIdleConns)
	database.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := database.Ping(); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("Database initialized", "path", cfg.Path)
	return database, nil
}

// Migrate applies the embedded schema migrations.
func Migrate(database *sql.DB) error {
	logger := logging.WithComponent("db")

	logger.Debug("Creating migration driver")
	driver, err := sqlite3.WithInstance(database, &sqlite3.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	source, err := iofs.New(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("failed to open migration source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "sqlite3", driver)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}

	// m.Close would also close database, which the caller owns.
	err = m.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if errors.Is(err, migrate.ErrNoChange) {
		logger.Debug("No new migrations to apply")
	} else {
		logger.Debug("Successfully applied migrations")
	}

	logger.Info("Database migrations completed")
	return nil
}
