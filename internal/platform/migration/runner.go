// Copyright (c) 2026 Inkwell. All rights reserved.

// Package migration runs schema migrations at application startup.
package migration

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// Run applies all pending "up" migrations from the given directory.
//
// A database with no pending migrations is not an error.
func Run(databaseURL, migrationPath string, logger *slog.Logger) error {
	sourceURL := fmt.Sprintf("file://%s", migrationPath)

	// golang-migrate selects its driver by URL scheme; the pgx v5 driver
	// registers itself as "pgx5".
	migrateURL := databaseURL
	if strings.HasPrefix(migrateURL, "postgres://") {
		migrateURL = "pgx5://" + strings.TrimPrefix(migrateURL, "postgres://")
	} else if strings.HasPrefix(migrateURL, "postgresql://") {
		migrateURL = "pgx5://" + strings.TrimPrefix(migrateURL, "postgresql://")
	}

	migrator, err := migrate.New(sourceURL, migrateURL)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	defer func() {
		sourceErr, databaseErr := migrator.Close()
		if sourceErr != nil {
			logger.Warn("migration_source_close_failed", slog.Any("error", sourceErr))
		}
		if databaseErr != nil {
			logger.Warn("migration_database_close_failed", slog.Any("error", databaseErr))
		}
	}()

	migrator.Log = &migrateLogger{logger: logger}

	if err := migrator.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Info("migrations_up_to_date")
			return nil
		}
		return fmt.Errorf("apply migrations: %w", err)
	}

	version, dirty, err := migrator.Version()
	if err != nil {
		return fmt.Errorf("read migration version: %w", err)
	}

	logger.Info("migrations_applied",
		slog.Uint64("version", uint64(version)),
		slog.Bool("dirty", dirty),
	)

	return nil
}

// migrateLogger bridges golang-migrate's logger interface to slog.
type migrateLogger struct {
	logger *slog.Logger
}

func (m *migrateLogger) Printf(format string, v ...interface{}) {
	m.logger.Info("migrate", slog.String("message", strings.TrimSpace(fmt.Sprintf(format, v...))))
}

func (m *migrateLogger) Verbose() bool {
	return false
}
