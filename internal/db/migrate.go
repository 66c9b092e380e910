package db

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"supermandi/pos-core/internal/config"
)

// RunMigrations applies every pending versioned migration under
// internal/db/migrations using golang-migrate, the versioned-schema-evolution
// collaborator AutoMigrate's doc comment defers to. AutoMigrate still runs
// first in cmd/server for fresh local environments; this is what production
// deploys actually gate on.
func (d *DB) RunMigrations(cfg *config.Config, sourcePath string) error {
	sqlDB, err := d.Gorm.DB()
	if err != nil {
		return fmt.Errorf("underlying sql.DB: %w", err)
	}

	driver, err := postgres.WithInstance(sqlDB, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("migrate driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance("file://"+sourcePath, cfg.DBName, driver)
	if err != nil {
		return fmt.Errorf("migrate init: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate up: %w", err)
	}
	return nil
}
