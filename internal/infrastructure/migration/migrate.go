package migration

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/eyedist/backend/migrations"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

// Migrator applies the PostgreSQL schema with golang-migrate
type Migrator struct {
	migrate *migrate.Migrate
	logger  *zap.Logger
}

// New creates a Migrator over an open PostgreSQL connection. When dir is
// empty the schema embedded in the binary is used.
func New(db *sql.DB, dir string, logger *zap.Logger) (*Migrator, error) {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres driver: %w", err)
	}

	var m *migrate.Migrate
	if dir == "" {
		src, err := iofs.New(migrations.FS, ".")
		if err != nil {
			return nil, fmt.Errorf("failed to open embedded migrations: %w", err)
		}
		m, err = migrate.NewWithInstance("iofs", src, "postgres", driver)
		if err != nil {
			return nil, fmt.Errorf("failed to create migrate instance: %w", err)
		}
	} else {
		m, err = migrate.NewWithDatabaseInstance("file://"+dir, "postgres", driver)
		if err != nil {
			return nil, fmt.Errorf("failed to create migrate instance: %w", err)
		}
	}

	if logger == nil {
		logger = zap.NewNop()
	}
	return &Migrator{migrate: m, logger: logger}, nil
}

// Up applies every pending migration
func (m *Migrator) Up() error {
	m.logger.Info("Applying migrations")
	if err := m.migrate.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			m.logger.Info("Schema already up to date")
			return nil
		}
		return fmt.Errorf("migration up failed: %w", err)
	}
	m.logVersion("Migrations applied")
	return nil
}

// Down rolls back every migration
func (m *Migrator) Down() error {
	m.logger.Warn("Rolling back all migrations")
	if err := m.migrate.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration down failed: %w", err)
	}
	return nil
}

// Steps applies n migrations, rolling back when n is negative
func (m *Migrator) Steps(n int) error {
	m.logger.Info("Running migration steps", zap.Int("steps", n))
	if err := m.migrate.Steps(n); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			return nil
		}
		return fmt.Errorf("migration steps failed: %w", err)
	}
	m.logVersion("Migration steps completed")
	return nil
}

// GoTo migrates up or down to version
func (m *Migrator) GoTo(version uint) error {
	if err := m.migrate.Migrate(version); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration to version %d failed: %w", version, err)
	}
	m.logVersion("Migrated")
	return nil
}

// Version returns the applied version; 0 means nothing has been applied
func (m *Migrator) Version() (uint, bool, error) {
	version, dirty, err := m.migrate.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to get migration version: %w", err)
	}
	return version, dirty, nil
}

// Force records version as applied without running anything. It clears
// a dirty flag left by a failed migration.
func (m *Migrator) Force(version int) error {
	m.logger.Warn("Forcing migration version", zap.Int("version", version))
	if err := m.migrate.Force(version); err != nil {
		return fmt.Errorf("failed to force version %d: %w", version, err)
	}
	return nil
}

// Close releases the source and database handles
func (m *Migrator) Close() error {
	sourceErr, dbErr := m.migrate.Close()
	return errors.Join(sourceErr, dbErr)
}

func (m *Migrator) logVersion(msg string) {
	version, dirty, err := m.Version()
	if err != nil {
		m.logger.Warn("Could not read migration version", zap.Error(err))
		return
	}
	m.logger.Info(msg, zap.Uint("version", version), zap.Bool("dirty", dirty))
}
