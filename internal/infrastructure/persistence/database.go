package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/eyedist/backend/internal/infrastructure/config"
	"github.com/eyedist/backend/internal/infrastructure/persistence/models"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Database holds the database connection and provides methods for database operations
type Database struct {
	DB     *gorm.DB
	Driver string
}

// NewDatabase opens a connection for the configured driver. A nil logger
// silences GORM output.
func NewDatabase(cfg *config.DatabaseConfig, log gormlogger.Interface) (*Database, error) {
	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = gormlogger.Default.LogMode(gormlogger.Silent)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 log,
		SkipDefaultTransaction: true,
		PrepareStmt:            cfg.Driver != "sqlite",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Minute)
	sqlDB.SetConnMaxIdleTime(time.Duration(cfg.ConnMaxIdleTime) * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Database{DB: db, Driver: cfg.Driver}, nil
}

// Dialector returns the GORM dialector for cfg.Driver
func Dialector(cfg *config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "postgres", "":
		return postgres.Open(cfg.DSN()), nil
	case "mysql":
		return mysql.Open(cfg.DSN()), nil
	case "sqlite":
		return sqlite.Open(cfg.DSN()), nil
	}
	return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
}

// AutoMigrate creates or updates tables from the GORM models. PostgreSQL
// deployments use the versioned SQL migrations instead.
func (d *Database) AutoMigrate(ctx context.Context) error {
	return d.DB.WithContext(ctx).AutoMigrate(models.All()...)
}

// Close closes the database connection
func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.Close()
}

// Ping checks if the database connection is alive
func (d *Database) Ping(ctx context.Context) error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

// Transaction executes fn within a database transaction
func (d *Database) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return d.DB.WithContext(ctx).Transaction(fn)
}
