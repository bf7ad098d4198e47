package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/eyedist/backend/internal/domain/identity"
	"github.com/eyedist/backend/internal/domain/shared"
	"github.com/eyedist/backend/internal/infrastructure/config"
	"github.com/eyedist/backend/internal/infrastructure/logger"
	"github.com/eyedist/backend/internal/infrastructure/migration"
	"github.com/eyedist/backend/internal/infrastructure/persistence"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	migrationsPath string
	logLevel       string

	log *zap.Logger
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the eyedist database schema",
	Long: `migrate applies the versioned PostgreSQL schema. For mysql and sqlite
the "up" command creates tables from the GORM models instead.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		log, err = logger.New(logger.Config{Level: logLevel, Format: "console", Output: "stdout"})
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if migrationsPath == "" {
			migrationsPath = cfg.Database.MigrationsPath
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			_ = log.Sync()
		}
	},
}

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Database.Driver != "postgres" {
			db, err := persistence.NewDatabase(&cfg.Database, nil)
			if err != nil {
				return err
			}
			defer db.Close()
			log.Info("Creating tables from models", zap.String("driver", cfg.Database.Driver))
			return db.AutoMigrate(cmd.Context())
		}
		return withMigrator(func(m *migration.Migrator) error { return m.Up() })
	},
}

var downCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back all migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMigrator(func(m *migration.Migrator) error { return m.Down() })
	},
}

var stepsCmd = &cobra.Command{
	Use:   "steps N",
	Short: "Apply N migrations (negative N rolls back)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := strconv.Atoi(args[0])
		if err != nil || n == 0 {
			return fmt.Errorf("invalid step count %q", args[0])
		}
		return withMigrator(func(m *migration.Migrator) error { return m.Steps(n) })
	},
}

var gotoCmd = &cobra.Command{
	Use:   "goto VERSION",
	Short: "Migrate up or down to VERSION",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid version %q", args[0])
		}
		return withMigrator(func(m *migration.Migrator) error { return m.GoTo(uint(v)) })
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the applied schema version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMigrator(func(m *migration.Migrator) error {
			v, dirty, err := m.Version()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "version %d (dirty: %t)\n", v, dirty)
			return nil
		})
	},
}

var forceCmd = &cobra.Command{
	Use:   "force VERSION",
	Short: "Mark VERSION as applied and clear the dirty flag",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid version %q", args[0])
		}
		return withMigrator(func(m *migration.Migrator) error { return m.Force(v) })
	},
}

var createCmd = &cobra.Command{
	Use:   "create NAME [DESCRIPTION]",
	Short: "Create an empty up/down migration pair",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := migrationsPath
		if dir == "" {
			dir = "migrations"
		}
		desc := ""
		if len(args) == 2 {
			desc = args[1]
		}
		mf, err := migration.CreateMigration(dir, args[0], desc)
		if err != nil {
			return err
		}
		log.Info("Migration created", zap.String("up", mf.UpPath), zap.String("down", mf.DownPath))
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List migration files",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := migrationsPath
		if dir == "" {
			dir = "migrations"
		}
		names, err := migration.ListMigrations(dir)
		if err != nil {
			return err
		}
		for _, n := range names {
			fmt.Fprintln(cmd.OutOrStdout(), n)
		}
		return nil
	},
}

var (
	adminName     string
	adminEmail    string
	adminPassword string
)

var seedAdminCmd = &cobra.Command{
	Use:   "seed-admin",
	Short: "Create the first admin account",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if adminPassword == "" {
			adminPassword = os.Getenv("EYEDIST_ADMIN_PASSWORD")
		}
		return seedAdmin(cmd.Context(), adminName, adminEmail, adminPassword)
	},
}

func seedAdmin(ctx context.Context, name, email, password string) error {
	db, err := persistence.NewDatabase(&cfg.Database, nil)
	if err != nil {
		return err
	}
	defer db.Close()

	user, err := identity.NewUser(name, email, password, identity.RoleAdmin)
	if err != nil {
		return err
	}
	repo := persistence.NewGormUserRepository(db.DB)
	if err := repo.Create(ctx, user); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			log.Info("Admin already exists", zap.String("email", user.Email))
			return nil
		}
		return err
	}
	log.Info("Admin created", zap.String("email", user.Email), zap.String("id", user.ID.String()))
	return nil
}

func withMigrator(fn func(m *migration.Migrator) error) error {
	if cfg.Database.Driver != "postgres" {
		return fmt.Errorf("versioned migrations require postgres, configured driver is %q", cfg.Database.Driver)
	}
	db, err := persistence.NewDatabase(&cfg.Database, nil)
	if err != nil {
		return err
	}
	defer db.Close()

	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	m, err := migration.New(sqlDB, migrationsPath, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := m.Close(); err != nil {
			log.Warn("Failed to close migrator", zap.Error(err))
		}
	}()
	return fn(m)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&migrationsPath, "path", "", "migrations directory (default: embedded schema)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	seedAdminCmd.Flags().StringVar(&adminName, "name", "Administrator", "admin display name")
	seedAdminCmd.Flags().StringVar(&adminEmail, "email", "", "admin login email")
	seedAdminCmd.Flags().StringVar(&adminPassword, "password", "", "admin password (or EYEDIST_ADMIN_PASSWORD)")
	_ = seedAdminCmd.MarkFlagRequired("email")

	rootCmd.AddCommand(upCmd, downCmd, stepsCmd, gotoCmd, versionCmd, forceCmd, createCmd, listCmd, seedAdminCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
