// internal/adapters/db/migrations.go
package db

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib"
)

//go:embed migrations/*.sql
var embeddedMigrations embed.FS

// MigrationConfig holds migration configuration
type MigrationConfig struct {
	DatabaseURL string
	// SourcePath loads migrations from disk instead of the embedded set
	SourcePath       string
	TableName        string
	SchemaName       string
	ForceDirty       bool
	StatementTimeout time.Duration
}

func (c *MigrationConfig) withDefaults() MigrationConfig {
	out := *c
	if out.TableName == "" {
		out.TableName = "schema_migrations"
	}
	if out.SchemaName == "" {
		out.SchemaName = "public"
	}
	if out.StatementTimeout == 0 {
		out.StatementTimeout = 10 * time.Minute
	}
	return out
}

// Migrator applies the purchase order schema
type Migrator struct {
	m      *migrate.Migrate
	conn   *sql.DB
	config MigrationConfig
	logger *slog.Logger
}

// MigrationStatus is the schema version and the rows of the migrations table
type MigrationStatus struct {
	CurrentVersion uint               `json:"current_version"`
	IsDirty        bool               `json:"is_dirty"`
	Applied        []AppliedMigration `json:"applied"`
}

// AppliedMigration is one row of the migrations table
type AppliedMigration struct {
	Version uint `json:"version"`
	Dirty   bool `json:"dirty"`
}

// NewMigrator opens a dedicated connection and binds the migration source
func NewMigrator(ctx context.Context, config *MigrationConfig, logger *slog.Logger) (*Migrator, error) {
	if config == nil {
		return nil, errors.New("migration config is required")
	}
	cfg := config.withDefaults()

	conn, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	conn.SetMaxOpenConns(1)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := conn.PingContext(pingCtx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	m, err := bindMigrate(conn, cfg)
	if err != nil {
		conn.Close()
		return nil, err
	}

	return &Migrator{
		m:      m,
		conn:   conn,
		config: cfg,
		logger: logger.With(slog.String("component", "migrator"), slog.String("table", cfg.TableName)),
	}, nil
}

func bindMigrate(conn *sql.DB, cfg MigrationConfig) (*migrate.Migrate, error) {
	driver, err := postgres.WithInstance(conn, &postgres.Config{
		MigrationsTable:  cfg.TableName,
		SchemaName:       cfg.SchemaName,
		StatementTimeout: cfg.StatementTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres driver: %w", err)
	}

	if cfg.SourcePath != "" {
		m, err := migrate.NewWithDatabaseInstance("file://"+cfg.SourcePath, "postgres", driver)
		if err != nil {
			return nil, fmt.Errorf("failed to read migrations from %s: %w", cfg.SourcePath, err)
		}
		return m, nil
	}

	var src source.Driver
	if src, err = iofs.New(embeddedMigrations, "migrations"); err != nil {
		return nil, fmt.Errorf("failed to open embedded migrations: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("failed to create migration instance: %w", err)
	}
	return m, nil
}

// Up applies every pending migration. A dirty schema is an error unless
// ForceDirty is set, in which case the dirty version is marked clean first.
func (mg *Migrator) Up(ctx context.Context) error {
	version, dirty, err := mg.Version()
	if err != nil {
		return err
	}
	if dirty {
		if !mg.config.ForceDirty {
			return fmt.Errorf("schema is dirty at version %d", version)
		}
		mg.logger.WarnContext(ctx, "clearing dirty flag", slog.Uint64("version", uint64(version)))
		if err := mg.m.Force(int(version)); err != nil {
			return fmt.Errorf("failed to force version %d: %w", version, err)
		}
	}

	err = mg.m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		mg.logger.InfoContext(ctx, "schema up to date", slog.Uint64("version", uint64(version)))
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	if now, _, err := mg.Version(); err == nil {
		mg.logger.InfoContext(ctx, "schema migrated",
			slog.Uint64("from", uint64(version)), slog.Uint64("to", uint64(now)))
	}
	return nil
}

// Rollback reverts the given number of migrations
func (mg *Migrator) Rollback(ctx context.Context, steps int) error {
	if steps <= 0 {
		return fmt.Errorf("rollback steps must be positive, got %d", steps)
	}
	err := mg.m.Steps(-steps)
	if errors.Is(err, migrate.ErrNoChange) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to roll back %d migrations: %w", steps, err)
	}
	mg.logger.InfoContext(ctx, "schema rolled back", slog.Int("steps", steps))
	return nil
}

// Version reports the schema version, zero when nothing was applied
func (mg *Migrator) Version() (uint, bool, error) {
	version, dirty, err := mg.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to read schema version: %w", err)
	}
	return version, dirty, nil
}

// Status combines Version with the migrations table contents
func (mg *Migrator) Status(ctx context.Context) (*MigrationStatus, error) {
	version, dirty, err := mg.Version()
	if err != nil {
		return nil, err
	}
	applied, err := AppliedMigrations(ctx, mg.conn, mg.config.SchemaName, mg.config.TableName)
	if err != nil {
		return nil, err
	}
	return &MigrationStatus{CurrentVersion: version, IsDirty: dirty, Applied: applied}, nil
}

// Close releases the source and the connection
func (mg *Migrator) Close() error {
	srcErr, dbErr := mg.m.Close()
	return errors.Join(srcErr, dbErr)
}

// AppliedMigrations lists the rows of the migrations table in version order
func AppliedMigrations(ctx context.Context, conn *sql.DB, schema, table string) ([]AppliedMigration, error) {
	rows, err := conn.QueryContext(ctx,
		fmt.Sprintf(`SELECT version, dirty FROM %s.%s ORDER BY version ASC`, schema, table))
	if err != nil {
		return nil, fmt.Errorf("failed to query migrations: %w", err)
	}
	defer rows.Close()

	applied := make([]AppliedMigration, 0)
	for rows.Next() {
		var a AppliedMigration
		if err := rows.Scan(&a.Version, &a.Dirty); err != nil {
			return nil, fmt.Errorf("failed to scan migration: %w", err)
		}
		applied = append(applied, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate migrations: %w", err)
	}
	return applied, nil
}

// WithMigrator opens a migrator, runs fn and closes it
func WithMigrator(ctx context.Context, config *MigrationConfig, logger *slog.Logger, fn func(*Migrator) error) error {
	mg, err := NewMigrator(ctx, config, logger)
	if err != nil {
		return err
	}
	err = fn(mg)
	if closeErr := mg.Close(); closeErr != nil {
		logger.WarnContext(ctx, "failed to close migrator", slog.String("error", closeErr.Error()))
	}
	return err
}

// RunMigrationsWithRetry applies migrations, retrying while the database is
// still coming up. Attempt n waits 2n seconds before starting.
func RunMigrationsWithRetry(ctx context.Context, config *MigrationConfig, logger *slog.Logger, attempts int) error {
	if attempts < 1 {
		attempts = 1
	}
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			wait := time.Duration(attempt-1) * 2 * time.Second
			logger.WarnContext(ctx, "retrying migrations",
				slog.Int("attempt", attempt), slog.Duration("wait", wait), slog.String("error", lastErr.Error()))
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		}

		lastErr = WithMigrator(ctx, config, logger, func(mg *Migrator) error { return mg.Up(ctx) })
		if lastErr == nil {
			return nil
		}
	}
	return fmt.Errorf("migrations failed after %d attempts: %w", attempts, lastErr)
}
