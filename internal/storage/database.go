package storage

import (
	"certportal/internal/config"
	"context"
	"embed"
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// DBTX is the subset of pgxpool.Pool the query code needs.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type DatabaseProvider struct {
	pool   *pgxpool.Pool
	db     DBTX
	cfg    *config.Config
	logger *slog.Logger
}

func NewDatabaseProvider(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*DatabaseProvider, error) {
	poolCfg, err := pgxpool.ParseConfig(GetConnectionStringFromConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	dbPool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("connected to database",
		"host", cfg.Storage.Host,
		"port", cfg.Storage.Port,
		"database", cfg.Storage.Database,
	)

	return &DatabaseProvider{pool: dbPool, db: dbPool, cfg: cfg, logger: logger}, nil
}

// NewDatabaseProviderWithDB wraps an existing connection, used by tests.
func NewDatabaseProviderWithDB(db DBTX, cfg *config.Config, logger *slog.Logger) *DatabaseProvider {
	return &DatabaseProvider{db: db, cfg: cfg, logger: logger}
}

func (p *DatabaseProvider) Close() {
	if p.pool != nil {
		p.pool.Close()
	}
}

func (p *DatabaseProvider) Ping(ctx context.Context) error {
	if p.pool == nil {
		return errors.New("database pool is not initialized")
	}
	return p.pool.Ping(ctx)
}

func (p *DatabaseProvider) RunMigrations(ctx context.Context) error {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to open migrations: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, GetMigrationURLFromConfig(p.cfg))
	if err != nil {
		return fmt.Errorf("failed to initialize migrations: %w", err)
	}
	defer m.Close()

	done := make(chan error, 1)
	go func() {
		done <- m.Up()
	}()

	select {
	case <-ctx.Done():
		m.GracefulStop <- true
		<-done
		return ctx.Err()
	case err := <-done:
		if err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("failed to apply migrations: %w", err)
		}
	}

	version, dirty, _ := m.Version()
	p.logger.Info("database migrations applied", "version", version, "dirty", dirty)

	return nil
}
