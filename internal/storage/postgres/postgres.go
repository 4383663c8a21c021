// Package postgres stores characters in PostgreSQL using pgx v5, with the
// schema managed by golang-migrate.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cory-johannsen/delve/internal/config"
	"github.com/cory-johannsen/delve/migrations"
)

// connectAttempts bounds how often NewPool pings a database that is still
// starting up.
const connectAttempts = 5

// Pool owns the pgx connection pool shared by the repositories.
type Pool struct {
	db *pgxpool.Pool
}

// NewPool opens a pool sized by cfg and waits until the server answers.
//
// Postcondition: Returns a pool that has answered a ping, or an error after
// connectAttempts failed pings or when ctx ends.
func NewPool(ctx context.Context, cfg config.DatabaseConfig) (*Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("parsing database config: %w", err)
	}
	poolCfg.MaxConns = cfg.MaxConns
	poolCfg.MinConns = cfg.MinConns
	poolCfg.MaxConnLifetime = cfg.MaxConnLifetime

	db, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	backoff := 200 * time.Millisecond
	for attempt := 1; ; attempt++ {
		err = db.Ping(ctx)
		if err == nil {
			return &Pool{db: db}, nil
		}
		if attempt == connectAttempts {
			break
		}
		select {
		case <-ctx.Done():
			db.Close()
			return nil, fmt.Errorf("waiting for database: %w", ctx.Err())
		case <-time.After(backoff):
			backoff *= 2
		}
	}
	db.Close()
	return nil, fmt.Errorf("database unreachable after %d attempts: %w", connectAttempts, err)
}

// Ping reports whether the database answers within timeout.
func (p *Pool) Ping(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return p.db.Ping(ctx)
}

// DB returns the pgx pool for repositories.
func (p *Pool) DB() *pgxpool.Pool { return p.db }

// Close releases every connection. The pool is unusable afterwards.
func (p *Pool) Close() { p.db.Close() }

// NewMigrator returns a golang-migrate instance over the embedded schema
// migrations. The caller must Close it.
func NewMigrator(cfg config.DatabaseConfig) (*migrate.Migrate, error) {
	src, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return nil, fmt.Errorf("opening embedded migrations: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("creating migrator: %w", err)
	}
	return m, nil
}

// Migrate applies every pending migration.
//
// Postcondition: Returns the schema version now in place. An up-to-date
// schema is not an error.
func Migrate(cfg config.DatabaseConfig) (uint, error) {
	m, err := NewMigrator(cfg)
	if err != nil {
		return 0, err
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return 0, fmt.Errorf("applying migrations: %w", err)
	}
	version, dirty, err := m.Version()
	if err != nil {
		return 0, fmt.Errorf("reading schema version: %w", err)
	}
	if dirty {
		return version, fmt.Errorf("schema version %d is dirty", version)
	}
	return version, nil
}
