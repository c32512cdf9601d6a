// Package repomanager provides the RepositoryManager abstraction and its
// PostgreSQL implementation, wiring repository constructors, serializable
// transactions and database migrations (via goose).
package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/langmatch/internal/common"
	"github.com/dmitrijs2005/langmatch/internal/dbx"
	"github.com/dmitrijs2005/langmatch/internal/server/migrations"
	"github.com/dmitrijs2005/langmatch/internal/server/repositories/matches"
	"github.com/dmitrijs2005/langmatch/internal/server/repositories/messages"
	"github.com/dmitrijs2005/langmatch/internal/server/repositories/profiles"
	"github.com/dmitrijs2005/langmatch/internal/server/repositories/queue"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// pgRepositories binds PostgreSQL repositories to a DBTX.
type pgRepositories struct {
	db dbx.DBTX
}

func (r *pgRepositories) Profiles() profiles.Repository { return profiles.NewPostgresRepository(r.db) }
func (r *pgRepositories) Queue() queue.Repository       { return queue.NewPostgresRepository(r.db) }
func (r *pgRepositories) Matches() matches.Repository   { return matches.NewPostgresRepository(r.db) }
func (r *pgRepositories) Messages() messages.Repository { return messages.NewPostgresRepository(r.db) }

// PostgresRepositoryManager vends PostgreSQL-backed repository implementations
// and exposes a schema migration hook.
type PostgresRepositoryManager struct {
	pgRepositories
	sqlDB *sql.DB
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations sets up goose with the embedded migrations and runs them
// against the manager's database.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	if err := gooseUpContext(ctx, m.sqlDB, "."); err != nil {
		return err
	}
	return nil
}

// WithTx runs fn inside a SERIALIZABLE transaction. Serialization failures
// and deadlocks are reported as common.ErrTxConflict.
func (m *PostgresRepositoryManager) WithTx(ctx context.Context, fn func(ctx context.Context, r Repositories) error) error {
	err := dbx.WithTx(ctx, m.sqlDB, dbx.Serializable, func(ctx context.Context, tx dbx.DBTX) error {
		return fn(ctx, &pgRepositories{db: tx})
	})
	if err != nil && dbx.IsSerializationFailure(err) {
		return fmt.Errorf("%w: %v", common.ErrTxConflict, err)
	}
	return err
}

// NewPostgresRepositoryManager constructs a PostgreSQL-backed RepositoryManager.
func NewPostgresRepositoryManager(db *sql.DB) (RepositoryManager, error) {
	return &PostgresRepositoryManager{pgRepositories: pgRepositories{db: db}, sqlDB: db}, nil
}
