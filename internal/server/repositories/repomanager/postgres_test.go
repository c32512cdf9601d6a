package repomanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/langmatch/internal/common"
	"github.com/dmitrijs2005/langmatch/internal/server/repositories/matches"
	"github.com/dmitrijs2005/langmatch/internal/server/repositories/messages"
	"github.com/dmitrijs2005/langmatch/internal/server/repositories/profiles"
	"github.com/dmitrijs2005/langmatch/internal/server/repositories/queue"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

func newManager(t *testing.T, db *sql.DB) *PostgresRepositoryManager {
	t.Helper()
	m, err := NewPostgresRepositoryManager(db)
	require.NoError(t, err)
	return m.(*PostgresRepositoryManager)
}

func TestFactories_ReturnConcreteRepos(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	m := newManager(t, db)

	var _ profiles.Repository = m.Profiles()
	var _ queue.Repository = m.Queue()
	var _ matches.Repository = m.Matches()
	var _ messages.Repository = m.Messages()

	assert.IsType(t, &profiles.PostgresRepository{}, m.Profiles())
	assert.IsType(t, &queue.PostgresRepository{}, m.Queue())
	assert.IsType(t, &matches.PostgresRepository{}, m.Matches())
	assert.IsType(t, &messages.PostgresRepository{}, m.Messages())
}

func TestWithTx_Commit(t *testing.T) {
	db, mock := newDB(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM queue_entries").WithArgs("u1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	m := newManager(t, db)
	err := m.WithTx(context.Background(), func(ctx context.Context, r Repositories) error {
		return r.Queue().Dequeue(ctx, "u1")
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTx_RollbackOnError(t *testing.T) {
	db, mock := newDB(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	m := newManager(t, db)
	boom := errors.New("boom")
	err := m.WithTx(context.Background(), func(ctx context.Context, r Repositories) error {
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTx_SerializationFailureIsConflict(t *testing.T) {
	db, mock := newDB(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectCommit().WillReturnError(&pgconn.PgError{Code: "40001", Message: "could not serialize access"})

	m := newManager(t, db)
	err := m.WithTx(context.Background(), func(ctx context.Context, r Repositories) error {
		return nil
	})
	assert.ErrorIs(t, err, common.ErrTxConflict)
}

func TestWithTx_DeadlockInsideFnIsConflict(t *testing.T) {
	db, mock := newDB(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM queue_entries").WillReturnError(&pgconn.PgError{Code: "40P01"})
	mock.ExpectRollback()

	m := newManager(t, db)
	err := m.WithTx(context.Background(), func(ctx context.Context, r Repositories) error {
		return r.Queue().Dequeue(ctx, "u1")
	})
	assert.ErrorIs(t, err, common.ErrTxConflict)
}

func TestRunMigrations_Success(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	orig := gooseUpContext
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		if dir != "." {
			return errors.New("unexpected dir")
		}
		if len(opts) != 0 {
			return errors.New("unexpected opts")
		}
		return nil
	}
	defer func() { gooseUpContext = orig }()

	if err := newManager(t, db).RunMigrations(context.Background()); err != nil {
		t.Fatalf("RunMigrations error: %v", err)
	}
}

func TestRunMigrations_Error(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	orig := gooseUpContext
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return errors.New("boom")
	}
	defer func() { gooseUpContext = orig }()

	if err := newManager(t, db).RunMigrations(context.Background()); err == nil || err.Error() != "boom" {
		t.Fatalf("expected boom, got %v", err)
	}
}
