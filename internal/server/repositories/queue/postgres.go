// Package queue provides PostgreSQL-backed storage for the matchmaking queue.
package queue

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/langmatch/internal/common"
	"github.com/dmitrijs2005/langmatch/internal/dbx"
	"github.com/dmitrijs2005/langmatch/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Enqueue(ctx context.Context, e *models.QueueEntry) error {
	query :=
		`INSERT INTO queue_entries (user_id, enqueued_at, proficiency_level)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (user_id) DO UPDATE SET proficiency_level = EXCLUDED.proficiency_level
		 `
	if _, err := r.db.ExecContext(ctx, query, e.UserID, e.EnqueuedAt, string(e.ProficiencyLevel)); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Dequeue(ctx context.Context, userID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM queue_entries WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Get(ctx context.Context, userID string) (*models.QueueEntry, error) {
	query :=
		`SELECT user_id, enqueued_at, proficiency_level FROM queue_entries
		 WHERE user_id = $1
		 `
	return r.scanOne(r.db.QueryRowContext(ctx, query, userID))
}

// PeekOldest locks the returned row so a concurrent matcher blocks on it
// instead of pairing the same partner.
func (r *PostgresRepository) PeekOldest(ctx context.Context, excludeUserID string, level models.ProficiencyLevel) (*models.QueueEntry, error) {
	query :=
		`SELECT user_id, enqueued_at, proficiency_level FROM queue_entries
		 WHERE user_id <> $1 AND ($2 = '' OR proficiency_level = $2)
		 ORDER BY enqueued_at, user_id
		 LIMIT 1
		 FOR UPDATE
		 `
	return r.scanOne(r.db.QueryRowContext(ctx, query, excludeUserID, string(level)))
}

func (r *PostgresRepository) SetLevel(ctx context.Context, userID string, level models.ProficiencyLevel) error {
	query := `UPDATE queue_entries SET proficiency_level = $2 WHERE user_id = $1`
	if _, err := r.db.ExecContext(ctx, query, userID, string(level)); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM queue_entries`).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func (r *PostgresRepository) scanOne(row *sql.Row) (*models.QueueEntry, error) {
	var (
		e     models.QueueEntry
		level string
	)
	if err := row.Scan(&e.UserID, &e.EnqueuedAt, &level); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	e.ProficiencyLevel = models.ProficiencyLevel(level)
	return &e, nil
}
