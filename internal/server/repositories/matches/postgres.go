// Package matches provides PostgreSQL-backed storage for matches.
package matches

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

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

const matchColumns = `id, participant_a, participant_b, name_a, name_b, photo_a, photo_b, status,
	created_at, ended_at, last_message_text, last_message_at, last_message_sender`

func (r *PostgresRepository) Create(ctx context.Context, m *models.Match) error {
	query :=
		`INSERT INTO matches (id, participant_a, participant_b, name_a, name_b, photo_a, photo_b, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 `
	a, b := m.Participants[0], m.Participants[1]
	_, err := r.db.ExecContext(ctx, query,
		m.ID, a.UserID, b.UserID, a.DisplayName, b.DisplayName, a.PhotoURL, b.PhotoURL, string(m.Status), m.CreatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE id = $1`

	m, err := scanMatch(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return m, nil
}

func (r *PostgresRepository) End(ctx context.Context, id string, at time.Time) (bool, error) {
	query :=
		`UPDATE matches SET status = 'ended', ended_at = $2
		 WHERE id = $1 AND status = 'active'
		 `
	res, err := r.db.ExecContext(ctx, query, id, at)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected error: %w", err)
	}
	return n > 0, nil
}

func (r *PostgresRepository) SetLastMessage(ctx context.Context, id string, p *models.MessagePreview) error {
	query :=
		`UPDATE matches SET last_message_text = $2, last_message_at = $3, last_message_sender = $4
		 WHERE id = $1
		 `
	res, err := r.db.ExecContext(ctx, query, id, p.Text, p.SentAt, p.SenderID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) ListByParticipant(ctx context.Context, userID string, limit int) ([]*models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches
		WHERE participant_a = $1 OR participant_b = $1
		ORDER BY created_at DESC, id
		LIMIT $2`

	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to select matches: %w", err)
	}
	defer rows.Close()

	var result []*models.Match
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanMatch(s scanner) (*models.Match, error) {
	var (
		m          models.Match
		a, b       models.Participant
		status     string
		endedAt    sql.NullTime
		lastText   sql.NullString
		lastAt     sql.NullTime
		lastSender sql.NullString
	)
	err := s.Scan(&m.ID, &a.UserID, &b.UserID, &a.DisplayName, &b.DisplayName, &a.PhotoURL, &b.PhotoURL,
		&status, &m.CreatedAt, &endedAt, &lastText, &lastAt, &lastSender)
	if err != nil {
		return nil, err
	}
	m.Participants = [2]models.Participant{a, b}
	m.Status = models.MatchStatus(status)
	if endedAt.Valid {
		t := endedAt.Time
		m.EndedAt = &t
	}
	if lastText.Valid {
		m.LastMessage = &models.MessagePreview{Text: lastText.String, SentAt: lastAt.Time, SenderID: lastSender.String}
	}
	return &m, nil
}
