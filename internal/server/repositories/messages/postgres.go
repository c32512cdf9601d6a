// Package messages provides PostgreSQL-backed storage for chat messages.
package messages

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/langmatch/internal/dbx"
	"github.com/dmitrijs2005/langmatch/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, m *models.ChatMessage) error {
	query :=
		`INSERT INTO messages (id, match_id, sender_id, sender_display_name, sender_photo_url, text,
		                       created_at, is_moderated, moderation_reason)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 `
	_, err := r.db.ExecContext(ctx, query, m.ID, m.MatchID, m.SenderID, m.SenderDisplayName, m.SenderPhotoURL,
		m.Text, m.CreatedAt, m.IsModerated, m.ModerationReason)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) ListRecent(ctx context.Context, matchID string, limit int) ([]*models.ChatMessage, error) {
	query :=
		`SELECT id, match_id, sender_id, sender_display_name, sender_photo_url, text,
		        created_at, is_moderated, moderation_reason
		 FROM (
		     SELECT * FROM messages WHERE match_id = $1
		     ORDER BY created_at DESC, id DESC
		     LIMIT $2
		 ) recent
		 ORDER BY created_at, id
		 `
	rows, err := r.db.QueryContext(ctx, query, matchID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to select messages: %w", err)
	}
	defer rows.Close()

	var result []*models.ChatMessage
	for rows.Next() {
		var m models.ChatMessage
		if err := rows.Scan(&m.ID, &m.MatchID, &m.SenderID, &m.SenderDisplayName, &m.SenderPhotoURL,
			&m.Text, &m.CreatedAt, &m.IsModerated, &m.ModerationReason); err != nil {
			return nil, err
		}
		result = append(result, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
