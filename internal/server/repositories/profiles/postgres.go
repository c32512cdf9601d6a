// Package profiles provides PostgreSQL-backed storage for user profiles.
package profiles

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

// PostgresRepository implements Repository over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// Create inserts a new profile. An existing id yields common.ErrorAlreadyExists.
func (r *PostgresRepository) Create(ctx context.Context, p *models.Profile) error {
	query :=
		`INSERT INTO profiles (id, email, display_name, proficiency_level, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $5)
		 ON CONFLICT (id) DO NOTHING
		 `

	res, err := r.db.ExecContext(ctx, query, p.ID, p.Email, p.DisplayName, string(p.ProficiencyLevel), p.CreatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorAlreadyExists
	}
	return nil
}

// Get loads a profile by id.
func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Profile, error) {
	query :=
		`SELECT id, email, display_name, photo_url, photo_key, bio, proficiency_level,
		        is_looking_for_match, current_match_id, created_at, updated_at
		 FROM profiles
		 WHERE id = $1
		 `

	var (
		p       models.Profile
		level   string
		matchID sql.NullString
	)
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.Email, &p.DisplayName, &p.PhotoURL, &p.PhotoKey, &p.Bio, &level,
		&p.IsLookingForMatch, &matchID, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	p.ProficiencyLevel = models.ProficiencyLevel(level)
	p.CurrentMatchID = matchID.String
	return &p, nil
}

// UpdateDetails writes the user-editable fields. Match state is left alone.
func (r *PostgresRepository) UpdateDetails(ctx context.Context, p *models.Profile) error {
	query :=
		`UPDATE profiles SET display_name = $2, bio = $3, proficiency_level = $4, updated_at = $5
		 WHERE id = $1
		 `
	return r.execOne(ctx, query, p.ID, p.DisplayName, p.Bio, string(p.ProficiencyLevel), p.UpdatedAt)
}

// SetPhoto stores the public photo URL and its object storage key.
func (r *PostgresRepository) SetPhoto(ctx context.Context, id, url, key string) error {
	query :=
		`UPDATE profiles SET photo_url = $2, photo_key = $3, updated_at = $4
		 WHERE id = $1
		 `
	return r.execOne(ctx, query, id, url, key, time.Now().UTC())
}

// SetMatchState sets the looking flag and the current match pointer in one
// statement. An empty currentMatchID clears the pointer.
func (r *PostgresRepository) SetMatchState(ctx context.Context, id string, looking bool, currentMatchID string) error {
	query :=
		`UPDATE profiles SET is_looking_for_match = $2, current_match_id = $3, updated_at = $4
		 WHERE id = $1
		 `
	return r.execOne(ctx, query, id, looking, nullString(currentMatchID), time.Now().UTC())
}

// ClearMatchIfEquals clears the match pointer only when it still refers to
// matchID. It reports whether a row changed.
func (r *PostgresRepository) ClearMatchIfEquals(ctx context.Context, id, matchID string) (bool, error) {
	query :=
		`UPDATE profiles SET current_match_id = NULL, updated_at = $3
		 WHERE id = $1 AND current_match_id = $2
		 `
	res, err := r.db.ExecContext(ctx, query, id, matchID, time.Now().UTC())
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected error: %w", err)
	}
	return n > 0, nil
}

func (r *PostgresRepository) execOne(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
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
