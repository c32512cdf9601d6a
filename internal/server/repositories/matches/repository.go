package matches

import (
	"context"
	"time"

	"github.com/dmitrijs2005/langmatch/internal/server/models"
)

// Repository stores match records. Matches are never deleted.
type Repository interface {
	Create(ctx context.Context, m *models.Match) error
	Get(ctx context.Context, id string) (*models.Match, error)
	// End moves an active match to ended and reports whether it did.
	End(ctx context.Context, id string, at time.Time) (bool, error)
	SetLastMessage(ctx context.Context, id string, p *models.MessagePreview) error
	// ListByParticipant returns the user's matches, newest first.
	ListByParticipant(ctx context.Context, userID string, limit int) ([]*models.Match, error)
}
