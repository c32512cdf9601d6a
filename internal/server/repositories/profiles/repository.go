package profiles

import (
	"context"

	"github.com/dmitrijs2005/langmatch/internal/server/models"
)

// Repository stores user profiles, including the matchmaking flags.
type Repository interface {
	Create(ctx context.Context, p *models.Profile) error
	Get(ctx context.Context, id string) (*models.Profile, error)
	UpdateDetails(ctx context.Context, p *models.Profile) error
	SetPhoto(ctx context.Context, id, url, key string) error
	SetMatchState(ctx context.Context, id string, looking bool, currentMatchID string) error
	ClearMatchIfEquals(ctx context.Context, id, matchID string) (bool, error)
}
