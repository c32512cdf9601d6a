package messages

import (
	"context"

	"github.com/dmitrijs2005/langmatch/internal/server/models"
)

// Repository stores chat messages of a match.
type Repository interface {
	Create(ctx context.Context, m *models.ChatMessage) error
	// ListRecent returns the newest limit messages of a match, oldest first.
	ListRecent(ctx context.Context, matchID string, limit int) ([]*models.ChatMessage, error)
}
