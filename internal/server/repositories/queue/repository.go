package queue

import (
	"context"

	"github.com/dmitrijs2005/langmatch/internal/server/models"
)

// Repository is the matchmaking waiting list, at most one entry per user.
type Repository interface {
	// Enqueue inserts e, or refreshes the level of an existing entry while
	// keeping its original enqueue time.
	Enqueue(ctx context.Context, e *models.QueueEntry) error
	Dequeue(ctx context.Context, userID string) error
	Get(ctx context.Context, userID string) (*models.QueueEntry, error)
	// PeekOldest returns the oldest entry not owned by excludeUserID,
	// restricted to level unless it is unset. common.ErrorNotFound when empty.
	PeekOldest(ctx context.Context, excludeUserID string, level models.ProficiencyLevel) (*models.QueueEntry, error)
	SetLevel(ctx context.Context, userID string, level models.ProficiencyLevel) error
	Count(ctx context.Context) (int, error)
}
