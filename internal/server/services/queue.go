package services

import (
	"context"

	"github.com/dmitrijs2005/langmatch/internal/common"
	"github.com/dmitrijs2005/langmatch/internal/server/events"
	"github.com/dmitrijs2005/langmatch/internal/server/metrics"
	"github.com/dmitrijs2005/langmatch/internal/server/models"
	"github.com/dmitrijs2005/langmatch/internal/server/repositories/repomanager"
)

// ToggleQueue sets whether userID is looking for a match. The profile flag
// and the queue entry change in one transaction. Turning it on again keeps
// the original place in the queue. A user in an active match cannot queue.
func (s *MatchmakingService) ToggleQueue(ctx context.Context, caller, userID string, want bool) (bool, error) {
	if err := authorize(caller, userID); err != nil {
		return false, err
	}

	err := s.withConflictRetry(ctx, "toggle_queue", func(ctx context.Context) error {
		return s.repos.WithTx(ctx, func(ctx context.Context, r repomanager.Repositories) error {
			p, err := r.Profiles().Get(ctx, userID)
			if err != nil {
				return err
			}

			if !want {
				if err := r.Profiles().SetMatchState(ctx, userID, false, p.CurrentMatchID); err != nil {
					return err
				}
				return r.Queue().Dequeue(ctx, userID)
			}

			if p.InMatch() {
				return common.ErrAlreadyMatched
			}
			if err := r.Profiles().SetMatchState(ctx, userID, true, ""); err != nil {
				return err
			}
			return r.Queue().Enqueue(ctx, &models.QueueEntry{
				UserID:           userID,
				EnqueuedAt:       s.now(),
				ProficiencyLevel: p.ProficiencyLevel,
			})
		})
	})
	if err != nil {
		s.logger.Info(ctx, "toggle queue failed", "user_id", userID, "want", want, "error", err)
		return false, err
	}

	state := "off"
	if want {
		state = "on"
	}
	metrics.QueueToggles.WithLabelValues(state).Inc()
	s.refreshQueueDepth(ctx)
	s.publish(ctx, &events.Event{Type: events.TypeQueueChanged, UserID: userID, Looking: &want, At: s.now()})
	s.logger.Debug(ctx, "queue toggled", "user_id", userID, "looking", want)

	return want, nil
}

func (s *MatchmakingService) refreshQueueDepth(ctx context.Context) {
	n, err := s.repos.Queue().Count(ctx)
	if err != nil {
		s.logger.Warn(ctx, "queue depth unavailable", "error", err)
		return
	}
	metrics.QueueDepth.Set(float64(n))
}
