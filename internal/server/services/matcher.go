package services

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/langmatch/internal/common"
	"github.com/dmitrijs2005/langmatch/internal/server/events"
	"github.com/dmitrijs2005/langmatch/internal/server/metrics"
	"github.com/dmitrijs2005/langmatch/internal/server/models"
	"github.com/dmitrijs2005/langmatch/internal/server/repositories/repomanager"
)

// MatchResult is the outcome of RequestMatch. Exactly one of MatchID and
// InQueue is set.
type MatchResult struct {
	MatchID string
	// InQueue means no partner was available and the requester now waits
	// in the queue.
	InQueue bool
}

// attempt is what a single pairing transaction decided.
type attempt struct {
	existing string
	queued   bool
	stale    string
	match    *models.Match
}

// RequestMatch pairs userID with the oldest eligible waiting user.
//
// A user already in a match gets that match back. With nobody to pair, the
// requester is enqueued. A queue entry whose owner is gone or already matched
// is purged and the lookup repeated, at most MatchStaleRetries times, after
// which common.ErrStaleState is returned.
func (s *MatchmakingService) RequestMatch(ctx context.Context, caller, userID string) (*MatchResult, error) {
	if err := authorize(caller, userID); err != nil {
		return nil, err
	}

	staleLeft := s.staleRetries
	for {
		var a attempt
		err := s.withConflictRetry(ctx, "request_match", func(ctx context.Context) error {
			var err error
			a, err = s.tryMatch(ctx, userID)
			return err
		})
		if err != nil {
			metrics.MatchRequests.WithLabelValues("error").Inc()
			s.logger.Info(ctx, "match request failed", "user_id", userID, "error", err)
			return nil, err
		}

		switch {
		case a.existing != "":
			metrics.MatchRequests.WithLabelValues("existing").Inc()
			return &MatchResult{MatchID: a.existing}, nil

		case a.queued:
			metrics.MatchRequests.WithLabelValues("queued").Inc()
			s.refreshQueueDepth(ctx)
			looking := true
			s.publish(ctx, &events.Event{Type: events.TypeQueueChanged, UserID: userID, Looking: &looking, At: s.now()})
			return &MatchResult{InQueue: true}, nil

		case a.stale != "":
			metrics.StaleEntriesPurged.Inc()
			s.logger.Warn(ctx, "purged stale queue entry", "user_id", userID, "stale_user_id", a.stale)
			if staleLeft == 0 {
				metrics.MatchRequests.WithLabelValues("error").Inc()
				return nil, common.ErrStaleState
			}
			staleLeft--

		default:
			m := a.match
			partner := m.PartnerOf(userID)
			metrics.MatchRequests.WithLabelValues("matched").Inc()
			metrics.MatchesCreated.Inc()
			s.refreshQueueDepth(ctx)
			s.publish(ctx,
				&events.Event{Type: events.TypeMatchCreated, UserID: userID, MatchID: m.ID, PartnerID: partner, At: m.CreatedAt},
				&events.Event{Type: events.TypeMatchCreated, UserID: partner, MatchID: m.ID, PartnerID: userID, At: m.CreatedAt},
			)
			s.logger.Info(ctx, "match created", "match_id", m.ID, "user_id", userID, "partner_id", partner)
			return &MatchResult{MatchID: m.ID}, nil
		}
	}
}

// tryMatch runs one pairing transaction.
func (s *MatchmakingService) tryMatch(ctx context.Context, userID string) (attempt, error) {
	var a attempt
	err := s.repos.WithTx(ctx, func(ctx context.Context, r repomanager.Repositories) error {
		a = attempt{}

		me, err := r.Profiles().Get(ctx, userID)
		if err != nil {
			return err
		}
		if me.InMatch() {
			a.existing = me.CurrentMatchID
			return nil
		}

		level := models.LevelUnset
		if s.byLevel {
			level = me.ProficiencyLevel
		}

		entry, err := r.Queue().PeekOldest(ctx, userID, level)
		if errors.Is(err, common.ErrorNotFound) {
			if err := r.Profiles().SetMatchState(ctx, userID, true, ""); err != nil {
				return err
			}
			if err := r.Queue().Enqueue(ctx, &models.QueueEntry{
				UserID:           userID,
				EnqueuedAt:       s.now(),
				ProficiencyLevel: me.ProficiencyLevel,
			}); err != nil {
				return err
			}
			a.queued = true
			return nil
		}
		if err != nil {
			return err
		}

		partner, err := r.Profiles().Get(ctx, entry.UserID)
		if err != nil && !errors.Is(err, common.ErrorNotFound) {
			return err
		}
		if partner == nil || partner.InMatch() {
			if err := r.Queue().Dequeue(ctx, entry.UserID); err != nil {
				return err
			}
			a.stale = entry.UserID
			return nil
		}

		now := s.now()
		m := &models.Match{
			ID:           s.ids.NewID(),
			Participants: [2]models.Participant{me.Snapshot(), partner.Snapshot()},
			Status:       models.MatchActive,
			CreatedAt:    now,
		}
		if err := r.Matches().Create(ctx, m); err != nil {
			return err
		}
		for _, id := range m.ParticipantIDs() {
			if err := r.Profiles().SetMatchState(ctx, id, false, m.ID); err != nil {
				return err
			}
			if err := r.Queue().Dequeue(ctx, id); err != nil {
				return err
			}
		}
		a.match = m
		return nil
	})
	return a, err
}
