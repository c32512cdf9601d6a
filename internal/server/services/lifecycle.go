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

// EndMatch leaves matchID on behalf of userID.
//
// An active match is ended for both participants: status becomes ended and
// every participant whose pointer still refers to it is released. Ending a
// match that is already over, or no longer exists, only clears the
// requester's own dangling pointer and succeeds. Non-participants get
// common.ErrorUnauthorized and nothing changes.
func (s *MatchmakingService) EndMatch(ctx context.Context, caller, userID, matchID string) error {
	if err := authorize(caller, userID); err != nil {
		return err
	}
	if matchID == "" {
		return common.ErrorValidation
	}

	var ended *models.Match
	err := s.withConflictRetry(ctx, "end_match", func(ctx context.Context) error {
		ended = nil
		return s.repos.WithTx(ctx, func(ctx context.Context, r repomanager.Repositories) error {
			m, err := r.Matches().Get(ctx, matchID)
			if errors.Is(err, common.ErrorNotFound) {
				_, err := r.Profiles().ClearMatchIfEquals(ctx, userID, matchID)
				return err
			}
			if err != nil {
				return err
			}
			if !m.HasParticipant(userID) {
				return common.ErrorUnauthorized
			}

			if m.Status != models.MatchActive {
				_, err := r.Profiles().ClearMatchIfEquals(ctx, userID, matchID)
				return err
			}

			if _, err := r.Matches().End(ctx, matchID, s.now()); err != nil {
				return err
			}
			for _, id := range m.ParticipantIDs() {
				if _, err := r.Profiles().ClearMatchIfEquals(ctx, id, matchID); err != nil {
					return err
				}
			}
			ended = m
			return nil
		})
	})
	if err != nil {
		s.logger.Info(ctx, "end match failed", "user_id", userID, "match_id", matchID, "error", err)
		return err
	}

	if ended != nil {
		metrics.MatchesEnded.Inc()
		at := s.now()
		for _, id := range ended.ParticipantIDs() {
			s.publish(ctx, &events.Event{Type: events.TypeMatchEnded, UserID: id, MatchID: matchID, PartnerID: ended.PartnerOf(id), At: at})
		}
		s.logger.Info(ctx, "match ended", "match_id", matchID, "by", userID)
	}
	return nil
}

// GetMatch returns a match to one of its participants.
func (s *MatchmakingService) GetMatch(ctx context.Context, caller, matchID string) (*models.Match, error) {
	if caller == "" {
		return nil, common.ErrorUnauthorized
	}
	m, err := s.repos.Matches().Get(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if !m.HasParticipant(caller) {
		return nil, common.ErrorUnauthorized
	}
	return m, nil
}

// ListMatches returns userID's match history, newest first.
func (s *MatchmakingService) ListMatches(ctx context.Context, caller, userID string, limit int) ([]*models.Match, error) {
	if err := authorize(caller, userID); err != nil {
		return nil, err
	}
	return s.repos.Matches().ListByParticipant(ctx, userID, clampLimit(limit))
}
