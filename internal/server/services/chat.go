package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/langmatch/internal/common"
	"github.com/dmitrijs2005/langmatch/internal/idgen"
	"github.com/dmitrijs2005/langmatch/internal/logging"
	"github.com/dmitrijs2005/langmatch/internal/server/config"
	"github.com/dmitrijs2005/langmatch/internal/server/events"
	"github.com/dmitrijs2005/langmatch/internal/server/metrics"
	"github.com/dmitrijs2005/langmatch/internal/server/models"
	"github.com/dmitrijs2005/langmatch/internal/server/repositories/repomanager"
)

// MaxMessageLength is the longest accepted chat message, in characters.
const MaxMessageLength = 1000

// ModerationReason is stored on messages flagged by the word filter.
const ModerationReason = "Message contains potentially inappropriate language."

var profanityList = []string{"badword1", "badword2", "scheisse", "arschloch"}

func containsProfanity(text string) bool {
	lower := strings.ToLower(text)
	for _, w := range profanityList {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

// ChatService stores messages of active matches.
type ChatService struct {
	base
	ids idgen.Generator
}

// NewChatService builds the service. ids generates message ids.
func NewChatService(rm repomanager.RepositoryManager, cfg *config.Config, ids idgen.Generator,
	pub events.Publisher, logger logging.Logger) *ChatService {
	if logger == nil {
		logger = logging.Nop{}
	}
	return &ChatService{base: newBase(rm, cfg, pub, logger.With("module", "chat")), ids: ids}
}

// SendMessage stores text in matchID and updates the match preview in the
// same transaction. Flagged messages are stored with IsModerated set.
func (s *ChatService) SendMessage(ctx context.Context, caller, matchID, text string) (*models.ChatMessage, error) {
	if caller == "" {
		return nil, common.ErrorUnauthorized
	}
	text = strings.TrimSpace(text)
	if n := utf8.RuneCountInString(text); n == 0 || n > MaxMessageLength {
		return nil, fmt.Errorf("%w: message must be 1-%d characters", common.ErrorValidation, MaxMessageLength)
	}

	var msg *models.ChatMessage
	err := s.withConflictRetry(ctx, "send_message", func(ctx context.Context) error {
		return s.repos.WithTx(ctx, func(ctx context.Context, r repomanager.Repositories) error {
			m, err := r.Matches().Get(ctx, matchID)
			if err != nil {
				return err
			}
			if !m.HasParticipant(caller) {
				return common.ErrorUnauthorized
			}
			if m.Status != models.MatchActive {
				return common.ErrMatchNotActive
			}

			sender := senderSnapshot(m, caller)
			if p, err := r.Profiles().Get(ctx, caller); err == nil {
				sender = p.Snapshot()
			} else if !errors.Is(err, common.ErrorNotFound) {
				return err
			}

			msg = &models.ChatMessage{
				ID:                s.ids.NewID(),
				MatchID:           matchID,
				SenderID:          caller,
				SenderDisplayName: sender.DisplayName,
				SenderPhotoURL:    sender.PhotoURL,
				Text:              text,
				CreatedAt:         s.now(),
			}
			if containsProfanity(text) {
				msg.IsModerated = true
				msg.ModerationReason = ModerationReason
			}

			if err := r.Messages().Create(ctx, msg); err != nil {
				return err
			}
			return r.Matches().SetLastMessage(ctx, matchID, msg.Preview())
		})
	})
	if err != nil {
		return nil, err
	}

	metrics.MessagesSent.WithLabelValues(fmt.Sprint(msg.IsModerated)).Inc()
	s.publish(ctx, &events.Event{
		Type: events.TypeMessageSent, UserID: caller, MatchID: matchID, MessageID: msg.ID,
		Preview: msg.Preview().Text, At: msg.CreatedAt,
	})
	if msg.IsModerated {
		s.logger.Warn(ctx, "message flagged", "match_id", matchID, "message_id", msg.ID)
	}
	return msg, nil
}

func senderSnapshot(m *models.Match, userID string) models.Participant {
	for _, p := range m.Participants {
		if p.UserID == userID {
			return p
		}
	}
	return models.Participant{UserID: userID, DisplayName: common.DefaultDisplayName}
}

// ListMessages returns the newest limit messages of matchID, oldest first.
// Ended matches stay readable to their participants.
func (s *ChatService) ListMessages(ctx context.Context, caller, matchID string, limit int) ([]*models.ChatMessage, error) {
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
	return s.repos.Messages().ListRecent(ctx, matchID, clampLimit(limit))
}
