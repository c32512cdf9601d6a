package grpc

import (
	"github.com/dmitrijs2005/langmatch/internal/rpc"
	"github.com/dmitrijs2005/langmatch/internal/server/models"
)

func profileToRPC(p *models.Profile) *rpc.Profile {
	if p == nil {
		return nil
	}
	return &rpc.Profile{
		ID:                p.ID,
		Email:             p.Email,
		DisplayName:       p.DisplayName,
		PhotoURL:          p.PhotoURL,
		Bio:               p.Bio,
		ProficiencyLevel:  string(p.ProficiencyLevel),
		IsLookingForMatch: p.IsLookingForMatch,
		CurrentMatchID:    p.CurrentMatchID,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

func matchToRPC(m *models.Match) *rpc.Match {
	out := &rpc.Match{
		ID:        m.ID,
		Status:    string(m.Status),
		CreatedAt: m.CreatedAt,
		EndedAt:   m.EndedAt,
	}
	for _, p := range m.Participants {
		out.Participants = append(out.Participants, rpc.Participant(p))
	}
	if m.LastMessage != nil {
		out.LastMessage = &rpc.MessagePreview{
			Text:     m.LastMessage.Text,
			SentAt:   m.LastMessage.SentAt,
			SenderID: m.LastMessage.SenderID,
		}
	}
	return out
}

func matchesToRPC(ms []*models.Match) []*rpc.Match {
	out := make([]*rpc.Match, 0, len(ms))
	for _, m := range ms {
		out = append(out, matchToRPC(m))
	}
	return out
}

func messageToRPC(m *models.ChatMessage) *rpc.Message {
	return &rpc.Message{
		ID:                m.ID,
		MatchID:           m.MatchID,
		SenderID:          m.SenderID,
		SenderDisplayName: m.SenderDisplayName,
		SenderPhotoURL:    m.SenderPhotoURL,
		Text:              m.Text,
		CreatedAt:         m.CreatedAt,
		IsModerated:       m.IsModerated,
		ModerationReason:  m.ModerationReason,
	}
}

func messagesToRPC(ms []*models.ChatMessage) []*rpc.Message {
	out := make([]*rpc.Message, 0, len(ms))
	for _, m := range ms {
		out = append(out, messageToRPC(m))
	}
	return out
}
