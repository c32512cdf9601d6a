package models

import "time"

// MatchStatus is the lifecycle state of a match. Ended is terminal.
type MatchStatus string

const (
	// MatchPending is reserved for a future accept/decline flow.
	MatchPending MatchStatus = "pending"
	MatchActive  MatchStatus = "active"
	MatchEnded   MatchStatus = "ended"
)

// Participant is a display snapshot taken when the match was created. Later
// profile edits do not change it.
type Participant struct {
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
	PhotoURL    string `json:"photoURL,omitempty"`
}

// MessagePreview is the denormalized last message shown in match lists.
type MessagePreview struct {
	Text     string    `json:"text"`
	SentAt   time.Time `json:"sentAt"`
	SenderID string    `json:"senderId"`
}

// Match pairs exactly two distinct users.
type Match struct {
	ID           string          `json:"id"`
	Participants [2]Participant  `json:"participants"`
	Status       MatchStatus     `json:"status"`
	CreatedAt    time.Time       `json:"createdAt"`
	EndedAt      *time.Time      `json:"endedAt,omitempty"`
	LastMessage  *MessagePreview `json:"lastMessage,omitempty"`
}

// HasParticipant reports whether userID is one of the two participants.
func (m *Match) HasParticipant(userID string) bool {
	return m.Participants[0].UserID == userID || m.Participants[1].UserID == userID
}

// ParticipantIDs returns both user ids in creation order.
func (m *Match) ParticipantIDs() []string {
	return []string{m.Participants[0].UserID, m.Participants[1].UserID}
}

// PartnerOf returns the other participant's id, or "" if userID is not in m.
func (m *Match) PartnerOf(userID string) string {
	switch userID {
	case m.Participants[0].UserID:
		return m.Participants[1].UserID
	case m.Participants[1].UserID:
		return m.Participants[0].UserID
	}
	return ""
}

// Clone returns a deep copy.
func (m *Match) Clone() *Match {
	c := *m
	if m.EndedAt != nil {
		t := *m.EndedAt
		c.EndedAt = &t
	}
	if m.LastMessage != nil {
		lm := *m.LastMessage
		c.LastMessage = &lm
	}
	return &c
}
