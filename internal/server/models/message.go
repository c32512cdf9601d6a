package models

import (
	"time"
	"unicode/utf8"
)

// PreviewLength is how many characters of a message are kept in a match's
// last-message preview.
const PreviewLength = 50

// ChatMessage belongs to a match.
type ChatMessage struct {
	ID                string    `json:"id"`
	MatchID           string    `json:"matchId"`
	SenderID          string    `json:"senderId"`
	SenderDisplayName string    `json:"senderDisplayName"`
	SenderPhotoURL    string    `json:"senderPhotoURL,omitempty"`
	Text              string    `json:"text"`
	CreatedAt         time.Time `json:"createdAt"`
	IsModerated       bool      `json:"isModerated"`
	ModerationReason  string    `json:"moderationReason,omitempty"`
}

// Preview builds the truncated preview stored on the match.
func (m *ChatMessage) Preview() *MessagePreview {
	return &MessagePreview{Text: Truncate(m.Text, PreviewLength), SentAt: m.CreatedAt, SenderID: m.SenderID}
}

// Truncate cuts s to n runes and appends "..." when something was removed.
func Truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n]) + "..."
}
