// Package events publishes match and chat notifications so clients can
// refresh their views without polling.
//
// Subjects:
//
//	langmatch.users.{user_id}.queue      queue flag changed
//	langmatch.users.{user_id}.match      match created or ended
//	langmatch.matches.{match_id}.message message sent
package events

import (
	"context"
	"time"
)

// Event types.
const (
	TypeQueueChanged = "queue.changed"
	TypeMatchCreated = "match.created"
	TypeMatchEnded   = "match.ended"
	TypeMessageSent  = "message.sent"
)

// Event is the JSON payload published on the bus.
type Event struct {
	Type      string    `json:"type"`
	UserID    string    `json:"userId,omitempty"`
	MatchID   string    `json:"matchId,omitempty"`
	PartnerID string    `json:"partnerId,omitempty"`
	Looking   *bool     `json:"isLookingForMatch,omitempty"`
	MessageID string    `json:"messageId,omitempty"`
	Preview   string    `json:"preview,omitempty"`
	At        time.Time `json:"at"`
}

// Subject returns the subject the event is published on.
func (e *Event) Subject() string {
	switch e.Type {
	case TypeMessageSent:
		return "langmatch.matches." + e.MatchID + ".message"
	case TypeQueueChanged:
		return "langmatch.users." + e.UserID + ".queue"
	default:
		return "langmatch.users." + e.UserID + ".match"
	}
}

// Publisher delivers events. Delivery is best effort: callers log failures
// and carry on, since committed state is the source of truth.
type Publisher interface {
	Publish(ctx context.Context, e *Event) error
}

// Nop drops every event.
type Nop struct{}

func (Nop) Publish(context.Context, *Event) error { return nil }
