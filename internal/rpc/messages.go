package rpc

import (
	"time"

	"github.com/dmitrijs2005/langmatch/internal/common"
)

// Result is the discriminated outcome shared by the core queue and match
// calls. Domain failures are reported here instead of as gRPC errors.
type Result struct {
	Success   bool        `json:"success"`
	Error     string      `json:"error,omitempty"`
	ErrorKind common.Kind `json:"errorKind,omitempty"`
}

// Err turns a failed result back into an error matching the kind's sentinel.
func (r *Result) Err() error {
	if r.ErrorKind == common.KindNone {
		return nil
	}
	return &KindError{Kind: r.ErrorKind, Message: r.Error}
}

type PingRequest struct{}

type PingResponse struct {
	Status string `json:"status"`
}

type ToggleQueueRequest struct {
	UserID string `json:"userId"`
	Want   bool   `json:"want"`
}

type ToggleQueueResponse struct {
	Result
	IsLookingForMatch bool `json:"isLookingForMatch"`
}

type RequestMatchRequest struct {
	UserID string `json:"userId"`
}

// RequestMatchResponse carries a match id on success. InQueue with no
// error means nobody was available and the caller now waits in the queue.
type RequestMatchResponse struct {
	Result
	MatchID string `json:"matchId,omitempty"`
	InQueue bool   `json:"inQueue"`
}

type LeaveMatchRequest struct {
	UserID  string `json:"userId"`
	MatchID string `json:"matchId"`
}

type LeaveMatchResponse struct {
	Result
}

type Profile struct {
	ID                string    `json:"id"`
	Email             string    `json:"email,omitempty"`
	DisplayName       string    `json:"displayName"`
	PhotoURL          string    `json:"photoURL,omitempty"`
	Bio               string    `json:"bio,omitempty"`
	ProficiencyLevel  string    `json:"proficiencyLevel,omitempty"`
	IsLookingForMatch bool      `json:"isLookingForMatch"`
	CurrentMatchID    string    `json:"currentMatchId,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

type CreateProfileRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
}

type GetProfileRequest struct {
	UserID string `json:"userId"`
}

// UpdateProfileRequest changes only the fields that are set.
type UpdateProfileRequest struct {
	UserID           string  `json:"userId"`
	DisplayName      *string `json:"displayName,omitempty"`
	Bio              *string `json:"bio,omitempty"`
	ProficiencyLevel *string `json:"proficiencyLevel,omitempty"`
}

type ProfileResponse struct {
	Profile *Profile `json:"profile"`
}

type GetPhotoUploadURLRequest struct {
	UserID      string `json:"userId"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
}

type GetPhotoUploadURLResponse struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

type SetPhotoRequest struct {
	UserID string `json:"userId"`
	Key    string `json:"key"`
}

type Participant struct {
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
	PhotoURL    string `json:"photoURL,omitempty"`
}

type MessagePreview struct {
	Text     string    `json:"text"`
	SentAt   time.Time `json:"timestamp"`
	SenderID string    `json:"senderId"`
}

type Match struct {
	ID           string          `json:"id"`
	Participants []Participant   `json:"participants"`
	Status       string          `json:"status"`
	CreatedAt    time.Time       `json:"createdAt"`
	EndedAt      *time.Time      `json:"endedAt,omitempty"`
	LastMessage  *MessagePreview `json:"lastMessage,omitempty"`
}

type GetMatchRequest struct {
	MatchID string `json:"matchId"`
}

type MatchResponse struct {
	Match *Match `json:"match"`
}

type ListMatchesRequest struct {
	UserID string `json:"userId"`
	Limit  int    `json:"limit,omitempty"`
}

type ListMatchesResponse struct {
	Matches []*Match `json:"matches"`
}

type Message struct {
	ID                string    `json:"id"`
	MatchID           string    `json:"matchId"`
	SenderID          string    `json:"senderId"`
	SenderDisplayName string    `json:"senderDisplayName"`
	SenderPhotoURL    string    `json:"senderPhotoURL,omitempty"`
	Text              string    `json:"text"`
	CreatedAt         time.Time `json:"timestamp"`
	IsModerated       bool      `json:"isModerated"`
	ModerationReason  string    `json:"moderationReason,omitempty"`
}

type SendMessageRequest struct {
	MatchID string `json:"matchId"`
	Text    string `json:"text"`
}

type MessageResponse struct {
	Message *Message `json:"message"`
}

type ListMessagesRequest struct {
	MatchID string `json:"matchId"`
	Limit   int    `json:"limit,omitempty"`
}

type ListMessagesResponse struct {
	Messages []*Message `json:"messages"`
}
