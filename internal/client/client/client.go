package client

import (
	"context"

	"github.com/dmitrijs2005/langmatch/internal/rpc"
)

// Client is what the CLI needs from the server.
type Client interface {
	Close() error
	SetToken(token string) error
	UserID() string
	Ping(ctx context.Context) error
	CreateProfile(ctx context.Context, email, displayName string) (*rpc.Profile, error)
	GetProfile(ctx context.Context) (*rpc.Profile, error)
	UpdateProfile(ctx context.Context, displayName, bio, level *string) (*rpc.Profile, error)
	UploadPhoto(ctx context.Context, contentType string, data []byte) (*rpc.Profile, error)
	ToggleQueue(ctx context.Context, want bool) (bool, error)
	RequestMatch(ctx context.Context) (matchID string, inQueue bool, err error)
	LeaveMatch(ctx context.Context, matchID string) error
	GetMatch(ctx context.Context, matchID string) (*rpc.Match, error)
	ListMatches(ctx context.Context, limit int) ([]*rpc.Match, error)
	SendMessage(ctx context.Context, matchID, text string) (*rpc.Message, error)
	ListMessages(ctx context.Context, matchID string, limit int) ([]*rpc.Message, error)
}
