// Package grpc exposes the matchmaking services over gRPC.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/langmatch/internal/logging"
	"github.com/dmitrijs2005/langmatch/internal/rpc"
	"github.com/dmitrijs2005/langmatch/internal/server/models"
	"github.com/dmitrijs2005/langmatch/internal/server/services"
	"google.golang.org/grpc"
)

// Matchmaker is the queue, matcher and match lifecycle.
type Matchmaker interface {
	ToggleQueue(ctx context.Context, caller, userID string, want bool) (bool, error)
	RequestMatch(ctx context.Context, caller, userID string) (*services.MatchResult, error)
	EndMatch(ctx context.Context, caller, userID, matchID string) error
	GetMatch(ctx context.Context, caller, matchID string) (*models.Match, error)
	ListMatches(ctx context.Context, caller, userID string, limit int) ([]*models.Match, error)
}

type Chat interface {
	SendMessage(ctx context.Context, caller, matchID, text string) (*models.ChatMessage, error)
	ListMessages(ctx context.Context, caller, matchID string, limit int) ([]*models.ChatMessage, error)
}

type Profiles interface {
	CreateProfile(ctx context.Context, caller, email, displayName string) (*models.Profile, error)
	GetProfile(ctx context.Context, caller, userID string) (*models.Profile, error)
	UpdateProfile(ctx context.Context, caller, userID string, upd services.ProfileUpdate) (*models.Profile, error)
	PhotoUploadURL(ctx context.Context, caller, userID, contentType string, size int64) (*services.PhotoUpload, error)
	SetPhoto(ctx context.Context, caller, userID, key string) (*models.Profile, error)
}

// Options tunes the server.
type Options struct {
	SecretKey      string
	RateLimitRPS   float64
	RateLimitBurst int
}

type GRPCServer struct {
	address   string
	matches   Matchmaker
	chat      Chat
	profiles  Profiles
	logger    logging.Logger
	jwtSecret []byte
	limiter   *userLimiter
}

func NewGRPCServer(a string, l logging.Logger, mm Matchmaker, chat Chat, profiles Profiles, opts Options) (*GRPCServer, error) {
	if l == nil {
		l = logging.Nop{}
	}
	return &GRPCServer{
		address:   a,
		logger:    l.With("module", "grpc_server"),
		matches:   mm,
		chat:      chat,
		profiles:  profiles,
		jwtSecret: []byte(opts.SecretKey),
		limiter:   newUserLimiter(opts.RateLimitRPS, opts.RateLimitBurst),
	}, nil
}

// newServer creates the grpc.Server with the interceptor chain and the
// service registered.
func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(
		s.metricsInterceptor,
		s.accessTokenInterceptor,
		s.rateLimitInterceptor,
	))
	rpc.RegisterMatchmakingServer(srv, s)
	return srv
}

// Run listens on the configured address until ctx is canceled.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is canceled, then stops
// gracefully.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	if err := srv.Serve(lis); err != nil {
		return err
	}

	return nil
}
