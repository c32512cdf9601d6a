package grpc

import (
	"context"

	"github.com/dmitrijs2005/langmatch/internal/rpc"
	"github.com/dmitrijs2005/langmatch/internal/server/services"
)

var _ rpc.MatchmakingServer = (*GRPCServer)(nil)

func (s *GRPCServer) Ping(ctx context.Context, req *rpc.PingRequest) (*rpc.PingResponse, error) {

	return &rpc.PingResponse{Status: "OK"}, nil

}

func (s *GRPCServer) ToggleQueue(ctx context.Context, req *rpc.ToggleQueueRequest) (*rpc.ToggleQueueResponse, error) {

	looking, err := s.matches.ToggleQueue(ctx, callerFromContext(ctx), req.UserID, req.Want)
	if err != nil {
		s.logFailure(ctx, "toggle queue", err)
		return &rpc.ToggleQueueResponse{Result: toResult(err)}, nil
	}

	return &rpc.ToggleQueueResponse{Result: toResult(nil), IsLookingForMatch: looking}, nil

}

func (s *GRPCServer) RequestMatch(ctx context.Context, req *rpc.RequestMatchRequest) (*rpc.RequestMatchResponse, error) {

	res, err := s.matches.RequestMatch(ctx, callerFromContext(ctx), req.UserID)
	if err != nil {
		s.logFailure(ctx, "request match", err)
		return &rpc.RequestMatchResponse{Result: toResult(err)}, nil
	}

	if res.InQueue {
		return &rpc.RequestMatchResponse{InQueue: true}, nil
	}
	return &rpc.RequestMatchResponse{Result: toResult(nil), MatchID: res.MatchID}, nil

}

func (s *GRPCServer) LeaveMatch(ctx context.Context, req *rpc.LeaveMatchRequest) (*rpc.LeaveMatchResponse, error) {

	if err := s.matches.EndMatch(ctx, callerFromContext(ctx), req.UserID, req.MatchID); err != nil {
		s.logFailure(ctx, "leave match", err)
		return &rpc.LeaveMatchResponse{Result: toResult(err)}, nil
	}

	return &rpc.LeaveMatchResponse{Result: toResult(nil)}, nil

}

func (s *GRPCServer) CreateProfile(ctx context.Context, req *rpc.CreateProfileRequest) (*rpc.ProfileResponse, error) {

	p, err := s.profiles.CreateProfile(ctx, callerFromContext(ctx), req.Email, req.DisplayName)
	if err != nil {
		s.logFailure(ctx, "create profile", err)
		return nil, toStatus(err)
	}

	return &rpc.ProfileResponse{Profile: profileToRPC(p)}, nil

}

func (s *GRPCServer) GetProfile(ctx context.Context, req *rpc.GetProfileRequest) (*rpc.ProfileResponse, error) {

	p, err := s.profiles.GetProfile(ctx, callerFromContext(ctx), req.UserID)
	if err != nil {
		return nil, toStatus(err)
	}

	return &rpc.ProfileResponse{Profile: profileToRPC(p)}, nil

}

func (s *GRPCServer) UpdateProfile(ctx context.Context, req *rpc.UpdateProfileRequest) (*rpc.ProfileResponse, error) {

	p, err := s.profiles.UpdateProfile(ctx, callerFromContext(ctx), req.UserID, services.ProfileUpdate{
		DisplayName: req.DisplayName,
		Bio:         req.Bio,
		Level:       req.ProficiencyLevel,
	})
	if err != nil {
		s.logFailure(ctx, "update profile", err)
		return nil, toStatus(err)
	}

	return &rpc.ProfileResponse{Profile: profileToRPC(p)}, nil

}

func (s *GRPCServer) GetPhotoUploadURL(ctx context.Context, req *rpc.GetPhotoUploadURLRequest) (*rpc.GetPhotoUploadURLResponse, error) {

	up, err := s.profiles.PhotoUploadURL(ctx, callerFromContext(ctx), req.UserID, req.ContentType, req.Size)
	if err != nil {
		s.logFailure(ctx, "photo upload url", err)
		return nil, toStatus(err)
	}

	return &rpc.GetPhotoUploadURLResponse{Key: up.Key, URL: up.URL}, nil

}

func (s *GRPCServer) SetPhoto(ctx context.Context, req *rpc.SetPhotoRequest) (*rpc.ProfileResponse, error) {

	p, err := s.profiles.SetPhoto(ctx, callerFromContext(ctx), req.UserID, req.Key)
	if err != nil {
		s.logFailure(ctx, "set photo", err)
		return nil, toStatus(err)
	}

	return &rpc.ProfileResponse{Profile: profileToRPC(p)}, nil

}

func (s *GRPCServer) GetMatch(ctx context.Context, req *rpc.GetMatchRequest) (*rpc.MatchResponse, error) {

	m, err := s.matches.GetMatch(ctx, callerFromContext(ctx), req.MatchID)
	if err != nil {
		return nil, toStatus(err)
	}

	return &rpc.MatchResponse{Match: matchToRPC(m)}, nil

}

func (s *GRPCServer) ListMatches(ctx context.Context, req *rpc.ListMatchesRequest) (*rpc.ListMatchesResponse, error) {

	ms, err := s.matches.ListMatches(ctx, callerFromContext(ctx), req.UserID, req.Limit)
	if err != nil {
		return nil, toStatus(err)
	}

	return &rpc.ListMatchesResponse{Matches: matchesToRPC(ms)}, nil

}

func (s *GRPCServer) SendMessage(ctx context.Context, req *rpc.SendMessageRequest) (*rpc.MessageResponse, error) {

	m, err := s.chat.SendMessage(ctx, callerFromContext(ctx), req.MatchID, req.Text)
	if err != nil {
		s.logFailure(ctx, "send message", err)
		return nil, toStatus(err)
	}

	return &rpc.MessageResponse{Message: messageToRPC(m)}, nil

}

func (s *GRPCServer) ListMessages(ctx context.Context, req *rpc.ListMessagesRequest) (*rpc.ListMessagesResponse, error) {

	ms, err := s.chat.ListMessages(ctx, callerFromContext(ctx), req.MatchID, req.Limit)
	if err != nil {
		return nil, toStatus(err)
	}

	return &rpc.ListMessagesResponse{Messages: messagesToRPC(ms)}, nil

}

// logFailure logs internal errors loudly and expected ones quietly.
func (s *GRPCServer) logFailure(ctx context.Context, op string, err error) {
	if publicMessage(err) == internalMessage {
		s.logger.Error(ctx, op+" failed", "error", err)
		return
	}
	s.logger.Debug(ctx, op+" rejected", "error", err)
}
