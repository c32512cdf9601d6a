package client

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/langmatch/internal/common"
	"github.com/dmitrijs2005/langmatch/internal/netx"
	"github.com/dmitrijs2005/langmatch/internal/rpc"
	"github.com/golang-jwt/jwt/v5"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// uploadToS3 is a test seam for the presigned PUT.
var uploadToS3 = netx.UploadToS3PresignedURL

// matchmakingAPI is the generated-style stub; rpc.MatchmakingClient
// implements it.
type matchmakingAPI interface {
	Ping(ctx context.Context, in *rpc.PingRequest, opts ...grpc.CallOption) (*rpc.PingResponse, error)
	ToggleQueue(ctx context.Context, in *rpc.ToggleQueueRequest, opts ...grpc.CallOption) (*rpc.ToggleQueueResponse, error)
	RequestMatch(ctx context.Context, in *rpc.RequestMatchRequest, opts ...grpc.CallOption) (*rpc.RequestMatchResponse, error)
	LeaveMatch(ctx context.Context, in *rpc.LeaveMatchRequest, opts ...grpc.CallOption) (*rpc.LeaveMatchResponse, error)
	CreateProfile(ctx context.Context, in *rpc.CreateProfileRequest, opts ...grpc.CallOption) (*rpc.ProfileResponse, error)
	GetProfile(ctx context.Context, in *rpc.GetProfileRequest, opts ...grpc.CallOption) (*rpc.ProfileResponse, error)
	UpdateProfile(ctx context.Context, in *rpc.UpdateProfileRequest, opts ...grpc.CallOption) (*rpc.ProfileResponse, error)
	GetPhotoUploadURL(ctx context.Context, in *rpc.GetPhotoUploadURLRequest, opts ...grpc.CallOption) (*rpc.GetPhotoUploadURLResponse, error)
	SetPhoto(ctx context.Context, in *rpc.SetPhotoRequest, opts ...grpc.CallOption) (*rpc.ProfileResponse, error)
	GetMatch(ctx context.Context, in *rpc.GetMatchRequest, opts ...grpc.CallOption) (*rpc.MatchResponse, error)
	ListMatches(ctx context.Context, in *rpc.ListMatchesRequest, opts ...grpc.CallOption) (*rpc.ListMatchesResponse, error)
	SendMessage(ctx context.Context, in *rpc.SendMessageRequest, opts ...grpc.CallOption) (*rpc.MessageResponse, error)
	ListMessages(ctx context.Context, in *rpc.ListMessagesRequest, opts ...grpc.CallOption) (*rpc.ListMessagesResponse, error)
}

var _ Client = (*GRPCClient)(nil)

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      matchmakingAPI

	mu          sync.RWMutex
	accessToken string
	userID      string
}

// tokenClaims mirrors the claims the identity provider puts in tokens.
type tokenClaims struct {
	jwt.RegisteredClaims
	UserID string
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Delete(common.AccessTokenHeaderName)
	md.Set(common.AccessTokenHeaderName, token)

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {

	s.mu.RLock()
	token := s.accessToken
	s.mu.RUnlock()

	if token != "" {
		ctx = withAccessToken(ctx, token)
	}

	return invoker(ctx, method, req, reply, cc, opts...)
}

func NewLangmatchClient(endpointURL string) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL}
	err := c.InitGRPCClient()
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) InitGRPCClient() error {

	conn, err := grpc.NewClient(s.endpointURL, grpc.WithTransportCredentials(insecure.NewCredentials()), grpc.WithUnaryInterceptor(s.accessTokenInterceptor))
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = rpc.NewMatchmakingClient(conn)
	return nil
}

func (s *GRPCClient) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

// SetToken stores the access token and remembers its user id. The token is
// not verified here; the server does that on every call.
func (s *GRPCClient) SetToken(token string) error {
	claims := &tokenClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}
	if claims.UserID == "" {
		return common.ErrInvalidToken
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken = token
	s.userID = claims.UserID
	return nil
}

func (s *GRPCClient) UserID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userID
}

func (s *GRPCClient) me() (string, error) {
	id := s.UserID()
	if id == "" {
		return "", ErrNoToken
	}
	return id, nil
}

func (s *GRPCClient) Ping(ctx context.Context) error {

	resp, err := s.client.Ping(ctx, &rpc.PingRequest{})
	if err != nil {
		return s.mapError(err)
	}

	if resp.Status != "OK" {
		return ErrUnavailable
	}

	return nil

}

func (s *GRPCClient) CreateProfile(ctx context.Context, email, displayName string) (*rpc.Profile, error) {
	if _, err := s.me(); err != nil {
		return nil, err
	}
	resp, err := s.client.CreateProfile(ctx, &rpc.CreateProfileRequest{Email: email, DisplayName: displayName})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Profile, nil
}

func (s *GRPCClient) GetProfile(ctx context.Context) (*rpc.Profile, error) {
	id, err := s.me()
	if err != nil {
		return nil, err
	}
	resp, err := s.client.GetProfile(ctx, &rpc.GetProfileRequest{UserID: id})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Profile, nil
}

func (s *GRPCClient) UpdateProfile(ctx context.Context, displayName, bio, level *string) (*rpc.Profile, error) {
	id, err := s.me()
	if err != nil {
		return nil, err
	}
	resp, err := s.client.UpdateProfile(ctx, &rpc.UpdateProfileRequest{
		UserID:           id,
		DisplayName:      displayName,
		Bio:              bio,
		ProficiencyLevel: level,
	})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Profile, nil
}

// UploadPhoto asks for a presigned URL, uploads data to it and then points
// the profile at the new object.
func (s *GRPCClient) UploadPhoto(ctx context.Context, contentType string, data []byte) (*rpc.Profile, error) {
	id, err := s.me()
	if err != nil {
		return nil, err
	}

	up, err := s.client.GetPhotoUploadURL(ctx, &rpc.GetPhotoUploadURLRequest{
		UserID:      id,
		ContentType: contentType,
		Size:        int64(len(data)),
	})
	if err != nil {
		return nil, s.mapError(err)
	}

	if err := uploadToS3(ctx, up.URL, contentType, data); err != nil {
		return nil, err
	}

	resp, err := s.client.SetPhoto(ctx, &rpc.SetPhotoRequest{UserID: id, Key: up.Key})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Profile, nil
}

func (s *GRPCClient) ToggleQueue(ctx context.Context, want bool) (bool, error) {
	id, err := s.me()
	if err != nil {
		return false, err
	}
	resp, err := s.client.ToggleQueue(ctx, &rpc.ToggleQueueRequest{UserID: id, Want: want})
	if err != nil {
		return false, s.mapError(err)
	}
	if err := resp.Err(); err != nil {
		return false, err
	}
	return resp.IsLookingForMatch, nil
}

func (s *GRPCClient) RequestMatch(ctx context.Context) (string, bool, error) {
	id, err := s.me()
	if err != nil {
		return "", false, err
	}
	resp, err := s.client.RequestMatch(ctx, &rpc.RequestMatchRequest{UserID: id})
	if err != nil {
		return "", false, s.mapError(err)
	}
	if err := resp.Err(); err != nil {
		return "", false, err
	}
	return resp.MatchID, resp.InQueue, nil
}

func (s *GRPCClient) LeaveMatch(ctx context.Context, matchID string) error {
	id, err := s.me()
	if err != nil {
		return err
	}
	resp, err := s.client.LeaveMatch(ctx, &rpc.LeaveMatchRequest{UserID: id, MatchID: matchID})
	if err != nil {
		return s.mapError(err)
	}
	return resp.Err()
}

func (s *GRPCClient) GetMatch(ctx context.Context, matchID string) (*rpc.Match, error) {
	resp, err := s.client.GetMatch(ctx, &rpc.GetMatchRequest{MatchID: matchID})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Match, nil
}

func (s *GRPCClient) ListMatches(ctx context.Context, limit int) ([]*rpc.Match, error) {
	id, err := s.me()
	if err != nil {
		return nil, err
	}
	resp, err := s.client.ListMatches(ctx, &rpc.ListMatchesRequest{UserID: id, Limit: limit})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Matches, nil
}

func (s *GRPCClient) SendMessage(ctx context.Context, matchID, text string) (*rpc.Message, error) {
	resp, err := s.client.SendMessage(ctx, &rpc.SendMessageRequest{MatchID: matchID, Text: text})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Message, nil
}

func (s *GRPCClient) ListMessages(ctx context.Context, matchID string, limit int) ([]*rpc.Message, error) {
	resp, err := s.client.ListMessages(ctx, &rpc.ListMessagesRequest{MatchID: matchID, Limit: limit})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Messages, nil
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		return fmt.Errorf("%w: %s", ErrUnauthorized, st.Message())
	case codes.NotFound:
		return ErrNotFound
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
