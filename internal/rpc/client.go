package rpc

import (
	"context"

	"google.golang.org/grpc"
)

// MatchmakingClient calls the service over a client connection.
type MatchmakingClient struct {
	cc grpc.ClientConnInterface
}

func NewMatchmakingClient(cc grpc.ClientConnInterface) *MatchmakingClient {
	return &MatchmakingClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{CallOption()}, opts...)
	if err := cc.Invoke(ctx, FullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *MatchmakingClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingResponse](ctx, c.cc, MethodPing, in, opts)
}

func (c *MatchmakingClient) ToggleQueue(ctx context.Context, in *ToggleQueueRequest, opts ...grpc.CallOption) (*ToggleQueueResponse, error) {
	return invoke[ToggleQueueResponse](ctx, c.cc, MethodToggleQueue, in, opts)
}

func (c *MatchmakingClient) RequestMatch(ctx context.Context, in *RequestMatchRequest, opts ...grpc.CallOption) (*RequestMatchResponse, error) {
	return invoke[RequestMatchResponse](ctx, c.cc, MethodRequestMatch, in, opts)
}

func (c *MatchmakingClient) LeaveMatch(ctx context.Context, in *LeaveMatchRequest, opts ...grpc.CallOption) (*LeaveMatchResponse, error) {
	return invoke[LeaveMatchResponse](ctx, c.cc, MethodLeaveMatch, in, opts)
}

func (c *MatchmakingClient) CreateProfile(ctx context.Context, in *CreateProfileRequest, opts ...grpc.CallOption) (*ProfileResponse, error) {
	return invoke[ProfileResponse](ctx, c.cc, MethodCreateProfile, in, opts)
}

func (c *MatchmakingClient) GetProfile(ctx context.Context, in *GetProfileRequest, opts ...grpc.CallOption) (*ProfileResponse, error) {
	return invoke[ProfileResponse](ctx, c.cc, MethodGetProfile, in, opts)
}

func (c *MatchmakingClient) UpdateProfile(ctx context.Context, in *UpdateProfileRequest, opts ...grpc.CallOption) (*ProfileResponse, error) {
	return invoke[ProfileResponse](ctx, c.cc, MethodUpdateProfile, in, opts)
}

func (c *MatchmakingClient) GetPhotoUploadURL(ctx context.Context, in *GetPhotoUploadURLRequest, opts ...grpc.CallOption) (*GetPhotoUploadURLResponse, error) {
	return invoke[GetPhotoUploadURLResponse](ctx, c.cc, MethodGetPhotoUploadURL, in, opts)
}

func (c *MatchmakingClient) SetPhoto(ctx context.Context, in *SetPhotoRequest, opts ...grpc.CallOption) (*ProfileResponse, error) {
	return invoke[ProfileResponse](ctx, c.cc, MethodSetPhoto, in, opts)
}

func (c *MatchmakingClient) GetMatch(ctx context.Context, in *GetMatchRequest, opts ...grpc.CallOption) (*MatchResponse, error) {
	return invoke[MatchResponse](ctx, c.cc, MethodGetMatch, in, opts)
}

func (c *MatchmakingClient) ListMatches(ctx context.Context, in *ListMatchesRequest, opts ...grpc.CallOption) (*ListMatchesResponse, error) {
	return invoke[ListMatchesResponse](ctx, c.cc, MethodListMatches, in, opts)
}

func (c *MatchmakingClient) SendMessage(ctx context.Context, in *SendMessageRequest, opts ...grpc.CallOption) (*MessageResponse, error) {
	return invoke[MessageResponse](ctx, c.cc, MethodSendMessage, in, opts)
}

func (c *MatchmakingClient) ListMessages(ctx context.Context, in *ListMessagesRequest, opts ...grpc.CallOption) (*ListMessagesResponse, error) {
	return invoke[ListMessagesResponse](ctx, c.cc, MethodListMessages, in, opts)
}
