package rpc

import (
	"context"

	"google.golang.org/grpc"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "langmatch.v1.Matchmaking"

// Method names.
const (
	MethodPing              = "Ping"
	MethodToggleQueue       = "ToggleQueue"
	MethodRequestMatch      = "RequestMatch"
	MethodLeaveMatch        = "LeaveMatch"
	MethodCreateProfile     = "CreateProfile"
	MethodGetProfile        = "GetProfile"
	MethodUpdateProfile     = "UpdateProfile"
	MethodGetPhotoUploadURL = "GetPhotoUploadURL"
	MethodSetPhoto          = "SetPhoto"
	MethodGetMatch          = "GetMatch"
	MethodListMatches       = "ListMatches"
	MethodSendMessage       = "SendMessage"
	MethodListMessages      = "ListMessages"
)

// FullMethod returns the "/service/method" path of method.
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// MatchmakingServer is implemented by the server.
type MatchmakingServer interface {
	Ping(context.Context, *PingRequest) (*PingResponse, error)
	ToggleQueue(context.Context, *ToggleQueueRequest) (*ToggleQueueResponse, error)
	RequestMatch(context.Context, *RequestMatchRequest) (*RequestMatchResponse, error)
	LeaveMatch(context.Context, *LeaveMatchRequest) (*LeaveMatchResponse, error)
	CreateProfile(context.Context, *CreateProfileRequest) (*ProfileResponse, error)
	GetProfile(context.Context, *GetProfileRequest) (*ProfileResponse, error)
	UpdateProfile(context.Context, *UpdateProfileRequest) (*ProfileResponse, error)
	GetPhotoUploadURL(context.Context, *GetPhotoUploadURLRequest) (*GetPhotoUploadURLResponse, error)
	SetPhoto(context.Context, *SetPhotoRequest) (*ProfileResponse, error)
	GetMatch(context.Context, *GetMatchRequest) (*MatchResponse, error)
	ListMatches(context.Context, *ListMatchesRequest) (*ListMatchesResponse, error)
	SendMessage(context.Context, *SendMessageRequest) (*MessageResponse, error)
	ListMessages(context.Context, *ListMessagesRequest) (*ListMessagesResponse, error)
}

// unary builds the descriptor of one unary method.
func unary[Req, Resp any](method string, call func(MatchmakingServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			s := srv.(MatchmakingServer)
			if interceptor == nil {
				return call(s, ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(method)}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(s, ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// ServiceDesc describes the service for grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*MatchmakingServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(MethodPing, MatchmakingServer.Ping),
		unary(MethodToggleQueue, MatchmakingServer.ToggleQueue),
		unary(MethodRequestMatch, MatchmakingServer.RequestMatch),
		unary(MethodLeaveMatch, MatchmakingServer.LeaveMatch),
		unary(MethodCreateProfile, MatchmakingServer.CreateProfile),
		unary(MethodGetProfile, MatchmakingServer.GetProfile),
		unary(MethodUpdateProfile, MatchmakingServer.UpdateProfile),
		unary(MethodGetPhotoUploadURL, MatchmakingServer.GetPhotoUploadURL),
		unary(MethodSetPhoto, MatchmakingServer.SetPhoto),
		unary(MethodGetMatch, MatchmakingServer.GetMatch),
		unary(MethodListMatches, MatchmakingServer.ListMatches),
		unary(MethodSendMessage, MatchmakingServer.SendMessage),
		unary(MethodListMessages, MatchmakingServer.ListMessages),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "langmatch/v1/matchmaking",
}

// RegisterMatchmakingServer registers srv on s.
func RegisterMatchmakingServer(s grpc.ServiceRegistrar, srv MatchmakingServer) {
	s.RegisterService(&ServiceDesc, srv)
}
