package grpc

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dmitrijs2005/langmatch/internal/common"
	"github.com/dmitrijs2005/langmatch/internal/rpc"
	"github.com/dmitrijs2005/langmatch/internal/server/auth"
	"github.com/dmitrijs2005/langmatch/internal/server/metrics"
	"golang.org/x/time/rate"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type ctxKey string

const userIDKey ctxKey = "userID"

// publicMethods need no access token.
var publicMethods = map[string]bool{
	rpc.FullMethod(rpc.MethodPing): true,
}

// callerFromContext returns the user id the interceptor authenticated.
func callerFromContext(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}

func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {

	if publicMethods[info.FullMethod] {
		return handler(ctx, req)
	}

	var accessToken string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		values := md.Get(common.AccessTokenHeaderName)
		if len(values) > 0 {
			accessToken = values[0]
		}
	}
	if len(accessToken) == 0 {
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}

	userID, err := auth.GetUserIDFromToken(accessToken, s.jwtSecret)
	if err != nil {
		if errors.Is(err, common.ErrTokenExpired) {
			return nil, status.Error(codes.Unauthenticated, "token expired")
		}
		return nil, status.Error(codes.Unauthenticated, "invalid token")
	}

	ctx = context.WithValue(ctx, userIDKey, userID)

	return handler(ctx, req)
}

func (s *GRPCServer) rateLimitInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	if caller := callerFromContext(ctx); caller != "" && !s.limiter.allow(caller) {
		s.logger.Warn(ctx, "rate limited", "user_id", caller, "method", info.FullMethod)
		return nil, status.Error(codes.ResourceExhausted, "too many requests")
	}
	return handler(ctx, req)
}

func (s *GRPCServer) metricsInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	start := time.Now()
	resp, err := handler(ctx, req)
	metrics.RPCDuration.WithLabelValues(info.FullMethod, status.Code(err).String()).Observe(time.Since(start).Seconds())
	return resp, err
}

// userLimiter keeps one token bucket per caller.
type userLimiter struct {
	mu    sync.Mutex
	limit rate.Limit
	burst int
	users map[string]*rate.Limiter
}

// maxTrackedUsers bounds the limiter map; beyond it full buckets are dropped.
const maxTrackedUsers = 10000

// newUserLimiter returns nil, which allows everything, when rps is not positive.
func newUserLimiter(rps float64, burst int) *userLimiter {
	if rps <= 0 {
		return nil
	}
	if burst < 1 {
		burst = 1
	}
	return &userLimiter{limit: rate.Limit(rps), burst: burst, users: make(map[string]*rate.Limiter)}
}

func (l *userLimiter) allow(userID string) bool {
	if l == nil {
		return true
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	lim, ok := l.users[userID]
	if !ok {
		if len(l.users) >= maxTrackedUsers {
			l.sweep()
		}
		lim = rate.NewLimiter(l.limit, l.burst)
		l.users[userID] = lim
	}
	return lim.Allow()
}

// sweep forgets callers whose bucket has refilled.
func (l *userLimiter) sweep() {
	for id, lim := range l.users {
		if lim.Tokens() >= float64(l.burst) {
			delete(l.users, id)
		}
	}
}
