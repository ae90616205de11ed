package grpc

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/lumen/internal/api"
	"github.com/dmitrijs2005/lumen/internal/common"
	"github.com/dmitrijs2005/lumen/internal/server/auth"
	"github.com/dmitrijs2005/lumen/internal/server/models"
	"golang.org/x/crypto/bcrypt"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type ctxKey string

const identityKey ctxKey = "identity"

// publicMethods need no identity token.
var publicMethods = map[string]bool{
	api.FullMethod(api.MethodPing):             true,
	api.FullMethod(api.MethodListAchievements): true,
	api.FullMethod(api.MethodListResources):    true,
}

// adminMethods additionally require the admin key when one is configured.
var adminMethods = map[string]bool{
	api.FullMethod(api.MethodListSuggestions):        true,
	api.FullMethod(api.MethodUpdateSuggestionStatus): true,
	api.FullMethod(api.MethodListUsers):              true,
	api.FullMethod(api.MethodGetStats):               true,
	api.FullMethod(api.MethodExportReport):           true,
}

func withIdentity(ctx context.Context, id models.Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

func identityFromContext(ctx context.Context) (models.Identity, bool) {
	id, ok := ctx.Value(identityKey).(models.Identity)
	return id, ok
}

func firstMetadata(ctx context.Context, key string) string {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(key); len(values) > 0 {
			return values[0]
		}
	}
	return ""
}

func (s *GRPCServer) loggingInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)

	code := status.Code(err)
	args := []any{"method", info.FullMethod, "code", code.String(), "duration", time.Since(start)}
	switch code {
	case codes.OK:
		s.logger.Debug(ctx, "rpc", args...)
	case codes.Internal, codes.Unavailable, codes.Unknown:
		s.logger.Error(ctx, "rpc failed", append(args, "error", err)...)
	default:
		s.logger.Info(ctx, "rpc rejected", append(args, "error", status.Convert(err).Message())...)
	}
	return resp, err
}

func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	if publicMethods[info.FullMethod] {
		return handler(ctx, req)
	}

	accessToken := firstMetadata(ctx, common.AccessTokenHeaderName)
	if len(accessToken) == 0 {
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}

	identity, err := auth.ParseToken(accessToken, s.jwtSecret)
	if err != nil {
		if errors.Is(err, common.ErrTokenExpired) {
			return nil, status.Error(codes.Unauthenticated, "token expired")
		}
		return nil, status.Error(codes.Unauthenticated, "invalid token")
	}

	return handler(withIdentity(ctx, identity), req)
}

func (s *GRPCServer) adminKeyInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	if len(s.adminKeyHash) == 0 || !adminMethods[info.FullMethod] {
		return handler(ctx, req)
	}

	key := firstMetadata(ctx, common.AdminKeyHeaderName)
	if key == "" || bcrypt.CompareHashAndPassword(s.adminKeyHash, []byte(key)) != nil {
		return nil, status.Error(codes.PermissionDenied, "admin key required")
	}
	return handler(ctx, req)
}
