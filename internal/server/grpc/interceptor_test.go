package grpc

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/lumen/internal/api"
	"github.com/dmitrijs2005/lumen/internal/common"
	"github.com/dmitrijs2005/lumen/internal/logging"
	"github.com/dmitrijs2005/lumen/internal/server/auth"
	"github.com/dmitrijs2005/lumen/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

func newTestServer(t *testing.T, secret, adminKey string) *GRPCServer {
	t.Helper()
	var hash string
	if adminKey != "" {
		h, err := bcrypt.GenerateFromPassword([]byte(adminKey), bcrypt.MinCost)
		require.NoError(t, err)
		hash = string(h)
	}
	s, err := NewGRPCServer(":0", logging.Nop(), nil, nil, nil, nil, secret, hash)
	require.NoError(t, err)
	return s
}

func info(method string) *grpc.UnaryServerInfo {
	return &grpc.UnaryServerInfo{FullMethod: api.FullMethod(method)}
}

func mustNotRun(t *testing.T) grpc.UnaryHandler {
	return func(ctx context.Context, req any) (any, error) {
		t.Fatal("handler must not run")
		return nil, nil
	}
}

func TestAccessToken_PublicMethodsPass(t *testing.T) {
	s := newTestServer(t, "secret", "")

	for _, m := range []string{api.MethodPing, api.MethodListAchievements, api.MethodListResources} {
		called := false
		h := func(ctx context.Context, req any) (any, error) {
			called = true
			return "ok", nil
		}
		resp, err := s.accessTokenInterceptor(context.Background(), nil, info(m), h)
		require.NoError(t, err)
		assert.True(t, called, m)
		assert.Equal(t, "ok", resp)
	}
}

func TestAccessToken_MissingToken(t *testing.T) {
	s := newTestServer(t, "secret", "")

	_, err := s.accessTokenInterceptor(context.Background(), nil, info(api.MethodGetProfile), mustNotRun(t))
	require.Error(t, err)
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
	assert.Equal(t, "missing token", status.Convert(err).Message())
}

func TestAccessToken_InvalidAndExpired(t *testing.T) {
	s := newTestServer(t, "secret", "")
	expired, err := auth.GenerateToken(models.Identity{ID: "u-1"}, []byte("secret"), -time.Minute)
	require.NoError(t, err)

	tests := []struct {
		token string
		msg   string
	}{
		{token: "not-a-valid-jwt", msg: "invalid token"},
		{token: expired, msg: "token expired"},
	}
	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs(common.AccessTokenHeaderName, tt.token))
			_, err := s.accessTokenInterceptor(ctx, nil, info(api.MethodGetProfile), mustNotRun(t))
			assert.Equal(t, codes.Unauthenticated, status.Code(err))
			assert.Equal(t, tt.msg, status.Convert(err).Message())
		})
	}
}

func TestAccessToken_ValidTokenSetsIdentity(t *testing.T) {
	s := newTestServer(t, "super-secret", "")
	want := models.Identity{ID: "user-123", Email: "ana@school.io", DisplayName: "Ana"}

	token, err := auth.GenerateToken(want, []byte("super-secret"), time.Hour)
	require.NoError(t, err)

	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs(common.AccessTokenHeaderName, token))

	var got models.Identity
	h := func(ctx context.Context, req any) (any, error) {
		id, ok := identityFromContext(ctx)
		require.True(t, ok)
		got = id
		return "ok", nil
	}

	_, err = s.accessTokenInterceptor(ctx, nil, info(api.MethodGetProfile), h)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestAdminKey(t *testing.T) {
	ok := func(ctx context.Context, req any) (any, error) { return "ok", nil }

	t.Run("not configured", func(t *testing.T) {
		s := newTestServer(t, "secret", "")
		_, err := s.adminKeyInterceptor(context.Background(), nil, info(api.MethodListUsers), ok)
		require.NoError(t, err)
	})

	s := newTestServer(t, "secret", "open-sesame")

	t.Run("non-admin method", func(t *testing.T) {
		_, err := s.adminKeyInterceptor(context.Background(), nil, info(api.MethodAddProgress), ok)
		require.NoError(t, err)
	})

	t.Run("missing key", func(t *testing.T) {
		_, err := s.adminKeyInterceptor(context.Background(), nil, info(api.MethodListUsers), mustNotRun(t))
		assert.Equal(t, codes.PermissionDenied, status.Code(err))
	})

	t.Run("wrong key", func(t *testing.T) {
		ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs(common.AdminKeyHeaderName, "guess"))
		_, err := s.adminKeyInterceptor(ctx, nil, info(api.MethodExportReport), mustNotRun(t))
		assert.Equal(t, codes.PermissionDenied, status.Code(err))
	})

	t.Run("right key", func(t *testing.T) {
		ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs(common.AdminKeyHeaderName, "open-sesame"))
		resp, err := s.adminKeyInterceptor(ctx, nil, info(api.MethodGetStats), ok)
		require.NoError(t, err)
		assert.Equal(t, "ok", resp)
	})
}
