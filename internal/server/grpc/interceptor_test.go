package grpc

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/promptbook/internal/common"
	"github.com/dmitrijs2005/promptbook/internal/logging"
	"github.com/dmitrijs2005/promptbook/internal/rpc"
	"github.com/dmitrijs2005/promptbook/internal/server/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

func incoming(token string) context.Context {
	return metadata.NewIncomingContext(context.Background(), metadata.Pairs(common.AccessTokenHeaderName, token))
}

func TestInterceptor_PublicMethodsPassWithoutToken(t *testing.T) {
	s := newTestGRPCServer("")
	info := &grpc.UnaryServerInfo{FullMethod: rpc.PromptBook_SignInWithPassword_FullMethodName}

	called := false
	resp, err := s.accessTokenInterceptor(context.Background(), nil, info, func(ctx context.Context, req any) (any, error) {
		called = true
		return "ok", nil
	})
	require.NoError(t, err)
	assert.True(t, called)
	assert.Equal(t, "ok", resp)
}

func TestInterceptor_Rejections(t *testing.T) {
	s := newTestGRPCServer("")
	info := &grpc.UnaryServerInfo{FullMethod: rpc.PromptBook_SelectPrompts_FullMethodName}

	expired, _, err := auth.GenerateToken("u1", "", []byte(testSecret), -time.Minute)
	require.NoError(t, err)
	foreign, _, err := auth.GenerateToken("u1", "", []byte("other"), time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name string
		ctx  context.Context
		msg  string
	}{
		{"missing", context.Background(), "missing token"},
		{"expired", incoming(expired), common.ErrTokenExpired.Error()},
		{"wrong secret", incoming(foreign), common.ErrInvalidToken.Error()},
		{"garbage", incoming("not-a-valid-jwt"), common.ErrInvalidToken.Error()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.accessTokenInterceptor(tt.ctx, nil, info, func(context.Context, any) (any, error) {
				t.Fatal("handler must not run")
				return nil, nil
			})
			assert.Equal(t, codes.Unauthenticated, status.Code(err))
			assert.Equal(t, tt.msg, status.Convert(err).Message())
		})
	}
}

func TestInterceptor_ValidTokenSetsUserID(t *testing.T) {
	s := newTestGRPCServer("")
	info := &grpc.UnaryServerInfo{FullMethod: rpc.PromptBook_DeletePrompt_FullMethodName}

	token, _, err := auth.GenerateToken("user-123", "ana@pc.gov", []byte(testSecret), time.Hour)
	require.NoError(t, err)

	var got any
	_, err = s.accessTokenInterceptor(incoming(token), nil, info, func(ctx context.Context, req any) (any, error) {
		got = ctx.Value(UserIDKey)
		return nil, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "user-123", got)
}

func TestRequestIDInterceptor_PutsIDInContext(t *testing.T) {
	s := newTestGRPCServer("")
	info := &grpc.UnaryServerInfo{FullMethod: rpc.PromptBook_Ping_FullMethodName}
	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs(common.RequestIDHeaderName, "abc"))

	var got string
	_, err := s.requestIDInterceptor(ctx, nil, info, func(ctx context.Context, req any) (any, error) {
		got, _ = logging.RequestID(ctx)
		return nil, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "abc", got)
}

func TestLoggingInterceptor_PassesThrough(t *testing.T) {
	s := newTestGRPCServer("")
	info := &grpc.UnaryServerInfo{FullMethod: rpc.PromptBook_Ping_FullMethodName}

	resp, err := s.loggingInterceptor(context.Background(), nil, info, func(context.Context, any) (any, error) {
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", resp)

	_, err = s.loggingInterceptor(context.Background(), nil, info, func(context.Context, any) (any, error) {
		return nil, status.Error(codes.Internal, "boom")
	})
	assert.Equal(t, codes.Internal, status.Code(err))
}
