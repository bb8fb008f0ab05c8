// Package grpc serves the PromptBook gRPC API on top of the server services.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/promptbook/internal/logging"
	"github.com/dmitrijs2005/promptbook/internal/rpc"
	"github.com/dmitrijs2005/promptbook/internal/server/models"
	"github.com/dmitrijs2005/promptbook/internal/server/services"
	"google.golang.org/grpc"
)

type UserService interface {
	SignUp(ctx context.Context, email, password string) (*models.User, error)
	SignIn(ctx context.Context, email, password string) (*services.Session, error)
	RefreshToken(ctx context.Context, refreshToken string) (*services.Session, error)
	SignOut(ctx context.Context, refreshToken string) error
	GetUser(ctx context.Context, userID string) (*models.User, error)
}

type PromptService interface {
	List(ctx context.Context, userID string, ascending bool) ([]models.Prompt, error)
	Create(ctx context.Context, userID string, p models.Prompt) (*models.Prompt, error)
	Update(ctx context.Context, userID, id string, patch models.PromptPatch) (*models.Prompt, error)
	Delete(ctx context.Context, userID, id string) error
}

type OAuthService interface {
	AuthURL(ctx context.Context, provider, redirectTo string) (string, error)
}

type GRPCServer struct {
	rpc.UnimplementedPromptBookServer
	address   string
	users     UserService
	prompts   PromptService
	oauth     OAuthService
	logger    logging.Logger
	jwtSecret []byte
}

func NewGRPCServer(a string, l logging.Logger, us UserService, ps PromptService, os OAuthService, secretKey string) *GRPCServer {
	return &GRPCServer{
		address:   a,
		logger:    l.With("module", "grpc_server"),
		users:     us,
		prompts:   ps,
		oauth:     os,
		jwtSecret: []byte(secretKey),
	}
}

// NewServer returns a grpc.Server with the interceptor chain and the
// PromptBook service registered.
func (s *GRPCServer) NewServer(opts ...grpc.ServerOption) *grpc.Server {
	opts = append([]grpc.ServerOption{
		grpc.ChainUnaryInterceptor(s.requestIDInterceptor, s.loggingInterceptor, s.accessTokenInterceptor),
	}, opts...)
	srv := grpc.NewServer(opts...)
	rpc.RegisterPromptBookServer(srv, s)
	return srv
}

// Run listens on the configured address and serves until ctx is done.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is done, then stops gracefully.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := s.NewServer()

	done := make(chan struct{})
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		select {
		case <-ctx.Done():
			s.logger.Info(context.Background(), "Stopping gRPC server...")
			srv.GracefulStop()
		case <-done:
			srv.Stop()
		}
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	err := srv.Serve(lis)
	close(done)
	<-stopped
	return err
}
