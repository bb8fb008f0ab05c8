// Package server wires the PromptBook backend together: storage backend,
// services and the gRPC endpoint, run until the process is told to stop.
package server

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrijs2005/promptbook/internal/logging"
	"github.com/dmitrijs2005/promptbook/internal/server/config"
	"github.com/dmitrijs2005/promptbook/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/promptbook/internal/server/services"
	"golang.org/x/sync/errgroup"

	gs "github.com/dmitrijs2005/promptbook/internal/server/grpc"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	manager repomanager.RepositoryManager
	users   *services.UserService
	server  *gs.GRPCServer
}

// NewApp opens the configured storage backend, applies migrations and builds
// the services. An empty DSN selects the in-memory backend.
func NewApp(ctx context.Context, cfg *config.Config, logger logging.Logger) (*App, error) {
	m, err := newRepositoryManager(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if err := m.RunMigrations(ctx); err != nil {
		m.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	us := services.NewUserService(m, cfg)
	ps := services.NewPromptService(m)
	oauth := services.NewOAuthService(cfg.OAuthProviders, cfg.SecretKey)

	return &App{
		config:  cfg,
		logger:  logger,
		manager: m,
		users:   us,
		server:  gs.NewGRPCServer(cfg.EndpointAddrGRPC, logger, us, ps, oauth, cfg.SecretKey),
	}, nil
}

func newRepositoryManager(ctx context.Context, cfg *config.Config) (repomanager.RepositoryManager, error) {
	if cfg.DatabaseDSN == "" {
		return repomanager.NewInMemoryRepositoryManager(), nil
	}
	db, err := repomanager.OpenPostgres(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	return repomanager.NewPostgresRepositoryManager(db), nil
}

// purgeExpiredTokens deletes expired refresh tokens every interval until ctx
// is done. A failed pass is logged and retried on the next tick.
func (app *App) purgeExpiredTokens(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := app.users.PurgeExpiredTokens(ctx)
			if err != nil {
				if !errors.Is(err, context.Canceled) {
					app.logger.Error(ctx, "refresh token cleanup failed", "error", err)
				}
				continue
			}
			if n > 0 {
				app.logger.Debug(ctx, "expired refresh tokens removed", "count", n)
			}
		}
	}
}

// Run serves until ctx is done or SIGINT, SIGTERM or SIGQUIT arrives, then
// releases the storage backend.
func (app *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	app.logger.Info(ctx, "Starting app...")

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return app.server.Run(gctx)
	})
	g.Go(func() error {
		app.purgeExpiredTokens(gctx, app.config.TokenCleanupInterval)
		return nil
	})

	err := g.Wait()
	if cerr := app.manager.Close(); cerr != nil {
		app.logger.Error(context.Background(), "closing storage failed", "error", cerr)
	}
	app.logger.Info(context.Background(), "App stopped")
	return err
}
