package app

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/yungbote/patchbridge-backend/internal/clients/redis"
	"github.com/yungbote/patchbridge-backend/internal/data/db"
	"github.com/yungbote/patchbridge-backend/internal/data/repos"
	"github.com/yungbote/patchbridge-backend/internal/http"
	"github.com/yungbote/patchbridge-backend/internal/observability"
	"github.com/yungbote/patchbridge-backend/internal/platform/logger"
)

type App struct {
	Log      *logger.Logger
	Cfg      Config
	DB       *db.Service
	Metrics  *observability.Metrics
	Repos    repos.Set
	Clients  Clients
	Services Services
	Handlers Handlers
	Server   *http.Server

	shutdownOtel func(context.Context) error
}

func New(ctx context.Context) (*App, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	log.Info("Loading environment variables...")
	cfg := LoadConfig(log)

	shutdownOtel := observability.InitOTel(ctx, log, observability.OtelConfig{
		Enabled:     cfg.OtelEnabled,
		ServiceName: cfg.ServiceName,
		Environment: cfg.LogMode,
		Version:     cfg.Version,
		Endpoint:    cfg.OtelEndpoint,
		Insecure:    cfg.OtelInsecure,
		Headers:     observability.ParseHeaders(cfg.OtelHeaders),
		SampleRatio: cfg.OtelSampleRatio,
	})

	var metrics *observability.Metrics
	if cfg.MetricsEnabled {
		metrics = observability.New(log)
	}

	dbService, err := wireDatabase(ctx, log, cfg)
	if err != nil {
		_ = shutdownOtel(ctx)
		log.Sync()
		return nil, err
	}

	reposet := wireRepos(dbService.DB(), log)

	clients, err := wireClients(log, cfg)
	if err != nil {
		_ = dbService.Close()
		_ = shutdownOtel(ctx)
		log.Sync()
		return nil, err
	}

	serviceset := wireServices(dbService.DB(), log, metrics, reposet, clients)
	handlerset := wireHandlers(log, dbService.DB(), serviceset)
	server := wireServer(log, cfg, metrics, handlerset)

	return &App{
		Log:          log,
		Cfg:          cfg,
		DB:           dbService,
		Metrics:      metrics,
		Repos:        reposet,
		Clients:      clients,
		Services:     serviceset,
		Handlers:     handlerset,
		Server:       server,
		shutdownOtel: shutdownOtel,
	}, nil
}

// Run serves HTTP until ctx is cancelled. When a change bus is configured the
// published change feed is also logged, so every replica sees every update.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.Server == nil {
		return fmt.Errorf("app not initialized")
	}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return a.Server.Run(gctx)
	})
	if a.Clients.ChangeBus != nil {
		g.Go(func() error {
			err := a.Clients.ChangeBus.StartForwarder(gctx, func(m redis.ChangeMessage) {
				a.Log.Debug("Change received", "resource", m.Resource, "id", m.ID, "trace_id", m.TraceID)
			})
			if err != nil {
				a.Log.Warn("Change feed subscription failed", "error", err)
			}
			return nil
		})
	}
	return g.Wait()
}

func (a *App) Close() {
	if a == nil {
		return
	}
	a.Clients.Close()
	if a.DB != nil {
		if err := a.DB.Close(); err != nil && a.Log != nil {
			a.Log.Warn("Database close failed", "error", err)
		}
	}
	if a.shutdownOtel != nil {
		if err := a.shutdownOtel(context.Background()); err != nil && a.Log != nil {
			a.Log.Warn("OTel shutdown failed", "error", err)
		}
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
