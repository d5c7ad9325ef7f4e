package app

import (
	"context"

	"gorm.io/gorm"

	"github.com/yungbote/patchbridge-backend/internal/http"
	httpH "github.com/yungbote/patchbridge-backend/internal/http/handlers"
	"github.com/yungbote/patchbridge-backend/internal/observability"
	"github.com/yungbote/patchbridge-backend/internal/platform/logger"
)

type Handlers struct {
	Health *httpH.HealthHandler
	Author *httpH.AuthorHandler
	Book   *httpH.BookHandler
}

func wireHandlers(log *logger.Logger, database *gorm.DB, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health: httpH.NewHealthHandler(dbPinger(database)),
		Author: httpH.NewAuthorHandler(log, services.Authors),
		Book:   httpH.NewBookHandler(log, services.Books),
	}
}

func wireServer(log *logger.Logger, cfg Config, metrics *observability.Metrics, handlers Handlers) *http.Server {
	serviceName := ""
	if cfg.OtelEnabled {
		serviceName = cfg.ServiceName
	}
	router := http.NewRouter(http.RouterConfig{
		Log:           log,
		Metrics:       metrics,
		ServiceName:   serviceName,
		CORSOrigins:   cfg.CORSOrigins,
		AuthorHandler: handlers.Author,
		BookHandler:   handlers.Book,
		HealthHandler: handlers.Health,
	})
	return http.NewServer(log, http.ServerConfig{
		Addr:            cfg.Addr(),
		ShutdownTimeout: cfg.ShutdownTimeout,
	}, router)
}

func dbPinger(database *gorm.DB) httpH.Pinger {
	return func(ctx context.Context) error {
		sqlDB, err := database.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}
}
