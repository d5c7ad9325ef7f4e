package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/patchbridge-backend/internal/http/handlers"
	httpMW "github.com/yungbote/patchbridge-backend/internal/http/middleware"
	"github.com/yungbote/patchbridge-backend/internal/observability"
	"github.com/yungbote/patchbridge-backend/internal/platform/logger"
)

const maxPatchBodyBytes = 1 << 20

type RouterConfig struct {
	Log         *logger.Logger
	Metrics     *observability.Metrics
	ServiceName string
	CORSOrigins []string

	AuthorHandler *httpH.AuthorHandler
	BookHandler   *httpH.BookHandler
	HealthHandler *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS(cfg.CORSOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	api := r.Group("/api/v1")
	patchOnly := []gin.HandlerFunc{
		httpMW.RequireContentType(httpMW.ContentTypeJSONPatch),
		httpMW.LimitBody(maxPatchBodyBytes),
	}
	{
		// Authors
		if cfg.AuthorHandler != nil {
			api.GET("/authors/:id", cfg.AuthorHandler.GetAuthor)
			api.PATCH("/authors/:id", append(patchOnly, cfg.AuthorHandler.PatchAuthor)...)
		}

		// Books
		if cfg.BookHandler != nil {
			api.GET("/books/:id", cfg.BookHandler.GetBook)
			api.PATCH("/books/:id", append(patchOnly, cfg.BookHandler.PatchBook)...)
		}
	}

	return r
}
