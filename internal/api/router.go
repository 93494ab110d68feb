package api

import (
	"context"
	"net/http"
	"time"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/d60-Lab/channel-engage/config"
	_ "github.com/d60-Lab/channel-engage/docs"
	"github.com/d60-Lab/channel-engage/internal/api/handler"
	"github.com/d60-Lab/channel-engage/internal/metrics"
	"github.com/d60-Lab/channel-engage/pkg/middleware"
	"github.com/d60-Lab/channel-engage/pkg/response"
)

// Pinger 健康检查依赖
type Pinger interface {
	Ping(ctx context.Context) error
}

// SetupRouter 注册路由与中间件
func SetupRouter(cfg *config.Config, h *handler.Handler, db Pinger) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	handler.RegisterValidators()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	if cfg.Tracing.Enabled {
		r.Use(otelgin.Middleware(cfg.Tracing.ServiceName))
	}
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics", "/swagger"})))
	r.Use(middleware.AccessLog())

	r.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := db.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, response.Response{Code: http.StatusServiceUnavailable, Message: err.Error()})
			return
		}
		response.Success(c, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	v1.Use(middleware.JWTAuth(cfg.JWT.Secret))
	{
		v1.POST("/items", h.Publish)
		v1.GET("/items/:id/counts", h.Counts)
		v1.GET("/items/:id/promotion", h.Promotion)
		v1.GET("/items/:id/comments", h.ListComments)
		v1.DELETE("/items/:id/comments/:comment_id", h.DeleteComment)
		v1.POST("/events", h.SubmitEvent)
		v1.GET("/users/:user_id/collections", h.ListCollections)
	}
	return r
}
