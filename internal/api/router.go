package api

import (
	"github.com/gin-gonic/gin"
	"github.com/guttosm/signstats/config"
	"github.com/guttosm/signstats/internal/metrics"
	"github.com/guttosm/signstats/internal/middleware"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// NewRouter creates a Gin engine with routes configured.
// It receives a Handler instance with all business logic already injected.
//
// Responsibilities:
//   - Registers global middlewares (RequestID, Logger, Recovery, ErrorHandler, RateLimiter, Timeout).
//   - Mounts Swagger docs (/swagger/*any) and Prometheus metrics (/metrics).
//   - Configures API v1 routes (/api/v1), with the upload size cap on the upload routes.
//
// Note:
//   - Health and readiness endpoints (/healthz, /readyz) are registered in app.InitializeApp().
func NewRouter(handler *Handler, cfg config.Config) *gin.Engine {
	router := gin.New()

	// ─── Middlewares ───────────────────────────────
	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.RecoveryMiddleware(),
		middleware.ErrorHandler,
		middleware.NewRateLimiter(cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst).Handler(),
		middleware.Timeout(cfg.Server.RequestTimeout),
	)

	// ─── Swagger / metrics ─────────────────────────
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	// ─── API v1 ───────────────────────────────────
	v1 := router.Group("/api/v1")
	{
		uploads := v1.Group("", middleware.BodyLimit(cfg.Upload.MaxBytes))
		uploads.POST("/summaries", handler.CreateSummary)
		uploads.POST("/summaries/export", handler.ExportSummary)

		v1.GET("/summaries/:id/download", handler.DownloadSummary)
	}

	return router
}
