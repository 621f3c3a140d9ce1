package http

import (
	"github.com/gin-gonic/gin"

	"github.com/ecoscore/backend/config"
	"github.com/ecoscore/backend/internal/logger"
	"github.com/ecoscore/backend/internal/metrics"
)

// SetupRouter creates and configures the Gin router. m may be nil to run
// without the /metrics endpoint.
func SetupRouter(cfg *config.Config, handler *Handler, log logger.Logger, m *metrics.Metrics) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	if log == nil {
		log = logger.NewNop()
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware(log))
	router.Use(LoggerMiddleware(log))
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))
	if m != nil {
		router.Use(m.Middleware())
		router.GET("/metrics", gin.WrapH(m.Handler()))
	}

	router.GET("/", handler.Root)

	api := router.Group("/api")
	{
		api.GET("/health", handler.HealthCheck)
		api.POST("/eco-score", RateLimitMiddleware(cfg.RateLimit.PerIP), handler.EcoScore)
	}

	return router
}
