package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/parcel-service/internal/metrics"
	"github.com/guttosm/parcel-service/internal/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RouterConfig holds the router options.
type RouterConfig struct {
	Auth           middleware.AuthConfig
	CORSOrigins    []string
	RequestTimeout time.Duration
	SwaggerUser    string
	SwaggerPass    string
	// RateLimiter is owned by the caller, which stops it on shutdown. Nil
	// disables rate limiting.
	RateLimiter *middleware.RateLimiter
	// AuditLogger persists request logs; nil keeps them on the console.
	AuditLogger *middleware.AsyncLogger
}

// DefaultRouterConfig returns an open router with a 10s request budget.
func DefaultRouterConfig() RouterConfig {
	return RouterConfig{RequestTimeout: 10 * time.Second}
}

// NewRouter builds the gin engine.
func NewRouter(handler *Handler, healthHandler *HealthHandler, cfg RouterConfig) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.CORS(cfg.CORSOrigins),
		middleware.RequestID(),
		middleware.Recovery(),
		metrics.PrometheusMiddleware(),
		middleware.Compression(),
		middleware.RequestLogger(cfg.AuditLogger),
		middleware.ErrorHandler(),
	)

	registerInfrastructureRoutes(router, healthHandler, &cfg)

	api := router.Group("/api")
	api.Use(middleware.Authenticate(cfg.Auth))
	if cfg.RateLimiter != nil {
		api.Use(cfg.RateLimiter.Middleware())
	}
	api.Use(middleware.Timeout(cfg.RequestTimeout))

	for _, group := range []RouteGroup{NewPackRoutes(handler), NewCatalogRoutes(handler)} {
		group.RegisterRoutes(api)
	}

	return router
}

// registerInfrastructureRoutes mounts health, metrics and the API docs.
func registerInfrastructureRoutes(router *gin.Engine, healthHandler *HealthHandler, cfg *RouterConfig) {
	healthHandler.Register(router)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if cfg.SwaggerUser != "" && cfg.SwaggerPass != "" {
		docs := router.Group("/swagger", gin.BasicAuth(gin.Accounts{cfg.SwaggerUser: cfg.SwaggerPass}))
		docs.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
		return
	}
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
