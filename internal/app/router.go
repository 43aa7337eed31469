package app

import (
	"github.com/guttosm/parcel-service/config"
	"github.com/guttosm/parcel-service/internal/http"
	"github.com/guttosm/parcel-service/internal/middleware"
	"github.com/guttosm/parcel-service/internal/packing"
	"github.com/guttosm/parcel-service/internal/repository"
	"github.com/guttosm/parcel-service/internal/service"
)

// RouterComponents holds the handlers, the router configuration and the
// background workers the router depends on.
type RouterComponents struct {
	Handler       *http.Handler
	HealthHandler *http.HealthHandler
	Config        http.RouterConfig
	RateLimiter   *middleware.RateLimiter
	AuditLogger   *middleware.AsyncLogger
}

// Stop halts the rate limiter cleanup and drains pending log entries.
func (r *RouterComponents) Stop() {
	if r.RateLimiter != nil {
		r.RateLimiter.Stop()
	}
	r.AuditLogger.Stop()
}

// AuthConfig converts the auth settings. Authentication stays off unless
// enabled with at least one key or a token secret.
func AuthConfig(cfg config.AuthConfig) middleware.AuthConfig {
	if !cfg.Enabled {
		return middleware.AuthConfig{}
	}
	auth := middleware.AuthConfig{APIKeys: cfg.APIKeys}
	if cfg.JWTSecretKey != "" {
		auth.JWTSecret = []byte(cfg.JWTSecretKey)
	}
	return auth
}

// InitializeRouter wires services and database components into handlers.
func InitializeRouter(services *ServiceComponents, db *DatabaseComponents, cfg config.Config) *RouterComponents {
	defaults := cfg.Packing.Containers
	if len(defaults) == 0 {
		defaults = packing.DefaultContainers()
	}

	var (
		carriers repository.CarrierRepositoryInterface
		catalog  service.CatalogService
		audit    *middleware.AsyncLogger
	)
	if db != nil {
		carriers = db.Carriers
		catalog = service.NewCatalogService(db.Products, service.WithCartLimit(cfg.Packing.MaxItems))
		audit = middleware.NewAsyncLogger(db.LoggingService, middleware.AsyncLoggerConfig{})
	}
	containers := service.NewContainerService(carriers, defaults, cfg.Carriers.RefreshInterval)

	handler := http.NewHandler(services.Calculator, containers, catalog,
		http.WithAuditLogger(audit), http.WithMaxItems(cfg.Packing.MaxItems))

	health := http.NewHealthHandler()
	if db != nil {
		health.RegisterChecker("mongodb", http.HealthCheckFunc(db.DB.HealthCheck))
		health.RegisterCircuitBreaker(BreakerProducts, db.ProductsCircuitBreaker, true)
		health.RegisterCircuitBreaker(BreakerCarriers, db.CarriersCircuitBreaker, false)
		health.RegisterCircuitBreaker(BreakerLogs, db.LogsCircuitBreaker, false)
	}

	var limiter *middleware.RateLimiter
	if cfg.Server.RateLimit > 0 {
		limiter = middleware.NewRateLimiter(cfg.Server.RateLimit, cfg.Server.RateWindow)
	}

	routerCfg := http.DefaultRouterConfig()
	routerCfg.Auth = AuthConfig(cfg.Auth)
	routerCfg.CORSOrigins = cfg.Server.CORSOrigins
	routerCfg.RequestTimeout = cfg.Server.RequestTimeout
	routerCfg.SwaggerUser = cfg.Server.SwaggerUser
	routerCfg.SwaggerPass = cfg.Server.SwaggerPass
	routerCfg.RateLimiter = limiter
	routerCfg.AuditLogger = audit

	return &RouterComponents{
		Handler:       handler,
		HealthHandler: health,
		Config:        routerCfg,
		RateLimiter:   limiter,
		AuditLogger:   audit,
	}
}
