// Package app wires configuration, storage, services and the HTTP router.
package app

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/parcel-service/config"
	"github.com/guttosm/parcel-service/internal/http"
	"github.com/rs/zerolog/log"
)

// App is the assembled service.
type App struct {
	Router   *gin.Engine
	Services *ServiceComponents
	Database *DatabaseComponents
	Routes   *RouterComponents
}

// InitializeApp creates and wires all application dependencies. The
// logger is configured first since every other component logs.
func InitializeApp(cfg config.Config) *App {
	InitializeLogger(cfg.Log)

	services := InitializeServices(cfg)
	db := InitializeDatabase(cfg.Database)
	routes := InitializeRouter(services, db, cfg)

	return &App{
		Router:   http.NewRouter(routes.Handler, routes.HealthHandler, routes.Config),
		Services: services,
		Database: db,
		Routes:   routes,
	}
}

// Close stops background workers, flushing queued log entries before the
// database connection goes away.
func (a *App) Close(ctx context.Context) {
	a.Routes.Stop()
	if err := a.Database.Close(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to disconnect from MongoDB")
	}
}
