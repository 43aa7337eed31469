package app

import (
	"github.com/guttosm/parcel-service/config"
	"github.com/guttosm/parcel-service/internal/logger"
	"github.com/guttosm/parcel-service/internal/packing"
	"github.com/guttosm/parcel-service/internal/packing/layer"
	"github.com/guttosm/parcel-service/internal/service"
)

// ServiceComponents holds the packing engine and the calculator around it.
type ServiceComponents struct {
	Engine     *packing.Engine
	Calculator service.ParcelCalculator
}

// InitializeServices builds the engine with the layer placer and wraps it
// in the caching calculator.
func InitializeServices(cfg config.Config) *ServiceComponents {
	engineOpts := []packing.Option{
		packing.WithPlacer(layer.New()),
		packing.WithLogger(logger.Component("packing")),
		packing.WithPlacerTimeout(cfg.Packing.PlacerTimeout),
	}
	if len(cfg.Packing.Containers) > 0 {
		engineOpts = append(engineOpts, packing.WithContainers(cfg.Packing.Containers))
	}
	engine := packing.New(engineOpts...)

	var opts []service.Option
	if cfg.Cache.Size > 0 {
		opts = append(opts, service.WithCache(cfg.Cache.Size, cfg.Cache.TTL))
	}
	if cfg.Packing.MaxItems > 0 {
		opts = append(opts, service.WithMaxItems(cfg.Packing.MaxItems))
	}

	return &ServiceComponents{
		Engine:     engine,
		Calculator: service.NewParcelCalculatorService(engine, opts...),
	}
}
