package app

import (
	"context"
	"time"

	"github.com/guttosm/parcel-service/config"
	"github.com/guttosm/parcel-service/internal/circuitbreaker"
	"github.com/guttosm/parcel-service/internal/metrics"
	"github.com/guttosm/parcel-service/internal/repository"
	"github.com/guttosm/parcel-service/internal/service"
	"github.com/rs/zerolog/log"
)

const setupTimeout = 10 * time.Second

// Circuit breaker names, also used as metric labels.
const (
	BreakerProducts = "mongodb-products"
	BreakerCarriers = "mongodb-carriers"
	BreakerLogs     = "mongodb-logs"
)

// DatabaseComponents holds the MongoDB backed repositories, each behind its
// own circuit breaker.
type DatabaseComponents struct {
	DB             *repository.MongoDB
	Products       repository.ProductRepositoryInterface
	Carriers       repository.CarrierRepositoryInterface
	LoggingService service.LoggingService

	ProductsCircuitBreaker *circuitbreaker.CircuitBreaker
	CarriersCircuitBreaker *circuitbreaker.CircuitBreaker
	LogsCircuitBreaker     *circuitbreaker.CircuitBreaker
}

// Close disconnects from MongoDB. It is safe on a nil receiver.
func (d *DatabaseComponents) Close(ctx context.Context) error {
	if d == nil || d.DB == nil {
		return nil
	}
	return d.DB.Close(ctx)
}

func newBreaker(name string, cfg config.DatabaseConfig) *circuitbreaker.CircuitBreaker {
	metrics.SetCircuitBreakerState(name, int(circuitbreaker.StateClosed))
	return circuitbreaker.New(circuitbreaker.Config{
		FailureThreshold: cfg.CircuitBreakerFailureThreshold,
		SuccessThreshold: cfg.CircuitBreakerSuccessThreshold,
		Timeout:          cfg.CircuitBreakerTimeout,
		Name:             name,
		OnStateChange: func(name string, to circuitbreaker.State) {
			metrics.SetCircuitBreakerState(name, int(to))
		},
	})
}

// InitializeDatabase connects to MongoDB, seeds empty catalogs and sets the
// logs TTL. It returns nil when the database is disabled or unreachable; the
// service then runs on default containers without a catalog.
func InitializeDatabase(cfg config.DatabaseConfig) *DatabaseComponents {
	if !cfg.Enabled {
		return nil
	}

	db, err := repository.NewMongoDB(cfg.URI, cfg.DatabaseName)
	if err != nil {
		log.Error().Err(err).Msg("failed to connect to MongoDB, continuing without database")
		return nil
	}
	log.Info().Str("database", cfg.DatabaseName).Msg("connected to MongoDB")

	ctx, cancel := context.WithTimeout(context.Background(), setupTimeout)
	defer cancel()

	if err := db.SetLogsTTL(ctx, cfg.LogsTTL); err != nil {
		log.Warn().Err(err).Msg("failed to set logs TTL index")
	}

	productsCB := newBreaker(BreakerProducts, cfg)
	carriersCB := newBreaker(BreakerCarriers, cfg)
	logsCB := newBreaker(BreakerLogs, cfg)

	products := repository.NewProductRepositoryWithCircuitBreaker(repository.NewProductRepository(db), productsCB)
	carriers := repository.NewCarrierRepositoryWithCircuitBreaker(repository.NewCarrierRepository(db), carriersCB)
	logs := repository.NewLogsRepositoryWithCircuitBreaker(repository.NewLogsRepository(db), logsCB)

	if cfg.Seed {
		if err := repository.Seed(ctx, products, carriers); err != nil {
			log.Warn().Err(err).Msg("failed to seed catalog")
		}
	}

	return &DatabaseComponents{
		DB:                     db,
		Products:               products,
		Carriers:               carriers,
		LoggingService:         service.NewLoggingService(logs),
		ProductsCircuitBreaker: productsCB,
		CarriersCircuitBreaker: carriersCB,
		LogsCircuitBreaker:     logsCB,
	}
}
