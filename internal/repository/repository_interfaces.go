package repository

import (
	"context"

	"github.com/guttosm/parcel-service/internal/domain/model"
)

// ProductRepositoryInterface is the product catalog as seen by services.
type ProductRepositoryInterface interface {
	FindAll(ctx context.Context) ([]model.Product, error)
	FindByCategory(ctx context.Context, category string) ([]model.Product, error)
	FindByIDs(ctx context.Context, ids []int) ([]model.Product, error)
	Categories(ctx context.Context) ([]string, error)
	Upsert(ctx context.Context, products []model.Product) error
	Count(ctx context.Context) (int64, error)
}

// CarrierRepositoryInterface is the carrier catalog as seen by services.
type CarrierRepositoryInterface interface {
	FindAll(ctx context.Context) ([]model.Carrier, error)
	Upsert(ctx context.Context, carriers []model.Carrier) error
	Count(ctx context.Context) (int64, error)
}

// LogsRepositoryInterface stores and queries request logs.
type LogsRepositoryInterface interface {
	Create(ctx context.Context, entry *model.LogEntry) error
	CreateMany(ctx context.Context, entries []*model.LogEntry) error
	Query(ctx context.Context, opts model.LogQueryOptions) ([]*model.LogEntry, error)
	Count(ctx context.Context, opts model.LogQueryOptions) (int64, error)
}

var (
	_ ProductRepositoryInterface = (*ProductRepository)(nil)
	_ ProductRepositoryInterface = (*ProductRepositoryWithCircuitBreaker)(nil)
	_ CarrierRepositoryInterface = (*CarrierRepository)(nil)
	_ CarrierRepositoryInterface = (*CarrierRepositoryWithCircuitBreaker)(nil)
	_ LogsRepositoryInterface    = (*LogsRepository)(nil)
	_ LogsRepositoryInterface    = (*LogsRepositoryWithCircuitBreaker)(nil)
)
