package repository

import (
	"context"
	"errors"

	"github.com/guttosm/parcel-service/internal/circuitbreaker"
	"github.com/guttosm/parcel-service/internal/domain/model"
)

// ErrCatalogUnavailable is returned by product reads while the circuit is open.
var ErrCatalogUnavailable = errors.New("product catalog unavailable")

// ProductRepositoryWithCircuitBreaker guards product access. Reads fail with
// ErrCatalogUnavailable while the circuit is open since a cart cannot be
// resolved without the catalog.
type ProductRepositoryWithCircuitBreaker struct {
	repo ProductRepositoryInterface
	cb   *circuitbreaker.CircuitBreaker
}

// NewProductRepositoryWithCircuitBreaker wraps repo with cb.
func NewProductRepositoryWithCircuitBreaker(repo ProductRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *ProductRepositoryWithCircuitBreaker {
	return &ProductRepositoryWithCircuitBreaker{repo: repo, cb: cb}
}

func catalogErr(err error) error {
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		return ErrCatalogUnavailable
	}
	return err
}

func (r *ProductRepositoryWithCircuitBreaker) FindAll(ctx context.Context) ([]model.Product, error) {
	out, err := circuitbreaker.Do(ctx, r.cb, r.repo.FindAll)
	return out, catalogErr(err)
}

func (r *ProductRepositoryWithCircuitBreaker) FindByCategory(ctx context.Context, category string) ([]model.Product, error) {
	out, err := circuitbreaker.Do(ctx, r.cb, func(ctx context.Context) ([]model.Product, error) {
		return r.repo.FindByCategory(ctx, category)
	})
	return out, catalogErr(err)
}

func (r *ProductRepositoryWithCircuitBreaker) FindByIDs(ctx context.Context, ids []int) ([]model.Product, error) {
	out, err := circuitbreaker.Do(ctx, r.cb, func(ctx context.Context) ([]model.Product, error) {
		return r.repo.FindByIDs(ctx, ids)
	})
	return out, catalogErr(err)
}

func (r *ProductRepositoryWithCircuitBreaker) Categories(ctx context.Context) ([]string, error) {
	out, err := circuitbreaker.Do(ctx, r.cb, r.repo.Categories)
	return out, catalogErr(err)
}

func (r *ProductRepositoryWithCircuitBreaker) Upsert(ctx context.Context, products []model.Product) error {
	return catalogErr(r.cb.Execute(ctx, func() error { return r.repo.Upsert(ctx, products) }))
}

func (r *ProductRepositoryWithCircuitBreaker) Count(ctx context.Context) (int64, error) {
	out, err := circuitbreaker.Do(ctx, r.cb, r.repo.Count)
	return out, catalogErr(err)
}

// GetCircuitBreaker exposes the breaker for health reporting.
func (r *ProductRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.cb
}

// CarrierRepositoryWithCircuitBreaker guards carrier access. FindAll returns
// no carriers while the circuit is open so callers fall back to the default
// container hypotheses.
type CarrierRepositoryWithCircuitBreaker struct {
	repo CarrierRepositoryInterface
	cb   *circuitbreaker.CircuitBreaker
}

// NewCarrierRepositoryWithCircuitBreaker wraps repo with cb.
func NewCarrierRepositoryWithCircuitBreaker(repo CarrierRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *CarrierRepositoryWithCircuitBreaker {
	return &CarrierRepositoryWithCircuitBreaker{repo: repo, cb: cb}
}

func (r *CarrierRepositoryWithCircuitBreaker) FindAll(ctx context.Context) ([]model.Carrier, error) {
	out, err := circuitbreaker.Do(ctx, r.cb, r.repo.FindAll)
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		return nil, nil
	}
	return out, err
}

func (r *CarrierRepositoryWithCircuitBreaker) Upsert(ctx context.Context, carriers []model.Carrier) error {
	return r.cb.Execute(ctx, func() error { return r.repo.Upsert(ctx, carriers) })
}

func (r *CarrierRepositoryWithCircuitBreaker) Count(ctx context.Context) (int64, error) {
	return circuitbreaker.Do(ctx, r.cb, r.repo.Count)
}

// GetCircuitBreaker exposes the breaker for health reporting.
func (r *CarrierRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.cb
}

// LogsRepositoryWithCircuitBreaker guards log access. Writes are dropped
// while the circuit is open.
type LogsRepositoryWithCircuitBreaker struct {
	repo LogsRepositoryInterface
	cb   *circuitbreaker.CircuitBreaker
}

// NewLogsRepositoryWithCircuitBreaker wraps repo with cb.
func NewLogsRepositoryWithCircuitBreaker(repo LogsRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *LogsRepositoryWithCircuitBreaker {
	return &LogsRepositoryWithCircuitBreaker{repo: repo, cb: cb}
}

func dropWhenOpen(err error) error {
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		return nil
	}
	return err
}

func (r *LogsRepositoryWithCircuitBreaker) Create(ctx context.Context, entry *model.LogEntry) error {
	return dropWhenOpen(r.cb.Execute(ctx, func() error { return r.repo.Create(ctx, entry) }))
}

func (r *LogsRepositoryWithCircuitBreaker) CreateMany(ctx context.Context, entries []*model.LogEntry) error {
	return dropWhenOpen(r.cb.Execute(ctx, func() error { return r.repo.CreateMany(ctx, entries) }))
}

func (r *LogsRepositoryWithCircuitBreaker) Query(ctx context.Context, opts model.LogQueryOptions) ([]*model.LogEntry, error) {
	return circuitbreaker.Do(ctx, r.cb, func(ctx context.Context) ([]*model.LogEntry, error) {
		return r.repo.Query(ctx, opts)
	})
}

func (r *LogsRepositoryWithCircuitBreaker) Count(ctx context.Context, opts model.LogQueryOptions) (int64, error) {
	return circuitbreaker.Do(ctx, r.cb, func(ctx context.Context) (int64, error) {
		return r.repo.Count(ctx, opts)
	})
}

// GetCircuitBreaker exposes the breaker for health reporting.
func (r *LogsRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.cb
}
