package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/guttosm/parcel-service/internal/domain/dto"
	"github.com/guttosm/parcel-service/internal/domain/model"
	"github.com/guttosm/parcel-service/internal/packing"
	"github.com/guttosm/parcel-service/internal/repository"
	"golang.org/x/sync/errgroup"
)

// ErrUnknownProducts matches an UnknownProductsError.
var ErrUnknownProducts = errors.New("unknown products")

// UnknownProductsError lists cart product IDs missing from the catalog.
type UnknownProductsError struct {
	IDs []int
}

func (e *UnknownProductsError) Error() string {
	ids := make([]string, len(e.IDs))
	for i, id := range e.IDs {
		ids[i] = strconv.Itoa(id)
	}
	return "unknown product ids: " + strings.Join(ids, ", ")
}

func (e *UnknownProductsError) Is(target error) bool {
	return target == ErrUnknownProducts
}

// CatalogService reads the product catalog and turns carts into items.
type CatalogService interface {
	Products(ctx context.Context, category string) ([]model.Product, error)
	Categories(ctx context.Context) ([]string, error)
	// ResolveCart expands cart lines into one item per unit, in line order.
	ResolveCart(ctx context.Context, lines []dto.CartLine) ([]packing.Item, error)
}

// CatalogServiceImpl implements CatalogService on the product repository.
type CatalogServiceImpl struct {
	repo     repository.ProductRepositoryInterface
	maxItems int
}

// CatalogOption configures a CatalogServiceImpl.
type CatalogOption func(*CatalogServiceImpl)

// WithCartLimit rejects carts expanding to more than n items before the
// catalog is queried; zero means no cap.
func WithCartLimit(n int) CatalogOption {
	return func(s *CatalogServiceImpl) {
		s.maxItems = n
	}
}

// NewCatalogService creates a catalog service.
func NewCatalogService(repo repository.ProductRepositoryInterface, opts ...CatalogOption) *CatalogServiceImpl {
	s := &CatalogServiceImpl{repo: repo}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Products returns all products, or those of one category when category
// is set.
func (s *CatalogServiceImpl) Products(ctx context.Context, category string) ([]model.Product, error) {
	if category == "" {
		return s.repo.FindAll(ctx)
	}
	return s.repo.FindByCategory(ctx, category)
}

func (s *CatalogServiceImpl) Categories(ctx context.Context) ([]string, error) {
	return s.repo.Categories(ctx)
}

func (s *CatalogServiceImpl) ResolveCart(ctx context.Context, lines []dto.CartLine) ([]packing.Item, error) {
	total := dto.CartUnits(lines)
	if err := dto.CheckUnits(total, s.maxItems); err != nil {
		return nil, err
	}

	ids := make([]int, 0, len(lines))
	seen := make(map[int]bool, len(lines))
	for _, l := range lines {
		if l.Quantity > 0 && !seen[l.ProductID] {
			seen[l.ProductID] = true
			ids = append(ids, l.ProductID)
		}
	}

	products, err := s.repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load cart products: %w", err)
	}
	byID := make(map[int]model.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	var missing []int
	for _, id := range ids {
		if _, ok := byID[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		sort.Ints(missing)
		return nil, &UnknownProductsError{IDs: missing}
	}

	items := make([]packing.Item, 0, total)
	for _, l := range lines {
		it := byID[l.ProductID].Item()
		for i := 0; i < l.Quantity; i++ {
			items = append(items, it)
		}
	}
	return items, nil
}

// CartService packs a cart: product lookup and container lookup run
// concurrently, then the calculator packs the resolved items.
type CartService struct {
	catalog    CatalogService
	containers ContainerService
	calculator ParcelCalculator
}

// NewCartService creates a cart service.
func NewCartService(catalog CatalogService, containers ContainerService, calculator ParcelCalculator) *CartService {
	return &CartService{catalog: catalog, containers: containers, calculator: calculator}
}

// PackCart resolves lines and packs them. It returns the resolved items
// with the result.
func (s *CartService) PackCart(ctx context.Context, lines []dto.CartLine) (packing.Result, []packing.Item, error) {
	var (
		items      []packing.Item
		containers []packing.Container
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, err = s.catalog.ResolveCart(gctx, lines)
		return err
	})
	g.Go(func() error {
		containers, _ = s.containers.Containers(gctx)
		return nil
	})
	if err := g.Wait(); err != nil {
		return packing.Result{}, nil, err
	}

	res, err := s.calculator.Pack(ctx, items, containers)
	if err != nil {
		return packing.Result{}, nil, err
	}
	return res, items, nil
}
