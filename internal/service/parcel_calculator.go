package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/guttosm/parcel-service/internal/domain/dto"
	"github.com/guttosm/parcel-service/internal/metrics"
	"github.com/guttosm/parcel-service/internal/packing"
	"github.com/guttosm/parcel-service/internal/service/cache"
	"github.com/rs/zerolog/log"
)

// ErrTooManyItems is returned when a request expands to more items than
// the calculator accepts.
var ErrTooManyItems = dto.ErrTooManyItems

// TooManyItemsError carries the request size and the configured limit.
type TooManyItemsError = dto.TooManyItemsError

// ParcelCalculator packs item lists into the smallest parcel it can find.
type ParcelCalculator interface {
	// Pack runs the engine over containers, or over the engine's own
	// hypotheses when containers is empty.
	Pack(ctx context.Context, items []packing.Item, containers []packing.Container) (packing.Result, error)
	// Fit reports whether items fit inside container.
	Fit(ctx context.Context, items []packing.Item, container packing.Container) (packing.Result, bool, error)
	// InvalidateCache drops cached results, e.g. after the catalog changed.
	InvalidateCache()
}

// Option configures a ParcelCalculatorService.
type Option func(*ParcelCalculatorService)

// ParcelCalculatorService caches engine results by canonical request and
// records packing metrics.
type ParcelCalculatorService struct {
	engine   *packing.Engine
	cache    cache.Cache
	maxItems int
}

// NewParcelCalculatorService wraps engine.
func NewParcelCalculatorService(engine *packing.Engine, opts ...Option) *ParcelCalculatorService {
	s := &ParcelCalculatorService{engine: engine}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WithCache enables a sharded result cache.
func WithCache(capacity int, ttl time.Duration) Option {
	return func(s *ParcelCalculatorService) {
		if capacity > 0 {
			s.cache = NewShardedCache(capacity, ttl, 16)
		}
	}
}

// WithCacheInterface injects a cache implementation.
func WithCacheInterface(c cache.Cache) Option {
	return func(s *ParcelCalculatorService) {
		s.cache = c
	}
}

// WithMaxItems caps the number of items per request; zero means no cap.
func WithMaxItems(n int) Option {
	return func(s *ParcelCalculatorService) {
		s.maxItems = n
	}
}

func (s *ParcelCalculatorService) Pack(ctx context.Context, items []packing.Item, containers []packing.Container) (packing.Result, error) {
	if err := s.checkSize(items); err != nil {
		return packing.Result{}, err
	}
	if len(items) == 0 {
		return packing.Empty(), nil
	}

	key := requestKey("pack", items, containers)
	if res, ok := s.lookup(key); ok {
		return res, nil
	}

	start := time.Now()
	res := s.engine.PackWithContainers(ctx, items, containers)
	if err := ctx.Err(); err != nil {
		// a cancelled run may have skipped strategies; do not cache it
		return res, err
	}
	metrics.RecordPacking("pack", string(res.Outcome), res.Strategy, len(items), time.Since(start))
	s.store(key, res)

	log.Debug().
		Int("items", len(items)).
		Str("outcome", string(res.Outcome)).
		Str("strategy", res.Strategy).
		Float64("size_sum_cm", res.Dimensions.SizeSum()).
		Dur("duration", time.Since(start)).
		Msg("packed items")
	return res, nil
}

func (s *ParcelCalculatorService) Fit(ctx context.Context, items []packing.Item, container packing.Container) (packing.Result, bool, error) {
	if err := s.checkSize(items); err != nil {
		return packing.Result{}, false, err
	}

	key := requestKey("fit", items, []packing.Container{container})
	if res, ok := s.lookup(key); ok {
		return res, res.Outcome == packing.OutcomePacked, nil
	}

	start := time.Now()
	res, fits := s.engine.Fit(ctx, items, container)
	if err := ctx.Err(); err != nil {
		return res, fits, err
	}
	outcome := string(res.Outcome)
	if !fits {
		outcome = "no_fit"
	}
	metrics.RecordPacking("fit", outcome, res.Strategy, len(items), time.Since(start))
	s.store(key, res)
	return res, fits, nil
}

func (s *ParcelCalculatorService) InvalidateCache() {
	if s.cache != nil {
		s.cache.Clear()
	}
}

func (s *ParcelCalculatorService) checkSize(items []packing.Item) error {
	return dto.CheckUnits(len(items), s.maxItems)
}

func (s *ParcelCalculatorService) lookup(key string) (packing.Result, bool) {
	if s.cache == nil {
		return packing.Result{}, false
	}
	return s.cache.Get(key)
}

func (s *ParcelCalculatorService) store(key string, res packing.Result) {
	if s.cache != nil {
		s.cache.Set(key, res)
	}
}

// requestKey hashes the ordered item list and container hypotheses. Item
// names are part of the key since they label the placements.
func requestKey(kind string, items []packing.Item, containers []packing.Container) string {
	var b strings.Builder
	b.WriteString(kind)
	for _, it := range items {
		b.WriteString("|i:")
		b.WriteString(it.Name)
		for _, n := range it.Names {
			b.WriteByte(',')
			b.WriteString(n)
		}
		b.WriteByte(';')
		b.WriteString(it.Category)
		for _, v := range []float64{it.LengthCm, it.WidthCm, it.HeightCm} {
			b.WriteByte(';')
			b.WriteString(strconv.FormatFloat(v, 'f', -1, 64))
		}
		b.WriteByte(';')
		b.WriteString(strconv.Itoa(it.WeightG))
	}
	for _, c := range containers {
		fmt.Fprintf(&b, "|c:%s;%d;%d;%d", c.Name, c.Length, c.Width, c.Height)
	}
	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}
