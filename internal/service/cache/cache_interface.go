// Package cache defines the result cache contract used by the parcel
// calculator.
package cache

import "github.com/guttosm/parcel-service/internal/packing"

// Cache stores packing results by canonical request key.
type Cache interface {
	Get(key string) (packing.Result, bool)
	Set(key string, value packing.Result)
	Invalidate(key string)
	Clear()
	Stop()
}

// Metrics is a point-in-time view of cache performance.
type Metrics struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Size      int
	Capacity  int
}

// HitRatio returns hits over lookups, or zero before the first lookup.
func (m Metrics) HitRatio() float64 {
	total := m.Hits + m.Misses
	if total == 0 {
		return 0
	}
	return float64(m.Hits) / float64(total)
}

// CacheWithMetrics is a Cache that reports Metrics.
type CacheWithMetrics interface {
	Cache
	Metrics() Metrics
}
