//go:build !integration

package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetrics_HitRatio(t *testing.T) {
	tests := []struct {
		name    string
		metrics Metrics
		want    float64
	}{
		{"no lookups", Metrics{}, 0},
		{"all hits", Metrics{Hits: 4}, 1},
		{"mixed", Metrics{Hits: 3, Misses: 1, Evictions: 2}, 0.75},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.metrics.HitRatio(), 1e-9)
		})
	}
}
