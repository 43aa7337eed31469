//go:build !integration

package packing_test

import (
	"context"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/guttosm/parcel-service/internal/packing"
	"github.com/guttosm/parcel-service/internal/packing/layer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var nekoposu = packing.Container{Name: "Nekoposu", Length: 312, Width: 228, Height: 30}

func newEngine(opts ...packing.Option) *packing.Engine {
	return packing.New(append([]packing.Option{packing.WithPlacer(layer.New())}, opts...)...)
}

func repeat(n int, it packing.Item) []packing.Item {
	out := make([]packing.Item, n)
	for i := range out {
		out[i] = it
	}
	return out
}

func assertValidResult(t *testing.T, items []packing.Item, res packing.Result) {
	t.Helper()
	require.Equal(t, packing.OutcomePacked, res.Outcome)
	require.Len(t, res.Placements, len(items))
	assert.False(t, packing.HasCollision(res.Placements))

	minX, minY, minZ := res.Placements[0].X, res.Placements[0].Y, res.Placements[0].Z
	for i, p := range res.Placements {
		minX, minY, minZ = min(minX, p.X), min(minY, p.Y), min(minZ, p.Z)
		assert.Equal(t, packing.Palette[i%len(packing.Palette)], p.Color)
	}
	assert.Equal(t, [3]int{0, 0, 0}, [3]int{minX, minY, minZ})

	weight := 0
	for _, it := range items {
		weight += it.WeightG
	}
	assert.Equal(t, packing.Measure(res.Placements, weight), res.Dimensions)
	assert.Equal(t, len(items), res.Dimensions.ItemCount)
}

func TestEngine_PackEmpty(t *testing.T) {
	res := newEngine().Pack(context.Background(), nil)

	assert.Equal(t, packing.OutcomePacked, res.Outcome)
	assert.Empty(t, res.Placements)
	assert.Equal(t, packing.Dimensions{}, res.Dimensions)
}

func TestEngine_FitFlatEnvelope(t *testing.T) {
	tests := []struct {
		name  string
		items []packing.Item
		check func(t *testing.T, d packing.Dimensions)
	}{
		{
			name:  "two flat items lie side by side",
			items: repeat(2, packing.Item{Name: "sticker sheet", LengthCm: 15, WidthCm: 20, HeightCm: 2, WeightG: 40}),
			check: func(t *testing.T, d packing.Dimensions) {
				assert.LessOrEqual(t, d.HeightCm, 3.0)
				assert.LessOrEqual(t, d.SizeSum(), 31.2+22.8+3)
			},
		},
		{
			name:  "upright item is reoriented",
			items: []packing.Item{{Name: "art board", LengthCm: 20, WidthCm: 2, HeightCm: 15, WeightG: 120}},
			check: func(t *testing.T, d packing.Dimensions) {
				got := []float64{d.LengthCm, d.WidthCm, d.HeightCm}
				sort.Float64s(got)
				assert.InDeltaSlice(t, []float64{2, 15, 20}, got, 1e-9)
				assert.InDelta(t, 2.0, d.HeightCm, 1e-9)
			},
		},
		{
			name:  "six tiles form a single layer grid",
			items: repeat(6, packing.Item{Name: "coaster", LengthCm: 10, WidthCm: 10, HeightCm: 2, WeightG: 30}),
			check: func(t *testing.T, d packing.Dimensions) {
				assert.InDelta(t, 30.0, d.LengthCm, 1e-9)
				assert.InDelta(t, 20.0, d.WidthCm, 1e-9)
				assert.InDelta(t, 2.0, d.HeightCm, 1e-9)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, ok := newEngine().Fit(context.Background(), tt.items, nekoposu)

			require.True(t, ok)
			assertValidResult(t, tt.items, res)
			assert.True(t, nekoposu.Holds(res.Placements))
			assert.Equal(t, "Nekoposu", res.Container)
			tt.check(t, res.Dimensions)
		})
	}
}

func TestEngine_FitWithoutPlacer(t *testing.T) {
	items := repeat(6, packing.Item{Name: "coaster", LengthCm: 10, WidthCm: 10, HeightCm: 2})

	res, ok := packing.New().Fit(context.Background(), items, nekoposu)

	require.True(t, ok)
	assert.True(t, strings.HasPrefix(res.Strategy, "extreme-point"))
	assert.InDelta(t, 52.0, res.Dimensions.SizeSum(), 1e-9)
}

func TestEngine_FitRejectsOversizedItem(t *testing.T) {
	items := []packing.Item{{Name: "box", LengthCm: 40, WidthCm: 40, HeightCm: 40, WeightG: 900}}

	res, ok := newEngine().Fit(context.Background(), items, nekoposu)

	assert.False(t, ok)
	assert.Equal(t, packing.OutcomeFallback, res.Outcome)
}

func TestEngine_PackProducesValidResults(t *testing.T) {
	sets := map[string][]packing.Item{
		"single item": {
			{Name: "mug", LengthCm: 12, WidthCm: 9, HeightCm: 10, WeightG: 350},
		},
		"mixed order": {
			{Name: "figure", LengthCm: 30, WidthCm: 20, HeightCm: 10, WeightG: 800},
			{Name: "box a", LengthCm: 15, WidthCm: 15, HeightCm: 10, WeightG: 200},
			{Name: "box b", LengthCm: 15, WidthCm: 15, HeightCm: 10, WeightG: 200},
			{Name: "pin", LengthCm: 10, WidthCm: 10, HeightCm: 5, WeightG: 20},
			{Name: "badge", LengthCm: 5, WidthCm: 5, HeightCm: 3, WeightG: 10},
		},
		"fashion and plush": {
			{Name: "Hoodie", Category: "fashion", LengthCm: 35, WidthCm: 25, HeightCm: 8, WeightG: 600},
			{Name: "Plush Cat", LengthCm: 25, WidthCm: 20, HeightCm: 20, WeightG: 250},
			{Name: "Acrylic Stand", LengthCm: 12, WidthCm: 8, HeightCm: 1, WeightG: 40},
		},
		"flat items": repeat(4, packing.Item{Name: "card", LengthCm: 10, WidthCm: 10, HeightCm: 2.5, WeightG: 15}),
	}
	engine := newEngine()
	for name, items := range sets {
		t.Run(name, func(t *testing.T) {
			res := engine.Pack(context.Background(), items)
			assertValidResult(t, items, res)
			assert.NotEmpty(t, res.Strategy)
		})
	}
}

func TestEngine_PackFallback(t *testing.T) {
	items := []packing.Item{
		{Name: "sheet a", LengthCm: 10, WidthCm: 5, HeightCm: 0, WeightG: 5},
		{Name: "sheet b", LengthCm: 8, WidthCm: 12, HeightCm: 0, WeightG: 7},
	}

	res := newEngine().Pack(context.Background(), items)

	assert.Equal(t, packing.OutcomeFallback, res.Outcome)
	assert.Empty(t, res.Placements)
	assert.Equal(t, packing.Dimensions{LengthCm: 10, WidthCm: 12, HeightCm: 0, WeightG: 12, ItemCount: 2}, res.Dimensions)
}

func TestFallback_UsesUnshrunkDimensions(t *testing.T) {
	res := packing.Fallback([]packing.Item{
		{Name: "Plush Bear", LengthCm: 20, WidthCm: 15, HeightCm: 10, WeightG: 100},
		{Name: "Plush Cat", LengthCm: 18, WidthCm: 16, HeightCm: 12, WeightG: 80},
	})

	assert.Equal(t, packing.Dimensions{LengthCm: 20, WidthCm: 16, HeightCm: 22, WeightG: 180, ItemCount: 2}, res.Dimensions)
}

func TestEngine_LocalizedKeywordsPackAlike(t *testing.T) {
	english := []packing.Item{
		{Name: "Plush Bear", Category: "toys", LengthCm: 20, WidthCm: 15, HeightCm: 10, WeightG: 150},
		{Name: "Mini Plush", Category: "toys", LengthCm: 8, WidthCm: 6, HeightCm: 5, WeightG: 30},
		{Name: "Card Case", Category: "hobby", LengthCm: 10, WidthCm: 7, HeightCm: 2, WeightG: 25},
	}
	japanese := []packing.Item{
		{Name: "くまのぬいぐるみ", Category: "おもちゃ", LengthCm: 20, WidthCm: 15, HeightCm: 10, WeightG: 150},
		{Name: "ちびぐるみ", Category: "おもちゃ", LengthCm: 8, WidthCm: 6, HeightCm: 5, WeightG: 30},
		{Name: "カードケース", Category: "ホビー", LengthCm: 10, WidthCm: 7, HeightCm: 2, WeightG: 25},
	}
	engine := newEngine()

	en := engine.Pack(context.Background(), english)
	ja := engine.Pack(context.Background(), japanese)

	assert.InDelta(t, en.Dimensions.SizeSum(), ja.Dimensions.SizeSum(), 1.0)
	assert.Equal(t, en.Dimensions, ja.Dimensions)
}

func TestEngine_ConcurrentPacking(t *testing.T) {
	items := []packing.Item{
		{Name: "figure", LengthCm: 30, WidthCm: 20, HeightCm: 10},
		{Name: "box", LengthCm: 15, WidthCm: 15, HeightCm: 10},
		{Name: "pin", LengthCm: 10, WidthCm: 10, HeightCm: 5},
	}
	engine := newEngine()
	want := engine.Pack(context.Background(), items)

	var wg sync.WaitGroup
	results := make([]packing.Result, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = engine.Pack(context.Background(), items)
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
}

func TestEngine_PlacerTimeout(t *testing.T) {
	blocking := packing.PlacerFunc(func(ctx context.Context, _ []packing.Box, _ []packing.Container) ([]packing.Placement, packing.Container, error) {
		<-ctx.Done()
		return nil, packing.Container{}, ctx.Err()
	})
	engine := packing.New(packing.WithPlacer(blocking), packing.WithPlacerTimeout(5*time.Millisecond))

	res := engine.Pack(context.Background(), []packing.Item{
		{Name: "a", LengthCm: 10, WidthCm: 10, HeightCm: 10},
		{Name: "b", LengthCm: 10, WidthCm: 10, HeightCm: 10},
	})

	assert.Equal(t, packing.OutcomePacked, res.Outcome)
	assert.True(t, strings.HasPrefix(res.Strategy, "extreme-point"))
}

func TestEngine_WithStrategies(t *testing.T) {
	engine := newEngine(packing.WithStrategies([]packing.Strategy{
		{Name: "only-ep", Order: packing.VolumeDesc, Orientation: packing.OrientFlat, Passes: packing.PassSlide},
	}))

	res := engine.Pack(context.Background(), []packing.Item{{Name: "a", LengthCm: 5, WidthCm: 20, HeightCm: 10}})

	assert.Equal(t, "only-ep", res.Strategy)
	assert.InDelta(t, 5.0, res.Dimensions.HeightCm, 1e-9)
	assert.InDelta(t, 20.0, res.Dimensions.LengthCm, 1e-9)
}
