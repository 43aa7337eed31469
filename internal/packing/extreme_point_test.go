//go:build !integration

package packing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func box(name string, l, w, h int) Box {
	return Box{Name: name, Length: l, Width: w, Height: h}
}

// tieredBoxes is a four item set whose construction is worked out below:
// base on the floor, two cubes side by side on it, the small box on top of
// the first cube.
func tieredBoxes() []Box {
	return []Box{
		box("base", 300, 200, 100),
		box("cube-a", 150, 150, 100),
		box("cube-b", 150, 150, 100),
		box("small", 100, 100, 50),
	}
}

func byName(ps []Placement) map[string]Placement {
	out := make(map[string]Placement, len(ps))
	for _, p := range ps {
		out[p.Name] = p
	}
	return out
}

func assertSupported(t *testing.T, ps []Placement) {
	t.Helper()
	for _, p := range ps {
		if p.Z == 0 {
			continue
		}
		assert.True(t, isSupported(ps, p), "%s at z=%d has no support", p.Name, p.Z)
	}
}

// assertResting checks that nothing floats: every raised placement touches
// the top of at least one other placement.
func assertResting(t *testing.T, ps []Placement) {
	t.Helper()
	for i, p := range ps {
		if p.Z == 0 {
			continue
		}
		resting := false
		for j, o := range ps {
			if j != i && o.Z2() == p.Z && o.footprintOverlaps(p) {
				resting = true
			}
		}
		assert.True(t, resting, "%s at z=%d floats", p.Name, p.Z)
	}
}

func TestSortBoxes(t *testing.T) {
	boxes := []Box{
		box("small", 10, 10, 10),
		box("tall", 10, 10, 50),
		box("wide", 40, 40, 5),
		box("long", 50, 10, 10),
	}
	names := func(bs []Box) []string {
		out := make([]string, len(bs))
		for i, b := range bs {
			out[i] = b.Name
		}
		return out
	}

	tests := []struct {
		order SortOrder
		want  []string
	}{
		{VolumeDesc, []string{"wide", "tall", "long", "small"}},
		{VolumeAsc, []string{"small", "long", "tall", "wide"}},
		{FootprintDesc, []string{"wide", "long", "tall", "small"}},
		{HeightDesc, []string{"tall", "long", "small", "wide"}},
	}
	for _, tt := range tests {
		t.Run(tt.order.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, names(SortBoxes(boxes, tt.order)))
		})
	}
	assert.Equal(t, "small", boxes[0].Name, "input must not be reordered")
}

func TestConstruct_SingleBox(t *testing.T) {
	ps, ok := Construct([]Box{box("a", 200, 150, 20)}, ConstructOptions{})

	require.True(t, ok)
	require.Len(t, ps, 1)
	assert.Equal(t, Placement{Name: "a", Width: 200, Depth: 150, Height: 20}, ps[0])
}

func TestConstruct_Empty(t *testing.T) {
	ps, ok := Construct(nil, ConstructOptions{})
	assert.True(t, ok)
	assert.Empty(t, ps)
}

func TestConstruct_StacksOnFullySupportedTops(t *testing.T) {
	ps, ok := Construct(tieredBoxes(), ConstructOptions{})
	require.True(t, ok)

	got := byName(ps)
	assert.Equal(t, [3]int{0, 0, 0}, [3]int{got["base"].X, got["base"].Y, got["base"].Z})
	assert.Equal(t, [3]int{0, 0, 100}, [3]int{got["cube-a"].X, got["cube-a"].Y, got["cube-a"].Z})
	assert.Equal(t, [3]int{150, 0, 100}, [3]int{got["cube-b"].X, got["cube-b"].Y, got["cube-b"].Z})
	assert.Equal(t, [3]int{0, 0, 200}, [3]int{got["small"].X, got["small"].Y, got["small"].Z})

	d := Measure(ps, 0)
	assert.InDelta(t, 75.0, d.SizeSum(), 1e-9)
	assert.False(t, HasCollision(ps))
	assertSupported(t, ps)
}

func TestConstruct_SmallExtraLandsInGap(t *testing.T) {
	base, ok := Construct(tieredBoxes(), ConstructOptions{})
	require.True(t, ok)
	extended, ok := Construct(append(tieredBoxes(), box("extra", 50, 50, 30)), ConstructOptions{})
	require.True(t, ok)

	extra := byName(extended)["extra"]
	assert.Equal(t, [3]int{0, 150, 100}, [3]int{extra.X, extra.Y, extra.Z})
	assert.InDelta(t, Measure(base, 0).SizeSum(), Measure(extended, 0).SizeSum(), 1e-9)
	assertSupported(t, extended)

	baseSum := Measure(Compact(base, CompactOptions{}), 0).SizeSum()
	extendedSum := Measure(Compact(extended, CompactOptions{}), 0).SizeSum()
	assert.LessOrEqual(t, extendedSum, baseSum+5.0)
}

func TestConstruct_StackingWinsOnAspect(t *testing.T) {
	ps, ok := Construct([]Box{box("a", 100, 100, 100), box("b", 100, 100, 100)}, ConstructOptions{})
	require.True(t, ok)

	// every neighbour gives a size sum of 40 cm; only the stack keeps a
	// square footprint.
	b := byName(ps)["b"]
	assert.Equal(t, [3]int{0, 0, 100}, [3]int{b.X, b.Y, b.Z})
}

func TestConstruct_Bounds(t *testing.T) {
	nekoposu := &Container{Name: "Nekoposu", Length: 312, Width: 228, Height: 30}

	t.Run("fills a flat envelope", func(t *testing.T) {
		boxes := make([]Box, 6)
		for i := range boxes {
			boxes[i] = box("tile", 100, 100, 20)
		}
		ps, ok := Construct(boxes, ConstructOptions{Bounds: nekoposu})
		require.True(t, ok)
		assert.True(t, nekoposu.Holds(ps))

		d := Measure(ps, 0)
		assert.InDelta(t, 30.0, d.LengthCm, 1e-9)
		assert.InDelta(t, 20.0, d.WidthCm, 1e-9)
		assert.InDelta(t, 2.0, d.HeightCm, 1e-9)
	})

	t.Run("fails when a box cannot be placed", func(t *testing.T) {
		_, ok := Construct([]Box{box("tall", 100, 100, 50)}, ConstructOptions{Bounds: nekoposu})
		assert.False(t, ok)
	})
}

func TestConstruct_MaxHeight(t *testing.T) {
	boxes := []Box{box("a", 100, 100, 20), box("b", 100, 100, 20)}

	ps, ok := Construct(boxes, ConstructOptions{MaxHeight: 20})
	require.True(t, ok)
	assert.InDelta(t, 2.0, Measure(ps, 0).HeightCm, 1e-9)

	// both neighbours tie on score; the smaller x wins.
	b := byName(ps)["b"]
	assert.Equal(t, [3]int{0, 100, 0}, [3]int{b.X, b.Y, b.Z})
}

func TestConstruct_ZeroHeightBox(t *testing.T) {
	ps, ok := Construct([]Box{box("sheet", 100, 100, 0), box("block", 50, 50, 50)}, ConstructOptions{})
	require.True(t, ok)
	assert.Len(t, ps, 2)
	assert.False(t, HasCollision(ps))
}

func TestRebuild_KeepsOrientation(t *testing.T) {
	in := []Placement{
		{Name: "a", X: 0, Y: 0, Z: 0, Width: 150, Depth: 200, Height: 20},
		{Name: "b", X: 0, Y: 0, Z: 20, Width: 150, Depth: 200, Height: 20},
	}

	ps, ok := Rebuild(in, ConstructOptions{MaxHeight: 20})
	require.True(t, ok)
	for _, p := range ps {
		assert.Equal(t, [3]int{150, 200, 20}, [3]int{p.Width, p.Depth, p.Height})
	}
	assert.InDelta(t, 2.0, Measure(ps, 0).HeightCm, 1e-9)
}
