// Package layer places boxes in horizontal layers. Each layer starts from
// the largest footprint and is filled first-fit in the order the boxes
// arrive, trying every orientation of every box.
package layer

import (
	"context"

	"github.com/guttosm/parcel-service/internal/packing"
)

// Placer builds layers bottom-up inside the first container hypothesis
// that takes every box.
type Placer struct{}

// New creates a layer placer.
func New() *Placer {
	return &Placer{}
}

// Place implements packing.Placer.
func (p *Placer) Place(ctx context.Context, boxes []packing.Box, containers []packing.Container) ([]packing.Placement, packing.Container, error) {
	for _, c := range containers {
		if err := ctx.Err(); err != nil {
			return nil, packing.Container{}, err
		}
		ps, ok, err := fill(ctx, boxes, c)
		if err != nil {
			return nil, packing.Container{}, err
		}
		if ok {
			return ps, c, nil
		}
	}
	return nil, packing.Container{}, packing.ErrNoFit
}

type orientation struct{ w, d, h int }

type rect struct{ x, y, w, d int }

func (r rect) empty() bool { return r.w <= 0 || r.d <= 0 }

type layer struct {
	placements []packing.Placement
	used       []bool
	height     int
	volume     int64
}

func fill(ctx context.Context, boxes []packing.Box, c packing.Container) ([]packing.Placement, bool, error) {
	remaining := append([]packing.Box(nil), boxes...)
	placed := make([]packing.Placement, 0, len(boxes))
	z := 0
	for len(remaining) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, false, err
		}
		l, ok := bestLayer(remaining, c, z)
		if !ok {
			return nil, false, nil
		}
		placed = append(placed, l.placements...)
		rest := remaining[:0:0]
		for i, b := range remaining {
			if !l.used[i] {
				rest = append(rest, b)
			}
		}
		remaining = rest
		z += l.height
	}
	return placed, true, nil
}

// bestLayer picks the box and orientation with the largest footprint
// (lowest on ties) as the layer base, then keeps whichever footprint
// rotation of that base lets the layer hold the most volume.
func bestLayer(boxes []packing.Box, c packing.Container, z int) (layer, bool) {
	baseIdx := -1
	var base orientation
	for i, b := range boxes {
		for _, o := range b.Orientations() {
			cand := orientation{o[0], o[1], o[2]}
			if cand.w > c.Length || cand.d > c.Width || z+cand.h > c.Height {
				continue
			}
			if baseIdx < 0 || area(cand) > area(base) || (area(cand) == area(base) && cand.h < base.h) {
				baseIdx, base = i, cand
			}
		}
	}
	if baseIdx < 0 {
		return layer{}, false
	}

	best := buildLayer(boxes, baseIdx, base, c, z)
	if turned := (orientation{base.d, base.w, base.h}); turned != base && turned.w <= c.Length && turned.d <= c.Width {
		if alt := buildLayer(boxes, baseIdx, turned, c, z); alt.volume > best.volume {
			best = alt
		}
	}
	return best, true
}

func area(o orientation) int64 { return int64(o.w) * int64(o.d) }

func buildLayer(boxes []packing.Box, baseIdx int, base orientation, c packing.Container, z int) layer {
	l := layer{used: make([]bool, len(boxes)), height: base.h}
	l.add(boxes[baseIdx], baseIdx, base, 0, 0, z)
	free := split(rect{0, 0, c.Length, c.Width}, base.w, base.d)

	for {
		bi, bo, ri, ok := bestFit(boxes, l.used, free, l.height)
		if !ok {
			return l
		}
		r := free[ri]
		l.add(boxes[bi], bi, bo, r.x, r.y, z)
		free = append(free[:ri], free[ri+1:]...)
		free = append(free, split(r, bo.w, bo.d)...)
	}
}

func (l *layer) add(b packing.Box, idx int, o orientation, x, y, z int) {
	l.used[idx] = true
	l.volume += b.Volume()
	l.placements = append(l.placements, packing.Placement{
		Name: b.Name, X: x, Y: y, Z: z, Width: o.w, Depth: o.d, Height: o.h,
	})
}

// bestFit takes the first unused box, in input order, that fits some free
// rectangle, and places it where it leaves the shortest leftover side,
// then the shortest longer side. The caller's sort order decides which
// boxes share a layer.
func bestFit(boxes []packing.Box, used []bool, free []rect, maxHeight int) (int, orientation, int, bool) {
	for i, b := range boxes {
		if used[i] {
			continue
		}
		bestRect := -1
		var (
			bestO               orientation
			bestShort, bestLong int
		)
		for _, raw := range b.Orientations() {
			o := orientation{raw[0], raw[1], raw[2]}
			if o.h > maxHeight {
				continue
			}
			for ri, r := range free {
				if o.w > r.w || o.d > r.d {
					continue
				}
				short := min(r.w-o.w, r.d-o.d)
				long := max(r.w-o.w, r.d-o.d)
				if bestRect < 0 || short < bestShort || (short == bestShort && long < bestLong) {
					bestO, bestRect = o, ri
					bestShort, bestLong = short, long
				}
			}
		}
		if bestRect >= 0 {
			return i, bestO, bestRect, true
		}
	}
	return -1, orientation{}, -1, false
}

// split cuts the part of r not covered by a w×d block at its origin into
// two rectangles, cutting along the shorter leftover side.
func split(r rect, w, d int) []rect {
	lw, ld := r.w-w, r.d-d
	var right, top rect
	if lw < ld {
		right = rect{r.x + w, r.y, lw, d}
		top = rect{r.x, r.y + d, r.w, ld}
	} else {
		right = rect{r.x + w, r.y, lw, r.d}
		top = rect{r.x, r.y + d, w, ld}
	}
	out := make([]rect, 0, 2)
	for _, s := range []rect{right, top} {
		if !s.empty() {
			out = append(out, s)
		}
	}
	return out
}
