package packing

import "sort"

// SortOrder selects the order in which boxes are handed to a constructor.
type SortOrder int

const (
	// VolumeDesc sorts by volume, then longest side, then height, all descending.
	VolumeDesc SortOrder = iota
	// VolumeAsc is the reverse of VolumeDesc.
	VolumeAsc
	// FootprintDesc sorts by length × width descending, then height descending.
	FootprintDesc
	// HeightDesc sorts by height descending, then footprint descending.
	HeightDesc
)

func (o SortOrder) String() string {
	switch o {
	case VolumeAsc:
		return "volume-asc"
	case FootprintDesc:
		return "footprint-desc"
	case HeightDesc:
		return "height-desc"
	default:
		return "volume-desc"
	}
}

// SortBoxes returns a sorted copy of boxes. The sort is stable so equal
// boxes keep their input order.
func SortBoxes(boxes []Box, order SortOrder) []Box {
	out := make([]Box, len(boxes))
	copy(out, boxes)
	footprint := func(b Box) int64 { return int64(b.Length) * int64(b.Width) }
	volumeDesc := func(a, b Box) bool {
		if a.Volume() != b.Volume() {
			return a.Volume() > b.Volume()
		}
		if a.MaxDim() != b.MaxDim() {
			return a.MaxDim() > b.MaxDim()
		}
		return a.Height > b.Height
	}

	var less func(a, b Box) bool
	switch order {
	case VolumeAsc:
		less = func(a, b Box) bool { return volumeDesc(b, a) }
	case FootprintDesc:
		less = func(a, b Box) bool {
			if footprint(a) != footprint(b) {
				return footprint(a) > footprint(b)
			}
			return a.Height > b.Height
		}
	case HeightDesc:
		less = func(a, b Box) bool {
			if a.Height != b.Height {
				return a.Height > b.Height
			}
			return footprint(a) > footprint(b)
		}
	default:
		less = volumeDesc
	}
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

type point struct{ x, y, z int }

// pointSet keeps extreme points in insertion order.
type pointSet struct {
	list []point
	seen map[point]struct{}
}

func newPointSet() *pointSet {
	ps := &pointSet{seen: make(map[point]struct{})}
	ps.add(point{})
	return ps
}

func (s *pointSet) add(p point) {
	if p.x < 0 || p.y < 0 || p.z < 0 {
		return
	}
	if _, ok := s.seen[p]; ok {
		return
	}
	s.seen[p] = struct{}{}
	s.list = append(s.list, p)
}

// addCorners adds the seven corners of p other than its origin.
func (s *pointSet) addCorners(p Placement) {
	x1, y1, z1 := p.X, p.Y, p.Z
	x2, y2, z2 := p.X2(), p.Y2(), p.Z2()
	s.add(point{x2, y1, z1})
	s.add(point{x1, y2, z1})
	s.add(point{x1, y1, z2})
	s.add(point{x2, y2, z1})
	s.add(point{x2, y1, z2})
	s.add(point{x1, y2, z2})
	s.add(point{x2, y2, z2})
}

// prune drops every point lying inside a placed box.
func (s *pointSet) prune(placed []Placement) {
	kept := s.list[:0]
	for _, pt := range s.list {
		inside := false
		for _, p := range placed {
			if p.containsPoint(pt) {
				inside = true
				break
			}
		}
		if inside {
			delete(s.seen, pt)
			continue
		}
		kept = append(kept, pt)
	}
	s.list = kept
}

// limits bounds coordinates on each axis; zero means unbounded.
type limits struct{ x, y, z int }

func limitsOf(c *Container) limits {
	if c == nil {
		return limits{}
	}
	return limits{c.Length, c.Width, c.Height}
}

func (l limits) admits(p Placement) bool {
	return (l.x == 0 || p.X2() <= l.x) &&
		(l.y == 0 || p.Y2() <= l.y) &&
		(l.z == 0 || p.Z2() <= l.z)
}

// ConstructOptions tunes extreme-point construction.
type ConstructOptions struct {
	Order SortOrder
	// Bounds confines every placement to a container. Construction fails
	// when an item cannot be placed inside it.
	Bounds *Container
	// MaxHeight rejects candidates whose top face rises above it; zero
	// disables the check.
	MaxHeight int
}

// Construct places boxes one by one at extreme points, keeping each box in
// its given orientation. The result is normalized. ok is false only when
// Bounds is set and some box could not be placed inside it.
func Construct(boxes []Box, opts ConstructOptions) ([]Placement, bool) {
	sorted := SortBoxes(boxes, opts.Order)
	lim := limitsOf(opts.Bounds)
	if opts.MaxHeight > 0 && (lim.z == 0 || opts.MaxHeight < lim.z) {
		lim.z = opts.MaxHeight
	}

	placed := make([]Placement, 0, len(sorted))
	points := newPointSet()
	for _, b := range sorted {
		item := Placement{Name: b.Name, Width: b.Length, Depth: b.Width, Height: b.Height}

		best, found := bestExtremePoint(placed, points, item, lim, true)
		if !found {
			best, found = bestExtremePoint(placed, points, item, lim, false)
		}
		if !found {
			if opts.Bounds != nil {
				return nil, false
			}
			right := 0
			for _, p := range placed {
				right = max(right, p.X2())
			}
			best = item.at(right, 0, 0)
		}

		placed = append(placed, best)
		points.addCorners(best)
		points.prune(placed)
	}
	return Normalize(placed), true
}

// Rebuild re-runs construction over an existing placement, keeping the
// orientation each item already has.
func Rebuild(ps []Placement, opts ConstructOptions) ([]Placement, bool) {
	boxes := make([]Box, len(ps))
	for i, p := range ps {
		boxes[i] = Box{Name: p.Name, Length: p.Width, Width: p.Depth, Height: p.Height}
	}
	return Construct(boxes, opts)
}

func bestExtremePoint(placed []Placement, points *pointSet, item Placement, lim limits, requireSupport bool) (Placement, bool) {
	var (
		best      Placement
		bestScore Score
		found     bool
	)
	for _, pt := range points.list {
		c := item.at(pt.x, pt.y, pt.z)
		if !lim.admits(c) {
			continue
		}
		if requireSupport && !isSupported(placed, c) {
			continue
		}
		if collides(placed, c, -1) {
			continue
		}
		s := scoreOf(boundsWith(placed, -1, c))
		if !found || s.Better(bestScore) || (!bestScore.Better(s) && preferPosition(c, best)) {
			best, bestScore, found = c, s, true
		}
	}
	return best, found
}

func isSupported(placed []Placement, c Placement) bool {
	if c.Z == 0 {
		return true
	}
	for _, p := range placed {
		if p.Supports(c) {
			return true
		}
	}
	return false
}

// preferPosition breaks score ties: lower z, then nearer the origin in
// plan, then smaller x, then smaller y.
func preferPosition(a, b Placement) bool {
	if a.Z != b.Z {
		return a.Z < b.Z
	}
	if a.X+a.Y != b.X+b.Y {
		return a.X+a.Y < b.X+b.Y
	}
	if a.X != b.X {
		return a.X < b.X
	}
	return a.Y < b.Y
}
