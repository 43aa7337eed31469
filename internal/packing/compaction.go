package packing

const (
	// compactionIterations bounds every pass and the pass 0–1 loop.
	compactionIterations = 4
	// flatThreshold is the bounding height (3 cm) above which gap-stacking runs.
	flatThreshold = 30
	// thinThreshold is the item height (1 cm) at or below which thin compaction applies.
	thinThreshold = 10
	// thinTolerance is how far (1 cm) thin compaction may raise the bounding height.
	thinTolerance = 10
)

// PassSet selects compaction passes.
type PassSet uint8

const (
	PassDefensive PassSet = 1 << iota
	PassSlide
	PassGapStack
	PassThin

	AllPasses = PassDefensive | PassSlide | PassGapStack | PassThin
)

// CompactOptions tunes compaction.
type CompactOptions struct {
	// Passes defaults to AllPasses when zero.
	Passes PassSet
	// Bounds confines every move to a container.
	Bounds *Container
}

// Compact runs the enabled passes over a copy of ps: defensive relocation
// and slide-to-origin alternate until neither moves anything, then
// gap-stacking (only while taller than 3 cm), then thin compaction, after
// which the first two passes settle the layout again.
// The input is returned unchanged when nothing moves; otherwise the
// result is normalized.
func Compact(ps []Placement, opts CompactOptions) []Placement {
	layout := clonePlacements(ps)
	if len(layout) < 2 {
		return layout
	}
	passes := opts.Passes
	if passes == 0 {
		passes = AllPasses
	}
	lim := limitsOf(opts.Bounds)

	moved := settle(layout, passes, lim)
	if passes&PassGapStack != 0 && boundsOf(layout).height() > flatThreshold && gapStacking(layout, lim) {
		moved = true
	}
	if passes&PassThin != 0 && thinCompaction(layout, lim) {
		moved = true
		settle(layout, passes, lim)
	}

	if !moved {
		return clonePlacements(ps)
	}
	return Normalize(layout)
}

// settle alternates defensive relocation and slide-to-origin until neither
// moves anything.
func settle(layout []Placement, passes PassSet, lim limits) bool {
	moved := false
	for round := 0; round < compactionIterations; round++ {
		changed := false
		if passes&PassDefensive != 0 && defensiveRelocation(layout, lim) {
			changed = true
		}
		if passes&PassSlide != 0 && slideToOrigin(layout, lim) {
			changed = true
		}
		if !changed {
			break
		}
		moved = true
	}
	return moved
}

// DefensiveRelocation runs only the defensive relocation pass.
func DefensiveRelocation(ps []Placement, opts CompactOptions) ([]Placement, bool) {
	return runPass(ps, opts, defensiveRelocation)
}

// SlideToOrigin runs only the slide-to-origin pass.
func SlideToOrigin(ps []Placement, opts CompactOptions) ([]Placement, bool) {
	return runPass(ps, opts, slideToOrigin)
}

// GapStacking runs only the gap-stacking pass, regardless of height.
func GapStacking(ps []Placement, opts CompactOptions) ([]Placement, bool) {
	return runPass(ps, opts, gapStacking)
}

// ThinCompaction runs only the thin-item pass.
func ThinCompaction(ps []Placement, opts CompactOptions) ([]Placement, bool) {
	return runPass(ps, opts, thinCompaction)
}

func runPass(ps []Placement, opts CompactOptions, pass func([]Placement, limits) bool) ([]Placement, bool) {
	layout := clonePlacements(ps)
	if len(layout) < 2 || !pass(layout, limitsOf(opts.Bounds)) {
		return layout, false
	}
	return Normalize(layout), true
}

// move is the single best relocation found during one iteration.
type move struct {
	index int
	to    Placement
	score Score
}

// consider records c as the best move if it is legal and beats m.
func (m *move) consider(layout []Placement, lim limits, i int, c Placement) {
	if c.samePosition(layout[i]) || !lim.admits(c) || collides(layout, c, i) {
		return
	}
	if s := scoreOf(boundsWith(layout, i, c)); s.Better(m.score) {
		m.index, m.to, m.score = i, c, s
	}
}

// iterate applies the best move produced by search at most
// compactionIterations times, stopping as soon as none improves.
func iterate(layout []Placement, search func(m *move)) bool {
	changed := false
	for iter := 0; iter < compactionIterations; iter++ {
		m := move{index: -1, score: scoreOf(boundsOf(layout))}
		search(&m)
		if m.index < 0 {
			break
		}
		layout[m.index] = m.to
		changed = true
	}
	return changed
}

// defensiveRelocation moves items that sit on the bounding box's edge to
// positions anchored on other items' faces.
func defensiveRelocation(layout []Placement, lim limits) bool {
	return iterate(layout, func(m *move) {
		full := m.score.SizeSum
		for i, it := range layout {
			if scoreOf(boundsWithout(layout, i)).SizeSum >= full-scoreEpsilon {
				continue
			}
			xs, ys, zs := faceAnchors(layout, i)
			for _, x := range xs {
				for _, y := range ys {
					for _, z := range zs {
						m.consider(layout, lim, i, it.at(x, y, z))
					}
				}
			}
		}
	})
}

// faceAnchors collects, per axis, zero and every other item's near face,
// far face, and near face minus the moving item's extent.
func faceAnchors(layout []Placement, i int) (xs, ys, zs []int) {
	it := layout[i]
	ax, ay, az := newAnchors(), newAnchors(), newAnchors()
	ax.add(0)
	ay.add(0)
	az.add(0)
	for j, o := range layout {
		if j == i {
			continue
		}
		ax.add(o.X, o.X2(), o.X-it.Width)
		ay.add(o.Y, o.Y2(), o.Y-it.Depth)
		az.add(o.Z, o.Z2(), o.Z-it.Height)
	}
	return ax.values, ay.values, az.values
}

// anchors is an insertion-ordered set of non-negative coordinates.
type anchors struct {
	values []int
	seen   map[int]struct{}
}

func newAnchors() *anchors {
	return &anchors{seen: make(map[int]struct{})}
}

func (a *anchors) add(vs ...int) {
	for _, v := range vs {
		if v < 0 {
			continue
		}
		if _, ok := a.seen[v]; ok {
			continue
		}
		a.seen[v] = struct{}{}
		a.values = append(a.values, v)
	}
}

// slideToOrigin pushes items toward the origin until they meet another
// item along -x, -y or -z.
func slideToOrigin(layout []Placement, lim limits) bool {
	return iterate(layout, func(m *move) {
		for i, it := range layout {
			tx, ty, tz := slideTargets(layout, i)
			m.consider(layout, lim, i, it.at(tx, ty, tz))
			m.consider(layout, lim, i, it.at(tx, it.Y, it.Z))
			m.consider(layout, lim, i, it.at(it.X, ty, it.Z))
			m.consider(layout, lim, i, it.at(it.X, it.Y, tz))
		}
	})
}

func slideTargets(layout []Placement, i int) (x, y, z int) {
	it := layout[i]
	for j, o := range layout {
		if j == i {
			continue
		}
		overlapX := it.X < o.X2() && o.X < it.X2()
		overlapY := it.Y < o.Y2() && o.Y < it.Y2()
		overlapZ := it.Z < o.Z2() && o.Z < it.Z2()
		if overlapY && overlapZ && o.X2() <= it.X {
			x = max(x, o.X2())
		}
		if overlapX && overlapZ && o.Y2() <= it.Y {
			y = max(y, o.Y2())
		}
		if overlapX && overlapY && o.Z2() <= it.Z {
			z = max(z, o.Z2())
		}
	}
	return x, y, z
}

// gapStacking lifts items onto the top face of a larger support, anchored
// at the support's corners or at other items' edges within its footprint.
func gapStacking(layout []Placement, lim limits) bool {
	return iterate(layout, func(m *move) {
		for i, it := range layout {
			for j, sup := range layout {
				if j == i || it.Width > sup.Width || it.Depth > sup.Depth {
					continue
				}
				xs := stackAnchors(layout, i, sup.X, sup.X2(), it.Width, func(p Placement) (int, int) { return p.X, p.X2() })
				ys := stackAnchors(layout, i, sup.Y, sup.Y2(), it.Depth, func(p Placement) (int, int) { return p.Y, p.Y2() })
				for _, x := range xs {
					for _, y := range ys {
						m.consider(layout, lim, i, it.at(x, y, sup.Z2()))
					}
				}
			}
		}
	})
}

// stackAnchors returns the coordinates along one axis at which an item of
// the given extent fits within [lo, hi].
func stackAnchors(layout []Placement, i, lo, hi, size int, edges func(Placement) (int, int)) []int {
	a := newAnchors()
	fits := func(v int) {
		if v >= lo && v+size <= hi {
			a.add(v)
		}
	}
	fits(lo)
	fits(hi - size)
	for j, o := range layout {
		if j == i {
			continue
		}
		near, far := edges(o)
		fits(near)
		fits(far)
		fits(near - size)
	}
	return a.values
}

// thinCompaction moves thin items onto any support whose top face can hold
// them. A move is taken when it improves the score or when the bounding
// height stays within thinTolerance of where the pass started.
func thinCompaction(layout []Placement, lim limits) bool {
	baseHeight := boundsOf(layout).height()
	changed := false
	for i, it := range layout {
		if it.Height > thinThreshold || carriesLoad(layout, i) {
			continue
		}
		current := scoreOf(boundsOf(layout))
		var (
			best      Placement
			bestScore Score
			found     bool
		)
		for j, sup := range layout {
			if j == i {
				continue
			}
			c := it.at(sup.X, sup.Y, sup.Z2())
			if c.samePosition(it) || !sup.Supports(c) || !lim.admits(c) || collides(layout, c, i) {
				continue
			}
			e := boundsWith(layout, i, c)
			s := scoreOf(e)
			if !s.Better(current) && e.height() > baseHeight+thinTolerance {
				continue
			}
			if !found || s.Better(bestScore) {
				best, bestScore, found = c, s, true
			}
		}
		if found {
			layout[i] = best
			changed = true
		}
	}
	return changed
}

// carriesLoad reports whether anything rests on layout[i], even with only
// part of its footprint.
func carriesLoad(layout []Placement, i int) bool {
	p := layout[i]
	for j, o := range layout {
		if j != i && o.Z == p.Z2() && p.footprintOverlaps(o) {
			return true
		}
	}
	return false
}
