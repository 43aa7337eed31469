package packing

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Palette is cycled to color placements in result order.
var Palette = []string{"#4ade80", "#60a5fa", "#f472b6", "#facc15", "#a78bfa", "#fb923c"}

// Outcome tells optimized results apart from the degraded fallback.
type Outcome string

const (
	// OutcomePacked is a collision-free placement with its bounding box.
	OutcomePacked Outcome = "packed"
	// OutcomeFallback is the stacked estimate used when no placement was
	// legal: max length, max width, summed heights, no placements.
	OutcomeFallback Outcome = "fallback"
)

// Result is the outcome of a packing run.
type Result struct {
	Outcome    Outcome     `json:"outcome" example:"packed"`
	Dimensions Dimensions  `json:"dimensions"`
	Placements []Placement `json:"placements"`
	Strategy   string      `json:"strategy,omitempty" example:"placer-volume-desc"`
	Container  string      `json:"container,omitempty" example:"Nekoposu"`
}

// Empty is the result for an empty item list.
func Empty() Result {
	return Result{Outcome: OutcomePacked, Placements: []Placement{}}
}

// Fallback builds the stacked estimate from the unshrunk catalog
// dimensions of items.
func Fallback(items []Item) Result {
	d := Dimensions{ItemCount: len(items)}
	for _, it := range items {
		if it.LengthCm > d.LengthCm {
			d.LengthCm = it.LengthCm
		}
		if it.WidthCm > d.WidthCm {
			d.WidthCm = it.WidthCm
		}
		d.HeightCm += it.HeightCm
		d.WeightG += it.WeightG
	}
	return Result{Outcome: OutcomeFallback, Dimensions: d, Placements: []Placement{}}
}

// Orientation is how a strategy turns boxes before extreme-point
// construction, which never rotates.
type Orientation int

const (
	// OrientAsGiven keeps catalog axes.
	OrientAsGiven Orientation = iota
	// OrientFlat lays every box on its largest face.
	OrientFlat
)

// Strategy is one way of producing a candidate placement.
type Strategy struct {
	Name        string
	Order       SortOrder
	Orientation Orientation
	// UsePlacer asks the configured Placer for the initial placement;
	// otherwise extreme-point construction builds it.
	UsePlacer bool
	Passes    PassSet
}

// DefaultStrategies runs the placer under every sort order and the
// extreme-point constructor with flat and catalog orientation.
func DefaultStrategies() []Strategy {
	strategies := make([]Strategy, 0, 6)
	for _, order := range []SortOrder{VolumeDesc, VolumeAsc, FootprintDesc, HeightDesc} {
		strategies = append(strategies, Strategy{
			Name:      "placer-" + order.String(),
			Order:     order,
			UsePlacer: true,
			Passes:    AllPasses,
		})
	}
	return append(strategies,
		Strategy{Name: "extreme-point-flat", Order: VolumeDesc, Orientation: OrientFlat, Passes: AllPasses},
		Strategy{Name: "extreme-point", Order: VolumeDesc, Orientation: OrientAsGiven, Passes: AllPasses},
	)
}

// Engine runs packing strategies and keeps the best-scoring candidate.
// It holds no per-request state and is safe for concurrent use.
type Engine struct {
	placer        Placer
	classifier    Classifier
	strategies    []Strategy
	containers    []Container
	placerTimeout time.Duration
	log           zerolog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// New creates an Engine with the given options.
func New(opts ...Option) *Engine {
	e := &Engine{
		classifier:    DefaultClassifier(),
		strategies:    DefaultStrategies(),
		containers:    DefaultContainers(),
		placerTimeout: 2 * time.Second,
		log:           zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// WithPlacer sets the external placement collaborator.
func WithPlacer(p Placer) Option {
	return func(e *Engine) {
		e.placer = p
	}
}

// WithClassifier replaces the shrink rule table.
func WithClassifier(c Classifier) Option {
	return func(e *Engine) {
		e.classifier = c
	}
}

// WithStrategies replaces the strategy list.
func WithStrategies(s []Strategy) Option {
	return func(e *Engine) {
		if len(s) > 0 {
			e.strategies = append([]Strategy(nil), s...)
		}
	}
}

// WithContainers replaces the container hypotheses handed to the placer.
func WithContainers(c []Container) Option {
	return func(e *Engine) {
		if len(c) > 0 {
			e.containers = append([]Container(nil), c...)
		}
	}
}

// WithPlacerTimeout bounds each placer call. Zero disables the deadline.
func WithPlacerTimeout(d time.Duration) Option {
	return func(e *Engine) {
		e.placerTimeout = d
	}
}

// WithLogger sets the logger used for strategy diagnostics.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) {
		e.log = l
	}
}

// Containers returns the configured container hypotheses.
func (e *Engine) Containers() []Container {
	return append([]Container(nil), e.containers...)
}

// Classifier returns the shrink rule table.
func (e *Engine) Classifier() Classifier {
	return e.classifier
}

// Pack finds the smallest bounding box it can for items. It never fails:
// empty input gives an empty result and a run with no legal candidate
// gives the stacked fallback.
func (e *Engine) Pack(ctx context.Context, items []Item) Result {
	return e.PackWithContainers(ctx, items, e.containers)
}

// PackWithContainers is Pack with request-specific container hypotheses.
func (e *Engine) PackWithContainers(ctx context.Context, items []Item, containers []Container) Result {
	if len(items) == 0 {
		return Empty()
	}
	if len(containers) == 0 {
		containers = e.containers
	}
	boxes := e.classifier.PreprocessAll(items)
	best, ok := e.run(ctx, boxes, containers, nil)
	if !ok {
		e.log.Warn().Int("items", len(items)).Msg("no legal placement found, using stacked fallback")
		return Fallback(items)
	}
	return e.finish(best, items)
}

// Fit packs items inside a single container. ok reports whether a
// placement inside it was found; when it is false the returned result is
// the stacked fallback.
func (e *Engine) Fit(ctx context.Context, items []Item, container Container) (Result, bool) {
	if len(items) == 0 {
		return Empty(), true
	}
	boxes := e.classifier.PreprocessAll(items)
	best, ok := e.run(ctx, boxes, []Container{container}, &container)
	if !ok {
		return Fallback(items), false
	}
	res := e.finish(best, items)
	res.Container = container.Name
	return res, true
}

type candidate struct {
	strategy   string
	container  string
	placements []Placement
	score      Score
}

func (e *Engine) run(ctx context.Context, boxes []Box, containers []Container, bounds *Container) (candidate, bool) {
	var (
		best  candidate
		found bool
	)
	consider := func(name, container string, ps []Placement) {
		if len(ps) != len(boxes) || HasCollision(ps) {
			return
		}
		if bounds != nil && !bounds.Holds(ps) {
			return
		}
		s := scoreOf(boundsOf(ps))
		if s.Volume <= 0 {
			return
		}
		e.log.Debug().Str("strategy", name).Float64("size_sum", s.SizeSum).Msg("candidate")
		if !found || s.Better(best.score) {
			best = candidate{strategy: name, container: container, placements: ps, score: s}
			found = true
		}
	}

	for _, st := range e.strategies {
		compactOpts := CompactOptions{Passes: st.Passes, Bounds: bounds}
		oriented := orient(boxes, st.Orientation)

		if !st.UsePlacer {
			ps, ok := Construct(oriented, ConstructOptions{Order: st.Order, Bounds: bounds})
			if ok {
				consider(st.Name, "", ps)
				consider(st.Name, "", Compact(ps, compactOpts))
			}
			continue
		}
		if e.placer == nil {
			continue
		}

		ps, c, err := e.place(ctx, SortBoxes(oriented, st.Order), containers)
		if err != nil {
			e.log.Debug().Err(err).Str("strategy", st.Name).Msg("placer produced no placement")
			continue
		}
		ps = Normalize(ps)
		consider(st.Name, c.Name, ps)
		consider(st.Name, c.Name, Compact(ps, compactOpts))

		rebuildOpts := ConstructOptions{Bounds: bounds}
		if h := boundsOf(ps).height(); h <= flatThreshold {
			rebuildOpts.MaxHeight = h
		}
		if rebuilt, ok := Rebuild(ps, rebuildOpts); ok {
			consider(st.Name+"+rebuild", c.Name, rebuilt)
			consider(st.Name+"+rebuild", c.Name, Compact(rebuilt, compactOpts))
		}
	}
	return best, found
}

func (e *Engine) place(ctx context.Context, boxes []Box, containers []Container) ([]Placement, Container, error) {
	if e.placerTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.placerTimeout)
		defer cancel()
	}
	return e.placer.Place(ctx, boxes, containers)
}

func (e *Engine) finish(c candidate, items []Item) Result {
	ps := Normalize(c.placements)
	for i := range ps {
		ps[i].Color = Palette[i%len(Palette)]
	}
	weight := 0
	for _, it := range items {
		weight += it.WeightG
	}
	return Result{
		Outcome:    OutcomePacked,
		Dimensions: Measure(ps, weight),
		Placements: ps,
		Strategy:   c.strategy,
		Container:  c.container,
	}
}

func orient(boxes []Box, o Orientation) []Box {
	if o != OrientFlat {
		return boxes
	}
	out := make([]Box, len(boxes))
	for i, b := range boxes {
		out[i] = b.Flat()
	}
	return out
}
