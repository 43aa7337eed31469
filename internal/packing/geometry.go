// Package packing estimates the smallest bounding box a set of rigid,
// axis-aligned rectangular items can be packed into.
//
// All placement arithmetic uses an integer unit of 10 per centimeter
// (millimeters). Results expose bounding dimensions in centimeters.
package packing

import "math"

const unitsPerCM = 10

// ToMM converts centimeters to the internal integer unit, rounding half up.
func ToMM(cm float64) int {
	return int(math.Floor(cm*unitsPerCM + 0.5))
}

// ToCM converts the internal integer unit back to centimeters.
func ToCM(mm int) float64 {
	return float64(mm) / unitsPerCM
}

// Placement is a box bound to a position together with the oriented
// extents actually used for it.
type Placement struct {
	Name   string `json:"name" example:"Plush Bear"`
	X      int    `json:"x" example:"0"`
	Y      int    `json:"y" example:"0"`
	Z      int    `json:"z" example:"0"`
	Width  int    `json:"width" example:"120"`
	Depth  int    `json:"depth" example:"90"`
	Height int    `json:"height" example:"60"`
	Color  string `json:"color" example:"#4ade80"`
}

// X2 returns the right edge.
func (p Placement) X2() int { return p.X + p.Width }

// Y2 returns the back edge.
func (p Placement) Y2() int { return p.Y + p.Depth }

// Z2 returns the top face.
func (p Placement) Z2() int { return p.Z + p.Height }

// Volume returns the occupied volume in cubic internal units.
func (p Placement) Volume() int64 {
	return int64(p.Width) * int64(p.Depth) * int64(p.Height)
}

// Overlaps reports whether the volumes of p and o intersect.
// Touching faces do not count as an overlap.
func (p Placement) Overlaps(o Placement) bool {
	return p.X < o.X2() && o.X < p.X2() &&
		p.Y < o.Y2() && o.Y < p.Y2() &&
		p.Z < o.Z2() && o.Z < p.Z2()
}

// Supports reports whether the top face of p fully covers the footprint
// of o resting directly on it.
func (p Placement) Supports(o Placement) bool {
	return p.Z2() == o.Z &&
		p.X <= o.X && o.X2() <= p.X2() &&
		p.Y <= o.Y && o.Y2() <= p.Y2()
}

// footprintOverlaps reports whether the xy projections of p and o share
// area.
func (p Placement) footprintOverlaps(o Placement) bool {
	return p.X < o.X2() && o.X < p.X2() && p.Y < o.Y2() && o.Y < p.Y2()
}

func (p Placement) at(x, y, z int) Placement {
	p.X, p.Y, p.Z = x, y, z
	return p
}

func (p Placement) samePosition(o Placement) bool {
	return p.X == o.X && p.Y == o.Y && p.Z == o.Z
}

func (p Placement) containsPoint(pt point) bool {
	return p.X <= pt.x && pt.x < p.X2() &&
		p.Y <= pt.y && pt.y < p.Y2() &&
		p.Z <= pt.z && pt.z < p.Z2()
}

// extent is an axis-aligned bounding region in internal units.
type extent struct {
	minX, minY, minZ int
	maxX, maxY, maxZ int
}

func (e extent) length() int { return e.maxX - e.minX }
func (e extent) width() int  { return e.maxY - e.minY }
func (e extent) height() int { return e.maxZ - e.minZ }

func (e extent) grow(p Placement) extent {
	e.minX = min(e.minX, p.X)
	e.minY = min(e.minY, p.Y)
	e.minZ = min(e.minZ, p.Z)
	e.maxX = max(e.maxX, p.X2())
	e.maxY = max(e.maxY, p.Y2())
	e.maxZ = max(e.maxZ, p.Z2())
	return e
}

func extentOf(p Placement) extent {
	return extent{p.X, p.Y, p.Z, p.X2(), p.Y2(), p.Z2()}
}

// boundsOf returns the bounding region of ps; an empty set yields zero.
func boundsOf(ps []Placement) extent {
	if len(ps) == 0 {
		return extent{}
	}
	e := extentOf(ps[0])
	for _, p := range ps[1:] {
		e = e.grow(p)
	}
	return e
}

// boundsWith returns the bounds of ps with ps[skip] replaced by c.
// skip < 0 treats c as an additional placement.
func boundsWith(ps []Placement, skip int, c Placement) extent {
	e := extentOf(c)
	for i, p := range ps {
		if i != skip {
			e = e.grow(p)
		}
	}
	return e
}

// boundsWithout returns the bounds of ps ignoring ps[skip].
func boundsWithout(ps []Placement, skip int) extent {
	first := true
	var e extent
	for i, p := range ps {
		if i == skip {
			continue
		}
		if first {
			e = extentOf(p)
			first = false
			continue
		}
		e = e.grow(p)
	}
	return e
}

// collides reports whether c overlaps any placement other than ps[skip].
func collides(ps []Placement, c Placement, skip int) bool {
	for i, p := range ps {
		if i != skip && p.Overlaps(c) {
			return true
		}
	}
	return false
}

// HasCollision reports whether any two placements overlap.
func HasCollision(ps []Placement) bool {
	for i := range ps {
		for j := i + 1; j < len(ps); j++ {
			if ps[i].Overlaps(ps[j]) {
				return true
			}
		}
	}
	return false
}

// Dimensions describes a bounding box in centimeters along with the
// pass-through weight and item count of its contents.
type Dimensions struct {
	LengthCm  float64 `json:"length_cm" example:"31.2"`
	WidthCm   float64 `json:"width_cm" example:"22.8"`
	HeightCm  float64 `json:"height_cm" example:"3"`
	WeightG   int     `json:"weight_g" example:"450"`
	ItemCount int     `json:"item_count" example:"2"`
}

// SizeSum returns length + width + height.
func (d Dimensions) SizeSum() float64 {
	return d.LengthCm + d.WidthCm + d.HeightCm
}

// Measure computes the bounding dimensions of ps.
func Measure(ps []Placement, weightG int) Dimensions {
	e := boundsOf(ps)
	return Dimensions{
		LengthCm:  ToCM(e.length()),
		WidthCm:   ToCM(e.width()),
		HeightCm:  ToCM(e.height()),
		WeightG:   weightG,
		ItemCount: len(ps),
	}
}

// Normalize returns a copy of ps translated so that the minimum coordinate
// on every axis is zero.
func Normalize(ps []Placement) []Placement {
	out := make([]Placement, len(ps))
	if len(ps) == 0 {
		return out
	}
	e := boundsOf(ps)
	for i, p := range ps {
		out[i] = p.at(p.X-e.minX, p.Y-e.minY, p.Z-e.minZ)
	}
	return out
}

func clonePlacements(ps []Placement) []Placement {
	out := make([]Placement, len(ps))
	copy(out, ps)
	return out
}
