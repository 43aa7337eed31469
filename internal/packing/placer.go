package packing

import (
	"context"
	"errors"
)

// ErrNoFit is returned by a Placer when no container hypothesis can take
// every box.
var ErrNoFit = errors.New("no container fits all boxes")

// Container is a container-size hypothesis in internal units.
type Container struct {
	Name   string `json:"name" example:"Nekoposu"`
	Length int    `json:"length" example:"312"`
	Width  int    `json:"width" example:"228"`
	Height int    `json:"height" example:"30"`
}

// Holds reports whether every placement lies inside the container.
func (c Container) Holds(ps []Placement) bool {
	lim := limitsOf(&c)
	for _, p := range ps {
		if p.X < 0 || p.Y < 0 || p.Z < 0 || !lim.admits(p) {
			return false
		}
	}
	return true
}

// Volume returns the container volume in cubic internal units.
func (c Container) Volume() int64 {
	return int64(c.Length) * int64(c.Width) * int64(c.Height)
}

// DefaultContainers lists the parcel classes tried when none are
// configured, flat mail classes first.
func DefaultContainers() []Container {
	return []Container{
		{Name: "Nekoposu", Length: 312, Width: 228, Height: 30},
		{Name: "Yu-Packet Post", Length: 327, Width: 228, Height: 30},
		{Name: "Compact", Length: 250, Width: 200, Height: 50},
		{Name: "Letter Pack Plus", Length: 340, Width: 248, Height: 70},
		{Name: "Size 60", Length: 250, Width: 200, Height: 150},
		{Name: "Size 80", Length: 350, Width: 250, Height: 200},
		{Name: "Size 100", Length: 450, Width: 350, Height: 200},
		{Name: "Size 120", Length: 550, Width: 400, Height: 250},
		{Name: "Size 140", Length: 600, Width: 450, Height: 350},
		{Name: "Size 160", Length: 700, Width: 500, Height: 400},
		{Name: "Oversize", Length: 3000, Width: 3000, Height: 3000},
	}
}

// Placer produces a feasible, not necessarily minimal, placement of boxes
// inside one of the container hypotheses. It may rotate boxes freely.
type Placer interface {
	Place(ctx context.Context, boxes []Box, containers []Container) ([]Placement, Container, error)
}

// PlacerFunc adapts a function to the Placer interface.
type PlacerFunc func(ctx context.Context, boxes []Box, containers []Container) ([]Placement, Container, error)

// Place calls f.
func (f PlacerFunc) Place(ctx context.Context, boxes []Box, containers []Container) ([]Placement, Container, error) {
	return f(ctx, boxes, containers)
}
