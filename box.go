package spline

import (
	"fmt"
	"math"

	"github.com/ungerik/go3d/float64/vec3"
)

// Box is an axis-aligned bounding box.
//
// The zero value is a box containing only the origin. Use [EmptyBox] as the
// starting point for accumulating bounds.
type Box struct {
	Min vec3.T
	Max vec3.T
}

// EmptyBox returns a box that contains no points. Its union with any point p
// is the zero-size box at p.
func EmptyBox() Box {
	inf := math.Inf(1)
	return Box{
		Min: vec3.T{inf, inf, inf},
		Max: vec3.T{-inf, -inf, -inf},
	}
}

// NewBoxFromPoints returns the smallest box containing p0 and p1.
func NewBoxFromPoints(p0, p1 vec3.T) Box {
	return EmptyBox().UnionPoint(p0).UnionPoint(p1)
}

func (b Box) String() string {
	return fmt.Sprintf("[%g, %g, %g]–[%g, %g, %g]",
		b.Min[0], b.Min[1], b.Min[2], b.Max[0], b.Max[1], b.Max[2])
}

// IsEmpty reports whether the box contains no points.
func (b Box) IsEmpty() bool {
	return b.Min[0] > b.Max[0] || b.Min[1] > b.Max[1] || b.Min[2] > b.Max[2]
}

// Size returns the extent of the box along each axis.
func (b Box) Size() vec3.T {
	if b.IsEmpty() {
		return vec3.T{}
	}
	return vec3.Sub(&b.Max, &b.Min)
}

// Center returns the midpoint of b.
func (b Box) Center() vec3.T {
	return vec3.Interpolate(&b.Min, &b.Max, 0.5)
}

// Contains reports whether pt lies inside the box, boundary included.
func (b Box) Contains(pt vec3.T) bool {
	return pt[0] >= b.Min[0] && pt[0] <= b.Max[0] &&
		pt[1] >= b.Min[1] && pt[1] <= b.Max[1] &&
		pt[2] >= b.Min[2] && pt[2] <= b.Max[2]
}

// Union returns the smallest box enclosing b and o.
func (b Box) Union(o Box) Box {
	return Box{
		Min: vec3.T{min(b.Min[0], o.Min[0]), min(b.Min[1], o.Min[1]), min(b.Min[2], o.Min[2])},
		Max: vec3.T{max(b.Max[0], o.Max[0]), max(b.Max[1], o.Max[1]), max(b.Max[2], o.Max[2])},
	}
}

// UnionPoint computes the union with one point.
//
// A succession of UnionPoint operations on a series of points, starting from
// [EmptyBox], yields their enclosing box.
func (b Box) UnionPoint(pt vec3.T) Box {
	return Box{
		Min: vec3.T{min(b.Min[0], pt[0]), min(b.Min[1], pt[1]), min(b.Min[2], pt[2])},
		Max: vec3.T{max(b.Max[0], pt[0]), max(b.Max[1], pt[1]), max(b.Max[2], pt[2])},
	}
}

// Inflate expands the box by d in every direction.
func (b Box) Inflate(d float64) Box {
	return Box{
		Min: vec3.T{b.Min[0] - d, b.Min[1] - d, b.Min[2] - d},
		Max: vec3.T{b.Max[0] + d, b.Max[1] + d, b.Max[2] + d},
	}
}

func boundsOf(pts []vec3.T) Box {
	box := EmptyBox()
	for _, pt := range pts {
		box = box.UnionPoint(pt)
	}
	return box
}
