package spline

import (
	"errors"
	"fmt"
	"iter"
	"slices"

	"github.com/ungerik/go3d/float64/mat4"
	"github.com/ungerik/go3d/float64/vec3"
	"golang.org/x/image/math/f32"
)

// Group is an ordered collection of curves that make up one object.
//
// A group owns its curves: a curve must not be added to more than one group,
// and curves in a group must not be referenced elsewhere.
type Group struct {
	curves []Curve
}

// NewGroup returns a group owning the given curves.
func NewGroup(curves ...Curve) *Group {
	g := &Group{}
	for _, c := range curves {
		g.Add(c)
	}
	return g
}

// Add appends c to the group. It panics if c is nil or already part of the
// group.
func (g *Group) Add(c Curve) {
	if c == nil {
		panic("spline: adding nil curve to group")
	}
	if slices.Contains(g.curves, c) {
		panic("spline: curve is already part of the group")
	}
	g.curves = append(g.curves, c)
}

// Remove removes the curve at index i and returns it, transferring
// ownership to the caller.
func (g *Group) Remove(i int) Curve {
	c := g.curves[i]
	g.curves = slices.Delete(g.curves, i, i+1)
	return c
}

// Len returns the number of curves in g.
func (g *Group) Len() int { return len(g.curves) }

// At returns the i-th curve. It panics if i is out of range.
func (g *Group) At(i int) Curve { return g.curves[i] }

// All returns an iterator over the curves and their indices.
func (g *Group) All() iter.Seq2[int, Curve] {
	return slices.All(g.curves)
}

// Copy returns a deep copy of the group and all of its curves.
func (g *Group) Copy() *Group {
	o := &Group{curves: make([]Curve, len(g.curves))}
	for i, c := range g.curves {
		o.curves[i] = c.Copy()
	}
	return o
}

// Translate moves every curve in g by v.
func (g *Group) Translate(v vec3.T) {
	for _, c := range g.curves {
		c.Translate(v)
	}
}

// Transform applies m to every curve in g.
func (g *Group) Transform(m *mat4.T) {
	for _, c := range g.curves {
		c.Transform(m)
	}
}

// Bounds returns the union of the bounds of all curves.
func (g *Group) Bounds(useEvaluated bool) Box {
	box := EmptyBox()
	for _, c := range g.curves {
		box = box.Union(c.Bounds(useEvaluated))
	}
	return box
}

// Length returns the sum of the lengths of all curves.
func (g *Group) Length() float64 {
	var total float64
	for _, c := range g.curves {
		total += c.Length()
	}
	return total
}

// EvaluatedPointCount returns the number of evaluated points of all curves.
func (g *Group) EvaluatedPointCount() int {
	var n int
	for _, c := range g.curves {
		n += c.EvaluatedPointCount()
	}
	return n
}

// Validate checks every curve that can be in an invalid state, such as NURBS
// curves with too few points, and joins their errors.
func (g *Group) Validate() error {
	var errs []error
	for i, c := range g.curves {
		v, ok := c.(interface{ Validate() error })
		if !ok {
			continue
		}
		if err := v.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("curve %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

// AppendEvaluatedPositionsF32 appends the evaluated positions of all curves,
// in order, to dst as single-precision vectors.
func (g *Group) AppendEvaluatedPositionsF32(dst []f32.Vec3) []f32.Vec3 {
	dst = slices.Grow(dst, g.EvaluatedPointCount())
	for _, c := range g.curves {
		dst = AppendF32(dst, c.EvaluatedPositions())
	}
	return dst
}

// AppendF32 appends src to dst, converting to single precision.
func AppendF32(dst []f32.Vec3, src []vec3.T) []f32.Vec3 {
	for _, p := range src {
		dst = append(dst, f32.Vec3{float32(p[0]), float32(p[1]), float32(p[2])})
	}
	return dst
}
