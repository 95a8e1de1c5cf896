package spline

import (
	"slices"

	"github.com/ungerik/go3d/float64/mat4"
	"github.com/ungerik/go3d/float64/vec3"
)

var _ Curve = (*PolyCurve)(nil)

// PolyCurve is a piecewise-linear curve. Its evaluated points are its control
// points, so interpolating data to evaluated points doesn't change it.
type PolyCurve struct {
	base
	positions []vec3.T
	radii     []float64
	tilts     []float64
}

// NewPolyCurve returns an empty, non-cyclic poly curve.
func NewPolyCurve() *PolyCurve {
	c := &PolyCurve{}
	c.init(c, nil)
	return c
}

// Kind returns PolyKind.
func (c *PolyCurve) Kind() Kind { return PolyKind }

// Copy returns a deep copy of c.
func (c *PolyCurve) Copy() Curve {
	o := &PolyCurve{
		positions: slices.Clone(c.positions),
		radii:     slices.Clone(c.radii),
		tilts:     slices.Clone(c.tilts),
	}
	o.init(o, &c.base)
	return o
}

// Len returns the number of points, which equals the evaluated point count.
func (c *PolyCurve) Len() int { return len(c.positions) }

// AddPoint appends a control point.
func (c *PolyCurve) AddPoint(position vec3.T, radius, tilt float64) {
	c.positions = append(c.positions, position)
	c.radii = append(c.radii, radius)
	c.tilts = append(c.tilts, tilt)
	c.MarkCacheInvalid()
}

// Resize sets the number of points to n. New points are zeroed with a
// radius of 1.
func (c *PolyCurve) Resize(n int) {
	c.positions = resize(c.positions, n, vec3.T{})
	c.radii = resize(c.radii, n, 1)
	c.tilts = resize(c.tilts, n, 0)
	c.MarkCacheInvalid()
}

func (c *PolyCurve) Positions() []vec3.T { return c.positions }
func (c *PolyCurve) Radii() []float64    { return c.radii }
func (c *PolyCurve) Tilts() []float64    { return c.tilts }

// Translate moves every point by v.
func (c *PolyCurve) Translate(v vec3.T) {
	translatePoints(c.positions, v)
	c.MarkCacheInvalid()
}

// Transform applies m to every point.
func (c *PolyCurve) Transform(m *mat4.T) {
	transformPoints(c.positions, m)
	c.MarkCacheInvalid()
}

// MarkCacheInvalid drops all cached derived data. Call it after editing the
// slices returned by the accessors.
func (c *PolyCurve) MarkCacheInvalid() {
	c.invalidateBase()
}

func (c *PolyCurve) EvaluatedPointCount() int { return len(c.positions) }

// EvaluatedPositions returns the live control point positions.
func (c *PolyCurve) EvaluatedPositions() []vec3.T { return c.positions }

func (c *PolyCurve) controlIndexFactor(evaluatedFactor float64) float64 {
	return evaluatedFactor
}

func (c *PolyCurve) correctEndTangents([]vec3.T) {}
