package spline

import (
	"errors"
	"fmt"
	"slices"

	"github.com/ungerik/go3d/float64/mat4"
	"github.com/ungerik/go3d/float64/vec3"
)

// DefaultOrder is the order of newly created NURBS curves.
const DefaultOrder = 4

// ErrInvalidSizeOrder is returned by [NurbsCurve.Validate] for curves with
// fewer control points than their order.
var ErrInvalidSizeOrder = errors.New("fewer control points than the curve's order")

var _ Curve = (*NurbsCurve)(nil)

// BasisWeights are the non-zero basis function values at one evaluated
// point. Weights[j] is the influence of control point StartIndex+j, which
// wraps around on cyclic curves.
type BasisWeights struct {
	StartIndex int
	Weights    []float64
}

// NurbsCurve is a non-uniform rational B-spline. The mapping from control
// points to evaluated points is determined by the knot vector, the weight of
// each point and the order of the curve. All data is mapped to evaluated
// points the same way, through cached basis weights.
type NurbsCurve struct {
	base
	positions  []vec3.T
	radii      []float64
	tilts      []float64
	weights    []float64
	resolution int
	order      int
	knotsMode  KnotsMode

	// knots only depend on the number of points, order, knots mode and
	// cyclic flag, so they are invalidated separately from the other caches.
	knots     memo[[]float64]
	basis     memo[[]BasisWeights]
	evaluated memo[[]vec3.T]
}

// NewNurbsCurve returns an empty, non-cyclic NURBS curve with [DefaultOrder],
// [DefaultResolution] and [KnotsNormal].
func NewNurbsCurve() *NurbsCurve {
	c := &NurbsCurve{
		resolution: DefaultResolution,
		order:      DefaultOrder,
		knotsMode:  KnotsNormal,
	}
	c.init(c, nil)
	return c
}

// Kind returns NurbsKind.
func (c *NurbsCurve) Kind() Kind { return NurbsKind }

// Copy returns a deep copy of c with empty caches.
func (c *NurbsCurve) Copy() Curve {
	o := &NurbsCurve{
		positions:  slices.Clone(c.positions),
		radii:      slices.Clone(c.radii),
		tilts:      slices.Clone(c.tilts),
		weights:    slices.Clone(c.weights),
		resolution: c.resolution,
		order:      c.order,
		knotsMode:  c.knotsMode,
	}
	o.init(o, &c.base)
	return o
}

// Len returns the number of control points.
func (c *NurbsCurve) Len() int { return len(c.positions) }

// AddPoint appends a control point. weight must be positive.
func (c *NurbsCurve) AddPoint(position vec3.T, radius, tilt, weight float64) {
	c.positions = append(c.positions, position)
	c.radii = append(c.radii, radius)
	c.tilts = append(c.tilts, tilt)
	c.weights = append(c.weights, weight)
	c.knots.invalidate()
	c.MarkCacheInvalid()
}

// Resize changes the number of control points. New points have unit weight.
func (c *NurbsCurve) Resize(n int) {
	c.positions = resize(c.positions, n, vec3.T{})
	c.radii = resize(c.radii, n, 1)
	c.tilts = resize(c.tilts, n, 0)
	c.weights = resize(c.weights, n, 1)
	c.knots.invalidate()
	c.MarkCacheInvalid()
}

func (c *NurbsCurve) Positions() []vec3.T { return c.positions }
func (c *NurbsCurve) Radii() []float64    { return c.radii }
func (c *NurbsCurve) Tilts() []float64    { return c.tilts }

// Weights returns the live rational weights of the control points.
func (c *NurbsCurve) Weights() []float64 { return c.weights }

func (c *NurbsCurve) Resolution() int { return c.resolution }

// SetResolution sets the number of evaluated points per segment. Values
// below 1 are treated as 1.
func (c *NurbsCurve) SetResolution(n int) {
	c.resolution = max(n, 1)
	c.MarkCacheInvalid()
}

func (c *NurbsCurve) Order() int { return c.order }

// SetOrder sets the order of the curve, which is its degree plus one. It
// panics if order is less than 2.
func (c *NurbsCurve) SetOrder(order int) {
	if order < 2 {
		panic(fmt.Sprintf("spline: invalid NURBS order %d", order))
	}
	c.order = order
	c.knots.invalidate()
	c.MarkCacheInvalid()
}

func (c *NurbsCurve) KnotsMode() KnotsMode { return c.knotsMode }

// SetKnotsMode selects how the knot vector is generated and invalidates the
// knot cache.
func (c *NurbsCurve) SetKnotsMode(mode KnotsMode) {
	c.knotsMode = mode
	c.knots.invalidate()
	c.MarkCacheInvalid()
}

func (c *NurbsCurve) SetCyclic(cyclic bool) {
	c.knots.invalidate()
	c.base.SetCyclic(cyclic)
}

// Translate moves all control points by v. Weights are unchanged.
func (c *NurbsCurve) Translate(v vec3.T) {
	translatePoints(c.positions, v)
	c.MarkCacheInvalid()
}

// Transform applies m to all control points.
func (c *NurbsCurve) Transform(m *mat4.T) {
	transformPoints(c.positions, m)
	c.MarkCacheInvalid()
}

// MarkCacheInvalid invalidates everything but the knots, which don't depend
// on point data.
func (c *NurbsCurve) MarkCacheInvalid() {
	c.basis.invalidate()
	c.evaluated.invalidate()
	c.invalidateBase()
}

// CheckValidSizeAndOrder reports whether the curve has at least as many
// control points as its order. Curves failing the check have no evaluated
// points.
func (c *NurbsCurve) CheckValidSizeAndOrder() bool {
	return len(c.positions) >= c.order
}

// Validate returns an error wrapping [ErrInvalidSizeOrder] if
// [NurbsCurve.CheckValidSizeAndOrder] fails.
func (c *NurbsCurve) Validate() error {
	if c.CheckValidSizeAndOrder() {
		return nil
	}
	return fmt.Errorf("nurbs curve with %d points and order %d: %w", len(c.positions), c.order, ErrInvalidSizeOrder)
}

// KnotCount returns the length of the knot vector, the number of control
// points plus the order, plus order-1 more when the curve is cyclic.
func (c *NurbsCurve) KnotCount() int {
	return knotCount(len(c.positions), c.order, c.cyclic)
}

// Knots returns the knot vector, a non-decreasing sequence of
// [NurbsCurve.KnotCount] values.
func (c *NurbsCurve) Knots() []float64 {
	return c.knots.get("nurbs knots", func() []float64 {
		return calculateKnots(c.knotsMode, len(c.positions), c.order, c.cyclic)
	})
}

func (c *NurbsCurve) EvaluatedPointCount() int {
	if !c.CheckValidSizeAndOrder() {
		return 0
	}
	return c.resolution * c.SegmentCount()
}

// domain returns the parameter range covered by the evaluated points.
func (c *NurbsCurve) domain(knots []float64) (start, end float64) {
	size := len(c.positions)
	start = knots[c.order-1]
	if c.cyclic {
		return start, knots[size+c.order-1]
	}
	return start, knots[size]
}

// steps returns the number of parameter steps between evaluated points.
func (c *NurbsCurve) steps() int {
	n := c.EvaluatedPointCount()
	if c.cyclic {
		return n
	}
	return n - 1
}

// BasisCache returns the basis weights of every evaluated point.
func (c *NurbsCurve) BasisCache() []BasisWeights {
	return c.basis.get("nurbs basis", func() []BasisWeights {
		if !c.CheckValidSizeAndOrder() {
			Logger().Warn("spline: evaluating invalid NURBS curve",
				"points", len(c.positions), "order", c.order)
			return nil
		}
		knots := c.Knots()
		count := c.EvaluatedPointCount()
		degree := c.order - 1
		// The number of basis functions minus one. Cyclic curves have
		// order-1 extra, wrapped basis functions.
		n := len(knots) - c.order - 1
		start, end := c.domain(knots)
		var step float64
		if steps := c.steps(); steps > 0 {
			step = (end - start) / float64(steps)
		}
		basis := make([]BasisWeights, count)
		for i := range basis {
			u := min(max(start+float64(i)*step, start), end)
			span := findSpan(n, degree, u, knots)
			basis[i] = BasisWeights{
				StartIndex: span - degree,
				Weights:    basisFunctions(span, u, degree, knots),
			}
		}
		return basis
	})
}

// EvaluatedPositions returns the positions of the evaluated points, the
// rational blend of the control points under the basis weights.
func (c *NurbsCurve) EvaluatedPositions() []vec3.T {
	return c.evaluated.get("nurbs positions", func() []vec3.T {
		basis := c.BasisCache()
		positions := make([]vec3.T, len(basis))
		for i, b := range basis {
			positions[i] = rationalBlend(c, b, Slice[vec3.T](c.positions), Vec3Arithmetic{})
		}
		return positions
	})
}

// rationalBlend computes Σ Nⱼ·wⱼ·vⱼ / Σ Nⱼ·wⱼ over the basis window b, where
// Nⱼ are the basis weights and wⱼ the control point weights.
func rationalBlend[T any](c *NurbsCurve, b BasisWeights, src AttributeSource[T], ar Arithmetic[T]) T {
	size := len(c.positions)
	acc := ar.Zero()
	var total float64
	for j, w := range b.Weights {
		if w == 0 {
			continue
		}
		idx := (b.StartIndex + j) % size
		f := w * c.weights[idx]
		acc = ar.AddWeighted(acc, src.At(idx), f)
		total += f
	}
	if total == 0 {
		return acc
	}
	return ar.Scale(acc, 1/total)
}

func (c *NurbsCurve) controlIndexFactor(evaluatedFactor float64) float64 {
	steps := c.steps()
	if steps <= 0 {
		return 0
	}
	return evaluatedFactor * float64(c.SegmentCount()) / float64(steps)
}

func (c *NurbsCurve) correctEndTangents([]vec3.T) {}
