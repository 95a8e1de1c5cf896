package spline

import (
	"fmt"
	"slices"

	"github.com/ungerik/go3d/float64/mat4"
	"github.com/ungerik/go3d/float64/vec3"
)

var _ Curve = (*BezierCurve)(nil)

// HandleType describes how a Bézier handle is positioned.
type HandleType uint8

const (
	// HandleFree handles can be moved anywhere and don't influence the
	// point's other handle.
	HandleFree HandleType = iota
	// HandleAuto handles are placed automatically for a smooth curve.
	HandleAuto
	// HandleVector handles point toward the neighbouring control point.
	// A segment with a vector handle at either end is straight.
	HandleVector
	// HandleAlign handles point opposite the point's other handle.
	HandleAlign
)

func (h HandleType) String() string {
	switch h {
	case HandleFree:
		return "free"
	case HandleAuto:
		return "auto"
	case HandleVector:
		return "vector"
	case HandleAlign:
		return "align"
	default:
		return fmt.Sprintf("HandleType(%d)", int(h))
	}
}

// BezierPoint is a control point of a [BezierCurve] with all its attributes.
type BezierPoint struct {
	Position        vec3.T
	HandleTypeLeft  HandleType
	HandleLeft      vec3.T
	HandleTypeRight HandleType
	HandleRight     vec3.T
	Radius          float64
	Tilt            float64
}

// BezierCurve is made up of cubic Bézier segments between control points,
// each control point carrying a handle on either side.
//
// Evaluation stores the positions and a map from evaluated points to control
// point index factors, which is used to interpolate all other data.
type BezierCurve struct {
	base
	positions    []vec3.T
	handlesLeft  []vec3.T
	handlesRight []vec3.T
	typesLeft    []HandleType
	typesRight   []HandleType
	radii        []float64
	tilts        []float64
	resolution   int

	offsets   memo[[]int]
	evaluated memo[[]vec3.T]
	mappings  memo[[]float64]
}

// NewBezierCurve returns an empty, non-cyclic Bézier curve with
// [DefaultResolution].
func NewBezierCurve() *BezierCurve {
	c := &BezierCurve{resolution: DefaultResolution}
	c.init(c, nil)
	return c
}

// Kind returns BezierKind.
func (c *BezierCurve) Kind() Kind { return BezierKind }

// Copy returns a deep copy of c, handles included.
func (c *BezierCurve) Copy() Curve {
	o := &BezierCurve{
		positions:    slices.Clone(c.positions),
		handlesLeft:  slices.Clone(c.handlesLeft),
		handlesRight: slices.Clone(c.handlesRight),
		typesLeft:    slices.Clone(c.typesLeft),
		typesRight:   slices.Clone(c.typesRight),
		radii:        slices.Clone(c.radii),
		tilts:        slices.Clone(c.tilts),
		resolution:   c.resolution,
	}
	o.init(o, &c.base)
	return o
}

// Len returns the number of control points.
func (c *BezierCurve) Len() int { return len(c.positions) }

func (c *BezierCurve) Resolution() int { return c.resolution }

// SetResolution sets the number of evaluated points per non-vector segment.
// Values below 1 are treated as 1.
func (c *BezierCurve) SetResolution(n int) {
	c.resolution = max(n, 1)
	c.MarkCacheInvalid()
}

// AddPoint appends a control point.
func (c *BezierCurve) AddPoint(p BezierPoint) {
	c.positions = append(c.positions, p.Position)
	c.handlesLeft = append(c.handlesLeft, p.HandleLeft)
	c.handlesRight = append(c.handlesRight, p.HandleRight)
	c.typesLeft = append(c.typesLeft, p.HandleTypeLeft)
	c.typesRight = append(c.typesRight, p.HandleTypeRight)
	c.radii = append(c.radii, p.Radius)
	c.tilts = append(c.tilts, p.Tilt)
	c.MarkCacheInvalid()
}

// Point returns the control point at index i.
func (c *BezierCurve) Point(i int) BezierPoint {
	return BezierPoint{
		Position:        c.positions[i],
		HandleTypeLeft:  c.typesLeft[i],
		HandleLeft:      c.handlesLeft[i],
		HandleTypeRight: c.typesRight[i],
		HandleRight:     c.handlesRight[i],
		Radius:          c.radii[i],
		Tilt:            c.tilts[i],
	}
}

// Resize changes the number of control points. New points have free handles
// at their position.
func (c *BezierCurve) Resize(n int) {
	c.positions = resize(c.positions, n, vec3.T{})
	c.handlesLeft = resize(c.handlesLeft, n, vec3.T{})
	c.handlesRight = resize(c.handlesRight, n, vec3.T{})
	c.typesLeft = resize(c.typesLeft, n, HandleFree)
	c.typesRight = resize(c.typesRight, n, HandleFree)
	c.radii = resize(c.radii, n, 1)
	c.tilts = resize(c.tilts, n, 0)
	c.MarkCacheInvalid()
}

func (c *BezierCurve) Positions() []vec3.T { return c.positions }
func (c *BezierCurve) Radii() []float64    { return c.radii }
func (c *BezierCurve) Tilts() []float64    { return c.tilts }

func (c *BezierCurve) HandleTypesLeft() []HandleType  { return c.typesLeft }
func (c *BezierCurve) HandleTypesRight() []HandleType { return c.typesRight }
func (c *BezierCurve) HandlePositionsLeft() []vec3.T  { return c.handlesLeft }
func (c *BezierCurve) HandlePositionsRight() []vec3.T { return c.handlesRight }

// Translate moves control points and both handles of each by v.
func (c *BezierCurve) Translate(v vec3.T) {
	translatePoints(c.positions, v)
	translatePoints(c.handlesLeft, v)
	translatePoints(c.handlesRight, v)
	c.MarkCacheInvalid()
}

// Transform applies m to control points and handles alike.
func (c *BezierCurve) Transform(m *mat4.T) {
	transformPoints(c.positions, m)
	transformPoints(c.handlesLeft, m)
	transformPoints(c.handlesRight, m)
	c.MarkCacheInvalid()
}

func (c *BezierCurve) MarkCacheInvalid() {
	c.offsets.invalidate()
	c.evaluated.invalidate()
	c.mappings.invalidate()
	c.invalidateBase()
}

// PointIsSharp reports whether the curve can have a corner at control point
// i, which is the case if either of its handles is free or vector.
func (c *BezierCurve) PointIsSharp(i int) bool {
	sharp := func(h HandleType) bool { return h == HandleVector || h == HandleFree }
	return sharp(c.typesLeft[i]) || sharp(c.typesRight[i])
}

// SegmentIsVector reports whether the segment starting at control point i is
// a straight line because one of its handles is a vector handle. Such
// segments are evaluated with a single point.
func (c *BezierCurve) SegmentIsVector(i int) bool {
	next := i + 1
	if next == len(c.positions) {
		next = 0
	}
	return c.typesRight[i] == HandleVector || c.typesLeft[next] == HandleVector
}

func (c *BezierCurve) segment(i int) cubicBez {
	next := i + 1
	if next == len(c.positions) {
		next = 0
	}
	return cubicBez{c.positions[i], c.handlesRight[i], c.handlesLeft[next], c.positions[next]}
}

// ControlPointOffsets returns the index of the first evaluated point of
// every control point, followed by the number of evaluated points.
func (c *BezierCurve) ControlPointOffsets() []int {
	return c.offsets.get("bezier offsets", func() []int {
		n := len(c.positions)
		segments := c.SegmentCount()
		offsets := make([]int, n+1)
		offset := 0
		for i := range n {
			offsets[i] = offset
			switch {
			case i >= segments:
				// The last point of a non-cyclic curve.
				offset++
			case c.SegmentIsVector(i):
				offset++
			default:
				offset += c.resolution
			}
		}
		offsets[n] = offset
		return offsets
	})
}

func (c *BezierCurve) EvaluatedPointCount() int {
	offsets := c.ControlPointOffsets()
	return offsets[len(offsets)-1]
}

func (c *BezierCurve) EvaluatedPositions() []vec3.T {
	return c.evaluated.get("bezier positions", func() []vec3.T {
		offsets := c.ControlPointOffsets()
		positions := make([]vec3.T, offsets[len(offsets)-1])
		for i := range c.SegmentCount() {
			start, count := offsets[i], offsets[i+1]-offsets[i]
			if c.SegmentIsVector(i) {
				positions[start] = c.positions[i]
				continue
			}
			seg := c.segment(i)
			for j := range count {
				positions[start+j] = seg.Eval(float64(j) / float64(count))
			}
		}
		if c.lastPointUnsegmented() {
			positions[len(positions)-1] = c.positions[len(c.positions)-1]
		}
		return positions
	})
}

// EvaluatedMappings returns the control point index factor of every
// evaluated point. The integer part is the index of the segment's first
// control point, the fractional part the parameter within the segment.
func (c *BezierCurve) EvaluatedMappings() []float64 {
	return c.mappings.get("bezier mappings", func() []float64 {
		offsets := c.ControlPointOffsets()
		mappings := make([]float64, offsets[len(offsets)-1])
		for i := range c.SegmentCount() {
			start, count := offsets[i], offsets[i+1]-offsets[i]
			for j := range count {
				mappings[start+j] = float64(i) + float64(j)/float64(count)
			}
		}
		if c.lastPointUnsegmented() {
			mappings[len(mappings)-1] = float64(len(c.positions) - 1)
		}
		return mappings
	})
}

// lastPointUnsegmented reports whether the last control point starts no
// segment and is emitted as an evaluated point on its own. That is the case
// for non-cyclic curves and for cyclic curves with a single point.
func (c *BezierCurve) lastPointUnsegmented() bool {
	return len(c.positions) > 0 && c.SegmentCount() < len(c.positions)
}

// InterpolationDataFromIndexFactor is the same as
// [BezierCurve.LookupDataFromIndexFactor].
func (c *BezierCurve) InterpolationDataFromIndexFactor(indexFactor float64) InterpolationData {
	return c.LookupDataFromIndexFactor(indexFactor)
}

func (c *BezierCurve) controlIndexFactor(evaluatedFactor float64) float64 {
	mappings := c.EvaluatedMappings()
	if len(mappings) == 0 {
		return 0
	}
	i := int(evaluatedFactor)
	if i >= len(mappings)-1 && !c.cyclic {
		return mappings[len(mappings)-1]
	}
	i = min(max(i, 0), len(mappings)-1)
	next := float64(len(c.positions))
	if i+1 < len(mappings) {
		next = mappings[i+1]
	}
	return mappings[i] + (evaluatedFactor-float64(i))*(next-mappings[i])
}

// correctEndTangents points the end tangents of a non-cyclic curve along the
// curve's derivative at its ends, which the generic computation only
// approximates. Ends with a degenerate derivative keep their tangent.
func (c *BezierCurve) correctEndTangents(tangents []vec3.T) {
	if c.cyclic || len(tangents) < 2 || len(c.positions) < 2 {
		return
	}
	end := func(i int, t float64) (vec3.T, bool) {
		seg := c.segment(i)
		if c.SegmentIsVector(i) {
			return direction(seg.P0, seg.P3)
		}
		if t == 0 {
			return endDirection(seg.Deriv(0), seg.P0, seg.P2)
		}
		return endDirection(seg.Deriv(1), seg.P1, seg.P3)
	}
	if d, ok := end(0, 0); ok {
		tangents[0] = d
	}
	if d, ok := end(len(c.positions)-2, 1); ok {
		tangents[len(tangents)-1] = d
	}
}

// endDirection normalizes deriv. If the derivative vanishes because a handle
// coincides with its point, the direction from a to b is used instead.
func endDirection(deriv, a, b vec3.T) (vec3.T, bool) {
	if l := deriv.Length(); l >= degenerateLength {
		return deriv.Scaled(1 / l), true
	}
	return direction(a, b)
}

// RecalculateHandles positions all automatic, vector and aligned handles
// from the control point positions, then invalidates the caches.
//
// Auto handles follow the direction from the previous to the next point and
// reach a third of the way to their neighbour. Vector handles point a third
// of the way to their neighbour. Aligned handles keep their length but point
// opposite the point's other handle. Free handles are unchanged.
func (c *BezierCurve) RecalculateHandles() {
	n := len(c.positions)
	if n < 2 {
		return
	}
	for i := range n {
		pos := c.positions[i]
		prev, next := c.neighbours(i)
		toPrev := vec3.Sub(&prev, &pos)
		toNext := vec3.Sub(&next, &pos)

		if c.typesLeft[i] == HandleVector {
			c.handlesLeft[i] = mulAdd(pos, toPrev, 1.0/3.0)
		}
		if c.typesRight[i] == HandleVector {
			c.handlesRight[i] = mulAdd(pos, toNext, 1.0/3.0)
		}
		if c.typesLeft[i] == HandleAuto || c.typesRight[i] == HandleAuto {
			dir := bisect(prev, pos, next)
			if c.typesLeft[i] == HandleAuto {
				c.handlesLeft[i] = mulAdd(pos, dir, -toPrev.Length()/3)
			}
			if c.typesRight[i] == HandleAuto {
				c.handlesRight[i] = mulAdd(pos, dir, toNext.Length()/3)
			}
		}
	}
	for i := range n {
		pos := c.positions[i]
		switch {
		case c.typesLeft[i] == HandleAlign && c.typesRight[i] != HandleAlign:
			c.handlesLeft[i] = alignHandle(pos, c.handlesLeft[i], c.handlesRight[i])
		case c.typesRight[i] == HandleAlign && c.typesLeft[i] != HandleAlign:
			c.handlesRight[i] = alignHandle(pos, c.handlesRight[i], c.handlesLeft[i])
		}
	}
	c.MarkCacheInvalid()
}

// neighbours returns the previous and next control point positions of i. At
// the ends of a non-cyclic curve, the missing neighbour is mirrored through
// the point.
func (c *BezierCurve) neighbours(i int) (prev, next vec3.T) {
	n := len(c.positions)
	pos := c.positions[i]
	mirror := func(o vec3.T) vec3.T {
		return mulAdd(pos.Scaled(2), o, -1)
	}
	switch {
	case c.cyclic:
		return c.positions[(i+n-1)%n], c.positions[(i+1)%n]
	case i == 0:
		return mirror(c.positions[1]), c.positions[1]
	case i == n-1:
		return c.positions[n-2], mirror(c.positions[n-2])
	default:
		return c.positions[i-1], c.positions[i+1]
	}
}

// alignHandle returns handle moved to point away from other through pos,
// keeping its distance from pos.
func alignHandle(pos, handle, other vec3.T) vec3.T {
	away, ok := direction(other, pos)
	if !ok {
		return handle
	}
	return mulAdd(pos, away, vec3.Distance(&pos, &handle))
}
