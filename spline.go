package spline

import (
	"fmt"
	"math"
	"slices"

	"github.com/ungerik/go3d/float64/mat4"
	"github.com/ungerik/go3d/float64/vec3"
)

// DefaultResolution is the number of evaluated points per segment of newly
// created Bézier and NURBS curves.
const DefaultResolution = 12

// Kind identifies the representation of a curve.
type Kind int

const (
	PolyKind Kind = iota
	BezierKind
	NurbsKind
)

func (k Kind) String() string {
	switch k {
	case PolyKind:
		return "poly"
	case BezierKind:
		return "bezier"
	case NurbsKind:
		return "nurbs"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// NormalMode selects how [Curve.EvaluatedNormals] computes normals.
type NormalMode int

const (
	// NormalZUp computes normals perpendicular to both the tangent and the
	// positive Z axis.
	NormalZUp NormalMode = iota
	// NormalMinimum is reserved for minimum-twist normals. It is not
	// supported yet.
	NormalMinimum
	// NormalTangent is reserved for normals derived from the curvature. It is
	// not supported yet.
	NormalTangent
)

func (m NormalMode) String() string {
	switch m {
	case NormalZUp:
		return "z-up"
	case NormalMinimum:
		return "minimum"
	case NormalTangent:
		return "tangent"
	default:
		return fmt.Sprintf("NormalMode(%d)", int(m))
	}
}

// LookupResult locates a position on the evaluated points of a curve.
type LookupResult struct {
	// EvaluatedIndex is the index of the evaluated point before the result
	// location, in other words the index of the edge the result lies on. At
	// the very end of a non-cyclic curve, this is the second to last index.
	EvaluatedIndex int
	// NextEvaluatedIndex is the index of the evaluated point after the result
	// location, wrapping to 0 on the closing edge of a cyclic curve.
	NextEvaluatedIndex int
	// Factor is the portion of the way from EvaluatedIndex to
	// NextEvaluatedIndex, in [0, 1].
	Factor float64
}

// InterpolationData locates a position on the control points of a curve.
type InterpolationData struct {
	ControlPointIndex     int
	NextControlPointIndex int
	// Factor is the linear interpolation weight between the two indices, in
	// [0, 1]. Higher means closer to the next control point.
	Factor float64
}

// Curve is a single branch-less curve, its control points and its evaluated
// data.
//
// The control point arrays returned by Positions, Radii and Tilts (and the
// kind-specific accessors of the concrete types) are live views. After
// writing to them, call MarkCacheInvalid before reading any evaluated data.
// Slices returned by the Evaluated methods are owned by the curve's caches
// and must not be modified.
//
// Reading evaluated data is safe for concurrent use. Mutating a curve is not:
// callers must serialize mutation against all other use of the same curve.
//
// Curve is implemented by [*PolyCurve], [*BezierCurve] and [*NurbsCurve].
type Curve interface {
	Kind() Kind
	// Copy returns a deep copy of the curve, with its own caches.
	Copy() Curve

	// Len returns the number of control points.
	Len() int
	// SegmentCount returns the number of segments between control points,
	// including the closing segment of a cyclic curve.
	SegmentCount() int
	Cyclic() bool
	SetCyclic(cyclic bool)
	NormalMode() NormalMode
	SetNormalMode(mode NormalMode)

	// Resize changes the number of control points. New points have zero
	// position, unit radius and zero tilt.
	Resize(n int)
	Positions() []vec3.T
	Radii() []float64
	Tilts() []float64

	Translate(v vec3.T)
	Transform(m *mat4.T)

	// MarkCacheInvalid marks all evaluated data for recomputation. It must
	// be called after any change that affects the evaluated points.
	MarkCacheInvalid()

	EvaluatedPointCount() int
	EvaluatedEdgeCount() int
	EvaluatedPositions() []vec3.T
	EvaluatedTangents() []vec3.T
	EvaluatedNormals() []vec3.T
	// EvaluatedLengths returns the accumulated length at the end of every
	// evaluated edge.
	EvaluatedLengths() []float64
	Length() float64

	LookupEvaluatedFactor(factor float64) LookupResult
	LookupEvaluatedLength(length float64) LookupResult
	LookupEvaluatedIndexFactor(indexFactor float64) LookupResult
	LookupDataFromIndexFactor(indexFactor float64) InterpolationData
	SampleUniformEvaluatedFactors(n int) []float64
	SampleUniformIndexFactors(n int) []float64

	// Bounds returns the bounding box of the control points, or of the
	// evaluated points if useEvaluated is true. The box of a curve without
	// points is empty.
	Bounds(useEvaluated bool) Box

	// controlIndexFactor maps an evaluated index factor to a control point
	// index factor.
	controlIndexFactor(evaluatedFactor float64) float64
	// correctEndTangents fixes up the tangents of curve ends after the
	// generic computation.
	correctEndTangents(tangents []vec3.T)
}

// base holds the state and caches shared by all curve kinds. self points
// back at the concrete curve it is embedded in.
type base struct {
	self       Curve
	cyclic     bool
	normalMode NormalMode

	tangents memo[[]vec3.T]
	normals  memo[[]vec3.T]
	lengths  memo[[]float64]
}

func (b *base) init(self Curve, from *base) {
	b.self = self
	if from != nil {
		b.cyclic = from.cyclic
		b.normalMode = from.normalMode
	}
}

func (b *base) invalidateBase() {
	b.tangents.invalidate()
	b.normals.invalidate()
	b.lengths.invalidate()
}

func (b *base) Cyclic() bool { return b.cyclic }

func (b *base) SetCyclic(cyclic bool) {
	b.cyclic = cyclic
	b.self.MarkCacheInvalid()
}

func (b *base) NormalMode() NormalMode { return b.normalMode }

func (b *base) SetNormalMode(mode NormalMode) {
	b.normalMode = mode
	b.normals.invalidate()
}

func (b *base) SegmentCount() int {
	n := b.self.Len()
	switch {
	case n < 2:
		return 0
	case b.cyclic:
		return n
	default:
		return n - 1
	}
}

func (b *base) EvaluatedEdgeCount() int {
	n := b.self.EvaluatedPointCount()
	switch {
	case n < 2:
		return 0
	case b.cyclic:
		return n
	default:
		return n - 1
	}
}

func (b *base) EvaluatedTangents() []vec3.T {
	return b.tangents.get("tangents", func() []vec3.T {
		tangents := calculateTangents(b.self.EvaluatedPositions(), b.cyclic)
		b.self.correctEndTangents(tangents)
		return tangents
	})
}

func calculateTangents(positions []vec3.T, cyclic bool) []vec3.T {
	n := len(positions)
	tangents := make([]vec3.T, n)
	switch n {
	case 0:
		return tangents
	case 1:
		tangents[0] = unitZ
		return tangents
	}
	for i := 1; i < n-1; i++ {
		tangents[i] = bisect(positions[i-1], positions[i], positions[i+1])
	}
	if cyclic {
		tangents[0] = bisect(positions[n-1], positions[0], positions[1])
		tangents[n-1] = bisect(positions[n-2], positions[n-1], positions[0])
	} else {
		tangents[0] = bisect(positions[0], positions[0], positions[1])
		tangents[n-1] = bisect(positions[n-2], positions[n-1], positions[n-1])
	}
	return tangents
}

func (b *base) EvaluatedNormals() []vec3.T {
	if b.normalMode != NormalZUp {
		panic(fmt.Sprintf("spline: unsupported normal mode %v", b.normalMode))
	}
	return b.normals.get("normals", func() []vec3.T {
		tangents := b.EvaluatedTangents()
		normals := make([]vec3.T, len(tangents))
		for i, t := range tangents {
			n := vec3.Cross(&t, &unitZ)
			normals[i] = normalizeOr(n, unitX)
		}
		// Rotate the normals around the tangents by the interpolated tilt.
		tilts := Interpolate[float64](b.self, Slice[float64](b.self.Tilts()), Float64Arithmetic{})
		for i := range normals {
			normals[i] = rotateAround(normals[i], tangents[i], tilts.At(i))
		}
		return normals
	})
}

func (b *base) EvaluatedLengths() []float64 {
	return b.lengths.get("lengths", func() []float64 {
		positions := b.self.EvaluatedPositions()
		lengths := make([]float64, b.EvaluatedEdgeCount())
		var total float64
		for i := range lengths {
			next := i + 1
			if next == len(positions) {
				next = 0
			}
			total += vec3.Distance(&positions[i], &positions[next])
			lengths[i] = total
		}
		return lengths
	})
}

func (b *base) Length() float64 {
	lengths := b.EvaluatedLengths()
	if len(lengths) == 0 {
		return 0
	}
	return lengths[len(lengths)-1]
}

// LookupEvaluatedFactor maps a factor of the curve's total length to the
// evaluated edge containing that location.
//
// A factor at or below 0 returns the start of the first edge. A factor at or
// above 1 returns the end of the last edge, which on a cyclic curve is the
// closing edge ending at point 0.
//
// The curve must have at least two evaluated points; otherwise the zero
// LookupResult is returned.
func (b *base) LookupEvaluatedFactor(factor float64) LookupResult {
	if b.EvaluatedEdgeCount() == 0 {
		return LookupResult{}
	}
	switch {
	case factor <= 0:
		return b.lookupStart()
	case factor >= 1:
		return b.lookupEnd()
	}
	return b.LookupEvaluatedLength(factor * b.Length())
}

// LookupEvaluatedLength is like [Curve.LookupEvaluatedFactor] but takes a
// length along the curve, clamped to [0, Length].
func (b *base) LookupEvaluatedLength(length float64) LookupResult {
	lengths := b.EvaluatedLengths()
	if len(lengths) == 0 {
		return LookupResult{}
	}
	total := lengths[len(lengths)-1]
	switch {
	case length <= 0 || math.IsNaN(length):
		return b.lookupStart()
	case length >= total:
		return b.lookupEnd()
	}
	index, _ := slices.BinarySearch(lengths, length)
	next := index + 1
	if next == b.self.EvaluatedPointCount() {
		next = 0
	}
	var prev float64
	if index > 0 {
		prev = lengths[index-1]
	}
	var factor float64
	if edge := lengths[index] - prev; edge > 0 {
		factor = (length - prev) / edge
	}
	return LookupResult{index, next, factor}
}

func (b *base) lookupStart() LookupResult {
	return LookupResult{0, 1, 0}
}

func (b *base) lookupEnd() LookupResult {
	n := b.self.EvaluatedPointCount()
	if b.cyclic {
		return LookupResult{n - 1, 0, 1}
	}
	return LookupResult{n - 2, n - 1, 1}
}

// LookupEvaluatedIndexFactor splits a fractional evaluated point index into
// the two evaluated points it lies between.
func (b *base) LookupEvaluatedIndexFactor(indexFactor float64) LookupResult {
	i, next, f := lookupIndexFactor(indexFactor, b.self.EvaluatedPointCount(), b.cyclic)
	return LookupResult{i, next, f}
}

// LookupDataFromIndexFactor splits a fractional control point index into
// the two control points it lies between, for blending control point data
// directly.
func (b *base) LookupDataFromIndexFactor(indexFactor float64) InterpolationData {
	i, next, f := lookupIndexFactor(indexFactor, b.self.Len(), b.cyclic)
	return InterpolationData{i, next, f}
}

func lookupIndexFactor(indexFactor float64, size int, cyclic bool) (int, int, float64) {
	if size < 2 {
		return 0, 0, 0
	}
	if indexFactor <= 0 || math.IsNaN(indexFactor) {
		return 0, 1, 0
	}
	if cyclic {
		if indexFactor < float64(size) {
			i := int(indexFactor)
			next := i + 1
			if next == size {
				next = 0
			}
			return i, next, indexFactor - float64(i)
		}
		return size - 1, 0, 1
	}
	if indexFactor < float64(size-1) {
		i := int(indexFactor)
		return i, i + 1, indexFactor - float64(i)
	}
	return size - 2, size - 1, 1
}

// SampleUniformEvaluatedFactors returns n evaluated index factors that are
// spaced equally along the length of the curve. The first sample is at the
// start. On a non-cyclic curve the last sample is at the end; on a cyclic
// curve the samples divide the loop into n equal parts.
func (b *base) SampleUniformEvaluatedFactors(n int) []float64 {
	if n <= 0 {
		return nil
	}
	samples := make([]float64, n)
	if n == 1 {
		return samples
	}
	lengths := b.EvaluatedLengths()
	if len(lengths) == 0 {
		return samples
	}
	intervals := n - 1
	if b.cyclic {
		intervals = n
	}
	sampleLength := lengths[len(lengths)-1] / float64(intervals)

	// The lengths don't contain the zero at the first evaluated point, so
	// track the previous length separately.
	prev := 0.0
	i := 1
	for edge, length := range lengths {
		for i < n && sampleLength*float64(i) < length {
			samples[i] = float64(edge) + (sampleLength*float64(i)-prev)/(length-prev)
			i++
		}
		prev = length
	}
	if !b.cyclic {
		// Accumulated roundoff can leave the final sample unplaced.
		samples[n-1] = float64(len(lengths))
	}
	return samples
}

// SampleUniformIndexFactors is like [Curve.SampleUniformEvaluatedFactors]
// but returns control point index factors, suitable for
// [Curve.LookupDataFromIndexFactor].
func (b *base) SampleUniformIndexFactors(n int) []float64 {
	samples := b.SampleUniformEvaluatedFactors(n)
	for i, s := range samples {
		samples[i] = b.self.controlIndexFactor(s)
	}
	return samples
}

func (b *base) Bounds(useEvaluated bool) Box {
	if useEvaluated {
		return boundsOf(b.self.EvaluatedPositions())
	}
	return boundsOf(b.self.Positions())
}

// SamplePositions returns n positions spaced equally along the evaluated
// points of c.
func SamplePositions(c Curve, n int) []vec3.T {
	positions := c.EvaluatedPositions()
	if n <= 0 || len(positions) == 0 {
		return nil
	}
	out := make([]vec3.T, 0, n)
	for _, f := range c.SampleUniformEvaluatedFactors(n) {
		r := c.LookupEvaluatedIndexFactor(f)
		if len(positions) == 1 {
			out = append(out, positions[0])
			continue
		}
		out = append(out, vec3.Interpolate(&positions[r.EvaluatedIndex], &positions[r.NextEvaluatedIndex], r.Factor))
	}
	return out
}

func translatePoints(pts []vec3.T, v vec3.T) {
	for i := range pts {
		pts[i].Add(&v)
	}
}

func transformPoints(pts []vec3.T, m *mat4.T) {
	for i := range pts {
		pts[i] = m.MulVec3(&pts[i])
	}
}

// resize returns s with length n, filling new elements with fill.
func resize[S ~[]E, E any](s S, n int, fill E) S {
	if n <= len(s) {
		return s[:n:n]
	}
	s = slices.Grow(s, n-len(s))
	for len(s) < n {
		s = append(s, fill)
	}
	return s
}
