// Package spline evaluates and caches 3D curves. Given a small set of control
// points with per-point attributes such as radius and tilt, it produces a
// dense sequence of evaluated points describing the smooth curve, along with
// tangents, normals and accumulated lengths, and it answers lookups by
// length or by factor along the curve.
//
// # Curve kinds
//
// Three representations implement the [Curve] interface:
//   - [PolyCurve], a piecewise-linear curve whose evaluated points are its
//     control points
//   - [BezierCurve], cubic Bézier segments between control points with a
//     handle on either side of every point
//   - [NurbsCurve], a non-uniform rational B-spline with an order, a
//     generated knot vector and a weight per point
//
// [Group] bundles several curves into one object.
//
// # Evaluated points and caching
//
// Evaluated data is computed lazily and cached on the curve. Every cache has
// its own lock, so concurrent readers of different caches never contend and
// every cache is computed at most once until invalidated. Reading evaluated
// data is safe for concurrent use.
//
// Mutation is not synchronized. After changing control point data through
// the slices returned by accessors such as [Curve.Positions], call
// [Curve.MarkCacheInvalid] before reading evaluated data again. Setters such
// as [BezierCurve.SetResolution] invalidate on their own.
//
// # Index factors
//
// An index factor is a fractional index: its integer part selects a point,
// its fractional part the position between that point and the next.
// Evaluated index factors refer to evaluated points, control point index
// factors to control points. [Curve.SampleUniformEvaluatedFactors] and
// [Curve.SampleUniformIndexFactors] produce either kind, spaced equally by
// length; [Curve.LookupEvaluatedIndexFactor] and
// [Curve.LookupDataFromIndexFactor] resolve them.
//
// # Attributes
//
// Arbitrary per-control-point data can be mapped to the evaluated points
// with [Interpolate], or sampled at a control point index factor with
// [InterpolateAt]. Values are read through [AttributeSource] and blended
// through [Arithmetic], which is implemented for float64 and vec3.T by
// [Float64Arithmetic] and [Vec3Arithmetic].
//
// # Literature
//
//   - The NURBS Book by Les Piegl and Wayne Tiller, 2nd edition, algorithms
//     A2.1 and A2.2 for knot span search and basis functions
//   - [A Primer on Bézier Curves]
//
// [A Primer on Bézier Curves]: https://pomax.github.io/bezierinfo/
package spline
