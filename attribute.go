package spline

import (
	"fmt"

	"github.com/ungerik/go3d/float64/vec3"
)

// AttributeSource is a read-only sequence of per-point values of any type.
type AttributeSource[T any] interface {
	Len() int
	At(i int) T
}

// Slice adapts a slice to [AttributeSource].
type Slice[T any] []T

func (s Slice[T]) Len() int    { return len(s) }
func (s Slice[T]) At(i int) T  { return s[i] }
func (s Slice[T]) Values() []T { return s }

// Arithmetic provides the operations needed to blend values of type T.
type Arithmetic[T any] interface {
	// Zero returns the default value of T, the identity of AddWeighted.
	Zero() T
	// Mix returns a·(1−factor) + b·factor.
	Mix(a, b T, factor float64) T
	// AddWeighted returns acc + v·weight.
	AddWeighted(acc, v T, weight float64) T
	// Scale returns v·f.
	Scale(v T, f float64) T
}

// Float64Arithmetic interpolates scalar attributes such as radii and tilts.
type Float64Arithmetic struct{}

func (Float64Arithmetic) Zero() float64 { return 0 }

func (Float64Arithmetic) Mix(a, b, factor float64) float64 {
	return a + (b-a)*factor
}

func (Float64Arithmetic) AddWeighted(acc, v, weight float64) float64 {
	return acc + v*weight
}

func (Float64Arithmetic) Scale(v, f float64) float64 { return v * f }

// Vec3Arithmetic interpolates vector attributes component-wise.
type Vec3Arithmetic struct{}

func (Vec3Arithmetic) Zero() vec3.T { return vec3.T{} }

func (Vec3Arithmetic) Mix(a, b vec3.T, factor float64) vec3.T {
	return vec3.Interpolate(&a, &b, factor)
}

func (Vec3Arithmetic) AddWeighted(acc, v vec3.T, weight float64) vec3.T {
	return mulAdd(acc, v, weight)
}

func (Vec3Arithmetic) Scale(v vec3.T, f float64) vec3.T { return v.Scaled(f) }

// Interpolate maps per-control-point data of c to its evaluated points.
//
// For a [*PolyCurve], the evaluated points are the control points and src is
// returned as is. The result then aliases src and must not be used after src
// changes. For other kinds, the result is a newly allocated [Slice].
//
// Interpolate panics if src doesn't have one value per control point.
func Interpolate[T any](c Curve, src AttributeSource[T], ar Arithmetic[T]) AttributeSource[T] {
	if src.Len() != c.Len() {
		panic(fmt.Sprintf("spline: attribute has %d values for %d control points", src.Len(), c.Len()))
	}
	switch c := c.(type) {
	case *PolyCurve:
		return src
	case *BezierCurve:
		mappings := c.EvaluatedMappings()
		out := make(Slice[T], len(mappings))
		for i, m := range mappings {
			out[i] = mixAt(c, src, ar, m)
		}
		return out
	case *NurbsCurve:
		basis := c.BasisCache()
		out := make(Slice[T], len(basis))
		for i, b := range basis {
			out[i] = rationalBlend(c, b, src, ar)
		}
		return out
	default:
		panic(fmt.Sprintf("unhandled curve type %T", c))
	}
}

// InterpolateAt returns the value of src at a control point index factor of
// c, blending the two control points around it. It returns ar.Zero() for a
// curve without points.
func InterpolateAt[T any](c Curve, src AttributeSource[T], ar Arithmetic[T], indexFactor float64) T {
	if c.Len() == 0 {
		return ar.Zero()
	}
	return mixAt(c, src, ar, indexFactor)
}

func mixAt[T any](c Curve, src AttributeSource[T], ar Arithmetic[T], indexFactor float64) T {
	d := c.LookupDataFromIndexFactor(indexFactor)
	if c.Len() == 1 {
		return src.At(0)
	}
	return ar.Mix(src.At(d.ControlPointIndex), src.At(d.NextControlPointIndex), d.Factor)
}
