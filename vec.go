package spline

import (
	"math"

	"github.com/ungerik/go3d/float64/vec3"
)

var (
	unitX = vec3.T{1, 0, 0}
	unitZ = vec3.T{0, 0, 1}
)

// degenerateLength is the length below which a direction is considered
// undefined.
const degenerateLength = 1e-12

// normalizeOr returns v scaled to unit length, or fallback if v is too short
// to have a direction.
func normalizeOr(v, fallback vec3.T) vec3.T {
	l := v.Length()
	if l < degenerateLength || math.IsNaN(l) {
		return fallback
	}
	return v.Scaled(1 / l)
}

// direction returns the unit vector pointing from a to b. It reports false
// if a and b coincide.
func direction(a, b vec3.T) (vec3.T, bool) {
	d := vec3.Sub(&b, &a)
	l := d.Length()
	if l < degenerateLength {
		return vec3.T{}, false
	}
	return d.Scaled(1 / l), true
}

// bisect returns the direction halfway between the edges prev→mid and
// mid→next.
func bisect(prev, mid, next vec3.T) vec3.T {
	d0, ok0 := direction(prev, mid)
	d1, ok1 := direction(mid, next)
	switch {
	case ok0 && ok1:
		sum := vec3.Add(&d0, &d1)
		return normalizeOr(sum, d1)
	case ok0:
		return d0
	case ok1:
		return d1
	default:
		return unitZ
	}
}

// mulAdd computes acc + v*f.
func mulAdd(acc, v vec3.T, f float64) vec3.T {
	s := v.Scaled(f)
	return vec3.Add(&acc, &s)
}

// rotateAround rotates v by angle radians around the unit vector axis,
// using Rodrigues' rotation formula.
func rotateAround(v, axis vec3.T, angle float64) vec3.T {
	if angle == 0 {
		return v
	}
	sin, cos := math.Sincos(angle)
	cross := vec3.Cross(&axis, &v)
	out := v.Scaled(cos)
	out = mulAdd(out, cross, sin)
	return mulAdd(out, axis, vec3.Dot(&axis, &v)*(1-cos))
}
