package spline

import "github.com/ungerik/go3d/float64/vec3"

// cubicBez is a single cubic Bézier segment in 3D.
type cubicBez struct {
	P0 vec3.T
	P1 vec3.T
	P2 vec3.T
	P3 vec3.T
}

// Eval evaluates the segment at parameter t ∈ [0, 1].
func (cb cubicBez) Eval(t float64) vec3.T {
	mt := 1.0 - t
	a := cb.P0.Scaled(mt * mt * mt)
	b := cb.P1.Scaled(mt * mt * 3.0)
	c := cb.P2.Scaled(mt * 3.0)
	d := cb.P3.Scaled(t)
	c.Add(&d).Scale(t)
	b.Add(&c).Scale(t)
	a.Add(&b)
	return a
}

// Deriv evaluates the first derivative of the segment at t.
func (cb cubicBez) Deriv(t float64) vec3.T {
	mt := 1.0 - t
	d01 := vec3.Sub(&cb.P1, &cb.P0)
	d12 := vec3.Sub(&cb.P2, &cb.P1)
	d23 := vec3.Sub(&cb.P3, &cb.P2)
	out := d01.Scaled(3 * mt * mt)
	out = mulAdd(out, d12, 6*mt*t)
	return mulAdd(out, d23, 3*t*t)
}
