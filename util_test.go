package spline

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/ungerik/go3d/float64/mat4"
	"github.com/ungerik/go3d/float64/vec3"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

var approx = cmpopts.EquateApprox(0, 1e-9)

func pt(x, y, z float64) vec3.T {
	return vec3.T{x, y, z}
}

func scaleMatrix(x, y, z float64) mat4.T {
	m := mat4.Ident
	m[0][0], m[1][1], m[2][2] = x, y, z
	return m
}

func translateMatrix(x, y, z float64) mat4.T {
	m := mat4.Ident
	m.SetTranslation(&vec3.T{x, y, z})
	return m
}

func newPoly(cyclic bool, pts ...vec3.T) *PolyCurve {
	c := NewPolyCurve()
	for _, p := range pts {
		c.AddPoint(p, 1, 0)
	}
	c.SetCyclic(cyclic)
	return c
}

// newStraightBezier returns a two point Bézier curve along the x axis whose
// handles divide it into thirds, evaluating to (3t, 0, 0).
func newStraightBezier(resolution int) *BezierCurve {
	c := NewBezierCurve()
	c.SetResolution(resolution)
	c.AddPoint(BezierPoint{Position: pt(0, 0, 0), HandleLeft: pt(-1, 0, 0), HandleRight: pt(1, 0, 0), Radius: 1})
	c.AddPoint(BezierPoint{Position: pt(3, 0, 0), HandleLeft: pt(2, 0, 0), HandleRight: pt(4, 0, 0), Radius: 3})
	return c
}

// newWavyBezier returns a non-trivial Bézier curve with automatic handles.
func newWavyBezier() *BezierCurve {
	c := NewBezierCurve()
	c.SetResolution(8)
	for _, p := range []vec3.T{pt(0, 0, 0), pt(4, 2, 0), pt(8, 0, 1), pt(12, 3, 1)} {
		c.AddPoint(BezierPoint{Position: p, HandleTypeLeft: HandleAuto, HandleTypeRight: HandleAuto, Radius: 1})
	}
	c.RecalculateHandles()
	return c
}

func newWavyNurbs() *NurbsCurve {
	c := NewNurbsCurve()
	c.SetOrder(3)
	c.SetResolution(8)
	for _, p := range []vec3.T{pt(0, 0, 0), pt(2, 3, 0), pt(5, -1, 0), pt(7, 2, 2), pt(10, 0, 0)} {
		c.AddPoint(p, 1, 0, 1)
	}
	c.Weights()[2] = 2
	c.MarkCacheInvalid()
	return c
}

// arcLengthAt returns the length along c at an evaluated index factor.
func arcLengthAt(c Curve, evaluatedFactor float64) float64 {
	r := c.LookupEvaluatedIndexFactor(evaluatedFactor)
	lengths := c.EvaluatedLengths()
	var prev float64
	if r.EvaluatedIndex > 0 {
		prev = lengths[r.EvaluatedIndex-1]
	}
	return prev + r.Factor*(lengths[r.EvaluatedIndex]-prev)
}
