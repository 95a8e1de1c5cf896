package spline

import (
	"fmt"
	"math"
	"testing"
)

func newSpiralBezier(points int) *BezierCurve {
	c := NewBezierCurve()
	for i := range points {
		a := float64(i) * 0.7
		c.AddPoint(BezierPoint{
			Position:        pt(math.Cos(a)*float64(i), math.Sin(a)*float64(i), float64(i)*0.1),
			HandleTypeLeft:  HandleAuto,
			HandleTypeRight: HandleAuto,
			Radius:          1,
		})
	}
	c.RecalculateHandles()
	return c
}

func newSpiralNurbs(points int) *NurbsCurve {
	c := NewNurbsCurve()
	for i := range points {
		a := float64(i) * 0.7
		c.AddPoint(pt(math.Cos(a)*float64(i), math.Sin(a)*float64(i), float64(i)*0.1), 1, 0, 1+float64(i%3))
	}
	return c
}

func BenchmarkBezierEvaluate(b *testing.B) {
	for _, n := range []int{4, 64, 1024} {
		b.Run(fmt.Sprintf("%d", n), func(b *testing.B) {
			c := newSpiralBezier(n)
			b.ResetTimer()
			for range b.N {
				c.MarkCacheInvalid()
				c.EvaluatedNormals()
				c.EvaluatedLengths()
			}
		})
	}
}

func BenchmarkNurbsEvaluate(b *testing.B) {
	for _, n := range []int{4, 64, 1024} {
		b.Run(fmt.Sprintf("%d", n), func(b *testing.B) {
			c := newSpiralNurbs(n)
			b.ResetTimer()
			for range b.N {
				c.MarkCacheInvalid()
				c.EvaluatedNormals()
				c.EvaluatedLengths()
			}
		})
	}
}

func BenchmarkSampleUniform(b *testing.B) {
	c := newSpiralBezier(256)
	c.EvaluatedLengths()
	b.ResetTimer()
	for range b.N {
		c.SampleUniformIndexFactors(1000)
	}
}

func BenchmarkLookupEvaluatedLength(b *testing.B) {
	c := newSpiralNurbs(256)
	length := c.Length()
	b.ResetTimer()
	for i := range b.N {
		c.LookupEvaluatedLength(float64(i%1000) / 1000 * length)
	}
}
