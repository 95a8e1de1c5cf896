package spline_test

import (
	"fmt"
	"log/slog"
	"math"
	"os"

	"github.com/ungerik/go3d/float64/vec3"
	"honnef.co/go/spline"
)

func ExamplePolyCurve() {
	c := spline.NewPolyCurve()
	c.AddPoint(vec3.T{0, 0, 0}, 1, 0)
	c.AddPoint(vec3.T{3, 0, 0}, 1, 0)
	c.AddPoint(vec3.T{3, 4, 0}, 1, 0)

	fmt.Println(c.EvaluatedLengths())
	fmt.Printf("%+v\n", c.LookupEvaluatedLength(5))
	// Output:
	// [3 7]
	// {EvaluatedIndex:1 NextEvaluatedIndex:2 Factor:0.5}
}

func ExampleBezierCurve() {
	c := spline.NewBezierCurve()
	c.SetResolution(4)
	c.AddPoint(spline.BezierPoint{
		Position:    vec3.T{0, 0, 0},
		HandleLeft:  vec3.T{-1, 0, 0},
		HandleRight: vec3.T{1, 0, 0},
		Radius:      1,
	})
	c.AddPoint(spline.BezierPoint{
		Position:    vec3.T{3, 0, 0},
		HandleLeft:  vec3.T{2, 0, 0},
		HandleRight: vec3.T{4, 0, 0},
		Radius:      3,
	})

	fmt.Println(c.EvaluatedPointCount(), c.EvaluatedMappings())
	radii := spline.Interpolate[float64](c, spline.Slice[float64](c.Radii()), spline.Float64Arithmetic{})
	fmt.Println(radii.(spline.Slice[float64]).Values())
	for _, p := range spline.SamplePositions(c, 4) {
		fmt.Printf("%.2f ", p[0])
	}
	fmt.Println()
	// Output:
	// 5 [0 0.25 0.5 0.75 1]
	// [1 1.5 2 2.5 3]
	// 0.00 1.00 2.00 3.00
}

func ExampleNurbsCurve() {
	// A rational quadratic curve describing a quarter of the unit circle.
	c := spline.NewNurbsCurve()
	c.SetOrder(3)
	c.SetKnotsMode(spline.KnotsBezier)
	c.SetResolution(4)
	c.AddPoint(vec3.T{1, 0, 0}, 1, 0, 1)
	c.AddPoint(vec3.T{1, 1, 0}, 1, 0, math.Sqrt2/2)
	c.AddPoint(vec3.T{0, 1, 0}, 1, 0, 1)
	if err := c.Validate(); err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println(c.Knots())
	for _, p := range c.EvaluatedPositions() {
		fmt.Printf("%.3f ", p.Length())
	}
	fmt.Println()
	// Output:
	// [0 0 0 1 1 1]
	// 1.000 1.000 1.000 1.000 1.000 1.000 1.000 1.000
}

func ExampleGroup_Validate() {
	c := spline.NewNurbsCurve()
	c.Resize(3)
	g := spline.NewGroup(spline.NewPolyCurve(), c)
	fmt.Println(g.Validate())
	// Output:
	// curve 1: nurbs curve with 3 points and order 4: fewer control points than the curve's order
}

func ExampleSetLogger() {
	spline.SetLogger(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	})))
	defer spline.SetLogger(nil)

	c := spline.NewPolyCurve()
	c.AddPoint(vec3.T{0, 0, 0}, 1, 0)
	c.AddPoint(vec3.T{0, 2, 0}, 1, 0)
	fmt.Println(c.Length())
	fmt.Println(c.Length())
	// Output:
	// level=DEBUG msg="spline: recomputed cache" cache=lengths
	// 2
	// 2
}
