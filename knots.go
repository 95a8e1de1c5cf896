package spline

import "fmt"

// KnotsMode determines how the knot vector of a [NurbsCurve] is generated.
// Cyclic curves always use periodic uniform knots.
type KnotsMode uint8

const (
	// KnotsNormal generates uniform knots, clamped so that the curve starts
	// and ends at its first and last control points.
	KnotsNormal KnotsMode = iota
	// KnotsEndPoint generates the same clamped uniform knots as
	// KnotsNormal, normalized to the domain [0, 1].
	KnotsEndPoint
	// KnotsBezier generates clamped knots whose interior knots repeat
	// order-1 times, so that every group of order points forms a Bézier
	// segment.
	KnotsBezier
)

func (m KnotsMode) String() string {
	switch m {
	case KnotsNormal:
		return "normal"
	case KnotsEndPoint:
		return "endpoint"
	case KnotsBezier:
		return "bezier"
	default:
		return fmt.Sprintf("KnotsMode(%d)", int(m))
	}
}

// knotCount returns the length of the knot vector for size control points.
// A cyclic curve wraps order-1 control points around, adding as many knots.
func knotCount(size, order int, cyclic bool) int {
	n := size + order
	if cyclic {
		n += order - 1
	}
	return n
}

func calculateKnots(mode KnotsMode, size, order int, cyclic bool) []float64 {
	knots := make([]float64, knotCount(size, order, cyclic))
	if cyclic {
		for i := range knots {
			knots[i] = float64(i)
		}
		return knots
	}
	switch mode {
	case KnotsNormal, KnotsEndPoint:
		k := 0.0
		for i := range knots {
			if i >= order && i <= size {
				k++
			}
			knots[i] = k
		}
		if last := knots[len(knots)-1]; mode == KnotsEndPoint && last > 0 {
			for i := range knots {
				knots[i] /= last
			}
		}
	case KnotsBezier:
		interior := size - order
		end := float64((interior+order-2)/(order-1) + 1)
		for i := range knots {
			switch {
			case i < order:
				knots[i] = 0
			case i < size:
				knots[i] = float64((i-order)/(order-1) + 1)
			default:
				knots[i] = end
			}
		}
	default:
		panic("unreachable")
	}
	return knots
}

// findSpan returns the index of the knot span containing u, where n+1 is the
// number of basis functions and degree is order-1.
//
// This is algorithm A2.1 from The NURBS Book, Piegl & Tiller 2nd edition.
func findSpan(n, degree int, u float64, knots []float64) int {
	if u >= knots[n+1] {
		return n
	}
	if u < knots[degree] {
		return degree
	}
	low, high := degree, n+1
	mid := (low + high) / 2
	for u < knots[mid] || u >= knots[mid+1] {
		if u < knots[mid] {
			high = mid
		} else {
			low = mid
		}
		mid = (low + high) / 2
	}
	return mid
}

// basisFunctions computes the degree+1 non-vanishing basis functions at u in
// the knot span index span. The result at index j belongs to control point
// span-degree+j.
//
// This is algorithm A2.2 from The NURBS Book, Piegl & Tiller 2nd edition.
func basisFunctions(span int, u float64, degree int, knots []float64) []float64 {
	basis := make([]float64, degree+1)
	left := make([]float64, degree+1)
	right := make([]float64, degree+1)
	basis[0] = 1
	for j := 1; j <= degree; j++ {
		left[j] = u - knots[span+1-j]
		right[j] = knots[span+j] - u
		var saved float64
		for r := range j {
			var temp float64
			if den := right[r+1] + left[j-r]; den != 0 {
				temp = basis[r] / den
			}
			basis[r] = saved + right[r+1]*temp
			saved = left[j-r] * temp
		}
		basis[j] = saved
	}
	return basis
}
