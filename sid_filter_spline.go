// sid_filter_spline.go - cubic interpolation over measured transfer curves

package sidplayfp

import "sort"

type splinePoint struct {
	x, y float64
}

// spline interpolates a measured voltage transfer curve with piecewise cubic
// Hermite segments. Knot slopes come from centered differences, so the curve
// passes through every measured point with a continuous first derivative.
// Inputs outside the measured span extrapolate linearly from the end slopes.
type spline struct {
	points []splinePoint
	slopes []float64
}

func newSpline(points []splinePoint) *spline {
	n := len(points)
	slopes := make([]float64, n)
	slopes[0] = (points[1].y - points[0].y) / (points[1].x - points[0].x)
	slopes[n-1] = (points[n-1].y - points[n-2].y) / (points[n-1].x - points[n-2].x)
	for i := 1; i < n-1; i++ {
		slopes[i] = (points[i+1].y - points[i-1].y) / (points[i+1].x - points[i-1].x)
	}
	return &spline{points: points, slopes: slopes}
}

// evaluate returns the interpolated value and its first derivative at x.
func (s *spline) evaluate(x float64) (float64, float64) {
	n := len(s.points)
	if x <= s.points[0].x {
		p, m := s.points[0], s.slopes[0]
		return p.y + (x-p.x)*m, m
	}
	if x >= s.points[n-1].x {
		p, m := s.points[n-1], s.slopes[n-1]
		return p.y + (x-p.x)*m, m
	}

	i := sort.Search(n-1, func(k int) bool { return s.points[k+1].x > x }) // segment index
	p0, p1 := s.points[i], s.points[i+1]
	m0, m1 := s.slopes[i], s.slopes[i+1]

	h := p1.x - p0.x
	t := (x - p0.x) / h
	t2 := t * t
	t3 := t2 * t

	y := (2*t3-3*t2+1)*p0.y + (t3-2*t2+t)*h*m0 +
		(-2*t3+3*t2)*p1.y + (t3-t2)*h*m1
	dy := ((6*t2-6*t)*p0.y + (3*t2-4*t+1)*h*m0 +
		(-6*t2+6*t)*p1.y + (3*t2-2*t)*h*m1) / h

	return y, dy
}
