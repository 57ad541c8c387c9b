// sid_filter_opamp_test.go - op-amp operating point solver checks

package sidplayfp

import (
	"math"
	"testing"
)

// invertingTransfer is a smooth stand-in for the measured op-amp curve:
// high output at low input, sharp inverting transition around 4.75V.
func invertingTransfer() *spline {
	points := make([]splinePoint, 0, 33)
	for x := 0.81; x <= 10.4; x += 0.3 {
		y := 0.81 + 9.5/(1+math.Exp((x-4.75)*4))
		points = append(points, splinePoint{x, y})
	}
	return newSpline(points)
}

func TestSIDOpAmp_SolveSatisfiesNodeEquation(t *testing.T) {
	o := newOpAmp(invertingTransfer(), 10.87, 0.81, 10.31)

	for n := 1.0; n <= 6.0; n++ {
		o.reset()
		for vi := 1.0; vi < 10.0; vi += 0.25 {
			o.solve(n, vi)
			if r := o.residual(n, vi); math.Abs(r) > 1e-4 {
				t.Errorf("n=%v vi=%v: residual %g", n, vi, r)
			}
		}
	}
}

func TestSIDOpAmp_SummerOutputInverts(t *testing.T) {
	o := newOpAmp(invertingTransfer(), 10.87, 0.81, 10.31)

	prev := o.solve(1, 1.0)
	for vi := 1.5; vi < 9.0; vi += 0.5 {
		vo := o.solve(1, vi)
		if vo > prev+1e-6 {
			t.Fatalf("output rose with rising input at vi=%v: %v -> %v", vi, prev, vo)
		}
		prev = vo
	}
}

func TestSIDOpAmp_EstimateStaysInRange(t *testing.T) {
	o := newOpAmp(invertingTransfer(), 10.87, 0.81, 10.31)
	for vi := 0.9; vi < 10.3; vi += 0.1 {
		o.solve(4, vi)
		if o.x < 0.81 || o.x > 10.31 {
			t.Fatalf("estimate escaped bracket at vi=%v: x=%v", vi, o.x)
		}
	}
}
