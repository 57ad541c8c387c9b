// sid_filter_opamp.go - inverting op-amp solver for summer/mixer/gain tables

package sidplayfp

import "math"

// opAmp finds the DC operating point of the 6581's inverting op-amp stages.
// The input and feedback "resistors" are FETs in the triode region, so the
// currents follow the same symmetric quadratic law as the filter snake FET.
// Kirchhoff's current law at the summing node x with n identical inputs at
// voltage vi gives
//
//	(n+1)*(Vddt-x)^2 - n*(Vddt-vi)^2 - (Vddt-vo(x))^2 = 0
//
// where vo(x) is the measured op-amp voltage transfer. The root is found with
// Newton-Raphson on x; the estimate persists between calls since successive
// table entries lie close together.
type opAmp struct {
	transfer   *spline
	vddt       float64
	vmin, vmax float64
	x          float64
}

func newOpAmp(transfer *spline, vddt, vmin, vmax float64) *opAmp {
	o := &opAmp{transfer: transfer, vddt: vddt, vmin: vmin, vmax: vmax}
	o.reset()
	return o
}

func (o *opAmp) reset() {
	o.x = o.vmin + (o.vmax-o.vmin)/2
}

// solve returns the op-amp output voltage for n inputs held at vi.
func (o *opAmp) solve(n, vi float64) float64 {
	a := n + 1
	c := n * (o.vddt - vi) * (o.vddt - vi)

	vo, dvo := o.transfer.evaluate(o.x)
	for i := 0; i < 100; i++ {
		bx := o.vddt - o.x
		bvo := o.vddt - vo

		f := a*bx*bx - c - bvo*bvo
		df := 2 * (bvo*dvo - a*bx)
		dx := f / df
		o.x -= dx

		if o.x < o.vmin {
			o.x = o.vmin
		} else if o.x > o.vmax {
			o.x = o.vmax
		}
		vo, dvo = o.transfer.evaluate(o.x)
		if math.Abs(dx) < 1e-10 {
			break
		}
	}
	return vo
}

// residual reports how far an (x, vo) pair is from satisfying the node
// equation. Zero at the solution; used by the calibration self-checks.
func (o *opAmp) residual(n, vi float64) float64 {
	vo, _ := o.transfer.evaluate(o.x)
	bx := o.vddt - o.x
	bvo := o.vddt - vo
	return (n+1)*bx*bx - n*(o.vddt-vi)*(o.vddt-vi) - bvo*bvo
}
