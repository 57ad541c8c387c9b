// sid_filter_integrator.go - MOS 6581 nonlinear filter integrator

/*
Each 6581 filter pole is an op-amp integrator whose time constant is set by a
voltage controlled resistor (the "VCR" FET) in parallel with a permanently
biased "snake" FET. Both devices are modelled in the transistor triode region:
the snake contributes a symmetric quadratic current, the VCR an EKV-style
subthreshold current read from precomputed tables. All voltages are carried in
the calibration module's normalized 16-bit scale, so one table index unit is
one voltage code.
*/

package sidplayfp

// Integrator6581 solves one filter pole per output sample. Instances are
// owned by a single voice path; the lookup tables they borrow are immutable
// and shared. The zero voltage state corresponds to a discharged capacitor.
type Integrator6581 struct {
	vcrKVg      LUT
	vcrNIdsTerm LUT
	opampRev    LUT

	kVddt  float32
	nSnake float32

	vddtVw2 float32
	vx      float32 // op-amp output voltage
	vc      float32 // capacitor voltage
}

// NewIntegrator6581 borrows the three calibration tables, which must outlive
// the integrator. kVddt is the gate-biased supply and nSnake the snake FET
// current factor, both in the normalized voltage scale.
func NewIntegrator6581(vcrKVg, vcrNIdsTerm, opampRev LUT, kVddt, nSnake float32) *Integrator6581 {
	return &Integrator6581{
		vcrKVg:      vcrKVg,
		vcrNIdsTerm: vcrNIdsTerm,
		opampRev:    opampRev,
		kVddt:       kVddt,
		nSnake:      nSnake,
	}
}

// SetVw reprograms the VCR bias voltage, i.e. the filter cutoff. Only the
// cached (kVddt - Vw)^2 term changes; the new bias is seen by the next Solve.
func (in *Integrator6581) SetVw(vw float32) {
	in.vddtVw2 = (in.kVddt - vw) * (in.kVddt - vw)
}

// Solve advances the pole by one sample with input voltage vi and returns the
// output voltage vx - vc.
func (in *Integrator6581) Solve(vi float32) float32 {
	sidAssert(in.vx < in.kVddt, "integrator vx outside triode region")
	sidAssert(vi < in.kVddt, "integrator vi outside triode region")

	// Snake current, triode region. The quadratic difference form is
	// symmetric in source/drain so no branch on current direction is needed.
	vgst := in.kVddt - in.vx
	vgdt := in.kVddt - vi
	vgst2 := vgst * vgst
	vgdt2 := vgdt * vgdt
	nISnake := in.nSnake * (vgst2 - vgdt2)

	// VCR gate voltage from the bias and drain terms.
	kVg := in.vcrKVg.Output(((in.vddtVw2 + vgdt2) / 2) / 65536)

	// VCR current. Terminal voltages below the gate clamp to zero, which
	// models the cutoff region of the FET.
	var vgs, vgd float32
	if in.vx < kVg {
		vgs = kVg - in.vx
	}
	if vi < kVg {
		vgd = kVg - vi
	}
	nIVcr := in.vcrNIdsTerm.Output(vgs) - in.vcrNIdsTerm.Output(vgd)

	// Change in capacitor charge, then vx from the op-amp feedback curve.
	in.vc += nISnake/65536 + nIVcr
	in.vx = in.opampRev.Output(in.vc/2 + 32768)

	return in.vx - in.vc
}

// Reset discharges the capacitor and recenters the op-amp.
func (in *Integrator6581) Reset() {
	in.vx = 0
	in.vc = 0
}
