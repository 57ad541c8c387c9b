// sid_filter_8580.go - MOS 8580 linear filter stage

package sidplayfp

import "math"

// Filter8580 implements Filter with the near-linear HMOS-II topology. The
// 8580's curves are close enough to ideal that a plain state-variable loop
// with a linear cutoff law captures it; none of the 6581 calibration tables
// apply.
type Filter8580 struct {
	clockHz float64

	vhp, vbp, vlp float32
	ve            float32

	fc        uint16
	filt      uint8
	res       uint8
	mode      uint8
	vol       uint8
	voice3off bool

	w0   float32 // integrator coefficient per chip cycle
	qInv float32
}

func NewFilter8580(clockHz int) *Filter8580 {
	f := &Filter8580{clockHz: float64(clockHz)}
	f.updateCenterFrequency()
	f.updateResonance()
	return f
}

func (f *Filter8580) WriteFcLo(value uint8) {
	f.fc = f.fc&0x7f8 | uint16(value)&0x007
	f.updateCenterFrequency()
}

func (f *Filter8580) WriteFcHi(value uint8) {
	f.fc = uint16(value)<<3&0x7f8 | f.fc&0x007
	f.updateCenterFrequency()
}

func (f *Filter8580) WriteResFilt(value uint8) {
	f.filt = value & 0x0f
	f.res = value >> 4
	f.updateResonance()
}

func (f *Filter8580) WriteModeVol(value uint8) {
	f.mode = value & 0x70
	f.vol = value & SID_MODE_VOL_MASK
	f.voice3off = value&SID_MODE_3OFF != 0
}

func (f *Filter8580) Input(sample float32) {
	f.ve = sample
}

func (f *Filter8580) Clock(v1, v2, v3 float32) float32 {
	var vi, vnf float32

	if f.filt&SID_FILT_V1 != 0 {
		vi += v1
	} else {
		vnf += v1
	}
	if f.filt&SID_FILT_V2 != 0 {
		vi += v2
	} else {
		vnf += v2
	}
	if f.filt&SID_FILT_V3 != 0 {
		vi += v3
	} else if !f.voice3off {
		vnf += v3
	}
	if f.filt&SID_FILT_EXT != 0 {
		vi += f.ve
	} else {
		vnf += f.ve
	}

	f.vhp = f.vbp*f.qInv - f.vlp - vi
	f.vbp -= f.w0 * f.vhp
	f.vlp -= f.w0 * f.vbp

	if f.mode&SID_MODE_LP != 0 {
		vnf += f.vlp
	}
	if f.mode&SID_MODE_BP != 0 {
		vnf += f.vbp
	}
	if f.mode&SID_MODE_HP != 0 {
		vnf += f.vhp
	}
	return vnf * float32(f.vol) / 15
}

func (f *Filter8580) Reset() {
	f.fc = 0
	f.filt = 0
	f.res = 0
	f.mode = 0
	f.vol = 0
	f.voice3off = false
	f.vhp = 0
	f.vbp = 0
	f.vlp = 0
	f.ve = 0
	f.updateCenterFrequency()
	f.updateResonance()
}

// updateCenterFrequency follows the 8580's linear cutoff law, about 5.8 Hz
// per FC step above the 30 Hz floor.
func (f *Filter8580) updateCenterFrequency() {
	fcHz := 30.0 + float64(f.fc)*5.8
	f.w0 = float32(2 * math.Pi * fcHz / f.clockHz)
}

func (f *Filter8580) updateResonance() {
	f.qInv = float32(1 / (0.707 + float64(f.res)/15))
}
