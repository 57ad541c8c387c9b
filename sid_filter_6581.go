// sid_filter_6581.go - MOS 6581 analog filter stage

/*
The 6581 filter is a two-integrator state-variable loop built from the
nonlinear op-amp stages modelled by the calibration module. Per chip cycle
the routed voices are summed with the resonance and low-pass feedback paths,
the summer output drives the high-pass node, and the two integrator poles
derive the band-pass and low-pass nodes. Whatever the mode register selects
is mixed with the bypassed voices and scaled by the master volume ladder.
*/

package sidplayfp

// Filter6581 implements Filter with the full nonlinear 6581 model.
type Filter6581 struct {
	cfg *FilterModelConfig6581

	hpIntegrator *Integrator6581
	bpIntegrator *Integrator6581

	vhp, vbp, vlp float32
	ve            float32

	fc        uint16
	filt      uint8
	res       uint8
	mode      uint8
	vol       uint8
	voice3off bool

	currentSummer    LUT
	currentMixer     LUT
	currentResonance LUT
	currentVolume    LUT
}

func NewFilter6581(cfg *FilterModelConfig6581) *Filter6581 {
	f := &Filter6581{
		cfg:          cfg,
		hpIntegrator: cfg.BuildIntegrator(),
		bpIntegrator: cfg.BuildIntegrator(),
	}
	f.updateCenterFrequency()
	f.updateResonance()
	f.updateMixing()
	f.currentVolume = cfg.gain[0]
	return f
}

func (f *Filter6581) WriteFcLo(value uint8) {
	f.fc = f.fc&0x7f8 | uint16(value)&0x007
	f.updateCenterFrequency()
}

func (f *Filter6581) WriteFcHi(value uint8) {
	f.fc = uint16(value)<<3&0x7f8 | f.fc&0x007
	f.updateCenterFrequency()
}

func (f *Filter6581) WriteResFilt(value uint8) {
	f.filt = value & 0x0f
	f.res = value >> 4
	f.updateResonance()
	f.updateMixing()
}

func (f *Filter6581) WriteModeVol(value uint8) {
	f.mode = value & 0x70
	f.vol = value & SID_MODE_VOL_MASK
	f.voice3off = value&SID_MODE_3OFF != 0
	f.currentVolume = f.cfg.gain[f.vol]
	f.updateMixing()
}

func (f *Filter6581) Input(sample float32) {
	f.ve = sample
}

func (f *Filter6581) Clock(v1, v2, v3 float32) float32 {
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

	f.vhp = f.currentSummer.Output(f.currentResonance.Output(f.vbp) + f.vlp + vi)
	f.vbp = f.hpIntegrator.Solve(f.vhp)
	f.vlp = f.bpIntegrator.Solve(f.vbp)

	if f.mode&SID_MODE_LP != 0 {
		vnf += f.vlp
	}
	if f.mode&SID_MODE_BP != 0 {
		vnf += f.vbp
	}
	if f.mode&SID_MODE_HP != 0 {
		vnf += f.vhp
	}
	return f.currentVolume.Output(f.currentMixer.Output(vnf))
}

func (f *Filter6581) Reset() {
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
	f.hpIntegrator.Reset()
	f.bpIntegrator.Reset()
	f.updateCenterFrequency()
	f.updateResonance()
	f.updateMixing()
	f.currentVolume = f.cfg.gain[0]
}

// updateCenterFrequency reprograms both poles from the cutoff DAC. This is
// the only SetVw call site; the new bias is seen from the next cycle on.
func (f *Filter6581) updateCenterFrequency() {
	vw := f.cfg.CutoffVw(f.fc)
	f.hpIntegrator.SetVw(vw)
	f.bpIntegrator.SetVw(vw)
}

// updateResonance picks the feedback gain stage. The resonance bits control
// 1/Q, so the ladder is indexed by their complement.
func (f *Filter6581) updateResonance() {
	f.currentResonance = f.cfg.gain[(^f.res)&0x0f]
}

func (f *Filter6581) updateMixing() {
	ni, no := filterRouting(f.filt, f.mode, f.voice3off)
	f.currentSummer = f.cfg.summer[ni-2]
	f.currentMixer = f.cfg.mixer[no]
}
