// sid_wave.go - SID waveform generator (24-bit phase accumulator + noise LFSR)

package sidplayfp

// WaveformGenerator is one voice's oscillator: a 24-bit phase accumulator
// driving triangle, sawtooth, pulse and noise outputs, with hard sync and
// ring modulation taken from a partner oscillator. All outputs are 12-bit.
type WaveformGenerator struct {
	accumulator uint32
	shiftReg    uint32

	freq uint16
	pw   uint16

	waveform uint8
	test     bool
	ringMod  bool
	syncBit  bool

	msbRising bool

	syncSource *WaveformGenerator
	syncDest   *WaveformGenerator
}

func NewWaveformGenerator() *WaveformGenerator {
	w := &WaveformGenerator{}
	w.Reset()
	return w
}

// SetSyncChain wires the hard-sync/ring-mod neighbors. On the chip voice n
// is modulated by voice n-1 and modulates voice n+1.
func (w *WaveformGenerator) SetSyncChain(source, dest *WaveformGenerator) {
	w.syncSource = source
	w.syncDest = dest
}

func (w *WaveformGenerator) WriteFreqLo(value uint8) {
	w.freq = w.freq&0xff00 | uint16(value)
}

func (w *WaveformGenerator) WriteFreqHi(value uint8) {
	w.freq = uint16(value)<<8 | w.freq&0x00ff
}

func (w *WaveformGenerator) WritePwLo(value uint8) {
	w.pw = w.pw&0xf00 | uint16(value)
}

func (w *WaveformGenerator) WritePwHi(value uint8) {
	w.pw = uint16(value&0x0f)<<8 | w.pw&0x0ff
}

func (w *WaveformGenerator) WriteControl(value uint8) {
	w.waveform = value >> 4
	w.ringMod = value&SID_CTRL_RINGMOD != 0
	w.syncBit = value&SID_CTRL_SYNC != 0

	test := value&SID_CTRL_TEST != 0
	if test {
		// Test holds the oscillator reset and clears the noise register.
		w.accumulator = 0
		w.shiftReg = 0
	} else if w.test {
		// Releasing test reseeds the LFSR.
		w.shiftReg = 0x7ffff8
	}
	w.test = test
}

// Clock advances the accumulator by one chip cycle.
func (w *WaveformGenerator) Clock() {
	if w.test {
		return
	}
	prev := w.accumulator
	w.accumulator = (w.accumulator + uint32(w.freq)) & 0xffffff

	w.msbRising = prev&0x800000 == 0 && w.accumulator&0x800000 != 0

	// The noise LFSR shifts when accumulator bit 19 goes high.
	if prev&0x080000 == 0 && w.accumulator&0x080000 != 0 {
		bit0 := (w.shiftReg>>22 ^ w.shiftReg>>17) & 1
		w.shiftReg = (w.shiftReg<<1 | bit0) & 0x7fffff
	}
}

// Synchronize applies hard sync after all oscillators have clocked. A sync
// target is not reset when it is itself the source of a simultaneous sync,
// matching the chip's same-cycle edge case.
func (w *WaveformGenerator) Synchronize() {
	if w.msbRising && w.syncDest.syncBit &&
		!(w.syncBit && w.syncSource.msbRising) {
		w.syncDest.accumulator = 0
	}
}

func (w *WaveformGenerator) outputTriangle() uint16 {
	acc := w.accumulator
	if w.ringMod {
		acc ^= w.syncSource.accumulator
	}
	v := w.accumulator
	if acc&0x800000 != 0 {
		v = ^v
	}
	return uint16(v>>11) & 0xfff
}

func (w *WaveformGenerator) outputSawtooth() uint16 {
	return uint16(w.accumulator >> 12)
}

func (w *WaveformGenerator) outputPulse() uint16 {
	if w.test || uint16(w.accumulator>>12) >= w.pw {
		return 0xfff
	}
	return 0
}

func (w *WaveformGenerator) outputNoise() uint16 {
	s := w.shiftReg
	return uint16(s>>22&1)<<11 | uint16(s>>20&1)<<10 |
		uint16(s>>16&1)<<9 | uint16(s>>13&1)<<8 |
		uint16(s>>11&1)<<7 | uint16(s>>7&1)<<6 |
		uint16(s>>4&1)<<5 | uint16(s>>2&1)<<4
}

// Output returns the selected 12-bit waveform. Combined selections are
// approximated by ANDing the individual outputs; the real chip's shared bus
// interaction pulls combined waveforms even lower, but the AND keeps the
// characteristic dropouts.
func (w *WaveformGenerator) Output() uint16 {
	switch w.waveform {
	case 0x0:
		return 0
	case 0x1:
		return w.outputTriangle()
	case 0x2:
		return w.outputSawtooth()
	case 0x4:
		return w.outputPulse()
	case 0x8:
		return w.outputNoise()
	}

	out := uint16(0xfff)
	if w.waveform&0x1 != 0 {
		out &= w.outputTriangle()
	}
	if w.waveform&0x2 != 0 {
		out &= w.outputSawtooth()
	}
	if w.waveform&0x4 != 0 {
		out &= w.outputPulse()
	}
	if w.waveform&0x8 != 0 {
		out &= w.outputNoise()
	}
	return out
}

// ReadOSC is the OSC3 register view: the top 8 output bits.
func (w *WaveformGenerator) ReadOSC() uint8 {
	return uint8(w.Output() >> 4)
}

func (w *WaveformGenerator) Reset() {
	w.accumulator = 0
	w.shiftReg = 0x7ffff8
	w.freq = 0
	w.pw = 0
	w.waveform = 0
	w.test = false
	w.ringMod = false
	w.syncBit = false
	w.msbRising = false
}
