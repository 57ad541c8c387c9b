// sid_chip.go - MOS 6581/8580 SID chip: register file and cycle clocking

/*
The chip couples three voices, the revision-specific filter stage and the C64
output network behind the 29-register bus interface. Everything below the
register file is clocked at the chip cycle rate (~1 MHz); audio samples are
drawn by stepping the right number of cycles per sample tick with a 16.16
fixed-point remainder, so any output rate divides the clock exactly over
time.
*/

package sidplayfp

import "fmt"

// SID is one complete sound chip instance. Not safe for concurrent use; a
// player owns a chip and serializes register writes against sample pulls.
type SID struct {
	model      ChipModel
	clockHz    int
	sampleRate int

	voices  [3]*Voice
	filter  Filter
	extFilt *ExternalFilter

	busValue    uint8
	busValueTTL int32

	cyclesPerSampleFP uint32 // 16.16 fixed point
	cycleFrac         uint32

	lastOutput  float32
	outputScale float32

	extDC  float32
	extAmp float32
}

// NewSID builds a chip for the given revision, C64 clock and output sample
// rate.
func NewSID(model ChipModel, clockHz, sampleRate int) (*SID, error) {
	if clockHz <= 0 || sampleRate <= 0 {
		return nil, fmt.Errorf("sid: invalid clock %d or sample rate %d", clockHz, sampleRate)
	}
	if sampleRate > clockHz {
		return nil, fmt.Errorf("sid: sample rate %d exceeds chip clock %d", sampleRate, clockHz)
	}

	s := &SID{
		model:             model,
		clockHz:           clockHz,
		sampleRate:        sampleRate,
		extFilt:           NewExternalFilter(clockHz),
		cyclesPerSampleFP: uint32(uint64(clockHz) << 16 / uint64(sampleRate)),
		outputScale:       1.0 / 32768,
	}

	var voiceScale, voiceDC float32
	switch model {
	case MODEL_6581:
		cfg := GetFilterModelConfig6581(clockHz)
		voiceScale = cfg.VoiceScale()
		voiceDC = cfg.VoiceDC()
		s.filter = NewFilter6581(cfg)
	case MODEL_8580:
		// The linear stage has no calibrated voltage scale; pick one that
		// keeps three full voices inside the 16-bit output range.
		voiceScale = 1.0 / 48
		voiceDC = 0
		s.filter = NewFilter8580(clockHz)
	default:
		return nil, fmt.Errorf("sid: unknown chip model %d", model)
	}
	s.extDC = voiceDC
	s.extAmp = voiceScale * 0x7ff * 0xff

	for i := range s.voices {
		s.voices[i] = NewVoice(voiceScale, voiceDC)
	}
	for i := range s.voices {
		s.voices[i].Wave.SetSyncChain(
			s.voices[(i+2)%3].Wave,
			s.voices[(i+1)%3].Wave,
		)
	}
	return s, nil
}

func (s *SID) Model() ChipModel { return s.model }
func (s *SID) ClockHz() int     { return s.clockHz }
func (s *SID) SampleRate() int  { return s.sampleRate }

// Write stores a register value. Every write also parks the value on the
// internal bus where reads of write-only registers see it fade.
func (s *SID) Write(reg, value uint8) {
	s.busValue = value
	s.busValueTTL = SID_BUS_VALUE_TTL

	reg &= 0x1f
	if reg < 3*SID_VOICE_REG_COUNT {
		v := s.voices[reg/SID_VOICE_REG_COUNT]
		switch reg % SID_VOICE_REG_COUNT {
		case SID_REG_FREQ_LO:
			v.Wave.WriteFreqLo(value)
		case SID_REG_FREQ_HI:
			v.Wave.WriteFreqHi(value)
		case SID_REG_PW_LO:
			v.Wave.WritePwLo(value)
		case SID_REG_PW_HI:
			v.Wave.WritePwHi(value)
		case SID_REG_CONTROL:
			v.WriteControl(value)
		case SID_REG_AD:
			v.Envelope.WriteAttackDecay(value)
		case SID_REG_SR:
			v.Envelope.WriteSustainRelease(value)
		}
		return
	}

	switch reg {
	case SID_REG_FC_LO:
		s.filter.WriteFcLo(value)
	case SID_REG_FC_HI:
		s.filter.WriteFcHi(value)
	case SID_REG_RES_FILT:
		s.filter.WriteResFilt(value)
	case SID_REG_MODE_VOL:
		s.filter.WriteModeVol(value)
	}
}

// Read returns the readable registers; write-only addresses return the
// fading bus value.
func (s *SID) Read(reg uint8) uint8 {
	switch reg & 0x1f {
	case SID_REG_POTX, SID_REG_POTY:
		// Pot lines float high with nothing connected.
		return 0xff
	case SID_REG_OSC3:
		return s.voices[2].Wave.ReadOSC()
	case SID_REG_ENV3:
		return s.voices[2].Envelope.Output()
	default:
		if s.busValueTTL <= 0 {
			return 0
		}
		return s.busValue
	}
}

// SetExternalInput feeds the EXT IN pin with a [-1, 1] sample.
func (s *SID) SetExternalInput(sample float32) {
	s.filter.Input(s.extDC + sample*s.extAmp)
}

// Clock advances the chip by the given number of cycles.
func (s *SID) Clock(cycles int) {
	for i := 0; i < cycles; i++ {
		s.clockOne()
	}
}

func (s *SID) clockOne() {
	if s.busValueTTL > 0 {
		s.busValueTTL--
		if s.busValueTTL == 0 {
			s.busValue = 0
		}
	}

	for _, v := range s.voices {
		v.Envelope.Clock()
	}
	for _, v := range s.voices {
		v.Wave.Clock()
	}
	// Hard sync only after every oscillator has moved this cycle.
	for _, v := range s.voices {
		v.Wave.Synchronize()
	}

	out := s.filter.Clock(
		s.voices[0].Output(),
		s.voices[1].Output(),
		s.voices[2].Output(),
	)
	s.lastOutput = s.extFilt.Clock(out)
}

// Sample advances the chip to the next output tick and returns one [-1, 1]
// sample.
func (s *SID) Sample() float32 {
	s.cycleFrac += s.cyclesPerSampleFP
	cycles := s.cycleFrac >> 16
	s.cycleFrac &= 0xffff
	for i := uint32(0); i < cycles; i++ {
		s.clockOne()
	}

	out := s.lastOutput * s.outputScale
	if out > 1 {
		out = 1
	} else if out < -1 {
		out = -1
	}
	return out
}

// Reset puts the chip back in the power-on state. Register contents, voice
// state and all filter poles are cleared.
func (s *SID) Reset() {
	for _, v := range s.voices {
		v.Reset()
	}
	s.filter.Reset()
	s.extFilt.Reset()
	s.busValue = 0
	s.busValueTTL = 0
	s.cycleFrac = 0
	s.lastOutput = 0
}
