// sid_voice.go - one SID voice: oscillator * envelope into the filter scale

package sidplayfp

// Voice couples an oscillator with its envelope and converts the combined
// digital level to the voltage code scale the filter stage works in. The
// waveform DAC is centered on mid-scale, so a silent voice still sits at the
// model's DC operating point.
type Voice struct {
	Wave     *WaveformGenerator
	Envelope *EnvelopeGenerator

	voiceScale float32
	voiceDC    float32
}

func NewVoice(voiceScale, voiceDC float32) *Voice {
	return &Voice{
		Wave:       NewWaveformGenerator(),
		Envelope:   NewEnvelopeGenerator(),
		voiceScale: voiceScale,
		voiceDC:    voiceDC,
	}
}

// Output is the voice level in code units for the current cycle.
func (v *Voice) Output() float32 {
	wave := int32(v.Wave.Output()) - 0x800
	env := int32(v.Envelope.Output())
	return float32(wave*env)*v.voiceScale + v.voiceDC
}

// WriteControl dispatches the shared control register to both generators.
func (v *Voice) WriteControl(value uint8) {
	v.Wave.WriteControl(value)
	v.Envelope.WriteControl(value)
}

func (v *Voice) Reset() {
	v.Wave.Reset()
	v.Envelope.Reset()
}
